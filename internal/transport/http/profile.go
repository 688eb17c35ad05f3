package http

import (
	"net/http"

	"homehub/internal/observability/middleware"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	p, err := h.profile.Profile(r.Context(), u.ID)
	if err != nil {
		middleware.Logger(r.Context()).Error("profile lookup failed", "user_id", u.ID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to get user info: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
