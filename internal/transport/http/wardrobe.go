package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"homehub/internal/domain"
	"homehub/internal/dto"
	"homehub/internal/observability/middleware"
)

func clothingID(w http.ResponseWriter, r *http.Request) (domain.ClothingID, bool) {
	id, ok := parseID(chi.URLParam(r, "clothing_id"))
	if !ok {
		writeDetail(w, http.StatusBadRequest, "clothing id must be a positive integer")
	}
	return id, ok
}

func (h *Handler) listWardrobe(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	items, err := h.wardrobe.List(r.Context(), u.ID)
	if err != nil {
		middleware.Logger(r.Context()).Error("list wardrobe failed", "user_id", u.ID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to get wardrobe: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewClothingItems(items))
}

func (h *Handler) getClothing(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	id, ok := clothingID(w, r)
	if !ok {
		return
	}
	item, err := h.wardrobe.Get(r.Context(), u.ID, id)
	switch {
	case errors.Is(err, domain.ErrClothingNotFound):
		writeDetail(w, http.StatusNotFound, "Clothing item not found")
		return
	case err != nil:
		middleware.Logger(r.Context()).Error("get clothing failed", "user_id", u.ID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to get clothing: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewClothingItem(item))
}

func (h *Handler) addClothing(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	var req dto.AddClothingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body: %v", err)
		return
	}
	_, err := h.wardrobe.Add(r.Context(), u.ID, req.Name, req.Color)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeDetail(w, http.StatusBadRequest, "%v", err)
		return
	case err != nil:
		middleware.Logger(r.Context()).Error("add clothing failed", "user_id", u.ID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to add clothing item: %v", err)
		return
	}
	writeResult(w, http.StatusOK, true, "Clothing item added successfully")
}

func (h *Handler) updateClothing(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	id, ok := clothingID(w, r)
	if !ok {
		return
	}
	var req dto.UpdateClothingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body: %v", err)
		return
	}
	err := h.wardrobe.Update(r.Context(), u.ID, id, req.NewName, req.NewColor)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeDetail(w, http.StatusBadRequest, "%v", err)
		return
	case err != nil:
		middleware.Logger(r.Context()).Error("update clothing failed", "user_id", u.ID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to update clothing item: %v", err)
		return
	}
	writeResult(w, http.StatusOK, true, "Clothing item updated successfully")
}

func (h *Handler) removeClothing(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	id, ok := clothingID(w, r)
	if !ok {
		return
	}
	if err := h.wardrobe.Remove(r.Context(), u.ID, id); err != nil {
		middleware.Logger(r.Context()).Error("remove clothing failed", "user_id", u.ID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to remove clothing item: %v", err)
		return
	}
	writeResult(w, http.StatusOK, true, "Clothing item removed successfully")
}
