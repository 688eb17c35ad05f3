package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"homehub/internal/domain"
	"homehub/internal/dto"
	"homehub/internal/observability/middleware"
	"homehub/internal/service"
)

const (
	SessionCookie = "sessionId"
	maxFormBytes  = 1 << 20
)

type userCtxKey struct{}

func withUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the user attached by RequireUser or RequirePage.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(*domain.User)
	return u, ok && u != nil
}

func sessionToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, res *service.SessionResult) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    res.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireUser gates JSON routes: 401 {"detail":"Not authenticated"} when the
// session cookie does not resolve to a live session.
func (h *Handler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := h.auth.VerifySession(r.Context(), sessionToken(r))
		if errors.Is(err, domain.ErrUnauthenticated) {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		if err != nil {
			middleware.Logger(r.Context()).Error("session verification failed", "error", err)
			writeDetail(w, http.StatusInternalServerError, "Failed to verify session: %v", err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), u)))
	})
}

// RequirePage gates HTML pages: unauthenticated visitors are sent to /login.
func (h *Handler) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := h.auth.VerifySession(r.Context(), sessionToken(r))
		if errors.Is(err, domain.ErrUnauthenticated) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err != nil {
			middleware.Logger(r.Context()).Error("session verification failed", "error", err)
			h.pages.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), u)))
	})
}

// guestPage serves name to visitors without a session and redirects
// signed-in users to their profile.
func (h *Handler) guestPage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.auth.VerifySession(r.Context(), sessionToken(r)); err == nil {
			http.Redirect(w, r, "/profile", http.StatusSeeOther)
			return
		}
		h.pages.Serve(w, r, name)
	}
}

func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxFormBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	return err
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	log := middleware.Logger(r.Context())
	if err := parseForm(r); err != nil {
		h.pages.Serve(w, r, "signup.html")
		return
	}
	req := dto.SignupRequest{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Location: r.PostFormValue("location"),
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		h.pages.Serve(w, r, "signup.html")
		return
	}

	res, err := h.auth.Signup(r.Context(), req)
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		log.Info("signup rejected", "reason", "duplicate email")
		h.pages.Error(w, http.StatusConflict, req.Email)
		return
	case errors.Is(err, domain.ErrInvalidInput):
		h.pages.Serve(w, r, "signup.html")
		return
	case err != nil:
		log.Error("signup failed", "error", err)
		h.pages.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info("user signed up", "user_id", res.User.ID)
	setSessionCookie(w, r, res)
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := middleware.Logger(r.Context())
	if err := parseForm(r); err != nil {
		h.pages.Serve(w, r, "login.html")
		return
	}
	req := dto.LoginRequest{
		Email:    strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	if req.Email == "" || req.Password == "" {
		h.pages.Serve(w, r, "login.html")
		return
	}

	res, err := h.auth.Login(r.Context(), req)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		log.Info("login rejected", "ip", clientIP(r))
		h.pages.Error(w, http.StatusForbidden, req.Email)
		return
	case errors.Is(err, domain.ErrInvalidInput):
		h.pages.Serve(w, r, "login.html")
		return
	case err != nil:
		log.Error("login failed", "error", err)
		h.pages.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info("user logged in", "user_id", res.User.ID)
	setSessionCookie(w, r, res)
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), sessionToken(r)); err != nil {
		middleware.Logger(r.Context()).Warn("logout could not delete session", "error", err)
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
