package http

import (
	"html"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"homehub/internal/observability/middleware"
)

const fallbackErrorPage = `<!doctype html>
<html><head><title>Error</title></head>
<body><h1>Something went wrong</h1><p>{username}</p><p><a href="/login">Back to login</a></p></body></html>`

// Pages serves the HTML templates. Files are read per request so they can be
// edited without a restart.
type Pages struct {
	Dir string
}

func (p Pages) read(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(p.Dir, name))
}

// Serve writes the named page with status 200.
func (p Pages) Serve(w http.ResponseWriter, r *http.Request, name string) {
	b, err := p.read(name)
	if err != nil {
		middleware.Logger(r.Context()).Error("page unavailable", "page", name, "error", err)
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (p Pages) Handler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { p.Serve(w, r, name) }
}

// Error renders error.html with {username} replaced by the escaped message.
func (p Pages) Error(w http.ResponseWriter, status int, message string) {
	page := fallbackErrorPage
	if b, err := p.read("error.html"); err == nil {
		page = string(b)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(strings.ReplaceAll(page, "{username}", html.EscapeString(message))))
}
