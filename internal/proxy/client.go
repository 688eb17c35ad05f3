package proxy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"homehub/internal/observability/middleware"
)

const maxBodyBytes = 1 << 20

var ErrNotConfigured = errors.New("ai upstream not configured")

// Client forwards JSON bodies to one upstream. The caller's own headers
// (cookies included) are never passed on; only Content-Type, the request id
// and the configured static headers are sent.
type Client struct {
	baseURL string
	headers http.Header
	hc      *http.Client
}

func New(baseURL string, timeout time.Duration, headers map[string]string) *Client {
	h := make(http.Header, len(headers))
	for k, v := range headers {
		if v != "" {
			// lowercase names like "email" and "pid" are kept as given
			h[k] = []string{v}
		}
	}
	return &Client{
		baseURL: baseURL,
		headers: h,
		hc: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// ForwardJSON relays the request body to baseURL+path and streams the upstream
// status and body back. Any local failure is a 500 with an {"error": ...} body.
func (c *Client) ForwardJSON(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := middleware.Logger(r.Context())

		if c.baseURL == "" {
			writeProxyError(w, ErrNotConfigured)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			writeProxyError(w, err)
			return
		}
		if !json.Valid(body) {
			writeProxyError(w, errors.New("request body is not valid JSON"))
			return
		}

		req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			writeProxyError(w, err)
			return
		}
		for k, vs := range c.headers {
			req.Header[k] = vs
		}
		req.Header.Set("Content-Type", "application/json")
		if rid := middleware.RequestIDFromContext(r.Context()); rid != "" {
			req.Header.Set(middleware.HeaderRequestID, rid)
		}

		resp, err := c.hc.Do(req)
		if err != nil {
			log.Warn("ai upstream request failed", "path", path, "error", err)
			writeProxyError(w, err)
			return
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if ct := resp.Header.Get("Content-Type"); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.WriteHeader(resp.StatusCode)
		_, _ = io.Copy(w, resp.Body)

		log.Info("ai upstream responded",
			"path", path,
			"status", resp.StatusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func writeProxyError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": fmt.Sprintf("An unexpected error occurred: %v", err),
	})
}
