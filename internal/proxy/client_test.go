package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestForwardJSONAddsStaticHeaders(t *testing.T) {
	var gotEmail, gotPID, gotCookie, gotBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/ai/complete" {
			t.Errorf("unexpected upstream path %s", r.URL.Path)
		}
		gotEmail = r.Header.Get("email")
		gotPID = r.Header.Get("pid")
		gotCookie = r.Header.Get("Cookie")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"text":"hi"}`))
	}))
	defer upstream.Close()

	c := New(upstream.URL, time.Second, map[string]string{"email": "me@example.com", "pid": "A123"})
	req := httptest.NewRequest(http.MethodPost, "/api/ai", strings.NewReader(`{"prompt":"hello"}`))
	req.Header.Set("Cookie", "sessionId=secret")
	rec := httptest.NewRecorder()
	c.ForwardJSON("/api/v1/ai/complete").ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected upstream status relayed, got %d", rec.Code)
	}
	if rec.Body.String() != `{"text":"hi"}` {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
	if gotEmail != "me@example.com" || gotPID != "A123" {
		t.Fatalf("static headers not sent: email=%q pid=%q", gotEmail, gotPID)
	}
	if gotCookie != "" {
		t.Fatalf("caller cookie leaked upstream: %q", gotCookie)
	}
	if gotBody != `{"prompt":"hello"}` {
		t.Fatalf("unexpected upstream body %q", gotBody)
	}
}

func TestForwardJSONErrors(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	downURL := down.URL
	down.Close()

	cases := []struct {
		name string
		base string
		body string
	}{
		{"not configured", "", `{}`},
		{"invalid json", "http://127.0.0.1:1", `{nope`},
		{"upstream unreachable", downURL, `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New(tc.base, time.Second, nil)
			rec := httptest.NewRecorder()
			c.ForwardJSON("/api/v1/ai/complete").ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ai", strings.NewReader(tc.body)))

			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !strings.HasPrefix(body["error"], "An unexpected error occurred: ") {
				t.Fatalf("unexpected error body: %v", body)
			}
		})
	}
}
