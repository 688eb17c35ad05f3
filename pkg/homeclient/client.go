// Package homeclient talks to a homehub server the way a sensor bridge does:
// it posts readings to the public MAC-keyed ingestion route.
package homeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const TimeLayout = "2006-01-02 15:04:05"

type Reading struct {
	Temperature     float64
	Pressure        float64
	TemperatureUnit string
	PressureUnit    string
	// Timestamp is omitted on the wire when zero and the server stamps it.
	Timestamp time.Time
}

type readingBody struct {
	Temperature     float64 `json:"temperature"`
	Pressure        float64 `json:"pressure"`
	TemperatureUnit string  `json:"temperature_unit,omitempty"`
	PressureUnit    string  `json:"pressure_unit,omitempty"`
	Timestamp       string  `json:"timestamp,omitempty"`
}

// APIError carries a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("homehub: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	hc      *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *Client) joinURL(path string) string {
	return c.baseURL + path
}

// IngestReading posts r for the device registered under mac.
func (c *Client) IngestReading(ctx context.Context, mac string, r Reading) error {
	body := readingBody{
		Temperature:     r.Temperature,
		Pressure:        r.Pressure,
		TemperatureUnit: r.TemperatureUnit,
		PressureUnit:    r.PressureUnit,
	}
	if !r.Timestamp.IsZero() {
		body.Timestamp = r.Timestamp.UTC().Format(TimeLayout)
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.joinURL("/api/sensor-data/"+url.PathEscape(mac)), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// Health checks /healthz.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.joinURL("/healthz"), nil)
	if err != nil {
		return err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// errorMessage prefers the JSON "error" or "detail" field over the raw body.
func errorMessage(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(data, &body) == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Detail != "" {
			return body.Detail
		}
	}
	if msg := strings.TrimSpace(string(data)); msg != "" {
		return msg
	}
	return resp.Status
}
