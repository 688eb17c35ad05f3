package dto

import (
	"fmt"
	"strings"
	"time"

	"homehub/internal/domain"
)

// TimeLayout is the wire format for every timestamp the API emits.
const TimeLayout = "2006-01-02 15:04:05"

var acceptedLayouts = []string{TimeLayout, time.RFC3339Nano, "2006-01-02T15:04:05"}

// ParseTime accepts TimeLayout or RFC 3339. Zone-less values are read as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: timestamp %q, want %q or RFC 3339", domain.ErrInvalidInput, s, TimeLayout)
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
