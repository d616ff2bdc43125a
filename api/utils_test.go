package api

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetIntParam(t *testing.T) {
	minVal, maxVal := 1, 365

	tests := []struct {
		name     string
		url      string
		expected int
	}{
		{"Missing uses default", "/api/signals/recent", 30},
		{"Valid value", "/api/signals/recent?days=7", 7},
		{"Non-numeric uses default", "/api/signals/recent?days=week", 30},
		{"Below range uses default", "/api/signals/recent?days=0", 30},
		{"Above range uses default", "/api/signals/recent?days=9999", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			if got := getIntParam(r, "days", 30, &minVal, &maxVal); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestParseTimeOrNow(t *testing.T) {
	parsed := parseTimeOrNow("2026-03-14T09:30:00Z")
	expected := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	if !parsed.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, parsed)
	}

	before := time.Now().UTC()
	fallback := parseTimeOrNow("")
	if fallback.Before(before) || fallback.After(time.Now().UTC().Add(time.Second)) {
		t.Errorf("expected fallback near now, got %v", fallback)
	}

	malformed := parseTimeOrNow("14/03/2026")
	if malformed.Before(before) {
		t.Errorf("expected malformed input to fall back to now, got %v", malformed)
	}
}
