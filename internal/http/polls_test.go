package httpserver

import (
	"math"
	"testing"
	"time"

	"github.com/RuchaTekade/polling-app/internal/config"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestBuildPollCreateParams(t *testing.T) {
	req := pollCreateRequest{
		Title:       "  Best fruit?  ",
		Description: strPtr("  pick one  "),
		Options:     []string{" Apple ", "", "Banana", "   "},
		ExpiresAt:   strPtr("2026-09-01T12:00:00Z"),
		IsPublic:    boolPtr(false),
	}

	params, err := buildPollCreateParams(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Title != "Best fruit?" {
		t.Fatalf("title = %q, want trimmed", params.Title)
	}
	if params.Description == nil || *params.Description != "pick one" {
		t.Fatalf("description = %v, want trimmed", params.Description)
	}
	if len(params.OptionTexts) != 2 || params.OptionTexts[0] != "Apple" || params.OptionTexts[1] != "Banana" {
		t.Fatalf("options = %v, want blank entries dropped and order kept", params.OptionTexts)
	}
	want := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	if params.ExpiresAt == nil || !params.ExpiresAt.Equal(want) {
		t.Fatalf("expires_at = %v, want %v", params.ExpiresAt, want)
	}
	if params.IsPublic {
		t.Fatalf("is_public should honor explicit false")
	}
}

func TestBuildPollCreateParams_Defaults(t *testing.T) {
	params, err := buildPollCreateParams(pollCreateRequest{
		Title:   "Poll",
		Options: []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !params.IsPublic {
		t.Fatalf("is_public should default to true")
	}
	if params.Description != nil || params.ExpiresAt != nil {
		t.Fatalf("optional fields should stay nil: %+v", params)
	}
}

func TestBuildPollCreateParams_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  pollCreateRequest
	}{
		{"empty title", pollCreateRequest{Title: "   ", Options: []string{"a", "b"}}},
		{"no options", pollCreateRequest{Title: "Poll"}},
		{"single option", pollCreateRequest{Title: "Poll", Options: []string{"only"}}},
		{"blank options", pollCreateRequest{Title: "Poll", Options: []string{"  ", "", "a"}}},
		{"bad expires_at", pollCreateRequest{Title: "Poll", Options: []string{"a", "b"}, ExpiresAt: strPtr("soon")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildPollCreateParams(tt.req); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestRoundToOneDecimal(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"zero", 0, 0},
		{"round-up", 33.35, 33.4},
		{"round-down", 66.64, 66.6},
		{"exact", 50, 50},
		{"full", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundToOneDecimal(tt.value)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Fatalf("roundToOneDecimal(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestShareURL(t *testing.T) {
	srv := &Server{cfg: config.Config{BaseURL: "https://polls.example.com"}}
	if got := srv.shareURL("abc"); got != "https://polls.example.com/poll/abc" {
		t.Fatalf("shareURL = %s", got)
	}
}
