package httpserver

import (
	"encoding/json"
	"testing"
)

func FuzzBuildPollCreateParams(f *testing.F) {
	seeds := []string{
		`{"title":"Best fruit?","options":["Apple","Banana"]}`,
		`{"title":"","options":[]}`,
		`{"title":"Poll","options":["a","b"],"expires_at":"2026-01-01T00:00:00Z","is_public":false}`,
		`{"title":"Poll","options":["  ",""]}`,
		``,
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		var req pollCreateRequest
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			return
		}
		params, err := buildPollCreateParams(req)
		if err != nil {
			return
		}
		if len(params.OptionTexts) < minOptions {
			t.Fatalf("accepted %d options, minimum is %d", len(params.OptionTexts), minOptions)
		}
		if params.Title == "" {
			t.Fatalf("accepted empty title")
		}
	})
}
