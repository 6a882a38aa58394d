package voterid

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFromRequestHeaderWinsOverCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderName, "header-id")
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-id"})

	if got := FromRequest(req); got != "header-id" {
		t.Fatalf("FromRequest = %q, want header-id", got)
	}
}

func TestFromRequestCookieFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-id"})

	if got := FromRequest(req); got != "cookie-id" {
		t.Fatalf("FromRequest = %q, want cookie-id", got)
	}
}

func TestFromRequestEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := FromRequest(req); got != "" {
		t.Fatalf("FromRequest = %q, want empty", got)
	}
}

func TestIssueMintsAndSetsCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	id := Issue(rec, req)
	if id == "" {
		t.Fatal("Issue returned empty id")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	if cookies[0].Name != CookieName || cookies[0].Value != id {
		t.Fatalf("cookie = %s=%s, want %s=%s", cookies[0].Name, cookies[0].Value, CookieName, id)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("cookie should be http-only")
	}
}

func TestIssueEchoesExistingID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "existing"})
	rec := httptest.NewRecorder()

	if id := Issue(rec, req); id != "existing" {
		t.Fatalf("Issue = %q, want existing", id)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("Issue should not reset an existing cookie")
	}
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := New()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate voter id %s", id)
		}
		seen[id] = struct{}{}
	}
}
