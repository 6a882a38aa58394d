// Package voterid issues and persists the opaque voter identifier used to
// enforce one vote per voter per poll. The identifier is an unauthenticated
// bare token: the server never validates who is behind it, and a client that
// discards its cookie simply becomes a new voter.
package voterid

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the browser-persisted carrier of the voter id.
const CookieName = "pollbox_voter"

// HeaderName lets non-browser clients supply the voter id directly.
const HeaderName = "X-Voter-Id"

const cookieMaxAge = 365 * 24 * time.Hour

// New generates a fresh opaque voter id.
func New() string {
	return uuid.NewString()
}

// FromRequest resolves the caller's voter id: header first, then cookie.
// Returns the empty string when the caller carries neither.
func FromRequest(r *http.Request) string {
	if id := r.Header.Get(HeaderName); id != "" {
		return id
	}
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// Issue resolves the caller's voter id, minting and setting a cookie when the
// request carries none.
func Issue(w http.ResponseWriter, r *http.Request) string {
	if id := FromRequest(r); id != "" {
		return id
	}
	id := New()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
