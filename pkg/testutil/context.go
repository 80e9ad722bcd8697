package testutil

import (
	"net/http"
	"time"

	"datatests/pkg/requestcontext"
)

// WithActor sets the acting admin the way the admin middleware would.
func WithActor(req *http.Request, actor string) *http.Request {
	return req.WithContext(requestcontext.WithActor(req.Context(), actor))
}

// WithTime pins the request clock.
func WithTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
