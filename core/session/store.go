package session

import (
	"time"

	"github.com/pkg/errors"
)

// ErrNoCookie is returned by CookieStore.Get when the named cookie is absent
// or past its expiry.
var ErrNoCookie = errors.New("cookie not found")

// CookieStore is scoped key/value persistence with expiry. The Manager is its
// only writer; it holds nothing but the session identifier.
type CookieStore interface {
	Get(name string) (string, error)
	Set(name, value, path string, expires time.Time) error
	// Expire clears a cookie by setting an already-expired date on it.
	Expire(name string) error
}
