package session

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/lessonhub/core"
)

// fragmentParam carries the one-time identifier the identity provider hands
// back via the URL fragment.
const fragmentParam = "session_id"

type (
	// Backend is the slice of the LessonHub API the Manager talks to.
	Backend interface {
		Me(ctx context.Context, token string) (User, error)
		ExchangeProfile(ctx context.Context, handoffID string) error
	}

	// Store is the slice of the application state the Manager owns. Both
	// transitions advance the state epoch so that in-flight results issued
	// under an older session are discarded on arrival.
	Store interface {
		BeginSession(sess Session) int64
		EndSession() int64
	}

	Manager struct {
		conf    *core.Config
		cookies CookieStore
		backend Backend
		state   Store
		nav     core.Navigator
		log     core.Logger
	}
)

func NewManager(conf *core.Config, cookies CookieStore, backend Backend, state Store, nav core.Navigator, logger core.Logger) *Manager {
	return &Manager{
		conf:    conf,
		cookies: cookies,
		backend: backend,
		state:   state,
		nav:     nav,
		log:     logger,
	}
}

// Resolve validates the stored session identifier against the identity
// endpoint. It returns nil when no identifier is stored or validation fails;
// a failed validation is logged but leaves the stored identifier untouched.
func (m *Manager) Resolve(ctx context.Context) *Session {
	token, err := m.cookies.Get(m.conf.Auth.CookieName)
	if err != nil {
		if err != ErrNoCookie {
			m.log.Warn("session: reading stored identifier", err)
		}
		return nil
	}
	usr, err := m.backend.Me(ctx, token)
	if err != nil {
		m.log.Warn("session: validating stored identifier", err)
		return nil
	}
	sess := Session{Token: token, User: usr}
	m.state.BeginSession(sess)
	return &sess
}

// CompleteHandoff consumes the one-time identifier from the URL fragment,
// exchanges it for a durable session and persists the cookie. It returns the
// fragment with the identifier stripped; the caller must replace the URL with
// it so re-navigation does not replay the exchange. Invoking it again with
// the cleaned fragment is a no-op.
func (m *Manager) CompleteHandoff(ctx context.Context, fragment string) (string, *Session, error) {
	id, cleaned := consumeFragment(fragment)
	if id == "" {
		return cleaned, nil, nil
	}
	if err := m.backend.ExchangeProfile(ctx, id); err != nil {
		m.log.Error("session: exchanging handoff identifier", err)
		return cleaned, nil, errors.Wrap(err, "exchanging handoff identifier")
	}
	expires := time.Now().Add(m.conf.Auth.CookieMaxAge)
	if err := m.cookies.Set(m.conf.Auth.CookieName, id, m.conf.Auth.CookiePath, expires); err != nil {
		return cleaned, nil, errors.Wrap(err, "persisting session cookie")
	}
	return cleaned, m.Resolve(ctx), nil
}

// BeginLogin sends the user to the identity provider with the current origin
// as the return target. Navigation is terminal for this execution context;
// the provider comes back through CompleteHandoff.
func (m *Manager) BeginLogin() error {
	u, err := url.Parse(m.conf.Auth.ProviderURL)
	if err != nil {
		return errors.Wrap(err, "parsing provider URL")
	}
	q := u.Query()
	q.Set("redirect", m.conf.Auth.Origin)
	q.Set("state", uuid.New().String())
	u.RawQuery = q.Encode()
	return m.nav.OpenURL(u.String())
}

// EndSession clears the stored identifier and the whole application state in
// one transition; no collection outlives the session.
func (m *Manager) EndSession() error {
	if err := m.cookies.Expire(m.conf.Auth.CookieName); err != nil {
		return errors.Wrap(err, "expiring session cookie")
	}
	m.state.EndSession()
	return nil
}

func consumeFragment(fragment string) (id, cleaned string) {
	raw := strings.TrimPrefix(fragment, "#")
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return "", fragment
	}
	id = vals.Get(fragmentParam)
	if id == "" {
		return "", fragment
	}
	vals.Del(fragmentParam)
	return id, vals.Encode()
}
