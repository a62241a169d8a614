package session_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/trezcool/lessonhub/core/classroom"
	"github.com/trezcool/lessonhub/core/session"
	dummycookie "github.com/trezcool/lessonhub/storage/cookie/dummy"
	testutil "github.com/trezcool/lessonhub/tests"
)

type stubBackend struct {
	meFunc        func(token string) (session.User, error)
	exchangeErr   error
	exchangeCalls int
}

func (b *stubBackend) Me(_ context.Context, token string) (session.User, error) {
	return b.meFunc(token)
}

func (b *stubBackend) ExchangeProfile(_ context.Context, _ string) error {
	b.exchangeCalls++
	return b.exchangeErr
}

type stubNavigator struct {
	opened []string
}

func (n *stubNavigator) OpenURL(u string) error {
	n.opened = append(n.opened, u)
	return nil
}

func setup(backend session.Backend) (*session.Manager, *classroom.State, session.CookieStore, *stubNavigator) {
	state := classroom.NewState()
	cookies := dummycookie.Open()
	nav := &stubNavigator{}
	mgr := session.NewManager(testutil.NewConfig(), cookies, backend, state, nav, testutil.Logger{})
	return mgr, state, cookies, nav
}

func TestManagerResolve(t *testing.T) {
	ctx := context.Background()
	teacher := testutil.Teacher()

	accept := func(token string) (session.User, error) {
		if token == "tok-valid" {
			return teacher, nil
		}
		return session.User{}, session.ErrNoCookie // any error will do
	}

	t.Run("no stored identifier", func(t *testing.T) {
		mgr, state, _, _ := setup(&stubBackend{meFunc: accept})
		if sess := mgr.Resolve(ctx); sess != nil {
			t.Errorf("Resolve() = %v, want nil", sess)
		}
		if state.Session() != nil {
			t.Error("state should stay unauthenticated")
		}
	})

	t.Run("rejected identifier leaves cookie untouched", func(t *testing.T) {
		mgr, state, cookies, _ := setup(&stubBackend{meFunc: accept})
		_ = cookies.Set("session_id", "tok-stale", "/", time.Now().Add(time.Hour))

		if sess := mgr.Resolve(ctx); sess != nil {
			t.Errorf("Resolve() = %v, want nil", sess)
		}
		if _, err := cookies.Get("session_id"); err != nil {
			t.Errorf("cookie should survive a failed validation: %v", err)
		}
		if state.Session() != nil {
			t.Error("state should stay unauthenticated")
		}
	})

	t.Run("valid identifier", func(t *testing.T) {
		mgr, state, cookies, _ := setup(&stubBackend{meFunc: accept})
		_ = cookies.Set("session_id", "tok-valid", "/", time.Now().Add(time.Hour))
		before := state.Epoch()

		sess := mgr.Resolve(ctx)
		if sess == nil {
			t.Fatal("Resolve() = nil, want session")
		}
		if sess.User != teacher {
			t.Errorf("Resolve() user = %v, want %v", sess.User, teacher)
		}
		if sess.Token != "tok-valid" {
			t.Errorf("Resolve() token = %q", sess.Token)
		}
		if got := state.Epoch(); got != before+1 {
			t.Errorf("epoch = %d, want %d", got, before+1)
		}
		if state.Session() == nil {
			t.Error("state should hold the session")
		}
	})
}

func TestManagerCompleteHandoff(t *testing.T) {
	ctx := context.Background()
	teacher := testutil.Teacher()
	accept := func(string) (session.User, error) { return teacher, nil }

	t.Run("success persists cookie and strips fragment", func(t *testing.T) {
		backend := &stubBackend{meFunc: accept}
		mgr, state, cookies, _ := setup(backend)

		cleaned, sess, err := mgr.CompleteHandoff(ctx, "#session_id=one-time&foo=bar")
		if err != nil {
			t.Fatalf("CompleteHandoff() error = %v", err)
		}
		if sess == nil || sess.User != teacher {
			t.Fatalf("CompleteHandoff() session = %v", sess)
		}
		if cleaned != "foo=bar" {
			t.Errorf("cleaned fragment = %q, want %q", cleaned, "foo=bar")
		}
		if tok, err := cookies.Get("session_id"); err != nil || tok != "one-time" {
			t.Errorf("cookie = %q, %v", tok, err)
		}
		if state.Session() == nil {
			t.Error("state should hold the session")
		}

		// consumed fragment: re-invoking is a no-op
		cleaned2, sess2, err := mgr.CompleteHandoff(ctx, cleaned)
		if err != nil || sess2 != nil {
			t.Errorf("re-invoke = (%v, %v), want no-op", sess2, err)
		}
		if cleaned2 != cleaned {
			t.Errorf("re-invoke cleaned = %q, want %q", cleaned2, cleaned)
		}
		if backend.exchangeCalls != 1 {
			t.Errorf("exchange calls = %d, want 1", backend.exchangeCalls)
		}
	})

	t.Run("exchange failure leaves state unauthenticated", func(t *testing.T) {
		backend := &stubBackend{meFunc: accept, exchangeErr: session.ErrNoCookie}
		mgr, state, cookies, _ := setup(backend)

		_, sess, err := mgr.CompleteHandoff(ctx, "session_id=one-time")
		if err == nil {
			t.Error("CompleteHandoff() error = nil, want error")
		}
		if sess != nil {
			t.Errorf("CompleteHandoff() session = %v, want nil", sess)
		}
		if _, err := cookies.Get("session_id"); err != session.ErrNoCookie {
			t.Errorf("no cookie should be persisted: %v", err)
		}
		if state.Session() != nil {
			t.Error("state should stay unauthenticated")
		}
	})

	t.Run("fragment without identifier is a no-op", func(t *testing.T) {
		backend := &stubBackend{meFunc: accept}
		mgr, _, _, _ := setup(backend)

		cleaned, sess, err := mgr.CompleteHandoff(ctx, "#foo=bar")
		if err != nil || sess != nil {
			t.Errorf("CompleteHandoff() = (%v, %v), want no-op", sess, err)
		}
		if cleaned != "#foo=bar" {
			t.Errorf("cleaned = %q, want fragment unchanged", cleaned)
		}
		if backend.exchangeCalls != 0 {
			t.Errorf("exchange calls = %d, want 0", backend.exchangeCalls)
		}
	})
}

func TestManagerBeginLogin(t *testing.T) {
	mgr, _, _, nav := setup(&stubBackend{meFunc: func(string) (session.User, error) {
		return session.User{}, nil
	}})

	if err := mgr.BeginLogin(); err != nil {
		t.Fatalf("BeginLogin() error = %v", err)
	}
	if len(nav.opened) != 1 {
		t.Fatalf("opened %d URLs, want 1", len(nav.opened))
	}
	u, err := url.Parse(nav.opened[0])
	if err != nil {
		t.Fatalf("parsing opened URL: %v", err)
	}
	if got := u.Query().Get("redirect"); got != "http://localhost:3000" {
		t.Errorf("redirect = %q", got)
	}
	if u.Query().Get("state") == "" {
		t.Error("state parameter missing")
	}
}

func TestManagerEndSession(t *testing.T) {
	ctx := context.Background()
	teacher := testutil.Teacher()
	mgr, state, cookies, _ := setup(&stubBackend{meFunc: func(string) (session.User, error) {
		return teacher, nil
	}})
	_ = cookies.Set("session_id", "tok-valid", "/", time.Now().Add(time.Hour))

	if sess := mgr.Resolve(ctx); sess == nil {
		t.Fatal("Resolve() = nil, want session")
	}
	epoch := state.Epoch()
	state.SetClasses(epoch, []classroom.Class{{ID: "c1"}})
	state.SetLessons(epoch, []classroom.Lesson{{ID: "l1"}})
	state.SetNotifications(epoch, []classroom.Notification{{ID: "n1"}})
	state.SetMessages(epoch, []classroom.Message{{ID: "m1"}})

	if err := mgr.EndSession(); err != nil {
		t.Fatalf("EndSession() error = %v", err)
	}

	if _, err := cookies.Get("session_id"); err != session.ErrNoCookie {
		t.Errorf("cookie should be expired: %v", err)
	}
	if state.Session() != nil {
		t.Error("session should be cleared")
	}
	if n := len(state.Classes()) + len(state.Lessons()) + len(state.Notifications()) + len(state.Messages()); n != 0 {
		t.Errorf("collections should be cleared, %d entries left", n)
	}

	// a fetch issued before logout cannot repopulate the cleared state
	if state.SetClasses(epoch, []classroom.Class{{ID: "c2"}}) {
		t.Error("stale apply should be discarded")
	}
	if len(state.Classes()) != 0 {
		t.Error("stale apply leaked into state")
	}
}
