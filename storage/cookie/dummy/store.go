// Package dummycookie is an in-memory CookieStore for tests.
package dummycookie

import (
	"sync"
	"time"

	"github.com/trezcool/lessonhub/core/session"
)

type (
	Store struct {
		sync.RWMutex
		table map[string]*cookie
	}

	cookie struct {
		value     string
		path      string
		expiresAt time.Time
	}
)

var _ session.CookieStore = (*Store)(nil)

func Open() *Store {
	return &Store{table: make(map[string]*cookie)}
}

func (s *Store) Get(name string) (string, error) {
	s.RLock()
	defer s.RUnlock()
	ck, ok := s.table[name]
	if !ok || time.Now().After(ck.expiresAt) {
		return "", session.ErrNoCookie
	}
	return ck.value, nil
}

func (s *Store) Set(name, value, path string, expires time.Time) error {
	s.Lock()
	defer s.Unlock()
	s.table[name] = &cookie{value: value, path: path, expiresAt: expires}
	return nil
}

func (s *Store) Expire(name string) error {
	s.Lock()
	defer s.Unlock()
	if ck, ok := s.table[name]; ok {
		ck.expiresAt = time.Now().Add(-24 * time.Hour)
	}
	return nil
}
