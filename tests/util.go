package testutil

import (
	"time"

	"github.com/trezcool/lessonhub/core"
	"github.com/trezcool/lessonhub/core/session"
)

// Logger discards everything; Fatal does not exit.
type Logger struct{}

var _ core.Logger = Logger{}

func (Logger) Debug(string, ...interface{}) {}
func (Logger) Info(string, ...interface{})  {}
func (Logger) Warn(string, ...interface{})  {}
func (Logger) Error(string, ...interface{}) {}
func (Logger) Fatal(string, ...interface{}) {}

// NewConfig returns a Config suitable for tests, without touching the
// environment.
func NewConfig() *core.Config {
	return &core.Config{
		Env:      "TEST",
		TestMode: true,
		AppName:  "LessonHub",
		API: core.APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 5 * time.Second,
		},
		Auth: core.AuthConfig{
			ProviderURL:  "https://auth.example.com/",
			Origin:       "http://localhost:3000",
			CookieName:   "session_id",
			CookiePath:   "/",
			CookieMaxAge: 7 * 24 * time.Hour,
		},
	}
}

// Teacher returns a teacher identity fixture.
func Teacher() session.User {
	return session.User{
		ID:      "t-1",
		Email:   "jane@school.test",
		Name:    "Jane Doe",
		Picture: "https://img.example.com/jane.png",
		Role:    session.RoleTeacher,
	}
}
