package core

// Logger is the application-wide diagnostics contract.
// Implementations may inspect args for a session user to attach to reports.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Navigator hands a URL to the user's browsing context: a full redirect for
// login, a separate popup for the external-provider consent screen.
type Navigator interface {
	OpenURL(url string) error
}
