package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env      string
		Debug    bool
		TestMode bool
		AppName  string
		Build    string

		RollbarToken string

		API  APIConfig
		Auth AuthConfig

		// CookieDBPath is where the persistent cookie store lives.
		CookieDBPath string
	}

	APIConfig struct {
		BaseURL string
		Timeout time.Duration
	}

	AuthConfig struct {
		ProviderURL  string
		Origin       string
		CookieName   string
		CookiePath   string
		CookieMaxAge time.Duration
	}
)

// NewConfig loads the configuration from defaults, an optional
// config/.env.<env> file and environment variables.
func NewConfig() (*Config, error) {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "LessonHub")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("api.baseURL", "http://localhost:8000")
	conf.SetDefault("api.timeout", 15*time.Second)
	conf.SetDefault("auth.providerURL", "https://auth.emergentagent.com/")
	conf.SetDefault("auth.origin", "http://localhost:3000")
	conf.SetDefault("auth.cookieName", "session_id")
	conf.SetDefault("auth.cookiePath", "/")
	conf.SetDefault("auth.cookieMaxAge", 7*24*time.Hour)
	conf.SetDefault("cookieDBPath", "lessonhub-cookies.db")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
		API: APIConfig{
			BaseURL: conf.GetString("api.baseURL"),
			Timeout: conf.GetDuration("api.timeout"),
		},
		Auth: AuthConfig{
			ProviderURL:  conf.GetString("auth.providerURL"),
			Origin:       conf.GetString("auth.origin"),
			CookieName:   conf.GetString("auth.cookieName"),
			CookiePath:   conf.GetString("auth.cookiePath"),
			CookieMaxAge: conf.GetDuration("auth.cookieMaxAge"),
		},
		CookieDBPath: conf.GetString("cookieDBPath"),
	}, nil
}

func getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
