package config

import "os"

const (
	appNameVar      = "APP_NAME"
	apiBaseURLVar   = "API_BASE_URL"
	canonicalURLVar = "CANONICAL_URL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "LINE Events")
}

// GetAPIBaseURL returns the origin of the events REST API
// (e.g., "https://events.example.com"). Paths are appended by the gateway.
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8000")
}

// GetCanonicalURL is the relogin redirect fallback used when the current
// location carries no scope.
func (EnvVars) GetCanonicalURL() string {
	return GetEnv(canonicalURLVar, "http://localhost:8000/liff/")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
