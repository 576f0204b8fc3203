package config

type Config interface {
	EnvConfig
	LoginConfig
	SessionConfig
}

type EnvConfig interface {
	GetAppName() string
	GetAPIBaseURL() string
	GetCanonicalURL() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Login
	Session
}

func New() Config {
	return mainConfig{}
}
