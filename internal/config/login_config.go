package config

import "time"

type LoginConfig interface {
	GetLiffID() string
	GetChannelID() string
	GetAuthorizeURL() string
}

type Login struct{}

var _ LoginConfig = Login{}

func (Login) GetLiffID() string {
	return GetEnv("LIFF_ID", "")
}

func (Login) GetChannelID() string {
	return GetEnv("LINE_CHANNEL_ID", "")
}

// GetAuthorizeURL is the LINE Login v2.1 authorization endpoint used for the
// out-of-app login fallback.
func (Login) GetAuthorizeURL() string {
	return GetEnv("LINE_AUTHORIZE_URL", "https://access.line.me/oauth2/v2.1/authorize")
}

type SessionConfig interface {
	GetTokenStalenessMargin() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

// GetTokenStalenessMargin is how close to expiry a token is still handed out.
// Anything inside the margin is treated as already expired.
func (Session) GetTokenStalenessMargin() time.Duration {
	return 30 * time.Second
}
