package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Token is an opaque bearer credential plus the two claims the client needs
// locally: who it is for and when it stops being usable.
type Token struct {
	Raw       string
	Subject   string
	ExpiresAt time.Time
}

// ParseToken decodes the claims of a raw ID token WITHOUT verifying its
// signature. The token is a claim, not a proof: the server verifies it
// independently on every call, so the client only needs the payload.
func ParseToken(raw string) (*Token, error) {
	if raw == "" {
		return nil, errors.New("[ParseToken] empty token")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, errors.Wrap(err, "[ParseToken] malformed token")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, errors.Wrap(err, "[ParseToken] subject claim")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, errors.New("[ParseToken] missing exp claim")
	}

	return &Token{
		Raw:       raw,
		Subject:   sub,
		ExpiresAt: exp.Time,
	}, nil
}

// FromDecoded builds a Token from the SDK's already-decoded claims.
func FromDecoded(raw string, decoded *DecodedToken) *Token {
	return &Token{
		Raw:       raw,
		Subject:   decoded.Subject,
		ExpiresAt: time.Unix(decoded.ExpiresAt, 0),
	}
}

// StaleWithin reports whether the token is expired or inside the safety
// margin of expiry: now >= expiresAt - margin.
func (t *Token) StaleWithin(now time.Time, margin time.Duration) bool {
	return !now.Before(t.ExpiresAt.Add(-margin))
}
