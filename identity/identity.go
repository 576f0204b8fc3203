// Package identity defines the contract the events client has with the
// login SDK running in the page, plus the bearer token it hands out.
//
// The SDK is an interface so the session guard can be exercised without a
// browser; fakeidentity provides a scriptable implementation for tests.
package identity

import "context"

// Config holds the parameters required to initialise the login SDK.
type Config struct {
	// LiffID identifies the mini-app registration with the provider.
	LiffID string
}

// DecodedToken is the claim set the SDK exposes from the current ID token.
// The client treats these claims as hints only; the server re-verifies the
// raw token on every scope-sensitive call.
type DecodedToken struct {
	Subject   string // user id ("sub")
	ExpiresAt int64  // epoch seconds ("exp")
	Name      string
	Picture   string
}

// SDK is the minimal surface of the login SDK the client depends on.
type SDK interface {
	// Init prepares the SDK. No other method may be called until Init
	// returns nil.
	Init(ctx context.Context, cfg Config) error

	// IsLoggedIn reports whether the SDK holds a login session.
	IsLoggedIn() bool

	// Login navigates the user agent to the provider's login flow. The
	// provider returns the user to redirectURI afterwards; control does not
	// come back to the caller.
	Login(redirectURI string) error

	// Logout invalidates the local SDK session.
	Logout() error

	// IDToken returns the raw ID token, or "" when absent.
	IDToken() string

	// DecodedIDToken returns the decoded claims of the current ID token, or
	// nil when absent.
	DecodedIDToken() *DecodedToken
}
