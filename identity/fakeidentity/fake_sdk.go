package fakeidentity

import (
	"context"
	"sync"

	"github.com/linemeet/go-events-client/identity"
)

var _ identity.SDK = (*FakeSDK)(nil)

// FakeSDK is a scriptable login SDK for tests. Set the token and decoded
// claims it should hand out, then inspect the recorded Login/Logout calls.
type FakeSDK struct {
	InitErr   error
	LoginErr  error
	LogoutErr error
	LoggedIn  bool

	token   string
	decoded *identity.DecodedToken

	LoginCalls  []string // redirect URIs, in call order
	LogoutCalls int

	lock sync.Mutex
}

func NewFakeSDK() *FakeSDK {
	return &FakeSDK{LoggedIn: true}
}

// SetToken scripts the raw token and decoded claims returned by the SDK.
func (f *FakeSDK) SetToken(raw string, decoded *identity.DecodedToken) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.token = raw
	f.decoded = decoded
}

func (f *FakeSDK) Init(_ context.Context, _ identity.Config) error {
	return f.InitErr
}

func (f *FakeSDK) IsLoggedIn() bool {
	return f.LoggedIn
}

func (f *FakeSDK) Login(redirectURI string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.LoginErr != nil {
		return f.LoginErr
	}
	f.LoginCalls = append(f.LoginCalls, redirectURI)
	return nil
}

func (f *FakeSDK) Logout() error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.LogoutErr != nil {
		return f.LogoutErr
	}
	f.LogoutCalls++
	f.token = ""
	f.decoded = nil
	f.LoggedIn = false
	return nil
}

func (f *FakeSDK) IDToken() string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.token
}

func (f *FakeSDK) DecodedIDToken() *identity.DecodedToken {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.decoded
}
