// Package session implements the session guard: it owns the identity
// token's lifecycle and drives at most one forced relogin per browser
// session, so an expired token never turns into a redirect loop.
package session

import (
	"context"
	"encoding/hex"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/linemeet/go-events-client/events"
	"github.com/linemeet/go-events-client/identity"
	"github.com/linemeet/go-events-client/internal/apperrors"
	"github.com/linemeet/go-events-client/internal/config"
	"github.com/linemeet/go-events-client/storage"
)

// Storage keys. Everything except the relogin flag is one-time-consumed;
// the flag is cleared explicitly after a successful authenticated call.
const (
	reloginFlagKey = "events.relogin_attempted"
	draftKey       = "events.draft"
	draftSeedKey   = "events.draft_seed"
	scopeHintKey   = "events.scope_hint"
)

const scopeQueryParam = "scope_id"

// Guard guarantees every outgoing authenticated call carries a token that is
// present and outside the staleness margin, and prevents redirect loops.
type Guard struct {
	sdk        identity.SDK
	store      storage.Store
	cfg        config.Config
	currentURL func() string    // page location (injectable for testing)
	nowTime    func() time.Time // nowTime function (injectable for testing)
	logger     zerolog.Logger
}

// GuardOption defines a function type to modify the Guard instance.
type GuardOption func(*Guard)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) GuardOption {
	return func(g *Guard) {
		g.nowTime = nowFunc
	}
}

// WithCurrentURL sets the accessor for the current page location.
func WithCurrentURL(urlFunc func() string) GuardOption {
	return func(g *Guard) {
		g.currentURL = urlFunc
	}
}

// WithLogger sets a structured logger for the guard.
func WithLogger(l zerolog.Logger) GuardOption {
	return func(g *Guard) {
		g.logger = l
	}
}

// NewGuard initializes a Guard with required dependencies.
func NewGuard(sdk identity.SDK, store storage.Store, cfg config.Config, options ...GuardOption) (*Guard, error) {
	if sdk == nil {
		return nil, errors.New("[NewGuard] sdk is required")
	}
	if store == nil {
		return nil, errors.New("[NewGuard] store is required")
	}
	if cfg == nil {
		return nil, errors.New("[NewGuard] cfg is required")
	}

	guard := &Guard{
		sdk:     sdk,
		store:   store,
		cfg:     cfg,
		nowTime: time.Now,
		logger:  zerolog.Nop(),
	}
	guard.currentURL = func() string { return cfg.GetCanonicalURL() }

	for _, opt := range options {
		opt(guard)
	}

	return guard, nil
}

// Init prepares the login SDK. If this fails no authenticated call may
// proceed.
func (g *Guard) Init(ctx context.Context) error {
	liffID := g.cfg.GetLiffID()
	if liffID == "" {
		return errors.Wrap(apperrors.ErrInitialization, "[Guard.Init] LIFF_ID is not configured")
	}
	if err := g.sdk.Init(ctx, identity.Config{LiffID: liffID}); err != nil {
		return errors.Wrapf(apperrors.ErrInitialization, "[Guard.Init] sdk init: %v", err)
	}
	return nil
}

// LoggedIn reports whether the SDK holds a login session.
func (g *Guard) LoggedIn() bool {
	return g.sdk.IsLoggedIn()
}

// StartLogin runs the plain first-load login redirect. It does not touch the
// relogin guard: that flag only tracks forced relogins.
func (g *Guard) StartLogin() error {
	if err := g.sdk.Login(g.redirectTarget()); err != nil {
		return errors.Wrap(err, "[Guard.StartLogin] sdk login")
	}
	return nil
}

// FreshToken returns the current token when it is present and not within the
// staleness margin of expiry. Otherwise it returns an ErrAuthExpired error
// and the caller must not issue an authenticated call.
func (g *Guard) FreshToken() (*identity.Token, error) {
	raw := g.sdk.IDToken()
	if raw == "" {
		return nil, errors.Wrap(apperrors.ErrAuthExpired, "[Guard.FreshToken] token missing")
	}

	var token *identity.Token
	if decoded := g.sdk.DecodedIDToken(); decoded != nil {
		token = identity.FromDecoded(raw, decoded)
	} else {
		parsed, err := identity.ParseToken(raw)
		if err != nil {
			return nil, errors.Wrapf(apperrors.ErrAuthExpired, "[Guard.FreshToken] undecodable token: %v", err)
		}
		token = parsed
	}

	if token.StaleWithin(g.nowTime(), g.cfg.GetTokenStalenessMargin()) {
		return nil, errors.Wrapf(apperrors.ErrAuthExpired, "[Guard.FreshToken] token stale (expires %s)", token.ExpiresAt.Format(time.RFC3339))
	}

	return token, nil
}

// ForceReloginOnce invalidates the local session and sends the user through
// the login flow again, at most once per browser session. The returned bool
// means "control is leaving this page": false means the guard refused
// because a relogin was already attempted without an intervening success.
func (g *Guard) ForceReloginOnce(preserveDraft bool, draft Draft) (bool, error) {
	if _, err := g.store.Get(reloginFlagKey); err == nil {
		g.logger.Warn().Msg("relogin already attempted this session, not redirecting again")
		return false, nil
	}

	if preserveDraft && len(draft) > 0 {
		if err := g.saveDraft(draft); err != nil {
			return false, err
		}
	}

	if scope := g.currentScope(); scope != "" {
		if err := g.store.Set(scopeHintKey, string(scope)); err != nil {
			return false, errors.Wrap(err, "[Guard.ForceReloginOnce] save scope hint")
		}
	}

	if err := g.sdk.Logout(); err != nil {
		return false, errors.Wrap(err, "[Guard.ForceReloginOnce] sdk logout")
	}

	// The flag means a login navigation started. Set it only once Login is
	// about to run, and undo it if Login fails without navigating.
	if err := g.store.Set(reloginFlagKey, "1"); err != nil {
		return false, errors.Wrap(err, "[Guard.ForceReloginOnce] set relogin flag")
	}

	redirect := g.redirectTarget()
	g.logger.Info().Str("redirect", redirect).Msg("forcing relogin")
	if err := g.sdk.Login(redirect); err != nil {
		_ = g.store.Delete(reloginFlagKey)
		return false, errors.Wrap(err, "[Guard.ForceReloginOnce] sdk login")
	}

	return true, nil
}

// ClearReloginGuard resets the relogin flag. Call it after any fully
// authenticated, successful server round trip so a future expiry can trigger
// exactly one more forced relogin.
func (g *Guard) ClearReloginGuard() error {
	if err := g.store.Delete(reloginFlagKey); err != nil {
		return errors.Wrap(err, "[Guard.ClearReloginGuard] delete flag")
	}
	return nil
}

// RestoreDraftIfAny consumes a previously saved snapshot. The snapshot is
// removed from storage whether or not it unseals; restoring twice in a row
// yields "no draft" the second time.
func (g *Guard) RestoreDraftIfAny() (Draft, bool, error) {
	encoded, err := storage.Take(g.store, draftKey)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "[Guard.RestoreDraftIfAny] read snapshot")
	}

	seedHex, err := storage.Take(g.store, draftSeedKey)
	if err != nil {
		return nil, false, errors.Wrap(err, "[Guard.RestoreDraftIfAny] read seal seed")
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, false, errors.Wrap(err, "[Guard.RestoreDraftIfAny] decode seal seed")
	}

	key, err := deriveSealKey(seed)
	if err != nil {
		return nil, false, err
	}

	draft, err := openDraft(encoded, key)
	if err != nil {
		return nil, false, err
	}
	return draft, true, nil
}

// RestoreScopeHint consumes the scope hint saved before the redirect.
func (g *Guard) RestoreScopeHint() (events.ScopeID, bool) {
	value, err := storage.Take(g.store, scopeHintKey)
	if err != nil {
		return "", false
	}
	return events.ScopeID(value), true
}

func (g *Guard) saveDraft(draft Draft) error {
	seed, err := newSealSeed()
	if err != nil {
		return err
	}
	key, err := deriveSealKey(seed)
	if err != nil {
		return err
	}
	sealed, err := sealDraft(draft, key)
	if err != nil {
		return err
	}

	if err := g.store.Set(draftSeedKey, hex.EncodeToString(seed)); err != nil {
		return errors.Wrap(err, "[Guard.saveDraft] store seal seed")
	}
	if err := g.store.Set(draftKey, sealed); err != nil {
		return errors.Wrap(err, "[Guard.saveDraft] store snapshot")
	}
	return nil
}

// redirectTarget is the current page when it carries a scope, so the user
// lands back where they were; otherwise the configured canonical URL.
func (g *Guard) redirectTarget() string {
	if g.currentScope() != "" {
		return g.currentURL()
	}
	return g.cfg.GetCanonicalURL()
}

func (g *Guard) currentScope() events.ScopeID {
	parsed, err := url.Parse(g.currentURL())
	if err != nil {
		return ""
	}
	return events.ScopeID(parsed.Query().Get(scopeQueryParam))
}
