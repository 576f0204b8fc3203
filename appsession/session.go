// Package appsession ties the session guard and the API gateway into one
// session context object, constructed once at startup and threaded through
// calls. It owns the recovery policy: a call that fails with AuthExpired
// triggers at most one forced relogin, and a successful authenticated round
// trip re-arms the guard.
package appsession

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/linemeet/go-events-client/events"
	"github.com/linemeet/go-events-client/gateway"
	"github.com/linemeet/go-events-client/internal/apperrors"
	"github.com/linemeet/go-events-client/session"
)

// Session is the per-page session context: guard, gateway, the chat scope
// the page was opened for, and the last event list fetched.
type Session struct {
	guard  *session.Guard
	gw     *gateway.Client
	logger zerolog.Logger

	scopeID events.ScopeID
	userID  string
	cached  []events.Event
}

// SessionOption defines a function type to modify the Session instance.
type SessionOption func(*Session)

// WithLogger sets a structured logger for the session.
func WithLogger(l zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// New initializes a Session with required dependencies.
func New(guard *session.Guard, gw *gateway.Client, options ...SessionOption) (*Session, error) {
	if guard == nil {
		return nil, errors.New("[appsession.New] guard is required")
	}
	if gw == nil {
		return nil, errors.New("[appsession.New] gateway is required")
	}

	sess := &Session{
		guard:  guard,
		gw:     gw,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(sess)
	}
	return sess, nil
}

// Start runs the page-load sequence: SDK init, login check, token freshness,
// server-side verification, scope hint restoration. A nil return means the
// session is authenticated and the relogin guard is re-armed.
//
// ErrReloginStarted means control is leaving the page; the caller must stop.
func (s *Session) Start(ctx context.Context) error {
	if err := s.guard.Init(ctx); err != nil {
		return err
	}

	if !s.guard.LoggedIn() {
		s.logger.Info().Msg("not logged in, starting login")
		if err := s.guard.StartLogin(); err != nil {
			return err
		}
		return errors.Wrap(apperrors.ErrReloginStarted, "[Session.Start] login redirect")
	}

	token, err := s.guard.FreshToken()
	if err != nil {
		return s.reloginOrFail(err, false, nil)
	}

	if err := s.gw.VerifyIDToken(ctx, token); err != nil {
		if apperrors.Is(err, apperrors.ErrAuthExpired) {
			return s.reloginOrFail(err, false, nil)
		}
		return err
	}

	s.userID = token.Subject

	if hint, ok := s.guard.RestoreScopeHint(); ok {
		s.scopeID = hint
	}

	return s.guard.ClearReloginGuard()
}

// SetScope sets the chat scope, validating the format locally.
func (s *Session) SetScope(scopeID events.ScopeID) error {
	if err := events.ValidateScopeID(scopeID); err != nil {
		return err
	}
	s.scopeID = scopeID
	return nil
}

// Scope returns the current chat scope.
func (s *Session) Scope() events.ScopeID { return s.scopeID }

// UserID returns the authenticated user's id, set by Start.
func (s *Session) UserID() string { return s.userID }

// CachedEvents returns the last event list fetched by LoadEvents.
func (s *Session) CachedEvents() []events.Event { return s.cached }

// RestoreDraft consumes a form snapshot preserved across a forced relogin.
func (s *Session) RestoreDraft() (session.Draft, bool, error) {
	return s.guard.RestoreDraftIfAny()
}

// LoadEvents fetches and caches the events of the current scope.
func (s *Session) LoadEvents(ctx context.Context) ([]events.Event, error) {
	items, err := s.gw.ListEvents(ctx, s.scopeID)
	if err != nil {
		return nil, err
	}
	s.cached = items
	return items, nil
}

// LoadMyEvents fetches the events the user created or joined.
func (s *Session) LoadMyEvents(ctx context.Context) ([]events.Event, error) {
	token, err := s.guard.FreshToken()
	if err != nil {
		return nil, s.reloginOrFail(err, false, nil)
	}

	items, err := s.gw.MyEvents(ctx, token)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAuthExpired) {
			return nil, s.reloginOrFail(err, false, nil)
		}
		return nil, err
	}

	return items, s.guard.ClearReloginGuard()
}

// SaveEvent creates the event, or updates it when eventID is non-nil. The
// form input is preserved as a draft if the save forces a relogin, so the
// user does not retype it after the redirect.
func (s *Session) SaveEvent(ctx context.Context, eventID *int64, input events.EventInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	draft := DraftFromInput(input)

	token, err := s.guard.FreshToken()
	if err != nil {
		return s.reloginOrFail(err, true, draft)
	}

	if eventID != nil {
		err = s.gw.UpdateEvent(ctx, token, *eventID, input)
	} else {
		err = s.gw.CreateEvent(ctx, token, input)
	}
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAuthExpired) {
			return s.reloginOrFail(err, true, draft)
		}
		return err
	}

	return s.guard.ClearReloginGuard()
}

// RemoveEvent deletes an event.
func (s *Session) RemoveEvent(ctx context.Context, eventID int64) error {
	token, err := s.guard.FreshToken()
	if err != nil {
		return s.reloginOrFail(err, false, nil)
	}

	if err := s.gw.DeleteEvent(ctx, token, eventID); err != nil {
		if apperrors.Is(err, apperrors.ErrAuthExpired) {
			return s.reloginOrFail(err, false, nil)
		}
		return err
	}

	return s.guard.ClearReloginGuard()
}

// Rsvp joins an event. Nothing typed is at risk here, so no draft is
// preserved when the join forces a relogin.
func (s *Session) Rsvp(ctx context.Context, eventID int64) (events.RsvpState, error) {
	token, err := s.guard.FreshToken()
	if err != nil {
		return "", s.reloginOrFail(err, false, nil)
	}

	state, err := s.gw.JoinEvent(ctx, token, eventID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAuthExpired) {
			return "", s.reloginOrFail(err, false, nil)
		}
		return "", err
	}

	return state, s.guard.ClearReloginGuard()
}

// CancelRsvp withdraws from an event.
func (s *Session) CancelRsvp(ctx context.Context, eventID int64) (events.RsvpState, error) {
	token, err := s.guard.FreshToken()
	if err != nil {
		return "", s.reloginOrFail(err, false, nil)
	}

	state, err := s.gw.CancelRsvp(ctx, token, eventID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAuthExpired) {
			return "", s.reloginOrFail(err, false, nil)
		}
		return "", err
	}

	return state, s.guard.ClearReloginGuard()
}

// RefreshRsvpStatuses fetches the user's standing on a batch of events. This
// is a listing decoration, not a user action: a stale token surfaces as
// AuthExpired without redirecting, and no request is sent.
func (s *Session) RefreshRsvpStatuses(ctx context.Context, ids []int64) (map[int64]events.RsvpStatus, error) {
	token, err := s.guard.FreshToken()
	if err != nil {
		return nil, err
	}
	return s.gw.RsvpStatuses(ctx, token, ids)
}

// LoadParticipants fetches an event's participant listing. Same policy as
// RefreshRsvpStatuses: no automatic relogin for decorations.
func (s *Session) LoadParticipants(ctx context.Context, eventID int64) (*events.ParticipantList, error) {
	token, err := s.guard.FreshToken()
	if err != nil {
		return nil, err
	}
	return s.gw.Participants(ctx, token, eventID)
}

// CheckGroup validates a group id locally, then asks the server about it.
// A malformed id fails with ErrValidation before any network call.
func (s *Session) CheckGroup(ctx context.Context, groupID string) (*events.Group, error) {
	if err := events.ValidateGroupID(groupID); err != nil {
		return nil, err
	}

	token, err := s.guard.FreshToken()
	if err != nil {
		return nil, s.reloginOrFail(err, false, nil)
	}

	group, err := s.gw.ValidateGroup(ctx, token, groupID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAuthExpired) {
			return nil, s.reloginOrFail(err, false, nil)
		}
		return nil, err
	}

	return group, s.guard.ClearReloginGuard()
}

// SuggestGroups fetches group suggestions for the event form.
func (s *Session) SuggestGroups(ctx context.Context) ([]events.Group, error) {
	token, err := s.guard.FreshToken()
	if err != nil {
		return nil, s.reloginOrFail(err, false, nil)
	}

	items, err := s.gw.SuggestGroups(ctx, token)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAuthExpired) {
			return nil, s.reloginOrFail(err, false, nil)
		}
		return nil, err
	}

	return items, s.guard.ClearReloginGuard()
}

// reloginOrFail applies the one-shot recovery policy to an AuthExpired
// failure. When the guard navigates, ErrReloginStarted tells the caller to
// stop touching the page. When the guard refuses (a relogin was already
// attempted), the original failure surfaces.
func (s *Session) reloginOrFail(cause error, preserveDraft bool, draft session.Draft) error {
	navigating, err := s.guard.ForceReloginOnce(preserveDraft, draft)
	if err != nil {
		return err
	}
	if !navigating {
		return cause
	}
	return errors.Wrap(apperrors.ErrReloginStarted, "[Session] relogin in progress")
}
