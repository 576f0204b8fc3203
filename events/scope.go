package events

import (
	"regexp"

	"github.com/pkg/errors"

	"github.com/linemeet/go-events-client/internal/apperrors"
)

// ScopeID identifies the chat context an event belongs to: a user for 1:1
// chats, a group for group chats.
type ScopeID string

var (
	groupScopePattern = regexp.MustCompile(`^C[0-9a-f]{32}$`)
	userScopePattern  = regexp.MustCompile(`^U[0-9a-f]{32}$`)
)

// IsGroup reports whether the scope is a group chat.
func (s ScopeID) IsGroup() bool {
	return groupScopePattern.MatchString(string(s))
}

// ValidateScopeID checks the scope id format locally so malformed ids fail
// before any network call.
func ValidateScopeID(s ScopeID) error {
	if groupScopePattern.MatchString(string(s)) || userScopePattern.MatchString(string(s)) {
		return nil
	}
	return errors.Wrapf(apperrors.ErrValidation, "[ValidateScopeID] malformed scope id %q", s)
}

// ValidateGroupID checks a group id format. Group ids are "C" followed by 32
// lowercase hex characters.
func ValidateGroupID(id string) error {
	if groupScopePattern.MatchString(id) {
		return nil
	}
	return errors.Wrapf(apperrors.ErrValidation, "[ValidateGroupID] malformed group id %q", id)
}

// Validate performs presence checks on a create/update payload. Deeper form
// validation is the server's job.
func (in EventInput) Validate() error {
	if in.Name == "" {
		return errors.Wrap(apperrors.ErrValidation, "[EventInput.Validate] name is required")
	}
	if in.Date == "" {
		return errors.Wrap(apperrors.ErrValidation, "[EventInput.Validate] date is required")
	}
	if in.ScopeID == "" {
		return errors.Wrap(apperrors.ErrValidation, "[EventInput.Validate] scope_id is required")
	}
	if err := ValidateScopeID(in.ScopeID); err != nil {
		return err
	}
	switch in.EndMode {
	case EndModeTime, EndModeDuration, EndModeNone, "":
	default:
		return errors.Wrapf(apperrors.ErrValidation, "[EventInput.Validate] unknown endmode %q", in.EndMode)
	}
	return nil
}
