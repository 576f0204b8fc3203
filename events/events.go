// Package events holds the domain model for the mini-app events service:
// events, RSVP state, participants, and the chat scope an event belongs to.
package events

// EndMode says how an event's end is specified.
type EndMode string

const (
	EndModeTime     EndMode = "time"     // explicit end clock time
	EndModeDuration EndMode = "duration" // minutes from start
	EndModeNone     EndMode = "none"     // open-ended
)

// Event is one event as returned by the server.
type Event struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Date            string  `json:"date"`       // "2006-01-02"
	StartTime       string  `json:"start_time"` // "15:04", "" when date-only
	EndMode         EndMode `json:"endmode"`
	EndTime         string  `json:"end_time,omitempty"`
	DurationMinutes int     `json:"duration,omitempty"`
	Capacity        *int    `json:"capacity"` // nil = unlimited
	ScopeID         ScopeID `json:"scope_id"`
	CreatedBy       string  `json:"created_by"`
	GoingCount      int     `json:"going_count"`
	WaitingCount    int     `json:"waiting_count"`
}

// EventInput is the create/update payload. The gateway adds the id_token.
type EventInput struct {
	Name            string  `json:"name"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndMode         EndMode `json:"endmode"`
	EndTime         string  `json:"end_time,omitempty"`
	DurationMinutes int     `json:"duration,omitempty"`
	Capacity        *int    `json:"capacity"`
	ScopeID         ScopeID `json:"scope_id"`
	Notify          bool    `json:"notify"`
}

// RsvpState is the server's verdict on an RSVP action.
type RsvpState string

const (
	RsvpJoined   RsvpState = "joined"
	RsvpWaiting  RsvpState = "waiting"
	RsvpAlready  RsvpState = "already"
	RsvpCanceled RsvpState = "canceled"
)

// RsvpStatus is the caller's standing on one event.
type RsvpStatus struct {
	Joined    bool `json:"joined"`
	IsWaiting bool `json:"is_waiting"`
}

// Participant is one entry of an event's participant or waitlist listing.
type Participant struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	IsWaiting   bool   `json:"is_waiting"`
	JoinedAt    string `json:"joined_at"`
}

// ParticipantCounts summarises an event's attendance.
type ParticipantCounts struct {
	Going    int  `json:"going"`
	Waiting  int  `json:"waiting"`
	Capacity *int `json:"capacity"`
}

// ParticipantList is the full participant listing of one event.
type ParticipantList struct {
	Participants []Participant
	Waitlist     []Participant
	Counts       ParticipantCounts
}

// Group describes a chat group as known to the server.
type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"member_count"`
}
