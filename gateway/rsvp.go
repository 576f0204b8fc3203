package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/linemeet/go-events-client/events"
	"github.com/linemeet/go-events-client/identity"
)

type rsvpResponse struct {
	envelope
	Status events.RsvpState `json:"status"`
}

// JoinEvent RSVPs the token's user to an event. The server decides between
// joined and waiting when the event has a capacity.
func (g *Client) JoinEvent(ctx context.Context, token *identity.Token, eventID int64) (events.RsvpState, error) {
	var out rsvpResponse
	if err := g.do(ctx, http.MethodPost, fmt.Sprintf("/api/events/%d/rsvp", eventID), tokenBody{IDToken: token.Raw}, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

// CancelRsvp withdraws the token's user from an event or its waitlist.
func (g *Client) CancelRsvp(ctx context.Context, token *identity.Token, eventID int64) (events.RsvpState, error) {
	var out rsvpResponse
	if err := g.do(ctx, http.MethodDelete, fmt.Sprintf("/api/events/%d/rsvp", eventID), tokenBody{IDToken: token.Raw}, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

type rsvpStatusRequest struct {
	tokenBody
	IDs []int64 `json:"ids"`
}

type rsvpStatusResponse struct {
	envelope
	Statuses map[string]events.RsvpStatus `json:"statuses"`
}

// RsvpStatuses fetches the user's standing on a batch of events.
func (g *Client) RsvpStatuses(ctx context.Context, token *identity.Token, ids []int64) (map[int64]events.RsvpStatus, error) {
	body := rsvpStatusRequest{tokenBody{IDToken: token.Raw}, ids}

	var out rsvpStatusResponse
	if err := g.do(ctx, http.MethodPost, "/api/events/rsvp-status", body, &out); err != nil {
		return nil, err
	}

	statuses := make(map[int64]events.RsvpStatus, len(out.Statuses))
	for key, status := range out.Statuses {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "[Client.RsvpStatuses] bad event id %q", key)
		}
		statuses[id] = status
	}
	return statuses, nil
}

type participantsResponse struct {
	envelope
	Participants []events.Participant     `json:"participants"`
	Waitlist     []events.Participant     `json:"waitlist"`
	Counts       events.ParticipantCounts `json:"counts"`
}

// Participants fetches an event's participant and waitlist listing.
func (g *Client) Participants(ctx context.Context, token *identity.Token, eventID int64) (*events.ParticipantList, error) {
	var out participantsResponse
	if err := g.do(ctx, http.MethodPost, fmt.Sprintf("/api/events/%d/participants", eventID), tokenBody{IDToken: token.Raw}, &out); err != nil {
		return nil, err
	}
	return &events.ParticipantList{
		Participants: out.Participants,
		Waitlist:     out.Waitlist,
		Counts:       out.Counts,
	}, nil
}
