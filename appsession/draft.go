package appsession

import (
	"strconv"

	"github.com/linemeet/go-events-client/events"
	"github.com/linemeet/go-events-client/internal/utils"
	"github.com/linemeet/go-events-client/session"
)

// Draft field names mirror the form field names so the page can repopulate
// inputs directly from the snapshot.
const (
	draftFieldName     = "name"
	draftFieldDate     = "date"
	draftFieldStart    = "start_time"
	draftFieldEndMode  = "endmode"
	draftFieldEnd      = "end_time"
	draftFieldDuration = "duration"
	draftFieldCapacity = "capacity"
	draftFieldScope    = "scope_id"
	draftFieldNotify   = "notify"
)

// DraftFromInput snapshots a form payload for preservation across a relogin.
func DraftFromInput(input events.EventInput) session.Draft {
	draft := session.Draft{
		draftFieldName:    input.Name,
		draftFieldDate:    input.Date,
		draftFieldStart:   input.StartTime,
		draftFieldEndMode: string(input.EndMode),
		draftFieldEnd:     input.EndTime,
		draftFieldScope:   string(input.ScopeID),
		draftFieldNotify:  strconv.FormatBool(input.Notify),
	}
	if input.DurationMinutes > 0 {
		draft[draftFieldDuration] = strconv.Itoa(input.DurationMinutes)
	}
	if input.Capacity != nil {
		draft[draftFieldCapacity] = strconv.Itoa(*input.Capacity)
	}
	return draft
}

// InputFromDraft rebuilds the form payload from a restored snapshot.
func InputFromDraft(draft session.Draft) events.EventInput {
	input := events.EventInput{
		Name:      draft[draftFieldName],
		Date:      draft[draftFieldDate],
		StartTime: draft[draftFieldStart],
		EndMode:   events.EndMode(draft[draftFieldEndMode]),
		EndTime:   draft[draftFieldEnd],
		ScopeID:   events.ScopeID(draft[draftFieldScope]),
	}
	if v, err := strconv.Atoi(draft[draftFieldDuration]); err == nil {
		input.DurationMinutes = v
	}
	if v, err := strconv.Atoi(draft[draftFieldCapacity]); err == nil {
		input.Capacity = utils.Ptr(v)
	}
	if v, err := strconv.ParseBool(draft[draftFieldNotify]); err == nil {
		input.Notify = v
	}
	return input
}
