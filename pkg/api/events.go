package api

import (
	"context"
	"time"

	"github.com/arslanonur06/connectme/cli/pkg/logger"
	"github.com/arslanonur06/connectme/cli/pkg/store"
)

// GetEvents fetches upcoming events, soonest first. When userID is
// non-empty the viewer's attendance flag is resolved from the
// attendees table.
func GetEvents(ctx context.Context, userID string) ([]Event, error) {
	logger.Debug("Fetching events")

	var events []Event
	err := store.Default().
		From("events").
		Select("*").
		Order("starts_at", true).
		Get(ctx, &events)
	if err != nil {
		return nil, err
	}

	if userID != "" {
		attending, err := attendingEventIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		for i := range events {
			events[i].Attending = attending[events[i].ID]
		}
	}

	return events, nil
}

// GetEvent fetches a single event by id
func GetEvent(ctx context.Context, id string) (*Event, error) {
	var events []Event
	err := store.Default().
		From("events").
		Select("*").
		Eq("id", id).
		Limit(1).
		Get(ctx, &events)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, &APIError{Code: "not_found", Message: "event " + id + " not found", StatusCode: 404}
	}
	return &events[0], nil
}

// CreateEvent schedules an event and returns the stored row
func CreateEvent(ctx context.Context, creatorID, title, description, location string, startsAt time.Time) (*Event, error) {
	logger.Debug("Creating event", "title", title)

	record := map[string]interface{}{
		"title":       title,
		"description": description,
		"location":    location,
		"starts_at":   startsAt.UTC().Format(time.RFC3339),
		"creator_id":  creatorID,
	}

	var created []Event
	if err := store.Default().Insert(ctx, "events", record, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, &APIError{Code: "empty_representation", Message: "insert returned no row", StatusCode: 500}
	}
	return &created[0], nil
}

// AttendEvent marks the user as attending
func AttendEvent(ctx context.Context, eventID, userID string) error {
	logger.Debug("Attending event", "event_id", eventID)
	record := map[string]string{"event_id": eventID, "user_id": userID}
	return store.Default().Insert(ctx, "event_attendees", record, nil)
}

// UnattendEvent withdraws the user's attendance
func UnattendEvent(ctx context.Context, eventID, userID string) error {
	logger.Debug("Leaving event", "event_id", eventID)
	return store.Default().Delete(ctx, "event_attendees", map[string]string{
		"event_id": eventID,
		"user_id":  userID,
	})
}

func attendingEventIDs(ctx context.Context, userID string) (map[string]bool, error) {
	var rows []struct {
		EventID string `json:"event_id"`
	}
	err := store.Default().
		From("event_attendees").
		Select("event_id").
		Eq("user_id", userID).
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]bool, len(rows))
	for _, row := range rows {
		ids[row.EventID] = true
	}
	return ids, nil
}
