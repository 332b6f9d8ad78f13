package service

import (
	"context"
	"fmt"
	"time"

	"github.com/arslanonur06/connectme/cli/pkg/api"
	"github.com/arslanonur06/connectme/cli/pkg/cache"
	"github.com/arslanonur06/connectme/cli/pkg/credentials"
	"github.com/arslanonur06/connectme/cli/pkg/formatter"
	"github.com/arslanonur06/connectme/cli/pkg/logger"
	"github.com/arslanonur06/connectme/cli/pkg/optimistic"
)

// EventService owns the event cache with optimistic attendance toggles
type EventService struct {
	cache    *cache.Cache[api.Event]
	mutator  *optimistic.Mutator[api.Event]
	identity func() string

	fetch    func(ctx context.Context, userID string) ([]api.Event, error)
	attend   func(ctx context.Context, eventID, userID string) error
	unattend func(ctx context.Context, eventID, userID string) error
}

// NewEventService creates a new event service
func NewEventService(scope context.Context) *EventService {
	c := cache.New[api.Event]()
	es := &EventService{
		cache:    c,
		identity: credentials.CurrentUserID,
		fetch:    api.GetEvents,
		attend:   api.AttendEvent,
		unattend: api.UnattendEvent,
	}
	es.mutator = optimistic.New(c, scope, func() string { return es.identity() })
	return es
}

// Load replaces the cached events with the latest remote rows
func (es *EventService) Load(ctx context.Context) error {
	events, err := es.fetch(ctx, es.identity())
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}

	es.cache.Clear()
	for _, e := range events {
		es.cache.Upsert(e)
	}
	return nil
}

// Events returns the cached events in display order
func (es *EventService) Events() []api.Event {
	return es.cache.List()
}

// ToggleAttendance attends the event when the user is not going and
// withdraws when they are
func (es *EventService) ToggleAttendance(ctx context.Context, eventID string) error {
	event, ok := es.cache.Get(eventID)
	if !ok {
		return fmt.Errorf("event %s is not loaded", eventID)
	}

	going := !event.Attending
	userID := es.identity()

	send := func(ctx context.Context) error {
		if going {
			return es.attend(ctx, eventID, userID)
		}
		return es.unattend(ctx, eventID, userID)
	}

	return es.mutator.Toggle(ctx, eventID, attendanceSet(going), attendanceSet(!going), send)
}

// Create schedules an event and caches the stored row
func (es *EventService) Create(ctx context.Context, title, description, location string, startsAt time.Time) error {
	event, err := api.CreateEvent(ctx, es.identity(), title, description, location, startsAt)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	es.cache.Upsert(*event)
	formatter.PrintSuccess("Event '%s' created (%s)", event.Title, event.ID)
	return nil
}

// Show loads and prints upcoming events
func (es *EventService) Show(ctx context.Context) error {
	logger.Debug("Viewing events")

	if err := es.Load(ctx); err != nil {
		return err
	}

	events := es.Events()
	if len(events) == 0 {
		fmt.Println("No upcoming events.")
		return nil
	}

	for _, e := range events {
		going := ""
		if e.Attending {
			going = " [going]"
		}
		fmt.Printf("[%s] %s - %s%s\n", e.ID, e.StartsAt.Format("2006-01-02 15:04"), e.Title, going)
		if e.Location != "" {
			fmt.Printf("    at %s (%d attending)\n", e.Location, e.AttendeeCount)
		}
	}
	return nil
}

func attendanceSet(on bool) func(api.Event) api.Event {
	return func(e api.Event) api.Event {
		if e.Attending == on {
			return e
		}
		e.Attending = on
		if on {
			e.AttendeeCount++
		} else if e.AttendeeCount > 0 {
			e.AttendeeCount--
		}
		return e
	}
}
