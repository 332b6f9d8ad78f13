package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arslanonur06/connectme/cli/pkg/api"
)

func testGroupService(t *testing.T) *GroupService {
	t.Helper()

	gs := NewGroupService(context.Background())
	gs.identity = func() string { return "user-1" }
	gs.fetch = func(ctx context.Context, userID string) ([]api.Group, error) {
		return []api.Group{
			{ID: "g-1", Name: "Hiking", MemberCount: 10},
			{ID: "g-2", Name: "Chess", MemberCount: 5, IsMember: true},
		}, nil
	}
	gs.join = func(ctx context.Context, groupID, userID string) error { return nil }
	gs.leave = func(ctx context.Context, groupID, userID string) error { return nil }
	require.NoError(t, gs.Load(context.Background()))
	return gs
}

func TestToggleMembershipJoins(t *testing.T) {
	gs := testGroupService(t)

	require.NoError(t, gs.ToggleMembership(context.Background(), "g-1"))

	groups := gs.Groups()
	assert.True(t, groups[0].IsMember)
	assert.Equal(t, 11, groups[0].MemberCount)
}

func TestToggleMembershipLeaves(t *testing.T) {
	gs := testGroupService(t)

	require.NoError(t, gs.ToggleMembership(context.Background(), "g-2"))

	groups := gs.Groups()
	assert.False(t, groups[1].IsMember)
	assert.Equal(t, 4, groups[1].MemberCount)
}

func TestToggleMembershipRollsBack(t *testing.T) {
	gs := testGroupService(t)
	gs.join = func(ctx context.Context, groupID, userID string) error {
		return errors.New("group is full")
	}

	err := gs.ToggleMembership(context.Background(), "g-1")
	require.Error(t, err)

	groups := gs.Groups()
	assert.False(t, groups[0].IsMember)
	assert.Equal(t, 10, groups[0].MemberCount)
}

func testEventService(t *testing.T) *EventService {
	t.Helper()

	es := NewEventService(context.Background())
	es.identity = func() string { return "user-1" }
	es.fetch = func(ctx context.Context, userID string) ([]api.Event, error) {
		return []api.Event{
			{ID: "e-1", Title: "Picnic", AttendeeCount: 7},
		}, nil
	}
	es.attend = func(ctx context.Context, eventID, userID string) error { return nil }
	es.unattend = func(ctx context.Context, eventID, userID string) error { return nil }
	require.NoError(t, es.Load(context.Background()))
	return es
}

func TestToggleAttendance(t *testing.T) {
	es := testEventService(t)

	require.NoError(t, es.ToggleAttendance(context.Background(), "e-1"))

	events := es.Events()
	assert.True(t, events[0].Attending)
	assert.Equal(t, 8, events[0].AttendeeCount)
}

func TestToggleAttendanceRollsBack(t *testing.T) {
	es := testEventService(t)
	es.attend = func(ctx context.Context, eventID, userID string) error {
		return errors.New("event is over")
	}

	err := es.ToggleAttendance(context.Background(), "e-1")
	require.Error(t, err)

	events := es.Events()
	assert.False(t, events[0].Attending)
	assert.Equal(t, 7, events[0].AttendeeCount)
}
