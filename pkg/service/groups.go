package service

import (
	"context"
	"fmt"

	"github.com/arslanonur06/connectme/cli/pkg/api"
	"github.com/arslanonur06/connectme/cli/pkg/cache"
	"github.com/arslanonur06/connectme/cli/pkg/credentials"
	"github.com/arslanonur06/connectme/cli/pkg/formatter"
	"github.com/arslanonur06/connectme/cli/pkg/logger"
	"github.com/arslanonur06/connectme/cli/pkg/optimistic"
)

// GroupService owns the group cache. Join and leave are optimistic
// toggles: the membership flag and the member counter flip locally
// first and roll back if the server refuses.
type GroupService struct {
	cache    *cache.Cache[api.Group]
	mutator  *optimistic.Mutator[api.Group]
	identity func() string

	fetch func(ctx context.Context, userID string) ([]api.Group, error)
	join  func(ctx context.Context, groupID, userID string) error
	leave func(ctx context.Context, groupID, userID string) error
}

// NewGroupService creates a new group service
func NewGroupService(scope context.Context) *GroupService {
	c := cache.New[api.Group]()
	gs := &GroupService{
		cache:    c,
		identity: credentials.CurrentUserID,
		fetch:    api.GetGroups,
		join:     api.JoinGroup,
		leave:    api.LeaveGroup,
	}
	gs.mutator = optimistic.New(c, scope, func() string { return gs.identity() })
	return gs
}

// Load replaces the cached groups with the latest remote rows
func (gs *GroupService) Load(ctx context.Context) error {
	groups, err := gs.fetch(ctx, gs.identity())
	if err != nil {
		return fmt.Errorf("failed to fetch groups: %w", err)
	}

	gs.cache.Clear()
	for _, g := range groups {
		gs.cache.Upsert(g)
	}
	return nil
}

// Groups returns the cached groups in display order
func (gs *GroupService) Groups() []api.Group {
	return gs.cache.List()
}

// ToggleMembership joins the group when the user is not a member and
// leaves it when they are
func (gs *GroupService) ToggleMembership(ctx context.Context, groupID string) error {
	group, ok := gs.cache.Get(groupID)
	if !ok {
		return fmt.Errorf("group %s is not loaded", groupID)
	}

	joining := !group.IsMember
	userID := gs.identity()

	send := func(ctx context.Context) error {
		if joining {
			return gs.join(ctx, groupID, userID)
		}
		return gs.leave(ctx, groupID, userID)
	}

	return gs.mutator.Toggle(ctx, groupID, membershipSet(joining), membershipSet(!joining), send)
}

// Create creates a group and caches the stored row
func (gs *GroupService) Create(ctx context.Context, name, description, category string) error {
	group, err := api.CreateGroup(ctx, gs.identity(), name, description, category)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	gs.cache.Upsert(*group)
	formatter.PrintSuccess("Group '%s' created (%s)", group.Name, group.ID)
	return nil
}

// Show loads and prints the groups
func (gs *GroupService) Show(ctx context.Context) error {
	logger.Debug("Viewing groups")

	if err := gs.Load(ctx); err != nil {
		return err
	}

	groups := gs.Groups()
	if len(groups) == 0 {
		fmt.Println("No groups yet.")
		return nil
	}

	for _, g := range groups {
		member := ""
		if g.IsMember {
			member = " [member]"
		}
		fmt.Printf("[%s] %s (%d members)%s\n", g.ID, g.Name, g.MemberCount, member)
		if g.Description != "" {
			fmt.Printf("    %s\n", g.Description)
		}
	}
	return nil
}

// Members prints a group's member list
func (gs *GroupService) Members(ctx context.Context, groupID string) error {
	members, err := api.GetGroupMembers(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to fetch group members: %w", err)
	}

	if len(members) == 0 {
		fmt.Println("No members.")
		return nil
	}
	for i, m := range members {
		fmt.Printf("%d. @%s\n", i+1, m.Username)
	}
	return nil
}

func membershipSet(on bool) func(api.Group) api.Group {
	return func(g api.Group) api.Group {
		if g.IsMember == on {
			return g
		}
		g.IsMember = on
		if on {
			g.MemberCount++
		} else if g.MemberCount > 0 {
			g.MemberCount--
		}
		return g
	}
}
