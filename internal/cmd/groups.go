package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arslanonur06/connectme/cli/pkg/service"
)

var (
	groupDescription string
	groupCategory    string
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Browse and join groups",
}

var groupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		gs := service.NewGroupService(cmd.Context())
		return gs.Show(cmd.Context())
	},
}

var groupsJoinCmd = &cobra.Command{
	Use:   "join <group-id>",
	Short: "Join or leave a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gs := service.NewGroupService(cmd.Context())
		if err := gs.Load(cmd.Context()); err != nil {
			return err
		}
		return gs.ToggleMembership(cmd.Context(), args[0])
	},
}

var groupsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gs := service.NewGroupService(cmd.Context())
		return gs.Create(cmd.Context(), args[0], groupDescription, groupCategory)
	},
}

var groupsMembersCmd = &cobra.Command{
	Use:   "members <group-id>",
	Short: "List a group's members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gs := service.NewGroupService(cmd.Context())
		return gs.Members(cmd.Context(), args[0])
	},
}

func init() {
	groupsCreateCmd.Flags().StringVar(&groupDescription, "description", "", "Group description")
	groupsCreateCmd.Flags().StringVar(&groupCategory, "category", "", "Group category")

	groupsCmd.AddCommand(groupsListCmd)
	groupsCmd.AddCommand(groupsJoinCmd)
	groupsCmd.AddCommand(groupsCreateCmd)
	groupsCmd.AddCommand(groupsMembersCmd)
}
