package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arslanonur06/connectme/cli/pkg/service"
)

var suggestLimit int

var friendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "Manage your connections",
}

var friendsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your friends",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewFriendService().ListFriends(cmd.Context())
	},
}

var friendsRequestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List pending friend requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewFriendService().ListRequests(cmd.Context())
	},
}

var friendsSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "People you may know",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewFriendService().Suggest(cmd.Context(), suggestLimit)
	},
}

var friendsAddCmd = &cobra.Command{
	Use:   "add <user-id>",
	Short: "Send a friend request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewFriendService().SendRequest(cmd.Context(), args[0])
	},
}

var friendsAcceptCmd = &cobra.Command{
	Use:   "accept <request-id>",
	Short: "Accept a friend request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewFriendService().Accept(cmd.Context(), args[0])
	},
}

var friendsDeclineCmd = &cobra.Command{
	Use:   "decline <request-id>",
	Short: "Decline a friend request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewFriendService().Decline(cmd.Context(), args[0])
	},
}

var friendsRemoveCmd = &cobra.Command{
	Use:   "remove <user-id>",
	Short: "Remove a friend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewFriendService().Remove(cmd.Context(), args[0])
	},
}

func init() {
	friendsSuggestCmd.Flags().IntVar(&suggestLimit, "limit", 5, "Maximum number of suggestions")

	friendsCmd.AddCommand(friendsListCmd)
	friendsCmd.AddCommand(friendsRequestsCmd)
	friendsCmd.AddCommand(friendsSuggestCmd)
	friendsCmd.AddCommand(friendsAddCmd)
	friendsCmd.AddCommand(friendsAcceptCmd)
	friendsCmd.AddCommand(friendsDeclineCmd)
	friendsCmd.AddCommand(friendsRemoveCmd)
}
