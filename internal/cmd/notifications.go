package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arslanonur06/connectme/cli/pkg/service"
)

var notifUnreadOnly bool

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "View notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		ns := service.NewNotificationService(cmd.Context())
		return ns.Show(cmd.Context(), notifUnreadOnly)
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <notification-id>",
	Short: "Mark a notification read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ns := service.NewNotificationService(cmd.Context())
		if err := ns.Load(cmd.Context(), false); err != nil {
			return err
		}
		return ns.MarkRead(cmd.Context(), args[0])
	},
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification read",
	RunE: func(cmd *cobra.Command, args []string) error {
		ns := service.NewNotificationService(cmd.Context())
		if err := ns.Load(cmd.Context(), true); err != nil {
			return err
		}
		return ns.MarkAllRead(cmd.Context())
	},
}

var notificationsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream notifications live",
	RunE: func(cmd *cobra.Command, args []string) error {
		ns := service.NewNotificationService(cmd.Context())
		return ns.Watch(cmd.Context())
	},
}

func init() {
	notificationsCmd.Flags().BoolVar(&notifUnreadOnly, "unread", false, "Show unread notifications only")

	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsReadAllCmd)
	notificationsCmd.AddCommand(notificationsWatchCmd)
}
