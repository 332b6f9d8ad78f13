package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arslanonur06/connectme/cli/pkg/formatter"
	"github.com/arslanonur06/connectme/cli/pkg/service"
)

var (
	chatLimit     int
	chatTranslate string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Group and event chats",
}

var chatListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your chats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.ListChats(cmd.Context())
	},
}

var chatShowCmd = &cobra.Command{
	Use:   "show <chat-id>",
	Short: "Show a chat's messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cs := service.NewChatService(cmd.Context(), args[0])
		return cs.Show(cmd.Context(), chatLimit, chatTranslate)
	},
}

var chatSendCmd = &cobra.Command{
	Use:   "send <chat-id> <message>",
	Short: "Send a message",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cs := service.NewChatService(cmd.Context(), args[0])
		msg, err := cs.Send(cmd.Context(), strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		formatter.PrintSuccess("Sent (%s)", msg.ID)
		return nil
	},
}

var chatDeleteCmd = &cobra.Command{
	Use:   "delete <chat-id> <message-id>",
	Short: "Delete a message",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cs := service.NewChatService(cmd.Context(), args[0])
		if err := cs.Load(cmd.Context(), 0); err != nil {
			return err
		}
		if err := cs.Delete(cmd.Context(), args[1]); err != nil {
			return err
		}
		formatter.PrintSuccess("Message deleted")
		return nil
	},
}

var chatWatchCmd = &cobra.Command{
	Use:   "watch <chat-id>",
	Short: "Stream a chat live",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cs := service.NewChatService(cmd.Context(), args[0])
		return cs.Watch(cmd.Context(), chatTranslate)
	},
}

func init() {
	chatShowCmd.Flags().IntVar(&chatLimit, "limit", 50, "Maximum number of messages")
	chatShowCmd.Flags().StringVar(&chatTranslate, "translate", "", "Translate incoming messages to this language")
	chatWatchCmd.Flags().StringVar(&chatTranslate, "translate", "", "Translate incoming messages to this language")

	chatCmd.AddCommand(chatListCmd)
	chatCmd.AddCommand(chatShowCmd)
	chatCmd.AddCommand(chatSendCmd)
	chatCmd.AddCommand(chatDeleteCmd)
	chatCmd.AddCommand(chatWatchCmd)
}
