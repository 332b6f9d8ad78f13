package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arslanonur06/connectme/cli/pkg/formatter"
	"github.com/arslanonur06/connectme/cli/pkg/service"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Read and write comments",
}

var commentListCmd = &cobra.Command{
	Use:   "list <post-id>",
	Short: "Show a post's comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cs := service.NewCommentService(cmd.Context(), args[0])
		return cs.Show(cmd.Context())
	},
}

var commentAddCmd = &cobra.Command{
	Use:   "add <post-id> <content>",
	Short: "Comment on a post",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cs := service.NewCommentService(cmd.Context(), args[0])
		comment, err := cs.Add(cmd.Context(), strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		formatter.PrintSuccess("Comment added (%s)", comment.ID)
		return nil
	},
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete <post-id> <comment-id>",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cs := service.NewCommentService(cmd.Context(), args[0])
		if err := cs.Load(cmd.Context()); err != nil {
			return err
		}
		if err := cs.Delete(cmd.Context(), args[1]); err != nil {
			return err
		}
		formatter.PrintSuccess("Comment deleted")
		return nil
	},
}

func init() {
	commentCmd.AddCommand(commentListCmd)
	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentDeleteCmd)
}
