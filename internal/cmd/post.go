package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arslanonur06/connectme/cli/pkg/formatter"
	"github.com/arslanonur06/connectme/cli/pkg/service"
)

var postImageURL string

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Create and manage posts",
}

var postCreateCmd = &cobra.Command{
	Use:   "create <content>",
	Short: "Publish a post",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := service.NewFeedService(cmd.Context())
		post, err := fs.Create(cmd.Context(), strings.Join(args, " "), postImageURL)
		if err != nil {
			return err
		}
		formatter.PrintSuccess("Posted (%s)", post.ID)
		return nil
	},
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := service.NewFeedService(cmd.Context())
		if err := fs.Load(cmd.Context(), 0); err != nil {
			return err
		}
		if err := fs.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		formatter.PrintSuccess("Post deleted")
		return nil
	},
}

var postLikeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like or unlike a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := service.NewFeedService(cmd.Context())
		if err := fs.Load(cmd.Context(), 0); err != nil {
			return err
		}
		if err := fs.ToggleLike(cmd.Context(), args[0]); err != nil {
			return err
		}
		post, _ := fs.Get(args[0])
		if post.LikedByMe {
			formatter.PrintSuccess("Liked (%d likes)", post.LikesCount)
		} else {
			fmt.Printf("Unliked (%d likes)\n", post.LikesCount)
		}
		return nil
	},
}

var postSaveCmd = &cobra.Command{
	Use:   "save <post-id>",
	Short: "Save or unsave a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := service.NewFeedService(cmd.Context())
		if err := fs.Load(cmd.Context(), 0); err != nil {
			return err
		}
		if err := fs.ToggleSave(cmd.Context(), args[0]); err != nil {
			return err
		}
		post, _ := fs.Get(args[0])
		if post.SavedByMe {
			formatter.PrintSuccess("Saved")
		} else {
			fmt.Println("Removed from saved posts")
		}
		return nil
	},
}

func init() {
	postCreateCmd.Flags().StringVar(&postImageURL, "image", "", "Attach an image by URL")

	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postDeleteCmd)
	postCmd.AddCommand(postLikeCmd)
	postCmd.AddCommand(postSaveCmd)
}
