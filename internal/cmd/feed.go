package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arslanonur06/connectme/cli/pkg/service"
)

var feedLimit int

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Browse the feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := service.NewFeedService(cmd.Context())
		return fs.ShowFeed(cmd.Context(), feedLimit)
	},
}

func init() {
	feedCmd.Flags().IntVar(&feedLimit, "limit", 20, "Maximum number of posts")
}
