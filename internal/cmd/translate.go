package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arslanonur06/connectme/cli/pkg/service"
)

var (
	translateSource string
	translateTarget string
)

var translateCmd = &cobra.Command{
	Use:   "translate <text>",
	Short: "Translate text through the translation proxy",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ts := service.NewTranslateService()
		return ts.Translate(cmd.Context(), strings.Join(args, " "), translateSource, translateTarget)
	},
}

var translateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show translation proxy health and breaker state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewTranslateService().Status(cmd.Context())
	},
}

var translateEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Re-enable translation after repeated failures",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewTranslateService().Enable()
	},
}

func init() {
	translateCmd.Flags().StringVar(&translateSource, "from", "auto", "Source language code")
	translateCmd.Flags().StringVar(&translateTarget, "to", "", "Target language code")
	translateCmd.MarkFlagRequired("to")

	translateCmd.AddCommand(translateStatusCmd)
	translateCmd.AddCommand(translateEnableCmd)
}
