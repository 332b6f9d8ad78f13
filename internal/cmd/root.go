package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arslanonur06/connectme/cli/pkg/client"
	"github.com/arslanonur06/connectme/cli/pkg/config"
	"github.com/arslanonur06/connectme/cli/pkg/credentials"
	clierrors "github.com/arslanonur06/connectme/cli/pkg/errors"
	"github.com/arslanonur06/connectme/cli/pkg/logger"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
)

var rootCmd = &cobra.Command{
	Use:   "connectme-cli",
	Short: "ConnectMe CLI - Social networking from the terminal",
	Long: `ConnectMe CLI is a command-line client for the ConnectMe social
network. Browse your feed, chat in groups and events, manage friends
and get realtime notifications directly from the terminal.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.Init(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
			os.Exit(1)
		}

		logger.Init(verbose)

		config.SetString("output.format", outputFmt)

		// Arm the HTTP client with the stored session when one exists.
		if creds, err := credentials.Load(); err == nil && creds.IsValid() {
			client.SetAuthToken(creds.AccessToken)
		}
	},
}

func Execute() {
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, clierrors.FormatError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/connectme/cli/config.toml)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "text", "Output format: text, json, table")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(friendsCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(versionCmd)
}
