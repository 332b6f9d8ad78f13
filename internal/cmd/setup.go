package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arslanonur06/connectme/cli/pkg/service"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Provision the backend schema (development)",
	Long: `Creates the ConnectMe tables on the configured backend and seeds
the default public chat. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewSetupService().Run(cmd.Context())
	},
}
