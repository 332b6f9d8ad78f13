package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arslanonur06/connectme/cli/pkg/api"
	"github.com/arslanonur06/connectme/cli/pkg/output"
	"github.com/arslanonur06/connectme/cli/pkg/prompter"
	"github.com/arslanonur06/connectme/cli/pkg/service"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Manage your ConnectMe session",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to ConnectMe",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := prompter.PromptString("Email")
		if err != nil {
			return err
		}
		password, err := prompter.PromptPassword("Password")
		if err != nil {
			return err
		}

		return service.NewAuthService().Login(cmd.Context(), email, password)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new ConnectMe account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := prompter.PromptString("Email")
		if err != nil {
			return err
		}
		username, err := prompter.PromptString("Username")
		if err != nil {
			return err
		}
		fullName, err := prompter.PromptString("Full name")
		if err != nil {
			return err
		}
		password, err := prompter.PromptPassword("Password")
		if err != nil {
			return err
		}

		return service.NewAuthService().Register(cmd.Context(), email, password, username, fullName)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService().Logout(cmd.Context())
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Renew the access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService().Refresh(cmd.Context())
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := api.GetCurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		return output.PrintRecord("Signed in as", map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether you are signed in",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService().Status(cmd.Context())
	},
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(refreshCmd)
	authCmd.AddCommand(whoamiCmd)
	authCmd.AddCommand(statusCmd)
}
