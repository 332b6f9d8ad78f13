package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arslanonur06/connectme/cli/pkg/service"
)

var (
	profileFullName string
	profileBio      string
	profileLocation string
	profileLanguage string
	searchLimit     int
)

var profileCmd = &cobra.Command{
	Use:   "profile [user-id]",
	Short: "View a profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := ""
		if len(args) > 0 {
			userID = args[0]
		}
		return service.NewProfileService().Show(cmd.Context(), userID)
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := map[string]interface{}{}
		if cmd.Flags().Changed("name") {
			fields["full_name"] = profileFullName
		}
		if cmd.Flags().Changed("bio") {
			fields["bio"] = profileBio
		}
		if cmd.Flags().Changed("location") {
			fields["location"] = profileLocation
		}
		if cmd.Flags().Changed("language") {
			fields["language"] = profileLanguage
		}
		return service.NewProfileService().Update(cmd.Context(), fields)
	},
}

var profileSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find users by username",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProfileService().Search(cmd.Context(), args[0], searchLimit)
	},
}

func init() {
	profileEditCmd.Flags().StringVar(&profileFullName, "name", "", "Full name")
	profileEditCmd.Flags().StringVar(&profileBio, "bio", "", "Bio")
	profileEditCmd.Flags().StringVar(&profileLocation, "location", "", "Location")
	profileEditCmd.Flags().StringVar(&profileLanguage, "language", "", "Preferred language code")
	profileSearchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of results")

	profileCmd.AddCommand(profileEditCmd)
	profileCmd.AddCommand(profileSearchCmd)
}
