package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arslanonur06/connectme/cli/pkg/service"
)

var (
	eventDescription string
	eventLocation    string
	eventStartsAt    string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Browse and attend events",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List upcoming events",
	RunE: func(cmd *cobra.Command, args []string) error {
		es := service.NewEventService(cmd.Context())
		return es.Show(cmd.Context())
	},
}

var eventsAttendCmd = &cobra.Command{
	Use:   "attend <event-id>",
	Short: "Attend or withdraw from an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		es := service.NewEventService(cmd.Context())
		if err := es.Load(cmd.Context()); err != nil {
			return err
		}
		return es.ToggleAttendance(cmd.Context(), args[0])
	},
}

var eventsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Schedule an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		startsAt, err := time.Parse("2006-01-02 15:04", eventStartsAt)
		if err != nil {
			return fmt.Errorf("invalid --at value, expected 'YYYY-MM-DD HH:MM': %w", err)
		}

		es := service.NewEventService(cmd.Context())
		return es.Create(cmd.Context(), args[0], eventDescription, eventLocation, startsAt)
	},
}

func init() {
	eventsCreateCmd.Flags().StringVar(&eventDescription, "description", "", "Event description")
	eventsCreateCmd.Flags().StringVar(&eventLocation, "location", "", "Event location")
	eventsCreateCmd.Flags().StringVar(&eventStartsAt, "at", "", "Start time, e.g. '2026-09-01 18:00'")
	eventsCreateCmd.MarkFlagRequired("at")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsAttendCmd)
	eventsCmd.AddCommand(eventsCreateCmd)
}
