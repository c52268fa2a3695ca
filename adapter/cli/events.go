package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/slatehq/slate/internal/scheduling/domain"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage stored schedule events",
}

var eventsListProject string

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored events",
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := loadEvents(cmd, eventsListProject)
		if err != nil {
			return err
		}

		if len(events) == 0 {
			fmt.Println("No events stored.")
			return nil
		}

		fmt.Printf("%d events\n", len(events))
		fmt.Println(strings.Repeat("-", 50))
		for _, event := range events {
			movable := ""
			if event.Phase.Movable {
				movable = " movable"
			}
			fmt.Printf("  %-24s %s - %s  %s/%s%s  %q\n",
				event.ID,
				event.Start.Format("2006-01-02"), event.End.Format("2006-01-02"),
				event.Phase.Type, event.Priority, movable, event.Title)
		}
		return nil
	},
}

var (
	eventAddID       string
	eventAddProject  string
	eventAddStart    string
	eventAddEnd      string
	eventAddPhase    string
	eventAddPriority string
	eventAddMovable  bool
)

var eventsAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add an event to the store",
	Long: `Add a schedule event.

Examples:
  slate events add "Studio shoot" --start 2026-03-02 --end 2026-03-04
  slate events add "Rough cut" --start 2026-03-09 --end 2026-03-13 --phase editing --priority low`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getContainer()
		if err != nil {
			return err
		}

		start, err := parseDate(eventAddStart)
		if err != nil {
			return err
		}
		end, err := parseDate(eventAddEnd)
		if err != nil {
			return err
		}
		if end.Before(start) {
			return fmt.Errorf("end date %s is before start date %s", eventAddEnd, eventAddStart)
		}

		id := eventAddID
		if id == "" {
			id = uuid.NewString()
		}

		event := domain.Event{
			ID:    id,
			Title: args[0],
			Start: start,
			End:   end,
			Project: domain.Project{
				ID: eventAddProject,
			},
			Phase: domain.Phase{
				Type:    domain.PhaseType(eventAddPhase),
				Movable: eventAddMovable,
			},
			Priority: domain.Priority(eventAddPriority),
		}

		if err := c.Events.Save(cmd.Context(), event); err != nil {
			return err
		}

		fmt.Printf("Added %s (%s - %s)\n", event.ID, eventAddStart, eventAddEnd)
		return nil
	},
}

var eventsMoveCmd = &cobra.Command{
	Use:   "move <event-id> <start> <end>",
	Short: "Move an event to new dates",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getContainer()
		if err != nil {
			return err
		}

		start, err := parseDate(args[1])
		if err != nil {
			return err
		}
		end, err := parseDate(args[2])
		if err != nil {
			return err
		}
		if end.Before(start) {
			return fmt.Errorf("end date %s is before start date %s", args[2], args[1])
		}

		event, err := c.Events.FindByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := c.Events.Save(cmd.Context(), event.MovedTo(start, end)); err != nil {
			return err
		}

		fmt.Printf("Moved %s to %s - %s\n", event.ID, args[1], args[2])
		return nil
	},
}

var eventsRemoveCmd = &cobra.Command{
	Use:   "rm <event-id>",
	Short: "Remove an event from the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getContainer()
		if err != nil {
			return err
		}

		if err := c.Events.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

func init() {
	eventsListCmd.Flags().StringVarP(&eventsListProject, "project", "p", "", "limit the listing to one project")

	eventsAddCmd.Flags().StringVar(&eventAddID, "id", "", "event ID (generated when empty)")
	eventsAddCmd.Flags().StringVarP(&eventAddProject, "project", "p", "", "project the event belongs to")
	eventsAddCmd.Flags().StringVar(&eventAddStart, "start", "", "start date (YYYY-MM-DD)")
	eventsAddCmd.Flags().StringVar(&eventAddEnd, "end", "", "end date (YYYY-MM-DD)")
	eventsAddCmd.Flags().StringVar(&eventAddPhase, "phase", "filming", "phase (planning, filming, editing)")
	eventsAddCmd.Flags().StringVar(&eventAddPriority, "priority", "medium", "priority (high, medium, low)")
	eventsAddCmd.Flags().BoolVar(&eventAddMovable, "movable", true, "mark the event as reschedulable")
	_ = eventsAddCmd.MarkFlagRequired("start")
	_ = eventsAddCmd.MarkFlagRequired("end")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsAddCmd)
	eventsCmd.AddCommand(eventsMoveCmd)
	eventsCmd.AddCommand(eventsRemoveCmd)
	AddCommand(eventsCmd)
}
