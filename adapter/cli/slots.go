package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	slotsProject string
	slotsFrom    string
	slotsTo      string
)

var slotsCmd = &cobra.Command{
	Use:   "slots <event-id>",
	Short: "List open filming slots for an event",
	Long: `Search the schedule for conflict-free slots matching the event's
duration, ranked by how well they suit a shoot. The search window
defaults to the configured lookahead starting today.

Examples:
  slate slots shoot-1
  slate slots shoot-1 --from 2026-03-01 --to 2026-04-30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getContainer()
		if err != nil {
			return err
		}

		event, err := c.Events.FindByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		searchStart := time.Now()
		searchEnd := searchStart.AddDate(0, 0, c.Config.SearchWindowDays)
		if slotsFrom != "" {
			if searchStart, err = parseDate(slotsFrom); err != nil {
				return err
			}
			searchEnd = searchStart.AddDate(0, 0, c.Config.SearchWindowDays)
		}
		if slotsTo != "" {
			if searchEnd, err = parseDate(slotsTo); err != nil {
				return err
			}
		}

		events, err := loadEvents(cmd, slotsProject)
		if err != nil {
			return err
		}

		slots := c.Resolver.FindAvailableSlots(event, searchStart, searchEnd, events)

		fmt.Printf("Open slots for %q (%d days)\n", event.Title, event.Days())
		fmt.Println(strings.Repeat("-", 50))

		if len(slots) == 0 {
			fmt.Println("\n  No free slots in the search window.")
			return nil
		}

		for i, slot := range slots {
			fmt.Printf("\n  %2d. %s - %s  (score %.2f)\n", i+1,
				slot.Start.Format("2006-01-02"), slot.End.Format("2006-01-02"), slot.Score)
			if slot.Reason != "" {
				fmt.Printf("      %s\n", slot.Reason)
			}
		}
		return nil
	},
}

func init() {
	slotsCmd.Flags().StringVarP(&slotsProject, "project", "p", "", "limit the comparison set to one project")
	slotsCmd.Flags().StringVar(&slotsFrom, "from", "", "search window start (YYYY-MM-DD, default today)")
	slotsCmd.Flags().StringVar(&slotsTo, "to", "", "search window end (YYYY-MM-DD)")
	AddCommand(slotsCmd)
}
