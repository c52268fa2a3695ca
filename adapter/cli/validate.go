package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slatehq/slate/internal/scheduling/domain"
)

var (
	validateProject string
	validateStart   string
	validateEnd     string
)

var validateCmd = &cobra.Command{
	Use:   "validate <event-id>",
	Short: "Validate a proposed reschedule",
	Long: `Check whether moving an event to new dates would introduce new
conflicts, and surface scheduling warnings such as weekend starts
or tight turnarounds.

Examples:
  slate validate shoot-1 --start 2026-02-10 --end 2026-02-12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getContainer()
		if err != nil {
			return err
		}

		start, err := parseDate(validateStart)
		if err != nil {
			return err
		}
		end, err := parseDate(validateEnd)
		if err != nil {
			return err
		}
		if end.Before(start) {
			return fmt.Errorf("end date %s is before start date %s", validateEnd, validateStart)
		}

		events, err := loadEvents(cmd, validateProject)
		if err != nil {
			return err
		}

		result := c.Resolver.ValidateResolution(domain.ProposedResolution{
			EventID:  args[0],
			NewStart: start,
			NewEnd:   end,
		}, events)

		fmt.Printf("Move %s to %s - %s\n", args[0], validateStart, validateEnd)
		fmt.Println(strings.Repeat("-", 50))

		if result.Valid {
			fmt.Println("\n  Valid: the move introduces no new conflicts.")
		} else {
			fmt.Println("\n  Invalid: the move introduces new conflicts.")
			for _, conflict := range result.NewConflicts {
				printConflict(conflict)
			}
		}
		for _, warning := range result.Warnings {
			fmt.Printf("  Warning: %s\n", warning)
		}
		for _, suggestion := range result.Suggestions {
			fmt.Printf("  Suggestion: %s\n", suggestion)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateProject, "project", "p", "", "limit validation to one project")
	validateCmd.Flags().StringVar(&validateStart, "start", "", "proposed start date (YYYY-MM-DD)")
	validateCmd.Flags().StringVar(&validateEnd, "end", "", "proposed end date (YYYY-MM-DD)")
	_ = validateCmd.MarkFlagRequired("start")
	_ = validateCmd.MarkFlagRequired("end")
	AddCommand(validateCmd)
}
