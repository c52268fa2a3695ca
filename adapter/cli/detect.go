package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slatehq/slate/internal/scheduling/domain"
	"github.com/slatehq/slate/pkg/observability"
)

var detectProject string

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect filming-schedule conflicts",
	Long: `Detect conflicts between filming events in the store.

Examples:
  slate detect
  slate detect --project proj-1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getContainer()
		if err != nil {
			return err
		}

		timer := observability.StartTimer("detect").WithLogger(logger)
		defer timer.Stop()

		events, err := loadEvents(cmd, detectProject)
		if err != nil {
			return err
		}

		result := c.Detector.Detect(events)

		fmt.Printf("Checked %d events\n", len(events))
		fmt.Println(strings.Repeat("-", 50))

		if !result.HasConflicts {
			fmt.Println("\n  No conflicts found.")
			return nil
		}

		for _, conflict := range result.Conflicts {
			printConflict(conflict)
		}

		fmt.Println(strings.Repeat("-", 50))
		fmt.Printf("Total: %d conflicts involving %d events\n", result.Count, len(result.Events))
		return nil
	},
}

func printConflict(conflict domain.Conflict) {
	fmt.Printf("\n  [%s] %s\n", conflict.Severity, conflict.Message)
	fmt.Printf("    %s: %s - %s\n", conflict.First.Title,
		conflict.First.Start.Format("2006-01-02"), conflict.First.End.Format("2006-01-02"))
	fmt.Printf("    %s: %s - %s\n", conflict.Second.Title,
		conflict.Second.Start.Format("2006-01-02"), conflict.Second.End.Format("2006-01-02"))
	fmt.Printf("    Hint: %s\n", conflict.Suggestion)
}

// loadEvents fetches the comparison set, optionally scoped to one project.
func loadEvents(cmd *cobra.Command, projectID string) ([]domain.Event, error) {
	c, err := getContainer()
	if err != nil {
		return nil, err
	}
	if projectID != "" {
		events, err := c.Events.FindByProject(cmd.Context(), projectID)
		if err != nil {
			return nil, fmt.Errorf("load events: %w", err)
		}
		return events, nil
	}
	events, err := c.Events.FindAll(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	return events, nil
}

func init() {
	detectCmd.Flags().StringVarP(&detectProject, "project", "p", "", "limit detection to one project")
	AddCommand(detectCmd)
}
