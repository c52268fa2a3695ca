package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slatehq/slate/internal/scheduling/domain"
)

var resolveProject string

var resolveCmd = &cobra.Command{
	Use:   "resolve <conflict-id>",
	Short: "Generate resolution options for one conflict",
	Long: `Generate cost-ranked resolution options for a detected conflict.
Conflict IDs are printed by "slate detect".

Examples:
  slate resolve conflict-shoot-1-shoot-2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getContainer()
		if err != nil {
			return err
		}

		events, err := loadEvents(cmd, resolveProject)
		if err != nil {
			return err
		}

		result := c.Detector.Detect(events)
		conflict, ok := findConflict(result.Conflicts, args[0])
		if !ok {
			return fmt.Errorf("conflict %s not found; run \"slate detect\" to list current conflicts", args[0])
		}

		options := c.Resolver.GenerateOptions(conflict, events)

		fmt.Printf("Options for %s\n", conflict.ID)
		fmt.Println(strings.Repeat("-", 50))
		for i, option := range options {
			printOption(i+1, option)
		}
		return nil
	},
}

func findConflict(conflicts []domain.Conflict, id string) (domain.Conflict, bool) {
	for _, conflict := range conflicts {
		if conflict.ID == id {
			return conflict, true
		}
	}
	return domain.Conflict{}, false
}

func printOption(rank int, option domain.ResolutionOption) {
	fmt.Printf("\n  %d. [%s] %s\n", rank, option.Strategy, option.Description)
	fmt.Printf("     target %s, impact %s, cost %.1f\n", option.TargetEventID, option.Impact, option.Cost)
	if option.HasSuggestedDates() {
		fmt.Printf("     suggested dates: %s - %s\n",
			option.SuggestedStart.Format("2006-01-02"), option.SuggestedEnd.Format("2006-01-02"))
	}
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveProject, "project", "p", "", "limit resolution to one project")
	AddCommand(resolveCmd)
}
