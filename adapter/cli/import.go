package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slatehq/slate/internal/scheduling/domain"
	"github.com/slatehq/slate/internal/scheduling/infrastructure/importing"
)

var (
	importProject  string
	importPhase    string
	importPriority string
	importMovable  bool
)

var importCmd = &cobra.Command{
	Use:   "import <file.ics>",
	Short: "Import events from an iCalendar file",
	Long: `Import events from an iCalendar (.ics) export into the store.
Recurring events are expanded into individual occurrences. Phase and
priority are read from CATEGORIES and PRIORITY when present, with the
flags below as fallbacks.

Examples:
  slate import shoots.ics --project proj-1
  slate import shoots.ics --project proj-1 --phase planning --priority low`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getContainer()
		if err != nil {
			return err
		}

		count, err := c.Importer.ImportFile(cmd.Context(), args[0], importing.Options{
			ProjectID:       importProject,
			DefaultPhase:    domain.PhaseType(importPhase),
			DefaultPriority: domain.Priority(importPriority),
			Movable:         importMovable,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d events from %s\n", count, args[0])
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importProject, "project", "p", "", "project to assign imported events to")
	importCmd.Flags().StringVar(&importPhase, "phase", "filming", "fallback phase (planning, filming, editing)")
	importCmd.Flags().StringVar(&importPriority, "priority", "medium", "fallback priority (high, medium, low)")
	importCmd.Flags().BoolVar(&importMovable, "movable", true, "mark imported events as reschedulable")
	AddCommand(importCmd)
}
