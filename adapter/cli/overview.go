package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slatehq/slate/internal/scheduling/application/queries"
)

var (
	overviewProject string
	overviewFrom    string
	overviewTo      string
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Summarize the schedule and its conflicts",
	Long: `Show every event in a window with its phase, priority and the
number of conflicts it is involved in.

Examples:
  slate overview
  slate overview --from 2026-03-01 --to 2026-03-31 --project proj-1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getContainer()
		if err != nil {
			return err
		}

		query := queries.ScheduleOverviewQuery{ProjectID: overviewProject}
		if overviewFrom != "" {
			if query.From, err = parseDate(overviewFrom); err != nil {
				return err
			}
		}
		if overviewTo != "" {
			if query.To, err = parseDate(overviewTo); err != nil {
				return err
			}
		}

		overview, err := c.Overview.Handle(cmd.Context(), query)
		if err != nil {
			return err
		}

		fmt.Printf("%d events, %d filming days, %d conflicts\n",
			len(overview.Events), overview.FilmingDays, overview.ConflictCount)
		fmt.Println(strings.Repeat("-", 50))

		for _, event := range overview.Events {
			marker := " "
			if event.Conflicts > 0 {
				marker = "!"
			}
			fmt.Printf("  %s %s - %s  %-8s %-6s %q", marker,
				event.Start.Format("2006-01-02"), event.End.Format("2006-01-02"),
				event.Phase, event.Priority, event.Title)
			if event.Conflicts > 0 {
				fmt.Printf("  (%d conflicts)", event.Conflicts)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	overviewCmd.Flags().StringVarP(&overviewProject, "project", "p", "", "limit the overview to one project")
	overviewCmd.Flags().StringVar(&overviewFrom, "from", "", "window start (YYYY-MM-DD)")
	overviewCmd.Flags().StringVar(&overviewTo, "to", "", "window end (YYYY-MM-DD)")
	AddCommand(overviewCmd)
}
