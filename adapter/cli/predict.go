package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	predictProject string
	predictStart   string
	predictEnd     string
)

var predictCmd = &cobra.Command{
	Use:   "predict <event-id>",
	Short: "Predict conflicts for a hypothetical move",
	Long: `Predict which conflicts an event would have if moved to new dates,
without changing anything in the store.

Examples:
  slate predict shoot-1 --start 2026-02-10 --end 2026-02-12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getContainer()
		if err != nil {
			return err
		}

		start, err := parseDate(predictStart)
		if err != nil {
			return err
		}
		end, err := parseDate(predictEnd)
		if err != nil {
			return err
		}
		if end.Before(start) {
			return fmt.Errorf("end date %s is before start date %s", predictEnd, predictStart)
		}

		moving, err := c.Events.FindByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		events, err := loadEvents(cmd, predictProject)
		if err != nil {
			return err
		}

		conflicts := c.Detector.Predict(moving, start, end, events)

		fmt.Printf("Moving %q to %s - %s\n", moving.Title, predictStart, predictEnd)
		fmt.Println(strings.Repeat("-", 50))

		if len(conflicts) == 0 {
			fmt.Println("\n  The move is conflict free.")
			return nil
		}

		for _, conflict := range conflicts {
			printConflict(conflict)
		}
		fmt.Println(strings.Repeat("-", 50))
		fmt.Printf("Total: %d conflicts\n", len(conflicts))
		return nil
	},
}

func init() {
	predictCmd.Flags().StringVarP(&predictProject, "project", "p", "", "limit the comparison set to one project")
	predictCmd.Flags().StringVar(&predictStart, "start", "", "proposed start date (YYYY-MM-DD)")
	predictCmd.Flags().StringVar(&predictEnd, "end", "", "proposed end date (YYYY-MM-DD)")
	_ = predictCmd.MarkFlagRequired("start")
	_ = predictCmd.MarkFlagRequired("end")
	AddCommand(predictCmd)
}
