package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slatehq/slate/internal/scheduling/application/services"
	"github.com/slatehq/slate/internal/scheduling/domain"
)

var (
	autoProject         string
	autoStrategy        string
	autoLookaheadDays   int
	autoAllowWeekends   bool
	autoRespectPriority bool
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Auto-resolve every detected conflict",
	Long: `Detect all conflicts and recommend one resolution per conflict.

Strategies:
  minimize-disruption  prefer the cheapest option that moves an event
  priority-based       never move high-priority shoots
  earliest-available   prefer the earliest suggested dates

Examples:
  slate auto
  slate auto --strategy priority-based --weekends=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getContainer()
		if err != nil {
			return err
		}

		events, err := loadEvents(cmd, autoProject)
		if err != nil {
			return err
		}

		opts := services.DefaultAutoResolveOptions()
		if autoStrategy != "" {
			opts.Strategy = domain.AutoResolveStrategy(autoStrategy)
		}
		if autoLookaheadDays > 0 {
			opts.MaxLookaheadDays = autoLookaheadDays
		}
		opts.AllowWeekends = autoAllowWeekends
		opts.RespectPriority = autoRespectPriority

		result := c.Detector.Detect(events)
		if !result.HasConflicts {
			fmt.Println("No conflicts to resolve.")
			return nil
		}

		resolutions := c.Resolver.AutoResolve(result.Conflicts, events, opts)

		fmt.Printf("Resolved %d conflicts with %s\n", len(resolutions), opts.Strategy)
		fmt.Println(strings.Repeat("-", 50))
		for _, resolution := range resolutions {
			fmt.Printf("\n  %s (confidence %.1f)\n", resolution.ConflictID, resolution.Confidence)
			if resolution.Recommended != nil {
				printOption(1, *resolution.Recommended)
			}
			if len(resolution.Alternatives) > 0 {
				fmt.Printf("     %d alternative option(s); see \"slate resolve %s\"\n",
					len(resolution.Alternatives), resolution.ConflictID)
			}
		}
		return nil
	},
}

func init() {
	autoCmd.Flags().StringVarP(&autoProject, "project", "p", "", "limit resolution to one project")
	autoCmd.Flags().StringVarP(&autoStrategy, "strategy", "s", "", "auto-resolve strategy")
	autoCmd.Flags().IntVar(&autoLookaheadDays, "lookahead", 0, "cap the reschedule search window in days")
	autoCmd.Flags().BoolVar(&autoAllowWeekends, "weekends", true, "allow weekend start dates")
	autoCmd.Flags().BoolVar(&autoRespectPriority, "respect-priority", false, "never move high-priority events")
	AddCommand(autoCmd)
}
