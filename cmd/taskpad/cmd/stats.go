package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task breakdowns by status, category, and due date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, userID, err := a.resolveUser(ctx, cmd)
			if err != nil {
				return err
			}

			analytics, err := s.GetTaskAnalytics(ctx, userID)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(a.stdout, "By status:")
			for _, c := range analytics.Status {
				_, _ = fmt.Fprintf(a.stdout, "  %-12s %d\n", c.Status, c.Count)
			}
			_, _ = fmt.Fprintln(a.stdout, "By category (active):")
			for _, c := range analytics.Category {
				name := c.Category
				if name == "" {
					name = "(none)"
				}
				_, _ = fmt.Fprintf(a.stdout, "  %-12s %d\n", name, c.Count)
			}
			_, _ = fmt.Fprintln(a.stdout, "By due date (active):")
			for _, c := range analytics.DueDate {
				date := c.DueDate
				if date == "" {
					date = "(none)"
				}
				_, _ = fmt.Fprintf(a.stdout, "  %-12s %d\n", date, c.Count)
			}
			return nil
		},
	}
	addUserFlag(cmd)
	return cmd
}

func newDueCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "List tasks due today or earlier, across all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			names, err := s.GetDueTasks(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				_, _ = fmt.Fprintln(a.stdout, "Nothing due")
				return nil
			}
			for _, name := range names {
				_, _ = fmt.Fprintln(a.stdout, name)
			}
			return nil
		},
	}
}
