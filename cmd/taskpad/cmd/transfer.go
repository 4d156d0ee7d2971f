package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export tasks to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, userID, err := a.resolveUser(ctx, cmd)
			if err != nil {
				return err
			}

			summary, err := s.ExportTasks(ctx, args[0], userID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(a.stdout, summary)
			return nil
		},
	}
	addUserFlag(cmd)
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import tasks from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, userID, err := a.resolveUser(ctx, cmd)
			if err != nil {
				return err
			}

			summary, err := s.ImportTasks(ctx, args[0], userID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(a.stdout, summary)
			return nil
		},
	}
	addUserFlag(cmd)
	return cmd
}
