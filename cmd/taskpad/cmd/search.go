package cmd

import (
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var matchCase, wholeWord, useRegex bool

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search active tasks by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, userID, err := a.resolveUser(ctx, cmd)
			if err != nil {
				return err
			}

			tasks, err := s.SearchTasks(ctx, userID, args[0], matchCase, wholeWord, useRegex)
			if err != nil {
				return err
			}
			printTasks(a.stdout, tasks)
			return nil
		},
	}
	addUserFlag(cmd)
	cmd.Flags().BoolVar(&matchCase, "match-case", false, "Case-sensitive match")
	cmd.Flags().BoolVarP(&wholeWord, "whole-word", "w", false, "Match whole words only")
	cmd.Flags().BoolVarP(&useRegex, "regex", "r", false, "Treat text as a regular expression")
	return cmd
}
