package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPriorityCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "priority",
		Short: "Manage priority names",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List priorities (defaults plus your own)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, userID, err := a.resolveUser(ctx, cmd)
			if err != nil {
				return err
			}

			names, err := s.LoadPriorities(ctx, userID)
			if err != nil {
				return err
			}
			for _, name := range names {
				_, _ = fmt.Fprintln(a.stdout, name)
			}
			return nil
		},
	}
	addUserFlag(list)

	var color string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a priority with a display color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, userID, err := a.resolveUser(ctx, cmd)
			if err != nil {
				return err
			}

			summary, err := s.AddPriority(ctx, userID, args[0], color)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(a.stdout, summary)
			return nil
		},
	}
	addUserFlag(add)
	add.Flags().StringVar(&color, "color", "", "Display color (hex, e.g. #ff8800)")

	cmd.AddCommand(list, add)
	return cmd
}

func newCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage category names",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories (defaults plus your own)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, userID, err := a.resolveUser(ctx, cmd)
			if err != nil {
				return err
			}

			names, err := s.LoadCategories(ctx, userID)
			if err != nil {
				return err
			}
			for _, name := range names {
				_, _ = fmt.Fprintln(a.stdout, name)
			}
			return nil
		},
	}
	addUserFlag(list)

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, userID, err := a.resolveUser(ctx, cmd)
			if err != nil {
				return err
			}

			summary, err := s.AddCategory(ctx, userID, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(a.stdout, summary)
			return nil
		},
	}
	addUserFlag(add)

	cmd.AddCommand(list, add)
	return cmd
}
