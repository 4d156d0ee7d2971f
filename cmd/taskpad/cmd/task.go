package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"taskpad/store"
)

func newAddCmd(a *app) *cobra.Command {
	var dueDate, priority, category string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, userID, err := a.resolveUser(ctx, cmd)
			if err != nil {
				return err
			}

			taskID, err := s.AddTask(ctx, userID, args[0], dueDate, priority, category)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.stdout, "Task %d added\n", taskID)
			return nil
		},
	}
	addUserFlag(cmd)
	cmd.Flags().StringVarP(&dueDate, "due", "d", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority name")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category name")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var all, completed, deleted bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"get"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, userID, err := a.resolveUser(ctx, cmd)
			if err != nil {
				return err
			}

			status := store.StatusPtr(store.StatusActive)
			switch {
			case all:
				status = nil
			case completed:
				status = store.StatusPtr(store.StatusCompleted)
			case deleted:
				status = store.StatusPtr(store.StatusInactive)
			}

			tasks, err := s.ListTasks(ctx, userID, status)
			if err != nil {
				return err
			}
			printTasks(a.stdout, tasks)
			return nil
		},
	}
	addUserFlag(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "Include every status")
	cmd.Flags().BoolVar(&completed, "completed", false, "Only completed tasks")
	cmd.Flags().BoolVar(&deleted, "deleted", false, "Only removed tasks")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var name, dueDate, priority, category string

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Edit a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			task, err := s.GetTaskDetails(ctx, taskID)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("name") {
				name = task.Name
			}
			if !cmd.Flags().Changed("due") {
				dueDate = task.DueDate
			}
			if !cmd.Flags().Changed("priority") {
				priority = task.Priority
			}
			if !cmd.Flags().Changed("category") {
				category = task.Category
			}

			if err := s.UpdateTask(ctx, taskID, name, dueDate, priority, category); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.stdout, "Task %d updated\n", taskID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "New name")
	cmd.Flags().StringVarP(&dueDate, "due", "d", "", "New due date")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	return cmd
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			if err := s.SetTaskComplete(ctx, taskID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.stdout, "Task %d completed\n", taskID)
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task-id>...",
		Aliases: []string{"remove"},
		Short:   "Remove tasks (soft delete)",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			taskIDs := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseTaskID(arg)
				if err != nil {
					return err
				}
				taskIDs = append(taskIDs, id)
			}
			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			summary, err := s.RemoveTasks(ctx, taskIDs)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(a.stdout, summary)
			return nil
		},
	}
}

// parseTaskID parses a task id argument.
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}
