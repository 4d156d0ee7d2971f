package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"taskpad/internal/utils"
	"taskpad/store"
)

// taskSelect is the base query for task reads: every task column plus the
// display color of the matching user-scoped priority row, when one exists.
func taskSelect() sq.SelectBuilder {
	return sq.Select(
		"t.id", "t.user_id", "t.name", "t.due_date", "t.priority",
		"t.category", "t.created_at", "t.status", "p.color",
	).
		From("tasks t").
		LeftJoin("priorities p ON p.name = t.priority AND p.user_id = t.user_id AND p.status = 1")
}

// AddTask inserts a new active task and returns its ID.
func (s *Store) AddTask(ctx context.Context, userID int64, name, dueDate, priority, category string) (int64, error) {
	if err := utils.ValidateTaskName(name); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO tasks (user_id, name, due_date, priority, category, created_at, status) VALUES (?, ?, ?, ?, ?, ?, ?)",
		userID, name, dueDate, priority, category, s.timestamp(), store.StatusActive,
	)
	if err != nil {
		return 0, utils.ErrStorage("adding task", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, utils.ErrStorage("adding task", err)
	}
	return id, nil
}

// UpdateTask rewrites the editable fields of a task. Status and ownership
// are untouched.
func (s *Store) UpdateTask(ctx context.Context, taskID int64, name, dueDate, priority, category string) error {
	if err := utils.ValidateTaskName(name); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET name = ?, due_date = ?, priority = ?, category = ? WHERE id = ?",
		name, dueDate, priority, category, taskID,
	)
	if err != nil {
		return utils.ErrStorage("updating task", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return utils.ErrStorage("updating task", err)
	}
	if n == 0 {
		return utils.ErrStorage("updating task", fmt.Errorf("task %d not found", taskID))
	}
	return nil
}

// GetTaskDetails returns one task by ID with its resolved priority color.
func (s *Store) GetTaskDetails(ctx context.Context, taskID int64) (*store.Task, error) {
	query, args, err := taskSelect().Where(sq.Eq{"t.id": taskID}).ToSql()
	if err != nil {
		return nil, utils.ErrStorage("building task query", err)
	}

	t, err := scanTaskFrom(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, utils.ErrStorage("loading task", fmt.Errorf("task %d not found", taskID))
	}
	if err != nil {
		return nil, utils.ErrStorage("loading task", err)
	}
	return t, nil
}

// ListTasks returns the user's tasks, optionally filtered to one status,
// ordered by ID.
func (s *Store) ListTasks(ctx context.Context, userID int64, status *store.Status) ([]store.Task, error) {
	q := taskSelect().Where(sq.Eq{"t.user_id": userID}).OrderBy("t.id")
	if status != nil {
		q = q.Where(sq.Eq{"t.status": *status})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, utils.ErrStorage("building list query", err)
	}
	return s.queryTasks(ctx, query, args...)
}

// queryTasks runs a task SELECT and scans all rows.
func (s *Store) queryTasks(ctx context.Context, query string, args ...interface{}) ([]store.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, utils.ErrStorage("listing tasks", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []store.Task{}
	for rows.Next() {
		t, err := scanTaskFrom(rows)
		if err != nil {
			return nil, utils.ErrStorage("scanning task", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// RemoveTasks soft-deletes the given tasks in a single transaction and
// returns a summary of how many rows changed state. Tasks already inactive
// are skipped, not failed.
func (s *Store) RemoveTasks(ctx context.Context, taskIDs []int64) (string, error) {
	if len(taskIDs) == 0 {
		return "", utils.ErrNoTasksSelected()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", utils.ErrStorage("removing tasks", err)
	}
	defer func() { _ = tx.Rollback() }()

	removed := 0
	for _, id := range taskIDs {
		res, err := tx.ExecContext(ctx,
			"UPDATE tasks SET status = ? WHERE id = ? AND status != ?",
			store.StatusInactive, id, store.StatusInactive,
		)
		if err != nil {
			return "", utils.ErrStorage("removing tasks", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			removed++
		}
	}

	if err := tx.Commit(); err != nil {
		return "", utils.ErrStorage("removing tasks", err)
	}
	return fmt.Sprintf("Removed %d task(s)", removed), nil
}

// SetTaskComplete moves a task to the completed status. Completing an
// already completed task is a no-op; completing a soft-deleted task is a
// transition violation.
func (s *Store) SetTaskComplete(ctx context.Context, taskID int64) error {
	var current store.Status
	err := s.db.QueryRowContext(ctx, "SELECT status FROM tasks WHERE id = ?", taskID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrStorage("completing task", fmt.Errorf("task %d not found", taskID))
	}
	if err != nil {
		return utils.ErrStorage("completing task", err)
	}

	if current == store.StatusCompleted {
		return nil
	}
	if !store.CanTransition(current, store.StatusCompleted) {
		return utils.ErrInvalidTransition(current.String(), store.StatusCompleted.String())
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE tasks SET status = ? WHERE id = ?", store.StatusCompleted, taskID)
	if err != nil {
		return utils.ErrStorage("completing task", err)
	}
	return nil
}

// GetDueTasks returns the names of all active tasks across users whose due
// date is today or earlier. The tracker polls this.
func (s *Store) GetDueTasks(ctx context.Context) ([]string, error) {
	today := s.now().Format(store.DateLayout)
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM tasks WHERE status = ? AND due_date != '' AND due_date <= ? ORDER BY due_date, id",
		store.StatusActive, today,
	)
	if err != nil {
		return nil, utils.ErrStorage("loading due tasks", err)
	}
	defer func() { _ = rows.Close() }()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, utils.ErrStorage("scanning due task", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CountTasks returns the number of active tasks a user has.
func (s *Store) CountTasks(ctx context.Context, userID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks WHERE user_id = ? AND status = ?",
		userID, store.StatusActive,
	).Scan(&n)
	if err != nil {
		return 0, utils.ErrStorage("counting tasks", err)
	}
	return n, nil
}
