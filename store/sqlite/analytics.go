package sqlite

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"taskpad/internal/utils"
	"taskpad/store"
)

// GetTaskAnalytics computes the three task aggregations for a user. The
// status breakdown covers every lifecycle state; the category and due date
// breakdowns cover active tasks only, with empty values bucketed as-is.
func (s *Store) GetTaskAnalytics(ctx context.Context, userID int64) (*store.Analytics, error) {
	a := &store.Analytics{
		Status:   []store.StatusCount{},
		Category: []store.CategoryCount{},
		DueDate:  []store.DueDateCount{},
	}

	statusQ := sq.Select("status", "COUNT(*)").
		From("tasks").
		Where(sq.Eq{"user_id": userID}).
		GroupBy("status").
		OrderBy("status")
	err := s.aggregate(ctx, "aggregating by status", statusQ, func(sc scanner) error {
		var c store.StatusCount
		if err := sc.Scan(&c.Status, &c.Count); err != nil {
			return err
		}
		a.Status = append(a.Status, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	categoryQ := sq.Select("category", "COUNT(*)").
		From("tasks").
		Where(sq.Eq{"user_id": userID, "status": store.StatusActive}).
		GroupBy("category").
		OrderBy("category")
	err = s.aggregate(ctx, "aggregating by category", categoryQ, func(sc scanner) error {
		var c store.CategoryCount
		if err := sc.Scan(&c.Category, &c.Count); err != nil {
			return err
		}
		a.Category = append(a.Category, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	dueQ := sq.Select("due_date", "COUNT(*)").
		From("tasks").
		Where(sq.Eq{"user_id": userID, "status": store.StatusActive}).
		GroupBy("due_date").
		OrderBy("due_date")
	err = s.aggregate(ctx, "aggregating by due date", dueQ, func(sc scanner) error {
		var c store.DueDateCount
		if err := sc.Scan(&c.DueDate, &c.Count); err != nil {
			return err
		}
		a.DueDate = append(a.DueDate, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return a, nil
}

// aggregate runs one GROUP BY query and feeds each row to scan.
func (s *Store) aggregate(ctx context.Context, op string, q sq.SelectBuilder, scan func(scanner) error) error {
	query, args, err := q.ToSql()
	if err != nil {
		return utils.ErrStorage(op, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return utils.ErrStorage(op, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return utils.ErrStorage(op, err)
		}
	}
	if err := rows.Err(); err != nil {
		return utils.ErrStorage(op, err)
	}
	return nil
}
