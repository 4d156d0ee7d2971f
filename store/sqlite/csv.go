package sqlite

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"taskpad/internal/utils"
	"taskpad/store"
)

// csvHeader is the canonical column order for task interchange files.
// Task IDs are not exported; import assigns fresh ones.
var csvHeader = []string{"Name", "Due Date", "Priority", "Category", "Created At"}

// ExportTasks writes the user's non-deleted tasks to a CSV file at path and
// returns a summary.
func (s *Store) ExportTasks(ctx context.Context, path string, userID int64) (string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, due_date, priority, category, created_at FROM tasks WHERE user_id = ? AND status != ? ORDER BY id",
		userID, store.StatusInactive,
	)
	if err != nil {
		return "", utils.ErrStorage("exporting tasks", err)
	}
	defer func() { _ = rows.Close() }()

	f, err := os.Create(path)
	if err != nil {
		return "", utils.ErrStorage("creating export file", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", utils.ErrStorage("writing export file", err)
	}

	exported := 0
	for rows.Next() {
		var name, dueDate, priority, category, createdAt string
		if err := rows.Scan(&name, &dueDate, &priority, &category, &createdAt); err != nil {
			return "", utils.ErrStorage("exporting tasks", err)
		}
		if err := w.Write([]string{name, dueDate, priority, category, createdAt}); err != nil {
			return "", utils.ErrStorage("writing export file", err)
		}
		exported++
	}
	if err := rows.Err(); err != nil {
		return "", utils.ErrStorage("exporting tasks", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", utils.ErrStorage("writing export file", err)
	}
	return fmt.Sprintf("Exported %d task(s) to %s", exported, path), nil
}

// ImportTasks reads tasks from a CSV file at path into the user's list.
// Each row is handled independently: a malformed row is counted and
// skipped, never aborting the rows after it.
func (s *Store) ImportTasks(ctx context.Context, path string, userID int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", utils.ErrStorage("opening import file", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return "", utils.ErrStorage("reading import file", err)
	}
	if !isCSVHeader(header) {
		return "", utils.ErrStorage("reading import file",
			fmt.Errorf("unexpected header %v, want %v", header, csvHeader))
	}

	imported, skipped := 0, 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if err := s.importRow(ctx, userID, record); err != nil {
			skipped++
			continue
		}
		imported++
	}

	return fmt.Sprintf("Imported %d task(s), skipped %d row(s)", imported, skipped), nil
}

// importRow inserts one CSV record as an active task. Rows shorter than the
// header are padded with empty fields; a blank name fails the row.
func (s *Store) importRow(ctx context.Context, userID int64, record []string) error {
	for len(record) < len(csvHeader) {
		record = append(record, "")
	}
	name, dueDate, priority, category, createdAt := record[0], record[1], record[2], record[3], record[4]

	if err := utils.ValidateTaskName(name); err != nil {
		return err
	}
	if createdAt == "" {
		createdAt = s.timestamp()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tasks (user_id, name, due_date, priority, category, created_at, status) VALUES (?, ?, ?, ?, ?, ?, ?)",
		userID, name, dueDate, priority, category, createdAt, store.StatusActive,
	)
	if err != nil {
		return utils.ErrStorage("importing task", err)
	}
	return nil
}

// isCSVHeader reports whether header matches the canonical columns,
// ignoring case and surrounding whitespace.
func isCSVHeader(header []string) bool {
	if len(header) != len(csvHeader) {
		return false
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(h), csvHeader[i]) {
			return false
		}
	}
	return true
}
