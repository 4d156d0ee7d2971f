package sqlite

import (
	"context"
	"fmt"

	"taskpad/internal/utils"
	"taskpad/store"
)

// LoadPriorities returns the built-in priority names followed by the user's
// own active entries, skipping names that shadow a default.
func (s *Store) LoadPriorities(ctx context.Context, userID int64) ([]string, error) {
	return s.loadCatalog(ctx, "priorities", userID, s.defaultPriorities)
}

// LoadCategories returns the built-in category names followed by the user's
// own active entries, skipping names that shadow a default.
func (s *Store) LoadCategories(ctx context.Context, userID int64) ([]string, error) {
	return s.loadCatalog(ctx, "categories", userID, s.defaultCategories)
}

func (s *Store) loadCatalog(ctx context.Context, table string, userID int64, defaults []string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT name FROM %s WHERE user_id = ? AND status = ? ORDER BY id", table),
		userID, store.StatusActive,
	)
	if err != nil {
		return nil, utils.ErrStorage("loading "+table, err)
	}
	defer func() { _ = rows.Close() }()

	seen := make(map[string]bool, len(defaults))
	names := make([]string, 0, len(defaults))
	for _, d := range defaults {
		seen[d] = true
		names = append(names, d)
	}

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, utils.ErrStorage("scanning "+table, err)
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, rows.Err()
}

// PriorityExists reports whether the user already has an active priority
// with this name, counting the built-in defaults.
func (s *Store) PriorityExists(ctx context.Context, userID int64, name string) bool {
	return s.catalogExists(ctx, "priorities", userID, name, s.defaultPriorities)
}

// CategoryExists reports whether the user already has an active category
// with this name, counting the built-in defaults.
func (s *Store) CategoryExists(ctx context.Context, userID int64, name string) bool {
	return s.catalogExists(ctx, "categories", userID, name, s.defaultCategories)
}

func (s *Store) catalogExists(ctx context.Context, table string, userID int64, name string, defaults []string) bool {
	for _, d := range defaults {
		if d == name {
			return true
		}
	}
	var exists int
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT 1 FROM %s WHERE user_id = ? AND name = ? AND status = ?", table),
		userID, name, store.StatusActive,
	).Scan(&exists)
	return err == nil
}

// AddPriority creates a user-scoped priority with a display color. The
// unique index on (user_id, name) is the duplicate gate, so two concurrent
// inserts cannot both succeed.
func (s *Store) AddPriority(ctx context.Context, userID int64, name, color string) (string, error) {
	if err := utils.ValidateTaskName(name); err != nil {
		return "", err
	}
	if s.PriorityExists(ctx, userID, name) {
		return "", utils.ErrDuplicateCatalogEntry("priority", name)
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO priorities (user_id, name, color, created_at, status) VALUES (?, ?, ?, ?, ?)",
		userID, name, color, s.timestamp(), store.StatusActive,
	)
	if isUniqueViolation(err) {
		return "", utils.ErrDuplicateCatalogEntry("priority", name)
	}
	if err != nil {
		return "", utils.ErrStorage("adding priority", err)
	}
	return fmt.Sprintf("Priority '%s' added", name), nil
}

// AddCategory creates a user-scoped category.
func (s *Store) AddCategory(ctx context.Context, userID int64, name string) (string, error) {
	if err := utils.ValidateTaskName(name); err != nil {
		return "", err
	}
	if s.CategoryExists(ctx, userID, name) {
		return "", utils.ErrDuplicateCatalogEntry("category", name)
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (user_id, name, created_at, status) VALUES (?, ?, ?, ?)",
		userID, name, s.timestamp(), store.StatusActive,
	)
	if isUniqueViolation(err) {
		return "", utils.ErrDuplicateCatalogEntry("category", name)
	}
	if err != nil {
		return "", utils.ErrStorage("adding category", err)
	}
	return fmt.Sprintf("Category '%s' added", name), nil
}

// GetPriorityColor returns the display color of the user's priority, or ""
// when the name has no active row.
func (s *Store) GetPriorityColor(ctx context.Context, userID int64, name string) (string, error) {
	var color string
	err := s.db.QueryRowContext(ctx,
		"SELECT color FROM priorities WHERE user_id = ? AND name = ? AND status = ?",
		userID, name, store.StatusActive,
	).Scan(&color)
	if err != nil {
		return "", nil
	}
	return color, nil
}
