package sqlite

import (
	"context"

	"taskpad/internal/utils"
)

// GetPreferences returns the user's settings as a key/value map. Users
// with no saved settings get an empty map, not an error.
func (s *Store) GetPreferences(ctx context.Context, userID int64) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, value FROM preferences WHERE user_id = ?", userID)
	if err != nil {
		return nil, utils.ErrStorage("loading preferences", err)
	}
	defer func() { _ = rows.Close() }()

	prefs := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, utils.ErrStorage("scanning preference", err)
		}
		prefs[key] = value
	}
	return prefs, rows.Err()
}

// SavePreferences upserts every entry of prefs in one transaction, so a
// partial write never survives a failure.
func (s *Store) SavePreferences(ctx context.Context, userID int64, prefs map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return utils.ErrStorage("saving preferences", err)
	}
	defer func() { _ = tx.Rollback() }()

	for key, value := range prefs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO preferences (user_id, key, value) VALUES (?, ?, ?) ON CONFLICT(user_id, key) DO UPDATE SET value = excluded.value",
			userID, key, value,
		)
		if err != nil {
			return utils.ErrStorage("saving preferences", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return utils.ErrStorage("saving preferences", err)
	}
	return nil
}
