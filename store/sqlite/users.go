package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"taskpad/internal/auth"
	"taskpad/internal/utils"
	"taskpad/store"
)

const userColumns = "id, name, username, email, password_hash, salt, created_at, status"

// CreateUser registers a new account after validating the username and
// password policies. The username unique constraint is the single point of
// duplicate detection, so concurrent registrations race safely.
func (s *Store) CreateUser(ctx context.Context, username, password string) error {
	if err := utils.ValidateUsername(username); err != nil {
		return err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return err
	}

	hash, salt, err := auth.HashPassword(password)
	if err != nil {
		return utils.ErrStorage("hashing password", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, salt, created_at, status) VALUES (?, ?, ?, ?, ?)",
		username, hash, salt, s.timestamp(), store.StatusActive,
	)
	if isUniqueViolation(err) {
		return utils.ErrDuplicateUsername(username)
	}
	if err != nil {
		return utils.ErrStorage("creating user", err)
	}
	return nil
}

// VerifyUser checks username and password against the stored credentials
// and appends a login row to the activity log either way. It returns the
// user ID on success and 0 otherwise.
func (s *Store) VerifyUser(ctx context.Context, username, password string) (bool, int64) {
	var id int64
	var hash, salt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, password_hash, salt FROM users WHERE username = ? AND status = ?",
		username, store.StatusActive,
	).Scan(&id, &hash, &salt)
	if err != nil {
		// Unknown usernames leave no activity trail; there is no user
		// row to attach one to.
		return false, 0
	}

	if auth.HashWithSalt(password, salt) != hash {
		_ = s.LogActivity(ctx, id, store.ActivityLogin, store.ActivityFailure)
		return false, 0
	}

	_ = s.LogActivity(ctx, id, store.ActivityLogin, store.ActivitySuccess)
	return true, id
}

// UsernameExists reports whether an active account holds the username.
func (s *Store) UsernameExists(ctx context.Context, username string) bool {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE username = ? AND status = ?",
		username, store.StatusActive,
	).Scan(&exists)
	return err == nil
}

// GetUserData returns the full user row for userID.
func (s *Store) GetUserData(ctx context.Context, userID int64) (*store.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", userID)
	u, err := scanUserFrom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, utils.ErrStorage("loading user", err)
	}
	if err != nil {
		return nil, utils.ErrStorage("loading user", err)
	}
	return u, nil
}

// LookupUserID resolves a username to its user ID.
func (s *Store) LookupUserID(ctx context.Context, username string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE username = ? AND status = ?",
		username, store.StatusActive,
	).Scan(&id)
	if err != nil {
		return 0, utils.ErrStorage("looking up user", err)
	}
	return id, nil
}

// UpdateProfile updates the display name, username, and email of an account.
// It reports success; validation failures and username collisions both
// return false.
func (s *Store) UpdateProfile(ctx context.Context, userID int64, name, username, email string) bool {
	if utils.ValidateUsername(username) != nil {
		return false
	}
	if utils.ValidateEmail(email) != nil {
		return false
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET name = ?, username = ?, email = ? WHERE id = ?",
		name, username, email, userID,
	)
	if err != nil {
		return false
	}
	n, err := res.RowsAffected()
	return err == nil && n > 0
}

// UpdatePassword replaces the stored password material with a fresh salt
// and hash, after validating the strength policy.
func (s *Store) UpdatePassword(ctx context.Context, userID int64, newPassword string) bool {
	if utils.ValidatePassword(newPassword) != nil {
		return false
	}

	hash, salt, err := auth.HashPassword(newPassword)
	if err != nil {
		return false
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ?, salt = ? WHERE id = ?",
		hash, salt, userID,
	)
	if err != nil {
		return false
	}
	n, err := res.RowsAffected()
	return err == nil && n > 0
}

// EnsureDefaultUser creates the seed account if the username is not taken.
// Losing the insert race to another process counts as success.
func (s *Store) EnsureDefaultUser(ctx context.Context, username, password string) error {
	if s.UsernameExists(ctx, username) {
		return nil
	}
	err := s.CreateUser(ctx, username, password)
	if utils.IsDuplicate(err) {
		return nil
	}
	return err
}

// LogActivity appends a login or logout event to the activity log.
func (s *Store) LogActivity(ctx context.Context, userID int64, eventType, status string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO user_activity (user_id, type, created_at, status) VALUES (?, ?, ?, ?)",
		userID, eventType, s.timestamp(), status,
	)
	if err != nil {
		return utils.ErrStorage("logging activity", err)
	}
	return nil
}
