// Package store defines the domain types and the storage interface for the
// taskpad core: users, tasks, catalogs, preferences, and the activity log.
package store

import (
	"context"
	"time"
)

// TimeLayout is the storage format for created_at timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// DateLayout is the conventional format for task due dates.
const DateLayout = "2006-01-02"

// Status represents the lifecycle state of a task or catalog row.
type Status int

const (
	StatusInactive  Status = 0 // soft-deleted
	StatusActive    Status = 1
	StatusCompleted Status = 2
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusInactive:
		return "inactive"
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// transitions is the closed table of permitted status moves. Self-transitions
// are permitted so removal and completion stay idempotent.
var transitions = map[Status][]Status{
	StatusActive:    {StatusActive, StatusInactive, StatusCompleted},
	StatusCompleted: {StatusCompleted, StatusInactive},
	StatusInactive:  {StatusInactive},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// User is an account row. Password material is a hex SHA-256 digest plus the
// per-user salt it was computed with.
type User struct {
	ID           int64
	Name         string
	Username     string
	Email        string
	PasswordHash string
	Salt         string
	CreatedAt    string
	Status       Status
}

// Task is a to-do item owned by a user. Priority and Category are free text
// that may match a catalog row by name; PriorityColor is resolved at read
// time and empty when no row matches.
type Task struct {
	ID            int64
	UserID        int64
	Name          string
	DueDate       string
	Priority      string
	Category      string
	CreatedAt     string
	Status        Status
	PriorityColor string
}

// Priority is a user-scoped priority name with a display color.
type Priority struct {
	ID        int64
	UserID    int64
	Name      string
	Color     string
	CreatedAt string
	Status    Status
}

// Category is a user-scoped category name.
type Category struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt string
	Status    Status
}

// ActivityEntry is one row of the append-only login/logout log.
type ActivityEntry struct {
	ID        int64
	UserID    int64
	Type      string // "Login" or "Logout"
	CreatedAt string
	Status    string // "Success", "Failure", or "" for logout
}

// Activity event types and outcomes.
const (
	ActivityLogin  = "Login"
	ActivityLogout = "Logout"

	ActivitySuccess = "Success"
	ActivityFailure = "Failure"
)

// StatusCount is one bucket of the per-status aggregation.
type StatusCount struct {
	Status Status
	Count  int
}

// CategoryCount is one bucket of the per-category aggregation.
type CategoryCount struct {
	Category string
	Count    int
}

// DueDateCount is one bucket of the per-due-date aggregation.
type DueDateCount struct {
	DueDate string
	Count   int
}

// Analytics holds the three independent task aggregations.
type Analytics struct {
	Status   []StatusCount
	Category []CategoryCount
	DueDate  []DueDateCount
}

// CredentialStore covers account lifecycle and authentication.
type CredentialStore interface {
	CreateUser(ctx context.Context, username, password string) error
	VerifyUser(ctx context.Context, username, password string) (bool, int64)
	UsernameExists(ctx context.Context, username string) bool
	GetUserData(ctx context.Context, userID int64) (*User, error)
	LookupUserID(ctx context.Context, username string) (int64, error)
	UpdateProfile(ctx context.Context, userID int64, name, username, email string) bool
	UpdatePassword(ctx context.Context, userID int64, newPassword string) bool
	EnsureDefaultUser(ctx context.Context, username, password string) error
	LogActivity(ctx context.Context, userID int64, eventType, status string) error
}

// TaskStore covers the task lifecycle and query surface.
type TaskStore interface {
	AddTask(ctx context.Context, userID int64, name, dueDate, priority, category string) (int64, error)
	UpdateTask(ctx context.Context, taskID int64, name, dueDate, priority, category string) error
	GetTaskDetails(ctx context.Context, taskID int64) (*Task, error)
	ListTasks(ctx context.Context, userID int64, status *Status) ([]Task, error)
	RemoveTasks(ctx context.Context, taskIDs []int64) (string, error)
	SetTaskComplete(ctx context.Context, taskID int64) error
	SearchTasks(ctx context.Context, userID int64, text string, matchCase, wholeWord, useRegex bool) ([]Task, error)
	ExportTasks(ctx context.Context, path string, userID int64) (string, error)
	ImportTasks(ctx context.Context, path string, userID int64) (string, error)
	GetDueTasks(ctx context.Context) ([]string, error)
	GetTaskAnalytics(ctx context.Context, userID int64) (*Analytics, error)
	CountTasks(ctx context.Context, userID int64) (int, error)
}

// CatalogStore covers user-scoped priorities and categories merged with
// process-wide defaults.
type CatalogStore interface {
	LoadPriorities(ctx context.Context, userID int64) ([]string, error)
	LoadCategories(ctx context.Context, userID int64) ([]string, error)
	PriorityExists(ctx context.Context, userID int64, name string) bool
	CategoryExists(ctx context.Context, userID int64, name string) bool
	AddPriority(ctx context.Context, userID int64, name, color string) (string, error)
	AddCategory(ctx context.Context, userID int64, name string) (string, error)
	GetPriorityColor(ctx context.Context, userID int64, name string) (string, error)
}

// PreferenceStore covers per-user key/value settings.
type PreferenceStore interface {
	GetPreferences(ctx context.Context, userID int64) (map[string]string, error)
	SavePreferences(ctx context.Context, userID int64, prefs map[string]string) error
}

// Store is the full data-access surface the UI layer talks to.
type Store interface {
	CredentialStore
	TaskStore
	CatalogStore
	PreferenceStore
	Close() error
}

// StatusPtr returns a pointer to s, for the optional status filter of
// ListTasks.
func StatusPtr(s Status) *Status {
	return &s
}

// FormatTime renders t in the storage timestamp format.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
