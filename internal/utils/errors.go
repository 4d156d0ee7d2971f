package utils

import (
	"errors"
	"fmt"
)

// Kind classifies an error into the core's failure taxonomy.
type Kind int

const (
	// KindValidation covers bad caller input: empty task name, weak
	// password, malformed email, short username.
	KindValidation Kind = iota
	// KindDuplicate covers username/priority/category collisions.
	KindDuplicate
	// KindStorage covers underlying database failures.
	KindStorage
	// KindConfig covers missing or invalid configuration at startup.
	KindConfig
)

// Error wraps an underlying error with its taxonomy kind and an optional
// user-friendly suggestion. The raw storage engine error never crosses the
// store boundary undressed.
type Error struct {
	Kind       Kind
	Err        error
	Suggestion string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Suggestion == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s\n\nSuggestion: %s", e.Err.Error(), e.Suggestion)
}

// Unwrap returns the underlying error for error chain support.
func (e *Error) Unwrap() error {
	return e.Err
}

// kindOf extracts the Kind of err, or false when err is not a taxonomy error.
func kindOf(err error) (Kind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindValidation
}

// IsDuplicate reports whether err is a duplicate error.
func IsDuplicate(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindDuplicate
}

// IsStorage reports whether err is a storage error.
func IsStorage(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindStorage
}

// ErrInvalidTaskName returns an error for an empty task name.
func ErrInvalidTaskName() error {
	return &Error{
		Kind:       KindValidation,
		Err:        errors.New("invalid task name"),
		Suggestion: "Task names must contain at least one non-whitespace character",
	}
}

// ErrInvalidUsername returns an error for a too-short username.
func ErrInvalidUsername(username string) error {
	return &Error{
		Kind:       KindValidation,
		Err:        fmt.Errorf("invalid username: %q", username),
		Suggestion: "Usernames must be at least 4 characters long",
	}
}

// ErrWeakPassword returns an error for a password failing the strength policy.
func ErrWeakPassword() error {
	return &Error{
		Kind:       KindValidation,
		Err:        errors.New("password does not meet the strength policy"),
		Suggestion: "Use at least 8 characters with one uppercase, one lowercase, one digit, and one of !@#$%^&*()",
	}
}

// ErrInvalidEmail returns an error for a malformed email address.
func ErrInvalidEmail(email string) error {
	return &Error{
		Kind:       KindValidation,
		Err:        fmt.Errorf("invalid email format: %q", email),
		Suggestion: "Use an address like name@example.com",
	}
}

// ErrInvalidRegex returns an error for an uncompilable search pattern.
func ErrInvalidRegex(pattern string, cause error) error {
	return &Error{
		Kind:       KindValidation,
		Err:        fmt.Errorf("invalid search pattern %q: %w", pattern, cause),
		Suggestion: "Check the regular expression syntax",
	}
}

// ErrNoTasksSelected returns an error for a bulk operation on zero tasks.
func ErrNoTasksSelected() error {
	return &Error{
		Kind:       KindValidation,
		Err:        errors.New("no tasks selected"),
		Suggestion: "Select at least one task before removing",
	}
}

// ErrInvalidTransition returns an error for a status move outside the
// transition table.
func ErrInvalidTransition(from, to string) error {
	return &Error{
		Kind: KindValidation,
		Err:  fmt.Errorf("invalid status transition: %s -> %s", from, to),
	}
}

// ErrDuplicateUsername returns an error for a taken username.
func ErrDuplicateUsername(username string) error {
	return &Error{
		Kind:       KindDuplicate,
		Err:        fmt.Errorf("username already exists: %s", username),
		Suggestion: "Pick a different username",
	}
}

// ErrDuplicateCatalogEntry returns an error for a priority or category name
// that already exists for the user.
func ErrDuplicateCatalogEntry(kind, name string) error {
	return &Error{
		Kind: KindDuplicate,
		Err:  fmt.Errorf("%s '%s' already exists", kind, name),
	}
}

// ErrStorage wraps a database failure with the operation that hit it.
func ErrStorage(op string, cause error) error {
	return &Error{
		Kind: KindStorage,
		Err:  fmt.Errorf("%s: %w", op, cause),
	}
}

// ErrConfig returns a configuration error; these abort bootstrap.
func ErrConfig(format string, args ...interface{}) error {
	return &Error{
		Kind: KindConfig,
		Err:  fmt.Errorf(format, args...),
	}
}
