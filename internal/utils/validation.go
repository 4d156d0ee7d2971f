package utils

import (
	"regexp"
	"strings"
)

// emailPattern is the permissive shape check used for profile and admin
// addresses: something @ something . something.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// passwordSymbols is the fixed symbol set the strength policy accepts.
const passwordSymbols = "!@#$%^&*()"

// ValidateUsername checks the minimum username length (4 characters).
func ValidateUsername(username string) error {
	if len(username) < 4 {
		return ErrInvalidUsername(username)
	}
	return nil
}

// ValidatePassword checks the password strength policy: at least 8
// characters with one lowercase, one uppercase, one digit, and one symbol
// from the fixed set.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword()
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return ErrWeakPassword()
	}
	return nil
}

// ValidateEmail checks the email address format. Empty addresses are valid;
// email is optional everywhere it appears.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail(email)
	}
	return nil
}

// ValidateTaskName checks that a task name is non-empty after trimming.
func ValidateTaskName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidTaskName()
	}
	return nil
}
