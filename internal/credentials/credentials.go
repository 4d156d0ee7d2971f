// Package credentials resolves the SMTP password used for email
// notifications. The system keyring is checked first, then the
// TASKPAD_SMTP_PASSWORD environment variable.
package credentials

import (
	"errors"
	"fmt"
	"os"

	zkeyring "github.com/zalando/go-keyring"
)

// service is the keyring service name all entries are stored under.
const service = "taskpad"

// envPassword is the environment fallback for headless machines without a
// keyring daemon.
const envPassword = "TASKPAD_SMTP_PASSWORD"

// ErrNotFound is returned when neither the keyring nor the environment
// holds a credential for the account.
var ErrNotFound = errors.New("credential not found")

// Source identifies where a credential was resolved from.
type Source string

const (
	SourceKeyring     Source = "keyring"
	SourceEnvironment Source = "environment"
)

// Keyring is the secret-storage surface the manager depends on.
type Keyring interface {
	Set(service, account, password string) error
	Get(service, account string) (string, error)
	Delete(service, account string) error
}

// systemKeyring backs Keyring with the OS keyring.
type systemKeyring struct{}

func (systemKeyring) Set(service, account, password string) error {
	return zkeyring.Set(service, account, password)
}

func (systemKeyring) Get(service, account string) (string, error) {
	return zkeyring.Get(service, account)
}

func (systemKeyring) Delete(service, account string) error {
	return zkeyring.Delete(service, account)
}

// Manager resolves and stores credentials.
type Manager struct {
	keyring Keyring
}

// ManagerOption is a functional option for Manager.
type ManagerOption func(*Manager)

// WithKeyring overrides the keyring implementation. Tests pass a
// MockKeyring.
func WithKeyring(k Keyring) ManagerOption {
	return func(m *Manager) { m.keyring = k }
}

// NewManager creates a credential manager backed by the system keyring.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{keyring: systemKeyring{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Set stores the SMTP password for account in the keyring.
func (m *Manager) Set(account, password string) error {
	if err := m.keyring.Set(service, account, password); err != nil {
		return fmt.Errorf("storing credential: %w", err)
	}
	return nil
}

// Get resolves the SMTP password for account, preferring the keyring over
// the environment.
func (m *Manager) Get(account string) (string, Source, error) {
	if password, err := m.keyring.Get(service, account); err == nil && password != "" {
		return password, SourceKeyring, nil
	}

	if password := os.Getenv(envPassword); password != "" {
		return password, SourceEnvironment, nil
	}

	return "", "", fmt.Errorf("%w for %s", ErrNotFound, account)
}

// Delete removes the stored password for account from the keyring.
func (m *Manager) Delete(account string) error {
	if err := m.keyring.Delete(service, account); err != nil {
		return fmt.Errorf("deleting credential: %w", err)
	}
	return nil
}
