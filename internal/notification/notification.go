// Package notification implements alert delivery and the frequency policy
// that dedupes repeated alerts: a manager fans one notification out to the
// configured channels (desktop, log file, email), and a scheduler decides
// per notification id whether enough time has passed to send again.
package notification

import "time"

// Notification is one alert to deliver.
type Notification struct {
	ID        string
	Title     string
	Message   string
	Timestamp time.Time
}

// Channel is a single delivery mechanism.
type Channel interface {
	Send(n Notification) error
	Close() error
}

// Config holds the notification delivery configuration.
type Config struct {
	Enabled         bool
	OSNotification  OSConfig
	LogNotification LogConfig
}

// OSConfig holds desktop notification configuration.
type OSConfig struct {
	Enabled bool
}

// LogConfig holds log file notification configuration.
type LogConfig struct {
	Enabled   bool
	Path      string
	MaxSizeMB int
}

// CommandExecutor is the interface for executing system commands.
type CommandExecutor interface {
	Execute(cmd string, args ...string) error
}

// MockCommandExecutor is a mock implementation of CommandExecutor for testing.
type MockCommandExecutor struct {
	ExecuteFunc func(cmd string, args ...string) error
	Calls       [][]string
}

// Execute implements CommandExecutor.
func (m *MockCommandExecutor) Execute(cmd string, args ...string) error {
	m.Calls = append(m.Calls, append([]string{cmd}, args...))
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(cmd, args...)
	}
	return nil
}

// Option is a functional option for the manager and its channels.
type Option func(interface{})

// WithCommandExecutor sets a custom command executor.
func WithCommandExecutor(executor CommandExecutor) Option {
	return func(c interface{}) {
		if ch, ok := c.(*osChannel); ok {
			ch.executor = executor
		}
		if m, ok := c.(*Manager); ok {
			m.commandExecutor = executor
		}
	}
}

// WithPlatform sets the platform for desktop notifications.
func WithPlatform(platform string) Option {
	return func(c interface{}) {
		if ch, ok := c.(*osChannel); ok {
			ch.platform = platform
		}
	}
}
