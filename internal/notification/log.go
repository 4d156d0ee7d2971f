package notification

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// logChannel appends notifications to a log file, rotating it once it
// exceeds the configured size.
type logChannel struct {
	config *LogConfig
	file   *os.File
	mu     sync.Mutex
}

// newLogChannel creates a log file notification channel.
func newLogChannel(cfg *LogConfig) Channel {
	return &logChannel{config: cfg}
}

// Send writes one notification line to the log file.
func (c *logChannel) Send(n Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureFile(); err != nil {
		return err
	}

	line := fmt.Sprintf("%s [%s] %s: %s\n",
		n.Timestamp.UTC().Format("2006-01-02T15:04:05Z"), n.ID, n.Title, n.Message)

	if _, err := c.file.WriteString(line); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}
	return c.file.Sync()
}

// ensureFile opens the log file, rotating first when needed.
func (c *logChannel) ensureFile() error {
	if c.file != nil {
		return nil
	}

	dir := filepath.Dir(c.config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	if err := c.rotateIfNeeded(); err != nil {
		return err
	}

	file, err := os.OpenFile(c.config.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	c.file = file
	return nil
}

// rotateIfNeeded renames the log file to .old once it exceeds the size cap.
func (c *logChannel) rotateIfNeeded() error {
	info, err := os.Stat(c.config.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	maxBytes := int64(c.config.MaxSizeMB) * 1024 * 1024
	if maxBytes <= 0 || info.Size() < maxBytes {
		return nil
	}

	if err := os.Rename(c.config.Path, c.config.Path+".old"); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	return nil
}

// Close closes the log file.
func (c *logChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.file != nil {
		err := c.file.Close()
		c.file = nil
		return err
	}
	return nil
}
