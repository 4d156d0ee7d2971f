// Package config handles application configuration.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"taskpad/internal/utils"
)

//go:embed config.sample.yaml
var sampleConfig string

// GetSampleConfig returns the embedded sample configuration content.
func GetSampleConfig() string {
	return sampleConfig
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	Path           string `yaml:"path"`
	MaxConnections int    `yaml:"max_connections"`
}

// DefaultsConfig holds the process-wide catalog defaults merged into every
// user's priority and category lists.
type DefaultsConfig struct {
	Priorities []string `yaml:"priorities"`
	Categories []string `yaml:"categories"`
}

// AdminConfig holds the seed account created on first startup.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Email    string `yaml:"email"`
}

// EmailConfig holds SMTP settings for email notifications. The password
// comes from the keyring or TASKPAD_SMTP_PASSWORD, never the config file.
type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	From     string `yaml:"from"`
}

// NotificationsConfig holds delivery and polling settings.
type NotificationsConfig struct {
	Enabled         bool        `yaml:"enabled"`
	PollInterval    string      `yaml:"poll_interval"` // e.g. "1h", "30m"
	OSNotification  bool        `yaml:"os_notification"`
	LogNotification bool        `yaml:"log_notification"`
	LogPath         string      `yaml:"log_path"`
	LogMaxSizeMB    int         `yaml:"log_max_size_mb"`
	Email           EmailConfig `yaml:"email"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	BackgroundEnabled *bool `yaml:"background_enabled"` // default: true
}

// Config represents the application configuration.
type Config struct {
	Database      DatabaseConfig      `yaml:"database"`
	Defaults      DefaultsConfig      `yaml:"defaults"`
	Admin         AdminConfig         `yaml:"admin"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:           filepath.Join(GetDataDir(), "taskpad.db"),
			MaxConnections: 10,
		},
		Defaults: DefaultsConfig{
			Priorities: []string{"High", "Medium", "Low"},
			Categories: []string{"Work", "Personal", "Errands"},
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: "Admin@123",
		},
		Notifications: NotificationsConfig{
			Enabled:        true,
			PollInterval:   "1h",
			OSNotification: true,
			LogPath:        filepath.Join(GetDataDir(), "notifications.log"),
			LogMaxSizeMB:   5,
		},
	}
}

// Load reads configuration from path, or the default XDG path when path is
// empty. A missing file is created with defaults. Environment variables
// override the file afterwards.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = filepath.Join(GetConfigDir(), "config.yaml")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.save(configPath); err != nil {
			return nil, utils.ErrConfig("creating default config: %v", err)
		}
		cfg.applyEnv()
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, utils.ErrConfig("reading config file: %v", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, utils.ErrConfig("invalid YAML in config file: %v", err)
	}

	cfg.Database.Path = ExpandPath(cfg.Database.Path)
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv layers TASKPAD_* environment overrides on top of the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("TASKPAD_DB_PATH"); v != "" {
		c.Database.Path = ExpandPath(v)
	}
	if v := os.Getenv("TASKPAD_MAX_CONNECTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Database.MaxConnections = n
		}
	}
	if v := os.Getenv("TASKPAD_ADMIN_USERNAME"); v != "" {
		c.Admin.Username = v
	}
	if v := os.Getenv("TASKPAD_ADMIN_PASSWORD"); v != "" {
		c.Admin.Password = v
	}
	if v := os.Getenv("TASKPAD_ADMIN_EMAIL"); v != "" {
		c.Admin.Email = v
	}
	if v := os.Getenv("TASKPAD_POLL_INTERVAL"); v != "" {
		c.Notifications.PollInterval = v
	}
}

// save writes the documented sample config to path.
func (c *Config) save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(sampleConfig), 0644)
}

// Validate checks the configuration; failures abort bootstrap.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return utils.ErrConfig("database.path must be set")
	}
	if c.Database.MaxConnections < 1 || c.Database.MaxConnections > 100 {
		return utils.ErrConfig("database.max_connections must be between 1 and 100, got %d", c.Database.MaxConnections)
	}

	if err := utils.ValidateUsername(c.Admin.Username); err != nil {
		return utils.ErrConfig("admin.username: %v", err)
	}
	if err := utils.ValidatePassword(c.Admin.Password); err != nil {
		return utils.ErrConfig("admin.password: %v", err)
	}
	if err := utils.ValidateEmail(c.Admin.Email); err != nil {
		return utils.ErrConfig("admin.email: %v", err)
	}

	if c.Notifications.PollInterval != "" {
		interval, err := time.ParseDuration(c.Notifications.PollInterval)
		if err != nil {
			return utils.ErrConfig("invalid duration for notifications.poll_interval: %q", c.Notifications.PollInterval)
		}
		if interval < time.Minute {
			return utils.ErrConfig("notifications.poll_interval must be at least 1m, got %q", c.Notifications.PollInterval)
		}
	}

	return nil
}

// GetDatabasePath returns the database file path.
func (c *Config) GetDatabasePath() string {
	return c.Database.Path
}

// GetPollInterval returns the tracker poll interval, defaulting to 1 hour.
func (c *Config) GetPollInterval() time.Duration {
	if c.Notifications.PollInterval == "" {
		return time.Hour
	}
	interval, err := time.ParseDuration(c.Notifications.PollInterval)
	if err != nil {
		return time.Hour
	}
	return interval
}

// IsBackgroundLoggingEnabled reports whether the tracker writes its PID
// log file. Defaults to true when unset.
func (c *Config) IsBackgroundLoggingEnabled() bool {
	if c.Logging.BackgroundEnabled == nil {
		return true
	}
	return *c.Logging.BackgroundEnabled
}

// getXDGDir returns a directory path following the XDG base directory convention.
func getXDGDir(envVar, fallbackPath string) string {
	if dir := os.Getenv(envVar); dir != "" {
		return filepath.Join(dir, "taskpad")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", fallbackPath, "taskpad")
	}
	return filepath.Join(home, fallbackPath, "taskpad")
}

// GetConfigDir returns the configuration directory following the XDG base directory convention.
func GetConfigDir() string {
	return getXDGDir("XDG_CONFIG_HOME", ".config")
}

// GetDataDir returns the data directory following the XDG base directory convention.
func GetDataDir() string {
	return getXDGDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
