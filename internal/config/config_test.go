package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Database.MaxConnections != 10 {
		t.Errorf("MaxConnections = %d, want 10", cfg.Database.MaxConnections)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}

	// The written file is the documented sample and must load cleanly.
	if _, err := Load(path); err != nil {
		t.Errorf("reloading created config: %v", err)
	}
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: /tmp/test.db
  max_connections: 3
defaults:
  priorities: [Urgent]
admin:
  username: boss
  password: Chief#Pass9
notifications:
  poll_interval: 30m
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Database.Path != "/tmp/test.db" || cfg.Database.MaxConnections != 3 {
		t.Errorf("database config = %+v", cfg.Database)
	}
	if len(cfg.Defaults.Priorities) != 1 || cfg.Defaults.Priorities[0] != "Urgent" {
		t.Errorf("priorities = %v", cfg.Defaults.Priorities)
	}
	if cfg.GetPollInterval() != 30*time.Minute {
		t.Errorf("GetPollInterval = %v, want 30m", cfg.GetPollInterval())
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("database: ["), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load accepted invalid YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("TASKPAD_DB_PATH", "/tmp/override.db")
	t.Setenv("TASKPAD_ADMIN_USERNAME", "root1")
	t.Setenv("TASKPAD_MAX_CONNECTIONS", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Admin.Username != "root1" {
		t.Errorf("Username = %q, want root1", cfg.Admin.Username)
	}
	if cfg.Database.MaxConnections != 5 {
		t.Errorf("MaxConnections = %d, want 5", cfg.Database.MaxConnections)
	}
}

func TestValidate(t *testing.T) {
	valid := DefaultConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty db path", func(c *Config) { c.Database.Path = "" }},
		{"zero connections", func(c *Config) { c.Database.MaxConnections = 0 }},
		{"too many connections", func(c *Config) { c.Database.MaxConnections = 101 }},
		{"short admin username", func(c *Config) { c.Admin.Username = "ab" }},
		{"weak admin password", func(c *Config) { c.Admin.Password = "weak" }},
		{"bad admin email", func(c *Config) { c.Admin.Email = "not-an-email" }},
		{"bad poll interval", func(c *Config) { c.Notifications.PollInterval = "soon" }},
		{"tiny poll interval", func(c *Config) { c.Notifications.PollInterval = "5s" }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate accepted invalid config", tc.name)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/x.db"); got != filepath.Join(home, "x.db") {
		t.Errorf("ExpandPath = %q", got)
	}
	if got := ExpandPath("/abs/x.db"); got != "/abs/x.db" {
		t.Errorf("ExpandPath changed absolute path: %q", got)
	}
}
