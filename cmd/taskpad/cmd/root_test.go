package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// cliEnv holds the per-test config and database paths.
type cliEnv struct {
	configPath string
	dbPath     string
}

// newCLIEnv creates an isolated config and database for one test.
func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	return &cliEnv{
		configPath: filepath.Join(dir, "config.yaml"),
		dbPath:     filepath.Join(dir, "taskpad.db"),
	}
}

// run executes one CLI invocation against the test environment.
func (e *cliEnv) run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	full := append([]string{"--config", e.configPath, "--db", e.dbPath}, args...)
	var stdout, stderr bytes.Buffer
	code := Execute(full, strings.NewReader(""), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

// mustRun executes one CLI invocation and fails the test on a nonzero exit.
func (e *cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, code := e.run(t, args...)
	if code != 0 {
		t.Fatalf("taskpad %v exited %d: %s", args, code, stderr)
	}
	return stdout
}

func TestRegisterAndLogin(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "register", "alice", "--password", "Secret#123")
	if !strings.Contains(out, "registered") {
		t.Errorf("register output = %q", out)
	}

	out = env.mustRun(t, "login", "alice", "--password", "Secret#123")
	if !strings.Contains(out, "Welcome back, alice") {
		t.Errorf("login output = %q", out)
	}

	_, stderr, code := env.run(t, "login", "alice", "--password", "Wrong#Pass1")
	if code == 0 {
		t.Error("login with wrong password exited 0")
	}
	if !strings.Contains(stderr, "invalid username or password") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	env := newCLIEnv(t)

	_, stderr, code := env.run(t, "register", "alice", "--password", "weak")
	if code == 0 {
		t.Fatal("weak password accepted")
	}
	if !strings.Contains(stderr, "strength policy") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestPasswordPromptFallsBackToStdin(t *testing.T) {
	env := newCLIEnv(t)

	var stdout, stderr bytes.Buffer
	args := []string{"--config", env.configPath, "--db", env.dbPath, "register", "alice"}
	code := Execute(args, strings.NewReader("Secret#123\n"), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("register via stdin exited %d: %s", code, stderr.String())
	}

	out := env.mustRun(t, "login", "alice", "--password", "Secret#123")
	if !strings.Contains(out, "Welcome back") {
		t.Errorf("login output = %q", out)
	}
}

func TestTaskLifecycle(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "register", "alice", "--password", "Secret#123")

	out := env.mustRun(t, "add", "Write report", "-u", "alice", "--due", "2026-09-01", "-p", "High", "-c", "Work")
	if !strings.Contains(out, "Task 1 added") {
		t.Errorf("add output = %q", out)
	}
	env.mustRun(t, "add", "Walk dog", "-u", "alice")

	out = env.mustRun(t, "list", "-u", "alice")
	if !strings.Contains(out, "Write report") || !strings.Contains(out, "Walk dog") {
		t.Errorf("list output = %q", out)
	}

	env.mustRun(t, "done", "1")
	out = env.mustRun(t, "list", "-u", "alice", "--completed")
	if !strings.Contains(out, "Write report") {
		t.Errorf("completed list = %q", out)
	}

	out = env.mustRun(t, "rm", "2")
	if !strings.Contains(out, "Removed 1 task(s)") {
		t.Errorf("rm output = %q", out)
	}
	out = env.mustRun(t, "list", "-u", "alice")
	if strings.Contains(out, "Walk dog") {
		t.Errorf("removed task still listed: %q", out)
	}
}

func TestUpdatePreservesUnsetFields(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "register", "alice", "--password", "Secret#123")
	env.mustRun(t, "add", "Old name", "-u", "alice", "--due", "2026-09-01", "-p", "High")

	env.mustRun(t, "update", "1", "--name", "New name")

	out := env.mustRun(t, "list", "-u", "alice")
	if !strings.Contains(out, "New name") || !strings.Contains(out, "2026-09-01") || !strings.Contains(out, "High") {
		t.Errorf("list after update = %q", out)
	}
}

func TestSearchFlags(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "register", "alice", "--password", "Secret#123")
	env.mustRun(t, "add", "Report draft", "-u", "alice")
	env.mustRun(t, "add", "Reporting pipeline", "-u", "alice")

	out := env.mustRun(t, "search", "report", "-u", "alice")
	if !strings.Contains(out, "Report draft") || !strings.Contains(out, "Reporting pipeline") {
		t.Errorf("substring search = %q", out)
	}

	out = env.mustRun(t, "search", "report", "-u", "alice", "-w")
	if !strings.Contains(out, "Report draft") || strings.Contains(out, "Reporting pipeline") {
		t.Errorf("whole-word search = %q", out)
	}

	out = env.mustRun(t, "search", "^Reporting", "-u", "alice", "-r")
	if strings.Contains(out, "Report draft") || !strings.Contains(out, "Reporting pipeline") {
		t.Errorf("regex search = %q", out)
	}
}

func TestExportImport(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "register", "alice", "--password", "Secret#123")
	env.mustRun(t, "register", "bobby", "--password", "Secret#123")
	env.mustRun(t, "add", "Write report", "-u", "alice", "--due", "2026-09-01")

	csvPath := filepath.Join(t.TempDir(), "tasks.csv")
	out := env.mustRun(t, "export", csvPath, "-u", "alice")
	if !strings.Contains(out, "Exported 1 task(s)") {
		t.Errorf("export output = %q", out)
	}

	out = env.mustRun(t, "import", csvPath, "-u", "bobby")
	if !strings.Contains(out, "Imported 1 task(s)") {
		t.Errorf("import output = %q", out)
	}

	out = env.mustRun(t, "list", "-u", "bobby")
	if !strings.Contains(out, "Write report") {
		t.Errorf("bobby's list = %q", out)
	}
}

func TestPrefsRoundTrip(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "register", "alice", "--password", "Secret#123")

	env.mustRun(t, "prefs", "set", "theme=dark", "enable_notifications=True", "-u", "alice")

	out := env.mustRun(t, "prefs", "get", "-u", "alice")
	if !strings.Contains(out, "theme = dark") || !strings.Contains(out, "enable_notifications = True") {
		t.Errorf("prefs get = %q", out)
	}
}

func TestCatalogCommands(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "register", "alice", "--password", "Secret#123")

	env.mustRun(t, "priority", "add", "Urgent", "--color", "#ff0000", "-u", "alice")

	out := env.mustRun(t, "priority", "list", "-u", "alice")
	// Defaults from config come first, then the user's entries.
	if !strings.Contains(out, "High") || !strings.Contains(out, "Urgent") {
		t.Errorf("priority list = %q", out)
	}

	_, stderr, code := env.run(t, "priority", "add", "Urgent", "-u", "alice")
	if code == 0 {
		t.Error("duplicate priority accepted")
	}
	if !strings.Contains(stderr, "already exists") {
		t.Errorf("stderr = %q", stderr)
	}

	env.mustRun(t, "category", "add", "Garden", "-u", "alice")
	out = env.mustRun(t, "category", "list", "-u", "alice")
	if !strings.Contains(out, "Garden") {
		t.Errorf("category list = %q", out)
	}
}

func TestStatsAndDue(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "register", "alice", "--password", "Secret#123")
	env.mustRun(t, "add", "Overdue thing", "-u", "alice", "--due", "2020-01-01", "-c", "Work")
	env.mustRun(t, "add", "Far future", "-u", "alice", "--due", "2999-01-01")

	out := env.mustRun(t, "stats", "-u", "alice")
	if !strings.Contains(out, "By status:") || !strings.Contains(out, "Work") {
		t.Errorf("stats output = %q", out)
	}

	out = env.mustRun(t, "due")
	if !strings.Contains(out, "Overdue thing") {
		t.Errorf("due output = %q", out)
	}
	if strings.Contains(out, "Far future") {
		t.Errorf("due lists future task: %q", out)
	}
}

func TestUnknownUserFails(t *testing.T) {
	env := newCLIEnv(t)

	_, stderr, code := env.run(t, "list", "-u", "nobody")
	if code == 0 {
		t.Fatal("unknown user accepted")
	}
	if !strings.Contains(stderr, "unknown user") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestAdminSeededOnFirstRun(t *testing.T) {
	env := newCLIEnv(t)

	// Any command that opens the store seeds the admin account.
	out := env.mustRun(t, "login", "admin", "--password", "Admin@123")
	if !strings.Contains(out, "Welcome back, admin") {
		t.Errorf("admin login output = %q", out)
	}
}
