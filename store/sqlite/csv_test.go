package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskpad/store"
)

// TestCSVRoundTrip exports a user's tasks and imports them into a second
// user, expecting identical fields with fresh IDs.
func TestCSVRoundTrip(t *testing.T) {
	s, ctx := mustNewStore(t)
	alice := mustCreateUser(t, s, ctx, "alice")
	bob := mustCreateUser(t, s, ctx, "bobby")

	mustAddTask(t, s, ctx, alice, "Write report", "2026-09-01", "High", "Work")
	mustAddTask(t, s, ctx, alice, "Name, with comma", "", "", "")
	mustAddTask(t, s, ctx, alice, `Quoted "name"`, "2026-09-02", "Low", "Home")

	path := filepath.Join(t.TempDir(), "tasks.csv")
	summary, err := s.ExportTasks(ctx, path, alice)
	if err != nil {
		t.Fatalf("ExportTasks error: %v", err)
	}
	if !strings.HasPrefix(summary, "Exported 3 task(s)") {
		t.Errorf("summary = %q, want 3 exported", summary)
	}

	summary, err = s.ImportTasks(ctx, path, bob)
	if err != nil {
		t.Fatalf("ImportTasks error: %v", err)
	}
	if summary != "Imported 3 task(s), skipped 0 row(s)" {
		t.Errorf("summary = %q", summary)
	}

	original, err := s.ListTasks(ctx, alice, nil)
	if err != nil {
		t.Fatalf("ListTasks error: %v", err)
	}
	imported, err := s.ListTasks(ctx, bob, nil)
	if err != nil {
		t.Fatalf("ListTasks error: %v", err)
	}
	if len(imported) != len(original) {
		t.Fatalf("len(imported) = %d, want %d", len(imported), len(original))
	}
	for i := range original {
		o, m := original[i], imported[i]
		if m.Name != o.Name || m.DueDate != o.DueDate || m.Priority != o.Priority || m.Category != o.Category || m.CreatedAt != o.CreatedAt {
			t.Errorf("imported[%d] = %+v, want fields of %+v", i, m, o)
		}
		if m.ID == o.ID {
			t.Errorf("imported[%d] reused ID %d", i, m.ID)
		}
		if m.UserID != bob {
			t.Errorf("imported[%d].UserID = %d, want %d", i, m.UserID, bob)
		}
	}
}

func TestExportSkipsDeletedTasks(t *testing.T) {
	s, ctx := mustNewStore(t)
	userID := mustCreateUser(t, s, ctx, "alice")

	mustAddTask(t, s, ctx, userID, "keep", "", "", "")
	gone := mustAddTask(t, s, ctx, userID, "gone", "", "", "")
	if _, err := s.RemoveTasks(ctx, []int64{gone}); err != nil {
		t.Fatalf("RemoveTasks error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "tasks.csv")
	summary, err := s.ExportTasks(ctx, path, userID)
	if err != nil {
		t.Fatalf("ExportTasks error: %v", err)
	}
	if !strings.HasPrefix(summary, "Exported 1 task(s)") {
		t.Errorf("summary = %q, want 1 exported", summary)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if strings.Contains(string(data), "gone") {
		t.Error("export contains soft-deleted task")
	}
}

// TestImportSkipsBadRows verifies that one malformed row does not abort
// the rows after it.
func TestImportSkipsBadRows(t *testing.T) {
	s, ctx := mustNewStore(t)
	userID := mustCreateUser(t, s, ctx, "alice")

	path := filepath.Join(t.TempDir(), "tasks.csv")
	content := "Name,Due Date,Priority,Category,Created At\n" +
		"good one,2026-09-01,High,Work,2026-08-01 10:00:00\n" +
		"   ,2026-09-01,,,\n" + // blank name
		"good two,,,,\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	summary, err := s.ImportTasks(ctx, path, userID)
	if err != nil {
		t.Fatalf("ImportTasks error: %v", err)
	}
	if summary != "Imported 2 task(s), skipped 1 row(s)" {
		t.Errorf("summary = %q", summary)
	}

	tasks, err := s.ListTasks(ctx, userID, store.StatusPtr(store.StatusActive))
	if err != nil {
		t.Fatalf("ListTasks error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(tasks))
	}
	if tasks[0].CreatedAt != "2026-08-01 10:00:00" {
		t.Errorf("imported CreatedAt = %q, want preserved value", tasks[0].CreatedAt)
	}
	if tasks[1].CreatedAt == "" {
		t.Error("row without CreatedAt should get a fresh timestamp")
	}
}

func TestImportRejectsWrongHeader(t *testing.T) {
	s, ctx := mustNewStore(t)
	userID := mustCreateUser(t, s, ctx, "alice")

	path := filepath.Join(t.TempDir(), "tasks.csv")
	if err := os.WriteFile(path, []byte("foo,bar\n1,2\n"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := s.ImportTasks(ctx, path, userID); err == nil {
		t.Error("ImportTasks accepted a wrong header")
	}
}

func TestImportMissingFile(t *testing.T) {
	s, ctx := mustNewStore(t)
	userID := mustCreateUser(t, s, ctx, "alice")

	if _, err := s.ImportTasks(ctx, filepath.Join(t.TempDir(), "absent.csv"), userID); err == nil {
		t.Error("ImportTasks succeeded for a missing file")
	}
}
