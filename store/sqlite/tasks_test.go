package sqlite

import (
	"testing"
	"time"

	"taskpad/internal/utils"
	"taskpad/store"
)

func TestAddTaskRejectsBlankName(t *testing.T) {
	s, ctx := mustNewStore(t)
	userID := mustCreateUser(t, s, ctx, "alice")

	if _, err := s.AddTask(ctx, userID, "   ", "", "", ""); !utils.IsValidation(err) {
		t.Errorf("blank name: got %v, want validation error", err)
	}
}

func TestUpdateTask(t *testing.T) {
	s, ctx := mustNewStore(t)
	userID := mustCreateUser(t, s, ctx, "alice")
	taskID := mustAddTask(t, s, ctx, userID, "Old name", "", "", "")

	if err := s.UpdateTask(ctx, taskID, "New name", "2026-09-15", "Low", "Home"); err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}

	task, err := s.GetTaskDetails(ctx, taskID)
	if err != nil {
		t.Fatalf("GetTaskDetails error: %v", err)
	}
	if task.Name != "New name" || task.DueDate != "2026-09-15" || task.Priority != "Low" || task.Category != "Home" {
		t.Errorf("update not persisted: %+v", task)
	}

	if err := s.UpdateTask(ctx, 9999, "Name", "", "", ""); err == nil {
		t.Error("UpdateTask succeeded for missing task")
	}
}

// TestBulkRemoveExcludesFromActiveViews verifies that soft-deleted tasks
// drop out of active listings and counts while the rows survive.
func TestBulkRemoveExcludesFromActiveViews(t *testing.T) {
	s, ctx := mustNewStore(t)
	userID := mustCreateUser(t, s, ctx, "alice")

	ids := []int64{
		mustAddTask(t, s, ctx, userID, "one", "", "", ""),
		mustAddTask(t, s, ctx, userID, "two", "", "", ""),
		mustAddTask(t, s, ctx, userID, "three", "", "", ""),
	}

	summary, err := s.RemoveTasks(ctx, ids[:2])
	if err != nil {
		t.Fatalf("RemoveTasks error: %v", err)
	}
	if summary != "Removed 2 task(s)" {
		t.Errorf("summary = %q, want %q", summary, "Removed 2 task(s)")
	}

	n, err := s.CountTasks(ctx, userID)
	if err != nil {
		t.Fatalf("CountTasks error: %v", err)
	}
	if n != 1 {
		t.Errorf("CountTasks = %d, want 1", n)
	}

	active, err := s.ListTasks(ctx, userID, store.StatusPtr(store.StatusActive))
	if err != nil {
		t.Fatalf("ListTasks error: %v", err)
	}
	if len(active) != 1 || active[0].Name != "three" {
		t.Errorf("active tasks = %v, want only %q", active, "three")
	}

	// Rows survive soft deletion.
	all, err := s.ListTasks(ctx, userID, nil)
	if err != nil {
		t.Fatalf("ListTasks error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
}

func TestRemoveTasksIdempotent(t *testing.T) {
	s, ctx := mustNewStore(t)
	userID := mustCreateUser(t, s, ctx, "alice")
	taskID := mustAddTask(t, s, ctx, userID, "one", "", "", "")

	if _, err := s.RemoveTasks(ctx, []int64{taskID}); err != nil {
		t.Fatalf("first RemoveTasks error: %v", err)
	}
	summary, err := s.RemoveTasks(ctx, []int64{taskID})
	if err != nil {
		t.Fatalf("second RemoveTasks error: %v", err)
	}
	if summary != "Removed 0 task(s)" {
		t.Errorf("summary = %q, want %q", summary, "Removed 0 task(s)")
	}
}

func TestRemoveTasksEmptySelection(t *testing.T) {
	s, ctx := mustNewStore(t)

	if _, err := s.RemoveTasks(ctx, nil); !utils.IsValidation(err) {
		t.Errorf("empty selection: got %v, want validation error", err)
	}
}

// TestCompletionForwardOnly verifies the transition table: active tasks
// complete, completed tasks stay completed, soft-deleted tasks refuse.
func TestCompletionForwardOnly(t *testing.T) {
	s, ctx := mustNewStore(t)
	userID := mustCreateUser(t, s, ctx, "alice")
	taskID := mustAddTask(t, s, ctx, userID, "one", "", "", "")

	if err := s.SetTaskComplete(ctx, taskID); err != nil {
		t.Fatalf("SetTaskComplete error: %v", err)
	}
	task, err := s.GetTaskDetails(ctx, taskID)
	if err != nil {
		t.Fatalf("GetTaskDetails error: %v", err)
	}
	if task.Status != store.StatusCompleted {
		t.Fatalf("task.Status = %v, want completed", task.Status)
	}

	// Completing again is a no-op.
	if err := s.SetTaskComplete(ctx, taskID); err != nil {
		t.Errorf("second SetTaskComplete error: %v", err)
	}

	// A soft-deleted task cannot be completed.
	if _, err := s.RemoveTasks(ctx, []int64{taskID}); err != nil {
		t.Fatalf("RemoveTasks error: %v", err)
	}
	if err := s.SetTaskComplete(ctx, taskID); !utils.IsValidation(err) {
		t.Errorf("completing deleted task: got %v, want validation error", err)
	}
}

func TestGetDueTasks(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s, ctx := mustNewStore(t, WithClock(func() time.Time { return now }))
	userID := mustCreateUser(t, s, ctx, "alice")

	mustAddTask(t, s, ctx, userID, "due today", "2026-08-30", "", "")
	mustAddTask(t, s, ctx, userID, "overdue", "2026-08-01", "", "")
	mustAddTask(t, s, ctx, userID, "future", "2026-12-31", "", "")
	mustAddTask(t, s, ctx, userID, "undated", "", "", "")

	removedID := mustAddTask(t, s, ctx, userID, "deleted due", "2026-08-30", "", "")
	if _, err := s.RemoveTasks(ctx, []int64{removedID}); err != nil {
		t.Fatalf("RemoveTasks error: %v", err)
	}

	names, err := s.GetDueTasks(ctx)
	if err != nil {
		t.Fatalf("GetDueTasks error: %v", err)
	}
	want := []string{"overdue", "due today"}
	if len(names) != len(want) {
		t.Fatalf("GetDueTasks = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("GetDueTasks[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestGetTaskAnalytics(t *testing.T) {
	s, ctx := mustNewStore(t)
	userID := mustCreateUser(t, s, ctx, "alice")

	mustAddTask(t, s, ctx, userID, "a", "2026-09-01", "", "Work")
	mustAddTask(t, s, ctx, userID, "b", "2026-09-01", "", "Work")
	mustAddTask(t, s, ctx, userID, "c", "2026-09-02", "", "Home")
	doneID := mustAddTask(t, s, ctx, userID, "d", "", "", "")
	if err := s.SetTaskComplete(ctx, doneID); err != nil {
		t.Fatalf("SetTaskComplete error: %v", err)
	}

	a, err := s.GetTaskAnalytics(ctx, userID)
	if err != nil {
		t.Fatalf("GetTaskAnalytics error: %v", err)
	}

	statusCounts := map[store.Status]int{}
	for _, c := range a.Status {
		statusCounts[c.Status] = c.Count
	}
	if statusCounts[store.StatusActive] != 3 || statusCounts[store.StatusCompleted] != 1 {
		t.Errorf("status counts = %v, want 3 active and 1 completed", statusCounts)
	}

	categoryCounts := map[string]int{}
	for _, c := range a.Category {
		categoryCounts[c.Category] = c.Count
	}
	if categoryCounts["Work"] != 2 || categoryCounts["Home"] != 1 {
		t.Errorf("category counts = %v", categoryCounts)
	}

	dueCounts := map[string]int{}
	for _, c := range a.DueDate {
		dueCounts[c.DueDate] = c.Count
	}
	if dueCounts["2026-09-01"] != 2 || dueCounts["2026-09-02"] != 1 {
		t.Errorf("due date counts = %v", dueCounts)
	}
}
