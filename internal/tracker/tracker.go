// Package tracker runs the background loop that polls for due tasks and
// turns them into deduped notifications.
package tracker

import (
	"context"
	"time"

	"taskpad/internal/notification"
	"taskpad/internal/utils"
)

// DueTaskSource is the slice of the task store the tracker polls.
type DueTaskSource interface {
	GetDueTasks(ctx context.Context) ([]string, error)
}

// Tracker polls the store on a fixed interval and pushes each due task
// through the notification scheduler with an hourly frequency, so repeated
// polls within the hour stay quiet.
type Tracker struct {
	tasks     DueTaskSource
	scheduler *notification.Scheduler
	userID    int64
	interval  time.Duration
	log       *utils.BackgroundLogger

	// Events receives the due task names found on each wake, for a UI
	// layer that wants to react beyond notifications. Sends never block;
	// a slow consumer just misses events.
	Events chan []string
}

// New creates a tracker polling on behalf of one user.
func New(tasks DueTaskSource, scheduler *notification.Scheduler, userID int64, interval time.Duration, log *utils.BackgroundLogger) *Tracker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Tracker{
		tasks:     tasks,
		scheduler: scheduler,
		userID:    userID,
		interval:  interval,
		log:       log,
		Events:    make(chan []string, 1),
	}
}

// Run polls until ctx is canceled. The first check happens immediately so
// startup does not wait a full interval.
func (t *Tracker) Run(ctx context.Context) error {
	t.log.Printf("tracker started (user %d, interval %v)", t.userID, t.interval)

	t.check(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.log.Printf("tracker stopped: %v", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			t.check(ctx)
		}
	}
}

// check runs one poll cycle.
func (t *Tracker) check(ctx context.Context) {
	names, err := t.tasks.GetDueTasks(ctx)
	if err != nil {
		t.log.Printf("due task query failed: %v", err)
		return
	}
	if len(names) == 0 {
		return
	}

	select {
	case t.Events <- names:
	default:
	}

	for _, name := range names {
		sent := t.scheduler.Send(ctx, t.userID,
			"task_due_"+name, "Task Due", "Task due: "+name, notification.FreqHourly)
		if sent {
			t.log.Printf("notified due task %q", name)
		}
	}
}
