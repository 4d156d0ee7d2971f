package notification

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskpad/internal/utils"
	"taskpad/store"
)

// PreferenceReader is the slice of the preference store the scheduler needs.
type PreferenceReader interface {
	GetPreferences(ctx context.Context, userID int64) (map[string]string, error)
}

// UserReader resolves the user row email notifications go to.
type UserReader interface {
	GetUserData(ctx context.Context, userID int64) (*store.User, error)
}

// Frequency tags accepted by the scheduler.
const (
	FreqImmediate = "immediate"
	FreqHourly    = "hourly"
	FreqDaily     = "daily"
	FreqWeekly    = "weekly"
	FreqBiweekly  = "biweekly"
	FreqMonthly   = "monthly"
	FreqYearly    = "yearly"

	// customPrefix starts tags like "custom_6" meaning every 6 hours.
	customPrefix = "custom_"
)

// Scheduler dedupes notifications by id. It remembers when each id was
// last sent and only lets a new send through once the id's frequency
// window has passed. Sends are also gated on the owning user's
// enable_notifications preference, read fresh on every attempt.
type Scheduler struct {
	manager *Manager
	prefs   PreferenceReader
	users   UserReader
	mailer  Mailer
	now     func() time.Time
	log     *utils.Logger

	mu       sync.Mutex
	lastSent map[string]time.Time
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerClock overrides the time source for testing.
func WithSchedulerClock(now func() time.Time) SchedulerOption {
	return func(s *Scheduler) { s.now = now }
}

// WithMailer sets the email sender for secondary email notifications.
func WithMailer(m Mailer) SchedulerOption {
	return func(s *Scheduler) { s.mailer = m }
}

// NewScheduler creates a Scheduler delivering through manager.
func NewScheduler(manager *Manager, prefs PreferenceReader, users UserReader, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		manager:  manager,
		prefs:    prefs,
		users:    users,
		now:      time.Now,
		log:      utils.GetLogger(),
		lastSent: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send attempts to deliver one notification for the user. It returns true
// only when the notification was actually dispatched; gated, deduped, and
// failed sends all return false and leave the dedup state untouched.
func (s *Scheduler) Send(ctx context.Context, userID int64, id, title, message, frequency string) bool {
	if title == "" || message == "" {
		return false
	}
	if id == "" {
		id = uuid.New().String()
	}

	if !s.notificationsEnabled(ctx, userID) {
		return false
	}

	now := s.now()

	s.mu.Lock()
	last, sentBefore := s.lastSent[id]
	s.mu.Unlock()

	if sentBefore && !shouldSend(frequency, last, now) {
		return false
	}

	err := s.manager.Send(Notification{
		ID:        id,
		Title:     title,
		Message:   message,
		Timestamp: now,
	})
	if err != nil {
		s.log.Error("notification %s failed: %v", id, err)
		return false
	}

	s.sendEmail(ctx, userID, title, message)

	s.mu.Lock()
	s.lastSent[id] = now
	s.mu.Unlock()
	return true
}

// notificationsEnabled reads the user's enable_notifications preference.
// Missing preferences default to enabled.
func (s *Scheduler) notificationsEnabled(ctx context.Context, userID int64) bool {
	prefs, err := s.prefs.GetPreferences(ctx, userID)
	if err != nil {
		s.log.Debug("loading preferences for user %d: %v", userID, err)
		return true
	}
	return prefs["enable_notifications"] != "False"
}

// sendEmail delivers the secondary email copy when a mailer is configured,
// the user has an address on file, and email_notification is not disabled.
// Email failures are logged, never surfaced; the desktop send already
// succeeded.
func (s *Scheduler) sendEmail(ctx context.Context, userID int64, title, message string) {
	if s.mailer == nil {
		return
	}

	prefs, err := s.prefs.GetPreferences(ctx, userID)
	if err != nil || prefs["email_notification"] == "False" {
		return
	}

	user, err := s.users.GetUserData(ctx, userID)
	if err != nil || user.Email == "" {
		return
	}

	if err := s.mailer.SendMail(user.Email, title, message); err != nil {
		s.log.Error("email notification to %s failed: %v", user.Email, err)
	}
}

// shouldSend applies the frequency window to a previously sent id.
// Unknown tags always send.
func shouldSend(frequency string, last, now time.Time) bool {
	switch frequency {
	case FreqImmediate:
		return true
	case FreqHourly:
		return now.Sub(last) >= time.Hour
	case FreqDaily:
		ly, lm, ld := last.Date()
		ny, nm, nd := now.Date()
		return ly != ny || lm != nm || ld != nd
	case FreqWeekly:
		ly, lw := last.ISOWeek()
		ny, nw := now.ISOWeek()
		return ly != ny || lw != nw
	case FreqBiweekly:
		return now.Sub(last) >= 14*24*time.Hour
	case FreqMonthly:
		return last.Month() != now.Month() || last.Year() != now.Year()
	case FreqYearly:
		return last.Year() != now.Year()
	}

	if hours, ok := customHours(frequency); ok {
		return now.Sub(last) >= time.Duration(hours)*time.Hour
	}
	return true
}

// customHours parses a "custom_<N>" tag into N hours.
func customHours(frequency string) (int, bool) {
	if !strings.HasPrefix(frequency, customPrefix) {
		return 0, false
	}
	hours, err := strconv.Atoi(strings.TrimPrefix(frequency, customPrefix))
	if err != nil || hours <= 0 {
		return 0, false
	}
	return hours, true
}
