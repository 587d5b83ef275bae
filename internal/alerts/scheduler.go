// Package alerts arms one-shot notifications for today's plan items.
//
// Scheduling is total: every Schedule call cancels whatever was armed before
// and re-arms from the given plan and instant, so callers simply invoke it
// after any change.
package alerts

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/alexanderramin/harbor/internal/domain"
)

// Permission mirrors the notification permission states of the display.
type Permission string

const (
	PermissionDefault     Permission = "default"
	PermissionGranted     Permission = "granted"
	PermissionDenied      Permission = "denied"
	PermissionUnsupported Permission = "unsupported"
)

// Notifier displays alerts and owns the permission to do so.
type Notifier interface {
	Permission(ctx context.Context) (Permission, error)
	// RequestPermission asks once; the answer is remembered by the notifier.
	RequestPermission(ctx context.Context) (Permission, error)
	Show(title, body string) error
}

// Timer is a cancelable deferred call.
type Timer interface {
	Stop() bool
}

// TimerFactory arms deferred calls.
type TimerFactory interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealTimers arms time.AfterFunc timers.
type RealTimers struct{}

func (RealTimers) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Fire is one alert planned for today.
type Fire struct {
	Entry domain.Entry
	At    time.Time
	Delay time.Duration
	Title string
	Body  string
}

// PlanFires lists the alerts due later today for p, in firing order. Items
// whose time has passed, or whose time does not parse, are skipped.
func PlanFires(p *domain.PlanState, now time.Time) []Fire {
	today := domain.TodayIndex(now)
	var fires []Fire
	for _, e := range p.EntriesOn(today) {
		h, m, err := domain.ParseClock(e.Time)
		if err != nil {
			continue
		}
		at := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
		delay := at.Sub(now)
		if delay <= 0 {
			continue
		}
		fires = append(fires, Fire{
			Entry: e,
			At:    at,
			Delay: delay,
			Title: e.Label() + ": " + e.Title,
			Body:  e.Body(),
		})
	}
	slices.SortStableFunc(fires, func(a, b Fire) int { return a.At.Compare(b.At) })
	return fires
}

// Result describes what a Schedule call did.
type Result struct {
	Armed []Fire
	// Disabled is set when Schedule cleared the plan's AlertsEnabled flag;
	// the caller must persist the plan.
	Disabled bool
	// Permission is the notifier's permission at schedule time. It is empty
	// when alerts were already off.
	Permission Permission
}

// Scheduler holds the armed timers for today.
type Scheduler struct {
	timers   TimerFactory
	notifier Notifier
	logger   *slog.Logger

	mu      sync.Mutex
	gen     uint64
	pending []Timer
	armed   []Fire
}

// NewScheduler creates a Scheduler. A nil logger discards.
func NewScheduler(timers TimerFactory, notifier Notifier, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scheduler{timers: timers, notifier: notifier, logger: logger}
}

// CancelAll stops every armed alert. Calling it with nothing armed is a
// no-op.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

func (s *Scheduler) cancelLocked() {
	// Bumping the generation also silences a timer whose callback has
	// already started.
	s.gen++
	for _, t := range s.pending {
		t.Stop()
	}
	if len(s.pending) > 0 {
		s.logger.Debug("alerts_cancelled", "count", len(s.pending))
	}
	s.pending = nil
	s.armed = nil
}

// Schedule cancels all armed alerts and, when p has alerts enabled and the
// notifier holds permission, arms one alert per item due later today.
// A default or denied permission clears p.AlertsEnabled and reports
// Disabled. An unsupported display arms nothing and keeps the flag.
func (s *Scheduler) Schedule(ctx context.Context, p *domain.PlanState, now time.Time) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()

	if !p.AlertsEnabled {
		return Result{}
	}

	perm, err := s.notifier.Permission(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "alerts_permission_lookup_failed", "error", err.Error())
		perm = PermissionUnsupported
	}
	if perm == PermissionUnsupported {
		// Only this process lacks a display. The stored flag is shared
		// with other processes, so it is left alone.
		s.logger.DebugContext(ctx, "alerts_not_armed", "permission", string(perm))
		return Result{Permission: perm}
	}
	if perm != PermissionGranted {
		p.AlertsEnabled = false
		s.logger.InfoContext(ctx, "alerts_disabled", "permission", string(perm))
		return Result{Disabled: true, Permission: perm}
	}

	fires := PlanFires(p, now)
	gen := s.gen
	for _, f := range fires {
		s.pending = append(s.pending, s.timers.AfterFunc(f.Delay, s.fireFunc(gen, f)))
	}
	s.armed = fires
	s.logger.DebugContext(ctx, "alerts_armed", "count", len(fires), "day", domain.DayName(domain.TodayIndex(now)))
	return Result{Armed: slices.Clone(fires), Permission: perm}
}

func (s *Scheduler) fireFunc(gen uint64, f Fire) func() {
	return func() {
		s.mu.Lock()
		stale := gen != s.gen
		s.mu.Unlock()
		if stale {
			return
		}
		if err := s.notifier.Show(f.Title, f.Body); err != nil {
			s.logger.Warn("alert_show_failed", "title", f.Title, "error", err.Error())
		}
	}
}

// Armed returns the alerts currently armed.
func (s *Scheduler) Armed() []Fire {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.armed)
}
