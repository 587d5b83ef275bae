package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/harbor/internal/alerts"
)

// FakeTimers records armed timers instead of waiting on the wall clock.
// Tests fire them explicitly.
type FakeTimers struct {
	mu     sync.Mutex
	timers []*FakeTimer
}

// FakeTimer is one recorded AfterFunc call.
type FakeTimer struct {
	Delay   time.Duration
	fn      func()
	stopped bool
	mu      *sync.Mutex
}

func (t *FakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

// Stopped reports whether Stop was called.
func (t *FakeTimer) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// Fire runs the callback as the runtime would, even if the timer was
// stopped, to exercise late-firing races.
func (t *FakeTimer) Fire() { t.fn() }

func (f *FakeTimers) AfterFunc(d time.Duration, fn func()) alerts.Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &FakeTimer{Delay: d, fn: fn, mu: &f.mu}
	f.timers = append(f.timers, t)
	return t
}

// All returns every timer ever armed, in arming order.
func (f *FakeTimers) All() []*FakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*FakeTimer(nil), f.timers...)
}

// Active returns the timers not yet stopped.
func (f *FakeTimers) Active() []*FakeTimer {
	var out []*FakeTimer
	for _, t := range f.All() {
		if !t.Stopped() {
			out = append(out, t)
		}
	}
	return out
}

// Shown is one displayed notification.
type Shown struct {
	Title string
	Body  string
}

// FakeNotifier grants or denies according to Answer and records every
// notification shown.
type FakeNotifier struct {
	mu       sync.Mutex
	Current  alerts.Permission
	Answer   alerts.Permission
	Requests int
	shown    []Shown
}

// NewFakeNotifier starts in the default (never asked) state.
func NewFakeNotifier(answer alerts.Permission) *FakeNotifier {
	return &FakeNotifier{Current: alerts.PermissionDefault, Answer: answer}
}

func (n *FakeNotifier) Permission(context.Context) (alerts.Permission, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.Current, nil
}

func (n *FakeNotifier) RequestPermission(context.Context) (alerts.Permission, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Requests++
	n.Current = n.Answer
	return n.Current, nil
}

func (n *FakeNotifier) Show(title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shown = append(n.shown, Shown{Title: title, Body: body})
	return nil
}

// Shown returns the notifications displayed so far.
func (n *FakeNotifier) Shown() []Shown {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Shown(nil), n.shown...)
}
