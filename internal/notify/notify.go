// Package notify is the local notification display used by the alert
// scheduler, together with the persisted permission to show alerts.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/alexanderramin/harbor/internal/alerts"
	"github.com/alexanderramin/harbor/internal/repository"
	"github.com/charmbracelet/lipgloss"
)

// PermissionStore keeps the user's answer under repository.PermissionKey.
type PermissionStore struct {
	docs repository.DocumentRepo
}

func NewPermissionStore(docs repository.DocumentRepo) *PermissionStore {
	return &PermissionStore{docs: docs}
}

// Get returns the stored permission, PermissionDefault when never asked.
func (s *PermissionStore) Get(ctx context.Context) (alerts.Permission, error) {
	raw, ok, err := s.docs.Get(ctx, repository.PermissionKey)
	if err != nil {
		return "", err
	}
	switch p := alerts.Permission(raw); {
	case !ok:
		return alerts.PermissionDefault, nil
	case p == alerts.PermissionGranted || p == alerts.PermissionDenied:
		return p, nil
	default:
		return alerts.PermissionDefault, nil
	}
}

func (s *PermissionStore) Set(ctx context.Context, p alerts.Permission) error {
	if p != alerts.PermissionGranted && p != alerts.PermissionDenied {
		return fmt.Errorf("storing permission %q: only granted or denied are remembered", p)
	}
	return s.docs.Set(ctx, repository.PermissionKey, string(p))
}

// Clear forgets the answer so the next request asks again.
func (s *PermissionStore) Clear(ctx context.Context) error {
	return s.docs.Delete(ctx, repository.PermissionKey)
}

// Display puts a notification in front of the user.
type Display interface {
	Show(title, body string) error
}

// Prompter asks the user whether alerts may be shown.
type Prompter func(ctx context.Context) (bool, error)

type answerKey struct{}

// WithAnswer pre-answers the permission question for requests made with
// the returned context, so no prompt is shown.
func WithAnswer(ctx context.Context, ok bool) context.Context {
	return context.WithValue(ctx, answerKey{}, ok)
}

// Notifier implements alerts.Notifier over a PermissionStore and a Display.
type Notifier struct {
	perms     *PermissionStore
	display   Display
	supported bool
	prompt    Prompter
}

// New creates a Notifier. When supported is false every permission check
// reports PermissionUnsupported and nothing is ever asked or stored.
func New(perms *PermissionStore, display Display, supported bool, prompt Prompter) *Notifier {
	return &Notifier{perms: perms, display: display, supported: supported, prompt: prompt}
}

var _ alerts.Notifier = (*Notifier)(nil)

func (n *Notifier) Permission(ctx context.Context) (alerts.Permission, error) {
	if !n.supported {
		return alerts.PermissionUnsupported, nil
	}
	return n.perms.Get(ctx)
}

// RequestPermission prompts only while the answer is still default; a
// remembered grant or denial is returned as is.
func (n *Notifier) RequestPermission(ctx context.Context) (alerts.Permission, error) {
	current, err := n.Permission(ctx)
	if err != nil {
		return "", err
	}
	if current != alerts.PermissionDefault {
		return current, nil
	}
	ok, preset := ctx.Value(answerKey{}).(bool)
	if !preset {
		if n.prompt == nil {
			return alerts.PermissionDefault, nil
		}
		if ok, err = n.prompt(ctx); err != nil {
			return "", fmt.Errorf("asking for alert permission: %w", err)
		}
	}
	answer := alerts.PermissionDenied
	if ok {
		answer = alerts.PermissionGranted
	}
	if err := n.perms.Set(ctx, answer); err != nil {
		return "", err
	}
	return answer, nil
}

func (n *Notifier) Show(title, body string) error {
	return n.display.Show(title, body)
}

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
	bodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
)

// WriterDisplay rings the terminal bell and prints the alert to W.
type WriterDisplay struct {
	W io.Writer
}

func (d WriterDisplay) Show(title, body string) error {
	line := "\a" + titleStyle.Render("⏰ "+title)
	if body != "" {
		line += "  " + bodyStyle.Render(body)
	}
	_, err := fmt.Fprintln(d.W, line)
	return err
}

// SwitchDisplay forwards to a target that can be replaced while timers
// are armed, e.g. by the watch screen.
type SwitchDisplay struct {
	mu     sync.Mutex
	target Display
}

func NewSwitchDisplay(d Display) *SwitchDisplay {
	return &SwitchDisplay{target: d}
}

func (s *SwitchDisplay) Show(title, body string) error {
	s.mu.Lock()
	d := s.target
	s.mu.Unlock()
	return d.Show(title, body)
}

// Swap installs d and returns a func that restores the previous target.
func (s *SwitchDisplay) Swap(d Display) (restore func()) {
	s.mu.Lock()
	prev := s.target
	s.target = d
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.target = prev
		s.mu.Unlock()
	}
}
