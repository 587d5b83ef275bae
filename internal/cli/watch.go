package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/harbor/internal/cli/formatter"
	"github.com/alexanderramin/harbor/internal/derive"
	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/alexanderramin/harbor/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const (
	defaultWatchPoll = 30 * time.Second
	maxFiredShown    = 5
)

// ── messages ────────────────────────────────────────────────────────────────

type planLoadedMsg struct {
	plan  *domain.PlanState
	raw   []byte
	today int
	force bool
	err   error
}

type alertStatusMsg struct {
	status service.AlertStatus
	err    error
}

type pollTickMsg time.Time

// alertFiredMsg is delivered by teaDisplay when an armed alert fires.
type alertFiredMsg struct {
	Title string
	Body  string
	At    time.Time
}

// teaDisplay forwards fired alerts into a running program.
type teaDisplay struct {
	send func(tea.Msg)
}

func (d teaDisplay) Show(title, body string) error {
	d.send(alertFiredMsg{Title: title, Body: body, At: time.Now()})
	return nil
}

// ── keys ────────────────────────────────────────────────────────────────────

type watchKeyMap struct {
	Quit    key.Binding
	Refresh key.Binding
	Up      key.Binding
	Down    key.Binding
	Done    key.Binding
}

func defaultWatchKeys() watchKeyMap {
	return watchKeyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "select")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "select")),
		Done:    key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "done")),
	}
}

func (k watchKeyMap) helpLine() string {
	parts := make([]string, 0, 4)
	for _, b := range []key.Binding{k.Quit, k.Refresh, k.Up, k.Done} {
		h := b.Help()
		parts = append(parts, formatter.Bold(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, "  ")
}

// ── model ───────────────────────────────────────────────────────────────────

// watchModel keeps today's plan on screen and the alert scheduler armed.
// It reloads the plan every poll interval and re-arms alerts when the
// stored plan changed or the day rolled over. Items marked done are only
// dimmed on screen and never saved.
type watchModel struct {
	app  *App
	ctx  context.Context
	keys watchKeyMap
	vp   viewport.Model
	poll time.Duration

	plan   *domain.PlanState
	raw    []byte
	today  int
	status service.AlertStatus
	fired  []alertFiredMsg
	err    error

	cursor int
	done   map[string]bool

	width, height int
	ready         bool
}

func newWatchModel(ctx context.Context, app *App) watchModel {
	poll := app.WatchPoll
	if poll <= 0 {
		poll = defaultWatchPoll
	}
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}
	return watchModel{
		app:   app,
		ctx:   ctx,
		keys:  defaultWatchKeys(),
		vp:    vp,
		poll:  poll,
		today: -1,
		done:  map[string]bool{},
	}
}

func (m watchModel) loadCmd(force bool) tea.Cmd {
	return func() tea.Msg {
		p, err := m.app.Plans.Load(m.ctx)
		if err != nil {
			return planLoadedMsg{err: err}
		}
		raw, err := domain.EncodePlan(p)
		return planLoadedMsg{plan: p, raw: raw, today: m.app.Plans.Today(), force: force, err: err}
	}
}

func (m watchModel) rescheduleCmd() tea.Cmd {
	if m.app.Alerts == nil {
		return nil
	}
	return func() tea.Msg {
		st, err := m.app.Alerts.Refresh(m.ctx)
		return alertStatusMsg{status: st, err: err}
	}
}

func (m watchModel) tickCmd() tea.Cmd {
	return tea.Tick(m.poll, func(t time.Time) tea.Msg { return pollTickMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(true), m.tickCmd())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-4, 1)
		m.ready = true
		m.vp.SetContent(m.body())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadCmd(true)
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(m.cursor-1, 0)
			m.vp.SetContent(m.body())
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.cursor = min(m.cursor+1, max(len(m.entries())-1, 0))
			m.vp.SetContent(m.body())
			return m, nil
		case key.Matches(msg, m.keys.Done):
			m.toggleDone()
			m.vp.SetContent(m.body())
			return m, nil
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd

	case pollTickMsg:
		return m, tea.Batch(m.loadCmd(false), m.tickCmd())

	case planLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		changed := msg.force || msg.today != m.today || !bytes.Equal(msg.raw, m.raw)
		if msg.today != m.today {
			m.done = map[string]bool{}
		}
		m.err = nil
		m.plan, m.raw, m.today = msg.plan, msg.raw, msg.today
		m.cursor = min(m.cursor, max(len(m.entries())-1, 0))
		m.vp.SetContent(m.body())
		if changed {
			return m, m.rescheduleCmd()
		}
		return m, nil

	case alertStatusMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = msg.status
		m.vp.SetContent(m.body())
		return m, nil

	case alertFiredMsg:
		m.fired = append(m.fired, msg)
		if len(m.fired) > maxFiredShown {
			m.fired = m.fired[len(m.fired)-maxFiredShown:]
		}
		m.vp.SetContent(m.body())
		return m, nil
	}
	return m, nil
}

func (m watchModel) entries() []domain.Entry {
	if m.plan == nil {
		return nil
	}
	return derive.TodayEntries(m.plan, m.today)
}

// toggleDone flips the selected entry. The done map is shared between
// model copies, which is fine for a single program.
func (m watchModel) toggleDone() {
	entries := m.entries()
	if m.cursor >= len(entries) {
		return
	}
	k := formatter.DoneKey(entries[m.cursor])
	if m.done[k] {
		delete(m.done, k)
	} else {
		m.done[k] = true
	}
}

// body is the scrollable part: fired alerts, then today's plan.
func (m watchModel) body() string {
	if m.plan == nil {
		return formatter.Dim("Loading plan...")
	}
	var b strings.Builder
	if len(m.fired) > 0 {
		b.WriteString(formatter.Header("Alerts") + "\n")
		for i := len(m.fired) - 1; i >= 0; i-- {
			f := m.fired[i]
			b.WriteString(formatter.FormatFired(f.At, f.Title, f.Body) + "\n")
		}
		b.WriteString("\n")
	}
	title := "Today · " + domain.DayName(m.today)
	if m.plan.Mode == domain.ModePatient {
		title = "Today is " + domain.DayName(m.today)
	}
	b.WriteString(formatter.FormatChecklist(title, m.entries(), m.cursor, m.done))
	return b.String()
}

func (m watchModel) View() string {
	var b strings.Builder
	title := formatter.StyleHeader.Render("HARBOR")
	if m.plan != nil {
		title += "  " + formatter.ModeBadge(m.plan.Mode)
	}
	title += "  " + formatter.AlertsPill(m.status.Enabled, m.status.Permission)
	if m.status.Enabled {
		title += formatter.Dim(fmt.Sprintf(" (%d armed)", len(m.status.Armed)))
	}
	b.WriteString(title + "\n")
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	} else {
		b.WriteString("\n")
	}
	if m.ready {
		b.WriteString(m.vp.View())
	} else {
		b.WriteString(m.body())
	}
	b.WriteString("\n" + m.keys.helpLine())
	return b.String()
}

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep today's plan on screen and deliver alerts as they fire",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := tea.NewProgram(newWatchModel(ctx, app),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if app.Display != nil {
				restore := app.Display.Swap(teaDisplay{send: prog.Send})
				defer restore()
			}
			_, err := prog.Run()
			return err
		},
	}
}
