package reader

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	readerdto "readtrack/internal/modules/reader/dto"
	"readtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the desk surface this view drives.
type Port interface {
	TogglePlayback(ctx context.Context) error
	ResetReading(ctx context.Context) error
	AdjustSpeed(ctx context.Context, deltaMS int) int
	ToggleCountdown(ctx context.Context) error
	ResetCountdown(ctx context.Context) error
	AdjustSessionLength(ctx context.Context, deltaMinutes int) error
	View(ctx context.Context) readerdto.DeskView
}

// ─── messages ────────────────────────────────────────────────────────────────

// DeskEventMsg carries a desk event pushed from the timer goroutines.
type DeskEventMsg struct {
	Event readerdto.DeskEvent
}

// ActionMsg reports the outcome of a desk control.
type ActionMsg struct {
	Action string
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	desk     readerdto.DeskView
	viewport viewport.Model
	width    int
	height   int
}

func New(port Port) Model {
	return Model{port: port, viewport: viewport.New(0, 0)}
}

func (m Model) Init() tea.Cmd { return m.refreshCmd() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width - 4
		m.viewport.Height = max(m.height-9, 1)
		m.viewport.SetContent(m.renderText())

	case DeskEventMsg:
		if msg.Event.View.Seq < m.desk.Seq {
			return m, nil
		}
		m.desk = msg.Event.View
		m.viewport.SetContent(m.renderText())
		m.viewport.GotoBottom()
		return m, nil

	case ActionMsg:
		return m, m.refreshCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "p":
			return m, m.action("playback", m.port.TogglePlayback)
		case "r":
			return m, m.action("reset", m.port.ResetReading)
		case "+", "=":
			return m, m.speedCmd(-10)
		case "-":
			return m, m.speedCmd(10)
		case "c":
			return m, m.action("countdown", m.port.ToggleCountdown)
		case "x":
			return m, m.action("countdown reset", m.port.ResetCountdown)
		case "]":
			return m, m.lengthCmd(5)
		case "[":
			return m, m.lengthCmd(-5)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	d := m.desk
	if d.BookID == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("Pick a book in the Library tab (enter) to start reading"))
	}
	header := theme.Title.Render(d.BookTitle) + "  " +
		theme.Muted.Render(fmt.Sprintf("[%s %d/%d · %dms]", d.Playback, d.Cursor, d.Length, d.SpeedMS))
	text := theme.Pane.Width(m.width - 2).Render(m.viewport.View())

	stopwatch := theme.Card.Render(theme.Muted.Render("reading") + "\n" +
		stateStyle(d.StopwatchRunning).Render(clock(d.ElapsedSeconds)))
	countdown := theme.Card.Render(theme.Muted.Render(fmt.Sprintf("focus %dm", d.SessionMinutes)) + "\n" +
		theme.Timer(d.Countdown).Render(clock(d.RemainingSeconds)+" "+d.Countdown))
	timers := lipgloss.JoinHorizontal(lipgloss.Top, stopwatch, " ", countdown)

	footer := theme.Muted.Render("space: play/pause  r: reset  +/-: speed  c: focus timer  x: reset timer  [/]: length")
	return lipgloss.JoinVertical(lipgloss.Left, header, text, timers, footer)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderText() string {
	if m.desk.Length == 0 {
		return theme.Muted.Render("(this book has no excerpt)")
	}
	text := m.desk.Revealed
	if m.desk.Playback == "playing" {
		text += "▌"
	}
	return theme.Revealed.Width(max(m.viewport.Width-2, 10)).Render(text)
}

func (m Model) action(name string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return ActionMsg{Action: name, Err: fn(context.Background())}
	}
}

func (m Model) speedCmd(delta int) tea.Cmd {
	return func() tea.Msg {
		m.port.AdjustSpeed(context.Background(), delta)
		return ActionMsg{Action: "speed"}
	}
}

func (m Model) lengthCmd(delta int) tea.Cmd {
	return func() tea.Msg {
		return ActionMsg{Action: "length", Err: m.port.AdjustSessionLength(context.Background(), delta)}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return DeskEventMsg{Event: readerdto.DeskEvent{Kind: "refresh", View: m.port.View(context.Background())}}
	}
}

func stateStyle(running bool) lipgloss.Style {
	if running {
		return theme.Timer("running")
	}
	return theme.Muted
}

func clock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
