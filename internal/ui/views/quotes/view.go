package quotes

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	quotedto "readtrack/internal/modules/quote/dto"
	"readtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	List(ctx context.Context) []quotedto.QuoteOutput
	Delete(ctx context.Context, id int64) bool
}

// ─── messages ────────────────────────────────────────────────────────────────

type QuotesLoadedMsg struct {
	Quotes []quotedto.QuoteOutput
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	quotes   []quotedto.QuoteOutput
	cursor   int
	viewport viewport.Model
	width    int
	height   int
}

func New(port Port) Model {
	return Model{port: port, viewport: viewport.New(0, 0)}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		return QuotesLoadedMsg{Quotes: m.port.List(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width - 4
		m.viewport.Height = max(m.height-4, 1)

	case QuotesLoadedMsg:
		m.quotes = msg.Quotes
		if m.cursor >= len(m.quotes) {
			m.cursor = max(len(m.quotes)-1, 0)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.quotes)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "d":
			if m.cursor < len(m.quotes) {
				id := m.quotes[m.cursor].ID
				return m, func() tea.Msg {
					ctx := context.Background()
					m.port.Delete(ctx, id)
					return QuotesLoadedMsg{Quotes: m.port.List(ctx)}
				}
			}
		}
	}

	m.viewport.SetContent(m.render())
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return theme.Pane.Width(m.width - 2).Height(m.height - 2).Render(m.viewport.View())
}

func (m Model) render() string {
	if len(m.quotes) == 0 {
		return theme.Muted.Render("No quotes yet. Add one with the palette (ctrl+p, quote:add).")
	}
	width := max(m.viewport.Width-4, 20)
	cards := make([]string, 0, len(m.quotes))
	for i, q := range m.quotes {
		var sb strings.Builder
		sb.WriteString(theme.Quote.Width(width).Render("“" + q.Text + "”"))
		sb.WriteString("\n")
		source := "— " + q.Author
		if q.Book != "" {
			source += ", " + q.Book
		}
		if q.Page > 0 {
			source += fmt.Sprintf(" p.%d", q.Page)
		}
		sb.WriteString(theme.Muted.Render(source))
		if len(q.Tags) > 0 {
			sb.WriteString("  " + theme.Hot.Render("#"+strings.Join(q.Tags, " #")))
		}
		marker := "  "
		if i == m.cursor {
			marker = theme.Hot.Render("▸ ")
		}
		cards = append(cards, lipgloss.JoinHorizontal(lipgloss.Top, marker, sb.String()))
	}
	return strings.Join(cards, "\n\n") + "\n\n" + theme.Muted.Render("j/k: move  d: delete")
}
