package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	libdto "readtrack/internal/modules/library/dto"
	sessiondto "readtrack/internal/modules/session/dto"
	"readtrack/internal/ui/theme"
)

const recentLimit = 8

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Statistics(ctx context.Context) libdto.StatisticsOutput
	RecentSessions(ctx context.Context, limit int) []sessiondto.SessionOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

type StatsLoadedMsg struct {
	Stats    libdto.StatisticsOutput
	Sessions []sessiondto.SessionOutput
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	stats    libdto.StatisticsOutput
	sessions []sessiondto.SessionOutput
	loaded   bool
	spinner  spinner.Model
	bar      progress.Model
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Hot
	bar := progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Lavender)), progress.WithWidth(30))
	return Model{port: port, spinner: sp, bar: bar}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.Reload())
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		return StatsLoadedMsg{
			Stats:    m.port.Statistics(ctx),
			Sessions: m.port.RecentSessions(ctx, recentLimit),
		}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatsLoadedMsg:
		m.loaded = true
		m.stats = msg.Stats
		m.sessions = msg.Sessions
	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if !m.loaded {
		return m.spinner.View() + " loading statistics"
	}
	s := m.stats
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("books read", fmt.Sprint(s.BooksRead)),
		card("pages read", humanize.Comma(int64(s.PagesRead))),
		card("hours", fmt.Sprint(s.TotalTimeHours)),
		card("avg rating", fmt.Sprintf("%.1f", s.AverageRating)),
		card("reading", fmt.Sprint(s.CurrentlyReading)),
		card("to read", fmt.Sprint(s.ToRead)),
	)

	paneW := max(m.width-2, 20)
	goals := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Width(max(paneW/2, 20)).Render(m.renderGenres()),
		theme.Pane.Width(max(paneW-paneW/2, 20)).Render(m.renderChallenges()),
	)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Recent sessions") + "\n")
	if len(m.sessions) == 0 {
		sb.WriteString(theme.Muted.Render("no sessions recorded yet"))
	}
	for i := len(m.sessions) - 1; i >= 0; i-- {
		sess := m.sessions[i]
		line := fmt.Sprintf("%-14s %3d min  %-28s", humanize.Time(sess.Date), sess.Duration, sess.BookTitle)
		if sess.PagesRead > 0 {
			line += fmt.Sprintf(" %d pages", sess.PagesRead)
		}
		sb.WriteString(line + "\n")
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards, "", goals, theme.Pane.Width(paneW).Render(sb.String()))
}

func (m Model) renderGenres() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Progress by genre") + "\n")
	if len(m.stats.Genres) == 0 {
		sb.WriteString(theme.Muted.Render("no books yet"))
	}
	for _, g := range m.stats.Genres {
		sb.WriteString(fmt.Sprintf("%s %s\n", g.Genre, theme.Muted.Render(fmt.Sprintf("%d/%d books", g.Completed, g.Total))))
		sb.WriteString(m.bar.ViewAs(float64(g.Percent)/100) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderChallenges() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Reading challenges") + "\n")
	for _, c := range m.stats.Challenges {
		badge := theme.Muted.Render(fmt.Sprintf("%s/%s", humanize.Comma(int64(c.Current)), humanize.Comma(int64(c.Target))))
		if c.Done {
			badge = theme.Hot.Render("done")
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", c.Name, badge))
		sb.WriteString(m.bar.ViewAs(min(float64(c.Percent)/100, 1)) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func card(label, value string) string {
	return theme.Card.Width(14).Render(theme.Hot.Render(value) + "\n" + theme.Muted.Render(label))
}
