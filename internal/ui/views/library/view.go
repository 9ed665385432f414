package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	libdto "readtrack/internal/modules/library/dto"
	"readtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	FilterBooks(ctx context.Context, search, status, genre string) []libdto.BookOutput
	UniqueGenres(ctx context.Context) []string
}

// ─── messages ────────────────────────────────────────────────────────────────

type BooksLoadedMsg struct {
	Books  []libdto.BookOutput
	Genres []string
}

var statusFilters = []string{"all", "to-read", "reading", "completed", "paused"}

// ─── list item ───────────────────────────────────────────────────────────────

type bookItem struct {
	book libdto.BookOutput
}

func (i bookItem) Title() string { return i.book.Title }
func (i bookItem) Description() string {
	return fmt.Sprintf("%s · %s · %d%%", i.book.Author, theme.Status(i.book.Status).Render(i.book.Status), i.book.ReadingProgress)
}
func (i bookItem) FilterValue() string { return i.book.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      Port
	list      list.Model
	preview   viewport.Model
	search    textinput.Model
	searching bool
	notes     *glamour.TermRenderer
	genres    []string
	statusIdx int
	genreIdx  int
	loaded    bool
	width     int
	height    int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Books"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "title or author"
	ti.PromptStyle = lipgloss.NewStyle().Foreground(theme.Peach).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(theme.Text)

	notes, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{port: port, list: l, preview: vp, search: ti, notes: notes}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload fetches the books matching the search term and the status and
// genre filters.
func (m Model) Reload() tea.Cmd {
	search, status, genre := m.search.Value(), m.statusFilter(), m.genreFilter()
	return func() tea.Msg {
		ctx := context.Background()
		return BooksLoadedMsg{
			Books:  m.port.FilterBooks(ctx, search, status, genre),
			Genres: m.port.UniqueGenres(ctx),
		}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case BooksLoadedMsg:
		m.loaded = true
		m.genres = msg.Genres
		if m.genreIdx > len(m.genres) {
			m.genreIdx = 0
		}
		items := make([]list.Item, len(msg.Books))
		for i, b := range msg.Books {
			items[i] = bookItem{book: b}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.list.Title = m.title()
		m.preview.SetContent(m.renderDetail())
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "/":
			m.searching = true
			return m, m.search.Focus()
		case "esc":
			if m.search.Value() != "" {
				m.search.Reset()
				m.list.Title = m.title()
				return m, m.Reload()
			}
		case "f":
			m.statusIdx = (m.statusIdx + 1) % len(statusFilters)
			return m, m.Reload()
		case "g":
			m.genreIdx = (m.genreIdx + 1) % (len(m.genres) + 1)
			return m, m.Reload()
		}
	}

	if m.loaded {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		m.preview.SetContent(m.renderDetail())

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	detailW := m.width - listW

	listView := m.list.View()
	if m.searching || m.search.Value() != "" {
		listView = lipgloss.JoinVertical(lipgloss.Left, m.search.View(), listView)
	}
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(listView)
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedBook returns the highlighted book, if any.
func (m Model) SelectedBook() (libdto.BookOutput, bool) {
	if item, ok := m.list.SelectedItem().(bookItem); ok {
		return item.book, true
	}
	return libdto.BookOutput{}, false
}

// Filtering reports whether the search field has focus.
func (m Model) Filtering() bool {
	return m.searching
}

// ─── private ─────────────────────────────────────────────────────────────────

// updateSearch edits the search term and reloads on every change. enter
// keeps the term, esc drops it.
func (m Model) updateSearch(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.Reset()
		m.list.Title = m.title()
		return m, m.Reload()
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	m.list.Title = m.title()
	return m, tea.Batch(cmd, m.Reload())
}

func (m Model) statusFilter() string {
	return statusFilters[m.statusIdx]
}

func (m Model) genreFilter() string {
	if m.genreIdx == 0 || m.genreIdx > len(m.genres) {
		return "all"
	}
	return m.genres[m.genreIdx-1]
}

func (m Model) title() string {
	title := fmt.Sprintf("Books · status:%s · genre:%s", m.statusFilter(), m.genreFilter())
	if term := m.search.Value(); term != "" {
		title += fmt.Sprintf(" · %q", term)
	}
	return title
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
	// Notes wrap at the pane width.
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(max(m.preview.Width-2, 20)),
	); err == nil {
		m.notes = r
	}
}

func (m Model) renderDetail() string {
	b, ok := m.SelectedBook()
	if !ok {
		return theme.Muted.Render("No books match the current filters")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(b.Title) + "\n")
	sb.WriteString(theme.Muted.Render("by "+b.Author) + "\n\n")
	sb.WriteString(theme.Muted.Render("status:   ") + theme.Status(b.Status).Render(b.Status) + "\n")
	sb.WriteString(theme.Muted.Render("genre:    ") + b.Genre + "\n")
	sb.WriteString(fmt.Sprintf("%s%d pages, %d%% read\n", theme.Muted.Render("progress: "), b.Pages, b.ReadingProgress))
	sb.WriteString(fmt.Sprintf("%s%dh %02dm\n", theme.Muted.Render("time:     "), b.TimeSpent/60, b.TimeSpent%60))
	if b.Rating > 0 {
		sb.WriteString(theme.Muted.Render("rating:   ") + strings.Repeat("★", b.Rating) + strings.Repeat("☆", 5-b.Rating) + "\n")
	}
	if len(b.Tags) > 0 {
		sb.WriteString(theme.Muted.Render("tags:     ") + strings.Join(b.Tags, ", ") + "\n")
	}
	if b.Notes != "" {
		sb.WriteString("\n" + m.renderNotes(b.Notes) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: read  f: status filter  g: genre filter  /: search"))
	return sb.String()
}

// renderNotes formats the book notes as markdown, falling back to plain
// wrapped text when the renderer is unavailable.
func (m Model) renderNotes(notes string) string {
	if m.notes != nil {
		if out, err := m.notes.Render(notes); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return lipgloss.NewStyle().Width(max(m.preview.Width-2, 20)).Render(notes)
}
