package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	libdto "readtrack/internal/modules/library/dto"
	quotedto "readtrack/internal/modules/quote/dto"
	readerdto "readtrack/internal/modules/reader/dto"
	sessiondto "readtrack/internal/modules/session/dto"
	"readtrack/internal/ui/components"
	"readtrack/internal/ui/theme"
	libraryview "readtrack/internal/ui/views/library"
	quotesview "readtrack/internal/ui/views/quotes"
	readerview "readtrack/internal/ui/views/reader"
	statsview "readtrack/internal/ui/views/stats"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type libraryPort interface {
	AddBook(ctx context.Context, input libdto.AddBookInput) (libdto.BookOutput, bool)
	UpdateBook(ctx context.Context, input libdto.UpdateBookInput) (libdto.BookOutput, bool)
	DeleteBook(ctx context.Context, id int64) bool
	GetBook(ctx context.Context, id int64) (libdto.BookOutput, error)
	FilterBooks(ctx context.Context, search, status, genre string) []libdto.BookOutput
	UniqueGenres(ctx context.Context) []string
	Statistics(ctx context.Context) libdto.StatisticsOutput
}

type quotePort interface {
	Add(ctx context.Context, input quotedto.AddQuoteInput) (quotedto.QuoteOutput, bool)
	List(ctx context.Context) []quotedto.QuoteOutput
	Delete(ctx context.Context, id int64) bool
}

type sessionPort interface {
	List(ctx context.Context, bookID int64, limit int) []sessiondto.SessionOutput
}

type deskPort interface {
	readerview.Port
	Select(ctx context.Context, bookID int64) error
	SetSessionNotes(ctx context.Context, pages int, notes string)
	ReloadBook(ctx context.Context, bookID int64)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabLibrary tabID = iota
	tabReader
	tabQuotes
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{
	"Library", "Reader", "Quotes", "Stats",
}

// ─── async messages ───────────────────────────────────────────────────────────

type selectedMsg struct {
	title string
	err   error
}

type mutatedMsg struct {
	status string
	bookID int64
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Enter    key.Binding
	Play     key.Binding
	Speed    key.Binding
	Focus    key.Binding
	Length   key.Binding
	Filters  key.Binding
	DelQuote key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read book")),
		Play:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Speed:    key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "speed")),
		Focus:    key.NewBinding(key.WithKeys("c", "x"), key.WithHelp("c/x", "focus timer")),
		Length:   key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "session length")),
		Filters:  key.NewBinding(key.WithKeys("f", "g"), key.WithHelp("f/g", "status/genre filter")),
		DelQuote: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete quote")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Filters},
		{k.Play, k.Speed, k.Focus, k.Length},
		{k.DelQuote, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay, and the command palette. Business logic is delegated to ports and
// rendering to sub-views.
type Model struct {
	library libraryPort
	quotes  quotePort
	desk    deskPort

	libView   libraryview.Model
	readView  readerview.Model
	quoteView quotesview.Model
	statsView statsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	deskSeq   uint64
	reading   string
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(library libraryPort, quotes quotePort, sessions sessionPort, desk deskPort) Model {
	return Model{
		library:   library,
		quotes:    quotes,
		desk:      desk,
		libView:   libraryview.New(libraryPortBridge{p: library}),
		readView:  readerview.New(desk),
		quoteView: quotesview.New(quotes),
		statsView: statsview.New(statsPortBridge{library: library, sessions: sessions}),
		activeTab: tabLibrary,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(paletteHints()),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.libView.Init(),
		m.readView.Init(),
		m.quoteView.Init(),
		m.statsView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Desk events arrive from timer goroutines and must reach the reader
	// view whichever tab is showing.
	if ev, ok := msg.(readerview.DeskEventMsg); ok {
		if ev.Event.View.Seq < m.deskSeq {
			return m, nil
		}
		m.deskSeq = ev.Event.View.Seq
		var cmd tea.Cmd
		m.readView, cmd = m.readView.Update(ev)
		m.reading = ev.Event.View.BookTitle
		cmds = append(cmds, cmd)
		switch ev.Event.Kind {
		case "accrual":
			cmds = append(cmds, m.libView.Reload(), m.statsView.Reload())
		case "session_recorded":
			m.status = "focus session recorded: " + ev.Event.View.BookTitle
			cmds = append(cmds, m.libView.Reload(), m.statsView.Reload())
		}
		return m, tea.Batch(cmds...)
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case libraryview.BooksLoadedMsg:
		var cmd tea.Cmd
		m.libView, cmd = m.libView.Update(msg)
		return m, cmd

	case quotesview.QuotesLoadedMsg:
		var cmd tea.Cmd
		m.quoteView, cmd = m.quoteView.Update(msg)
		return m, cmd

	case statsview.StatsLoadedMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd

	case readerview.ActionMsg:
		if msg.Err != nil {
			m.status = msg.Action + ": " + msg.Err.Error()
		}
		var cmd tea.Cmd
		m.readView, cmd = m.readView.Update(msg)
		return m, cmd

	case selectedMsg:
		if msg.err != nil {
			m.status = "select: " + msg.err.Error()
			return m, nil
		}
		m.status = "reading: " + msg.title
		m.activeTab = tabReader
		return m, nil

	case mutatedMsg:
		m.status = msg.status
		cmds = append(cmds, m.libView.Reload(), m.quoteView.Reload(), m.statsView.Reload())
		if msg.bookID != 0 {
			cmds = append(cmds, m.reloadDeskCmd(msg.bookID))
		}
		return m, tea.Batch(cmds...)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the library list while its search filter is open.
		if m.activeTab == tabLibrary && m.libView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":", "ctrl+p":
			return m, m.palette.Open()
		case "enter":
			if m.activeTab == tabLibrary {
				if book, ok := m.libView.SelectedBook(); ok {
					return m, m.selectCmd(book)
				}
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabLibrary:
		m.libView, tabCmd = m.libView.Update(msg)
	case tabReader:
		m.readView, tabCmd = m.readView.Update(msg)
	case tabQuotes:
		m.quoteView, tabCmd = m.quoteView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabLibrary:
		return m.libView.View()
	case tabReader:
		return m.readView.View()
	case tabQuotes:
		return m.quoteView.View()
	case tabStats:
		return m.statsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "readtrack  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.reading != "" {
		left = theme.Hot.Render("● "+m.reading) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  ::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

// paletteCommand is one palette verb. usage doubles as the palette hint and
// the status shown for malformed arguments.
type paletteCommand struct {
	name  string
	usage string
	run   func(m Model, c paletteCommand, args string) (Model, tea.Cmd)
}

var paletteCommands = []paletteCommand{
	{"book:add", "book:add <title> | <author> | [genre] | [pages]", Model.paletteBookAdd},
	{"book:status", "book:status <to-read|reading|completed|paused>", Model.paletteBookEdit},
	{"book:rate", "book:rate <0-5>", Model.paletteBookEdit},
	{"book:progress", "book:progress <0-100>", Model.paletteBookEdit},
	{"book:notes", "book:notes <text>", Model.paletteBookEdit},
	{"book:delete", "book:delete", Model.paletteBookDelete},
	{"quote:add", "quote:add <text> | <author> [| page]", Model.paletteQuoteAdd},
	{"session:length", "session:length <minutes>", Model.paletteSessionLength},
	{"session:notes", "session:notes <pages> [notes]", Model.paletteSessionNotes},
	{"reader:speed", "reader:speed <ms>", Model.paletteReaderSpeed},
}

func paletteHints() []string {
	hints := make([]string, len(paletteCommands))
	for i, c := range paletteCommands {
		hints[i] = c.usage
	}
	return hints
}

func lookupCommand(name string) (paletteCommand, bool) {
	for _, c := range paletteCommands {
		if c.name == name {
			return c, true
		}
	}
	return paletteCommand{}, false
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	name, rest, _ := strings.Cut(input, " ")
	c, ok := lookupCommand(name)
	if !ok {
		m.status = "unknown command: " + name
		return m, nil
	}
	return c.run(m, c, strings.TrimSpace(rest))
}

func (m Model) paletteBookAdd(c paletteCommand, args string) (Model, tea.Cmd) {
	fields := splitPipes(args)
	if len(fields) < 2 {
		m.status = "usage: " + c.usage
		return m, nil
	}
	in := libdto.AddBookInput{Title: fields[0], Author: fields[1]}
	if len(fields) > 2 {
		in.Genre = fields[2]
	}
	if len(fields) > 3 {
		in.Pages, _ = strconv.Atoi(fields[3])
	}
	return m, m.addBookCmd(in)
}

func (m Model) paletteBookEdit(c paletteCommand, args string) (Model, tea.Cmd) {
	selected, ok := m.libView.SelectedBook()
	if !ok {
		m.status = "no book selected"
		return m, nil
	}
	in := toUpdate(selected)
	switch c.name {
	case "book:status":
		in.Status = args
	case "book:notes":
		in.Notes = args
	default:
		n, err := strconv.Atoi(args)
		if err != nil {
			m.status = "usage: " + c.usage
			return m, nil
		}
		if c.name == "book:rate" {
			in.Rating = n
		} else {
			in.ReadingProgress = n
		}
	}
	return m, m.updateBookCmd(in)
}

func (m Model) paletteBookDelete(paletteCommand, string) (Model, tea.Cmd) {
	selected, ok := m.libView.SelectedBook()
	if !ok {
		m.status = "no book selected"
		return m, nil
	}
	return m, m.deleteBookCmd(selected)
}

func (m Model) paletteQuoteAdd(c paletteCommand, args string) (Model, tea.Cmd) {
	fields := splitPipes(args)
	if len(fields) < 2 {
		m.status = "usage: " + c.usage
		return m, nil
	}
	in := quotedto.AddQuoteInput{Text: fields[0], Author: fields[1]}
	if len(fields) > 2 {
		in.Page, _ = strconv.Atoi(fields[2])
	}
	if id := m.desk.View(context.Background()).BookID; id != 0 {
		in.BookID = id
	} else if selected, ok := m.libView.SelectedBook(); ok {
		in.BookID = selected.ID
	}
	return m, m.addQuoteCmd(in)
}

func (m Model) paletteSessionLength(c paletteCommand, args string) (Model, tea.Cmd) {
	minutes, err := strconv.Atoi(args)
	if err != nil {
		m.status = "usage: " + c.usage
		return m, nil
	}
	return m, m.sessionLengthCmd(minutes)
}

func (m Model) paletteSessionNotes(c paletteCommand, args string) (Model, tea.Cmd) {
	pagesArg, notes, _ := strings.Cut(args, " ")
	pages, err := strconv.Atoi(pagesArg)
	if err != nil {
		m.status = "usage: " + c.usage
		return m, nil
	}
	m.desk.SetSessionNotes(context.Background(), pages, strings.TrimSpace(notes))
	m.status = "notes attached to the next focus session"
	return m, nil
}

func (m Model) paletteReaderSpeed(c paletteCommand, args string) (Model, tea.Cmd) {
	ms, err := strconv.Atoi(args)
	if err != nil {
		m.status = "usage: " + c.usage
		return m, nil
	}
	return m, m.speedCmd(ms)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.libView, _ = m.libView.Update(sz)
	m.readView, _ = m.readView.Update(sz)
	m.quoteView, _ = m.quoteView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

func splitPipes(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}

func toUpdate(b libdto.BookOutput) libdto.UpdateBookInput {
	return libdto.UpdateBookInput{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Genre:           b.Genre,
		Excerpt:         b.Excerpt,
		Pages:           b.Pages,
		Status:          b.Status,
		ReadingProgress: b.ReadingProgress,
		Rating:          b.Rating,
		Notes:           b.Notes,
		Tags:            b.Tags,
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) selectCmd(book libdto.BookOutput) tea.Cmd {
	return func() tea.Msg {
		return selectedMsg{title: book.Title, err: m.desk.Select(context.Background(), book.ID)}
	}
}

func (m Model) reloadDeskCmd(bookID int64) tea.Cmd {
	return func() tea.Msg {
		m.desk.ReloadBook(context.Background(), bookID)
		return nil
	}
}

func (m Model) addBookCmd(in libdto.AddBookInput) tea.Cmd {
	return func() tea.Msg {
		out, ok := m.library.AddBook(context.Background(), in)
		if !ok {
			return mutatedMsg{status: "book rejected: title and author are required"}
		}
		return mutatedMsg{status: "added: " + out.Title}
	}
}

func (m Model) updateBookCmd(in libdto.UpdateBookInput) tea.Cmd {
	return func() tea.Msg {
		out, ok := m.library.UpdateBook(context.Background(), in)
		if !ok {
			return mutatedMsg{status: "update rejected"}
		}
		return mutatedMsg{status: "updated: " + out.Title, bookID: out.ID}
	}
}

func (m Model) deleteBookCmd(book libdto.BookOutput) tea.Cmd {
	return func() tea.Msg {
		if !m.library.DeleteBook(context.Background(), book.ID) {
			return mutatedMsg{status: "book not found"}
		}
		return mutatedMsg{status: "deleted: " + book.Title, bookID: book.ID}
	}
}

func (m Model) addQuoteCmd(in quotedto.AddQuoteInput) tea.Cmd {
	return func() tea.Msg {
		out, ok := m.quotes.Add(context.Background(), in)
		if !ok {
			return mutatedMsg{status: "quote rejected: text and author are required"}
		}
		return mutatedMsg{status: fmt.Sprintf("quote saved (%s)", out.Author)}
	}
}

func (m Model) sessionLengthCmd(minutes int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		delta := minutes - m.desk.View(ctx).SessionMinutes
		return readerview.ActionMsg{Action: "session length", Err: m.desk.AdjustSessionLength(ctx, delta)}
	}
}

func (m Model) speedCmd(ms int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		m.desk.AdjustSpeed(ctx, ms-m.desk.View(ctx).SpeedMS)
		return readerview.ActionMsg{Action: "speed"}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed by
// a specific sub-view.

type libraryPortBridge struct{ p libraryPort }

func (b libraryPortBridge) FilterBooks(ctx context.Context, search, status, genre string) []libdto.BookOutput {
	return b.p.FilterBooks(ctx, search, status, genre)
}
func (b libraryPortBridge) UniqueGenres(ctx context.Context) []string {
	return b.p.UniqueGenres(ctx)
}

type statsPortBridge struct {
	library  libraryPort
	sessions sessionPort
}

func (b statsPortBridge) Statistics(ctx context.Context) libdto.StatisticsOutput {
	return b.library.Statistics(ctx)
}
func (b statsPortBridge) RecentSessions(ctx context.Context, limit int) []sessiondto.SessionOutput {
	return b.sessions.List(ctx, 0, limit)
}

// DeskEvents adapts a desk subscription to the program's message loop.
func DeskEvents(send func(tea.Msg)) func(readerdto.DeskEvent) {
	return func(ev readerdto.DeskEvent) {
		send(readerview.DeskEventMsg{Event: ev})
	}
}
