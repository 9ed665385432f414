package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"readtrack/internal/bootstrap"
	libdto "readtrack/internal/modules/library/dto"
	quotedto "readtrack/internal/modules/quote/dto"
	readerdto "readtrack/internal/modules/reader/dto"
	"readtrack/internal/platform/config"
	apperrors "readtrack/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	envFile    string
	dataDir    string
	backend    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "readtrack",
		Short:         "Personal reading tracker with a typewriter reading desk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultConfigPath(), "config file (yaml or toml)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file with READTRACK_* overrides")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (defaults to the XDG data home)")
	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "storage backend: sqlite|file|memory")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newBookCmd(opts))
	root.AddCommand(newQuoteCmd(opts))
	root.AddCommand(newSessionCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newTimerCmd(opts))
	return root
}

func loadApp(ctx context.Context, opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := config.Load(config.Options{
		ConfigPath: opts.configPath,
		EnvFile:    opts.envFile,
		DataDir:    opts.dataDir,
		Backend:    opts.backend,
	})
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg)
}

// withApp builds the app, runs fn and always flushes state on the way out.
func withApp(ctx context.Context, opts *rootOptions, fn func(ctx context.Context, app *bootstrap.App) error) (err error) {
	app, err := loadApp(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(context.WithoutCancel(ctx)); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(ctx, app)
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(_ context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(app)
			})
		},
	}
}

// ─── book ────────────────────────────────────────────────────────────────────

func newBookCmd(opts *rootOptions) *cobra.Command {
	book := &cobra.Command{Use: "book", Short: "Manage the book library"}

	var add libdto.AddBookInput
	addCmd := &cobra.Command{
		Use:   "add --title <title> --author <author>",
		Short: "Add a book",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, app *bootstrap.App) error {
				out, ok := app.LibraryCLI.AddBook(ctx, add)
				if !ok {
					return fmt.Errorf("%w: title and author are required", apperrors.ErrInvalidInput)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %q by %s (id=%d)\n", out.Title, out.Author, out.ID)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&add.Title, "title", "", "book title")
	addCmd.Flags().StringVar(&add.Author, "author", "", "book author")
	addCmd.Flags().StringVar(&add.Genre, "genre", "", "genre (defaults to Uncategorized)")
	addCmd.Flags().IntVar(&add.Pages, "pages", 0, "page count")
	addCmd.Flags().StringVar(&add.Excerpt, "excerpt", "", "excerpt shown by the reading desk")
	addCmd.Flags().StringVar(&add.Notes, "notes", "", "free-form notes")
	addCmd.Flags().StringSliceVar(&add.Tags, "tags", nil, "tags")

	var search, status, genre string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List books, optionally filtered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, app *bootstrap.App) error {
				books := app.LibraryCLI.FilterBooks(ctx, search, status, genre)
				if len(books) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no books")
					return nil
				}
				printBooks(cmd.OutOrStdout(), books)
				return nil
			})
		},
	}
	listCmd.Flags().StringVar(&search, "search", "", "match title or author")
	listCmd.Flags().StringVar(&status, "status", "all", "to-read|reading|completed|paused|all")
	listCmd.Flags().StringVar(&genre, "genre", "all", "genre or all")

	var showID int64
	showCmd := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show book details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, app *bootstrap.App) error {
				b, err := app.LibraryCLI.GetBook(ctx, showID)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "id: %d\ntitle: %s\nauthor: %s\ngenre: %s\nstatus: %s\n", b.ID, b.Title, b.Author, b.Genre, b.Status)
				_, _ = fmt.Fprintf(w, "pages: %d\nprogress: %d%%\ntime: %s\nrating: %d\n", b.Pages, b.ReadingProgress, minutes(b.TimeSpent), b.Rating)
				_, _ = fmt.Fprintf(w, "added: %s\n", humanize.Time(b.DateAdded))
				if b.DateStarted != nil {
					_, _ = fmt.Fprintf(w, "started: %s\n", b.DateStarted.Format(time.DateOnly))
				}
				if b.DateFinished != nil {
					_, _ = fmt.Fprintf(w, "finished: %s\n", b.DateFinished.Format(time.DateOnly))
				}
				if len(b.Tags) > 0 {
					_, _ = fmt.Fprintf(w, "tags: %s\n", strings.Join(b.Tags, ", "))
				}
				if b.Notes != "" {
					_, _ = fmt.Fprintf(w, "notes: %s\n", b.Notes)
				}
				return nil
			})
		},
	}
	showCmd.Flags().Int64Var(&showID, "id", 0, "book id")

	updateCmd := newBookUpdateCmd(opts)

	var deleteID int64
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a book",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, app *bootstrap.App) error {
				if !app.LibraryCLI.DeleteBook(ctx, deleteID) {
					return fmt.Errorf("book %d: %w", deleteID, apperrors.ErrNotFound)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted book %d\n", deleteID)
				return nil
			})
		},
	}
	deleteCmd.Flags().Int64Var(&deleteID, "id", 0, "book id")

	genresCmd := &cobra.Command{
		Use:   "genres",
		Short: "List the genres present in the library",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, app *bootstrap.App) error {
				for _, g := range app.LibraryCLI.UniqueGenres(ctx) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), g)
				}
				return nil
			})
		},
	}

	var excerptID int64
	var excerptPath string
	var excerptPage, excerptMax int
	excerptCmd := &cobra.Command{
		Use:   "excerpt --id <id> --file <path>",
		Short: "Import a book excerpt from a markdown, text or pdf file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ReaderCLI.ImportExcerpt(ctx, excerptID, excerptPath, excerptPage, excerptMax)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d characters (%s", len([]rune(out.Excerpt)), out.Format)
				if out.Format == "pdf" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " page %d/%d", out.Page, out.TotalPage)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), ")")
				return nil
			})
		},
	}
	excerptCmd.Flags().Int64Var(&excerptID, "id", 0, "book id")
	excerptCmd.Flags().StringVar(&excerptPath, "file", "", "source file")
	excerptCmd.Flags().IntVar(&excerptPage, "page", 1, "pdf page")
	excerptCmd.Flags().IntVar(&excerptMax, "max", 0, "maximum excerpt length in characters")

	book.AddCommand(addCmd, listCmd, showCmd, updateCmd, deleteCmd, genresCmd, excerptCmd)
	return book
}

// newBookUpdateCmd only overwrites the fields whose flags were given.
func newBookUpdateCmd(opts *rootOptions) *cobra.Command {
	var id int64
	var title, author, genre, status, notes string
	var pages, progress, rating int
	var tags []string

	cmd := &cobra.Command{
		Use:   "update --id <id> [flags]",
		Short: "Update a book",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, app *bootstrap.App) error {
				b, err := app.LibraryCLI.GetBook(ctx, id)
				if err != nil {
					return err
				}
				in := libdto.UpdateBookInput{
					ID: b.ID, Title: b.Title, Author: b.Author, Genre: b.Genre, Excerpt: b.Excerpt,
					Pages: b.Pages, Status: b.Status, ReadingProgress: b.ReadingProgress,
					Rating: b.Rating, Notes: b.Notes, Tags: b.Tags,
				}
				flags := cmd.Flags()
				if flags.Changed("title") {
					in.Title = title
				}
				if flags.Changed("author") {
					in.Author = author
				}
				if flags.Changed("genre") {
					in.Genre = genre
				}
				if flags.Changed("status") {
					in.Status = status
				}
				if flags.Changed("notes") {
					in.Notes = notes
				}
				if flags.Changed("pages") {
					in.Pages = pages
				}
				if flags.Changed("progress") {
					in.ReadingProgress = progress
				}
				if flags.Changed("rating") {
					in.Rating = rating
				}
				if flags.Changed("tags") {
					in.Tags = tags
				}
				out, ok := app.LibraryCLI.UpdateBook(ctx, in)
				if !ok {
					return fmt.Errorf("%w: update rejected for book %d", apperrors.ErrInvalidInput, id)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %q status=%s progress=%d%% rating=%d\n", out.Title, out.Status, out.ReadingProgress, out.Rating)
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "book id")
	cmd.Flags().StringVar(&title, "title", "", "book title")
	cmd.Flags().StringVar(&author, "author", "", "book author")
	cmd.Flags().StringVar(&genre, "genre", "", "genre")
	cmd.Flags().StringVar(&status, "status", "", "to-read|reading|completed|paused")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().IntVar(&pages, "pages", 0, "page count")
	cmd.Flags().IntVar(&progress, "progress", 0, "reading progress 0..100")
	cmd.Flags().IntVar(&rating, "rating", 0, "rating 0..5")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "tags")
	return cmd
}

// ─── quote ───────────────────────────────────────────────────────────────────

func newQuoteCmd(opts *rootOptions) *cobra.Command {
	quote := &cobra.Command{Use: "quote", Short: "Manage saved quotes"}

	var add quotedto.AddQuoteInput
	addCmd := &cobra.Command{
		Use:   "add --text <text> --author <author>",
		Short: "Save a quote",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, app *bootstrap.App) error {
				out, ok := app.QuoteCLI.Add(ctx, add)
				if !ok {
					return fmt.Errorf("%w: text and author are required", apperrors.ErrInvalidInput)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved quote %d (%s)\n", out.ID, out.Author)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&add.Text, "text", "", "quote text")
	addCmd.Flags().StringVar(&add.Author, "author", "", "quote author")
	addCmd.Flags().StringVar(&add.Book, "book", "", "source title when the book is not in the library")
	addCmd.Flags().Int64Var(&add.BookID, "book-id", 0, "library book id")
	addCmd.Flags().IntVar(&add.Page, "page", 0, "page number")
	addCmd.Flags().StringSliceVar(&add.Tags, "tags", nil, "tags")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved quotes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, app *bootstrap.App) error {
				quotes := app.QuoteCLI.List(ctx)
				if len(quotes) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no quotes")
					return nil
				}
				for _, q := range quotes {
					source := q.Author
					if q.Book != "" {
						source += ", " + q.Book
					}
					if q.Page > 0 {
						source += fmt.Sprintf(" p.%d", q.Page)
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t“%s”\n\t— %s\n", q.ID, q.Text, source)
				}
				return nil
			})
		},
	}

	var deleteID int64
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a quote",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, app *bootstrap.App) error {
				if !app.QuoteCLI.Delete(ctx, deleteID) {
					return fmt.Errorf("quote %d: %w", deleteID, apperrors.ErrNotFound)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted quote %d\n", deleteID)
				return nil
			})
		},
	}
	deleteCmd.Flags().Int64Var(&deleteID, "id", 0, "quote id")

	quote.AddCommand(addCmd, listCmd, deleteCmd)
	return quote
}

// ─── session ─────────────────────────────────────────────────────────────────

func newSessionCmd(opts *rootOptions) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Reading session log"}

	var bookID int64
	var mins, pages int
	var notes string
	recordCmd := &cobra.Command{
		Use:   "record --book-id <id> --minutes <n>",
		Short: "Record a finished reading session and credit its time to the book",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, app *bootstrap.App) error {
				out, ok := app.SessionCLI.Record(ctx, bookID, mins, pages, notes)
				if !ok {
					return fmt.Errorf("%w: a book and a positive duration are required", apperrors.ErrInvalidInput)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recorded %d min on %q (session %d)\n", out.Duration, out.BookTitle, out.ID)
				return nil
			})
		},
	}
	recordCmd.Flags().Int64Var(&bookID, "book-id", 0, "book id")
	recordCmd.Flags().IntVar(&mins, "minutes", 0, "duration in minutes")
	recordCmd.Flags().IntVar(&pages, "pages", 0, "pages read")
	recordCmd.Flags().StringVar(&notes, "notes", "", "session notes")

	var listBookID int64
	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent reading sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, app *bootstrap.App) error {
				sessions := app.SessionCLI.List(ctx, listBookID, limit)
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, s := range sessions {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %4d min  %3d pages  %s\n",
						cell(humanize.Time(s.Date), 16), cell(s.BookTitle, 28), s.Duration, s.PagesRead, s.Notes)
				}
				return nil
			})
		},
	}
	listCmd.Flags().Int64Var(&listBookID, "book-id", 0, "only sessions of this book")
	listCmd.Flags().IntVar(&limit, "limit", 20, "maximum number of sessions (0 for all)")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write session and book notes into the markdown vault",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Export(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d session notes and %d book notes to %s\n", len(out.SessionNotes), len(out.BookNotes), out.Dir)
				return nil
			})
		},
	}

	session.AddCommand(recordCmd, listCmd, exportCmd)
	return session
}

// ─── stats ───────────────────────────────────────────────────────────────────

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show reading statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, app *bootstrap.App) error {
				s := app.LibraryCLI.Statistics(ctx)
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "books read:        %d\n", s.BooksRead)
				_, _ = fmt.Fprintf(w, "pages read:        %s\n", humanize.Comma(int64(s.PagesRead)))
				_, _ = fmt.Fprintf(w, "hours read:        %d\n", s.TotalTimeHours)
				_, _ = fmt.Fprintf(w, "average rating:    %.1f\n", s.AverageRating)
				_, _ = fmt.Fprintf(w, "currently reading: %d\n", s.CurrentlyReading)
				_, _ = fmt.Fprintf(w, "to read:           %d\n", s.ToRead)

				_, _ = fmt.Fprintln(w, "\nprogress by genre:")
				for _, g := range s.Genres {
					_, _ = fmt.Fprintf(w, "  %s %d/%d books  %d%%\n", cell(g.Genre, 20), g.Completed, g.Total, g.Percent)
				}
				_, _ = fmt.Fprintln(w, "\nreading challenges:")
				for _, c := range s.Challenges {
					mark := ""
					if c.Done {
						mark = "  done"
					}
					_, _ = fmt.Fprintf(w, "  %s %s/%s  %d%%%s\n", cell(c.Name, 20),
						humanize.Comma(int64(c.Current)), humanize.Comma(int64(c.Target)), c.Percent, mark)
				}
				return nil
			})
		},
	}
}

// ─── timer ───────────────────────────────────────────────────────────────────

func newTimerCmd(opts *rootOptions) *cobra.Command {
	var bookID int64
	var mins, pages int
	var notes string

	cmd := &cobra.Command{
		Use:   "timer --book-id <id>",
		Short: "Run a focus countdown and record the session when it expires",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withApp(ctx, opts, func(ctx context.Context, app *bootstrap.App) error {
				return runTimer(ctx, cmd.OutOrStdout(), app, bookID, mins, pages, notes)
			})
		},
	}
	cmd.Flags().Int64Var(&bookID, "book-id", 0, "book id")
	cmd.Flags().IntVar(&mins, "minutes", 25, "session length in minutes (5..60)")
	cmd.Flags().IntVar(&pages, "pages", 0, "pages read, stored with the session")
	cmd.Flags().StringVar(&notes, "notes", "", "notes stored with the session")
	return cmd
}

func runTimer(ctx context.Context, w io.Writer, app *bootstrap.App, bookID int64, mins, pages int, notes string) error {
	done := make(chan readerdto.DeskView, 1)
	unsubscribe := app.ReaderCLI.Subscribe(func(ev readerdto.DeskEvent) {
		switch ev.Kind {
		case "countdown":
			if ev.View.RemainingSeconds%60 == 0 {
				_, _ = fmt.Fprintf(w, "%s remaining\n", minutes(ev.View.RemainingSeconds/60))
			}
		case "session_recorded":
			select {
			case done <- ev.View:
			default:
			}
		}
	})
	defer unsubscribe()

	if err := app.ReaderCLI.RunCountdown(ctx, bookID, mins, pages, notes); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "focus session started: %q for %d min\n", app.ReaderCLI.View(ctx).BookTitle, mins)

	select {
	case view := <-done:
		_, _ = fmt.Fprintf(w, "session recorded for %q\n", view.BookTitle)
		return nil
	case <-ctx.Done():
		_, _ = fmt.Fprintln(w, "timer cancelled, nothing recorded")
		return nil
	}
}

// ─── output helpers ──────────────────────────────────────────────────────────

func printBooks(w io.Writer, books []libdto.BookOutput) {
	_, _ = fmt.Fprintf(w, "%-6s  %s  %s  %s  %8s  %s\n", "ID", cell("TITLE", 32), cell("AUTHOR", 22), cell("STATUS", 9), "PROGRESS", "TIME")
	for _, b := range books {
		_, _ = fmt.Fprintf(w, "%-6d  %s  %s  %s  %7d%%  %s\n",
			b.ID, cell(b.Title, 32), cell(b.Author, 22), cell(b.Status, 9), b.ReadingProgress, minutes(b.TimeSpent))
	}
}

// cell pads or truncates s to exactly width terminal columns.
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func minutes(total int) string {
	if total < 60 {
		return fmt.Sprintf("%dm", total)
	}
	return fmt.Sprintf("%dh%02dm", total/60, total%60)
}
