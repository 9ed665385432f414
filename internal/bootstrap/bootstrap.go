package bootstrap

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	libraryinadapter "readtrack/internal/modules/library/adapter/in"
	libraryoutadapter "readtrack/internal/modules/library/adapter/out"
	libraryin "readtrack/internal/modules/library/port/in"
	libraryservice "readtrack/internal/modules/library/service"
	libraryusecase "readtrack/internal/modules/library/usecase"
	quoteinadapter "readtrack/internal/modules/quote/adapter/in"
	quoteoutadapter "readtrack/internal/modules/quote/adapter/out"
	quotein "readtrack/internal/modules/quote/port/in"
	quoteservice "readtrack/internal/modules/quote/service"
	quoteusecase "readtrack/internal/modules/quote/usecase"
	readerinadapter "readtrack/internal/modules/reader/adapter/in"
	readeroutadapter "readtrack/internal/modules/reader/adapter/out"
	readerservice "readtrack/internal/modules/reader/service"
	readerusecase "readtrack/internal/modules/reader/usecase"
	sessioninadapter "readtrack/internal/modules/session/adapter/in"
	sessionoutadapter "readtrack/internal/modules/session/adapter/out"
	sessionin "readtrack/internal/modules/session/port/in"
	sessionservice "readtrack/internal/modules/session/service"
	sessionusecase "readtrack/internal/modules/session/usecase"
	"readtrack/internal/platform/clock"
	"readtrack/internal/platform/config"
	"readtrack/internal/platform/id"
	"readtrack/internal/platform/kvstore"
	"readtrack/internal/platform/logging"
	"readtrack/internal/platform/sched"
	uiapp "readtrack/internal/ui/app"
)

type App struct {
	Log *zap.Logger

	LibraryCLI libraryinadapter.CLIHandler
	QuoteCLI   quoteinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler
	ReaderCLI  readerinadapter.CLIHandler
	ReaderTUI  readerinadapter.TUIHandler

	library  libraryin.Usecase
	quotes   quotein.Usecase
	sessions sessionin.Usecase
	store    *kvstore.Store
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store := kvstore.New(provider, log)

	clk := clock.SystemClock{}
	ids := id.NewTimeSequence(clk)

	libraryUC := libraryusecase.NewInteractor(libraryservice.NewBookService(
		ctx, clk, ids, libraryoutadapter.NewKVBookStore(store), log.Named("library"),
	))

	quoteUC := quoteusecase.NewInteractor(
		quoteservice.NewQuoteService(ctx, clk, ids, quoteoutadapter.NewKVQuoteStore(store), log.Named("quote")),
		quoteoutadapter.NewLibraryTitles(libraryUC),
	)

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(ctx, clk, ids, sessionoutadapter.NewKVSessionStore(store), log.Named("session")),
		sessionoutadapter.NewLibraryCatalog(libraryUC),
		sessionoutadapter.NewVaultNoteWriter(cfg.VaultPath),
		log.Named("session"),
	)

	books := readeroutadapter.NewLibraryBooks(libraryUC)
	events := readerusecase.NewEvents()
	desk := readerservice.NewDesk(
		ctx,
		sched.Real{},
		books,
		readeroutadapter.NewSessionSink(sessionUC),
		events,
		cfg.Reader.Speed,
		cfg.Reader.SessionMinutes,
		log.Named("desk"),
	)
	importer := readerservice.NewExcerptImporter(
		readeroutadapter.NewLocalMarkdownReader(),
		readeroutadapter.NewLocalPDFReader(),
		books,
	)
	readerUC := readerusecase.NewInteractor(desk, importer, events)

	log.Debug("app ready",
		zap.String("backend", cfg.Backend),
		zap.String("data_dir", cfg.DataDir),
	)

	return &App{
		Log:        log,
		LibraryCLI: libraryinadapter.NewCLIHandler(libraryUC),
		QuoteCLI:   quoteinadapter.NewCLIHandler(quoteUC),
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		ReaderCLI:  readerinadapter.NewCLIHandler(readerUC),
		ReaderTUI:  readerinadapter.NewTUIHandler(readerUC),
		library:    libraryUC,
		quotes:     quoteUC,
		sessions:   sessionUC,
		store:      store,
	}, nil
}

func newProvider(ctx context.Context, cfg config.Config) (kvstore.Provider, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return kvstore.NewMemoryProvider(), nil
	case config.BackendFile:
		p, err := kvstore.NewFileProvider(cfg.StateDir)
		if err != nil {
			return nil, fmt.Errorf("new file provider: %w", err)
		}
		return p, nil
	default:
		p, err := kvstore.NewSQLiteProvider(ctx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("new sqlite provider: %w", err)
		}
		return p, nil
	}
}

// Close stops the desk timers, writes every collection back and releases
// the storage backend. A failed write does not stop the other collections
// from flushing.
func (a *App) Close(ctx context.Context) error {
	a.ReaderCLI.Close()

	var g errgroup.Group
	g.Go(func() error { return a.library.Flush(ctx) })
	g.Go(func() error { return a.quotes.Flush(ctx) })
	g.Go(func() error { return a.sessions.Flush(ctx) })
	flushErr := g.Wait()

	closeErr := a.store.Close()
	_ = a.Log.Sync()
	return errors.Join(flushErr, closeErr)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.LibraryCLI, app.QuoteCLI, app.SessionCLI, app.ReaderTUI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	unsubscribe := app.ReaderTUI.Subscribe(uiapp.DeskEvents(program.Send))
	defer unsubscribe()
	_, err := program.Run()
	return err
}
