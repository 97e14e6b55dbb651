package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/dmitrijs2005/petswap/internal/client/client"
	"github.com/dmitrijs2005/petswap/internal/client/config"
	"github.com/dmitrijs2005/petswap/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/petswap/internal/client/session"
	"github.com/dmitrijs2005/petswap/internal/logging"
)

type App struct {
	config  *config.Config
	api     client.Client
	session *session.Manager
	logger  logging.Logger
	db      *sql.DB
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the local database and builds the API client and session.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	store := metadata.NewTokenStore(metadata.NewSQLiteRepository(db))

	return &App{
		config:  c,
		api:     api,
		session: session.NewManager(api, store, logger),
		logger:  logger,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores the previous session, then serves the REPL until exit.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	printlnFn("Welcome to PetSwap CLI (type 'help' for commands)")

	if s, ok := a.session.Bootstrap(ctx); ok {
		printlnFn("Signed in as", s.User.DisplayName())
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
}

func (a *App) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.Current()
	return ok
}

func (a *App) status() string {
	if s, ok := a.session.Current(); ok {
		return s.User.Email
	}
	return "guest"
}

// token returns the current bearer token or reports that login is needed.
func (a *App) token() (string, bool) {
	s, ok := a.session.Current()
	if !ok {
		printlnFn("Please login first")
		return "", false
	}
	return s.Token, true
}

// fail reports err to the user and returns it unchanged.
func (a *App) fail(ctx context.Context, err error) error {
	a.logger.Debug(ctx, "command failed", "error", err)
	printlnFn(session.UserMessage(err))
	return err
}
