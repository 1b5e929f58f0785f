// Package app wires configuration, storage backends, services and the two
// front ends (console and optional HTTP surface) into a runnable process.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookdesk/library-catalog/internal/api"
	"github.com/bookdesk/library-catalog/internal/cli"
	"github.com/bookdesk/library-catalog/internal/core/ports"
	"github.com/bookdesk/library-catalog/internal/core/service"
	"github.com/bookdesk/library-catalog/internal/infrastructure/db/flatfile"
	mongodb "github.com/bookdesk/library-catalog/internal/infrastructure/db/mongo"
	redisdb "github.com/bookdesk/library-catalog/internal/infrastructure/db/redis"
	"github.com/bookdesk/library-catalog/internal/pkg/config"
)

const (
	shutdownTimeout = 5 * time.Second
	tokenTTL        = 12 * time.Hour
)

// App owns the loaded stores and the connections backing them.
type App struct {
	cfg      *config.Config
	log      zerolog.Logger
	Catalog  *service.Catalog
	Loans    *service.LoanStore
	checkers []ports.HealthChecker
	closers  []func(context.Context) error
}

type repositories struct {
	books ports.BookRepository
	users ports.UserRepository
	loans ports.LoanRepository
}

// New connects the configured backends and loads the catalog and loans.
// Callers must Close the returned App.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	repos, err := a.openRepositories(ctx)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	a.Catalog, err = service.NewCatalog(ctx, repos.books, repos.users, log)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	a.Loans, err = service.NewLoanStore(ctx, repos.loans, a.Catalog, log)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	return a, nil
}

func (a *App) openRepositories(ctx context.Context) (repositories, error) {
	var (
		repos     repositories
		filePaths []string
	)
	st := a.cfg.Storage

	if a.cfg.UsesMongo() {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: a.cfg.Mongo.URI, Database: a.cfg.Mongo.Database})
		if err != nil {
			return repos, err
		}
		a.closers = append(a.closers, client.Disconnect)
		a.checkers = append(a.checkers, mongodb.NewHealthChecker(db))

		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return repos, err
		}
		if st.Backend == "mongo" {
			repos.books = mongodb.NewBookRepository(db)
			repos.users = mongodb.NewUserRepository(db)
		}
		if st.LoanBackend == "mongo" {
			repos.loans = mongodb.NewLoanRepository(db)
		}
		a.log.Info().Str("database", a.cfg.Mongo.Database).Msg("connected to mongodb")
	}

	if a.cfg.UsesRedis() {
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: a.cfg.Redis.Addr, DB: a.cfg.Redis.DB})
		if err != nil {
			return repos, err
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		a.checkers = append(a.checkers, redisdb.NewHealthChecker(client))
		repos.loans = redisdb.NewLoanRepository(client, a.cfg.Redis.LoansKey, a.log)
		a.log.Info().Str("addr", a.cfg.Redis.Addr).Msg("connected to redis")
	}

	if repos.books == nil {
		repos.books = flatfile.NewBookRepository(st.BooksFile, a.log)
		repos.users = flatfile.NewUserRepository(st.UsersFile)
		filePaths = append(filePaths, st.BooksFile, st.UsersFile)
	}
	if repos.loans == nil {
		repos.loans = flatfile.NewLoanRepository(st.LoansFile, a.log)
		filePaths = append(filePaths, st.LoansFile)
	}
	if len(filePaths) > 0 {
		a.checkers = append(a.checkers, flatfile.NewHealthChecker(filePaths...))
	}

	return repos, nil
}

// Console returns an interactive session bound to the loaded stores.
func (a *App) Console(in io.Reader, out io.Writer) *cli.Console {
	ledger := func(user string) ports.Borrower {
		return a.Loans.Ledger(user)
	}
	return cli.NewConsole(in, out, a.Catalog, ledger, a.log)
}

// Router returns the HTTP surface over the loaded catalog.
func (a *App) Router() *echo.Echo {
	return api.NewRouter(api.Deps{
		Catalog:   a.Catalog,
		Auth:      service.NewAuthService(a.cfg.HTTP.LibrarianName, a.cfg.HTTP.LibrarianPasswordHash, a.cfg.HTTP.JWTSecret, tokenTTL),
		Checkers:  a.checkers,
		JWTSecret: a.cfg.HTTP.JWTSecret,
		Logger:    a.log,
	})
}

// Run serves the console on in/out until the session ends or ctx is
// cancelled. The HTTP surface, when enabled, lives for the same span.
func (a *App) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	var srv *echo.Echo
	if a.cfg.HTTP.Enabled {
		if a.cfg.HTTP.LibrarianPasswordHash == "" {
			a.log.Warn().Msg("LIBRARIAN_PASSWORD_HASH is empty, librarian login is disabled")
		}
		srv = a.Router()
		addr := ":" + a.cfg.HTTP.Port
		go func() {
			a.log.Info().Str("addr", addr).Msg("http server listening")
			if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.Error().Err(err).Msg("http server stopped")
			}
		}()
	}

	done := make(chan error, 1)
	go func() {
		done <- a.Console(in, out).Run(ctx)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		a.log.Info().Msg("shutdown signal received")
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			a.log.Error().Err(serr).Msg("http server shutdown failed")
		}
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close releases backend connections in reverse order of acquisition.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close backends: %w", err)
	}
	return nil
}
