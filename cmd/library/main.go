package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bookdesk/library-catalog/internal/app"
	"github.com/bookdesk/library-catalog/internal/pkg/config"
	"github.com/bookdesk/library-catalog/pkg/logger"
)

//	@title						Library Catalog API
//	@version					1.0
//	@description				Read-only view of the library catalog with librarian login.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}

	runErr := a.Run(ctx, os.Stdin, os.Stdout)
	if err := a.Close(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to release backends")
	}
	if runErr != nil {
		log.Fatal().Err(runErr).Msg("session aborted")
	}
}
