// Package server initializes and runs the main application server.
// It loads configuration, prepares the store and its schema, and starts
// the HTTP endpoint with graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"todoapi/internal/logging"
	"todoapi/internal/server/config"
	"todoapi/internal/server/httpapi"
	"todoapi/internal/server/services"
	"todoapi/internal/server/shared/db"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	provider    *db.Provider
	userService *services.UserService
	todoService *services.TodoService
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout)

	provider, err := db.NewPostgresProvider(c.DatabaseDSN(), logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(c)
	ts := services.NewTodoService(provider, c)

	return &App{config: c, logger: logger, provider: provider, userService: us, todoService: ts}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.todoService, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	// A store that is down at startup is not fatal: the server comes up
	// and store errors surface per request until the backend returns.
	if err := app.provider.RunMigrations(ctx); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.provider.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err)
	}
}
