package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Run starts the router, the sweeper, the HTTP server and the Telegram gateway
// and blocks until ctx is done or one of them fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	run := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				app.Logger.ErrorContext(ctx, "Component stopped with error", slog.String("component", name), slog.Any("error", err))
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
				cancel()
			}
		}()
	}

	run("router", app.Router.Run)

	select {
	case <-app.Router.Running():
	case <-ctx.Done():
		wg.Wait()
		return errors.Join(errs...)
	}
	app.Logger.InfoContext(ctx, "Watermill router running")

	app.ConversationModule.Run(ctx)
	run("http", app.HTTPServer.Run)
	if app.Gateway != nil {
		run("telegram", app.Gateway.Run)
	}

	<-ctx.Done()
	app.Logger.Info("Shutting down application")
	if err := app.Router.Close(); err != nil {
		app.Logger.Error("Failed to close router", slog.Any("error", err))
	}
	wg.Wait()

	return errors.Join(errs...)
}
