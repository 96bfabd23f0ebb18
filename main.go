package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/scoreline-bot/app"
	predictionexport "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/infrastructure/export"
	"github.com/Black-And-White-Club/scoreline-bot/config"
	"github.com/Black-And-White-Club/scoreline-bot/internal/observability"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "scoreline-bot",
		Usage: "Telegram bot for match schedules and score predictions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "Path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the bot and the HTTP facade",
				Action: serve,
			},
			{
				Name:  "export",
				Usage: "write every stored prediction to an XLSX workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: "predictions.xlsx", Usage: "output file"},
				},
				Action: export,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat, os.Stdout)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg, logger, app.Options{})
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	runErr := application.Run(ctx)
	if err := application.Close(); err != nil {
		logger.Error("Error during shutdown", slog.Any("error", err))
	}
	if runErr != nil {
		return runErr
	}
	logger.Info("Application shut down gracefully")
	return nil
}

func export(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat, os.Stderr)
	ctx := context.Background()

	repo, closeRepo, err := app.OpenPredictionRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	preds, err := repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load predictions: %w", err)
	}

	out := c.String("out")
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := predictionexport.WriteXLSX(f, preds); err != nil {
		f.Close()
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("Exported predictions", slog.Int("count", len(preds)), slog.String("file", out))
	return nil
}
