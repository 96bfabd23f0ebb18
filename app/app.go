package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/scoreline-bot/app/adapters/telegram"
	"github.com/Black-And-White-Club/scoreline-bot/app/eventbus"
	"github.com/Black-And-White-Club/scoreline-bot/app/events"
	"github.com/Black-And-White-Club/scoreline-bot/app/httpapi"
	"github.com/Black-And-White-Club/scoreline-bot/app/modules/chat"
	"github.com/Black-And-White-Club/scoreline-bot/app/modules/conversation"
	conversationservice "github.com/Black-And-White-Club/scoreline-bot/app/modules/conversation/application"
	"github.com/Black-And-White-Club/scoreline-bot/app/modules/match"
	matchservice "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/application"
	matchdb "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction"
	"github.com/Black-And-White-Club/scoreline-bot/config"
	"github.com/Black-And-White-Club/scoreline-bot/internal/observability"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// Per-IP limit for the HTTP facade.
const (
	httpRateLimit = 10
	httpRateBurst = 20
)

// App wires the modules, the event bus and the outer surfaces together.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry
	EventBus eventbus.EventBus
	Router   *message.Router

	MatchModule        *match.Module
	PredictionModule   *prediction.Module
	ConversationModule *conversation.Module
	ChatModule         *chat.Module

	HTTPServer *httpapi.Server
	Gateway    *telegram.Gateway

	closers []func() error
}

// Options overrides collaborators that are normally built from the config.
type Options struct {
	// Bot replaces the Telegram client. Nil connects with the configured token;
	// an empty token runs without the gateway.
	Bot telegram.BotAPI
}

// NewApp initializes the application with the necessary services and configuration.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*App, error) {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: observability.NewRegistry(),
	}
	if err := app.initialize(ctx, opts); err != nil {
		if cerr := app.Close(); cerr != nil {
			logger.ErrorContext(ctx, "Failed to release resources after init error", slog.Any("error", cerr))
		}
		return nil, err
	}
	return app, nil
}

func (app *App) initialize(ctx context.Context, opts Options) error {
	cfg := app.Config
	logger := app.Logger
	tracer := observability.Tracer()
	metrics := observability.NewPrometheusMetrics(app.Registry)

	logger.InfoContext(ctx, "Starting scoreline-bot", slog.String("config", cfg.Redacted()))

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = bus
	app.closers = append(app.closers, bus.Close)

	watermillLogger := watermill.NewSlogLogger(logger)
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 5 * time.Second}, watermillLogger)
	if err != nil {
		return fmt.Errorf("failed to create watermill router: %w", err)
	}
	app.Router = router

	poisonQueue, err := middleware.PoisonQueue(bus, events.PoisonQueueV1)
	if err != nil {
		return fmt.Errorf("failed to create poison queue middleware: %w", err)
	}
	router.AddMiddleware(
		middleware.CorrelationID,
		poisonQueue,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			Logger:          watermillLogger,
		}.Middleware,
		middleware.Recoverer,
	)

	predictionRepo, closeRepo, err := OpenPredictionRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	app.closers = append(app.closers, closeRepo)

	sessionStore, closeSessions, err := OpenSessionStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	app.closers = append(app.closers, closeSessions)

	app.MatchModule = match.NewMatchModule(ctx, logger, tracer,
		matchdb.NewJSONRepository(cfg.Storage.MatchesPath),
		matchservice.Options{
			Window:   cfg.Conversation.PredictionWindow,
			Lookback: cfg.Conversation.FinishedLookback,
			Location: cfg.Location(),
		},
	)

	app.PredictionModule, err = prediction.NewPredictionModule(ctx, logger, tracer, metrics, predictionRepo, bus, router)
	if err != nil {
		return fmt.Errorf("failed to initialize prediction module: %w", err)
	}

	app.ConversationModule = conversation.NewConversationModule(ctx, logger, tracer, metrics,
		app.MatchModule.MatchService,
		app.PredictionModule.PredictionService,
		sessionStore,
		conversationservice.Options{TTL: cfg.Sessions.TTL, RequireEmail: cfg.Conversation.RequireEmail},
		cfg.Sessions.SweepInterval,
	)

	app.ChatModule, err = chat.NewChatModule(ctx, logger, tracer, metrics, app.Registry,
		app.MatchModule.MatchService,
		app.PredictionModule.PredictionService,
		app.ConversationModule.ConversationService,
		chat.Options{Rate: cfg.Telegram.RateLimit, Burst: cfg.Telegram.RateBurst},
		bus, router,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize chat module: %w", err)
	}

	bot := opts.Bot
	if bot == nil && cfg.Telegram.Token != "" {
		api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			return fmt.Errorf("failed to connect to telegram: %w", err)
		}
		logger.InfoContext(ctx, "Authorized on Telegram", slog.String("bot", api.Self.UserName))
		bot = api
	}
	if bot != nil {
		app.Gateway = telegram.NewGateway(bot, bus, logger, tracer, cfg.Telegram.PollTimeout)
		app.Gateway.Configure(router)
	} else {
		logger.WarnContext(ctx, "No Telegram token configured; running the HTTP facade only")
	}

	handlers := httpapi.NewHandlers(app.MatchModule.MatchService, app.PredictionModule.PredictionService, logger, tracer)
	app.HTTPServer = httpapi.NewServer(cfg.HTTP.Address, httpapi.NewRouter(handlers, logger, httpapi.RouterOptions{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Gatherer:       app.Registry,
		RateLimit:      rate.Limit(httpRateLimit),
		RateBurst:      httpRateBurst,
	}), logger)

	return nil
}

// Close releases everything NewApp opened, in reverse order.
func (app *App) Close() error {
	var errs []error
	if app.ChatModule != nil {
		errs = append(errs, app.ChatModule.Close())
	}
	if app.ConversationModule != nil {
		errs = append(errs, app.ConversationModule.Close())
	}
	if app.PredictionModule != nil {
		errs = append(errs, app.PredictionModule.Close())
	}
	if app.MatchModule != nil {
		errs = append(errs, app.MatchModule.Close())
	}
	if app.Router != nil {
		errs = append(errs, app.Router.Close())
	}
	for i := len(app.closers) - 1; i >= 0; i-- {
		errs = append(errs, app.closers[i]())
	}
	app.closers = nil
	return errors.Join(errs...)
}
