package conversation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	conversationservice "github.com/Black-And-White-Club/scoreline-bot/app/modules/conversation/application"
	"github.com/Black-And-White-Club/scoreline-bot/app/modules/conversation/infrastructure/sessions"
	"github.com/Black-And-White-Club/scoreline-bot/internal/observability"
	"go.opentelemetry.io/otel/trace"
)

// Module represents the conversation module: the prediction flow and the
// sweeper that expires abandoned sessions.
type Module struct {
	ConversationService conversationservice.Service
	sweeper             *sessions.Sweeper
	logger              *slog.Logger
	cancel              context.CancelFunc
	wg                  sync.WaitGroup
}

// NewConversationModule creates and initializes the conversation module.
func NewConversationModule(
	ctx context.Context,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics observability.Metrics,
	matches conversationservice.MatchSource,
	predictions conversationservice.PredictionSink,
	store sessions.Store,
	opts conversationservice.Options,
	sweepInterval time.Duration,
) *Module {
	logger.InfoContext(ctx, "conversation.NewConversationModule initializing",
		slog.Duration("ttl", opts.TTL),
		slog.Bool("require_email", opts.RequireEmail),
	)

	machine := conversationservice.NewMachine(
		matches, predictions, store, sessions.NewMemoryEmailBook(), opts, logger, tracer, metrics,
	)

	return &Module{
		ConversationService: machine,
		sweeper:             sessions.NewSweeper(store, sweepInterval, logger, metrics),
		logger:              logger,
	}
}

// Run starts the session sweeper in the background.
func (m *Module) Run(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.sweeper.Run(ctx)
	}()
}

// Close stops the sweeper and waits for it to exit.
func (m *Module) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	m.logger.Info("Conversation module stopped")
	return nil
}
