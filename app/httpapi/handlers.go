package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	matchdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/domain"
	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
	predictionexport "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/infrastructure/export"
	"go.opentelemetry.io/otel/trace"
)

const indexBody = "GET request to the homepage"

// MatchLister is the match query the facade exposes.
type MatchLister interface {
	ListMatches(ctx context.Context) ([]matchdomain.Match, error)
}

// PredictionLister feeds the workbook export.
type PredictionLister interface {
	ListAll(ctx context.Context) ([]predictiondomain.Prediction, error)
}

// Handlers serves the HTTP facade.
type Handlers struct {
	matches     MatchLister
	predictions PredictionLister
	logger      *slog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(matches MatchLister, predictions PredictionLister, logger *slog.Logger, tracer trace.Tracer) *Handlers {
	return &Handlers{
		matches:     matches,
		predictions: predictions,
		logger:      logger,
		tracer:      tracer,
		now:         time.Now,
	}
}

func (h *Handlers) HandleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexBody))
}

func (h *Handlers) HandleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleMatches returns the full match document as an array.
func (h *Handlers) HandleMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Handlers.HandleMatches")
	defer span.End()

	matches, err := h.matches.ListMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Error reading match data", slog.Any("error", err))
		span.RecordError(err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load match data."})
		return
	}
	if matches == nil {
		matches = []matchdomain.Match{}
	}
	writeJSON(w, http.StatusOK, matches)
}

// HandlePredictionsXLSX streams every stored prediction as a workbook.
func (h *Handlers) HandlePredictionsXLSX(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Handlers.HandlePredictionsXLSX")
	defer span.End()

	preds, err := h.predictions.ListAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Error reading predictions", slog.Any("error", err))
		span.RecordError(err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load predictions."})
		return
	}

	var buf bytes.Buffer
	if err := predictionexport.WriteXLSX(&buf, preds); err != nil {
		h.logger.ErrorContext(ctx, "Error rendering predictions workbook", slog.Any("error", err))
		span.RecordError(err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to export predictions."})
		return
	}

	filename := "predictions-" + h.now().UTC().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", predictionexport.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
