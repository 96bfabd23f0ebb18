package predictiondb

import (
	"context"
	"fmt"

	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
	"github.com/uptrace/bun"
)

// BunRepository stores predictions in Postgres.
type BunRepository struct {
	DB *bun.DB
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{DB: db}
}

// ListAll returns predictions in insertion order.
func (r *BunRepository) ListAll(ctx context.Context) ([]predictiondomain.Prediction, error) {
	var records []PredictionRecord
	if err := r.DB.NewSelect().Model(&records).Order("seq ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}

	out := make([]predictiondomain.Prediction, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

// Append inserts a prediction within a transaction.
func (r *BunRepository) Append(ctx context.Context, p predictiondomain.Prediction) error {
	if p.ID == "" {
		return fmt.Errorf("prediction id is required")
	}

	return r.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(toRecord(p)).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert prediction: %w", err)
		}
		return nil
	})
}
