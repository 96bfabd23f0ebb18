package predictionmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			CREATE INDEX IF NOT EXISTS idx_predictions_user_id ON predictions (user_id);
			CREATE INDEX IF NOT EXISTS idx_predictions_match ON predictions (match_label);
		`)
		if err != nil {
			return fmt.Errorf("failed to create prediction indices: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			DROP INDEX IF EXISTS idx_predictions_match;
			DROP INDEX IF EXISTS idx_predictions_user_id;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop prediction indices: %w", err)
		}
		return nil
	})
}
