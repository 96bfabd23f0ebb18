package predictionmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating predictions table...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS predictions (
				seq BIGSERIAL PRIMARY KEY,
				id TEXT NOT NULL UNIQUE,
				user_name TEXT NOT NULL,
				user_id BIGINT,
				email TEXT,
				match_label TEXT NOT NULL,
				match_date TEXT NOT NULL,
				home_score INTEGER NOT NULL CHECK (home_score >= 0),
				away_score INTEGER NOT NULL CHECK (away_score >= 0),
				submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
		`)
		if err != nil {
			return fmt.Errorf("failed to create predictions table: %w", err)
		}

		fmt.Println("Predictions table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping predictions table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS predictions;`); err != nil {
			return fmt.Errorf("failed to drop predictions table: %w", err)
		}
		return nil
	})
}
