package predictiondb

import (
	"time"

	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
	"github.com/uptrace/bun"
)

// PredictionRecord is the database row for a prediction.
type PredictionRecord struct {
	bun.BaseModel `bun:"table:predictions,alias:p"`

	Seq         int64     `bun:"seq,pk,autoincrement"`
	ID          string    `bun:"id,notnull,unique"`
	UserName    string    `bun:"user_name,notnull"`
	UserID      int64     `bun:"user_id,nullzero"`
	Email       string    `bun:"email,nullzero"`
	Match       string    `bun:"match_label,notnull"`
	MatchDate   string    `bun:"match_date,notnull"`
	HomeScore   int       `bun:"home_score,notnull"`
	AwayScore   int       `bun:"away_score,notnull"`
	SubmittedAt time.Time `bun:"submitted_at,nullzero,notnull,default:current_timestamp"`
}

func toRecord(p predictiondomain.Prediction) *PredictionRecord {
	rec := &PredictionRecord{
		ID:        p.ID,
		UserName:  p.User,
		UserID:    p.UserID,
		Email:     p.Email,
		Match:     p.Match,
		MatchDate: p.Date,
		HomeScore: p.Prediction.Home,
		AwayScore: p.Prediction.Away,
	}
	if p.Timestamp != nil {
		rec.SubmittedAt = p.Timestamp.UTC()
	}
	return rec
}

func (r *PredictionRecord) toDomain() predictiondomain.Prediction {
	p := predictiondomain.Prediction{
		ID:         r.ID,
		User:       r.UserName,
		Match:      r.Match,
		Date:       r.MatchDate,
		Prediction: predictiondomain.Score{Home: r.HomeScore, Away: r.AwayScore},
		UserID:     r.UserID,
		Email:      r.Email,
	}
	if !r.SubmittedAt.IsZero() {
		ts := r.SubmittedAt
		p.Timestamp = &ts
	}
	return p
}
