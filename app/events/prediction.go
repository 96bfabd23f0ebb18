package events

import "time"

// PredictionSubmittedV1 is published after a prediction has been persisted.
const PredictionSubmittedV1 = "prediction.submitted.v1"

// PredictionSubmittedPayloadV1 describes a persisted prediction.
type PredictionSubmittedPayloadV1 struct {
	PredictionID string    `json:"prediction_id"`
	ChatID       int64     `json:"chat_id"`
	UserID       int64     `json:"user_id,omitempty"`
	User         string    `json:"user"`
	Match        string    `json:"match"`
	MatchDate    string    `json:"match_date"`
	Home         int       `json:"home"`
	Away         int       `json:"away"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
