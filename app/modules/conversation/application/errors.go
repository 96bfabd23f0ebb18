package conversationservice

import "errors"

var (
	// ErrNoSession indicates the chat has no prediction flow in progress.
	ErrNoSession = errors.New("no active prediction session")

	// ErrNoCandidates indicates there is nothing to predict right now.
	ErrNoCandidates = errors.New("no matches available for prediction")

	// ErrEmailRequired indicates the chat must register an email before predicting.
	ErrEmailRequired = errors.New("email required before predicting")

	// ErrSaveFailed indicates the prediction could not be persisted. The session is gone.
	ErrSaveFailed = errors.New("failed to save prediction")
)
