package predictionservice

import "errors"

var (
	// ErrNegativeScore indicates a prediction with a negative value reached the service.
	ErrNegativeScore = errors.New("prediction scores must not be negative")

	// ErrIncompletePrediction indicates the user or match is missing.
	ErrIncompletePrediction = errors.New("prediction requires a user and a match")
)
