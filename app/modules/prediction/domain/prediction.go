package predictiondomain

import "time"

// Score is a predicted result. Both values are non-negative once accepted.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Prediction is one user's guess for one match. Predictions are append-only.
type Prediction struct {
	ID         string     `json:"id,omitempty"`
	User       string     `json:"user"`
	Match      string     `json:"match"`
	Date       string     `json:"date"`
	Prediction Score      `json:"prediction"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
	UserID     int64      `json:"userId,omitempty"`
	Email      string     `json:"email,omitempty"`
}

// BelongsTo reports whether p was made by the given user. The numeric id wins
// when both sides carry one; older records only have the display name.
func (p Prediction) BelongsTo(userID int64, user string) bool {
	if p.UserID != 0 && userID != 0 {
		return p.UserID == userID
	}
	return p.User == user
}

// MatchGroup collects the predictions made for one match.
type MatchGroup struct {
	Match       string
	Date        string
	Predictions []Prediction
}

// GroupByMatch groups predictions by match description, ordering groups by
// first appearance and keeping insertion order inside each group.
func GroupByMatch(preds []Prediction) []MatchGroup {
	index := make(map[string]int)
	var groups []MatchGroup
	for _, p := range preds {
		i, ok := index[p.Match]
		if !ok {
			i = len(groups)
			index[p.Match] = i
			groups = append(groups, MatchGroup{Match: p.Match, Date: p.Date})
		}
		groups[i].Predictions = append(groups[i].Predictions, p)
	}
	return groups
}
