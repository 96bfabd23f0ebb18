package matchdomain

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a match in the source document.
type Status string

const (
	StatusUpcoming Status = "UPCOMING"
	StatusFinished Status = "FINISHED"
)

// Score is a final result.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Match is a fixture as published in the match document.
type Match struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
	Date     string `json:"date"`
	Status   Status `json:"status"`
	Score    *Score `json:"score,omitempty"`
	HomeFlag string `json:"homeFlag,omitempty"`
	AwayFlag string `json:"awayFlag,omitempty"`
}

// Description is the "<home> vs <away>" label predictions refer to.
func (m Match) Description() string {
	return m.HomeTeam + " vs " + m.AwayTeam
}

// dateLayouts are tried in order. Layouts without an offset are read in the
// caller's location.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Kickoff parses the match date.
func (m Match) Kickoff(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s := strings.TrimSpace(m.Date)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized match date %q", m.Date)
}
