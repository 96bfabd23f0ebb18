package matchdomain

import (
	"testing"
	"time"
)

func TestMatch_Kickoff(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	tests := []struct {
		name    string
		date    string
		want    time.Time
		wantErr bool
	}{
		{name: "rfc3339 with zone", date: "2026-10-20T18:00:00Z", want: time.Date(2026, 10, 20, 18, 0, 0, 0, time.UTC)},
		{name: "rfc3339 with offset", date: "2026-10-20T20:00:00+02:00", want: time.Date(2026, 10, 20, 18, 0, 0, 0, time.UTC)},
		{name: "local seconds", date: "2026-10-20T18:00:00", want: time.Date(2026, 10, 20, 18, 0, 0, 0, madrid)},
		{name: "local minutes", date: "2026-10-20T18:00", want: time.Date(2026, 10, 20, 18, 0, 0, 0, madrid)},
		{name: "space separated", date: " 2026-10-20 18:00 ", want: time.Date(2026, 10, 20, 18, 0, 0, 0, madrid)},
		{name: "date only", date: "2026-10-20", want: time.Date(2026, 10, 20, 0, 0, 0, 0, madrid)},
		{name: "garbage", date: "next tuesday", wantErr: true},
		{name: "empty", date: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match{Date: tt.date}.Kickoff(madrid)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("Kickoff(%q) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestMatch_Description(t *testing.T) {
	m := Match{HomeTeam: "A", AwayTeam: "B"}
	if got := m.Description(); got != "A vs B" {
		t.Errorf("Description() = %q", got)
	}
}
