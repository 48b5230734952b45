package fixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	kickoff := time.Date(2025, 3, 2, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		home string
		away string
		want string
	}{
		{
			name: "regular pairing",
			home: "Celta de Vigo",
			away: "Real Madrid",
			want: "20250302_cel_rea",
		},
		{
			name: "short names kept whole",
			home: "Eibar",
			away: "AZ",
			want: "20250302_eib_az",
		},
		{
			name: "spaces inside prefix removed",
			home: "FC Barcelona",
			away: "Real Madrid",
			want: "20250302_fc_rea",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Identity(tt.home, tt.away, kickoff))
		})
	}
}

func TestIdentityUsesUTCDate(t *testing.T) {
	// 00:30 CET on March 2nd is still March 1st in UTC; the identity
	// must follow the UTC calendar day.
	madrid := time.FixedZone("CET", 3600)
	kickoff := time.Date(2025, 3, 2, 0, 30, 0, 0, madrid)

	assert.Equal(t, "20250301_cel_rea", Identity("Celta de Vigo", "Real Madrid", kickoff))
}

func TestSeason(t *testing.T) {
	tests := []struct {
		name    string
		kickoff time.Time
		want    string
	}{
		{"spring belongs to previous season", time.Date(2025, 3, 2, 20, 0, 0, 0, time.UTC), "2024-2025"},
		{"july starts the new season", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), "2025-2026"},
		{"autumn belongs to current season", time.Date(2025, 10, 12, 18, 0, 0, 0, time.UTC), "2025-2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Season(tt.kickoff))
		})
	}
}
