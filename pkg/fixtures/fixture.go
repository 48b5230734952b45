// Package fixtures assembles normalized candidate fixture records from
// raw scraped inputs, enriching them with venue and TV-channel data.
package fixtures

import (
	"fmt"
	"strings"
	"time"
)

// Fixture is an immutable candidate fixture built once per sync cycle.
// The reconciliation engine renders it into an outward event body and
// compares that against the previously persisted event.
type Fixture struct {
	ID           string
	Home         string
	Away         string
	Competition  string
	Kickoff      time.Time
	TBD          bool
	Score        string
	Status       string
	Permalink    string
	Season       string
	DateKey      string
	VenueLabel   string
	ChannelShort string
	ChannelFull  string
}

// Identity computes the deterministic fixture key: the kickoff date plus
// the first three characters of each team name, lower-cased with spaces
// removed. Two fixtures between the same pair on the same calendar day
// collide by design; the upstream source never produces that.
func Identity(home, away string, kickoff time.Time) string {
	id := fmt.Sprintf("%s_%s_%s", kickoff.UTC().Format("20060102"), prefix(home), prefix(away))
	return strings.ReplaceAll(strings.ToLower(id), " ", "")
}

// prefix takes the first three runes of a team name.
func prefix(team string) string {
	runes := []rune(team)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}

// Season derives the season label from the kickoff date: July onwards
// belongs to the season starting that year.
func Season(kickoff time.Time) string {
	year := kickoff.UTC().Year()
	if kickoff.UTC().Month() >= time.July {
		return fmt.Sprintf("%d-%d", year, year+1)
	}
	return fmt.Sprintf("%d-%d", year-1, year)
}
