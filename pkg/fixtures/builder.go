package fixtures

import (
	"strings"
	"time"

	"github.com/fixturecal/fixturecal/pkg/channels"
	"github.com/fixturecal/fixturecal/pkg/errors"
	"github.com/fixturecal/fixturecal/pkg/logging"
	"github.com/fixturecal/fixturecal/pkg/sources"
	"github.com/fixturecal/fixturecal/pkg/venues"
)

// Builder turns raw fixture rows into enriched candidate fixtures using
// the venue registry and channel resolver.
type Builder struct {
	registry *venues.Registry
	resolver *channels.Resolver

	// teamName identifies the followed team in scraped home-team text;
	// homeVenue is the configured location for its own ground.
	teamName  string
	homeVenue string
}

// NewBuilder creates a Builder. teamName and homeVenue configure the
// venue fallback for the followed team's home fixtures.
func NewBuilder(registry *venues.Registry, resolver *channels.Resolver, teamName, homeVenue string) *Builder {
	return &Builder{
		registry:  registry,
		resolver:  resolver,
		teamName:  strings.ToLower(teamName),
		homeVenue: homeVenue,
	}
}

// Build assembles one candidate fixture from a raw row plus the TV
// listings for its date. Malformed rows yield a ParseError.
func (b *Builder) Build(row sources.FixtureRow, listings sources.Listings) (*Fixture, error) {
	if row.Home == "" || row.Away == "" {
		return nil, errors.NewValidationError("teams", "home and away must not be empty")
	}

	kickoff, err := time.Parse(time.RFC3339, row.KickoffISO)
	if err != nil {
		return nil, errors.NewParseError("time", row.KickoffISO, err)
	}
	kickoff = kickoff.UTC()

	f := &Fixture{
		ID:          Identity(row.Home, row.Away, kickoff),
		Home:        row.Home,
		Away:        row.Away,
		Competition: row.Competition,
		Kickoff:     kickoff,
		TBD:         isTBD(row.HasExactTime, kickoff),
		Score:       row.Score,
		Status:      row.Status,
		Permalink:   row.Permalink,
		Season:      Season(kickoff),
		DateKey:     kickoff.Format("2006-01-02"),
	}

	f.VenueLabel = b.venue(row.Home)
	if res := b.resolver.Resolve(listings[f.DateKey]); res != nil {
		f.ChannelShort = res.Short
		f.ChannelFull = res.Full
	}

	return f, nil
}

// BuildAll assembles candidates for every row, skipping malformed rows so
// a single bad record never aborts the cycle.
func (b *Builder) BuildAll(rows []sources.FixtureRow, listings sources.Listings) []*Fixture {
	out := make([]*Fixture, 0, len(rows))
	for _, row := range rows {
		f, err := b.Build(row, listings)
		if err != nil {
			logging.Warn().
				Err(err).
				Str("home", row.Home).
				Str("away", row.Away).
				Msg("Skipping malformed fixture row")
			continue
		}
		out = append(out, f)
	}
	return out
}

// venue resolves the home team's ground, falling back to a generic
// placeholder so the field is never empty.
func (b *Builder) venue(home string) string {
	match, err := b.registry.Lookup(home)
	if err == nil {
		if match.Location != "" {
			return match.Location
		}
		return match.Stadium
	}
	if b.homeVenue != "" && strings.Contains(strings.ToLower(home), b.teamName) {
		return b.homeVenue
	}
	return "Estadio " + home
}

// isTBD reports whether the kickoff time is still unpublished. The
// upstream source historically marks unknown times as exactly midnight,
// so midnight is treated as TBD even when the exact-time flag is set.
func isTBD(hasExactTime bool, kickoff time.Time) bool {
	return !hasExactTime || (kickoff.Hour() == 0 && kickoff.Minute() == 0)
}

// NextVenueCheck selects the fixture whose stadium detail is worth
// refreshing this cycle: the nearest future fixture with a confirmed
// kickoff. Returns nil when nothing qualifies.
func NextVenueCheck(all []*Fixture, now time.Time) *Fixture {
	var next *Fixture
	for _, f := range all {
		if f.TBD || !f.Kickoff.After(now) {
			continue
		}
		if next == nil || f.Kickoff.Before(next.Kickoff) {
			next = f
		}
	}
	return next
}
