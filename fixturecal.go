// Package fixturecal keeps a sports team's calendar synchronized with
// fixtures scraped from public web sources. The engine owns the
// reconciliation core: venue entity resolution, channel prioritization,
// candidate fixture assembly, and the insert/update/skip decision per
// fixture. Scraping, calendar transport and notification delivery are
// external collaborators that exchange plain data with the engine.
package fixturecal

import (
	"time"

	"github.com/fixturecal/fixturecal/pkg/calendar"
	"github.com/fixturecal/fixturecal/pkg/channels"
	"github.com/fixturecal/fixturecal/pkg/errors"
	"github.com/fixturecal/fixturecal/pkg/fixtures"
	"github.com/fixturecal/fixturecal/pkg/logging"
	"github.com/fixturecal/fixturecal/pkg/reconcile"
	"github.com/fixturecal/fixturecal/pkg/sources"
	"github.com/fixturecal/fixturecal/pkg/venues"
)

// Engine runs reconciliation cycles. It is designed for strictly
// sequential use: one registry load, N fixtures processed one at a time,
// one registry save. Run at most one cycle at a time.
type Engine struct {
	config *config
}

// Input is everything one sync cycle consumes, already resolved to plain
// data by the external scraping and calendar collaborators.
type Input struct {
	// Rows are the raw fixture tuples from the fixtures site.
	Rows []sources.FixtureRow
	// Listings are raw channel candidates keyed by calendar date.
	Listings sources.Listings
	// Stadiums are permalink detail-fetch results to feed the registry.
	Stadiums []sources.StadiumDetail
	// Existing maps fixture identity to the persisted event snapshot.
	Existing map[string]*calendar.Snapshot
}

// FixtureDecision pairs a candidate fixture with its decision.
type FixtureDecision struct {
	Fixture  *fixtures.Fixture
	Decision reconcile.Decision
}

// Result is the outcome of one cycle.
type Result struct {
	// Decisions in input order, one per well-formed fixture row.
	Decisions []FixtureDecision
	// Summary counts inserted/updated/notified/skipped fixtures.
	Summary reconcile.Summary
	// Digest is the rendered notification message, empty when nothing is
	// notify-worthy.
	Digest string
	// NextVenueCheck is the fixture whose stadium detail the caller
	// should fetch before the next cycle, nil when none qualifies.
	NextVenueCheck *fixtures.Fixture
	// VenuesDirty reports whether the registry had unsaved mutations at
	// the end of the cycle (true only if the save failed).
	VenuesDirty bool
}

// New creates an Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return &Engine{config: cfg}, nil
}

// Cycle runs one full reconciliation pass: load the venue registry, apply
// stadium details, build candidate fixtures, decide each against the
// existing snapshot, and persist the registry if it changed. A registry
// save failure is reported in the returned error but does not invalidate
// the decisions; in-memory state is already reflected in them and the
// next cycle retries the write.
func (e *Engine) Cycle(input *Input) (*Result, error) {
	if input == nil {
		return nil, errors.NewValidationError("input", "must not be nil")
	}

	registry := venues.Open(e.config.registryPath, e.config.registryOptions()...)
	logging.Info().
		Int("venues", registry.Len()).
		Int("rows", len(input.Rows)).
		Msg("Starting sync cycle")

	for _, detail := range input.Stadiums {
		if err := registry.Update(detail.Team, detail.Stadium, detail.Location); err != nil {
			if errors.IsQualityRejected(err) {
				logging.Info().Err(err).Msg("Stadium detail rejected")
			} else {
				logging.Warn().Err(err).Str("team", detail.Team).Msg("Stadium detail skipped")
			}
		}
	}

	builder := fixtures.NewBuilder(registry, channels.NewResolver(), e.config.teamName, e.config.homeVenue)
	candidates := builder.BuildAll(input.Rows, input.Listings)

	result := &Result{Decisions: make([]FixtureDecision, 0, len(candidates))}
	for _, f := range candidates {
		event := calendar.Render(f)
		decision := reconcile.Decide(event, input.Existing[f.ID])
		result.Decisions = append(result.Decisions, FixtureDecision{Fixture: f, Decision: decision})
		result.Summary.Add(decision)

		logging.Debug().
			Str("fixture", f.ID).
			Str("action", string(decision.Action)).
			Msg("Decided fixture")
	}

	result.Digest = reconcile.Digest(e.config.digestHeader, decisionsOf(result.Decisions))
	result.NextVenueCheck = fixtures.NextVenueCheck(candidates, e.config.now())

	var saveErr error
	if err := registry.Save(); err != nil {
		logging.Error().Err(err).Msg("Venue store save failed, will retry next cycle")
		saveErr = err
	}
	result.VenuesDirty = registry.Dirty()

	logging.Info().
		Int("inserted", result.Summary.Inserted).
		Int("updated", result.Summary.Updated).
		Int("skipped", result.Summary.Skipped).
		Msg("Cycle finished")

	return result, saveErr
}

// decisionsOf strips the fixture pairing for digest rendering.
func decisionsOf(paired []FixtureDecision) []reconcile.Decision {
	out := make([]reconcile.Decision, len(paired))
	for i, p := range paired {
		out[i] = p.Decision
	}
	return out
}

// defaultNow is the engine's default time source.
func defaultNow() time.Time {
	return time.Now().UTC()
}
