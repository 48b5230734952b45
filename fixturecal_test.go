package fixturecal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixturecal/fixturecal/pkg/calendar"
	"github.com/fixturecal/fixturecal/pkg/reconcile"
	"github.com/fixturecal/fixturecal/pkg/sources"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()

	engine, err := New(
		WithTeam("Celta", "Balaídos, Vigo"),
		WithRegistryPath(filepath.Join(t.TempDir(), "venues.yaml")),
		WithDigestHeader("Celta 2024-2025"),
		WithClock(func() time.Time {
			return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		}),
	)
	require.NoError(t, err)
	return engine
}

func testInput() *Input {
	return &Input{
		Rows: []sources.FixtureRow{
			{
				Home:         "Celta de Vigo",
				Away:         "Real Madrid",
				KickoffISO:   "2025-03-02T20:00:00Z",
				HasExactTime: true,
				Competition:  "LaLiga",
				Permalink:    "https://example.com/p/123",
			},
			{
				Home:         "Sevilla",
				Away:         "Celta de Vigo",
				KickoffISO:   "2025-03-16T16:15:00Z",
				HasExactTime: true,
				Competition:  "LaLiga",
				Permalink:    "https://example.com/p/124",
			},
		},
		Listings: sources.Listings{
			"2025-03-02": {"DAZN 1", "Hellotickets (comprar)"},
			"2025-03-16": {"Movistar LaLiga"},
		},
		Stadiums: []sources.StadiumDetail{
			{Team: "Sevilla", Stadium: "Ramón Sánchez-Pizjuán", Location: "Sevilla"},
		},
		Existing: map[string]*calendar.Snapshot{},
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(WithTeam("", ""))
	assert.Error(t, err)

	_, err = New(WithSimilarityThreshold(1.5))
	assert.Error(t, err)
}

func TestCycleNilInput(t *testing.T) {
	engine := testEngine(t)
	_, err := engine.Cycle(nil)
	assert.Error(t, err)
}

func TestCycleFirstRun(t *testing.T) {
	engine := testEngine(t)

	result, err := engine.Cycle(testInput())
	require.NoError(t, err)
	require.Len(t, result.Decisions, 2)

	for _, d := range result.Decisions {
		assert.Equal(t, reconcile.Insert, d.Decision.Action)
	}
	assert.Equal(t, 2, result.Summary.Inserted)
	assert.Equal(t, 0, result.Summary.Skipped)

	// Venue enrichment flows through to the rendered events.
	first := result.Decisions[0]
	assert.Equal(t, "20250302_cel_rea", first.Fixture.ID)
	assert.Equal(t, "Balaídos, Vigo", first.Fixture.VenueLabel)
	assert.Equal(t, "DAZN", first.Fixture.ChannelShort)

	second := result.Decisions[1]
	assert.Equal(t, "Sevilla", second.Fixture.VenueLabel)

	assert.Contains(t, result.Digest, "Celta 2024-2025")
	assert.Contains(t, result.Digest, "Nuevo")

	require.NotNil(t, result.NextVenueCheck)
	assert.Equal(t, "20250302_cel_rea", result.NextVenueCheck.ID)

	// The stadium detail was persisted.
	assert.False(t, result.VenuesDirty)
}

func TestCycleIdempotent(t *testing.T) {
	engine := testEngine(t)
	input := testInput()

	first, err := engine.Cycle(input)
	require.NoError(t, err)

	// Feed the rendered events back as the persisted snapshots.
	input.Existing = map[string]*calendar.Snapshot{}
	for _, d := range first.Decisions {
		event := d.Decision.Event
		input.Existing[event.MatchID] = &calendar.Snapshot{
			ID:              event.MatchID,
			Title:           event.Title,
			Description:     event.Description,
			Location:        event.Location,
			Start:           event.Start,
			ReminderMinutes: event.ReminderMinutes,
		}
	}

	second, err := engine.Cycle(input)
	require.NoError(t, err)
	require.Len(t, second.Decisions, 2)

	for _, d := range second.Decisions {
		assert.Equal(t, reconcile.Skip, d.Decision.Action)
	}
	assert.Equal(t, 2, second.Summary.Skipped)
	assert.False(t, second.Summary.HasChanges())
	assert.Empty(t, second.Digest)
	assert.False(t, second.VenuesDirty)
}

func TestCycleNotifiesOnTimeChange(t *testing.T) {
	engine := testEngine(t)
	input := testInput()

	first, err := engine.Cycle(input)
	require.NoError(t, err)

	input.Existing = map[string]*calendar.Snapshot{}
	for _, d := range first.Decisions {
		event := d.Decision.Event
		input.Existing[event.MatchID] = &calendar.Snapshot{
			ID:              event.MatchID,
			Title:           event.Title,
			Description:     event.Description,
			Location:        event.Location,
			Start:           event.Start.Add(-2 * time.Hour),
			ReminderMinutes: event.ReminderMinutes,
		}
	}

	second, err := engine.Cycle(input)
	require.NoError(t, err)

	assert.Equal(t, 2, second.Summary.Notified)
	assert.Contains(t, second.Digest, "Cambio")
	for _, d := range second.Decisions {
		require.Equal(t, reconcile.UpdateNotify, d.Decision.Action)
		require.Len(t, d.Decision.Changes, 1)
		assert.Contains(t, d.Decision.Changes[0], "time:")
	}
}
