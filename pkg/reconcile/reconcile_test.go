package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixturecal/fixturecal/pkg/calendar"
)

var kickoff = time.Date(2025, 3, 2, 20, 0, 0, 0, time.UTC)

func testEvent() *calendar.Event {
	return &calendar.Event{
		MatchID:         "20250302_cel_rea",
		Title:           "Celta de Vigo vs Real Madrid | ⚽ LaLiga | 📺 DAZN",
		Description:     "⚽ LaLiga\n📺 Dónde ver: DAZN 1\n📍 Lugar: Balaídos, Vigo\n🔗 Info: https://example.com/p/123",
		Location:        "Balaídos, Vigo",
		Start:           kickoff,
		End:             kickoff.Add(2 * time.Hour),
		ReminderMinutes: []int{60},
	}
}

func snapshotOf(e *calendar.Event) *calendar.Snapshot {
	return &calendar.Snapshot{
		ID:              e.MatchID,
		Title:           e.Title,
		Description:     e.Description,
		Location:        e.Location,
		Start:           e.Start,
		ReminderMinutes: append([]int(nil), e.ReminderMinutes...),
	}
}

func TestDecideInsert(t *testing.T) {
	event := testEvent()
	d := Decide(event, nil)

	assert.Equal(t, Insert, d.Action)
	assert.Same(t, event, d.Event)
	assert.True(t, d.Mutates())
	assert.True(t, d.Notifies())
}

func TestDecideSkipIdentical(t *testing.T) {
	event := testEvent()
	d := Decide(event, snapshotOf(event))

	assert.Equal(t, Skip, d.Action)
	assert.False(t, d.Mutates())
	assert.False(t, d.Notifies())
}

func TestDecideTimeDrift(t *testing.T) {
	event := testEvent()
	existing := snapshotOf(event)
	existing.Start = kickoff.Add(-5 * time.Minute)

	d := Decide(event, existing)
	require.Equal(t, UpdateNotify, d.Action)
	require.Len(t, d.Changes, 1)
	assert.Equal(t, "time: 19:55 -> 20:00", d.Changes[0])
}

func TestDecideTimeDriftAcrossDays(t *testing.T) {
	event := testEvent()
	existing := snapshotOf(event)
	existing.Start = kickoff.Add(-24 * time.Hour)

	d := Decide(event, existing)
	require.Equal(t, UpdateNotify, d.Action)
	require.Len(t, d.Changes, 1)
	assert.Equal(t, "time: 2025-03-01 20:00 -> 2025-03-02 20:00", d.Changes[0])
}

func TestDecideDriftWithinThreshold(t *testing.T) {
	// Sub-minute drift is calendar noise, not a schedule change.
	event := testEvent()
	existing := snapshotOf(event)
	existing.Start = kickoff.Add(-30 * time.Second)

	d := Decide(event, existing)
	assert.Equal(t, Skip, d.Action)
}

func TestDecideOpponentChange(t *testing.T) {
	event := testEvent()
	existing := snapshotOf(event)
	existing.Title = "Celta de Vigo vs Sevilla | ⚽ LaLiga | 📺 DAZN"

	d := Decide(event, existing)
	require.Equal(t, UpdateNotify, d.Action)
	require.Len(t, d.Changes, 1)
	assert.Equal(t, "match: Celta de Vigo vs Sevilla -> Celta de Vigo vs Real Madrid", d.Changes[0])
}

func TestDecideTBCConfirmed(t *testing.T) {
	event := testEvent()
	existing := snapshotOf(event)
	existing.Title = "(TBC) " + existing.Title

	d := Decide(event, existing)
	require.Equal(t, UpdateNotify, d.Action)
	assert.Contains(t, d.Changes, "status: TBC -> confirmed")
}

func TestDecideSilentUpdates(t *testing.T) {
	t.Run("location change", func(t *testing.T) {
		event := testEvent()
		existing := snapshotOf(event)
		existing.Location = "Estadio Celta de Vigo"

		d := Decide(event, existing)
		assert.Equal(t, UpdateSilent, d.Action)
		assert.True(t, d.Mutates())
		assert.False(t, d.Notifies())
	})

	t.Run("description change", func(t *testing.T) {
		event := testEvent()
		existing := snapshotOf(event)
		existing.Description = "⚽ LaLiga"

		d := Decide(event, existing)
		assert.Equal(t, UpdateSilent, d.Action)
	})

	t.Run("title suffix change", func(t *testing.T) {
		event := testEvent()
		existing := snapshotOf(event)
		existing.Title = "Celta de Vigo vs Real Madrid | ⚽ LaLiga"

		d := Decide(event, existing)
		assert.Equal(t, UpdateSilent, d.Action)
	})

	t.Run("reminder value change", func(t *testing.T) {
		event := testEvent()
		existing := snapshotOf(event)
		existing.ReminderMinutes = []int{30}

		d := Decide(event, existing)
		assert.Equal(t, UpdateSilent, d.Action)
	})

	t.Run("reminder reorder is not a change", func(t *testing.T) {
		event := testEvent()
		event.ReminderMinutes = []int{30, 60}
		existing := snapshotOf(event)
		existing.ReminderMinutes = []int{60, 30}

		d := Decide(event, existing)
		assert.Equal(t, Skip, d.Action)
	})
}

func TestDecideIgnoresMarkup(t *testing.T) {
	event := testEvent()
	existing := snapshotOf(event)
	existing.Description = "<p>" + existing.Description + "</p>"

	d := Decide(event, existing)
	assert.Equal(t, Skip, d.Action)
}

func TestSummary(t *testing.T) {
	var s Summary
	s.Add(Decision{Action: Insert})
	s.Add(Decision{Action: UpdateSilent})
	s.Add(Decision{Action: UpdateNotify})
	s.Add(Decision{Action: Skip})
	s.Add(Decision{Action: Skip})

	assert.Equal(t, 1, s.Inserted)
	assert.Equal(t, 2, s.Updated)
	assert.Equal(t, 1, s.Notified)
	assert.Equal(t, 2, s.Skipped)
	assert.Equal(t, 5, s.Total())
	assert.True(t, s.HasChanges())

	var empty Summary
	assert.False(t, empty.HasChanges())
}
