// Package reconcile decides what to do with a candidate fixture given the
// previously persisted event, if any. The decision function is pure: no
// I/O, no clock, no randomness; re-running the pipeline on unchanged
// input always yields Skip.
package reconcile

import "github.com/fixturecal/fixturecal/pkg/calendar"

// Action is the reconciliation outcome for one fixture.
type Action string

const (
	// Insert creates a new calendar event.
	Insert Action = "insert"
	// UpdateSilent rewrites the event without notifying anyone.
	UpdateSilent Action = "update-silent"
	// UpdateNotify rewrites the event and triggers a notification.
	UpdateNotify Action = "update-notify"
	// Skip leaves the persisted event untouched.
	Skip Action = "skip"
)

// Decision carries the action, the rendered event body for inserts and
// updates, and one human-readable line per notify-worthy change.
type Decision struct {
	Action  Action
	Event   *calendar.Event
	Changes []string
}

// Mutates reports whether the decision writes to the calendar.
func (d Decision) Mutates() bool {
	return d.Action != Skip
}

// Notifies reports whether the decision should reach a human.
func (d Decision) Notifies() bool {
	return d.Action == Insert || d.Action == UpdateNotify
}

// Summary aggregates decisions across a sync cycle.
type Summary struct {
	Inserted int
	Updated  int
	Notified int
	Skipped  int
}

// Add counts one decision.
func (s *Summary) Add(d Decision) {
	switch d.Action {
	case Insert:
		s.Inserted++
	case UpdateSilent:
		s.Updated++
	case UpdateNotify:
		s.Updated++
		s.Notified++
	case Skip:
		s.Skipped++
	}
}

// Total returns the number of decisions counted.
func (s *Summary) Total() int {
	return s.Inserted + s.Updated + s.Skipped
}

// HasChanges reports whether any decision mutated the calendar.
func (s *Summary) HasChanges() bool {
	return s.Inserted > 0 || s.Updated > 0
}
