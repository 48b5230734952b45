package reconcile

import (
	"fmt"
	"sort"
	"time"

	"github.com/fixturecal/fixturecal/pkg/calendar"
	"github.com/fixturecal/fixturecal/pkg/constants"
)

// Decide compares a freshly rendered event body against the persisted
// snapshot and returns the action to take. Categories are evaluated in
// strict order and the first applicable one wins:
//
//  1. no snapshot                         -> Insert
//  2. kickoff drift, opponent change, or
//     TBD-to-confirmed transition         -> UpdateNotify
//  3. description, location, title or
//     reminder differences                -> UpdateSilent
//  4. otherwise                           -> Skip
func Decide(event *calendar.Event, existing *calendar.Snapshot) Decision {
	if existing == nil {
		return Decision{Action: Insert, Event: event}
	}

	if changes := majorChanges(event, existing); len(changes) > 0 {
		return Decision{Action: UpdateNotify, Event: event, Changes: changes}
	}

	if minorChanged(event, existing) {
		return Decision{Action: UpdateSilent, Event: event}
	}

	return Decision{Action: Skip}
}

// majorChanges collects one line per notify-worthy condition.
func majorChanges(event *calendar.Event, existing *calendar.Snapshot) []string {
	var changes []string

	if drift(event.Start, existing.Start) > constants.TimeChangeThreshold {
		changes = append(changes, fmt.Sprintf("time: %s -> %s",
			formatKickoff(existing.Start, event.Start),
			formatKickoff(event.Start, existing.Start)))
	}

	oldCore := calendar.TitleCore(existing.Title)
	newCore := calendar.TitleCore(event.Title)
	if oldCore != newCore {
		changes = append(changes, fmt.Sprintf("match: %s -> %s", oldCore, newCore))
	}

	if calendar.IsTBC(existing.Title) && !calendar.IsTBC(event.Title) {
		changes = append(changes, "status: TBC -> confirmed")
	}

	return changes
}

// minorChanged reports silent-update-worthy differences. Text fields are
// compared after markup stripping and whitespace collapsing; reminders as
// an order-insensitive, minute-value-exact list.
func minorChanged(event *calendar.Event, existing *calendar.Snapshot) bool {
	if calendar.CleanText(event.Title) != calendar.CleanText(existing.Title) {
		return true
	}
	if calendar.CleanText(event.Description) != calendar.CleanText(existing.Description) {
		return true
	}
	if calendar.CleanText(event.Location) != calendar.CleanText(existing.Location) {
		return true
	}
	return !sameReminders(event.ReminderMinutes, existing.ReminderMinutes)
}

// drift is the absolute difference between two instants.
func drift(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d
}

// formatKickoff renders a kickoff instant for a change line, including
// the date only when the two instants fall on different days.
func formatKickoff(t, other time.Time) string {
	t, other = t.UTC(), other.UTC()
	if t.Format("2006-01-02") == other.Format("2006-01-02") {
		return t.Format("15:04")
	}
	return t.Format("2006-01-02 15:04")
}

// sameReminders compares reminder lists ignoring order but not values.
func sameReminders(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]int(nil), a...)
	bs := append([]int(nil), b...)
	sort.Ints(as)
	sort.Ints(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
