// Package calendar renders candidate fixtures into outward-facing event
// bodies and defines the read-only snapshot of previously persisted
// events the reconciliation engine diffs against.
package calendar

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/fixturecal/fixturecal/pkg/constants"
	"github.com/fixturecal/fixturecal/pkg/fixtures"
)

// Event is the rendered body for an insert or update. The transport layer
// maps it onto the external calendar API's payload.
type Event struct {
	MatchID         string
	Title           string
	Description     string
	Location        string
	Start           time.Time
	End             time.Time
	ReminderMinutes []int
}

// Snapshot is a read-only projection of an event already persisted in the
// external calendar. The engine only reads it to compute a diff.
type Snapshot struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	Start           time.Time `json:"start"`
	ReminderMinutes []int     `json:"reminder_minutes"`
}

// tbcPrefix marks events whose kickoff time is still unpublished.
const tbcPrefix = "(TBC) "

// Render builds the event body for a candidate fixture.
func Render(f *fixtures.Fixture) *Event {
	icon := competitionIcon(f.Competition)

	base := fmt.Sprintf("%s vs %s", f.Home, f.Away)
	if f.Score != "" {
		base = fmt.Sprintf("%s %s %s", f.Home, f.Score, f.Away)
	}

	title := fmt.Sprintf("%s | %s %s", base, icon, f.Competition)
	if f.ChannelShort != "" {
		title += fmt.Sprintf(" | 📺 %s", f.ChannelShort)
	}
	if f.TBD {
		title = tbcPrefix + title
	}

	var desc strings.Builder
	fmt.Fprintf(&desc, "%s %s\n", icon, f.Competition)
	if f.ChannelFull != "" {
		fmt.Fprintf(&desc, "📺 Dónde ver: %s\n", f.ChannelFull)
	}
	fmt.Fprintf(&desc, "📍 Lugar: %s\n", f.VenueLabel)
	fmt.Fprintf(&desc, "🔗 Info: %s", f.Permalink)

	return &Event{
		MatchID:         f.ID,
		Title:           title,
		Description:     desc.String(),
		Location:        f.VenueLabel,
		Start:           f.Kickoff,
		End:             f.Kickoff.Add(constants.EventDuration),
		ReminderMinutes: []int{constants.DefaultReminderMinutes},
	}
}

// competitionIcon picks the title icon from the competition text.
func competitionIcon(competition string) string {
	lowered := strings.ToLower(competition)
	switch {
	case strings.Contains(lowered, "liga"):
		return "⚽"
	case strings.Contains(lowered, "copa"):
		return "🏆"
	case strings.Contains(lowered, "amistoso"):
		return "🤝"
	default:
		return "🏆"
	}
}

var htmlTags = regexp.MustCompile(`<[^>]*>`)

// CleanText strips HTML tags and entities and collapses whitespace so
// incidental markup from the rendering layer never counts as a change.
func CleanText(s string) string {
	s = htmlTags.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// TitleCore extracts the opponent-identifying portion of a title: the
// "home vs away" or score segment, independent of the TBC prefix and the
// competition/TV suffixes.
func TitleCore(title string) string {
	core := strings.TrimPrefix(CleanText(title), strings.TrimSpace(tbcPrefix)+" ")
	if i := strings.Index(core, " | "); i >= 0 {
		core = core[:i]
	}
	return core
}

// IsTBC reports whether a rendered title carries the TBC marker.
func IsTBC(title string) bool {
	return strings.Contains(title, strings.TrimSpace(tbcPrefix))
}
