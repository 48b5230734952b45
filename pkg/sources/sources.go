// Package sources defines the plain-data input types the engine consumes
// from its external collaborators. Scraping, DOM parsing and browser
// lifecycle live outside this module: by the time data reaches the engine
// it is already-resolved text, not a live I/O handle.
package sources

// FixtureRow is one raw fixture tuple as scraped from the fixtures site.
type FixtureRow struct {
	Home         string `json:"home"`
	Away         string `json:"away"`
	KickoffISO   string `json:"kickoff_iso"`
	HasExactTime bool   `json:"has_exact_time"`
	Competition  string `json:"competition"`
	Score        string `json:"score,omitempty"`
	Status       string `json:"status,omitempty"`
	Permalink    string `json:"permalink,omitempty"`
}

// Listings maps a calendar date key (YYYY-MM-DD) to the raw broadcast
// channel names announced for that date, in page order.
type Listings map[string][]string

// StadiumDetail is the result of a permalink detail fetch the caller
// chose to perform: a stadium for a team, ready for the venue registry.
type StadiumDetail struct {
	Team     string `json:"team"`
	Stadium  string `json:"stadium"`
	Location string `json:"location,omitempty"`
}
