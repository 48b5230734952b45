// Package channels resolves raw broadcast-channel candidates scraped from
// the TV-schedule site into a compact label and a full description. The
// pipeline is fully deterministic: the same candidate list in the same
// order always produces the same output.
package channels

import (
	"regexp"
	"strings"
)

// Resolution is the outcome of resolving a candidate list.
type Resolution struct {
	// Short is a compact label for the top-priority channel ("DAZN", "M+").
	Short string
	// Full is the comma-joined, priority-ordered channel list.
	Full string
}

// tier is one priority bucket in the resolution order. A candidate lands
// in the first tier whose keyword set matches it.
type tier struct {
	name     string
	keywords []string
}

// defaultTiers orders candidates: free-to-air first, then the dominant
// streaming platform, then telco bundles. Anything else trails in
// original order.
var defaultTiers = []tier{
	{name: "free", keywords: []string{"teledeporte", "rtve", "la 1", "tvg", "youtube", "gol", "cuatro", "telecinco"}},
	{name: "dazn", keywords: []string{"dazn"}},
	{name: "movistar", keywords: []string{"movistar", "m+", "campeones", "vamos"}},
}

// exclusions drop ticketing up-sells, betting links and pending
// placeholders that the schedule site mixes into the channel list.
var exclusions = []string{
	"hellotickets",
	"laliga tv bar",
	"apostar",
	"confirmar",
}

// shortLabels maps the top channel to its compact label, checked in
// order; the first keyword hit wins.
var shortLabels = []struct {
	keywords []string
	label    string
}{
	{[]string{"teledeporte", "tdp"}, "TDP"},
	{[]string{"rtve", "la 1", "tve"}, "TVE"},
	{[]string{"tvg"}, "TVG"},
	{[]string{"dazn"}, "DAZN"},
	{[]string{"movistar", "m+"}, "M+"},
	{[]string{"gol"}, "Gol"},
}

// fallbackLabel is used when no keyword identifies the top channel.
const fallbackLabel = "TV"

// trailingParens strips annotations like "(comprar)" or "(en abierto)".
var trailingParens = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// Resolver buckets and prioritizes channel candidates. The zero-argument
// constructor uses the built-in tier and label tables.
type Resolver struct {
	tiers []tier
}

// NewResolver creates a Resolver with the default tier definitions.
func NewResolver() *Resolver {
	return &Resolver{tiers: defaultTiers}
}

// Resolve filters, buckets and prioritizes the raw candidates. It returns
// nil when nothing watchable remains; that is not an error, callers
// simply render without TV information.
func (r *Resolver) Resolve(candidates []string) *Resolution {
	cleaned := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = trailingParens.ReplaceAllString(c, "")
		c = strings.Join(strings.Fields(c), " ")
		if c == "" || excluded(c) {
			continue
		}
		cleaned = append(cleaned, c)
	}
	if len(cleaned) == 0 {
		return nil
	}

	// Bucket in original order; each candidate belongs to the first tier
	// it matches and is not considered for later tiers.
	buckets := make([][]string, len(r.tiers)+1)
	for _, c := range cleaned {
		placed := false
		for i, t := range r.tiers {
			if matchesAny(c, t.keywords) {
				buckets[i] = append(buckets[i], c)
				placed = true
				break
			}
		}
		if !placed {
			buckets[len(r.tiers)] = append(buckets[len(r.tiers)], c)
		}
	}

	ordered := make([]string, 0, len(cleaned))
	seen := make(map[string]bool, len(cleaned))
	for _, bucket := range buckets {
		for _, c := range bucket {
			if seen[c] {
				continue
			}
			seen[c] = true
			ordered = append(ordered, c)
		}
	}

	return &Resolution{
		Short: shortLabel(ordered[0]),
		Full:  strings.Join(ordered, ", "),
	}
}

// shortLabel derives the compact label for the top-priority channel.
func shortLabel(top string) string {
	for _, entry := range shortLabels {
		if matchesAny(top, entry.keywords) {
			return entry.label
		}
	}
	return fallbackLabel
}

// excluded reports whether a candidate matches the exclusion list.
func excluded(candidate string) bool {
	return matchesAny(candidate, exclusions)
}

// matchesAny reports whether the lowered candidate contains any keyword.
func matchesAny(candidate string, keywords []string) bool {
	lowered := strings.ToLower(candidate)
	for _, k := range keywords {
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}
