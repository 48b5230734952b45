package venues

import (
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/fixturecal/fixturecal/pkg/constants"
	"github.com/fixturecal/fixturecal/pkg/errors"
	"github.com/fixturecal/fixturecal/pkg/logging"
	"github.com/fixturecal/fixturecal/pkg/normalize"
)

// genericStadiums are placeholder names the fixtures site serves while the
// real venue is unknown. Short matches are scraper noise; names at or over
// constants.GenericStadiumMinLen runes are assumed specific enough.
var genericStadiums = []string{
	"campo municipal",
	"estadio local",
	"campo de futbol",
}

// Registry is an in-memory venue store with an incrementally maintained
// alias index. It is not safe for concurrent use: the engine runs one
// sync cycle at a time, single-writer.
type Registry struct {
	entries map[string]*Entry // canonical name -> entry
	order   []string          // canonical names in insertion order

	// index maps every normalized canonical name and alias to its
	// canonical entry. Derived and rebuildable; never persisted.
	index     map[string]string
	indexKeys []string // index keys in insertion order, for tie-breaking

	path          string
	threshold     float64
	genericMinLen int
	dirty         bool
	now           func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithSimilarityThreshold overrides the fuzzy-match acceptance ratio.
func WithSimilarityThreshold(threshold float64) Option {
	return func(r *Registry) { r.threshold = threshold }
}

// WithGenericMinLen overrides the quality-gate length cutoff.
func WithGenericMinLen(n int) Option {
	return func(r *Registry) { r.genericMinLen = n }
}

// WithClock overrides the time source used for last-updated stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entries:       make(map[string]*Entry),
		index:         make(map[string]string),
		threshold:     constants.SimilarityThreshold,
		genericMinLen: constants.GenericStadiumMinLen,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Len returns the number of venue entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Dirty reports whether the registry has unsaved mutations.
func (r *Registry) Dirty() bool {
	return r.dirty
}

// Entries returns the venue entries in insertion order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.entries[name])
	}
	return out
}

// Lookup resolves a team name to its stadium and location. Resolution
// order: exact canonical match, exact alias-index match on the normalized
// name, then best fuzzy match over all indexed keys accepted only at or
// above the similarity threshold. Returns ErrNotFound when no stage
// resolves; callers are expected to fall back.
func (r *Registry) Lookup(team string) (Match, error) {
	if entry, ok := r.entries[team]; ok {
		return Match{Stadium: entry.Stadium, Location: entry.Location, Canonical: entry.Name}, nil
	}

	key := normalize.Key(team)
	if canonical, ok := r.index[key]; ok {
		entry := r.entries[canonical]
		return Match{Stadium: entry.Stadium, Location: entry.Location, Canonical: entry.Name}, nil
	}

	if canonical, ok := r.closest(key); ok {
		entry := r.entries[canonical]
		return Match{Stadium: entry.Stadium, Location: entry.Location, Canonical: entry.Name}, nil
	}

	return Match{}, errors.NewNotFoundError("venue", team)
}

// closest scans the alias index for the key with the highest sequence
// similarity ratio, accepting it only at or above the threshold. Ties keep
// the first-encountered key, so resolution is stable across runs.
func (r *Registry) closest(key string) (string, bool) {
	if key == "" {
		return "", false
	}

	best := ""
	bestRatio := 0.0
	target := strings.Split(key, "")
	for _, indexed := range r.indexKeys {
		ratio := difflib.NewMatcher(target, strings.Split(indexed, "")).Ratio()
		if ratio > bestRatio {
			best = indexed
			bestRatio = ratio
		}
	}

	if bestRatio < r.threshold {
		return "", false
	}
	return r.index[best], true
}

// Update records a stadium for a team, learning the spelling as an alias
// when the team already resolves to a known entry. Writes that fail the
// quality gate return a QualityRejectedError and leave state untouched.
// Stadium, location and the last-updated stamp are only overwritten when
// the stadium actually changed, so unchanged data causes no churn.
func (r *Registry) Update(team, stadium, location string) error {
	if team == "" {
		return errors.NewValidationError("team", "must not be empty")
	}
	if stadium == "" {
		return errors.NewValidationError("stadium", "must not be empty")
	}

	if reason, rejected := r.gate(stadium); rejected {
		return errors.NewQualityRejectedError(team, stadium, reason)
	}

	match, err := r.Lookup(team)
	if err != nil {
		r.insert(team, stadium, location)
		return nil
	}

	entry := r.entries[match.Canonical]
	if clean(entry.Stadium) != clean(stadium) {
		logging.Info().
			Str("team", entry.Name).
			Str("stadium", stadium).
			Msg("Updating venue")
		entry.Stadium = stadium
		entry.Location = location
		entry.LastUpdated = r.now().Format("2006-01-02")
		r.dirty = true
	}
	r.learnAlias(entry, team)
	return nil
}

// gate applies the data-quality blacklist to a stadium name.
func (r *Registry) gate(stadium string) (string, bool) {
	lowered := strings.ToLower(stadium)
	if len([]rune(stadium)) >= r.genericMinLen {
		return "", false
	}
	for _, generic := range genericStadiums {
		if strings.Contains(lowered, generic) {
			return "generic placeholder " + generic, true
		}
	}
	return "", false
}

// insert creates a new entry with the team spelling as canonical name and
// sole initial alias.
func (r *Registry) insert(team, stadium, location string) {
	logging.Info().
		Str("team", team).
		Str("stadium", stadium).
		Msg("New venue")

	entry := &Entry{
		Name:        team,
		Stadium:     stadium,
		Location:    location,
		Aliases:     []string{team},
		LastUpdated: r.now().Format("2006-01-02"),
	}
	r.entries[team] = entry
	r.order = append(r.order, team)
	r.addKey(normalize.Key(team), team)
	r.dirty = true
}

// learnAlias appends a spelling to an entry's alias list unless an alias
// with the same normalized form is already known.
func (r *Registry) learnAlias(entry *Entry, team string) {
	key := normalize.Key(team)
	if _, ok := r.index[key]; ok {
		return
	}

	logging.Debug().
		Str("team", entry.Name).
		Str("alias", team).
		Msg("Learned alias")

	entry.Aliases = append(entry.Aliases, team)
	r.addKey(key, entry.Name)
	r.dirty = true
}

// addKey inserts a normalized key into the alias index.
func (r *Registry) addKey(key, canonical string) {
	if key == "" {
		return
	}
	if _, ok := r.index[key]; ok {
		return
	}
	r.index[key] = canonical
	r.indexKeys = append(r.indexKeys, key)
}

// restore loads persisted entries in order and rebuilds the alias index.
// The dirty flag is left unset: a freshly loaded registry has nothing to
// persist.
func (r *Registry) restore(entries []Entry) {
	for i := range entries {
		entry := entries[i]
		if entry.Name == "" || entry.Stadium == "" {
			continue
		}
		if _, ok := r.entries[entry.Name]; ok {
			continue
		}
		r.entries[entry.Name] = &entry
		r.order = append(r.order, entry.Name)
		r.addKey(normalize.Key(entry.Name), entry.Name)
		for _, alias := range entry.Aliases {
			r.addKey(normalize.Key(alias), entry.Name)
		}
	}
}

// clean collapses whitespace so incidental spacing differences do not
// count as a stadium change.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
