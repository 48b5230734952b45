// Package venues provides a persistent, fuzzy-matching registry that
// resolves scraped team names to known stadiums and locations. The
// registry learns alternate spellings (aliases) over time and rejects
// low-quality stadium data at the write path.
package venues

// Entry is a single venue record owned by the registry. The canonical
// name is the first team-name spelling encountered; aliases grow
// append-only as alternate spellings resolve to the same entry.
type Entry struct {
	Name        string   `yaml:"name"`
	Stadium     string   `yaml:"stadium"`
	Location    string   `yaml:"location"`
	Aliases     []string `yaml:"aliases"`
	LastUpdated string   `yaml:"last_updated"`
}

// Match is the result of a successful venue lookup.
type Match struct {
	Stadium   string
	Location  string
	Canonical string
}
