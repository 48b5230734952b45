// Package constants provides shared constants used throughout the fixturecal
// codebase. This includes matching thresholds, event defaults, file
// permissions, and other configuration values that should be consistent
// across the application.
package constants

import "time"

// Matching constants tune the venue registry's entity resolution.
const (
	// SimilarityThreshold is the minimum difflib-style ratio for a fuzzy
	// venue lookup to accept a candidate. Empirically chosen; tune with care.
	SimilarityThreshold = 0.85

	// GenericStadiumMinLen is the minimum rune length below which a stadium
	// name containing a generic placeholder is rejected as scraper noise.
	// Longer names are assumed specific enough to be real.
	GenericStadiumMinLen = 15
)

// Reconciliation constants control change classification.
const (
	// TimeChangeThreshold is the minimum kickoff drift that counts as a
	// schedule change worth notifying about.
	TimeChangeThreshold = 60 * time.Second

	// EventDuration is the calendar slot reserved for a fixture.
	EventDuration = 2 * time.Hour

	// DefaultReminderMinutes is the popup reminder offset for new events.
	DefaultReminderMinutes = 60
)

// File permission constants define standard Unix file permissions.
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default file names for the persistent stores.
const (
	// DefaultRegistryFile is the on-disk venue registry location.
	DefaultRegistryFile = "venues.yaml"
)
