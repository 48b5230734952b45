package fixturecal

import (
	"time"

	"github.com/fixturecal/fixturecal/pkg/constants"
	"github.com/fixturecal/fixturecal/pkg/errors"
	"github.com/fixturecal/fixturecal/pkg/venues"
)

// Option is a function that configures an Engine instance.
type Option func(*config) error

// config holds engine configuration assembled from options.
type config struct {
	teamName      string
	homeVenue     string
	registryPath  string
	digestHeader  string
	threshold     float64
	genericMinLen int
	now           func() time.Time
}

// defaultConfig returns the engine defaults.
func defaultConfig() *config {
	return &config{
		registryPath:  constants.DefaultRegistryFile,
		digestHeader:  "Calendar Update",
		threshold:     constants.SimilarityThreshold,
		genericMinLen: constants.GenericStadiumMinLen,
		now:           defaultNow,
	}
}

// registryOptions translates engine config into venue registry options.
func (c *config) registryOptions() []venues.Option {
	return []venues.Option{
		venues.WithSimilarityThreshold(c.threshold),
		venues.WithGenericMinLen(c.genericMinLen),
	}
}

// WithTeam configures the followed team's name as it appears in scraped
// home-team text, plus the location label for its own ground.
func WithTeam(name, homeVenue string) Option {
	return func(c *config) error {
		if name == "" {
			return errors.NewValidationError("team", "must not be empty")
		}
		c.teamName = name
		c.homeVenue = homeVenue
		return nil
	}
}

// WithRegistryPath configures where the venue registry is persisted.
func WithRegistryPath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("registry path", "must not be empty")
		}
		c.registryPath = path
		return nil
	}
}

// WithDigestHeader configures the notification digest headline.
func WithDigestHeader(header string) Option {
	return func(c *config) error {
		c.digestHeader = header
		return nil
	}
}

// WithSimilarityThreshold overrides the fuzzy-match acceptance ratio used
// by venue lookups.
func WithSimilarityThreshold(threshold float64) Option {
	return func(c *config) error {
		if threshold <= 0 || threshold > 1 {
			return errors.NewValidationError("similarity threshold", "must be in (0, 1]")
		}
		c.threshold = threshold
		return nil
	}
}

// WithGenericMinLen overrides the quality-gate length cutoff for generic
// stadium placeholders.
func WithGenericMinLen(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return errors.NewValidationError("generic min length", "must not be negative")
		}
		c.genericMinLen = n
		return nil
	}
}

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(c *config) error {
		if now == nil {
			return errors.NewValidationError("clock", "must not be nil")
		}
		c.now = now
		return nil
	}
}
