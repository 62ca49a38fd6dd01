package recur

import "time"

// Config holds the tunable boundaries of the engine. Zero fields are filled
// in from DefaultConfig by NewEngineWithConfig, so callers only set what
// they need to override.
type Config struct {
	// Horizon is the last date any generated occurrence may fall on.
	// Unbounded ("never") series are clamped to it, and explicit end dates
	// beyond it fail validation.
	Horizon time.Time

	// HardCap bounds the number of generation steps per series, as a guard
	// against runaway expansion.
	HardCap int

	// WarnThreshold is the occurrence count above which ValidateRule
	// attaches a volume warning.
	WarnThreshold int

	// Clock supplies "now" for end-date validation and past-occurrence
	// permission checks. Tests inject a fixed instant here.
	Clock func() time.Time
}

// DefaultConfig provides the production defaults.
var DefaultConfig = Config{
	Horizon:       time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
	HardCap:       1000,
	WarnThreshold: 500,
	Clock:         time.Now,
}

// Engine evaluates recurrence rules against a fixed configuration. It holds
// no mutable state; all methods are pure apart from reading the clock, so an
// Engine is safe for concurrent use.
type Engine struct {
	config Config
}

// NewEngine creates an engine with DefaultConfig.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultConfig)
}

// NewEngineWithConfig creates an engine with the given configuration,
// filling unset fields from DefaultConfig.
func NewEngineWithConfig(config Config) *Engine {
	if config.Horizon.IsZero() {
		config.Horizon = DefaultConfig.Horizon
	}
	if config.HardCap <= 0 {
		config.HardCap = DefaultConfig.HardCap
	}
	if config.WarnThreshold <= 0 {
		config.WarnThreshold = DefaultConfig.WarnThreshold
	}
	if config.Clock == nil {
		config.Clock = DefaultConfig.Clock
	}
	return &Engine{config: config}
}

// Horizon returns the configured generation horizon.
func (e *Engine) Horizon() time.Time {
	return e.config.Horizon
}

// today returns the current date per the configured clock, with the
// time-of-day stripped.
func (e *Engine) today() time.Time {
	return truncateToDay(e.config.Clock())
}
