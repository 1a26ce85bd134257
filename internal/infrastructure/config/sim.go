package config

import "time"

// SimConfig holds the fixed-tick simulation core's runtime knobs.
type SimConfig struct {
	// TickRate is the number of ticks the engine advances per second.
	TickRate int `mapstructure:"tick_rate" validate:"min=1"`

	// TickInterval, if set, overrides TickRate with an explicit period
	// (useful for slow-motion debugging runs).
	TickInterval time.Duration `mapstructure:"tick_interval"`

	// StrictMode panics on a missed-precondition violation (e.g. a
	// MoveToSector marker reaching run_tasks) instead of logging and
	// skipping it.
	StrictMode bool `mapstructure:"strict_mode"`

	// StartPaused keeps the engine in the Paused state until an
	// operator or client explicitly resumes it.
	StartPaused bool `mapstructure:"start_paused"`
}

// ManifestConfig points at the static game-data manifest (items, ship
// configs, asteroid materials) the engine loads at startup.
type ManifestConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}
