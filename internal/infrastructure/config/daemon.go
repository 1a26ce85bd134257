package config

import "time"

// DaemonConfig holds the simcore daemon process's lifecycle settings.
type DaemonConfig struct {
	// PID file location.
	PIDFile string `mapstructure:"pid_file"`

	// Graceful shutdown timeout.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// Engine crash restart policy.
	RestartPolicy RestartPolicyConfig `mapstructure:"restart_policy"`
}

// RestartPolicyConfig holds the engine's restart-on-panic policy.
type RestartPolicyConfig struct {
	// Enable automatic restart on failure.
	Enabled bool `mapstructure:"enabled"`

	// Maximum restart attempts before giving up.
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=0"`

	// Delay between restart attempts.
	Delay time.Duration `mapstructure:"delay"`

	// Backoff multiplier for retry delays.
	BackoffMultiplier float64 `mapstructure:"backoff_multiplier" validate:"min=1"`
}
