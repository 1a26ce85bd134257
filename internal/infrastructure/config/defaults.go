package config

import "time"

// SetDefaults sets default values for all configuration fields.
func SetDefaults(cfg *Config) {
	// Sim defaults
	if cfg.Sim.TickRate == 0 {
		cfg.Sim.TickRate = 20
	}
	if cfg.Manifest.Path == "" {
		cfg.Manifest.Path = "./manifest.yaml"
	}

	// Persistence defaults
	if cfg.Persistence.Path == "" {
		cfg.Persistence.Path = "./hexsim.db"
	}
	if cfg.Persistence.SnapshotInterval == 0 {
		cfg.Persistence.SnapshotInterval = 10 * time.Second
	}
	if cfg.Persistence.Pool.MaxOpen == 0 {
		cfg.Persistence.Pool.MaxOpen = 5
	}
	if cfg.Persistence.Pool.MaxIdle == 0 {
		cfg.Persistence.Pool.MaxIdle = 2
	}
	if cfg.Persistence.Pool.MaxLifetime == 0 {
		cfg.Persistence.Pool.MaxLifetime = 5 * time.Minute
	}

	// Event stream defaults
	if cfg.EventStream.Address == "" {
		cfg.EventStream.Address = "localhost:8787"
	}
	if cfg.EventStream.Path == "" {
		cfg.EventStream.Path = "/events"
	}
	if cfg.EventStream.MaxClients == 0 {
		cfg.EventStream.MaxClients = 64
	}

	// Daemon defaults
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/hexsim-daemon.pid"
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 30 * time.Second
	}
	if cfg.Daemon.RestartPolicy.MaxAttempts == 0 {
		cfg.Daemon.RestartPolicy.MaxAttempts = 3
	}
	if cfg.Daemon.RestartPolicy.Delay == 0 {
		cfg.Daemon.RestartPolicy.Delay = 5 * time.Second
	}
	if cfg.Daemon.RestartPolicy.BackoffMultiplier == 0 {
		cfg.Daemon.RestartPolicy.BackoffMultiplier = 2.0
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
	if cfg.Logging.Rotation.MaxSize == 0 {
		cfg.Logging.Rotation.MaxSize = 100 // MB
	}
	if cfg.Logging.Rotation.MaxBackups == 0 {
		cfg.Logging.Rotation.MaxBackups = 3
	}
	if cfg.Logging.Rotation.MaxAge == 0 {
		cfg.Logging.Rotation.MaxAge = 28 // days
	}

	// Metrics defaults
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
