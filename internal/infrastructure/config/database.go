package config

import "time"

// PersistenceConfig holds the snapshot store's connection configuration.
// Persisted state is out of the simulation core's scope beyond
// read-only accessors; this config only governs where the serializer
// writes and restores snapshots from.
type PersistenceConfig struct {
	// Path to the sqlite database file.
	Path string `mapstructure:"path" validate:"required"`

	// SnapshotInterval is how often a full-world snapshot is written.
	SnapshotInterval time.Duration `mapstructure:"snapshot_interval"`

	// Pool settings for the underlying sqlite connection.
	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig holds connection pool configuration.
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}
