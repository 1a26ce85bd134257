package config

// EventStreamConfig holds the websocket hub's bind settings. The hub is
// a dumb local fan-out of lifecycle/position events, not a
// network-sync protocol.
type EventStreamConfig struct {
	// Address the websocket hub listens on (host:port).
	Address string `mapstructure:"address" validate:"required"`

	// Path is the HTTP upgrade endpoint.
	Path string `mapstructure:"path"`

	// MaxClients bounds concurrent subscribers.
	MaxClients int `mapstructure:"max_clients" validate:"min=1"`
}
