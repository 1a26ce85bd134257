package shared

import (
	"strings"

	"github.com/google/uuid"
)

// EntityID is an opaque handle into the arena of sectors, ships, stations,
// gates, asteroids, and celestials. Containers store handles, never
// back-pointers, so the cyclic sector/ship/station graph never has to
// escape into the type system (see SPEC_FULL.md §3, handle-based identity).
type EntityID string

// NewEntityID mints a fresh, globally unique handle prefixed with kind so
// that log lines and snapshots stay self-describing, e.g. "ship-a3f8e2b1c4d5".
func NewEntityID(kind string) EntityID {
	short := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return EntityID(kind + "-" + short)
}

func (id EntityID) String() string { return string(id) }

// IsZero reports whether the handle was never assigned.
func (id EntityID) IsZero() bool { return id == "" }
