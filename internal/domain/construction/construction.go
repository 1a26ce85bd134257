// Package construction models construction sites: entities ships
// register with via the Construct task to contribute build power.
// This package tracks the registry of contributing ships and the
// progress their summed build power accumulates; completion thresholds
// are not modeled here.
package construction

import (
	"sync"

	"github.com/duskline/hexsim/internal/domain/shared"
)

// Site is one construction site's ship-contribution registry.
type Site struct {
	ID shared.EntityID

	mu           sync.Mutex
	contributors map[shared.EntityID]float64 // ship id -> build power
	accumulated  float64
}

func NewSite(id shared.EntityID) *Site {
	return &Site{ID: id, contributors: make(map[shared.EntityID]float64)}
}

// Register adds shipID's build power contribution as soon as its
// Construct task starts.
func (s *Site) Register(shipID shared.EntityID, buildPower float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contributors[shipID] = buildPower
}

// Deregister removes shipID's contribution, subtracting its build power
// from future accumulation on cancel/abort.
func (s *Site) Deregister(shipID shared.EntityID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contributors, shipID)
}

// TotalBuildPower sums every currently-registered contributor's build
// power, the rate at which the site's progress advances per second of
// simulated time (Accumulate scales it by dt).
func (s *Site) TotalBuildPower() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, bp := range s.contributors {
		total += bp
	}
	return total
}

// Accumulate advances the site's stored progress by dt * total build
// power, returning the new total.
func (s *Site) Accumulate(dt float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, bp := range s.contributors {
		total += bp
	}
	s.accumulated += total * dt
	return s.accumulated
}

func (s *Site) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accumulated
}

func (s *Site) Contributors() []shared.EntityID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]shared.EntityID, 0, len(s.contributors))
	for id := range s.contributors {
		out = append(out, id)
	}
	return out
}
