package eventstream

import "github.com/duskline/hexsim/internal/engine"

// position is the per-tick payload broadcast to event-stream clients:
// a ship's location, sector, and facing.
type position struct {
	ShipID   string  `json:"ship_id"`
	SectorQ  int     `json:"sector_q"`
	SectorR  int     `json:"sector_r"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// PublishTick drains e's accumulated lifecycle/domain events and
// broadcasts one "positions" message, for the host to call once after
// every e.Tick(). A nil hub is a no-op so the engine can run headless
// in tests.
func PublishTick(hub *Hub, e *engine.Engine) {
	if hub == nil {
		return
	}
	for _, ev := range e.DrainEvents() {
		hub.Broadcast(ev.Kind, ev.Data)
	}

	ships := e.Ships()
	positions := make([]position, 0, len(ships))
	for _, s := range ships {
		positions = append(positions, position{
			ShipID:   s.ID.String(),
			SectorQ:  s.Sector.Q,
			SectorR:  s.Sector.R,
			X:        s.Position.X,
			Y:        s.Position.Y,
			Rotation: s.Rotation,
		})
	}
	hub.Broadcast("positions", positions)
}
