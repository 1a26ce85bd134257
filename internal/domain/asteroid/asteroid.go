// Package asteroid implements the per-sector, per-material asteroid
// field lifecycle: spawn, drift-out despawn, mined despawn, and
// heap-scheduled respawn, maintaining the invariant
// |live| + |respawning| = N per material.
package asteroid

import (
	"container/heap"
	"math"
	"math/rand"
	"sort"

	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/shared"
)

// RespawnTime is the fixed delay (ASTEROID_RESPAWN_TIME) between an
// asteroid despawning and its respawn record becoming due.
const RespawnTime = shared.Duration(30_000) // 30s

// Asteroid is one live ore body drifting inside its sector's local
// space.
type Asteroid struct {
	ID           shared.EntityID
	Material     string
	LocalPos     hexgrid.Vec2
	Velocity     hexgrid.Vec2
	Rotation     float64
	Ore          float64
	OreMax       float64
	Reserved     float64 // ore already claimed by in-flight MineAsteroid tasks
	DespawnAt    shared.Timestamp
	Scale        float64
}

// RemainingAfterReservations is the ore still available for a new
// mining reservation.
func (a *Asteroid) RemainingAfterReservations() float64 {
	return a.Ore - a.Reserved
}

type respawnRecord struct {
	id         shared.EntityID
	material   string
	respawnAt  shared.Timestamp
	localPos   hexgrid.Vec2 // mirrored or forward-ray position computed at despawn time
}

// respawnHeap orders respawnRecords by timestamp then persistent id, so
// iteration order is deterministic even for ties.
type respawnHeap []*respawnRecord

func (h respawnHeap) Len() int { return len(h) }
func (h respawnHeap) Less(i, j int) bool {
	if h[i].respawnAt != h[j].respawnAt {
		return h[i].respawnAt < h[j].respawnAt
	}
	return h[i].id < h[j].id
}
func (h respawnHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *respawnHeap) Push(x interface{}) { *h = append(*h, x.(*respawnRecord)) }
func (h *respawnHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// liveSet keeps one material's live asteroids ordered by despawn
// timestamp so the earliest-expiring one is always first.
type liveSet struct {
	byID  map[shared.EntityID]*Asteroid
	order []*Asteroid // kept sorted by DespawnAt after every mutation
}

func newLiveSet() *liveSet {
	return &liveSet{byID: make(map[shared.EntityID]*Asteroid)}
}

func (ls *liveSet) insert(a *Asteroid) {
	ls.byID[a.ID] = a
	ls.order = append(ls.order, a)
	sort.Slice(ls.order, func(i, j int) bool { return ls.order[i].DespawnAt < ls.order[j].DespawnAt })
}

func (ls *liveSet) remove(id shared.EntityID) {
	delete(ls.byID, id)
	for i, a := range ls.order {
		if a.ID == id {
			ls.order = append(ls.order[:i], ls.order[i+1:]...)
			return
		}
	}
}

func (ls *liveSet) earliest() (*Asteroid, bool) {
	if len(ls.order) == 0 {
		return nil, false
	}
	return ls.order[0], true
}

func (ls *liveSet) all() []*Asteroid {
	out := make([]*Asteroid, len(ls.order))
	copy(out, ls.order)
	return out
}

// Field holds one material's live and respawning asteroids within a
// single sector.
type Field struct {
	SectorSize float64
	Material   string
	N          int

	live     *liveSet
	respawns respawnHeap
	rng      *rand.Rand
}

// NewField constructs an empty field for one material, ready to be
// populated by SpawnInitial.
func NewField(material string, sectorSize float64, n int, rng *rand.Rand) *Field {
	h := respawnHeap{}
	heap.Init(&h)
	return &Field{
		SectorSize: sectorSize,
		Material:   material,
		N:          n,
		live:       newLiveSet(),
		respawns:   h,
		rng:        rng,
	}
}

// Count returns (live, respawning); their sum must always equal f.N.
func (f *Field) Count() (live, respawning int) {
	return len(f.live.byID), len(f.respawns)
}

func (f *Field) Live() []*Asteroid { return f.live.all() }

// SpawnInitial samples N positions uniformly in a disk of radius
// 0.8*SectorSize, derives a velocity from sectorAvgVelocity jittered
// per-axis in [0.8,1.2], a small rotation jitter, and an ore amount in
// [oreMin, oreMax].
func (f *Field) SpawnInitial(now shared.Timestamp, idPrefix string, sectorAvgVelocity hexgrid.Vec2, oreMin, oreMax float64, newID func() shared.EntityID) {
	radius := 0.8 * f.SectorSize
	for i := 0; i < f.N; i++ {
		pos := f.samplePointInDisk(radius)
		vel := hexgrid.Vec2{
			X: sectorAvgVelocity.X * f.jitter(0.8, 1.2),
			Y: sectorAvgVelocity.Y * f.jitter(0.8, 1.2),
		}
		ore := oreMin + f.rng.Float64()*(oreMax-oreMin)
		despawnMs := hexgrid.TimeToLeaveHexagon(pos, vel, f.SectorSize)
		// minus 1ms to avoid fade overlap with the next tick boundary.
		despawnAt := now.Plus(shared.Duration(despawnMs) - 1)

		a := &Asteroid{
			ID:        newID(),
			Material:  f.Material,
			LocalPos:  pos,
			Velocity:  vel,
			Rotation:  f.jitter(-0.2, 0.2),
			Ore:       ore,
			OreMax:    oreMax,
			DespawnAt: despawnAt,
			Scale:     lerp(0.3, 1.5, ore/oreMax),
		}
		f.live.insert(a)
	}
}

func (f *Field) samplePointInDisk(radius float64) hexgrid.Vec2 {
	angle := f.rng.Float64() * 2 * math.Pi
	r := radius * math.Sqrt(f.rng.Float64())
	return hexgrid.Vec2{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
}

func (f *Field) jitter(lo, hi float64) float64 {
	return lo + f.rng.Float64()*(hi-lo)
}

func lerp(a, b, t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return a + (b-a)*t
}

// TickDriftOut pops every live asteroid whose despawn timestamp has
// passed, mirrors its local position through the sector center for the
// respawn point, and schedules the respawn record.
func (f *Field) TickDriftOut(now shared.Timestamp) []shared.EntityID {
	var despawned []shared.EntityID
	for {
		earliest, ok := f.live.earliest()
		if !ok || now.HasNotPassed(earliest.DespawnAt) {
			break
		}
		f.live.remove(earliest.ID)
		mirrored := earliest.LocalPos.Negate()
		heap.Push(&f.respawns, &respawnRecord{
			id:        earliest.ID,
			material:  f.Material,
			respawnAt: earliest.DespawnAt.Plus(RespawnTime),
			localPos:  mirrored,
		})
		despawned = append(despawned, earliest.ID)
	}
	return despawned
}

// MinedDespawn handles AsteroidWasFullyMined: removes the asteroid from
// the live set, computes its respawn point by projecting the forward
// velocity ray to the opposing edge, and schedules the respawn record.
func (f *Field) MinedDespawn(now shared.Timestamp, id shared.EntityID) {
	a, ok := f.live.byID[id]
	if !ok {
		return
	}
	f.live.remove(id)

	forwardPoint := a.LocalPos
	respawnLocal := forwardPoint
	if a.Velocity.LengthSquared() > 0 {
		ms := hexgrid.TimeToLeaveHexagon(a.LocalPos, a.Velocity, f.SectorSize)
		travelSeconds := ms / 1000
		respawnLocal = a.LocalPos.Add(a.Velocity.Scale(travelSeconds))
	}

	heap.Push(&f.respawns, &respawnRecord{
		id:        id,
		material:  f.Material,
		respawnAt: now.Plus(RespawnTime),
		localPos:  respawnLocal,
	})
}

// TickRespawn pops every respawn record whose timestamp has passed,
// recomputes its despawn timestamp, resets ore to max, and re-inserts
// it into the live set.
func (f *Field) TickRespawn(now shared.Timestamp, oreMax float64, sectorAvgVelocity hexgrid.Vec2) []*Asteroid {
	var respawned []*Asteroid
	for f.respawns.Len() > 0 {
		head := f.respawns[0]
		if now.HasNotPassed(head.respawnAt) {
			break
		}
		rec := heap.Pop(&f.respawns).(*respawnRecord)

		vel := hexgrid.Vec2{
			X: sectorAvgVelocity.X * f.jitter(0.8, 1.2),
			Y: sectorAvgVelocity.Y * f.jitter(0.8, 1.2),
		}
		despawnMs := hexgrid.TimeToLeaveHexagon(rec.localPos, vel, f.SectorSize)
		a := &Asteroid{
			ID:        rec.id,
			Material:  f.Material,
			LocalPos:  rec.localPos,
			Velocity:  vel,
			Ore:       oreMax,
			OreMax:    oreMax,
			DespawnAt: now.Plus(shared.Duration(despawnMs) - 1),
			Scale:     lerp(0.3, 1.5, 1.0),
		}
		f.live.insert(a)
		respawned = append(respawned, a)
	}
	return respawned
}
