package hexgrid

import "math"

// Vec2 is a plain 2D world-space vector. It is intentionally independent
// of Coord: Coord addresses sectors on the grid, Vec2 addresses positions
// inside one sector's local space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Negate() Vec2 { return Vec2{-v.X, -v.Y} }
func (v Vec2) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Length() float64 { return math.Sqrt(v.LengthSquared()) }

// Boundary returns the six edges (as ordered vertex pairs) of a pointy-top
// regular hexagon with circumradius size (center to corner), centered at
// the origin of local sector space. This is the same "size" convention
// WorldCenter uses for sector spacing.
func Boundary(size float64) [6][2]Vec2 {
	r := size
	var verts [6]Vec2
	for i := 0; i < 6; i++ {
		angle := math.Pi/180*60*float64(i) + math.Pi/6
		verts[i] = Vec2{r * math.Cos(angle), r * math.Sin(angle)}
	}
	var edges [6][2]Vec2
	for i := 0; i < 6; i++ {
		edges[i] = [2]Vec2{verts[i], verts[(i+1)%6]}
	}
	return edges
}

// TimeToLeaveHexagon returns the milliseconds until a point at localPos
// moving at velocity (world units/second) crosses the boundary of a
// pointy-top hexagon of the given size centered at the local origin. It
// returns the nearest strictly-positive crossing; if the velocity never
// carries the point out (e.g. zero velocity), it returns a very large
// duration so the caller never schedules an immediate despawn.
func TimeToLeaveHexagon(localPos, velocity Vec2, size float64) float64 {
	const neverMs = 1e12
	if velocity.LengthSquared() == 0 {
		return neverMs
	}

	best := math.Inf(1)
	for _, edge := range Boundary(size) {
		if t, ok := raySegmentIntersection(localPos, velocity, edge[0], edge[1]); ok && t > 0 && t < best {
			best = t
		}
	}
	if math.IsInf(best, 1) {
		return neverMs
	}
	return best * 1000
}

// raySegmentIntersection solves origin + t*dir == a + u*(b-a) for t (in
// seconds, since dir is a per-second velocity) and u in [0,1]. Returns
// ok=false when the ray is parallel to the segment or the crossing falls
// outside the segment.
func raySegmentIntersection(origin, dir, a, b Vec2) (float64, bool) {
	edge := b.Sub(a)
	denom := dir.X*edge.Y - dir.Y*edge.X
	if math.Abs(denom) < 1e-9 {
		return 0, false
	}
	diff := a.Sub(origin)
	t := (diff.X*edge.Y - diff.Y*edge.X) / denom
	u := (diff.X*dir.Y - diff.Y*dir.X) / denom
	if u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}
