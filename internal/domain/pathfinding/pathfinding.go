// Package pathfinding computes routes across the sector graph (A*) and
// locates sectors carrying a given feature within a bounded hop range
// (bounded BFS).
package pathfinding

import (
	"container/heap"

	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/sector"
)

// Graph is the subset of sector.Graph the pathfinder needs; defined here
// so tests can supply a lightweight fake without building a full graph.
type Graph interface {
	Neighbors(c hexgrid.Coord) []hexgrid.Coord
	Sector(c hexgrid.Coord) (*sector.Sector, bool)
}

type openEntry struct {
	coord    hexgrid.Coord
	priority int // g + h
	g        int
	index    int
}

type openQueue []*openEntry

func (q openQueue) Len() int { return len(q) }
func (q openQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	// deterministic tie-break: lower g first, then lexicographic coord.
	if q[i].g != q[j].g {
		return q[i].g < q[j].g
	}
	if q[i].coord.Q != q[j].coord.Q {
		return q[i].coord.Q < q[j].coord.Q
	}
	return q[i].coord.R < q[j].coord.R
}
func (q openQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}
func (q *openQueue) Push(x interface{}) {
	e := x.(*openEntry)
	e.index = len(*q)
	*q = append(*q, e)
}
func (q *openQueue) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// FindRoute runs A* from start to goal over g, using hex distance as the
// (admissible, since every edge costs at least 1 hop) heuristic. Returns
// the sector coordinates from start to goal inclusive, or ok=false if no
// route exists.
func FindRoute(g Graph, start, goal hexgrid.Coord) (route []hexgrid.Coord, ok bool) {
	if start == goal {
		return []hexgrid.Coord{start}, true
	}

	cameFrom := map[hexgrid.Coord]hexgrid.Coord{}
	gScore := map[hexgrid.Coord]int{start: 0}
	visited := map[hexgrid.Coord]bool{}

	oq := &openQueue{}
	heap.Init(oq)
	heap.Push(oq, &openEntry{coord: start, priority: start.Distance(goal), g: 0})

	for oq.Len() > 0 {
		cur := heap.Pop(oq).(*openEntry)
		if visited[cur.coord] {
			continue
		}
		visited[cur.coord] = true

		if cur.coord == goal {
			return reconstruct(cameFrom, start, goal), true
		}

		for _, next := range g.Neighbors(cur.coord) {
			tentativeG := gScore[cur.coord] + 1
			if existing, seen := gScore[next]; seen && existing <= tentativeG {
				continue
			}
			gScore[next] = tentativeG
			cameFrom[next] = cur.coord
			heap.Push(oq, &openEntry{
				coord:    next,
				priority: tentativeG + next.Distance(goal),
				g:        tentativeG,
			})
		}
	}
	return nil, false
}

func reconstruct(cameFrom map[hexgrid.Coord]hexgrid.Coord, start, goal hexgrid.Coord) []hexgrid.Coord {
	path := []hexgrid.Coord{goal}
	cur := goal
	for cur != start {
		cur = cameFrom[cur]
		path = append(path, cur)
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// FindFeature performs a breadth-first search outward from origin,
// returning the nearest sector carrying feature whose hop distance from
// origin falls within [minDepth, maxDepth]. Ties at equal depth resolve
// lexicographically by coordinate to keep results deterministic.
func FindFeature(g Graph, origin hexgrid.Coord, feature sector.Feature, minDepth, maxDepth int) (hexgrid.Coord, bool) {
	type frame struct {
		coord hexgrid.Coord
		depth int
	}

	visited := map[hexgrid.Coord]bool{origin: true}
	queue := []frame{{origin, 0}}

	var candidates []hexgrid.Coord
	candidateDepth := -1

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth > maxDepth {
			continue
		}
		if cur.depth >= minDepth {
			if s, ok := g.Sector(cur.coord); ok && s.HasFeature(feature) {
				if candidateDepth == -1 {
					candidateDepth = cur.depth
				}
				if cur.depth == candidateDepth {
					candidates = append(candidates, cur.coord)
				}
			}
		}
		if candidateDepth != -1 && cur.depth > candidateDepth {
			// BFS processes depth in non-decreasing order, so once we've
			// passed the depth at which we found candidates, no closer
			// candidate can appear.
			break
		}
		if cur.depth == maxDepth {
			continue
		}
		for _, next := range g.Neighbors(cur.coord) {
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, frame{next, cur.depth + 1})
		}
	}

	if len(candidates) == 0 {
		return hexgrid.Coord{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Q < best.Q || (c.Q == best.Q && c.R < best.R) {
			best = c
		}
	}
	return best, true
}
