package ai

import (
	"container/heap"

	"rogue-core/pkg/game"
)

// MaxPathDistance bounds the Dijkstra exploration radius (spec 4.11
// "cached Dijkstra from player to any tile within distance 15", spec §9
// "long-running operations (pathfinding) are bounded (max exploration 15
// cells)").
const MaxPathDistance = 15

// DistanceField maps every tile within MaxPathDistance of Origin to its
// shortest walking distance, used by monsters to step towards (or away
// from) the player without each recomputing its own search.
type DistanceField struct {
	Origin game.Position
	dist   map[game.Position]int
}

// pqNode mirrors the priority-queue node shape of the pathfinding idiom
// this is grounded on, minus the A* heuristic term: uniform edge costs
// make this a plain Dijkstra/BFS so G alone orders the queue.
type pqNode struct {
	pos   game.Position
	g     int
	index int
}

type nodeQueue []*pqNode

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].g < q[j].g }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i]; q[i].index = i; q[j].index = j }
func (q *nodeQueue) Push(x interface{}) {
	n := x.(*pqNode)
	n.index = len(*q)
	*q = append(*q, n)
}
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	node := old[n-1]
	node.index = -1
	*q = old[:n-1]
	return node
}

// BuildDistanceField runs a bounded Dijkstra out from origin over every
// walkable tile, stopping expansion past MaxPathDistance.
func BuildDistanceField(floor *game.Floor, origin game.Position) *DistanceField {
	dist := map[game.Position]int{origin: 0}
	pq := &nodeQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqNode{pos: origin, g: 0})

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*pqNode)
		if current.g > dist[current.pos] {
			continue
		}
		if current.g >= MaxPathDistance {
			continue
		}
		for _, n := range neighbors(current.pos) {
			if !floor.InBounds(n.X, n.Y) || !floor.TileAt(n.X, n.Y).IsWalkable() {
				continue
			}
			ng := current.g + 1
			if best, ok := dist[n]; !ok || ng < best {
				dist[n] = ng
				heap.Push(pq, &pqNode{pos: n, g: ng})
			}
		}
	}
	return &DistanceField{Origin: origin, dist: dist}
}

// DistanceTo reports the cached distance to pos, and whether pos is
// within the field's bound at all.
func (f *DistanceField) DistanceTo(pos game.Position) (int, bool) {
	d, ok := f.dist[pos]
	return d, ok
}

// StepToward returns the neighbour of from that most reduces distance to
// the field's origin, with ties broken by lexicographic (dx, dy) per
// spec 4.11. Returns from unchanged (no movement) if no improving
// neighbour exists.
func (f *DistanceField) StepToward(floor *game.Floor, from game.Position) game.Position {
	return bestNeighbor(f, floor, from, true)
}

// StepAway returns the neighbour of from that most increases distance to
// the field's origin, used for Flee state movement.
func (f *DistanceField) StepAway(floor *game.Floor, from game.Position) game.Position {
	return bestNeighbor(f, floor, from, false)
}

func bestNeighbor(f *DistanceField, floor *game.Floor, from game.Position, toward bool) game.Position {
	curDist, ok := f.DistanceTo(from)
	if !ok {
		return from
	}
	best := from
	bestDist := curDist
	haveCandidate := false
	for _, n := range neighbors(from) {
		if !floor.InBounds(n.X, n.Y) || !floor.TileAt(n.X, n.Y).IsWalkable() {
			continue
		}
		d, ok := f.DistanceTo(n)
		if !ok {
			continue
		}
		if toward && d >= curDist {
			continue
		}
		if !toward && d <= curDist {
			continue
		}
		strictlyBetter := (toward && d < bestDist) || (!toward && d > bestDist)
		tiedButLexLess := d == bestDist && lexLess(n, best, from)
		if !haveCandidate || strictlyBetter || tiedButLexLess {
			best, bestDist, haveCandidate = n, d, true
		}
	}
	return best
}

// lexLess breaks distance ties by comparing (dx, dy) of each candidate
// relative to from, per spec 4.11 "ties broken by lexicographic (dx, dy)".
func lexLess(a, b, from game.Position) bool {
	adx, ady := a.X-from.X, a.Y-from.Y
	bdx, bdy := b.X-from.X, b.Y-from.Y
	if adx != bdx {
		return adx < bdx
	}
	return ady < bdy
}

func neighbors(p game.Position) []game.Position {
	return []game.Position{
		{X: p.X + 1, Y: p.Y, Level: p.Level},
		{X: p.X - 1, Y: p.Y, Level: p.Level},
		{X: p.X, Y: p.Y + 1, Level: p.Level},
		{X: p.X, Y: p.Y - 1, Level: p.Level},
	}
}
