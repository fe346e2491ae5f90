package dungeon

import (
	"math/rand"
	"sort"

	"rogue-core/pkg/game"
)

type edge struct {
	a, b int
	dist int
}

// buildCorridors connects rooms via a minimum spanning tree over their
// centres (Manhattan distance), carving an L-shaped path per edge, then
// augments the tree with occasional extra loop edges (spec C4/4.3).
func buildCorridors(floor *game.Floor, rooms []*game.Room, p Params, rng *rand.Rand) []*game.Corridor {
	if len(rooms) < 2 {
		return nil
	}

	edges := allEdges(rooms)
	mstEdges, used := kruskalMST(rooms, edges)

	var corridors []*game.Corridor
	for i, e := range mstEdges {
		c := carveEdge(floor, rooms, e, p, rng, i)
		corridors = append(corridors, c)
	}

	// Loop augmentation: for each non-MST edge between adjacent rooms,
	// independently add it with probability LoopChance.
	for _, e := range edges {
		if used[edgeKey(e.a, e.b)] {
			continue
		}
		if !roomsAdjacent(rooms[e.a], rooms[e.b], e.dist) {
			continue
		}
		if rng.Float64() >= p.LoopChance {
			continue
		}
		used[edgeKey(e.a, e.b)] = true
		c := carveEdge(floor, rooms, e, p, rng, len(corridors))
		corridors = append(corridors, c)
	}

	return corridors
}

func edgeKey(a, b int) int {
	if a > b {
		a, b = b, a
	}
	return a*100000 + b
}

func allEdges(rooms []*game.Room) []edge {
	var edges []edge
	for i := 0; i < len(rooms); i++ {
		for j := i + 1; j < len(rooms); j++ {
			ci, cj := rooms[i].Center(), rooms[j].Center()
			edges = append(edges, edge{a: i, b: j, dist: manhattan(ci, cj)})
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].dist < edges[j].dist })
	return edges
}

func manhattan(a, b game.Position) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// roomsAdjacent is a loose heuristic for "unused adjacent room-pair" in
// spec 4.3: rooms whose centres are at most 30 tiles apart (Manhattan
// distance), whatever the map size, are eligible for a loop edge.
func roomsAdjacent(a, b *game.Room, dist int) bool {
	return dist <= 30
}

// kruskalMST returns the minimum spanning tree edges over room centres
// and a set recording which (a,b) pairs are already used.
func kruskalMST(rooms []*game.Room, edges []edge) ([]edge, map[int]bool) {
	parent := make([]int, len(rooms))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	used := make(map[int]bool)
	var mst []edge
	for _, e := range edges {
		ra, rb := find(e.a), find(e.b)
		if ra == rb {
			continue
		}
		parent[ra] = rb
		mst = append(mst, e)
		used[edgeKey(e.a, e.b)] = true
	}
	return mst, used
}

// carveEdge carves an L-shaped corridor between two rooms' centres,
// choosing horizontal-then-vertical or vertical-then-horizontal uniformly,
// placing a door at each room-boundary crossing.
func carveEdge(floor *game.Floor, rooms []*game.Room, e edge, p Params, rng *rand.Rand, idx int) *game.Corridor {
	ra, rb := rooms[e.a], rooms[e.b]
	start, end := ra.Center(), rb.Center()

	c := game.NewCorridor(corridorID(idx), start, end, ra.ID, rb.ID)

	var points []game.Position
	if rng.Intn(2) == 0 {
		points = append(points, hLine(start.X, end.X, start.Y)...)
		points = append(points, vLine(start.Y, end.Y, end.X)...)
	} else {
		points = append(points, vLine(start.Y, end.Y, start.X)...)
		points = append(points, hLine(start.X, end.X, end.Y)...)
	}

	for _, pt := range points {
		carveCorridorTile(floor, rooms, pt, p, rng)
	}
	c.Points = points

	ra.ConnectTo(rb)
	return c
}

func corridorID(i int) string { return "corridor-" + itoaDungeon(i) }

func hLine(x1, x2, y int) []game.Position {
	var pts []game.Position
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		pts = append(pts, game.Position{X: x, Y: y})
	}
	return pts
}

func vLine(y1, y2, x int) []game.Position {
	var pts []game.Position
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		pts = append(pts, game.Position{X: x, Y: y})
	}
	return pts
}

// carveCorridorTile writes a floor tile at pt, or a door if pt sits on a
// room's boundary (spec 4.3/4.4 door policy), leaving room interiors
// untouched.
func carveCorridorTile(floor *game.Floor, rooms []*game.Room, pt game.Position, p Params, rng *rand.Rand) {
	for _, r := range rooms {
		if onRoomBoundary(r, pt.X, pt.Y) {
			placeDoor(floor, r, pt, rng)
			return
		}
	}
	if floor.TileAt(pt.X, pt.Y).Kind == game.TileWall {
		floor.SetTile(pt.X, pt.Y, game.NewFloorTile())
	}
}

func onRoomBoundary(r *game.Room, x, y int) bool {
	onVerticalEdge := (x == r.X-1 || x == r.X+r.W) && y >= r.Y && y < r.Y+r.H
	onHorizontalEdge := (y == r.Y-1 || y == r.Y+r.H) && x >= r.X && x < r.X+r.W
	return onVerticalEdge || onHorizontalEdge
}

// placeDoor applies the default door-state policy (spec 4.4): Secret
// 0.10, Open 0.30, Closed 0.60. Special rooms override this later, once
// flagged, via upgradeRoomDoorsToClosed.
func placeDoor(floor *game.Floor, r *game.Room, pt game.Position, rng *rand.Rand) {
	if len(r.DoorPositions) >= 4 {
		if floor.TileAt(pt.X, pt.Y).Kind == game.TileWall {
			floor.SetTile(pt.X, pt.Y, game.NewFloorTile())
		}
		return
	}
	for _, existing := range r.DoorPositions {
		if manhattan(existing, pt) < 2 {
			if floor.TileAt(pt.X, pt.Y).Kind == game.TileWall {
				floor.SetTile(pt.X, pt.Y, game.NewFloorTile())
			}
			return
		}
	}

	roll := rng.Float64()
	var state game.DoorState
	switch {
	case roll < 0.10:
		state = game.DoorSecret
	case roll < 0.40:
		state = game.DoorOpen
	default:
		state = game.DoorClosed
	}
	floor.SetTile(pt.X, pt.Y, game.NewDoorTile(state, ""))
	r.DoorPositions = append(r.DoorPositions, pt)
}

// upgradeRoomDoorsToClosed forces every door on r's boundary to Closed (or
// Locked, if key is non-empty), the special-room door policy of spec 4.6.
func upgradeRoomDoorsToClosed(floor *game.Floor, r *game.Room, key game.KeyID) {
	state := game.DoorClosed
	if key != "" {
		state = game.DoorLocked
	}
	for _, pt := range r.DoorPositions {
		t := floor.TileAt(pt.X, pt.Y)
		if t.Kind != game.TileDoor {
			continue
		}
		floor.SetTile(pt.X, pt.Y, game.NewDoorTile(state, key))
	}
}
