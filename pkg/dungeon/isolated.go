package dungeon

import (
	"math/rand"

	"rogue-core/pkg/game"
)

// applyIsolatedRooms generates 1-2 extra rooms outside the main graph on
// isolation-eligible floors, reachable only through a secret door, placed
// so their bounding box (extended by a 2-cell margin) avoids every
// existing room (spec C8/4.8).
func applyIsolatedRooms(floor *game.Floor, p Params, rng *rand.Rand) {
	if !IsIsolationEligible(p.Level) {
		return
	}
	if rng.Float64() >= p.IsolationLevel {
		return
	}

	count := 1 + rng.Intn(2)
	for i := 0; i < count; i++ {
		room := tryPlaceIsolatedRoom(floor, p, rng, i)
		if room == nil {
			continue
		}
		room.Flags[game.RoomFlagIsolated] = true
		floor.Rooms = append(floor.Rooms, room)
		connectIsolatedRoom(floor, room, rng)
	}
}

func tryPlaceIsolatedRoom(floor *game.Floor, p Params, rng *rand.Rand, idx int) *game.Room {
	const attempts = 20
	for attempt := 0; attempt < attempts; attempt++ {
		w := p.RoomMinW + rng.Intn(p.RoomMaxW-p.RoomMinW+1)
		h := p.RoomMinH + rng.Intn(p.RoomMaxH-p.RoomMinH+1)
		x := 1 + rng.Intn(maxInt(1, p.Width-w-2))
		y := 1 + rng.Intn(maxInt(1, p.Height-h-2))

		candidate := game.NewRoom("isolated-"+itoaDungeon(idx), x, y, w, h)
		if overlapsAny(candidate, floor.Rooms, 2) {
			continue
		}
		carveRoomInterior(floor, candidate)
		return candidate
	}
	return nil
}

func overlapsAny(candidate *game.Room, rooms []*game.Room, margin int) bool {
	for _, r := range rooms {
		if candidate.Overlaps(r, margin) {
			return true
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// connectIsolatedRoom carves a single secret-door corridor from the
// isolated room to the nearest existing room, found by straight-line L
// carving the same way regular corridors are built, but forcing the
// boundary crossing to a Secret door regardless of the normal door-roll
// policy.
func connectIsolatedRoom(floor *game.Floor, room *game.Room, rng *rand.Rand) {
	nearest := nearestOtherRoom(floor, room)
	if nearest == nil {
		return
	}
	start, end := room.Center(), nearest.Center()

	var points []game.Position
	if rng.Intn(2) == 0 {
		points = append(points, hLine(start.X, end.X, start.Y)...)
		points = append(points, vLine(start.Y, end.Y, end.X)...)
	} else {
		points = append(points, vLine(start.Y, end.Y, start.X)...)
		points = append(points, hLine(start.X, end.X, end.Y)...)
	}

	for _, pt := range points {
		if onRoomBoundary(room, pt.X, pt.Y) || onRoomBoundary(nearest, pt.X, pt.Y) {
			floor.SetTile(pt.X, pt.Y, game.NewDoorTile(game.DoorSecret, ""))
			continue
		}
		if floor.TileAt(pt.X, pt.Y).Kind == game.TileWall {
			floor.SetTile(pt.X, pt.Y, game.NewFloorTile())
		}
	}

	c := game.NewCorridor("isolated-link-"+room.ID, start, end, room.ID, nearest.ID)
	c.Points = points
	floor.Corridors = append(floor.Corridors, c)
}

func nearestOtherRoom(floor *game.Floor, room *game.Room) *game.Room {
	var best *game.Room
	bestDist := -1
	for _, r := range floor.Rooms {
		if r == room {
			continue
		}
		d := manhattan(room.Center(), r.Center())
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = r
		}
	}
	return best
}

func carveRoomInterior(floor *game.Floor, room *game.Room) {
	for y := room.Y; y < room.Y+room.H; y++ {
		for x := room.X; x < room.X+room.W; x++ {
			floor.SetTile(x, y, game.NewFloorTile())
		}
	}
}
