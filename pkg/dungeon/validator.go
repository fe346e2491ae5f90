package dungeon

import "rogue-core/pkg/game"

// ValidationError explains why a generated floor was rejected (spec C9).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validate checks the invariants from spec 4.9/§8 against a generated
// floor, returning a *ValidationError describing the first violation
// found, or nil if the floor is acceptable.
func Validate(floor *game.Floor, p Params) error {
	if floor.StairsDown == nil {
		return &ValidationError{Reason: "missing down stairs"}
	}
	if p.Level > 1 && floor.StairsUp == nil {
		return &ValidationError{Reason: "missing up stairs"}
	}

	if !IsMazeFloor(p.Level) {
		count := len(floor.Rooms)
		if count < 4 || count > 12 {
			return &ValidationError{Reason: "room count out of bounds"}
		}
	}

	if !reachable(floor, *floor.StairsDown, spawnPoint(floor), false) {
		return &ValidationError{Reason: "spawn unreachable from down-stairs"}
	}

	expected := expectedWalkableCount(floor)
	actual := countReachable(floor, spawnPoint(floor), false)
	if expected > 0 && float64(actual) < 0.30*float64(expected) {
		return &ValidationError{Reason: "reachable area below 30% threshold"}
	}

	return nil
}

// AllRoomsReachableWithSecrets implements the stronger §8 property: when
// secret doors are treated as walkable, every room (including isolated
// ones) is reachable from the spawn point.
func AllRoomsReachableWithSecrets(floor *game.Floor) bool {
	start := spawnPoint(floor)
	for _, r := range floor.Rooms {
		c := r.Center()
		if !reachable(floor, c, start, true) {
			return false
		}
	}
	return true
}

func spawnPoint(floor *game.Floor) game.Position {
	if floor.StairsUp != nil {
		return *floor.StairsUp
	}
	if len(floor.Rooms) > 0 {
		return floor.Rooms[0].Center()
	}
	return game.Position{}
}

func expectedWalkableCount(floor *game.Floor) int {
	count := 0
	for y := 0; y < floor.Height; y++ {
		for x := 0; x < floor.Width; x++ {
			if floor.TileAt(x, y).Kind != game.TileWall {
				count++
			}
		}
	}
	return count
}

func reachable(floor *game.Floor, from, to game.Position, treatSecretAsWalkable bool) bool {
	found := false
	bfs(floor, from, treatSecretAsWalkable, func(p game.Position) bool {
		if p.X == to.X && p.Y == to.Y {
			found = true
			return false
		}
		return true
	})
	return found
}

func countReachable(floor *game.Floor, from game.Position, treatSecretAsWalkable bool) int {
	n := 0
	bfs(floor, from, treatSecretAsWalkable, func(game.Position) bool {
		n++
		return true
	})
	return n
}

// bfs walks every cell reachable from start under the passability rule
// implied by treatSecretAsWalkable, calling visit for each. Stops early
// if visit returns false.
func bfs(floor *game.Floor, start game.Position, treatSecretAsWalkable bool, visit func(game.Position) bool) {
	if !floor.InBounds(start.X, start.Y) {
		return
	}
	seen := make(map[[2]int]bool)
	queue := []game.Position{start}
	seen[[2]int{start.X, start.Y}] = true

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if !visit(p) {
			return
		}
		for _, d := range [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
			np := game.Position{X: p.X + d[0], Y: p.Y + d[1]}
			key := [2]int{np.X, np.Y}
			if seen[key] || !floor.InBounds(np.X, np.Y) {
				continue
			}
			if !passable(floor.TileAt(np.X, np.Y), treatSecretAsWalkable) {
				continue
			}
			seen[key] = true
			queue = append(queue, np)
		}
	}
}

func passable(t game.Tile, treatSecretAsWalkable bool) bool {
	if t.Kind == game.TileDoor && t.DoorState == game.DoorSecret {
		return treatSecretAsWalkable
	}
	if t.Kind == game.TileDoor {
		return true // closed/locked doors are topologically passable; opening/unlocking is a player action, not a reachability barrier
	}
	return t.Kind != game.TileWall
}
