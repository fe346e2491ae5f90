package dungeon

import (
	"context"
	"fmt"
	"math/rand"

	"rogue-core/pkg/game"
	"rogue-core/pkg/integration"
	"rogue-core/pkg/items"
	"rogue-core/pkg/resilience"
	"rogue-core/pkg/retry"

	"github.com/sirupsen/logrus"
)

// Director orchestrates C3-C9 in the fixed order spec 4.10 requires: pick
// variant, build rooms, connect, specialise, darken, isolate, validate,
// place stairs. On validator rejection it retries with the same
// parameters for as many attempts as its retry policy allows (5 with
// NewDirector), then relaxes the minimum room size to 3x3 and tries once
// more before giving up (spec GenerationRetry, §7).
type Director struct {
	itemGen  *items.Generator
	executor *integration.ResilientExecutor
}

// NewDirector returns a Director whose item rolls are drawn from gen, using
// the package's built-in GenerationRetry policy (5 immediate retries, no
// backoff - dungeon generation failures are deterministic rejections by the
// validator, not transient I/O, so waiting between attempts buys nothing).
func NewDirector(gen *items.Generator) *Director {
	return NewDirectorWithRetry(gen, retry.RetryConfig{
		MaxAttempts:       5,
		InitialDelay:      0,
		MaxDelay:          0,
		BackoffMultiplier: 1,
		JitterMaxPercent:  0,
	})
}

// NewDirectorWithRetry returns a Director using an operator-supplied retry
// policy, e.g. from config.Config.GetRetryConfig(), in place of the default
// GenerationRetry policy.
func NewDirectorWithRetry(gen *items.Generator, retryConfig retry.RetryConfig) *Director {
	cbConfig := resilience.DefaultCircuitBreakerConfig("dungeon-generation")
	return &Director{
		itemGen:  gen,
		executor: integration.NewResilientExecutor(cbConfig, retryConfig),
	}
}

// Generate builds one floor for level, deterministic given rng's seed
// state at call time.
func (d *Director) Generate(ctx context.Context, level int, rng *rand.Rand) (*game.Floor, error) {
	p := DefaultParams(level)

	var floor *game.Floor

	op := func(ctx context.Context) error {
		f, err := buildFloor(p, d.itemGen, rng)
		if err != nil {
			return err
		}
		if err := Validate(f, p); err != nil {
			logrus.WithFields(logrus.Fields{
				"component": "dungeon",
				"func":      "Generate",
				"level":     level,
				"reason":    err.Error(),
			}).Warn("floor failed validation, retrying")
			return err
		}
		floor = f
		return nil
	}

	err := d.executor.Execute(ctx, op)
	if err != nil {
		// Relax parameters once and try a final, unretried build (spec
		// 4.9 "on rejection the director retries up to N times, then
		// relaxes parameters").
		p.RoomMinW, p.RoomMinH = 3, 3
		p.MaxValidatorRetries = 1
		f, relaxErr := buildFloor(p, d.itemGen, rng)
		if relaxErr == nil {
			if valErr := Validate(f, p); valErr == nil {
				return f, nil
			}
		}
		return nil, fmt.Errorf("dungeon generation exhausted retries for level %d: %w", level, err)
	}
	return floor, nil
}

// buildFloor runs the full C3-C9 pipeline once, with no retry of its own.
func buildFloor(p Params, itemGen *items.Generator, rng *rand.Rand) (*game.Floor, error) {
	floor := game.NewFloor(p.Level, p.Width, p.Height)

	if IsMazeFloor(p.Level) {
		buildMaze(floor, p, rng)
		placeMazeStairs(floor, p, rng)
		return floor, nil
	}

	rooms := buildRooms(p, rng)
	if len(rooms) == 0 {
		return nil, fmt.Errorf("bsp produced no rooms for level %d", p.Level)
	}
	for _, r := range rooms {
		carveRoomInterior(floor, r)
	}
	floor.Rooms = rooms

	corridors := buildCorridors(floor, rooms, p, rng)
	floor.Corridors = corridors

	applySpecialRoom(floor, p, itemGen, rng)
	applyDarkRooms(floor, p, rng)
	applyIsolatedRooms(floor, p, rng)

	placeStairs(floor, p, rng)

	return floor, nil
}

// placeStairs places down-stairs in the room furthest (by graph distance)
// from up-stairs, and up-stairs in the first connected room (spec 4.10).
// Floor 1 omits up-stairs until the player has the amulet.
func placeStairs(floor *game.Floor, p Params, rng *rand.Rand) {
	if len(floor.Rooms) == 0 {
		return
	}

	upRoom := floor.Rooms[0]
	if p.Level > 1 {
		up := upRoom.Center()
		floor.SetTile(up.X, up.Y, game.NewStairsTile(game.TileStairsUp))
		floor.StairsUp = &up
	}

	downRoom := farthestRoom(floor.Rooms, upRoom)
	down := downRoom.Center()
	floor.SetTile(down.X, down.Y, game.NewStairsTile(game.TileStairsDown))
	floor.StairsDown = &down
}

func farthestRoom(rooms []*game.Room, from *game.Room) *game.Room {
	best := rooms[0]
	bestDist := graphDistance(rooms, from, best)
	for _, r := range rooms {
		d := graphDistance(rooms, from, r)
		if d > bestDist {
			bestDist = d
			best = r
		}
	}
	return best
}

// graphDistance is a BFS over Room.ConnectedIDs, the "graph distance"
// spec 4.10 places down-stairs by.
func graphDistance(rooms []*game.Room, from, to *game.Room) int {
	if from == to {
		return 0
	}
	byID := make(map[string]*game.Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}
	visited := map[string]bool{from.ID: true}
	queue := []struct {
		room *game.Room
		dist int
	}{{from, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.room.ID == to.ID {
			return cur.dist
		}
		for id := range cur.room.ConnectedIDs {
			if visited[id] {
				continue
			}
			visited[id] = true
			if r, ok := byID[id]; ok {
				queue = append(queue, struct {
					room *game.Room
					dist int
				}{r, cur.dist + 1})
			}
		}
	}
	return 0
}

func placeMazeStairs(floor *game.Floor, p Params, rng *rand.Rand) {
	var floorCells []game.Position
	for y := 0; y < floor.Height; y++ {
		for x := 0; x < floor.Width; x++ {
			if floor.TileAt(x, y).Kind == game.TileFloor {
				floorCells = append(floorCells, game.Position{X: x, Y: y})
			}
		}
	}
	if len(floorCells) < 2 {
		return
	}
	up := floorCells[0]
	down := floorCells[len(floorCells)-1]
	if p.Level > 1 {
		floor.SetTile(up.X, up.Y, game.NewStairsTile(game.TileStairsUp))
		floor.StairsUp = &up
	}
	floor.SetTile(down.X, down.Y, game.NewStairsTile(game.TileStairsDown))
	floor.StairsDown = &down
}
