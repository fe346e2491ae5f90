package dungeon

import (
	"math/rand"

	"rogue-core/pkg/game"
)

// applyDarkRooms marks non-special rooms dark with probability
// DarkRoomChance on dark-eligible floors, and may pre-place a light
// source tile in a dark room (spec C7/4.7).
func applyDarkRooms(floor *game.Floor, p Params, rng *rand.Rand) {
	if !IsDarkEligible(p.Level) {
		return
	}
	for _, room := range floor.Rooms {
		if room.SpecialKind != "" {
			continue
		}
		if rng.Float64() >= p.DarkRoomChance {
			continue
		}
		darkness := 0.5 + rng.Float64()*0.5
		room.Flags[game.RoomFlagDark] = true
		room.Darkness = darkness
		markRoomDark(floor, room)

		if rng.Float64() < 0.4 {
			x, y := randomFloorCell(room, rng)
			floor.SetTile(x, y, game.NewLightSourceTile(3, 1.0))
		}
	}
}

func markRoomDark(floor *game.Floor, room *game.Room) {
	for y := room.Y; y < room.Y+room.H; y++ {
		for x := room.X; x < room.X+room.W; x++ {
			floor.MarkDark(x, y)
		}
	}
}

// VisibleRadius computes the player's visible radius inside a dark room
// (spec 4.7): light_radius if carrying an active light source, otherwise
// max(1, 3*(1-darkness)).
func VisibleRadius(darkness float64, hasLight bool, lightRadius int) int {
	if hasLight {
		return lightRadius
	}
	r := int(3 * (1 - darkness))
	if r < 1 {
		return 1
	}
	return r
}
