package engine

import (
	"fmt"

	"rogue-core/pkg/game"
)

// MaxFloor caps descent at the level carrying the Amulet of Yendor (spec
// §3 Player "known_floor_of_amulet ... always 26 once known").
const MaxFloor = 26

// DescendStairs moves the player to floor+1, generating it on first
// visit. The player must be standing on a down staircase.
func (e *Engine) DescendStairs() CommandResult {
	if e.Floor.StairsDown == nil || !sameCell(e.Player.Pos, *e.Floor.StairsDown) {
		return CommandResult{Message: "There are no stairs down here."}
	}
	if e.Floor.Level >= MaxFloor {
		return CommandResult{Message: "The way down is sealed."}
	}
	return e.changeFloor(e.Floor.Level+1, true)
}

// AscendStairs moves the player to floor-1. Floor 1 has no stairs up.
func (e *Engine) AscendStairs() CommandResult {
	if e.Floor.StairsUp == nil || !sameCell(e.Player.Pos, *e.Floor.StairsUp) {
		return CommandResult{Message: "There are no stairs up here."}
	}
	if e.Floor.Level <= 1 {
		return CommandResult{Message: "You are already at the surface."}
	}
	return e.changeFloor(e.Floor.Level-1, false)
}

func (e *Engine) changeFloor(level int, descending bool) CommandResult {
	next, err := e.floorAt(level)
	if err != nil {
		return CommandResult{Message: "The way is blocked by falling rubble."}
	}
	e.Floor = next
	if descending {
		e.Player.Pos = arrivalPosition(next, next.StairsUp)
	} else {
		e.Player.Pos = arrivalPosition(next, next.StairsDown)
	}
	if level > e.Player.DeepestFloor {
		e.Player.DeepestFloor = level
	}
	verb := "descend deeper into"
	if !descending {
		verb = "climb back up out of"
	}
	return e.endTurn(fmt.Sprintf("You %s the dungeon, reaching level %d.", verb, level))
}

func arrivalPosition(floor *game.Floor, stairs *game.Position) game.Position {
	if stairs != nil {
		p := *stairs
		p.Level = floor.Level
		return p
	}
	return spawnPosition(floor)
}

func sameCell(a, b game.Position) bool {
	return a.X == b.X && a.Y == b.Y
}
