package engine

import (
	"fmt"

	"rogue-core/pkg/combat"
	"rogue-core/pkg/game"
)

// Move steps the player by (dx, dy), one of the eight directions. Moving
// into a live monster resolves as a melee attack instead of a step
// (classic roguelike convention, not contradicted by spec.md). Moving
// into a wall or closed/locked door is an InvalidCommand/BlockedAction:
// reported, no tick (spec §7).
func (e *Engine) Move(dx, dy int) CommandResult {
	if e.GameOver {
		return CommandResult{Message: "The game has ended."}
	}
	target := game.Position{X: e.Player.Pos.X + dx, Y: e.Player.Pos.Y + dy, Level: e.Floor.Level}
	if !e.Floor.InBounds(target.X, target.Y) {
		return CommandResult{Message: "You cannot go that way."}
	}

	if m := monsterAt(e.Floor, target); m != nil {
		res := combat.ResolvePlayerAttack(e.Player, m, e.Floor, e.combatRNG())
		return e.endTurn(joinMessages(res.Messages))
	}

	tile := e.Floor.TileAt(target.X, target.Y)
	if !tile.IsWalkable() {
		if tile.Kind == game.TileDoor {
			return CommandResult{Message: "The door is closed."}
		}
		return CommandResult{Message: "You walk into a wall."}
	}

	e.Player.Pos = target
	e.Floor.MarkExplored(target.X, target.Y)

	if it := e.Floor.ItemsAt(target.X, target.Y); len(it) > 0 {
		return e.endTurn(fmt.Sprintf("You see %s here.", it[0].Name))
	}
	return e.endTurn("")
}

// GetItem picks up every item stacked on the player's current tile.
func (e *Engine) GetItem() CommandResult {
	items := e.Floor.ItemsAt(e.Player.Pos.X, e.Player.Pos.Y)
	if len(items) == 0 {
		return CommandResult{Message: "There is nothing here to pick up."}
	}
	var picked []string
	for _, it := range items {
		if err := e.Player.Inventory.Add(it); err != nil {
			continue
		}
		e.Floor.RemoveItem(it)
		picked = append(picked, it.Name)
	}
	if len(picked) == 0 {
		return CommandResult{Message: "Your pack is full."}
	}
	return e.endTurn("You pick up " + joinMessages(picked) + ".")
}

// Search tests every adjacent cell independently for a secret door
// (spec 4.1 "resolves independently per adjacent cell per search
// action"), rather than taking a single target cell: a player can't
// target what they don't know is there.
func (e *Engine) Search() CommandResult {
	rng := e.combatRNG()
	found := 0
	for _, d := range []game.Direction{
		game.DirNorth, game.DirSouth, game.DirEast, game.DirWest,
		game.DirNorthEast, game.DirNorthWest, game.DirSouthEast, game.DirSouthWest,
	} {
		dx, dy := d.Delta()
		x, y := e.Player.Pos.X+dx, e.Player.Pos.Y+dy
		if !e.Floor.InBounds(x, y) {
			continue
		}
		tile := e.Floor.TileAt(x, y)
		if !tile.IsSecretDoor() {
			continue
		}
		if rng.Float64() < game.SecretDoorFindChance(0) {
			newTile, ok := game.StateTransition(tile, game.DoorActionSearch, nil)
			if ok {
				e.Floor.SetTile(x, y, newTile)
				found++
			}
		}
	}
	if found == 0 {
		return e.endTurn("You find nothing.")
	}
	return e.endTurn(fmt.Sprintf("You find %d hidden door(s)!", found))
}

// Rest advances up to maxTicks turns via pkg/turn's own multi-tick rest
// (spec 4.12), aborting early on damage taken or a monster coming into
// sight. Folding its messages and death handling follows the same
// shape as endTurn, since a rest that kills the player ends the game
// exactly like any other turn would.
func (e *Engine) Rest(maxTicks int) CommandResult {
	if e.GameOver {
		return CommandResult{Message: "The game has ended."}
	}
	if e.Player.HP >= e.Player.MaxHP {
		return CommandResult{Success: true, Message: "You are already at full health."}
	}

	result, err := e.Turns.Rest(e.Player, e.Floor, e.aiRNG(), maxTicks)
	for _, m := range result.Messages {
		e.Log.Add(m)
	}
	if err != nil {
		e.GameOver = true
		e.DeathCause = describeDeath(err, e.Floor)
		return CommandResult{Success: true, ShouldEndTurn: true, Message: joinMessages(result.Messages)}
	}

	message := joinMessages(result.Messages)
	if result.Interrupted {
		if message != "" {
			message += " "
		}
		message += "Rest interrupted: " + result.Reason + "."
	}
	return CommandResult{Success: true, ShouldEndTurn: result.TicksElapsed > 0, Message: message}
}

// OpenDoor/CloseDoor act on the door at (x, y), which must be adjacent
// to the player.
func (e *Engine) OpenDoor(x, y int) CommandResult {
	return e.doorAction(x, y, game.DoorActionOpen, "You open the door.")
}

func (e *Engine) CloseDoor(x, y int) CommandResult {
	return e.doorAction(x, y, game.DoorActionClose, "You close the door.")
}

func (e *Engine) doorAction(x, y int, action game.DoorAction, okMessage string) CommandResult {
	pos := game.Position{X: x, Y: y, Level: e.Floor.Level}
	if !e.Player.Pos.Adjacent(pos) {
		return CommandResult{Message: "That is too far away."}
	}
	if !e.Floor.InBounds(x, y) {
		return CommandResult{Message: "There is nothing there."}
	}
	tile := e.Floor.TileAt(x, y)
	if action == game.DoorActionOpen {
		if m := monsterAt(e.Floor, pos); m != nil {
			// Open door into monster: fails as BlockedAction, no tick
			// (spec's explicit resolution of this open question).
			return CommandResult{Message: "Something blocks the door from the other side!"}
		}
	}
	newTile, ok := game.StateTransition(tile, action, e.Player.HasKey)
	if !ok {
		return CommandResult{Message: "You can't do that."}
	}
	e.Floor.SetTile(x, y, newTile)
	return e.endTurn(okMessage)
}

// DisarmTrap attempts to disarm the (known) trap at (x, y).
func (e *Engine) DisarmTrap(x, y int) CommandResult {
	pos := game.Position{X: x, Y: y, Level: e.Floor.Level}
	if !e.Player.Pos.Adjacent(pos) && pos != e.Player.Pos {
		return CommandResult{Message: "That is too far away."}
	}
	tile := e.Floor.TileAt(x, y)
	if tile.Kind != game.TileTrap || !tile.TrapKnown || !tile.TrapArmed {
		return CommandResult{Message: "There is no trap to disarm there."}
	}
	rng := e.combatRNG()
	if rng.Float64() < 0.6 {
		tile.TrapArmed = false
		e.Floor.SetTile(x, y, tile)
		return e.endTurn("You disarm the trap.")
	}
	return e.endTurn("You fail to disarm the trap.")
}

// Talk opens dialogue with the NPC at (x, y), which must be adjacent.
func (e *Engine) Talk(x, y int) CommandResult {
	pos := game.Position{X: x, Y: y, Level: e.Floor.Level}
	if !e.Player.Pos.Adjacent(pos) {
		return CommandResult{Message: "There is no one nearby to talk to."}
	}
	npc := e.Floor.NPCAt(x, y)
	if npc == nil || !npc.Talkable() {
		return CommandResult{Message: "There is no one there."}
	}
	return CommandResult{Success: true, Message: npc.Name + " has nothing more to say."}
}
