package engine

import (
	"errors"

	"rogue-core/pkg/effects"
	"rogue-core/pkg/game"
	"rogue-core/pkg/items"
)

// UseItem drinks/reads/eats the item at letter, or zaps it in direction
// when it is a wand (spec 4.14, 4.15 use_item(slot)/zap_wand(slot,
// direction) share one protocol once charges and direction are folded
// into effects.UseItem).
func (e *Engine) UseItem(letter byte, direction game.Direction) CommandResult {
	target := e.monsterInDirection(direction)
	var targetActor *game.Actor
	if target != nil {
		targetActor = &target.Actor
	}

	result, err := effects.UseItem(e.Player, letter, e.Floor, e.combatRNG(), targetActor, direction)
	if err != nil {
		switch {
		case errors.Is(err, effects.ErrNoCharges):
			return CommandResult{Message: "Nothing happens. The wand is out of charges."}
		case errors.Is(err, effects.ErrNotUsable):
			return CommandResult{Message: "You can't use that."}
		default:
			return CommandResult{Message: err.Error()}
		}
	}
	if target != nil && !target.Alive() {
		e.Floor.Monsters.Remove(target.ID)
	}
	return e.endTurn(result.Message)
}

// ZapWand is an alias for UseItem for wands (spec 4.15 exposes the two as
// separate verbs at the input layer; they share one internal protocol).
func (e *Engine) ZapWand(letter byte, direction game.Direction) CommandResult {
	return e.UseItem(letter, direction)
}

func (e *Engine) monsterInDirection(direction game.Direction) *game.Monster {
	if direction == game.DirNone {
		return nil
	}
	dx, dy := direction.Delta()
	pos := e.Player.Pos
	for i := 1; i <= 8; i++ {
		pos = game.Position{X: pos.X + dx, Y: pos.Y + dy, Level: e.Floor.Level}
		if !e.Floor.InBounds(pos.X, pos.Y) {
			return nil
		}
		if m := monsterAt(e.Floor, pos); m != nil {
			return m
		}
		if !e.Floor.TileAt(pos.X, pos.Y).IsTransparent() {
			return nil
		}
	}
	return nil
}

// CastSpell pays the caster's MP and dispatches the same effect registry
// UseItem draws on (spec §3 Player "spellbook", §4.15 cast_spell).
func (e *Engine) CastSpell(spellID string, direction game.Direction) CommandResult {
	spell, ok := e.Player.KnowsSpell(spellID)
	if !ok {
		return CommandResult{Message: "You don't know that spell."}
	}
	if e.Player.MP < spell.MPCost {
		return CommandResult{Message: "You don't have enough magic power."}
	}

	target := e.monsterInDirection(direction)
	var targetActor *game.Actor
	if target != nil {
		targetActor = &target.Actor
	}

	ctx := &effects.Context{
		Actor:     &e.Player.Actor,
		Target:    targetActor,
		Floor:     e.Floor,
		RNG:       e.combatRNG(),
		Player:    e.Player,
		Direction: direction,
	}
	result := effects.Dispatch(spell.EffectID, ctx)
	if !result.Success {
		return CommandResult{Message: result.Message}
	}
	e.Player.MP -= spell.MPCost
	if target != nil && !target.Alive() {
		e.Floor.Monsters.Remove(target.ID)
	}
	return e.endTurn(result.Message)
}

// Equip moves the item at letter into slot, swapping out whatever
// currently occupies it.
func (e *Engine) Equip(letter byte, slot items.EquipSlot) CommandResult {
	it := e.Player.Inventory.ItemAt(letter)
	if it == nil {
		return CommandResult{Message: "You have nothing in that slot."}
	}
	if !it.Kind.Equippable() {
		return CommandResult{Message: "You can't equip that."}
	}
	if err := e.Player.Inventory.Equip(letter, slot); err != nil {
		return CommandResult{Message: err.Error()}
	}
	return e.endTurn("You equip the " + it.Name + ".")
}

// Drop removes n units of the stack at letter (or the single item) and
// places it on the player's current tile.
func (e *Engine) Drop(letter byte, n int) CommandResult {
	it, err := e.Player.Inventory.Drop(letter, n)
	if err != nil {
		return CommandResult{Message: err.Error()}
	}
	it.X, it.Y = e.Player.Pos.X, e.Player.Pos.Y
	e.Floor.Items = append(e.Floor.Items, it)
	return e.endTurn("You drop the " + it.Name + ".")
}
