package effects

import (
	"errors"
	"fmt"
	"math/rand"

	"rogue-core/pkg/game"
)

// ErrNoCharges is returned by UseItem when a wand has no charges left
// (spec §7 ResourceExhausted).
var ErrNoCharges = errors.New("wand has no charges")

// ErrNotUsable is returned for items with no use effect (e.g. a bare
// Weapon/Armor/Gold passed to UseItem rather than equipped/dropped).
var ErrNotUsable = errors.New("item has no use effect")

// UseItem implements the use-item protocol of spec 4.14:
//  1. pre-check (wand charges)
//  2. decrement/remove a consumable stack
//  3. dispatch the effect
//  4. on first successful use of a scramble-class item, identify its
//     appearance for the run
//  5. the caller emits ctx's returned message
func UseItem(player *game.Player, letter byte, floor *game.Floor, rng *rand.Rand, target *game.Actor, direction game.Direction) (Result, error) {
	it := player.Inventory.ItemAt(letter)
	if it == nil {
		return Result{}, fmt.Errorf("no item at slot %c", letter)
	}
	if it.EffectID == "" {
		return Result{}, ErrNotUsable
	}

	if it.Kind.HasCharges() {
		if it.Charges <= 0 {
			return Result{}, ErrNoCharges
		}
		it.Charges--
	}

	if it.Kind.Consumable() && it.Kind.Stackable() {
		if _, err := player.Inventory.RemoveStack(letter, 1); err != nil {
			return Result{}, err
		}
	}

	ctx := &Context{
		Actor:     &player.Actor,
		Target:    target,
		Floor:     floor,
		RNG:       rng,
		Item:      it,
		Player:    player,
		Direction: direction,
	}
	result := Dispatch(it.EffectID, ctx)

	if result.Success {
		if _, ok := it.Kind.AppearanceClass(); ok {
			if !player.Identification.IsIdentified(it.Name) {
				player.Identification.Identify(it.Name)
			}
		}
	}

	return result, nil
}
