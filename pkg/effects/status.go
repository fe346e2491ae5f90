package effects

import (
	"fmt"
	"math/rand"

	"rogue-core/pkg/game"
)

// TickStatusEffects decrements every status effect on actor by one turn,
// applies poison damage, and returns the messages produced (spec 4.12
// steps 1/3, spec §9 "ticking is one pass that mutably decrements
// durations and fires callbacks").
func TickStatusEffects(actor *game.Actor) []string {
	ticked := actor.Effects.Tick()
	var messages []string
	for _, e := range ticked {
		if e.Kind == game.StatusPoison && e.Damage > 0 {
			actor.ApplyDamage(e.Damage)
			messages = append(messages, "You feel sick from the poison.")
		}
		if e.Remaining <= 1 {
			messages = append(messages, fmt.Sprintf("You no longer feel %s.", statusEndName(e.Kind)))
		}
	}
	return messages
}

// TickMonsterStatusEffects is TickStatusEffects specialized for
// monsters: poison damage that leaves a splitter-flagged monster alive
// triggers spec 4.11's split reaction, the same as melee or ranged
// damage does.
func TickMonsterStatusEffects(monster *game.Monster, floor *game.Floor, rng *rand.Rand) []string {
	ticked := monster.Effects.Tick()
	var messages []string
	for _, e := range ticked {
		if e.Kind == game.StatusPoison && e.Damage > 0 {
			died := monster.ApplyDamage(e.Damage)
			messages = append(messages, "The "+monster.Name+" writhes in pain.")
			if !died && floor != nil && game.HandleSplitterDamage(monster, floor, rng) != nil {
				messages = append(messages, "The "+monster.Name+" splits in two!")
			}
		}
		if e.Remaining <= 1 {
			messages = append(messages, fmt.Sprintf("The %s is no longer %s.", monster.Name, statusEndName(e.Kind)))
		}
	}
	return messages
}

func statusEndName(kind game.StatusEffectKind) string {
	switch kind {
	case game.StatusPoison:
		return "poisoned"
	case game.StatusParalysis:
		return "paralyzed"
	case game.StatusConfusion:
		return "confused"
	case game.StatusHallucination:
		return "strange"
	default:
		return "affected"
	}
}
