package combat

import (
	"fmt"
	"math/rand"

	"rogue-core/pkg/game"
	"rogue-core/pkg/items"
)

// ApplySpecialAttack dispatches the special effect a monster's flags
// grant it (spec 4.11 UseSpecial state, spec 4.13 "special attack
// effects"). Every category whose flag is set fires, in order: level
// drain, theft, then the psychic hallucination roll. Called by pkg/ai when a
// monster's state machine selects UseSpecial, not on every ordinary hit.
func ApplySpecialAttack(monster *game.Monster, player *game.Player, floor *game.Floor, rng *rand.Rand) []string {
	var messages []string

	if monster.Flags.CanDrainLevel {
		messages = append(messages, drainLevel(player)...)
	}
	if monster.Flags.CanStealItems || monster.Flags.CanStealGold {
		messages = append(messages, stealFromPlayer(monster, player, rng)...)
	}
	if isPsychic(monster) && rng.Float64() < 0.3 {
		player.Effects.Add(game.StatusEffect{Kind: game.StatusHallucination, Remaining: 6})
		messages = append(messages, "Your mind reels!")
	}
	return messages
}

func isPsychic(monster *game.Monster) bool {
	return monster.AIPattern == game.AIPsychic
}

// drainLevel implements "-1 level (floor at 1), reduce stats
// proportionally": HP/MP/attack/defense scale down by the ratio between
// the new and old level.
func drainLevel(player *game.Player) []string {
	if player.Level <= 1 {
		return []string{"You feel a chill, but resist the drain."}
	}
	oldLevel := player.Level
	newLevel := oldLevel - 1
	ratio := float64(newLevel) / float64(oldLevel)

	player.Level = newLevel
	player.MaxHP = scaleDown(player.MaxHP, ratio)
	player.MaxMP = scaleDown(player.MaxMP, ratio)
	player.AttackBase = scaleDown(player.AttackBase, ratio)
	player.DefenseBase = scaleDown(player.DefenseBase, ratio)
	if player.HP > player.MaxHP {
		player.HP = player.MaxHP
	}
	if player.MP > player.MaxMP {
		player.MP = player.MaxMP
	}
	return []string{"You feel weaker!"}
}

func scaleDown(v int, ratio float64) int {
	out := int(float64(v) * ratio)
	if out < 1 {
		out = 1
	}
	return out
}

// stealFromPlayer removes one random item stack or the player's gold and
// sets the thief to flee (spec 4.13 "remove one random item or gold, set
// flee").
func stealFromPlayer(monster *game.Monster, player *game.Player, rng *rand.Rand) []string {
	candidates := stealableSlots(player.Inventory)
	stealGold := player.Gold > 0 && (len(candidates) == 0 || rng.Intn(2) == 0)

	var message string
	switch {
	case stealGold:
		amount := player.Gold
		player.Gold = 0
		message = fmt.Sprintf("The %s snatches your %d gold and flees!", monster.Name, amount)
	case len(candidates) > 0:
		letter := candidates[rng.Intn(len(candidates))]
		it := player.Inventory.ItemAt(letter)
		if it != nil {
			player.Inventory.RemoveStack(letter, it.StackCount)
			message = fmt.Sprintf("The %s steals your %s and flees!", monster.Name, it.Name)
		}
	default:
		return nil
	}

	monster.Flags.IsFleeing = true
	monster.State = game.AIStateFlee
	return []string{message}
}

func stealableSlots(inv *items.Inventory) []byte {
	var out []byte
	for i, it := range inv.Entries() {
		if it == nil || inv.IsEquipped(it) {
			continue
		}
		out = append(out, items.Letter(i))
	}
	return out
}
