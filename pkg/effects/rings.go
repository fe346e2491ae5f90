package effects

import "rogue-core/pkg/items"

// RingModifiers are the passive bonuses an equipped ring pair grants
// (spec 4.14 "Ring effects: passive while equipped"). pkg/combat reads
// AttackBonus/DefenseBonus when resolving a hit; pkg/turn reads
// RegenPerTurn when applying the hunger/MP tick.
type RingModifiers struct {
	AttackBonus  int
	DefenseBonus int
	RegenPerTurn int
}

// ComputeRingModifiers sums the passive bonus of every equipped ring.
func ComputeRingModifiers(inv *items.Inventory) RingModifiers {
	var mods RingModifiers
	if inv == nil {
		return mods
	}
	for _, slot := range []items.EquipSlot{items.SlotRingLeft, items.SlotRingRight} {
		it := inv.EquippedAt(slot)
		if it == nil {
			continue
		}
		switch it.EffectID {
		case "ring.strength":
			mods.AttackBonus += 1 + it.Enchantment
		case "ring.protection":
			mods.DefenseBonus += 1 + it.Enchantment
		case "ring.regeneration":
			mods.RegenPerTurn += 1
		}
	}
	return mods
}
