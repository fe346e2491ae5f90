// Package items implements the item model, stack-aware inventory and the
// per-run identification scramble described in spec C13: Weapon, Armor,
// Ring, Potion, Scroll, Wand, Food, Gold and Amulet variants sharing a
// common header, a fixed 26-slot inventory with four equipment slots, and
// cursed-item rules.
//
// This package does not know how to apply a potion's effect or resolve
// combat damage from an enchanted weapon; pkg/effects and pkg/combat read
// Item fields (Enchantment, Charges, Cursed) to do that.
package items
