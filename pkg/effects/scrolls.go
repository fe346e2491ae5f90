package effects

import (
	"fmt"

	"rogue-core/pkg/game"
	"rogue-core/pkg/items"
)

func registerScrollEffects() {
	register("scroll.identify", scrollIdentify)
	register("scroll.teleport", scrollTeleport)
	register("scroll.magic_mapping", scrollMagicMapping)
	register("scroll.light", scrollLight)
	register("scroll.remove_curse", scrollRemoveCurse)
	register("scroll.enchant_weapon", scrollEnchant(items.SlotWeapon))
	register("scroll.enchant_armor", scrollEnchant(items.SlotArmor))
}

// scrollIdentify marks the target item's true name (and every stack of
// the same name) identified for the run (spec 4.14 "marks target item
// identified in run-state AND all stacks of same name").
func scrollIdentify(ctx *Context) Result {
	if ctx.Player == nil || ctx.Player.Identification == nil {
		return Result{Success: false, Message: "nothing happens"}
	}
	target := ctx.Item
	if target == nil {
		return Result{Success: false, Message: "nothing happens"}
	}
	ctx.Player.Identification.Identify(target.Name)
	return Result{Success: true, Message: fmt.Sprintf("This is %s!", target.Name)}
}

func scrollTeleport(ctx *Context) Result {
	if ctx.Floor == nil || ctx.Actor == nil {
		return Result{Success: false, Message: "nothing happens"}
	}
	for attempt := 0; attempt < 50; attempt++ {
		x := ctx.RNG.Intn(ctx.Floor.Width)
		y := ctx.RNG.Intn(ctx.Floor.Height)
		if ctx.Floor.TileAt(x, y).IsWalkable() {
			ctx.Actor.Pos.X, ctx.Actor.Pos.Y = x, y
			return Result{Success: true, Message: "You feel a wrenching sensation."}
		}
	}
	return Result{Success: false, Message: "nothing happens"}
}

// scrollMagicMapping reveals every tile on the current floor as explored.
func scrollMagicMapping(ctx *Context) Result {
	if ctx.Floor == nil {
		return Result{Success: false, Message: "nothing happens"}
	}
	for y := 0; y < ctx.Floor.Height; y++ {
		for x := 0; x < ctx.Floor.Width; x++ {
			ctx.Floor.MarkExplored(x, y)
		}
	}
	return Result{Success: true, Message: "The layout of the floor becomes clear to you."}
}

// scrollLight clears every dark-room flag on the current floor only (open
// question (c), resolved per spec.md).
func scrollLight(ctx *Context) Result {
	if ctx.Floor == nil {
		return Result{Success: false, Message: "nothing happens"}
	}
	for _, r := range ctx.Floor.Rooms {
		if r.Flags[game.RoomFlagDark] {
			r.Flags[game.RoomFlagDark] = false
			r.Darkness = 0
		}
	}
	return Result{Success: true, Message: "The dungeon is bathed in light."}
}

// scrollRemoveCurse strips Cursed from every equipped item. Reading it on
// an already-blessed item is a harmless no-op success per SPEC_FULL.md's
// cursed-item detail (original_source/entities/items/cursed_items.py).
func scrollRemoveCurse(ctx *Context) Result {
	if ctx.Player == nil || ctx.Player.Inventory == nil {
		return Result{Success: false, Message: "nothing happens"}
	}
	for _, slot := range []items.EquipSlot{items.SlotWeapon, items.SlotArmor, items.SlotRingLeft, items.SlotRingRight} {
		if it := ctx.Player.Inventory.EquippedAt(slot); it != nil {
			items.RemoveCurse(it)
		}
	}
	return Result{Success: true, Message: "You feel as if someone is watching over you."}
}

func scrollEnchant(slot items.EquipSlot) Func {
	return func(ctx *Context) Result {
		if ctx.Player == nil || ctx.Player.Inventory == nil {
			return Result{Success: false, Message: "nothing happens"}
		}
		it := ctx.Player.Inventory.EquippedAt(slot)
		if it == nil {
			return Result{Success: false, Message: "You have nothing to enchant."}
		}
		items.Enchant(it, 1)
		return Result{Success: true, Message: fmt.Sprintf("Your %s glows blue.", it.Name)}
	}
}
