package effects

import "rogue-core/pkg/game"

func registerWandEffects() {
	register("wand.magic_missiles", wandDamage(8))
	register("wand.sleep", wandStatus(game.StatusParalysis, 6))
	register("wand.slow_monster", wandSlow)
	register("wand.polymorph", wandPolymorph)
}

// findTargetInDirection walks tiles from actor in Direction until it
// finds a live monster, a non-transparent tile, or runs out of floor,
// mirroring the straight-line ranged check spec 4.11 uses for ranged
// monsters.
func findTargetInDirection(ctx *Context) *game.Monster {
	if ctx.Floor == nil || ctx.Actor == nil {
		return nil
	}
	dx, dy := ctx.Direction.Delta()
	if dx == 0 && dy == 0 {
		return nil
	}
	x, y := ctx.Actor.Pos.X, ctx.Actor.Pos.Y
	for step := 0; step < 15; step++ {
		x += dx
		y += dy
		if !ctx.Floor.InBounds(x, y) {
			return nil
		}
		tile := ctx.Floor.TileAt(x, y)
		if !tile.IsTransparent() && !tile.IsWalkable() {
			return nil
		}
		for _, m := range ctx.Floor.Monsters.Ordered() {
			if m.Pos.X == x && m.Pos.Y == y && m.Alive() {
				return m
			}
		}
	}
	return nil
}

func wandDamage(amount int) Func {
	return func(ctx *Context) Result {
		m := findTargetInDirection(ctx)
		if m == nil {
			return Result{Success: false, Message: "The wand fizzles against the wall."}
		}
		jitter := amount/4 + 1
		dmg := amount - jitter + ctx.RNG.Intn(2*jitter+1)
		died := m.ApplyDamage(dmg)
		if died {
			return Result{Success: true, Message: "The " + m.Name + " is destroyed!"}
		}
		if ctx.Floor != nil && game.HandleSplitterDamage(m, ctx.Floor, ctx.RNG) != nil {
			return Result{Success: true, Message: "The " + m.Name + " splits in two!"}
		}
		return Result{Success: true, Message: "The " + m.Name + " is struck!"}
	}
}

func wandStatus(kind game.StatusEffectKind, duration int) Func {
	return func(ctx *Context) Result {
		m := findTargetInDirection(ctx)
		if m == nil {
			return Result{Success: false, Message: "The wand fizzles against the wall."}
		}
		m.Effects.Add(game.StatusEffect{Kind: kind, Remaining: duration})
		return Result{Success: true, Message: "The " + m.Name + " is affected!"}
	}
}

func wandSlow(ctx *Context) Result {
	m := findTargetInDirection(ctx)
	if m == nil {
		return Result{Success: false, Message: "The wand fizzles against the wall."}
	}
	m.SpecialCooldown += 3
	return Result{Success: true, Message: "The " + m.Name + " slows down."}
}

// wandPolymorph replaces the target with a fresh, randomly-statted
// monster of unknown kind — a gamble rather than a reliable attack, per
// the classic Rogue behaviour this spec supplements (original_source has
// no direct analogue; this is the conventional polymorph effect).
func wandPolymorph(ctx *Context) Result {
	m := findTargetInDirection(ctx)
	if m == nil {
		return Result{Success: false, Message: "The wand fizzles against the wall."}
	}
	newHP := 4 + ctx.RNG.Intn(20)
	m.HP, m.MaxHP = newHP, newHP
	m.AttackBase = 1 + ctx.RNG.Intn(8)
	m.DefenseBase = ctx.RNG.Intn(6)
	m.Name = "shapeless horror"
	return Result{Success: true, Message: "The monster changes shape!"}
}
