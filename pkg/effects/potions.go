package effects

import "rogue-core/pkg/game"

func registerPotionEffects() {
	register("potion.healing", potionHeal(25))
	register("potion.extra_healing", potionHeal(50))
	register("potion.poison", potionStatus(game.StatusPoison, 5, 2))
	register("potion.paralysis", potionStatus(game.StatusParalysis, 4, 0))
	register("potion.confusion", potionStatus(game.StatusConfusion, 10, 0))
	register("potion.hallucination", potionStatus(game.StatusHallucination, 6, 0))
}

func potionHeal(amount int) Func {
	return func(ctx *Context) Result {
		before := ctx.Actor.HP
		ctx.Actor.Heal(amount)
		healed := ctx.Actor.HP - before
		return Result{Success: true, Message: healMessage(healed)}
	}
}

func healMessage(healed int) string {
	if healed <= 0 {
		return "You feel no different."
	}
	return "You feel better."
}

func potionStatus(kind game.StatusEffectKind, duration, damage int) Func {
	return func(ctx *Context) Result {
		ctx.Actor.Effects.Add(game.StatusEffect{Kind: kind, Remaining: duration, Damage: damage})
		return Result{Success: true, Message: statusAppliedMessage(kind)}
	}
}

func statusAppliedMessage(kind game.StatusEffectKind) string {
	switch kind {
	case game.StatusPoison:
		return "You feel very sick."
	case game.StatusParalysis:
		return "You suddenly can't move!"
	case game.StatusConfusion:
		return "You feel confused."
	case game.StatusHallucination:
		return "The world seems to dance around you."
	default:
		return "You feel strange."
	}
}
