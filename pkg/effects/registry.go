package effects

import (
	"math/rand"

	"rogue-core/pkg/game"
	"rogue-core/pkg/items"
)

// Context carries everything an effect function needs (spec §9 "Global
// state ... is passed as an explicit RunContext"). Target is nil for
// self-targeted potions/scrolls.
type Context struct {
	Actor  *game.Actor
	Target *game.Actor
	Floor  *game.Floor
	RNG    *rand.Rand
	Item   *items.Item

	// Player is set when the user is the player specifically, for
	// effects that touch player-only state (identification, hunger,
	// explored mask). nil when a monster is the actor (e.g. a thrown
	// potion), in which case such effects no-op gracefully.
	Player *game.Player

	// Direction is set for wand zaps (spec 4.13 "zap_wand(slot, direction)").
	Direction game.Direction
}

// Result reports whether the effect took hold and what message, if any,
// to surface to the player.
type Result struct {
	Success bool
	Message string
}

// Func is the "plugin effect" signature spec §9 calls for: a static table
// keyed by effect-id mapping to function pointers.
type Func func(ctx *Context) Result

var registry = map[string]Func{}

func register(id string, fn Func) {
	registry[id] = fn
}

// Dispatch runs the effect named by id, returning a failure Result if no
// such effect is registered.
func Dispatch(id string, ctx *Context) Result {
	fn, ok := registry[id]
	if !ok {
		return Result{Success: false, Message: "nothing happens"}
	}
	return fn(ctx)
}

func init() {
	registerPotionEffects()
	registerScrollEffects()
	registerWandEffects()
}
