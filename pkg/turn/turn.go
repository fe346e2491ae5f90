package turn

import (
	"errors"
	"math/rand"

	"github.com/sirupsen/logrus"

	"rogue-core/pkg/ai"
	"rogue-core/pkg/effects"
	"rogue-core/pkg/game"
)

// Tick-clock intervals named in spec 4.12.
const (
	HungerDecreaseInterval  = 8
	StarvingDamageInterval  = 3
	MPRecoveryInterval      = 10 // spec leaves MP_RECOVERY_INTERVAL unspecified; resolved per DESIGN.md
	StarvationDamagePerTick = 1
	MPRecoveryPerTick       = 1
)

// PlayerViewRadius is the default sight radius used to decide whether a
// resting player should abort on "monster in sight" (spec 4.12
// "aborting early on damage taken or monster-in-sight"). The full FOV
// shadowcast is a renderer concern (spec 4.15); rest only needs a cheap
// yes/no.
const PlayerViewRadius = 8

// ErrPlayerDied is returned by Tick when the player's HP reaches zero
// during the tick (spec 4.12 step 7 "player death -> terminal state").
var ErrPlayerDied = errors.New("player died")

// Manager owns the global turn counter and drives one tick at a time.
type Manager struct {
	Count int
}

// NewManager returns a fresh turn counter at 0.
func NewManager() *Manager {
	return &Manager{}
}

// Tick advances the turn counter by one and performs, in order, the
// seven steps of spec 4.12. It returns any messages produced and
// ErrPlayerDied if the player did not survive the tick.
func (m *Manager) Tick(player *game.Player, floor *game.Floor, rng *rand.Rand) ([]string, error) {
	m.Count++
	var messages []string

	// 1. Player status-effect tick.
	messages = append(messages, effects.TickStatusEffects(&player.Actor)...)

	// Passive ring regeneration is layered onto the tick rather than
	// gated by the hunger/MP clocks below; it isn't one of spec 4.12's
	// seven numbered steps but has to run somewhere each tick.
	if regen := effects.ComputeRingModifiers(player.Inventory).RegenPerTurn; regen > 0 {
		player.Heal(regen)
	}

	// 2. Monster AI, in stable insertion order.
	if !player.Alive() {
		return append(messages, "You are already dead."), ErrPlayerDied
	}
	field := ai.BuildDistanceField(floor, player.Pos)
	for _, monster := range floor.Monsters.Ordered() {
		if !player.Alive() {
			break
		}
		msgs := ai.Act(monster, player, floor, field, rng)
		messages = append(messages, msgs...)
	}

	// 3. Monster status-effect ticks.
	for _, monster := range floor.Monsters.Ordered() {
		messages = append(messages, effects.TickMonsterStatusEffects(monster, floor, rng)...)
	}

	// 4. Hunger clock.
	if m.Count%HungerDecreaseInterval == 0 {
		before := game.ThresholdOf(player.Hunger)
		if player.Hunger > 0 {
			player.Hunger--
		}
		after := game.ThresholdOf(player.Hunger)
		if after != before {
			messages = append(messages, hungerMessage(after))
		}
	}

	// 5. Starvation damage.
	if m.Count%StarvingDamageInterval == 0 && player.Hunger <= game.StarvingThreshold {
		if player.ApplyDamage(StarvationDamagePerTick) {
			messages = append(messages, "You have starved to death.")
			return messages, ErrPlayerDied
		}
		messages = append(messages, "You are starving!")
	}

	// 6. MP recovery.
	if m.Count%MPRecoveryInterval == 0 && player.Hunger > game.HungryThreshold {
		player.MP = clampMP(player.MP+MPRecoveryPerTick, player.MaxMP)
	}

	// 7. End-of-turn death check.
	if !player.Alive() {
		return messages, ErrPlayerDied
	}

	logrus.WithFields(logrus.Fields{
		"function": "Tick",
		"turn":     m.Count,
	}).Debug("tick complete")

	return messages, nil
}

func clampMP(v, max int) int {
	if v > max {
		return max
	}
	return v
}

func hungerMessage(level game.HungerThreshold) string {
	switch level {
	case game.HungerHungry:
		return "You are starting to feel hungry."
	case game.HungerWeak:
		return "You feel weak from hunger."
	case game.HungerStarving:
		return "You are starving!"
	default:
		return "Your hunger fades."
	}
}
