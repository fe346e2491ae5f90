package ai

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"rogue-core/pkg/combat"
	"rogue-core/pkg/game"
)

// SpecialCooldownTurns is the number of turns a monster waits between
// UseSpecial activations (spec 4.11 "cooldown=0 and has special and 30%
// roll -> UseSpecial -> revert"; the spec leaves the reset value open,
// fixed here per DESIGN.md).
const SpecialCooldownTurns = 5

// UseSpecialChance is the per-tick roll that fires a ready special.
const UseSpecialChance = 0.3

// RangedHitChance is a ranged monster's chance to connect per shot.
const RangedHitChance = 0.8

// Act advances one monster's state machine by a single tick and performs
// whatever action that state implies: moving via the cached distance
// field, attacking, firing at range, or invoking a special (spec 4.11).
// It returns any messages produced (nil when the tick produced none).
func Act(monster *game.Monster, player *game.Player, floor *game.Floor, field *DistanceField, rng *rand.Rand) []string {
	if !monster.Alive() || !player.Alive() {
		return nil
	}
	if monster.SpecialCooldown > 0 {
		monster.SpecialCooldown--
	}

	dist := chebyshevDistance(monster.Pos, player.Pos)
	sees := CanSee(floor, monster.Pos, player.Pos, monster.ViewRange)

	transition(monster, dist, sees, rng)

	logrus.WithFields(logrus.Fields{
		"function": "Act",
		"monster":  monster.ID,
		"state":    monster.State,
		"dist":     dist,
	}).Debug("monster ai tick")

	switch monster.State {
	case game.AIStateIdle, game.AIStatePatrol:
		return nil
	case game.AIStateFlee:
		monster.Pos = field.StepAway(floor, monster.Pos)
		return nil
	case game.AIStateUseSpecial:
		monster.SpecialCooldown = SpecialCooldownTurns
		monster.State = game.AIStateCombat
		return combat.ApplySpecialAttack(monster, player, floor, rng)
	case game.AIStateCombat:
		if monster.Flags.CanRanged && dist > 1 && float64(dist) <= float64(monster.ViewRange) && euclidean(monster.Pos, player.Pos) > 1.5 {
			return fireRanged(monster, player, rng)
		}
		if dist <= 1 {
			res := combat.ResolveMonsterAttack(monster, player, floor, rng)
			return res.Messages
		}
		monster.Pos = field.StepToward(floor, monster.Pos)
		return nil
	case game.AIStateAlert:
		monster.Pos = field.StepToward(floor, monster.Pos)
		return nil
	default:
		return nil
	}
}

// transition applies the state-change rules of spec 4.11 in priority
// order: flee overrides everything else a fleeing-capable monster could
// be doing, sight triggers Alert from a resting state, and adjacency
// escalates Alert into Combat.
func transition(monster *game.Monster, dist int, sees bool, rng *rand.Rand) {
	if monster.Flags.IsFleeing || (monster.ShouldFlee() && canFlee(monster)) {
		monster.State = game.AIStateFlee
		return
	}
	if monster.State == game.AIStateIdle || monster.State == game.AIStatePatrol {
		if sees {
			monster.State = game.AIStateAlert
		}
		return
	}
	if dist <= 1 {
		monster.State = game.AIStateCombat
	}
	if monster.State == game.AIStateCombat && hasSpecial(monster) && monster.SpecialCooldown == 0 {
		if rng.Float64() < UseSpecialChance {
			monster.State = game.AIStateUseSpecial
		}
	}
}

// canFlee reports whether this monster has any behaviour that lets it
// flee: explicit fleeing AI pattern, or the generic is_fleeing flag a
// thief sets after a successful theft.
func canFlee(monster *game.Monster) bool {
	return monster.AIPattern == game.AIFlee || monster.Flags.IsFleeing
}

func hasSpecial(monster *game.Monster) bool {
	f := monster.Flags
	return f.CanStealItems || f.CanStealGold || f.CanDrainLevel || monster.AIPattern == game.AIPsychic
}

func fireRanged(monster *game.Monster, player *game.Player, rng *rand.Rand) []string {
	if rng.Float64() >= RangedHitChance {
		return []string{"The " + monster.Name + "'s shot misses."}
	}
	res := combat.ResolveMonsterAttack(monster, player, nil, rng)
	return res.Messages
}

func euclidean(a, b game.Position) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
