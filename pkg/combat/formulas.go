package combat

import (
	"math"
	"math/rand"

	"rogue-core/pkg/game"
)

// CritChance is the probability a hit doubles its damage (spec 4.13).
const CritChance = 0.05

// JitterFraction is the uniform +/-20% variance applied to the base
// damage roll (spec 4.13 "then +-20% uniform jitter").
const JitterFraction = 0.2

// EXP_BASE and EXP_MULT define the level-up threshold curve (spec 4.13
// "XP >= EXP_BASE * EXP_MULT^(level-1)"). The spec leaves the constants
// themselves unspecified; DESIGN.md records this as a resolved open
// question.
const (
	ExpBase = 20.0
	ExpMult = 1.5
)

// AttackProfile is the set of inputs attack_effective folds together
// (spec 4.13 "attack_effective = base + weapon_enchant + ring_bonus -
// hunger_penalty"), kept as a plain struct so the formula itself stays a
// pure function independent of Player/Monster.
type AttackProfile struct {
	Base            int
	WeaponEnchant   int
	RingAttackBonus int
	HungerPenalty   int
}

// DefenseProfile is the set of inputs defense_effective folds together.
type DefenseProfile struct {
	Base             int
	ArmorEnchant     int
	RingDefenseBonus int
}

// EffectiveAttack computes attack_effective, floored at zero.
func EffectiveAttack(p AttackProfile) int {
	v := p.Base + p.WeaponEnchant + p.RingAttackBonus - p.HungerPenalty
	if v < 0 {
		v = 0
	}
	return v
}

// EffectiveDefense computes defense_effective, floored at zero.
func EffectiveDefense(d DefenseProfile) int {
	v := d.Base + d.ArmorEnchant + d.RingDefenseBonus
	if v < 0 {
		v = 0
	}
	return v
}

// HungerPenalty maps a player's hunger value onto the attack_effective
// penalty. The spec names the term but not its bands; resolved per
// DESIGN.md to track the same HungryThreshold/StarvingThreshold bands
// pkg/game.ThresholdOf already uses for messaging.
func HungerPenalty(hunger int) int {
	switch {
	case hunger >= game.HungryThreshold:
		return 0
	case hunger > game.StarvingThreshold:
		return 2
	default:
		return 4
	}
}

// RollDamage applies the damage formula: max(1, attackEff -
// floor(defenseEff*0.5)), +-20% uniform jitter, then a 5% chance to
// double as a critical hit.
func RollDamage(rng *rand.Rand, attackEff, defenseEff int) (damage int, crit bool) {
	base := attackEff - int(math.Floor(float64(defenseEff)*0.5))
	if base < 1 {
		base = 1
	}
	jitter := float64(base) * JitterFraction
	delta := (rng.Float64()*2 - 1) * jitter
	damage = int(math.Round(float64(base) + delta))
	if damage < 1 {
		damage = 1
	}
	if rng.Float64() < CritChance {
		damage *= 2
		crit = true
	}
	return damage, crit
}

// LevelThreshold returns the XP total required to advance from level to
// level+1.
func LevelThreshold(level int) int {
	return int(ExpBase * math.Pow(ExpMult, float64(level-1)))
}

// ExpForKill computes the XP awarded for killing a monster of the given
// level, reduced when the victim is well below the killer's level (spec
// 4.13 "XP awarded (monster.level*10, reduced for low-level victims)").
func ExpForKill(monsterLevel, killerLevel int) int {
	base := monsterLevel * 10
	if killerLevel > monsterLevel {
		diff := killerLevel - monsterLevel
		reduction := 1.0 - math.Min(0.8, float64(diff)*0.15)
		base = int(math.Round(float64(base) * reduction))
	}
	if base < 1 {
		base = 1
	}
	return base
}
