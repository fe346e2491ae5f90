package combat

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"rogue-core/pkg/effects"
	"rogue-core/pkg/game"
	"rogue-core/pkg/items"
)

// Result reports the outcome of a single attack (spec 4.13).
type Result struct {
	Damage       int
	Crit         bool
	DefenderDied bool
	LeveledUp    bool
	Messages     []string
}

// ResolvePlayerAttack resolves a melee attack from the player against a
// monster: rolls damage, applies it, and on a killing blow removes the
// monster, awards XP and checks for a level-up (spec 4.13).
func ResolvePlayerAttack(player *game.Player, monster *game.Monster, floor *game.Floor, rng *rand.Rand) Result {
	attackEff := EffectiveAttack(AttackProfile{
		Base:            player.AttackBase,
		WeaponEnchant:   weaponEnchant(player.Inventory),
		RingAttackBonus: effects.ComputeRingModifiers(player.Inventory).AttackBonus,
		HungerPenalty:   HungerPenalty(player.Hunger),
	})
	defenseEff := EffectiveDefense(DefenseProfile{Base: monster.DefenseBase})

	dmg, crit := RollDamage(rng, attackEff, defenseEff)
	died := monster.ApplyDamage(dmg)

	logrus.WithFields(logrus.Fields{
		"function": "ResolvePlayerAttack",
		"monster":  monster.ID,
		"damage":   dmg,
		"crit":     crit,
		"died":     died,
	}).Debug("player attack resolved")

	res := Result{Damage: dmg, Crit: crit, DefenderDied: died}
	if crit {
		res.Messages = append(res.Messages, "Critical hit!")
	}

	if !died && floor != nil && game.HandleSplitterDamage(monster, floor, rng) != nil {
		res.Messages = append(res.Messages, "The "+monster.Name+" splits in two!")
	}

	if died {
		if floor != nil {
			floor.Monsters.Remove(monster.ID)
		}
		player.MonstersKilled++
		xp := ExpForKill(monster.Level, player.Level)
		player.XP += xp
		res.Messages = append(res.Messages, "You have slain the "+monster.Name+"!")
		res.LeveledUp = applyLevelUps(player)
	}
	return res
}

// ResolveMonsterAttack resolves a melee attack from a monster against the
// player. It applies damage only; special effects from the monster's flags
// are applied separately by ApplySpecialAttack.
func ResolveMonsterAttack(monster *game.Monster, player *game.Player, floor *game.Floor, rng *rand.Rand) Result {
	attackEff := EffectiveAttack(AttackProfile{Base: monster.AttackBase})
	defenseEff := EffectiveDefense(DefenseProfile{
		Base:             player.DefenseBase,
		ArmorEnchant:     armorEnchant(player.Inventory),
		RingDefenseBonus: effects.ComputeRingModifiers(player.Inventory).DefenseBonus,
	})

	dmg, crit := RollDamage(rng, attackEff, defenseEff)
	died := player.ApplyDamage(dmg)

	logrus.WithFields(logrus.Fields{
		"function": "ResolveMonsterAttack",
		"monster":  monster.ID,
		"damage":   dmg,
		"crit":     crit,
		"died":     died,
	}).Debug("monster attack resolved")

	res := Result{Damage: dmg, Crit: crit, DefenderDied: died}
	if crit {
		res.Messages = append(res.Messages, "A critical hit!")
	}
	if died {
		res.Messages = append(res.Messages, "You have been slain by the "+monster.Name+"!")
	}
	return res
}

// applyLevelUps checks player.XP against the level threshold curve,
// repeatedly advancing a level (the curve can be cleared multiple times
// on one kill) and granting +5 HP/+5 MP and a full heal each time.
func applyLevelUps(player *game.Player) bool {
	leveled := false
	for player.XP >= LevelThreshold(player.Level) {
		player.Level++
		player.MaxHP += 5
		player.MaxMP += 5
		player.HP = player.MaxHP
		player.MP = player.MaxMP
		leveled = true
	}
	return leveled
}

func weaponEnchant(inv *items.Inventory) int {
	if inv == nil {
		return 0
	}
	if it := inv.EquippedAt(items.SlotWeapon); it != nil {
		return it.Enchantment
	}
	return 0
}

func armorEnchant(inv *items.Inventory) int {
	if inv == nil {
		return 0
	}
	if it := inv.EquippedAt(items.SlotArmor); it != nil {
		return it.Enchantment
	}
	return 0
}
