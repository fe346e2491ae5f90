package combat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"rogue-core/pkg/game"
)

func TestRollDamageNeverBelowOne(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		dmg, _ := RollDamage(rng, 1, 100)
		assert.GreaterOrEqual(t, dmg, 1)
	}
}

func TestRollDamageCritDoubles(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	var sawCrit bool
	for i := 0; i < 2000 && !sawCrit; i++ {
		_, crit := RollDamage(rng, 10, 0)
		sawCrit = sawCrit || crit
	}
	assert.True(t, sawCrit, "expected at least one crit across 2000 rolls at 5% chance")
}

func TestEffectiveAttackFloorsAtZero(t *testing.T) {
	got := EffectiveAttack(AttackProfile{Base: 1, HungerPenalty: 4})
	assert.Equal(t, 0, got)
}

func TestHungerPenaltyBands(t *testing.T) {
	assert.Equal(t, 0, HungerPenalty(100))
	assert.Equal(t, 0, HungerPenalty(game.HungryThreshold))
	assert.Equal(t, 2, HungerPenalty(game.HungryThreshold-1))
	assert.Equal(t, 2, HungerPenalty(game.StarvingThreshold+1))
	assert.Equal(t, 4, HungerPenalty(game.StarvingThreshold))
	assert.Equal(t, 4, HungerPenalty(0))
}

func TestExpForKillReducedForLowLevelVictims(t *testing.T) {
	full := ExpForKill(5, 5)
	reduced := ExpForKill(1, 10)
	assert.Equal(t, 50, full)
	assert.Less(t, reduced, 10)
	assert.GreaterOrEqual(t, reduced, 1)
}

func TestLevelThresholdGrows(t *testing.T) {
	assert.Less(t, LevelThreshold(1), LevelThreshold(2))
	assert.Less(t, LevelThreshold(2), LevelThreshold(3))
}
