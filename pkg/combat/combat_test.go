package combat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rogue-core/pkg/game"
)

func TestResolvePlayerAttackKillsAndAwardsXP(t *testing.T) {
	player := game.NewPlayer("player", game.Position{})
	player.AttackBase = 50
	monster := game.NewMonster("m1", "rat", game.Position{}, 1, 1, 0)
	monster.Level = 1

	floor := game.NewFloor(1, 10, 10)
	floor.Monsters.Add(monster)

	rng := rand.New(rand.NewSource(1))
	res := ResolvePlayerAttack(player, monster, floor, rng)

	require.True(t, res.DefenderDied)
	assert.Equal(t, 1, player.MonstersKilled)
	assert.Greater(t, player.XP, 0)
	_, stillThere := floor.Monsters.Get("m1")
	assert.False(t, stillThere)
}

func TestResolvePlayerAttackLevelsUp(t *testing.T) {
	player := game.NewPlayer("player", game.Position{})
	player.AttackBase = 50
	player.XP = LevelThreshold(1) - 1
	monster := game.NewMonster("m1", "rat", game.Position{}, 1, 1, 0)
	monster.Level = 1
	floor := game.NewFloor(1, 10, 10)
	floor.Monsters.Add(monster)

	res := ResolvePlayerAttack(player, monster, floor, rand.New(rand.NewSource(3)))

	require.True(t, res.DefenderDied)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 2, player.Level)
	assert.Equal(t, player.MaxHP, player.HP)
}

func TestDrainLevelFloorsAtOne(t *testing.T) {
	player := game.NewPlayer("player", game.Position{})
	player.Level = 1
	drainLevel(player)
	assert.Equal(t, 1, player.Level)
}

func TestStealFromPlayerSetsFlee(t *testing.T) {
	player := game.NewPlayer("player", game.Position{})
	player.Gold = 10
	monster := game.NewMonster("thief", "kobold thief", game.Position{}, 5, 2, 0)
	monster.Flags.CanStealGold = true

	msgs := stealFromPlayer(monster, player, rand.New(rand.NewSource(1)))

	require.NotEmpty(t, msgs)
	assert.True(t, monster.Flags.IsFleeing)
	assert.Equal(t, game.AIStateFlee, monster.State)
}
