package ai

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rogue-core/pkg/game"
)

func TestActMonsterApproachesVisiblePlayer(t *testing.T) {
	f := openFloor(10, 10)
	player := game.NewPlayer("p", game.Position{X: 8, Y: 5})
	monster := game.NewMonster("m", "rat", game.Position{X: 3, Y: 5}, 10, 2, 1)
	monster.ViewRange = 20

	field := BuildDistanceField(f, player.Pos)
	Act(monster, player, f, field, rand.New(rand.NewSource(1)))

	assert.Equal(t, game.AIStateAlert, monster.State)
	assert.Greater(t, monster.Pos.X, 3, "monster should have stepped toward the player")
}

func TestActAdjacentMonsterAttacks(t *testing.T) {
	f := openFloor(10, 10)
	player := game.NewPlayer("p", game.Position{X: 5, Y: 5})
	player.MaxHP, player.HP = 50, 50
	monster := game.NewMonster("m", "rat", game.Position{X: 6, Y: 5}, 10, 3, 0)
	monster.ViewRange = 20
	monster.State = game.AIStateCombat

	Act(monster, player, f, BuildDistanceField(f, player.Pos), rand.New(rand.NewSource(1)))

	assert.Less(t, player.HP, 50, "adjacent combat-state monster should have attacked")
}

func TestActFleeingMonsterStepsAway(t *testing.T) {
	f := openFloor(10, 10)
	player := game.NewPlayer("p", game.Position{X: 5, Y: 5})
	monster := game.NewMonster("m", "rat", game.Position{X: 6, Y: 5}, 10, 1, 0)
	monster.HP = 1 // below FleeThreshold
	monster.AIPattern = game.AIFlee
	monster.ViewRange = 20

	field := BuildDistanceField(f, player.Pos)
	Act(monster, player, f, field, rand.New(rand.NewSource(1)))

	require.Equal(t, game.AIStateFlee, monster.State)
	// (7,5), (6,6) and (6,4) are all two steps from the player; the
	// lexicographic (dx, dy) tie-break picks (0,-1).
	assert.Equal(t, game.Position{X: 6, Y: 4}, monster.Pos, "fleeing monster should step away from the player")
}
