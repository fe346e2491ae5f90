package turn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rogue-core/pkg/game"
)

func openFloor(w, h int) *game.Floor {
	f := game.NewFloor(1, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.SetTile(x, y, game.NewFloorTile())
		}
	}
	return f
}

func TestTickIncrementsCounter(t *testing.T) {
	m := NewManager()
	player := game.NewPlayer("p", game.Position{X: 1, Y: 1})
	floor := openFloor(5, 5)

	_, err := m.Tick(player, floor, rand.New(rand.NewSource(1)))

	require.NoError(t, err)
	assert.Equal(t, 1, m.Count)
}

func TestTickDecreasesHungerOnInterval(t *testing.T) {
	m := NewManager()
	player := game.NewPlayer("p", game.Position{X: 1, Y: 1})
	player.Hunger = 100
	floor := openFloor(5, 5)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < HungerDecreaseInterval-1; i++ {
		_, err := m.Tick(player, floor, rng)
		require.NoError(t, err)
	}
	assert.Equal(t, 100, player.Hunger, "hunger should not decrease before the interval elapses")

	_, err := m.Tick(player, floor, rng)
	require.NoError(t, err)
	assert.Equal(t, 99, player.Hunger)
}

func TestTickStarvationDamageWhenHungerLow(t *testing.T) {
	m := &Manager{Count: StarvingDamageInterval - 1}
	player := game.NewPlayer("p", game.Position{X: 1, Y: 1})
	player.Hunger = game.StarvingThreshold
	player.HP = 10
	floor := openFloor(5, 5)

	msgs, err := m.Tick(player, floor, rand.New(rand.NewSource(1)))

	require.NoError(t, err)
	assert.Equal(t, 9, player.HP)
	assert.Contains(t, msgs, "You are starving!")
}

func TestTickReturnsErrPlayerDiedOnStarvation(t *testing.T) {
	m := &Manager{Count: StarvingDamageInterval - 1}
	player := game.NewPlayer("p", game.Position{X: 1, Y: 1})
	player.Hunger = game.StarvingThreshold
	player.HP = 1
	floor := openFloor(5, 5)

	_, err := m.Tick(player, floor, rand.New(rand.NewSource(1)))

	require.ErrorIs(t, err, ErrPlayerDied)
}

func TestRestStopsOnDamage(t *testing.T) {
	m := NewManager()
	player := game.NewPlayer("p", game.Position{X: 2, Y: 2})
	player.MaxHP, player.HP = 50, 50
	floor := openFloor(5, 5)
	monster := game.NewMonster("m", "rat", game.Position{X: 3, Y: 2}, 10, 5, 0)
	monster.State = game.AIStateCombat
	floor.Monsters.Add(monster)

	result, err := m.Rest(player, floor, rand.New(rand.NewSource(1)), 20)

	require.NoError(t, err)
	assert.True(t, result.Interrupted)
	assert.Equal(t, "damage taken", result.Reason)
}

func TestRestRunsFullDurationWhenUndisturbed(t *testing.T) {
	m := NewManager()
	player := game.NewPlayer("p", game.Position{X: 2, Y: 2})
	floor := openFloor(20, 20)

	result, err := m.Rest(player, floor, rand.New(rand.NewSource(1)), 5)

	require.NoError(t, err)
	assert.False(t, result.Interrupted)
	assert.Equal(t, 5, result.TicksElapsed)
}
