package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rogue-core/pkg/config"
	"rogue-core/pkg/game"
)

func TestNewEngineBootstrapsFloorOne(t *testing.T) {
	e, err := NewEngine(1)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Floor.Level)
	assert.True(t, e.Player.Alive())
	assert.False(t, e.GameOver)
}

func TestNewEngineDeterministicForSameSeed(t *testing.T) {
	a, err := NewEngine(99)
	require.NoError(t, err)
	b, err := NewEngine(99)
	require.NoError(t, err)

	assert.Equal(t, a.Floor.Width, b.Floor.Width)
	assert.Equal(t, a.Floor.StairsDown, b.Floor.StairsDown)
	assert.Equal(t, a.Player.Pos, b.Player.Pos)
}

func TestNewEngineWithConfigUsesOperatorRetryPolicy(t *testing.T) {
	cfg := &config.Config{
		SaveDirectory:          "./saves",
		LogLevel:               "info",
		FPSLimit:               30,
		RetryEnabled:           true,
		RetryMaxAttempts:       2,
		RetryBackoffMultiplier: 1.5,
	}
	e, err := NewEngineWithConfig(5, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Floor.Level)
}

func TestMoveIntoWallDoesNotEndTurn(t *testing.T) {
	e, err := NewEngine(3)
	require.NoError(t, err)

	startTurns := e.Turns.Count
	// Floor edges are always walls; stepping off the generated map in the
	// +x direction repeatedly will hit one.
	for i := 0; i < e.Floor.Width; i++ {
		e.Move(1, 0)
	}
	result := e.Move(1, 0)
	if !result.ShouldEndTurn {
		assert.Equal(t, startTurns, e.Turns.Count)
	}
}

func TestEngineFloorsCachesVisitedLevels(t *testing.T) {
	e, err := NewEngine(11)
	require.NoError(t, err)
	assert.Contains(t, e.Floors(), 1)
}

func TestNewEngineFromSnapshotRebuildsLiveEngine(t *testing.T) {
	e, err := NewEngine(21)
	require.NoError(t, err)
	e.Player.Gold = 42

	run := RestoredRun{
		RunSeed:      e.Seeds.RunSeed(),
		Player:       e.Player,
		Floors:       e.Floors(),
		CurrentFloor: e.Floor.Level,
		TurnCount:    7,
	}
	restored := NewEngineFromSnapshot(run, nil)

	assert.Equal(t, 42, restored.Player.Gold)
	assert.Equal(t, 7, restored.Turns.Count)
	assert.Equal(t, e.Floor.Level, restored.Floor.Level)
	assert.Equal(t, e.Seeds.RunSeed(), restored.Seeds.RunSeed())
}

func TestEndTurnMarksGameOverOnPlayerDeath(t *testing.T) {
	e, err := NewEngine(1)
	require.NoError(t, err)
	e.Player.HP = 0

	result := e.endTurn("")
	assert.True(t, result.ShouldEndTurn)
	assert.True(t, e.GameOver)
	assert.NotEmpty(t, e.DeathCause)
}

func TestEndTurnRefusesAfterGameOver(t *testing.T) {
	e, err := NewEngine(1)
	require.NoError(t, err)
	e.GameOver = true

	result := e.endTurn("irrelevant")
	assert.False(t, result.Success)
}

func TestMonsterAtFindsLiveMonsterOnly(t *testing.T) {
	e, err := NewEngine(2)
	require.NoError(t, err)
	pos := game.Position{X: 5, Y: 5, Level: e.Floor.Level}
	m := game.NewMonster("m1", "rat", pos, 5, 1, 1)
	e.Floor.Monsters.Add(m)

	assert.NotNil(t, monsterAt(e.Floor, pos))
	m.HP = 0
	assert.Nil(t, monsterAt(e.Floor, pos))
}
