package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestFloor(w, h int) *Floor {
	f := NewFloor(1, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.SetTile(x, y, NewFloorTile())
		}
	}
	return f
}

func TestHandleSplitterDamageSpawnsAndHalvesHP(t *testing.T) {
	f := openTestFloor(10, 10)
	parent := NewMonster("ooze", "ooze", Position{X: 5, Y: 5}, 20, 3, 1)
	parent.MaxHP = 20
	parent.Flags.CanSplit = true
	f.Monsters.Add(parent)

	// rng.Float64() < SplitChance (0.3) must succeed deterministically.
	rng := rand.New(rand.NewSource(42))
	var child *Monster
	for i := 0; i < 100 && child == nil; i++ {
		child = HandleSplitterDamage(parent, f, rng)
	}

	require.NotNil(t, child, "expected a split to occur within 100 attempts at 30% chance")
	assert.Equal(t, parent.MaxHP, child.MaxHP)
	assert.Equal(t, parent.ID, child.ParentID)
	_, ok := f.Monsters.Get(child.ID)
	assert.True(t, ok)
}

func TestHandleSplitterDamageRespectsGenerationCap(t *testing.T) {
	f := openTestFloor(10, 10)
	grandparent := NewMonster("g0", "ooze", Position{X: 1, Y: 1}, 4, 1, 0)
	grandparent.Flags.CanSplit = true
	parent := NewMonster("g1", "ooze", Position{X: 2, Y: 1}, 4, 1, 0)
	parent.Flags.CanSplit = true
	parent.ParentID = grandparent.ID
	child := NewMonster("g2", "ooze", Position{X: 3, Y: 1}, 4, 1, 0)
	child.Flags.CanSplit = true
	child.ParentID = parent.ID

	f.Monsters.Add(grandparent)
	f.Monsters.Add(parent)
	f.Monsters.Add(child)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		got := HandleSplitterDamage(child, f, rng)
		assert.Nil(t, got, "a generation-2 splitter must never spawn a generation-3 offspring")
	}
}

func TestHandleSplitterDamageSkipsNonSplitters(t *testing.T) {
	f := openTestFloor(10, 10)
	m := NewMonster("rat", "rat", Position{X: 1, Y: 1}, 10, 1, 0)
	f.Monsters.Add(m)
	assert.Nil(t, HandleSplitterDamage(m, f, rand.New(rand.NewSource(1))))
}
