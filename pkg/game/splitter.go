package game

import (
	"fmt"
	"math/rand"
)

// SplitChance is the per-hit probability a splitter spawns an offspring
// (spec 4.11 "probability 0.3").
const SplitChance = 0.3

// MaxSplitGenerations caps how many ParentID hops a splitter lineage may
// grow before it stops spawning (DESIGN.md "Monster split cap" open
// question decision).
const MaxSplitGenerations = 2

// HandleSplitterDamage implements spec 4.11's splitter behaviour:
// "Splitters, on taking damage, spawn one offspring with halved
// HP/max_hp in an adjacent free cell with probability 0.3; parent HP is
// halved at the same time." Call this from every site that reduces a
// surviving monster's HP (melee, ranged, status-effect damage) when
// Flags.CanSplit is set. Returns the offspring, or nil if it didn't
// split this hit.
func HandleSplitterDamage(monster *Monster, floor *Floor, rng *rand.Rand) *Monster {
	if !monster.Flags.CanSplit || !monster.Alive() {
		return nil
	}
	if splitGeneration(monster, floor) >= MaxSplitGenerations {
		return nil
	}
	if rng.Float64() >= SplitChance {
		return nil
	}
	cell, ok := freeAdjacentCell(monster, floor)
	if !ok {
		return nil
	}

	childHP := monster.MaxHP / 2
	if childHP < 1 {
		childHP = 1
	}
	monster.MaxHP = childHP
	if monster.HP > childHP {
		monster.HP = childHP
	}

	childID := fmt.Sprintf("%s-split-%d", monster.ID, len(monster.SplitChildIDs))
	child := NewMonster(childID, monster.Name, cell, childHP, monster.AttackBase, monster.DefenseBase)
	child.KindChar = monster.KindChar
	child.ExpValue = monster.ExpValue
	child.ViewRange = monster.ViewRange
	child.Color = monster.Color
	child.AIPattern = monster.AIPattern
	child.Flags = monster.Flags
	child.ParentID = monster.ID

	monster.SplitChildIDs = append(monster.SplitChildIDs, childID)
	floor.Monsters.Add(child)
	return child
}

// splitGeneration counts ParentID hops back to the original ancestor,
// the "arena + numeric id" stand-in for a depth field.
func splitGeneration(monster *Monster, floor *Floor) int {
	depth := 0
	current := monster
	for current.ParentID != "" {
		parent, ok := floor.Monsters.Get(current.ParentID)
		if !ok {
			break
		}
		depth++
		current = parent
	}
	return depth
}

func freeAdjacentCell(monster *Monster, floor *Floor) (Position, bool) {
	occupied := make(map[Position]bool, floor.Monsters.Len())
	for _, m := range floor.Monsters.Ordered() {
		occupied[m.Pos] = true
	}
	for _, n := range splitterNeighbors(monster.Pos) {
		if !floor.InBounds(n.X, n.Y) {
			continue
		}
		if !floor.TileAt(n.X, n.Y).IsWalkable() {
			continue
		}
		if occupied[n] {
			continue
		}
		return n, true
	}
	return Position{}, false
}

func splitterNeighbors(p Position) []Position {
	return []Position{
		{X: p.X + 1, Y: p.Y, Level: p.Level},
		{X: p.X - 1, Y: p.Y, Level: p.Level},
		{X: p.X, Y: p.Y + 1, Level: p.Level},
		{X: p.X, Y: p.Y - 1, Level: p.Level},
	}
}
