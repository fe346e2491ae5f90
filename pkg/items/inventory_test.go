package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackMergeOnAdd(t *testing.T) {
	inv := NewInventory()
	for i := 0; i < 5; i++ {
		it := NewItem("healing", KindPotion, "Potion of Healing")
		require.NoError(t, inv.Add(it))
	}
	entries := inv.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].StackCount)
}

func TestDifferentCurseStateDoesNotStack(t *testing.T) {
	inv := NewInventory()
	plain := NewItem("a", KindWeapon, "Dagger")
	cursed := NewItem("b", KindWeapon, "Dagger")
	cursed.Cursed = true
	require.NoError(t, inv.Add(plain))
	require.NoError(t, inv.Add(cursed))
	assert.Len(t, inv.Entries(), 2)
}

func TestCursedEquippedItemCannotBeDropped(t *testing.T) {
	inv := NewInventory()
	sword := NewItem("sword", KindWeapon, "Long Sword")
	sword.Cursed = true
	require.NoError(t, inv.Add(sword))
	require.NoError(t, inv.Equip('a', SlotWeapon))

	_, err := inv.Drop('a', 0)
	assert.ErrorIs(t, err, ErrCursed)
	assert.Len(t, inv.Entries(), 1, "inventory must be unchanged on failed drop")

	RemoveCurse(sword)
	_, err = inv.Drop('a', 0)
	assert.NoError(t, err)
	assert.Len(t, inv.Entries(), 0)
}

func TestInventoryCapacity(t *testing.T) {
	inv := NewInventory()
	for i := 0; i < Capacity; i++ {
		it := NewItem("x", KindScroll, "Scroll of Light")
		// vary name so each is a distinct stack and occupies its own slot
		it.Name = it.Name + string(rune('A'+i))
		require.NoError(t, inv.Add(it))
	}
	overflow := NewItem("y", KindFood, "Food Ration")
	err := inv.Add(overflow)
	assert.ErrorIs(t, err, ErrInventoryFull)
}

func TestIdentificationStableWithinRun(t *testing.T) {
	ids := NewIdentificationState()
	rng := newTestRand(1)
	first := ids.Appearance(AppearancePotion, "Potion of Healing", rng)
	second := ids.Appearance(AppearancePotion, "Potion of Healing", rng)
	assert.Equal(t, first, second)

	ids.Identify("Potion of Healing")
	assert.Equal(t, "Potion of Healing", ids.Appearance(AppearancePotion, "Potion of Healing", rng))
}
