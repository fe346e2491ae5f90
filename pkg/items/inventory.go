package items

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Capacity is the fixed inventory size (spec §3 "Inventory"): one
// alphabetic slot ('a'..'z') per item entry, stacks occupying one slot.
const Capacity = 26

// EquipSlot names one of the four equipment slots.
type EquipSlot int

const (
	SlotWeapon EquipSlot = iota
	SlotArmor
	SlotRingLeft
	SlotRingRight
)

func (s EquipSlot) String() string {
	switch s {
	case SlotWeapon:
		return "weapon"
	case SlotArmor:
		return "armor"
	case SlotRingLeft:
		return "ring_left"
	case SlotRingRight:
		return "ring_right"
	default:
		return "unknown"
	}
}

// Inventory is the fixed-capacity, slot-lettered, stack-aware container
// described in spec §3. Equipped items remain present in entries and are
// additionally referenced by exactly one equip slot.
type Inventory struct {
	entries []*Item // index 0 == slot 'a', index 1 == 'b', ...
	equip   map[EquipSlot]*Item
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{equip: make(map[EquipSlot]*Item)}
}

// Letter returns the inventory-slot letter for entry index i ('a'+i).
func Letter(i int) byte { return byte('a' + i) }

// IndexOfLetter returns the entry index for a slot letter, or -1 if out of
// range.
func IndexOfLetter(letter byte) int {
	if letter < 'a' || letter > 'z' {
		return -1
	}
	return int(letter - 'a')
}

// Entries returns the live item list in slot order. The returned slice
// must not be mutated by the caller.
func (inv *Inventory) Entries() []*Item { return inv.entries }

// Add places an item into the inventory, merging into an existing stack
// when StacksWith matches (spec §8 "adding K identical healing potions
// yields a single entry with stack_count = K"). Returns ErrInventoryFull
// when no slot/stack can accept it.
func (inv *Inventory) Add(it *Item) error {
	if it.Kind.Stackable() {
		for _, e := range inv.entries {
			if e.StacksWith(it) {
				e.StackCount += it.StackCount
				logrus.WithFields(logrus.Fields{
					"function": "Inventory.Add",
					"item":     it.Name,
					"stack":    e.StackCount,
				}).Debug("merged into existing stack")
				return nil
			}
		}
	}
	if len(inv.entries) >= Capacity {
		return ErrInventoryFull
	}
	inv.entries = append(inv.entries, it)
	return nil
}

// ErrInventoryFull is returned by Add when all 26 slots are occupied.
var ErrInventoryFull = fmt.Errorf("inventory full")

// RemoveStack removes n units from the entry at letter, deleting the slot
// entirely when the stack reaches zero (spec 4.14 use-item protocol step
// 2). Equipped items cannot be removed this way; use Unequip first.
func (inv *Inventory) RemoveStack(letter byte, n int) (*Item, error) {
	idx := inv.findEquippedSafeIndex(letter)
	if idx < 0 {
		return nil, fmt.Errorf("no item in slot %c", letter)
	}
	e := inv.entries[idx]
	if inv.slotOf(e) != -1 {
		return nil, fmt.Errorf("item in slot %c is equipped", letter)
	}
	if n <= 0 || n > e.StackCount {
		n = e.StackCount
	}
	e.StackCount -= n
	removed := e.Clone()
	removed.StackCount = n
	if e.StackCount <= 0 {
		inv.entries = append(inv.entries[:idx], inv.entries[idx+1:]...)
	}
	return removed, nil
}

func (inv *Inventory) findEquippedSafeIndex(letter byte) int {
	idx := IndexOfLetter(letter)
	if idx < 0 || idx >= len(inv.entries) {
		return -1
	}
	return idx
}

// ItemAt returns the item at a slot letter, or nil.
func (inv *Inventory) ItemAt(letter byte) *Item {
	idx := inv.findEquippedSafeIndex(letter)
	if idx < 0 {
		return nil
	}
	return inv.entries[idx]
}

func (inv *Inventory) slotOf(it *Item) EquipSlot {
	for slot, e := range inv.equip {
		if e == it {
			return slot
		}
	}
	return -1
}

// IsEquipped reports whether an item is currently referenced by an equip
// slot.
func (inv *Inventory) IsEquipped(it *Item) bool {
	return inv.slotOf(it) != -1
}

// Equip places an item into slot, first unequipping whatever currently
// occupies it (if that item is not cursed). Returns ErrCursed if the
// currently-equipped item in the target slot is cursed (cannot be
// displaced); equipping an item that is itself cursed succeeds.
func (inv *Inventory) Equip(letter byte, slot EquipSlot) error {
	it := inv.ItemAt(letter)
	if it == nil {
		return fmt.Errorf("no item in slot %c", letter)
	}
	if !it.Kind.Equippable() {
		return fmt.Errorf("item %q is not equippable", it.Name)
	}
	if current, ok := inv.equip[slot]; ok {
		if current.Cursed {
			return ErrCursed
		}
	}
	inv.equip[slot] = it
	return nil
}

// ErrCursed is returned by Unequip/Drop when the target item is cursed and
// equipped (spec §3 invariant, §8 "cursed drop").
var ErrCursed = fmt.Errorf("cursed")

// EquippedAt returns the item currently in slot, or nil.
func (inv *Inventory) EquippedAt(slot EquipSlot) *Item {
	return inv.equip[slot]
}

// Unequip removes whatever item occupies slot, failing with ErrCursed if
// it is cursed (spec §3 "Cursed equipped items cannot be unequipped or
// dropped").
func (inv *Inventory) Unequip(slot EquipSlot) error {
	it, ok := inv.equip[slot]
	if !ok {
		return fmt.Errorf("slot %s is empty", slot)
	}
	if it.Cursed {
		return ErrCursed
	}
	delete(inv.equip, slot)
	return nil
}

// Drop implements the drop protocol (spec 4.14): cursed equipped items
// fail with ErrCursed; otherwise the item (or n units of a stack) is
// unequipped if needed and removed from the inventory, returning the item
// to place on the floor.
func (inv *Inventory) Drop(letter byte, n int) (*Item, error) {
	it := inv.ItemAt(letter)
	if it == nil {
		return nil, fmt.Errorf("no item in slot %c", letter)
	}
	if it.Cursed && inv.IsEquipped(it) {
		return nil, ErrCursed
	}
	if slot := inv.slotOf(it); slot != -1 && (n <= 0 || n >= it.StackCount) {
		delete(inv.equip, slot)
	}
	return inv.RemoveStack(letter, n)
}

// inventorySnapshot serializes an Inventory's equip map as entry indices
// rather than re-encoding equipped Items twice, so a reloaded Inventory's
// EquippedAt(slot) returns the same instance as Entries()[i] (spec §8
// round-trip invariant).
type inventorySnapshot struct {
	Entries []*Item
	Equip   map[EquipSlot]int
}

// MarshalJSON implements custom serialization for Inventory's unexported fields.
func (inv *Inventory) MarshalJSON() ([]byte, error) {
	equip := make(map[EquipSlot]int, len(inv.equip))
	for slot, it := range inv.equip {
		for i, e := range inv.entries {
			if e == it {
				equip[slot] = i
				break
			}
		}
	}
	return json.Marshal(inventorySnapshot{Entries: inv.entries, Equip: equip})
}

// UnmarshalJSON restores an Inventory from its serialized snapshot.
func (inv *Inventory) UnmarshalJSON(data []byte) error {
	var snap inventorySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	inv.entries = snap.Entries
	inv.equip = make(map[EquipSlot]*Item, len(snap.Equip))
	for slot, idx := range snap.Equip {
		if idx >= 0 && idx < len(inv.entries) {
			inv.equip[slot] = inv.entries[idx]
		}
	}
	return nil
}

// RemoveCurse clears the Cursed flag from an equipped or carried item,
// unblocking future Unequip/Drop calls (spec 4.14, example scenario 5).
// Blessed items are unaffected (no-op success), resolving the identify
// ambiguity noted in spec.md §9(c)'s sibling ambiguity for curses.
func RemoveCurse(it *Item) {
	it.Cursed = false
}
