package items

import "fmt"

// Kind discriminates the Item tagged union (spec C13).
type Kind int

const (
	KindWeapon Kind = iota
	KindArmor
	KindRing
	KindPotion
	KindScroll
	KindWand
	KindFood
	KindGold
	KindAmulet
)

func (k Kind) String() string {
	switch k {
	case KindWeapon:
		return "weapon"
	case KindArmor:
		return "armor"
	case KindRing:
		return "ring"
	case KindPotion:
		return "potion"
	case KindScroll:
		return "scroll"
	case KindWand:
		return "wand"
	case KindFood:
		return "food"
	case KindGold:
		return "gold"
	case KindAmulet:
		return "amulet"
	default:
		return "unknown"
	}
}

// Stackable reports whether this Kind merges into counted stacks rather
// than occupying one inventory slot per instance.
func (k Kind) Stackable() bool {
	switch k {
	case KindPotion, KindScroll, KindFood, KindGold:
		return true
	default:
		return false
	}
}

// Equippable reports whether this Kind occupies an EquipSlot.
func (k Kind) Equippable() bool {
	switch k {
	case KindWeapon, KindArmor, KindRing:
		return true
	default:
		return false
	}
}

// Consumable reports whether using this Kind consumes one unit of the
// stack (spec 4.14 use-item protocol step 2).
func (k Kind) Consumable() bool {
	switch k {
	case KindPotion, KindScroll, KindFood:
		return true
	default:
		return false
	}
}

// HasCharges reports whether this Kind tracks a remaining-charges counter
// rather than being consumed outright.
func (k Kind) HasCharges() bool {
	return k == KindWand
}

// AppearanceClass identifies which identification pool (spec §3
// "Identification state") an item's unidentified display name is drawn
// from. Only potions, scrolls and rings scramble; wands are optional per
// spec and are scrambled here too for richness (see DESIGN.md).
func (k Kind) AppearanceClass() (AppearanceClass, bool) {
	switch k {
	case KindPotion:
		return AppearancePotion, true
	case KindScroll:
		return AppearanceScroll, true
	case KindRing:
		return AppearanceRing, true
	case KindWand:
		return AppearanceWand, true
	default:
		return 0, false
	}
}

// Item is the common header plus payload described in spec C13. Enchant
// applies to Weapon/Armor/Ring/Wand; Charges applies to Wand only.
type Item struct {
	ID    string `json:"id" yaml:"id"`
	Kind  Kind   `json:"kind" yaml:"kind"`
	Name  string `json:"name" yaml:"name"` // true name, always internally known

	X, Y int `json:"x,omitempty" yaml:"x,omitempty"` // valid only while lying on a floor

	StackCount int `json:"stack_count" yaml:"stack_count"`
	MaxStack   int `json:"max_stack" yaml:"max_stack"`

	Cursed      bool `json:"cursed" yaml:"cursed"`
	Blessed     bool `json:"blessed" yaml:"blessed"`
	Enchantment int  `json:"enchantment" yaml:"enchantment"` // -5..+10

	Charges    int `json:"charges,omitempty" yaml:"charges,omitempty"`
	MaxCharges int `json:"max_charges,omitempty" yaml:"max_charges,omitempty"`

	// EffectID names the entry in pkg/effects' effect registry dispatched
	// when this item is used/zapped/read. Empty for items with no use
	// effect (Weapon, Armor, Gold).
	EffectID string `json:"effect_id,omitempty" yaml:"effect_id,omitempty"`
}

// NewItem returns a single-count item of the given kind and name, with
// stacking defaults applied.
func NewItem(id string, kind Kind, name string) *Item {
	it := &Item{ID: id, Kind: kind, Name: name, StackCount: 1}
	if kind.Stackable() {
		it.MaxStack = 99
	} else {
		it.MaxStack = 1
	}
	if kind.HasCharges() {
		it.MaxCharges = 5
	}
	return it
}

// StacksWith implements the stack-merge rule from spec §3: two instances
// stack iff same kind AND same name AND same cursed/blessed/enchantment
// state. Charges are deliberately excluded — two wands with different
// remaining charges never stack, since spec treats Wand as has_charges and
// charge count is per-instance identity once picked up; but wands are
// never stackable (Stackable() is false for KindWand) so this is moot.
func (i *Item) StacksWith(o *Item) bool {
	if i.Kind != o.Kind || !i.Kind.Stackable() {
		return false
	}
	return i.Name == o.Name &&
		i.Cursed == o.Cursed &&
		i.Blessed == o.Blessed &&
		i.Enchantment == o.Enchantment
}

// Clone returns a deep copy suitable for splitting a stack.
func (i *Item) Clone() *Item {
	c := *i
	return &c
}

func (i *Item) String() string {
	if i.StackCount > 1 {
		return fmt.Sprintf("%s (%d)", i.Name, i.StackCount)
	}
	return i.Name
}
