package items

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Template is a table-driven description of one item that can be rolled
// into existence, grounded on the teacher's data-driven item template
// idiom (items.Template in the pack's item generator). Templates are kept
// as plain Go tables rather than loaded from YAML because the population
// rules are small and fixed per spec §4.6/§4.14.
type Template struct {
	Name       string
	Kind       Kind
	EffectID   string
	MinValue   int // enchantment floor, armor/weapon only
	MaxValue   int // enchantment ceiling
	CurseRate  float64
	BlessRate  float64
}

// PotionTemplates lists every potion true-name and the effect it
// dispatches through pkg/effects (spec 4.14).
var PotionTemplates = []Template{
	{Name: "Potion of Healing", Kind: KindPotion, EffectID: "potion.healing"},
	{Name: "Potion of Extra Healing", Kind: KindPotion, EffectID: "potion.extra_healing"},
	{Name: "Potion of Poison", Kind: KindPotion, EffectID: "potion.poison"},
	{Name: "Potion of Paralysis", Kind: KindPotion, EffectID: "potion.paralysis"},
	{Name: "Potion of Confusion", Kind: KindPotion, EffectID: "potion.confusion"},
	{Name: "Potion of Hallucination", Kind: KindPotion, EffectID: "potion.hallucination"},
}

// ScrollTemplates lists every scroll true-name and its effect id.
var ScrollTemplates = []Template{
	{Name: "Scroll of Identify", Kind: KindScroll, EffectID: "scroll.identify"},
	{Name: "Scroll of Teleportation", Kind: KindScroll, EffectID: "scroll.teleport"},
	{Name: "Scroll of Magic Mapping", Kind: KindScroll, EffectID: "scroll.magic_mapping"},
	{Name: "Scroll of Light", Kind: KindScroll, EffectID: "scroll.light"},
	{Name: "Scroll of Remove Curse", Kind: KindScroll, EffectID: "scroll.remove_curse"},
	{Name: "Scroll of Enchant Weapon", Kind: KindScroll, EffectID: "scroll.enchant_weapon"},
	{Name: "Scroll of Enchant Armor", Kind: KindScroll, EffectID: "scroll.enchant_armor"},
}

// WandTemplates lists every wand true-name and its ranged effect id.
var WandTemplates = []Template{
	{Name: "Wand of Magic Missiles", Kind: KindWand, EffectID: "wand.magic_missiles"},
	{Name: "Wand of Sleep", Kind: KindWand, EffectID: "wand.sleep"},
	{Name: "Wand of Slow Monster", Kind: KindWand, EffectID: "wand.slow_monster"},
	{Name: "Wand of Polymorph", Kind: KindWand, EffectID: "wand.polymorph"},
}

// RingTemplates lists every ring true-name; rings apply a passive effect
// while equipped rather than a one-shot use effect.
var RingTemplates = []Template{
	{Name: "Ring of Strength", Kind: KindRing, EffectID: "ring.strength"},
	{Name: "Ring of Protection", Kind: KindRing, EffectID: "ring.protection"},
	{Name: "Ring of Regeneration", Kind: KindRing, EffectID: "ring.regeneration"},
}

// WeaponTemplates and ArmorTemplates are equippable gear with enchantment
// rolled at generation time.
var WeaponTemplates = []Template{
	{Name: "Dagger", Kind: KindWeapon, MinValue: -2, MaxValue: 3, CurseRate: 0.10, BlessRate: 0.10},
	{Name: "Short Sword", Kind: KindWeapon, MinValue: -2, MaxValue: 3, CurseRate: 0.10, BlessRate: 0.10},
	{Name: "Long Sword", Kind: KindWeapon, MinValue: -1, MaxValue: 4, CurseRate: 0.12, BlessRate: 0.12},
	{Name: "Mace", Kind: KindWeapon, MinValue: -1, MaxValue: 4, CurseRate: 0.10, BlessRate: 0.10},
	{Name: "Two-Handed Sword", Kind: KindWeapon, MinValue: -1, MaxValue: 5, CurseRate: 0.15, BlessRate: 0.10},
}

var ArmorTemplates = []Template{
	{Name: "Leather Armor", Kind: KindArmor, MinValue: -1, MaxValue: 3, CurseRate: 0.08, BlessRate: 0.10},
	{Name: "Studded Leather", Kind: KindArmor, MinValue: -1, MaxValue: 3, CurseRate: 0.08, BlessRate: 0.10},
	{Name: "Chain Mail", Kind: KindArmor, MinValue: -2, MaxValue: 4, CurseRate: 0.12, BlessRate: 0.10},
	{Name: "Plate Mail", Kind: KindArmor, MinValue: -2, MaxValue: 5, CurseRate: 0.15, BlessRate: 0.08},
}

// Generator rolls concrete *Item instances from the tables above,
// applying cursed/blessed/enchantment randomisation. One Generator per run
// shares the run's seeded RNG so item generation stays deterministic
// (spec §5).
type Generator struct {
	rng     *rand.Rand
	nextID  int
	idPrefx string
}

// NewGenerator returns an item generator drawing from rng.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, idPrefx: "item"}
}

func (g *Generator) newID() string {
	g.nextID++
	return fmt.Sprintf("%s-%04d", g.idPrefx, g.nextID)
}

// RollPotion returns a fresh single potion.
func (g *Generator) RollPotion() *Item {
	t := PotionTemplates[g.rng.Intn(len(PotionTemplates))]
	return g.fromTemplate(t)
}

// RollScroll returns a fresh single scroll.
func (g *Generator) RollScroll() *Item {
	t := ScrollTemplates[g.rng.Intn(len(ScrollTemplates))]
	return g.fromTemplate(t)
}

// RollWand returns a fresh wand with 3-5 random starting charges (spec
// 4.14 "charges start random 3-5").
func (g *Generator) RollWand() *Item {
	t := WandTemplates[g.rng.Intn(len(WandTemplates))]
	it := g.fromTemplate(t)
	it.MaxCharges = 5
	it.Charges = 3 + g.rng.Intn(3)
	return it
}

// RollRing returns a fresh ring.
func (g *Generator) RollRing() *Item {
	t := RingTemplates[g.rng.Intn(len(RingTemplates))]
	return g.fromTemplate(t)
}

// RollWeapon returns a fresh weapon with enchantment and curse/bless
// rolled from its template.
func (g *Generator) RollWeapon() *Item {
	t := WeaponTemplates[g.rng.Intn(len(WeaponTemplates))]
	return g.rollEquipment(t)
}

// RollArmor returns a fresh armor piece with enchantment and curse/bless
// rolled from its template.
func (g *Generator) RollArmor() *Item {
	t := ArmorTemplates[g.rng.Intn(len(ArmorTemplates))]
	return g.rollEquipment(t)
}

// RollGold returns a gold stack of the given amount.
func (g *Generator) RollGold(amount int) *Item {
	it := NewItem(g.newID(), KindGold, "Gold Pieces")
	it.StackCount = amount
	it.MaxStack = 1 << 30
	return it
}

// RollFood returns a single food ration.
func (g *Generator) RollFood() *Item {
	it := NewItem(g.newID(), KindFood, "Food Ration")
	it.EffectID = "food.ration"
	return it
}

func (g *Generator) fromTemplate(t Template) *Item {
	it := NewItem(g.newID(), t.Kind, t.Name)
	it.EffectID = t.EffectID
	return it
}

func (g *Generator) rollEquipment(t Template) *Item {
	it := g.fromTemplate(t)
	enchant := t.MinValue
	if t.MaxValue > t.MinValue {
		enchant += g.rng.Intn(t.MaxValue - t.MinValue + 1)
	}
	it.Enchantment = clampEnchant(enchant)
	if g.rng.Float64() < t.CurseRate {
		it.Cursed = true
		if it.Enchantment > 0 {
			it.Enchantment = -it.Enchantment
		}
	} else if g.rng.Float64() < t.BlessRate {
		it.Blessed = true
	}
	logrus.WithFields(logrus.Fields{
		"function": "Generator.rollEquipment",
		"item":     it.Name,
		"enchant":  it.Enchantment,
		"cursed":   it.Cursed,
	}).Debug("rolled equipment")
	return it
}

// clampEnchant enforces the -5..+10 bound from spec §3.
func clampEnchant(v int) int {
	if v < -5 {
		return -5
	}
	if v > 10 {
		return 10
	}
	return v
}

// Enchant applies a +delta to an item's enchantment, capped at +10 (spec
// 4.14 "EnchantWeapon/Armor (+1 enchant, capped at +10)").
func Enchant(it *Item, delta int) {
	it.Enchantment = clampEnchant(it.Enchantment + delta)
}
