package game

import "rogue-core/pkg/items"

// Spell is a known castable effect (spec §4.15 cast_spell, §3 Player
// "spellbook"). Spells dispatch through the same effect registry as
// scrolls/wands (pkg/effects), keyed by EffectID, but are paid for with MP
// instead of being consumed from the inventory.
type Spell struct {
	ID      string
	Name    string
	MPCost  int
	EffectID string
}

// Player is the actor controlled by the person playing (spec C12).
type Player struct {
	Actor

	MP, MaxMP int
	Hunger    int // 0..100
	Gold      int

	Inventory  *items.Inventory
	Spellbook  []Spell
	Identification *items.IdentificationState

	KnownFloorOfAmulet int // 0 until discovered; always 26 once known
	HasAmulet          bool

	TurnsPlayed     int
	MonstersKilled  int
	DeepestFloor    int
}

// NewPlayer returns a level-1 player at pos with baseline stats, an empty
// inventory and a fresh per-run identification scramble.
func NewPlayer(id string, pos Position) *Player {
	return &Player{
		Actor:          NewActor(id, pos, 20, 4, 2),
		MP:             4,
		MaxMP:          4,
		Hunger:         100,
		Inventory:      items.NewInventory(),
		Identification: items.NewIdentificationState(),
		DeepestFloor:   pos.Level,
	}
}

// HungerThreshold names the bands used by the turn manager's messaging
// and the MP-recovery gate (spec 4.12 steps 4/6).
type HungerThreshold int

const (
	HungerFull HungerThreshold = iota
	HungerHungry
	HungerWeak
	HungerStarving
)

// HungryThreshold is the hunger value at or below which MP regeneration halts
// (spec 4.12 step 6 "HUNGRY_THRESHOLD").
const HungryThreshold = 20

// StarvingThreshold is the hunger value at/under which starvation damage
// applies (spec 4.12 step 5).
const StarvingThreshold = 5

// ThresholdOf classifies a hunger value into its messaging band.
func ThresholdOf(hunger int) HungerThreshold {
	switch {
	case hunger <= StarvingThreshold:
		return HungerStarving
	case hunger < HungryThreshold:
		return HungerWeak
	case hunger < 50:
		return HungerHungry
	default:
		return HungerFull
	}
}

// KnowsSpell reports whether the player has the given spell in their
// spellbook.
func (p *Player) KnowsSpell(id string) (Spell, bool) {
	for _, s := range p.Spellbook {
		if s.ID == id {
			return s, true
		}
	}
	return Spell{}, false
}

// HasKey reports whether the player's inventory currently holds a key
// item matching id, used by Tile.StateTransition for Locked doors.
func (p *Player) HasKey(id KeyID) bool {
	for _, it := range p.Inventory.Entries() {
		if it.Kind == items.KindScroll {
			continue
		}
		if KeyID(it.ID) == id && it.Name == "Key" {
			return true
		}
	}
	return false
}
