package game

import "rogue-core/pkg/items"

// Disposition controls whether an NPC can be attacked and how it reacts to
// the player entering its tile (spec C12).
type Disposition int

const (
	DispositionFriendly Disposition = iota
	DispositionNeutral
	DispositionHostile
)

func (d Disposition) String() string {
	switch d {
	case DispositionFriendly:
		return "friendly"
	case DispositionNeutral:
		return "neutral"
	case DispositionHostile:
		return "hostile"
	default:
		return "unknown"
	}
}

// NPCKind distinguishes the handful of non-monster actors a floor can
// place (spec C12 "npc_kind").
type NPCKind int

const (
	NPCShopkeeper NPCKind = iota
	NPCGuide
	NPCCaptive
)

func (k NPCKind) String() string {
	switch k {
	case NPCShopkeeper:
		return "shopkeeper"
	case NPCGuide:
		return "guide"
	case NPCCaptive:
		return "captive"
	default:
		return "unknown"
	}
}

// NPC is a non-hostile (by default) actor that the player can talk to or
// trade with but does not take a turn in the combat sense (spec C12).
type NPC struct {
	Actor

	Name        string
	Kind        NPCKind
	Disposition Disposition
	DialogueID  string

	// Inventory is nil for NPCs that have nothing to trade.
	Inventory *items.Inventory
}

// NewNPC returns a friendly, inventory-less NPC at pos.
func NewNPC(id, name string, pos Position, kind NPCKind) *NPC {
	return &NPC{
		Actor:       NewActor(id, pos, 1, 0, 0),
		Name:        name,
		Kind:        kind,
		Disposition: DispositionFriendly,
	}
}

// Talkable reports whether the player interacting with this NPC should
// open dialogue rather than attack.
func (n *NPC) Talkable() bool {
	return n.Disposition != DispositionHostile
}
