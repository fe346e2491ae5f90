package game

import "fmt"

// TileKind discriminates the Tile tagged variant (spec C1). A Tile is a
// small value type, not a pointer, so floors can be stored as a
// [][]Tile grid without per-cell allocation.
type TileKind int

const (
	TileWall TileKind = iota
	TileFloor
	TileStairsUp
	TileStairsDown
	TileEscapeStairs // floor 1 up-stairs, revealed only after the amulet is taken
	TileDoor
	TileTrap
	TileLightSource
)

func (k TileKind) String() string {
	switch k {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileStairsUp:
		return "stairs_up"
	case TileStairsDown:
		return "stairs_down"
	case TileEscapeStairs:
		return "escape_stairs"
	case TileDoor:
		return "door"
	case TileTrap:
		return "trap"
	case TileLightSource:
		return "light_source"
	default:
		return "unknown"
	}
}

// DoorState is the state machine driven by StateTransition (spec 4.1).
type DoorState int

const (
	DoorClosed DoorState = iota
	DoorOpen
	DoorSecret
	DoorLocked
)

func (s DoorState) String() string {
	switch s {
	case DoorClosed:
		return "closed"
	case DoorOpen:
		return "open"
	case DoorSecret:
		return "secret"
	case DoorLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// DoorAction names the player/monster action driving a door transition.
type DoorAction int

const (
	DoorActionOpen DoorAction = iota
	DoorActionClose
	DoorActionSearch
	DoorActionUnlock
)

// TrapKind enumerates the dungeon's trap varieties. Damage/behaviour for
// each kind lives in pkg/combat and pkg/effects; the tile only records
// which kind is present.
type TrapKind int

const (
	TrapDart TrapKind = iota
	TrapPoisonNeedle
	TrapPit
	TrapConfusionGas
	TrapAlarm
	TrapTeleport
)

// KeyID identifies a special-room key that unlocks a specific Locked door.
type KeyID string

// Tile is the tagged variant described in spec C1: a Wall, Floor, stairway,
// door (with sub-state), trap or light source. Every tile always carries
// its own Walkable/Transparent flags rather than recomputing them from Kind
// on every query, since FOV shadowcasting touches every visible cell once
// per player move.
type Tile struct {
	Kind        TileKind
	Walkable    bool
	Transparent bool

	// Door fields, valid when Kind == TileDoor.
	DoorState DoorState
	LockedKey KeyID

	// Trap fields, valid when Kind == TileTrap.
	TrapKind  TrapKind
	TrapArmed bool
	TrapKnown bool

	// Light source fields, valid when Kind == TileLightSource.
	LightRadius    int
	LightIntensity float64
}

// NewWallTile returns a Wall tile: not walkable, not transparent.
func NewWallTile() Tile {
	return Tile{Kind: TileWall, Walkable: false, Transparent: false}
}

// NewFloorTile returns a plain, walkable, transparent Floor tile.
func NewFloorTile() Tile {
	return Tile{Kind: TileFloor, Walkable: true, Transparent: true}
}

// NewStairsTile returns a stairway tile of the given kind (up/down/escape),
// which is always walkable and transparent.
func NewStairsTile(kind TileKind) Tile {
	return Tile{Kind: kind, Walkable: true, Transparent: true}
}

// NewDoorTile returns a door tile in the given initial state. A Secret door
// renders to the player as a Wall (see IsWalkable/IsTransparent below and
// the explored-mask consumer in pkg/server) until discovered by Search.
func NewDoorTile(state DoorState, lockedKey KeyID) Tile {
	t := Tile{Kind: TileDoor, DoorState: state, LockedKey: lockedKey}
	applyDoorPhysics(&t)
	return t
}

// NewTrapTile returns an unarmed-looking (to the player) trap tile sitting
// on an otherwise walkable floor cell.
func NewTrapTile(kind TrapKind) Tile {
	return Tile{Kind: TileTrap, Walkable: true, Transparent: true, TrapKind: kind, TrapArmed: true}
}

// NewLightSourceTile places a light source on a walkable floor cell.
func NewLightSourceTile(radius int, intensity float64) Tile {
	return Tile{Kind: TileLightSource, Walkable: true, Transparent: true, LightRadius: radius, LightIntensity: intensity}
}

func applyDoorPhysics(t *Tile) {
	switch t.DoorState {
	case DoorOpen:
		t.Walkable, t.Transparent = true, true
	case DoorClosed, DoorLocked:
		t.Walkable, t.Transparent = false, false
	case DoorSecret:
		// Presents as Wall until discovered.
		t.Walkable, t.Transparent = false, false
	}
}

// IsWalkable reports whether an actor can step onto this tile.
func (t Tile) IsWalkable() bool { return t.Walkable }

// IsTransparent reports whether line of sight passes through this tile.
func (t Tile) IsTransparent() bool { return t.Transparent }

// IsSecretDoor reports whether this tile is a not-yet-discovered secret
// door. Used by Search and by the renderer's explored-mask contract (it
// must never be told apart from TileWall before discovery).
func (t Tile) IsSecretDoor() bool {
	return t.Kind == TileDoor && t.DoorState == DoorSecret
}

// StateTransition advances a door tile's DoorState per spec 4.1:
//
//	Closed --open--> Open
//	Closed --(needs key if locked)--> Open   (handled via DoorActionUnlock)
//	Open   --close--> Closed
//	Secret --search success--> Closed
//	Locked --key--> Open
//
// It returns the new Tile and whether the action was legal; illegal
// transitions (e.g. opening an already-open door) return the tile
// unchanged and ok=false so the caller can surface BlockedAction (spec §7)
// without advancing the turn (idempotence property, spec §8).
func StateTransition(t Tile, action DoorAction, hasKey func(KeyID) bool) (Tile, bool) {
	if t.Kind != TileDoor {
		return t, false
	}
	switch action {
	case DoorActionOpen:
		switch t.DoorState {
		case DoorClosed:
			t.DoorState = DoorOpen
		default:
			return t, false
		}
	case DoorActionClose:
		if t.DoorState != DoorOpen {
			return t, false
		}
		t.DoorState = DoorClosed
	case DoorActionUnlock:
		if t.DoorState != DoorLocked {
			return t, false
		}
		if hasKey == nil || !hasKey(t.LockedKey) {
			return t, false
		}
		t.DoorState = DoorOpen
	case DoorActionSearch:
		if t.DoorState != DoorSecret {
			return t, false
		}
		t.DoorState = DoorClosed
	default:
		return t, false
	}
	applyDoorPhysics(&t)
	return t, true
}

// SecretDoorFindChance returns p_find = clamp(base + perceptionBonus, 0, 1)
// for a single search action against a single adjacent secret door, per
// spec 4.1 (base = 0.3).
func SecretDoorFindChance(perceptionBonus float64) float64 {
	const base = 0.3
	return clampf(base+perceptionBonus, 0, 1)
}

func (t Tile) String() string {
	if t.Kind == TileDoor {
		return fmt.Sprintf("door(%s)", t.DoorState)
	}
	return t.Kind.String()
}
