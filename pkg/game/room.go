package game

// RoomFlag marks special handling a room needs from the generator or the
// turn engine (spec C2, C6, C7, C8).
type RoomFlag int

const (
	RoomFlagDark RoomFlag = iota
	RoomFlagIsolated
	RoomFlagVault
	RoomFlagMaze
)

// Room is a rectangular region carved by the BSP builder, or the bounding
// box of an irregular maze cell group (spec C2).
type Room struct {
	ID   string
	X, Y int
	W, H int

	// ConnectedIDs holds the ids of rooms this one has a corridor to,
	// stored as a set via map[string]struct{} so duplicate corridor
	// carves between the same pair are idempotent.
	ConnectedIDs map[string]struct{}

	// DoorPositions records where doors were carved on this room's
	// perimeter, used by the corridor builder's door policy (at most four
	// doors per room, kept apart from each other).
	DoorPositions []Position

	Flags map[RoomFlag]bool

	// SpecialKind names the kind of special room this is (e.g.
	// "treasure", "amulet_chamber"), empty for ordinary rooms.
	SpecialKind string

	// Key is the locked-door key id this room's entrance requires, empty
	// if its doors aren't locked.
	Key KeyID

	// Darkness is in [0.5, 1.0] for rooms flagged RoomFlagDark, 0
	// otherwise (spec 4.7).
	Darkness float64
}

// NewRoom returns an empty room with its sets initialized.
func NewRoom(id string, x, y, w, h int) *Room {
	return &Room{
		ID:            id,
		X:             x,
		Y:             y,
		W:             w,
		H:             h,
		ConnectedIDs:  make(map[string]struct{}),
		DoorPositions: nil,
		Flags:         make(map[RoomFlag]bool),
	}
}

// Center returns the room's integer midpoint, the point corridor carving
// aims at.
func (r *Room) Center() Position {
	return Position{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether (x, y) lies within the room's bounds.
func (r *Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Overlaps reports whether two rooms' bounding boxes intersect, optionally
// padded by margin tiles on every side (spec 4.3 "rooms separated by at
// least one wall tile").
func (r *Room) Overlaps(o *Room, margin int) bool {
	return r.X-margin < o.X+o.W &&
		r.X+r.W+margin > o.X &&
		r.Y-margin < o.Y+o.H &&
		r.Y+r.H+margin > o.Y
}

// ConnectTo records a bidirectional connection between two rooms.
func (r *Room) ConnectTo(o *Room) {
	r.ConnectedIDs[o.ID] = struct{}{}
	o.ConnectedIDs[r.ID] = struct{}{}
}

// ConnectedTo reports whether this room has a recorded connection to id.
func (r *Room) ConnectedTo(id string) bool {
	_, ok := r.ConnectedIDs[id]
	return ok
}

// HasFlag reports whether the room carries the given flag.
func (r *Room) HasFlag(f RoomFlag) bool {
	return r.Flags[f]
}
