package game

// Corridor is a carved path joining two rooms, either a straight/L-shaped
// segment from the MST builder or a winding segment from the maze builder
// (spec C2, C4, C5).
type Corridor struct {
	ID    string
	Start Position
	End   Position

	// Points lists every tile the corridor occupies, so the path can be
	// traced without recomputing it. Each straight leg is listed in
	// ascending coordinate order, not necessarily from Start toward End.
	Points []Position

	// RoomsJoined holds the two room ids this corridor connects. A loop
	// corridor added by the augmentation pass (spec 4.4) still only ever
	// joins two rooms, even though the MST already connected them via a
	// longer path.
	RoomsJoined [2]string
}

// NewCorridor returns a corridor with no points yet.
func NewCorridor(id string, start, end Position, roomA, roomB string) *Corridor {
	return &Corridor{
		ID:          id,
		Start:       start,
		End:         end,
		RoomsJoined: [2]string{roomA, roomB},
	}
}

// Length returns the number of tiles the corridor occupies.
func (c *Corridor) Length() int {
	return len(c.Points)
}

// Contains reports whether (x, y) lies on this corridor's path.
func (c *Corridor) Contains(x, y int) bool {
	for _, p := range c.Points {
		if p.X == x && p.Y == y {
			return true
		}
	}
	return false
}
