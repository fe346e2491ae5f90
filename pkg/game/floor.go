package game

import (
	"encoding/json"

	"rogue-core/pkg/items"
)

// Floor is the persistent state for a single dungeon level (spec C11).
// Floors are generated once and kept in memory for the rest of the run so
// that backtracking to an earlier level shows it exactly as it was left.
type Floor struct {
	Level  int
	Width  int
	Height int

	tiles [][]Tile

	Rooms     []*Room
	Corridors []*Corridor

	StairsUp   *Position
	StairsDown *Position

	Monsters *MonsterStore
	NPCs     []*NPC
	Items    []*items.Item

	explored [][]bool
	darkMask [][]bool

	// LightSources caches the positions of static light-emitting tiles
	// (lit rooms, torches) so the renderer doesn't have to scan the full
	// tile grid every frame.
	LightSources []Position
}

// NewFloor allocates a floor of the given size, every tile defaulting to
// wall, nothing explored.
func NewFloor(level, width, height int) *Floor {
	tiles := make([][]Tile, height)
	explored := make([][]bool, height)
	dark := make([][]bool, height)
	for y := 0; y < height; y++ {
		tiles[y] = make([]Tile, width)
		explored[y] = make([]bool, width)
		dark[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			tiles[y][x] = NewWallTile()
		}
	}
	return &Floor{
		Level:    level,
		Width:    width,
		Height:   height,
		tiles:    tiles,
		explored: explored,
		darkMask: dark,
		Monsters: NewMonsterStore(),
	}
}

// InBounds reports whether (x, y) is within the floor's grid.
func (f *Floor) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

// TileAt returns the tile at (x, y). Callers must check InBounds first;
// out-of-range coordinates return a wall tile.
func (f *Floor) TileAt(x, y int) Tile {
	if !f.InBounds(x, y) {
		return NewWallTile()
	}
	return f.tiles[y][x]
}

// SetTile writes a tile at (x, y), a no-op out of bounds.
func (f *Floor) SetTile(x, y int, t Tile) {
	if !f.InBounds(x, y) {
		return
	}
	f.tiles[y][x] = t
	if t.LightRadius > 0 {
		f.LightSources = append(f.LightSources, Position{X: x, Y: y, Level: f.Level})
	}
}

// IsExplored reports whether the player has ever seen (x, y).
func (f *Floor) IsExplored(x, y int) bool {
	if !f.InBounds(x, y) {
		return false
	}
	return f.explored[y][x]
}

// MarkExplored records that (x, y) has been seen.
func (f *Floor) MarkExplored(x, y int) {
	if !f.InBounds(x, y) {
		return
	}
	f.explored[y][x] = true
}

// IsDark reports whether (x, y) belongs to a dark room (spec C7: requires
// an equipped light source or a lit spell to see beyond one tile).
func (f *Floor) IsDark(x, y int) bool {
	if !f.InBounds(x, y) {
		return false
	}
	return f.darkMask[y][x]
}

// MarkDark flags (x, y) as part of a dark room, called by the dark-room
// builder while generating the floor.
func (f *Floor) MarkDark(x, y int) {
	if !f.InBounds(x, y) {
		return
	}
	f.darkMask[y][x] = true
}

// ItemsAt returns every item currently resting on (x, y).
func (f *Floor) ItemsAt(x, y int) []*items.Item {
	var out []*items.Item
	for _, it := range f.Items {
		if it.X == x && it.Y == y {
			out = append(out, it)
		}
	}
	return out
}

// RemoveItem deletes an item from the floor's item list, e.g. once picked
// up into an inventory.
func (f *Floor) RemoveItem(it *items.Item) {
	for i, cur := range f.Items {
		if cur == it {
			f.Items = append(f.Items[:i], f.Items[i+1:]...)
			return
		}
	}
}

// NPCAt returns the NPC standing on (x, y), if any.
func (f *Floor) NPCAt(x, y int) *NPC {
	for _, n := range f.NPCs {
		if n.Pos.X == x && n.Pos.Y == y {
			return n
		}
	}
	return nil
}

// RoomAt returns the room containing (x, y), if any.
func (f *Floor) RoomAt(x, y int) *Room {
	for _, r := range f.Rooms {
		if r.Contains(x, y) {
			return r
		}
	}
	return nil
}

// floorSnapshot mirrors Floor's exported shape plus its unexported grids, so
// a Floor round-trips through a save-file payload byte-identically (spec §8
// "saving then immediately loading a game yields byte-identical floor,
// entity and inventory state").
type floorSnapshot struct {
	Level  int
	Width  int
	Height int

	Tiles    [][]Tile
	Explored [][]bool
	DarkMask [][]bool

	Rooms     []*Room
	Corridors []*Corridor

	StairsUp   *Position
	StairsDown *Position

	Monsters *MonsterStore
	NPCs     []*NPC
	Items    []*items.Item

	LightSources []Position
}

// MarshalJSON exposes Floor's unexported tile/explored/dark grids for
// serialization without making them part of the package's public field API
// (spec §1 "encoding/json for save-file ... payloads").
func (f *Floor) MarshalJSON() ([]byte, error) {
	return json.Marshal(floorSnapshot{
		Level: f.Level, Width: f.Width, Height: f.Height,
		Tiles: f.tiles, Explored: f.explored, DarkMask: f.darkMask,
		Rooms: f.Rooms, Corridors: f.Corridors,
		StairsUp: f.StairsUp, StairsDown: f.StairsDown,
		Monsters: f.Monsters, NPCs: f.NPCs, Items: f.Items,
		LightSources: f.LightSources,
	})
}

// UnmarshalJSON restores a Floor from a floorSnapshot.
func (f *Floor) UnmarshalJSON(data []byte) error {
	var snap floorSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	f.Level, f.Width, f.Height = snap.Level, snap.Width, snap.Height
	f.tiles, f.explored, f.darkMask = snap.Tiles, snap.Explored, snap.DarkMask
	f.Rooms, f.Corridors = snap.Rooms, snap.Corridors
	f.StairsUp, f.StairsDown = snap.StairsUp, snap.StairsDown
	f.Monsters, f.NPCs, f.Items = snap.Monsters, snap.NPCs, snap.Items
	f.LightSources = snap.LightSources
	return nil
}
