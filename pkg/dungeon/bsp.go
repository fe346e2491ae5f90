package dungeon

import (
	"math/rand"

	"rogue-core/pkg/game"
)

// leaf is a rectangular region produced by recursive BSP splitting.
type leaf struct {
	x, y, w, h int
	depth      int
}

// buildRooms runs the BSP room builder (spec C3/4.2): recursively split
// the floor area into leaves, then place one room per leaf using the
// placement strategy appropriate to the floor band.
func buildRooms(p Params, rng *rand.Rand) []*game.Room {
	root := leaf{x: 1, y: 1, w: p.Width - 2, h: p.Height - 2, depth: 0}
	leaves := splitLeaf(root, p, rng)

	strategy := StrategyForLevel(p.Level)
	rooms := make([]*game.Room, 0, len(leaves))
	for i, lf := range leaves {
		r := placeRoom(lf, p, strategy, rng)
		if r == nil {
			continue
		}
		r.ID = roomID(i)
		rooms = append(rooms, r)
	}
	return rooms
}

func roomID(i int) string {
	return "room-" + itoaDungeon(i)
}

func itoaDungeon(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// splitLeaf recursively partitions lf until the side it would split is
// shorter than 2*p.MinSplitSize or p.MaxSplitDepth is reached, returning
// the leaves that will each host a room.
func splitLeaf(lf leaf, p Params, rng *rand.Rand) []leaf {
	if lf.depth >= p.MaxSplitDepth || lf.w < p.MinSplitSize*2 && lf.h < p.MinSplitSize*2 {
		return []leaf{lf}
	}

	splitHorizontally := lf.w < lf.h
	if lf.w >= p.MinSplitSize*2 && lf.h >= p.MinSplitSize*2 {
		splitHorizontally = rng.Intn(2) == 0
	}

	if splitHorizontally {
		if lf.h < p.MinSplitSize*2 {
			return []leaf{lf}
		}
		split := p.MinSplitSize + rng.Intn(lf.h-2*p.MinSplitSize+1)
		top := leaf{x: lf.x, y: lf.y, w: lf.w, h: split, depth: lf.depth + 1}
		bottom := leaf{x: lf.x, y: lf.y + split, w: lf.w, h: lf.h - split, depth: lf.depth + 1}
		return append(splitLeaf(top, p, rng), splitLeaf(bottom, p, rng)...)
	}

	if lf.w < p.MinSplitSize*2 {
		return []leaf{lf}
	}
	split := p.MinSplitSize + rng.Intn(lf.w-2*p.MinSplitSize+1)
	left := leaf{x: lf.x, y: lf.y, w: split, h: lf.h, depth: lf.depth + 1}
	right := leaf{x: lf.x + split, y: lf.y, w: lf.w - split, h: lf.h, depth: lf.depth + 1}
	return append(splitLeaf(left, p, rng), splitLeaf(right, p, rng)...)
}

// placeRoom picks a room size and position within lf according to
// strategy, a pure function of (leaf, rng) per spec 4.2. Returns nil if
// the leaf is too small to host even the minimum room size.
func placeRoom(lf leaf, p Params, strategy PlacementStrategy, rng *rand.Rand) *game.Room {
	maxW := minInt(p.RoomMaxW, lf.w-2*p.RoomMargin)
	maxH := minInt(p.RoomMaxH, lf.h-2*p.RoomMargin)
	if maxW < p.RoomMinW || maxH < p.RoomMinH {
		return nil
	}

	w := p.RoomMinW + rng.Intn(maxW-p.RoomMinW+1)
	h := p.RoomMinH + rng.Intn(maxH-p.RoomMinH+1)

	freeW := lf.w - 2*p.RoomMargin - w
	freeH := lf.h - 2*p.RoomMargin - h
	if freeW < 0 {
		freeW = 0
	}
	if freeH < 0 {
		freeH = 0
	}

	var ox, oy int
	switch strategy {
	case PlacementCenterBias:
		ox = freeW / 2
		oy = freeH / 2
	case PlacementUniform:
		ox = rng.Intn(freeW + 1)
		oy = rng.Intn(freeH + 1)
	case PlacementEdgeBias:
		if rng.Intn(2) == 0 {
			ox = 0
		} else {
			ox = freeW
		}
		if rng.Intn(2) == 0 {
			oy = 0
		} else {
			oy = freeH
		}
	case PlacementGoldenRatio:
		const phi = 0.618
		ox = int(float64(freeW) * phi)
		oy = int(float64(freeH) * phi)
	case PlacementCorner:
		corners := [][2]int{{0, 0}, {freeW, 0}, {0, freeH}, {freeW, freeH}}
		c := corners[rng.Intn(len(corners))]
		ox, oy = c[0], c[1]
	}

	x := lf.x + p.RoomMargin + ox
	y := lf.y + p.RoomMargin + oy
	return game.NewRoom("", x, y, w, h)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
