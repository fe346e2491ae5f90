package ai

import (
	"rogue-core/pkg/game"
)

// CanSee reports whether target is within viewRange of origin and every
// tile on the straight line between them is transparent (spec 4.11
// "sight of player via FOV transparency test and radius <= view_range").
// This is a cheap line check rather than a full shadowcast, adequate for
// a single monster-to-player query; the renderer's FOV mask (spec 4.15)
// is the authoritative per-cell visibility computation.
func CanSee(floor *game.Floor, origin, target game.Position, viewRange int) bool {
	if chebyshevDistance(origin, target) > viewRange {
		return false
	}
	return traceTransparent(floor, origin, target)
}

func chebyshevDistance(a, b game.Position) int {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// traceTransparent walks a Bresenham line from a to b, requiring every
// intermediate tile to be transparent. Endpoints themselves are not
// checked for transparency (a monster standing in a doorway can still be
// seen).
func traceTransparent(floor *game.Floor, a, b game.Position) bool {
	x0, y0 := a.X, a.Y
	x1, y1 := b.X, b.Y

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if (x0 != a.X || y0 != a.Y) && (x0 != b.X || y0 != b.Y) {
			if !floor.InBounds(x0, y0) || !floor.TileAt(x0, y0).IsTransparent() {
				return false
			}
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return true
}
