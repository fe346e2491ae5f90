package dungeon

import (
	"math/rand"

	"rogue-core/pkg/game"
)

// buildMaze replaces the BSP+corridor output with a maze (spec C5/4.5):
// pre-fill walls, carve floors on odd lattice points, extend passages
// randomly, smooth with two passes of cellular automata, prune dead
// ends, then repair connectivity by carving short L-paths from small
// components into the largest one.
func buildMaze(floor *game.Floor, p Params, rng *rand.Rand) {
	grid := make([][]bool, floor.Height) // true = floor
	for y := range grid {
		grid[y] = make([]bool, floor.Width)
	}

	carveMazePassages(grid, p, rng)
	for i := 0; i < 2; i++ {
		grid = cellularAutomataPass(grid)
	}
	pruneDeadEnds(grid, rng, 0.6)
	repairConnectivity(grid, rng)

	for y := 0; y < floor.Height; y++ {
		for x := 0; x < floor.Width; x++ {
			if grid[y][x] {
				floor.SetTile(x, y, game.NewFloorTile())
			} else {
				floor.SetTile(x, y, game.NewWallTile())
			}
		}
	}
}

func carveMazePassages(grid [][]bool, p Params, rng *rand.Rand) {
	h, w := len(grid), len(grid[0])
	for y := 1; y < h-1; y += 2 {
		for x := 1; x < w-1; x += 2 {
			grid[y][x] = true
			extendPassage(grid, x, y, p.MazeComplexity, rng)
		}
	}
}

func extendPassage(grid [][]bool, x, y int, complexity float64, rng *rand.Rand) {
	h, w := len(grid), len(grid[0])
	dirs := [][2]int{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
	rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
	for _, d := range dirs {
		if rng.Float64() >= complexity {
			continue
		}
		nx, ny := x+d[0], y+d[1]
		if nx <= 0 || ny <= 0 || nx >= w-1 || ny >= h-1 {
			continue
		}
		if grid[ny][nx] {
			continue
		}
		grid[ny][nx] = true
		grid[y+d[1]/2][x+d[0]/2] = true
	}
}

// cellularAutomataPass applies one smoothing iteration: a wall with more
// than 4 floor neighbours becomes floor ("birth"), and a floor with more
// than 7 wall neighbours becomes wall ("death"). Spec phrasing is birth>4
// walls->floor, death>7 walls->wall; we read this as counting
// floor-neighbours for birth and wall-neighbours for death, the
// conventional automaton used for cave generation.
func cellularAutomataPass(grid [][]bool) [][]bool {
	h, w := len(grid), len(grid[0])
	next := make([][]bool, h)
	for y := 0; y < h; y++ {
		next[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			floorNeighbours := countNeighbours(grid, x, y, true)
			wallNeighbours := countNeighbours(grid, x, y, false)
			switch {
			case !grid[y][x] && floorNeighbours > 4:
				next[y][x] = true
			case grid[y][x] && wallNeighbours > 7:
				next[y][x] = false
			default:
				next[y][x] = grid[y][x]
			}
		}
	}
	return next
}

func countNeighbours(grid [][]bool, x, y int, wantFloor bool) int {
	h, w := len(grid), len(grid[0])
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				if !wantFloor {
					count++
				}
				continue
			}
			if grid[ny][nx] == wantFloor {
				count++
			}
		}
	}
	return count
}

func pruneDeadEnds(grid [][]bool, rng *rand.Rand, chance float64) {
	h, w := len(grid), len(grid[0])
	changed := true
	for changed {
		changed = false
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				if !grid[y][x] {
					continue
				}
				if countNeighbours(grid, x, y, true) != 1 {
					continue
				}
				if rng.Float64() < chance {
					grid[y][x] = false
					changed = true
				}
			}
		}
	}
}

// repairConnectivity flood-fills to find the largest floor component,
// then carves a short L-path from any smaller component within distance
// 4 of it; islands beyond that distance are reverted to wall (spec 4.5).
func repairConnectivity(grid [][]bool, rng *rand.Rand) {
	h, w := len(grid), len(grid[0])
	visited := make([][]bool, h)
	for y := range visited {
		visited[y] = make([]bool, w)
	}

	var components [][][2]int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if grid[y][x] && !visited[y][x] {
				components = append(components, floodFill(grid, visited, x, y))
			}
		}
	}
	if len(components) <= 1 {
		return
	}

	largest := 0
	for i, c := range components {
		if len(c) > len(components[largest]) {
			largest = i
		}
		_ = i
	}

	for i, c := range components {
		if i == largest {
			continue
		}
		if !connectComponent(grid, c, components[largest], 4) {
			for _, p := range c {
				grid[p[1]][p[0]] = false
			}
		}
	}
}

func floodFill(grid [][]bool, visited [][]bool, sx, sy int) [][2]int {
	h, w := len(grid), len(grid[0])
	stack := [][2]int{{sx, sy}}
	visited[sy][sx] = true
	var out [][2]int
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, p)
		for _, d := range [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
			nx, ny := p[0]+d[0], p[1]+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			if grid[ny][nx] && !visited[ny][nx] {
				visited[ny][nx] = true
				stack = append(stack, [2]int{nx, ny})
			}
		}
	}
	return out
}

func connectComponent(grid [][]bool, small, large [][2]int, maxDist int) bool {
	for _, sp := range small {
		for _, lp := range large {
			if absInt(sp[0]-lp[0])+absInt(sp[1]-lp[1]) <= maxDist {
				carveLPath(grid, sp, lp)
				return true
			}
		}
	}
	return false
}

func carveLPath(grid [][]bool, a, b [2]int) {
	x, y := a[0], a[1]
	for x != b[0] {
		grid[y][x] = true
		if x < b[0] {
			x++
		} else {
			x--
		}
	}
	for y != b[1] {
		grid[y][x] = true
		if y < b[1] {
			y++
		} else {
			y--
		}
	}
	grid[b[1]][b[0]] = true
}
