package generation

import "dconn.dev/undercroft/internal/grid"

// detectDoorways finds cells that sit in a one-cell gap between walls with
// open space on both sides. When wide is set, two-cell gaps are accepted
// too and both cells are recorded. Each accepted doorway evicts its
// 4-neighbours from the set, so no two candidates touch except the halves
// of a wide pair. Columns are scanned left to right, rows top to bottom.
func detectDoorways(g *grid.Grid, wide bool) *PointSet {
	doors := NewPointSet()
	open := func(x, y int) bool { return g.Get(grid.Point{X: x, Y: y}) != grid.Wall }
	wall := func(x, y int) bool { return !open(x, y) }

	for x := 1; x < g.Width-1; x++ {
		for y := 1; y < g.Height-1; y++ {
			p := grid.Point{X: x, Y: y}
			if c := g.Get(p); c == grid.Wall || c.IsStair() {
				continue
			}

			if wide {
				// two cells wide, spanning east-west
				if x < g.Width-2 && open(x+1, y) && wall(x+2, y) && wall(x-1, y) &&
					open(x, y+1) && open(x, y-1) && open(x+1, y+1) && open(x+1, y-1) &&
					(open(x+2, y+1) || open(x+2, y-1) || open(x-1, y+1) || open(x-1, y-1)) {
					if addDoorPair(g, doors, p, p.Add(1, 0)) {
						continue
					}
				}
				// two cells wide, spanning north-south
				if y < g.Height-2 && open(x, y+1) && wall(x, y+2) && wall(x, y-1) &&
					open(x+1, y) && open(x-1, y) && open(x+1, y+1) && open(x-1, y+1) &&
					(open(x+1, y+2) || open(x-1, y+2) || open(x+1, y-1) || open(x-1, y-1)) {
					if addDoorPair(g, doors, p, p.Add(0, 1)) {
						continue
					}
				}
			}

			diagonalOpen := open(x+1, y+1) || open(x+1, y-1) || open(x-1, y+1) || open(x-1, y-1)
			if !diagonalOpen {
				continue
			}
			// walls east and west, passage north-south
			if wall(x+1, y) && wall(x-1, y) && open(x, y+1) && open(x, y-1) {
				doors.Add(p)
				evictNeighbours(doors, p, p)
				continue
			}
			// walls north and south, passage east-west
			if wall(x, y+1) && wall(x, y-1) && open(x+1, y) && open(x-1, y) {
				doors.Add(p)
				evictNeighbours(doors, p, p)
			}
		}
	}

	return doors
}

// addDoorPair records both halves of a wide doorway. A stair partner
// disqualifies the pair.
func addDoorPair(g *grid.Grid, doors *PointSet, a, b grid.Point) bool {
	if g.Get(b).IsStair() {
		return false
	}
	doors.Add(a)
	doors.Add(b)
	evictNeighbours(doors, a, b)
	evictNeighbours(doors, b, a)
	return true
}

// evictNeighbours removes the 4-neighbours of p other than keep
func evictNeighbours(doors *PointSet, p, keep grid.Point) {
	for _, n := range p.Adjacent() {
		if n != keep {
			doors.Remove(n)
		}
	}
}
