// Package dijkstra computes distance fields over a grid: every cell gets
// its step distance to the nearest goal, moving in the four cardinal
// directions at unit cost.
package dijkstra

import (
	"github.com/zyedidia/generic/heap"

	"dconn.dev/undercroft/internal/grid"
)

// Unreached marks cells no goal could reach, including blocked cells.
// Any distance at or beyond it should be treated as unreachable.
const Unreached = 1<<30 - 1

type entry struct {
	idx  int // Flat grid index (y*width + x)
	dist int
}

// Field is a distance field bound to one grid
type Field struct {
	g         *grid.Grid
	goals     []grid.Point
	distances []int
	mapped    int
	maxDist   int
}

// New creates an empty field for the grid. Every cell starts unreached.
func New(g *grid.Grid) *Field {
	f := &Field{g: g, distances: make([]int, g.Width*g.Height)}
	f.reset()
	return f
}

func (f *Field) reset() {
	for i := range f.distances {
		f.distances[i] = Unreached
	}
	f.mapped = 0
	f.maxDist = 0
}

// SetGoal adds a zero-distance source. Out-of-bounds points are ignored.
func (f *Field) SetGoal(p grid.Point) {
	if f.g.InBounds(p) {
		f.goals = append(f.goals, p)
	}
}

// ClearGoals removes every goal and forgets the last scan
func (f *Field) ClearGoals() {
	f.goals = f.goals[:0]
	f.reset()
}

// Goals returns the current goal list
func (f *Field) Goals() []grid.Point {
	return f.goals
}

// Scan fills the field from the current goals. Cells for which blocked
// returns true are never entered; a nil predicate blocks walls only.
// The grid is read at scan time, so later edits need a rescan.
func (f *Field) Scan(blocked func(grid.Cell) bool) {
	if blocked == nil {
		blocked = func(c grid.Cell) bool { return c == grid.Wall }
	}
	f.reset()

	w := f.g.Width
	open := heap.New[entry](func(a, b entry) bool { return a.dist < b.dist })
	for _, p := range f.goals {
		idx := p.Y*w + p.X
		if f.distances[idx] == 0 {
			continue
		}
		f.distances[idx] = 0
		open.Push(entry{idx: idx})
	}

	for open.Size() > 0 {
		e, _ := open.Pop()
		if e.dist > f.distances[e.idx] {
			continue // Stale entry
		}
		f.mapped++
		if e.dist > f.maxDist {
			f.maxDist = e.dist
		}

		p := grid.Point{X: e.idx % w, Y: e.idx / w}
		for _, n := range p.Adjacent() {
			if !f.g.InBounds(n) || blocked(f.g.Get(n)) {
				continue
			}
			nIdx := n.Y*w + n.X
			if next := e.dist + 1; next < f.distances[nIdx] {
				f.distances[nIdx] = next
				open.Push(entry{idx: nIdx, dist: next})
			}
		}
	}
}

// Distance returns the step distance of p from the nearest goal,
// or Unreached.
func (f *Field) Distance(p grid.Point) int {
	if !f.g.InBounds(p) {
		return Unreached
	}
	return f.distances[p.Y*f.g.Width+p.X]
}

// Reached reports whether the last scan reached p
func (f *Field) Reached(p grid.Point) bool {
	return f.Distance(p) < Unreached
}

// MappedCount is the number of cells the last scan reached, goals included.
func (f *Field) MappedCount() int {
	return f.mapped
}

// MaxDistance is the largest finite distance of the last scan.
func (f *Field) MaxDistance() int {
	return f.maxDist
}
