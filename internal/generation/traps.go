package generation

import (
	"github.com/zyedidia/generic/mapset"

	"dconn.dev/undercroft/internal/grid"
)

// minOpenNeighbours is how many of the 8 surrounding cells must be open
// for a floor cell to count as open area rather than corridor
const minOpenNeighbours = 5

// scanTrapCandidates collects interior floor cells that are not obstacles
// and have at least minOpenNeighbours non-wall neighbours.
func scanTrapCandidates(g *grid.Grid, obstacles mapset.Set[grid.Point]) *PointSet {
	candidates := NewPointSet()
	for x := 1; x < g.Width-1; x++ {
		for y := 1; y < g.Height-1; y++ {
			p := grid.Point{X: x, Y: y}
			if g.Get(p) != grid.Floor || obstacles.Has(p) {
				continue
			}
			open := 0
			for _, n := range p.Neighbors() {
				if g.Get(n) != grid.Wall {
					open++
				}
			}
			if open >= minOpenNeighbours {
				candidates.Add(p)
			}
		}
	}
	return candidates
}

// carveTraps turns cfg.Traps percent of the remaining candidates into
// traps. A candidate that became a stair is dropped without counting.
func (r *run) carveTraps() {
	target := r.traps.Len() * r.cfg.Traps / 100
	placed := 0

	for placed < target && r.traps.Len() > 0 {
		p := r.traps.At(r.rng.Intn(r.traps.Len()))
		r.traps.Remove(p)
		if r.grid.Get(p).IsStair() {
			continue
		}
		r.grid.Set(p, grid.Trap)
		r.obstacles.Put(p)
		placed++
	}

	r.stats.Traps = placed
}
