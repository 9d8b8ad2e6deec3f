package generation

import (
	"dconn.dev/undercroft/internal/grid"
	"dconn.dev/undercroft/internal/region"
)

// placeBoulders turns a random cfg.Boulders percent of the open interior
// into wall. Open interior is every cell not within one step (8-way) of a
// wall or stair, so boulders never narrow a corridor. If the boulders cut
// the stairs apart, the latest ones are taken back until the stairs
// reconnect; pockets they still enclose are then sealed.
func (r *run) placeBoulders() {
	w, h := r.grid.Width, r.grid.Height
	walls := region.FromCells(r.grid, grid.Wall, grid.StairUp, grid.StairDown)
	viable := region.Rectangle(w, h).Difference(walls.Dilate())

	count := viable.Count() * r.cfg.Boulders / 100
	picks := viable.Sample(r.rng, count)
	if len(picks) == 0 {
		return
	}
	previous := make([]grid.Cell, len(picks))
	for i, p := range picks {
		previous[i] = r.grid.Get(p)
	}

	keep := func(n int) {
		for i, p := range picks {
			if i < n {
				r.grid.Set(p, grid.Wall)
			} else {
				r.grid.Set(p, previous[i])
			}
		}
	}

	keep(len(picks))
	kept := len(picks)
	if !r.stairsConnected() {
		// the first n boulders stay connected for small n, so search for
		// the largest such n
		lo, hi := 0, len(picks)
		for hi-lo > 1 {
			mid := (lo + hi) / 2
			keep(mid)
			if r.stairsConnected() {
				lo = mid
			} else {
				hi = mid
			}
		}
		keep(lo)
		kept = lo
	}

	for _, p := range picks[:kept] {
		r.obstacles.Put(p)
	}
	r.stats.Boulders = kept

	if field, ok := r.stairsField(); ok {
		r.seal(field)
	}
}
