package generation

import "dconn.dev/undercroft/internal/grid"

// placeDoors carves doors into cfg.Doors percent of the candidates. When a
// carved door still has a candidate 4-neighbour, that neighbour is the
// other half of a wide doorway and gets walled up so the opening stays a
// single door. Stair cells are dropped from the pool without counting.
func (r *run) placeDoors(candidates *PointSet) {
	target := candidates.Len() * r.cfg.Doors / 100
	placed := 0

	for placed < target && candidates.Len() > 0 {
		p := candidates.At(r.rng.Intn(candidates.Len()))
		candidates.Remove(p)
		if r.grid.Get(p).IsStair() {
			continue
		}

		if r.grid.Get(p.Add(-1, 0)) != grid.Wall && r.grid.Get(p.Add(1, 0)) != grid.Wall {
			r.grid.Set(p, grid.DoorHorizontal)
		} else {
			r.grid.Set(p, grid.DoorVertical)
		}
		r.obstacles.Put(p)
		placed++

		for _, n := range p.Adjacent() {
			if candidates.Has(n) {
				r.grid.Set(n, grid.Wall)
				r.obstacles.Put(n)
				candidates.Remove(n)
				break
			}
		}
	}

	r.stats.Doors = placed
}
