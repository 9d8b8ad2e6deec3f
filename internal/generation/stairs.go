package generation

import (
	"dconn.dev/undercroft/internal/dijkstra"
	"dconn.dev/undercroft/internal/grid"
	"dconn.dev/undercroft/internal/rng"
)

const (
	// maxStairAttempts bounds the search for a well-connected up-stair
	maxStairAttempts = 15
	// downStairBand is the fraction of the farthest distance a down-stair
	// must at least reach
	downStairBand = 0.7
)

// placeStairs picks an up-stair whose reachable area spans at least
// width+height cells, seals every cell it cannot reach, then scans from a
// random offset for a down-stair far from it. A map without floor keeps
// both stairs unset.
func (r *run) placeStairs() {
	floors := r.grid.Find(grid.Floor)
	if len(floors) == 0 {
		return
	}

	field := dijkstra.New(r.grid)
	var up grid.Point
	for attempt := 0; attempt < maxStairAttempts; attempt++ {
		up = rng.Pick(r.rng, floors)
		field.ClearGoals()
		field.SetGoal(up)
		field.Scan(nil)
		if field.MappedCount() >= r.grid.Width+r.grid.Height {
			break
		}
	}
	r.seal(field)

	r.setStair(&r.stairsUp, up, grid.StairUp)
	if down, ok := r.findDownStair(field, up); ok {
		r.setStair(&r.stairsDown, down, grid.StairDown)
	}
}

// findDownStair returns the first reached cell, scanning columns then rows
// from a random offset, whose distance lies in [band*max, max). Maps too
// small for the band fall back to the first cell at the farthest distance.
func (r *run) findDownStair(field *dijkstra.Field, up grid.Point) (grid.Point, bool) {
	w, h := r.grid.Width, r.grid.Height
	maxDist := field.MaxDistance()
	if maxDist == 0 {
		return grid.Point{}, false
	}
	lo := float64(maxDist) * downStairBand
	wOff, hOff := r.rng.Intn(w), r.rng.Intn(h)

	var farthest *grid.Point
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			p := grid.Point{X: (i + wOff) % w, Y: (j + hOff) % h}
			d := field.Distance(p)
			if d >= dijkstra.Unreached || p == up {
				continue
			}
			if float64(d) >= lo && d < maxDist {
				return p, true
			}
			if d == maxDist && farthest == nil {
				q := p
				farthest = &q
			}
		}
	}
	if farthest == nil {
		return grid.Point{}, false
	}
	return *farthest, true
}

// respectStairs keeps the stair symbols already in the layout and seals
// everything no stair can reach. Without any stair symbol it falls back to
// placeStairs.
func (r *run) respectStairs() {
	ups := r.grid.Find(grid.StairUp)
	downs := r.grid.Find(grid.StairDown)
	if len(ups) == 0 && len(downs) == 0 {
		r.placeStairs()
		return
	}

	field := dijkstra.New(r.grid)
	for _, p := range append(ups, downs...) {
		field.SetGoal(p)
		r.obstacles.Put(p)
	}
	field.Scan(nil)
	r.seal(field)

	if len(ups) > 0 {
		up := ups[0]
		r.stairsUp = &up
	}
	if len(downs) > 0 {
		down := downs[0]
		r.stairsDown = &down
	}
}

func (r *run) setStair(slot **grid.Point, p grid.Point, c grid.Cell) {
	r.grid.Set(p, c)
	r.obstacles.Put(p)
	*slot = &p
}

// seal walls off every non-wall cell the field did not reach
func (r *run) seal(field *dijkstra.Field) {
	for y := 0; y < r.grid.Height; y++ {
		for x := 0; x < r.grid.Width; x++ {
			p := grid.Point{X: x, Y: y}
			if r.grid.Get(p) != grid.Wall && !field.Reached(p) {
				r.grid.Set(p, grid.Wall)
				r.stats.Sealed++
			}
		}
	}
}

// stairsField scans from every placed stair. ok is false when the run has
// no stairs.
func (r *run) stairsField() (*dijkstra.Field, bool) {
	if r.stairsUp == nil && r.stairsDown == nil {
		return nil, false
	}
	field := dijkstra.New(r.grid)
	if r.stairsUp != nil {
		field.SetGoal(*r.stairsUp)
	}
	if r.stairsDown != nil {
		field.SetGoal(*r.stairsDown)
	}
	field.Scan(nil)
	return field, true
}

// stairsConnected reports whether the down-stair is reachable from the
// up-stair. A run missing either stair counts as connected.
func (r *run) stairsConnected() bool {
	if r.stairsUp == nil || r.stairsDown == nil {
		return true
	}
	field := dijkstra.New(r.grid)
	field.SetGoal(*r.stairsUp)
	field.Scan(nil)
	return field.Reached(*r.stairsDown)
}
