// Package spill grows several weighted regions at once from seed points
// until they fill the passable area they can reach.
package spill

import (
	"math"

	"github.com/zyedidia/generic/mapset"

	"dconn.dev/undercroft/internal/grid"
	"dconn.dev/undercroft/internal/rng"
)

// Unlimited disables the total volume cap in Fill.
const Unlimited = -1

// Seed is a starting point and its relative growth rate.
type Seed struct {
	Point  grid.Point
	Weight float64
}

// Result holds one partition per seed, in seed order, plus a per-cell
// owner index (-1 for cells no seed claimed).
type Result struct {
	Partitions [][]grid.Point
	Owner      []int
	width      int
}

// OwnerAt returns the index of the seed that claimed p, or -1
func (r *Result) OwnerAt(p grid.Point) int {
	if p.X < 0 || p.Y < 0 || p.X >= r.width {
		return -1
	}
	idx := p.Y*r.width + p.X
	if idx >= len(r.Owner) {
		return -1
	}
	return r.Owner[idx]
}

// Claimed returns the number of cells owned by any seed
func (r *Result) Claimed() int {
	n := 0
	for _, part := range r.Partitions {
		n += len(part)
	}
	return n
}

// Fill spreads every seed across 4-connected passable cells. Walls and
// members of obstacles (the zero Set is empty) are never claimed. Each round a
// seed earns weight/maxWeight credit and claims one random frontier cell
// per whole credit, seeds taking turns in slice order; the first seed to
// claim a cell keeps it. A seed with weight <= 0 claims nothing, not even
// its own point. limit caps the total number of claimed cells; pass
// Unlimited to fill everything reachable.
func Fill(g *grid.Grid, seeds []Seed, obstacles mapset.Set[grid.Point], limit int, r *rng.RNG) *Result {
	res := &Result{
		Partitions: make([][]grid.Point, len(seeds)),
		Owner:      make([]int, g.Width*g.Height),
		width:      g.Width,
	}
	for i := range res.Owner {
		res.Owner[i] = -1
	}

	passable := func(p grid.Point) bool {
		if !g.InBounds(p) || g.Get(p) == grid.Wall {
			return false
		}
		return !obstacles.Has(p)
	}
	claimed := 0
	full := func() bool { return limit >= 0 && claimed >= limit }

	frontiers := make([][]grid.Point, len(seeds))
	claim := func(i int, p grid.Point) {
		res.Owner[p.Y*g.Width+p.X] = i
		res.Partitions[i] = append(res.Partitions[i], p)
		claimed++
		for _, n := range p.Adjacent() {
			if passable(n) && res.Owner[n.Y*g.Width+n.X] < 0 {
				frontiers[i] = append(frontiers[i], n)
			}
		}
	}

	maxWeight := 0.0
	for _, s := range seeds {
		if s.Weight > maxWeight {
			maxWeight = s.Weight
		}
	}
	if maxWeight <= 0 {
		return res
	}

	for i, s := range seeds {
		if s.Weight <= 0 || !passable(s.Point) || res.OwnerAt(s.Point) >= 0 {
			continue
		}
		if full() {
			return res
		}
		claim(i, s.Point)
	}

	credit := make([]float64, len(seeds))
	step := make([]float64, len(seeds))
	for i, s := range seeds {
		if s.Weight > 0 {
			step[i] = s.Weight / maxWeight
		}
	}
	for {
		// Rounds in which no seed could claim are skipped in one jump, so
		// a tiny weight left alone with a frontier still finishes.
		idle := math.Inf(1)
		for i := range seeds {
			if step[i] > 0 && len(frontiers[i]) > 0 {
				idle = min(idle, math.Ceil((1-credit[i])/step[i])-1)
			}
		}
		if math.IsInf(idle, 1) {
			return res
		}
		if idle > 0 {
			for i := range seeds {
				if step[i] > 0 && len(frontiers[i]) > 0 {
					credit[i] += idle * step[i]
				}
			}
		}

		for i := range seeds {
			if step[i] <= 0 || len(frontiers[i]) == 0 {
				continue
			}
			if credit[i]+step[i] == credit[i] {
				credit[i] = 1
			} else {
				credit[i] += step[i]
			}
			for credit[i] >= 1 && len(frontiers[i]) > 0 {
				if full() {
					return res
				}
				f := frontiers[i]
				k := r.Intn(len(f))
				p := f[k]
				f[k] = f[len(f)-1]
				frontiers[i] = f[:len(f)-1]
				if res.Owner[p.Y*g.Width+p.X] >= 0 {
					continue // taken since it was queued
				}
				credit[i]--
				claim(i, p)
			}
		}
	}
}
