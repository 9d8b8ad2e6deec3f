// Package poisson picks well-spread points on a grid with Bridson's
// Poisson-disk algorithm.
package poisson

import (
	"math"

	"dconn.dev/undercroft/internal/grid"
	"dconn.dev/undercroft/internal/rng"
)

// attempts is how many candidates are tried around each active point
const attempts = 30

// Sample returns points, none of which hold a blocked symbol and no two of
// which are closer than minDist. After the first active list drains, the
// grid is swept from a random offset so areas the first growth never
// jumped to are still covered. A minDist below 1 is treated as 1.
func Sample(g *grid.Grid, minDist float64, r *rng.RNG, blocked ...grid.Cell) []grid.Point {
	if minDist < 1 {
		minDist = 1
	}
	isBlocked := func(p grid.Point) bool {
		c := g.Get(p)
		for _, b := range blocked {
			if c == b {
				return true
			}
		}
		return false
	}

	// Background grid of sample indices, one slot per cell of size r/sqrt2
	cellSize := minDist / math.Sqrt2
	cols := int(math.Ceil(float64(g.Width)/cellSize)) + 1
	rows := int(math.Ceil(float64(g.Height)/cellSize)) + 1
	buckets := make([]int, cols*rows)
	for i := range buckets {
		buckets[i] = -1
	}
	bucketOf := func(p grid.Point) (int, int) {
		return int(float64(p.X) / cellSize), int(float64(p.Y) / cellSize)
	}

	var points []grid.Point
	minSq := minDist * minDist
	fits := func(p grid.Point) bool {
		if !g.InBounds(p) || isBlocked(p) {
			return false
		}
		bx, by := bucketOf(p)
		for y := by - 2; y <= by+2; y++ {
			for x := bx - 2; x <= bx+2; x++ {
				if x < 0 || y < 0 || x >= cols || y >= rows {
					continue
				}
				idx := buckets[y*cols+x]
				if idx < 0 {
					continue
				}
				q := points[idx]
				dx, dy := float64(q.X-p.X), float64(q.Y-p.Y)
				if dx*dx+dy*dy < minSq {
					return false
				}
			}
		}
		return true
	}
	accept := func(p grid.Point) {
		bx, by := bucketOf(p)
		buckets[by*cols+bx] = len(points)
		points = append(points, p)
	}

	grow := func(start grid.Point) {
		accept(start)
		active := []int{len(points) - 1}
		for len(active) > 0 {
			k := r.Intn(len(active))
			origin := points[active[k]]
			found := false
			for i := 0; i < attempts; i++ {
				angle := r.Float64() * 2 * math.Pi
				dist := minDist * (1 + r.Float64())
				cand := grid.Point{
					X: origin.X + int(math.Round(dist*math.Cos(angle))),
					Y: origin.Y + int(math.Round(dist*math.Sin(angle))),
				}
				if fits(cand) {
					accept(cand)
					active = append(active, len(points)-1)
					found = true
					break
				}
			}
			if !found {
				active[k] = active[len(active)-1]
				active = active[:len(active)-1]
			}
		}
	}

	total := g.Width * g.Height
	if total == 0 {
		return nil
	}
	offset := r.Intn(total)
	for i := 0; i < total; i++ {
		idx := (offset + i) % total
		p := grid.Point{X: idx % g.Width, Y: idx / g.Width}
		if fits(p) {
			grow(p)
		}
	}

	return points
}
