package layout

import (
	"github.com/aquilax/go-perlin"

	"dconn.dev/undercroft/internal/grid"
	"dconn.dev/undercroft/internal/rng"
)

// Caverns carves open floor wherever 2D Perlin noise rises above a
// threshold, then keeps only the largest connected cave
type Caverns struct {
	Scale     float64 // noise frequency per cell
	Threshold float64 // noise level above which rock becomes floor
}

// DefaultCaverns returns the settings the cavern theme uses
func DefaultCaverns() Caverns {
	return Caverns{Scale: 0.09, Threshold: -0.05}
}

func (l Caverns) Layout(width, height int, r *rng.RNG) (*grid.Grid, error) {
	g := grid.New(width, height, grid.Wall)
	noise := perlin.NewPerlin(2, 2, 3, int64(r.Uint64()))
	scale := l.Scale
	if scale <= 0 {
		scale = DefaultCaverns().Scale
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			if noise.Noise2D(float64(x)*scale, float64(y)*scale) > l.Threshold {
				g.Set(grid.Point{X: x, Y: y}, grid.Floor)
			}
		}
	}

	keepLargestCave(g)
	return g, nil
}

// keepLargestCave fills every floor region except the biggest with rock.
// Ties go to the region found first in row-major order.
func keepLargestCave(g *grid.Grid) {
	seen := make(map[grid.Point]bool)
	var largest []grid.Point
	for _, p := range g.Find(grid.Floor) {
		if seen[p] {
			continue
		}
		cave := g.Reachable(p, grid.Cell.Passable)
		for _, q := range cave {
			seen[q] = true
		}
		if len(cave) > len(largest) {
			largest = cave
		}
	}

	keep := make(map[grid.Point]bool, len(largest))
	for _, p := range largest {
		keep[p] = true
	}
	for _, p := range g.Find(grid.Floor) {
		if !keep[p] {
			g.Set(p, grid.Wall)
		}
	}
}
