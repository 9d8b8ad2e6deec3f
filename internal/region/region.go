// Package region implements set algebra over the cells of a fixed-size
// rectangle, packed one bit per cell.
package region

import (
	"github.com/bits-and-blooms/bitset"

	"dconn.dev/undercroft/internal/grid"
	"dconn.dev/undercroft/internal/rng"
)

// Region is a set of points inside a width x height rectangle.
type Region struct {
	width, height int
	bits          *bitset.BitSet
}

// New returns an empty region
func New(width, height int) *Region {
	return &Region{width: width, height: height, bits: bitset.New(uint(width * height))}
}

// Rectangle returns a region holding every cell of the rectangle
func Rectangle(width, height int) *Region {
	r := New(width, height)
	for i := 0; i < width*height; i++ {
		r.bits.Set(uint(i))
	}
	return r
}

// FromCells returns the cells of g holding any of the given symbols
func FromCells(g *grid.Grid, kinds ...grid.Cell) *Region {
	r := New(g.Width, g.Height)
	for _, p := range g.Find(kinds...) {
		r.Add(p)
	}
	return r
}

func (r *Region) index(p grid.Point) uint {
	return uint(p.Y*r.width + p.X)
}

func (r *Region) contains(p grid.Point) bool {
	return p.X >= 0 && p.X < r.width && p.Y >= 0 && p.Y < r.height
}

// Width and Height report the rectangle the region lives in.
func (r *Region) Width() int  { return r.width }
func (r *Region) Height() int { return r.height }

// Add inserts p. Points outside the rectangle are ignored.
func (r *Region) Add(p grid.Point) {
	if r.contains(p) {
		r.bits.Set(r.index(p))
	}
}

// Remove deletes p
func (r *Region) Remove(p grid.Point) {
	if r.contains(p) {
		r.bits.Clear(r.index(p))
	}
}

// Has reports membership
func (r *Region) Has(p grid.Point) bool {
	return r.contains(p) && r.bits.Test(r.index(p))
}

// Count returns the number of member cells
func (r *Region) Count() int {
	return int(r.bits.Count())
}

// Union returns a new region holding the cells of either operand
func (r *Region) Union(other *Region) *Region {
	return &Region{width: r.width, height: r.height, bits: r.bits.Union(other.bits)}
}

// Difference returns a new region holding r's cells that are not in other
func (r *Region) Difference(other *Region) *Region {
	return &Region{width: r.width, height: r.height, bits: r.bits.Difference(other.bits)}
}

// Equal reports whether both regions hold the same cells
func (r *Region) Equal(other *Region) bool {
	return r.width == other.width && r.height == other.height && r.bits.Equal(other.bits)
}

// Dilate returns a new region grown by one cell in all 8 directions,
// clipped to the rectangle.
func (r *Region) Dilate() *Region {
	out := &Region{width: r.width, height: r.height, bits: r.bits.Clone()}
	for _, p := range r.Points() {
		for _, n := range p.Neighbors() {
			out.Add(n)
		}
	}
	return out
}

// Points returns the member cells in row-major order
func (r *Region) Points() []grid.Point {
	out := make([]grid.Point, 0, r.Count())
	for i, ok := r.bits.NextSet(0); ok; i, ok = r.bits.NextSet(i + 1) {
		out = append(out, grid.Point{X: int(i) % r.width, Y: int(i) / r.width})
	}
	return out
}

// Sample draws up to n distinct member cells without replacement, in draw order.
func (r *Region) Sample(rn *rng.RNG, n int) []grid.Point {
	pts := r.Points()
	if n > len(pts) {
		n = len(pts)
	}
	if n <= 0 {
		return nil
	}
	// partial Fisher-Yates over the front of the slice
	for i := 0; i < n; i++ {
		j := i + rn.Intn(len(pts)-i)
		pts[i], pts[j] = pts[j], pts[i]
	}
	return pts[:n]
}
