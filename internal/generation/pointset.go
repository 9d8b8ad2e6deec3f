package generation

import "dconn.dev/undercroft/internal/grid"

// PointSet is a set of points that remembers insertion order. Random
// draws index into that order, which keeps them reproducible.
type PointSet struct {
	items []grid.Point
	index map[grid.Point]int
}

// NewPointSet creates an empty set
func NewPointSet() *PointSet {
	return &PointSet{index: make(map[grid.Point]int)}
}

// Add appends p unless present. Reports whether it was added.
func (s *PointSet) Add(p grid.Point) bool {
	if _, ok := s.index[p]; ok {
		return false
	}
	s.index[p] = len(s.items)
	s.items = append(s.items, p)
	return true
}

// Remove deletes p, keeping the order of the rest
func (s *PointSet) Remove(p grid.Point) bool {
	i, ok := s.index[p]
	if !ok {
		return false
	}
	delete(s.index, p)
	copy(s.items[i:], s.items[i+1:])
	s.items = s.items[:len(s.items)-1]
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
	return true
}

func (s *PointSet) Has(p grid.Point) bool {
	_, ok := s.index[p]
	return ok
}

func (s *PointSet) Len() int {
	return len(s.items)
}

// At returns the i-th point in insertion order
func (s *PointSet) At(i int) grid.Point {
	return s.items[i]
}

// Items returns a copy of the points in insertion order
func (s *PointSet) Items() []grid.Point {
	return append([]grid.Point(nil), s.items...)
}
