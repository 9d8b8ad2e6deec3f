package grid

import (
	"fmt"
	"strings"
)

// Point represents a 2D coordinate
type Point struct {
	X, Y int
}

// Add returns a new point offset by dx, dy
func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Adjacent returns the 4 cardinal neighbors
func (p Point) Adjacent() []Point {
	return []Point{
		{p.X, p.Y - 1}, // N
		{p.X + 1, p.Y}, // E
		{p.X, p.Y + 1}, // S
		{p.X - 1, p.Y}, // W
	}
}

// Neighbors returns the 8 surrounding points, clockwise from north.
func (p Point) Neighbors() []Point {
	return []Point{
		{p.X, p.Y - 1},
		{p.X + 1, p.Y - 1},
		{p.X + 1, p.Y},
		{p.X + 1, p.Y + 1},
		{p.X, p.Y + 1},
		{p.X - 1, p.Y + 1},
		{p.X - 1, p.Y},
		{p.X - 1, p.Y - 1},
	}
}

// Manhattan returns the taxicab distance between two points
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Bounds represents a rectangular region, inclusive on both ends
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// Width returns the width of the bounds
func (b Bounds) Width() int {
	return b.MaxX - b.MinX + 1
}

// Height returns the height of the bounds
func (b Bounds) Height() int {
	return b.MaxY - b.MinY + 1
}

// Contains checks if a point is within bounds
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Overlaps checks if two bounds intersect
func (b Bounds) Overlaps(other Bounds) bool {
	return b.MinX <= other.MaxX && b.MaxX >= other.MinX &&
		b.MinY <= other.MaxY && b.MaxY >= other.MinY
}

// Expand returns bounds grown by n tiles in each direction
func (b Bounds) Expand(n int) Bounds {
	return Bounds{b.MinX - n, b.MinY - n, b.MaxX + n, b.MaxY + n}
}

// Center returns the center point of the bounds
func (b Bounds) Center() Point {
	return Point{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2}
}

// Cell is a single map symbol.
type Cell byte

const (
	Wall           Cell = '#'
	Floor          Cell = '.'
	DeepWater      Cell = '~'
	ShallowWater   Cell = ','
	Grass          Cell = '"'
	Trap           Cell = '^'
	DoorHorizontal Cell = '+' // passage runs east-west
	DoorVertical   Cell = '/' // passage runs north-south
	StairUp        Cell = '<'
	StairDown      Cell = '>'
)

// Cells lists every symbol the generator can emit.
var Cells = []Cell{Wall, Floor, DeepWater, ShallowWater, Grass, Trap, DoorHorizontal, DoorVertical, StairUp, StairDown}

func (c Cell) String() string { return string(rune(c)) }

// Passable reports whether the cell can be walked through.
func (c Cell) Passable() bool { return c != Wall }

// IsStair reports whether the cell is either stair symbol.
func (c Cell) IsStair() bool { return c == StairUp || c == StairDown }

// IsWater reports whether the cell is deep or shallow water.
func (c Cell) IsWater() bool { return c == DeepWater || c == ShallowWater }

// IsDoor reports whether the cell is either door symbol.
func (c Cell) IsDoor() bool { return c == DoorHorizontal || c == DoorVertical }

// Grid is a mutable rectangle of cells indexed [y][x].
type Grid struct {
	Width, Height int
	Cells         [][]Cell
}

// New creates a grid filled with a single cell kind
func New(width, height int, fill Cell) *Grid {
	cells := make([][]Cell, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]Cell, width)
		for x := 0; x < width; x++ {
			cells[y][x] = fill
		}
	}
	return &Grid{Width: width, Height: height, Cells: cells}
}

// Parse builds a grid from text rows, one string per row.
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty grid")
	}
	width := len(rows[0])
	g := New(width, len(rows), Wall)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has width %d, want %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			g.Cells[y][x] = Cell(row[x])
		}
	}
	return g, nil
}

// InBounds checks if a point is within the grid
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Interior reports whether p lies inside the outer border ring.
func (g *Grid) Interior(p Point) bool {
	return p.X > 0 && p.X < g.Width-1 && p.Y > 0 && p.Y < g.Height-1
}

// Get returns the cell at a position. Out-of-bounds reads as Wall.
func (g *Grid) Get(p Point) Cell {
	if g.InBounds(p) {
		return g.Cells[p.Y][p.X]
	}
	return Wall
}

// Set sets a cell at a position
func (g *Grid) Set(p Point, c Cell) {
	if g.InBounds(p) {
		g.Cells[p.Y][p.X] = c
	}
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	out := &Grid{Width: g.Width, Height: g.Height, Cells: make([][]Cell, g.Height)}
	for y := range g.Cells {
		out.Cells[y] = append([]Cell(nil), g.Cells[y]...)
	}
	return out
}

// WallWrap overwrites the outermost ring of cells with Wall.
func (g *Grid) WallWrap() {
	for x := 0; x < g.Width; x++ {
		g.Set(Point{x, 0}, Wall)
		g.Set(Point{x, g.Height - 1}, Wall)
	}
	for y := 0; y < g.Height; y++ {
		g.Set(Point{0, y}, Wall)
		g.Set(Point{g.Width - 1, y}, Wall)
	}
}

// Simplify returns a copy holding only Wall and Floor.
func (g *Grid) Simplify() *Grid {
	out := g.Clone()
	for y := range out.Cells {
		for x, c := range out.Cells[y] {
			if c != Wall {
				out.Cells[y][x] = Floor
			}
		}
	}
	return out
}

// Count returns how many cells hold the given symbol
func (g *Grid) Count(c Cell) int {
	n := 0
	for y := range g.Cells {
		for _, v := range g.Cells[y] {
			if v == c {
				n++
			}
		}
	}
	return n
}

// Find returns every position holding one of the given symbols, row-major.
func (g *Grid) Find(kinds ...Cell) []Point {
	var out []Point
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			for _, k := range kinds {
				if g.Cells[y][x] == k {
					out = append(out, Point{x, y})
					break
				}
			}
		}
	}
	return out
}

// Rows renders each row as a string
func (g *Grid) Rows() []string {
	rows := make([]string, g.Height)
	var sb strings.Builder
	for y := range g.Cells {
		sb.Reset()
		for _, c := range g.Cells[y] {
			sb.WriteByte(byte(c))
		}
		rows[y] = sb.String()
	}
	return rows
}

func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
