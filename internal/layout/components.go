package layout

import "dconn.dev/undercroft/internal/grid"

// Component is a room shape the rooms layout can place
type Component interface {
	// Carve draws the room's floor onto the grid
	Carve(g *grid.Grid)
	// Bounds returns the bounding box of the room
	Bounds() grid.Bounds
	// Anchors returns floor cells corridors may connect to
	Anchors() []grid.Point
}

// sideAnchors returns the midpoint of each side of b
func sideAnchors(b grid.Bounds) []grid.Point {
	c := b.Center()
	return []grid.Point{
		{X: c.X, Y: b.MinY},
		{X: b.MaxX, Y: c.Y},
		{X: c.X, Y: b.MaxY},
		{X: b.MinX, Y: c.Y},
	}
}

// Chamber is a plain rectangular room
type Chamber struct {
	bounds grid.Bounds
}

func NewChamber(bounds grid.Bounds) *Chamber {
	return &Chamber{bounds: bounds}
}

func (c *Chamber) Carve(g *grid.Grid) {
	g.Rect(c.bounds, grid.Floor)
}

func (c *Chamber) Bounds() grid.Bounds   { return c.bounds }
func (c *Chamber) Anchors() []grid.Point { return sideAnchors(c.bounds) }

// Vault is a round room
type Vault struct {
	center grid.Point
	radius int
}

func NewVault(center grid.Point, radius int) *Vault {
	return &Vault{center: center, radius: radius}
}

func (v *Vault) Carve(g *grid.Grid) {
	g.Disc(v.center, v.radius, grid.Floor)
}

func (v *Vault) Bounds() grid.Bounds {
	return grid.Bounds{
		MinX: v.center.X - v.radius, MinY: v.center.Y - v.radius,
		MaxX: v.center.X + v.radius, MaxY: v.center.Y + v.radius,
	}
}

func (v *Vault) Anchors() []grid.Point {
	return sideAnchors(v.Bounds())
}

// Hall is a rectangular room with a grid of pillars, leaving a clear
// aisle along every wall
type Hall struct {
	bounds grid.Bounds
}

func NewHall(bounds grid.Bounds) *Hall {
	return &Hall{bounds: bounds}
}

func (h *Hall) Carve(g *grid.Grid) {
	g.Rect(h.bounds, grid.Floor)
	for y := h.bounds.MinY + 2; y <= h.bounds.MaxY-2; y += 3 {
		for x := h.bounds.MinX + 2; x <= h.bounds.MaxX-2; x += 3 {
			g.Set(grid.Point{X: x, Y: y}, grid.Wall)
		}
	}
}

func (h *Hall) Bounds() grid.Bounds   { return h.bounds }
func (h *Hall) Anchors() []grid.Point { return sideAnchors(h.bounds) }
