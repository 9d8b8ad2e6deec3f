package grid

// Rect fills a rectangular area with a cell
func (g *Grid) Rect(b Bounds, c Cell) {
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			g.Set(Point{x, y}, c)
		}
	}
}

// Disc fills every cell within radius of center
func (g *Grid) Disc(center Point, radius int, c Cell) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				g.Set(center.Add(dx, dy), c)
			}
		}
	}
}

// Line draws a line between two points using Bresenham's algorithm
func (g *Grid) Line(from, to Point, c Cell) {
	dx := abs(to.X - from.X)
	dy := -abs(to.Y - from.Y)
	sx := 1
	if from.X > to.X {
		sx = -1
	}
	sy := 1
	if from.Y > to.Y {
		sy = -1
	}
	err := dx + dy

	x, y := from.X, from.Y
	for {
		g.Set(Point{x, y}, c)
		if x == to.X && y == to.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// Reachable returns every cell 4-connected to start through passable
// cells, in breadth-first order. A blocked start yields nil.
func (g *Grid) Reachable(start Point, passable func(Cell) bool) []Point {
	if !g.InBounds(start) || !passable(g.Get(start)) {
		return nil
	}

	visited := make(map[Point]bool)
	visited[start] = true
	queue := []Point{start}
	out := make([]Point, 0)

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		out = append(out, p)

		for _, adj := range p.Adjacent() {
			if visited[adj] || !g.InBounds(adj) || !passable(g.Get(adj)) {
				continue
			}
			visited[adj] = true
			queue = append(queue, adj)
		}
	}

	return out
}
