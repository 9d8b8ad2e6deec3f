package layout

import (
	"errors"
	"fmt"

	"dconn.dev/undercroft/internal/grid"
	"dconn.dev/undercroft/internal/rng"
)

var ErrDisconnected = errors.New("layout left rooms unconnected")

// minRoomsSize is the smallest map the rooms layout will furnish
const minRoomsSize = 7

// Rooms scatters chambers, vaults and pillared halls across the map and
// joins them with L-shaped corridors along a spanning tree, plus a few
// extra loops
type Rooms struct {
	MaxRooms   int // 0 derives a count from the map area
	MinSize    int
	MaxSize    int
	ExtraEdges int
}

// DefaultRooms returns the settings the themes use
func DefaultRooms() Rooms {
	return Rooms{MinSize: 4, MaxSize: 10, ExtraEdges: 2}
}

// Layout builds a rooms-and-corridors map. Maps too small for a room come
// back as solid wall.
func (l Rooms) Layout(width, height int, r *rng.RNG) (*grid.Grid, error) {
	g := grid.New(width, height, grid.Wall)
	if width < minRoomsSize || height < minRoomsSize {
		return g, nil
	}

	// 1. Place rooms without overlap, keeping a wall between neighbours
	rooms := l.placeRooms(width, height, r)

	// 2. Build the room graph over every pair
	graph := NewGraph()
	for i, room := range rooms {
		graph.AddNode(&Node{
			ID:       fmt.Sprintf("room_%d", i),
			Position: room.Bounds().Center(),
			Anchors:  room.Anchors(),
			Bounds:   room.Bounds(),
		})
	}
	nodes := graph.NodeList()
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			if _, err := graph.AddEdge(nodes[i].ID, nodes[j].ID); err != nil {
				return nil, fmt.Errorf("building room graph: %w", err)
			}
		}
	}

	// 3. Spanning tree plus loops
	edges := graph.MST()
	inTree := make(map[*Edge]bool, len(edges))
	for _, e := range edges {
		inTree[e] = true
	}
	spare := make([]*Edge, 0, len(graph.Edges))
	for _, e := range graph.Edges {
		if !inTree[e] {
			spare = append(spare, e)
		}
	}
	rng.Shuffle(r, spare)
	edges = append(edges, spare[:min(max(l.ExtraEdges, 0), len(spare))]...)

	// 4. Carve rooms
	for _, room := range rooms {
		room.Carve(g)
	}

	// 5. Carve corridors, skipping rooms that are already joined. Every
	// edge that ends up walkable links its rooms in the joined graph.
	joined := NewGraph()
	for _, n := range nodes {
		joined.AddNode(n)
	}
	for _, e := range edges {
		from, to := graph.Nodes[e.From], graph.Nodes[e.To]
		a := closestAnchor(from, to.Position)
		b := closestAnchor(to, from.Position)
		if g.FindPath(a, b, grid.Cell.Passable) == nil {
			e.Path = carveCorridor(g, a, b, r)
			if len(e.Path) == 0 {
				continue
			}
		}
		if _, err := joined.AddEdge(e.From, e.To); err != nil {
			return nil, fmt.Errorf("joining rooms: %w", err)
		}
	}

	// 6. Validate that every room is reachable from the first
	if len(nodes) > 1 && !joined.IsConnected(nodes[0].ID) {
		return nil, fmt.Errorf("%w: %v", ErrDisconnected, joined.FindUnreachable(nodes[0].ID))
	}

	return g, nil
}

func (l Rooms) placeRooms(width, height int, r *rng.RNG) []Component {
	minSize := max(l.MinSize, 3)
	maxSize := max(l.MaxSize, minSize)
	maxSize = min(maxSize, width-2, height-2)
	minSize = min(minSize, maxSize)

	target := l.MaxRooms
	if target <= 0 {
		target = max(2, width*height/150)
	}

	placed := make([]Component, 0, target)
	for attempt := 0; attempt < target*10 && len(placed) < target; attempt++ {
		rw := r.IntRange(minSize, maxSize)
		rh := r.IntRange(minSize, maxSize)
		x := r.IntRange(1, width-rw-1)
		y := r.IntRange(1, height-rh-1)
		b := grid.Bounds{MinX: x, MinY: y, MaxX: x + rw - 1, MaxY: y + rh - 1}

		var room Component
		switch kind := r.Intn(4); {
		case kind == 2:
			radius := (min(rw, rh) - 1) / 2
			room = NewVault(grid.Point{X: x + radius, Y: y + radius}, radius)
		case kind == 3 && rw >= 7 && rh >= 7:
			room = NewHall(b)
		default:
			room = NewChamber(b)
		}

		if fits(room.Bounds(), placed, width, height) {
			placed = append(placed, room)
		}
	}
	return placed
}

// fits reports whether b stays inside the map interior and keeps a wall
// between itself and every placed room
func fits(b grid.Bounds, placed []Component, width, height int) bool {
	if b.MinX < 1 || b.MinY < 1 || b.MaxX > width-2 || b.MaxY > height-2 {
		return false
	}
	for _, other := range placed {
		if b.Expand(1).Overlaps(other.Bounds()) {
			return false
		}
	}
	return true
}

// closestAnchor returns the anchor of node nearest to target
func closestAnchor(node *Node, target grid.Point) grid.Point {
	if len(node.Anchors) == 0 {
		return node.Position
	}

	closest := node.Anchors[0]
	minDist := grid.Manhattan(closest, target)
	for _, a := range node.Anchors[1:] {
		if d := grid.Manhattan(a, target); d < minDist {
			minDist = d
			closest = a
		}
	}
	return closest
}

// carveCorridor digs an L-shaped corridor from a to b, bending at a random
// corner, and returns the cells it covers
func carveCorridor(g *grid.Grid, a, b grid.Point, r *rng.RNG) []grid.Point {
	corner := grid.Point{X: b.X, Y: a.Y}
	if r.Chance(0.5) {
		corner = grid.Point{X: a.X, Y: b.Y}
	}

	path := make([]grid.Point, 0, grid.Manhattan(a, b)+1)
	for _, leg := range [][2]grid.Point{{a, corner}, {corner, b}} {
		from, to := leg[0], leg[1]
		dx, dy := sign(to.X-from.X), sign(to.Y-from.Y)
		for p := from; ; p = p.Add(dx, dy) {
			if len(path) == 0 || path[len(path)-1] != p {
				path = append(path, p)
			}
			if p == to {
				break
			}
		}
	}
	g.Line(a, corner, grid.Floor)
	g.Line(corner, b, grid.Floor)
	return path
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
