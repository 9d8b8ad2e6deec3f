package grid

import (
	"github.com/zyedidia/generic/heap"
)

// astarNode is an entry in the A* open set
type astarNode struct {
	point  Point
	gScore int // Cost from start
	fScore int // gScore + heuristic
}

// FindPath uses A* to find a 4-connected path between two points.
// Cells failing passable are blocked, except the destination itself.
// Returns nil if no path found.
func (g *Grid) FindPath(from, to Point, passable func(Cell) bool) []Point {
	if !g.InBounds(from) || !g.InBounds(to) {
		return nil
	}

	openSet := heap.New[astarNode](func(a, b astarNode) bool {
		if a.fScore != b.fScore {
			return a.fScore < b.fScore
		}
		return a.gScore > b.gScore
	})

	gScore := map[Point]int{from: 0}
	cameFrom := make(map[Point]Point)
	closed := make(map[Point]bool)

	openSet.Push(astarNode{point: from, fScore: Manhattan(from, to)})

	for openSet.Size() > 0 {
		current, _ := openSet.Pop()
		if closed[current.point] {
			continue
		}
		closed[current.point] = true

		if current.point == to {
			// Reconstruct path
			path := []Point{to}
			curr := to
			for curr != from {
				curr = cameFrom[curr]
				path = append(path, curr)
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, neighbor := range current.point.Adjacent() {
			if !g.InBounds(neighbor) || closed[neighbor] {
				continue
			}
			if neighbor != to && !passable(g.Get(neighbor)) {
				continue
			}

			tentativeG := current.gScore + 1
			if oldG, exists := gScore[neighbor]; !exists || tentativeG < oldG {
				cameFrom[neighbor] = current.point
				gScore[neighbor] = tentativeG
				openSet.Push(astarNode{
					point:  neighbor,
					gScore: tentativeG,
					fScore: tentativeG + Manhattan(neighbor, to),
				})
			}
		}
	}

	return nil // No path found
}
