package layout

import (
	"fmt"

	"dconn.dev/undercroft/internal/grid"
)

// Node is a placed room in the connection graph
type Node struct {
	ID       string
	Position grid.Point   // centre, used for edge weights
	Anchors  []grid.Point // floor cells corridors may start from
	Bounds   grid.Bounds
}

// Edge connects two rooms
type Edge struct {
	From, To string
	Weight   float64      // Manhattan distance between positions
	Path     []grid.Point // carved corridor, empty when skipped
}

// Graph keeps rooms and their connections. Node order is insertion order
// so that every traversal is reproducible.
type Graph struct {
	Nodes    map[string]*Node
	Edges    []*Edge
	Adjacent map[string][]string
	order    []string
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		Nodes:    make(map[string]*Node),
		Edges:    make([]*Edge, 0),
		Adjacent: make(map[string][]string),
	}
}

// AddNode adds a node to the graph
func (g *Graph) AddNode(n *Node) {
	if _, ok := g.Nodes[n.ID]; !ok {
		g.order = append(g.order, n.ID)
	}
	g.Nodes[n.ID] = n
	if g.Adjacent[n.ID] == nil {
		g.Adjacent[n.ID] = make([]string, 0)
	}
}

// NodeList returns the nodes in insertion order
func (g *Graph) NodeList() []*Node {
	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.Nodes[id]
	}
	return out
}

// AddEdge adds an edge between two nodes
func (g *Graph) AddEdge(fromID, toID string) (*Edge, error) {
	from, ok := g.Nodes[fromID]
	if !ok {
		return nil, fmt.Errorf("node %s not found", fromID)
	}
	to, ok := g.Nodes[toID]
	if !ok {
		return nil, fmt.Errorf("node %s not found", toID)
	}

	edge := &Edge{
		From:   fromID,
		To:     toID,
		Weight: float64(grid.Manhattan(from.Position, to.Position)),
	}

	g.Edges = append(g.Edges, edge)
	g.Adjacent[fromID] = append(g.Adjacent[fromID], toID)
	g.Adjacent[toID] = append(g.Adjacent[toID], fromID)

	return edge, nil
}

// IsConnected checks if all nodes are reachable from a starting node using BFS
func (g *Graph) IsConnected(startID string) bool {
	if len(g.Nodes) == 0 {
		return true
	}
	return len(g.reach(startID)) == len(g.Nodes)
}

// FindUnreachable returns the nodes not reachable from the start node, in
// insertion order
func (g *Graph) FindUnreachable(startID string) []string {
	visited := g.reach(startID)
	unreachable := make([]string, 0)
	for _, id := range g.order {
		if !visited[id] {
			unreachable = append(unreachable, id)
		}
	}
	return unreachable
}

func (g *Graph) reach(startID string) map[string]bool {
	visited := map[string]bool{startID: true}
	queue := []string{startID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, neighborID := range g.Adjacent[current] {
			if !visited[neighborID] {
				visited[neighborID] = true
				queue = append(queue, neighborID)
			}
		}
	}
	return visited
}

// MST computes a minimum spanning tree using Kruskal's algorithm and
// returns its edges. Ties keep insertion order.
func (g *Graph) MST() []*Edge {
	parent := make(map[string]string)
	rank := make(map[string]int)

	var find func(x string) string
	find = func(x string) string {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}

	union := func(x, y string) bool {
		rootX, rootY := find(x), find(y)
		if rootX == rootY {
			return false
		}
		if rank[rootX] < rank[rootY] {
			rootX, rootY = rootY, rootX
		}
		parent[rootY] = rootX
		if rank[rootX] == rank[rootY] {
			rank[rootX]++
		}
		return true
	}

	for _, id := range g.order {
		parent[id] = id
	}

	// insertion sort is stable and the graphs are small
	sorted := make([]*Edge, len(g.Edges))
	copy(sorted, g.Edges)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Weight < sorted[j-1].Weight; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	mst := make([]*Edge, 0)
	for _, edge := range sorted {
		if union(edge.From, edge.To) {
			mst = append(mst, edge)
		}
	}
	return mst
}
