package graph

import "fmt"

// Graph represents an undirected graph over contiguous zero-indexed node IDs,
// stored as simple adjacency arrays.
type Graph struct {
	NumNodes  int
	NumEdges  int
	Adjacency [][]int // Adjacency[i] = list of neighbors of node i
	Degrees   []int   // Degrees[i] = number of edge endpoints at node i
}

// NewGraph creates an empty graph with n nodes and no edges.
func NewGraph(numNodes int) *Graph {
	return &Graph{
		NumNodes:  numNodes,
		Adjacency: make([][]int, numNodes),
		Degrees:   make([]int, numNodes),
	}
}

// AddEdge adds an undirected edge between two nodes. Duplicate and
// reverse-listed edges collapse into a single edge, so degrees always agree
// with the adjacency structure. A self-loop contributes two endpoints to the
// node's degree.
func (g *Graph) AddEdge(u, v int) error {
	if u < 0 || u >= g.NumNodes || v < 0 || v >= g.NumNodes {
		return fmt.Errorf("%w: u=%d, v=%d, numNodes=%d", ErrNodeRange, u, v, g.NumNodes)
	}

	for _, neighbor := range g.Adjacency[u] {
		if neighbor == v {
			return nil
		}
	}

	g.Adjacency[u] = append(g.Adjacency[u], v)
	g.Degrees[u]++

	if u != v {
		g.Adjacency[v] = append(g.Adjacency[v], u)
		g.Degrees[v]++
	} else {
		g.Degrees[u]++
	}

	g.NumEdges++
	return nil
}

// Validate checks structural invariants: a positive node count and no
// isolated nodes. Isolated nodes have no defined inverse degree, which the
// adjacency normalization downstream depends on.
func (g *Graph) Validate() error {
	if g.NumNodes == 0 {
		return ErrEmptyGraph
	}
	for i := 0; i < g.NumNodes; i++ {
		if g.Degrees[i] == 0 {
			return fmt.Errorf("%w: node %d", ErrIsolatedNode, i)
		}
	}
	return nil
}
