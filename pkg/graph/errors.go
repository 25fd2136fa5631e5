package graph

import "errors"

var (
	// ErrNodeRange indicates an edge referencing a node outside the graph.
	ErrNodeRange = errors.New("graph: node index out of range")
	// ErrEmptyGraph indicates a graph with no nodes.
	ErrEmptyGraph = errors.New("graph: graph has no nodes")
	// ErrIsolatedNode indicates a node with degree zero.
	ErrIsolatedNode = errors.New("graph: isolated node has no inverse degree")
	// ErrEdgeFormat indicates a malformed edge list row.
	ErrEdgeFormat = errors.New("graph: malformed edge list")
)
