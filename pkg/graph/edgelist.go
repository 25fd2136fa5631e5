package graph

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// LoadEdgeList reads an undirected edge list from a CSV file with two integer
// columns per row. A single header row is tolerated and skipped. The node
// count is the largest node ID observed plus one.
func LoadEdgeList(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open edge list: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEdgeFormat, err)
	}
	if len(records) > 0 {
		if _, err := strconv.Atoi(records[0][0]); err != nil {
			records = records[1:]
		}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s has no edges", ErrEdgeFormat, path)
	}

	edges := make([][2]int, 0, len(records))
	maxID := 0
	for row, record := range records {
		u, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %q is not an integer", ErrEdgeFormat, row+1, record[0])
		}
		v, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %q is not an integer", ErrEdgeFormat, row+1, record[1])
		}
		if u < 0 || v < 0 {
			return nil, fmt.Errorf("%w: row %d: negative node ID", ErrEdgeFormat, row+1)
		}
		if u > maxID {
			maxID = u
		}
		if v > maxID {
			maxID = v
		}
		edges = append(edges, [2]int{u, v})
	}

	g := NewGraph(maxID + 1)
	for _, edge := range edges {
		if err := g.AddEdge(edge[0], edge[1]); err != nil {
			return nil, err
		}
	}
	return g, nil
}
