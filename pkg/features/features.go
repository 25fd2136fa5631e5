// Package features loads node feature matrices in the (feature_count x
// node_count) orientation expected by the factorization engine. Dense
// features come from CSV, sparse binary indicator features from JSON.
package features

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// ErrFeatureFormat indicates a malformed feature file.
var ErrFeatureFormat = errors.New("features: malformed feature file")

// LoadDense reads a tabular feature file where the first column is a node
// identifier (discarded) and the remaining columns are numeric feature
// values, one row per node in node ID order. The result is transposed so
// columns correspond to nodes.
func LoadDense(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open features: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeatureFormat, err)
	}
	if len(records) > 1 {
		// Tabular feature files carry a header row.
		if _, err := strconv.ParseFloat(records[0][len(records[0])-1], 64); err != nil {
			records = records[1:]
		}
	}
	if len(records) == 0 || len(records[0]) < 2 {
		return nil, fmt.Errorf("%w: %s has no feature columns", ErrFeatureFormat, path)
	}

	nodeCount := len(records)
	featureCount := len(records[0]) - 1
	features := mat.NewDense(featureCount, nodeCount, nil)
	for i, record := range records {
		if len(record) != featureCount+1 {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrFeatureFormat, i+1, len(record), featureCount+1)
		}
		for j, field := range record[1:] {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %q is not numeric", ErrFeatureFormat, i+1, field)
			}
			features.Set(j, i, value)
		}
	}
	return features, nil
}

// LoadSparse reads a JSON mapping from node ID to a list of active feature
// indices and builds a binary indicator matrix. Shape is derived from the
// data: (max feature index + 1) x (max node ID + 1).
func LoadSparse(path string) (*sparse.CSR, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open features: %w", err)
	}

	var indices map[string][]int
	if err := json.Unmarshal(raw, &indices); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeatureFormat, err)
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: %s maps no nodes", ErrFeatureFormat, path)
	}

	maxNode, maxFeature := 0, 0
	for key, feats := range indices {
		node, err := strconv.Atoi(key)
		if err != nil || node < 0 {
			return nil, fmt.Errorf("%w: node key %q is not a node ID", ErrFeatureFormat, key)
		}
		if node > maxNode {
			maxNode = node
		}
		for _, feat := range feats {
			if feat < 0 {
				return nil, fmt.Errorf("%w: node %d: negative feature index %d", ErrFeatureFormat, node, feat)
			}
			if feat > maxFeature {
				maxFeature = feat
			}
		}
	}

	dok := sparse.NewDOK(maxFeature+1, maxNode+1)
	for key, feats := range indices {
		node, _ := strconv.Atoi(key)
		for _, feat := range feats {
			dok.Set(feat, node, 1.0)
		}
	}
	return dok.ToCSR(), nil
}
