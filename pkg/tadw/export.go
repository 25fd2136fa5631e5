package tadw

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// SaveEmbedding writes the embedding as a CSV table with a node ID column
// followed by one column per dimension, rows in ascending node ID order.
func SaveEmbedding(path string, embedding *mat.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create embedding file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	nodes, dims := embedding.Dims()

	header := make([]string, dims+1)
	header[0] = "id"
	for d := 0; d < dims; d++ {
		header[d+1] = "x_" + strconv.Itoa(d)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write embedding header: %w", err)
	}

	record := make([]string, dims+1)
	for node := 0; node < nodes; node++ {
		record[0] = strconv.Itoa(node)
		for d := 0; d < dims; d++ {
			record[d+1] = strconv.FormatFloat(embedding.At(node, d), 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write embedding row %d: %w", node, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush embedding file: %w", err)
	}
	return nil
}
