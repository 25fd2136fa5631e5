package tadw

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSaveEmbedding(t *testing.T) {
	embedding := mat.NewDense(3, 2, []float64{
		0.25, -1.5,
		0.125, 2.0,
		-0.75, 0.5,
	})
	path := filepath.Join(t.TempDir(), "embedding.csv")

	require.NoError(t, SaveEmbedding(path, embedding))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header plus one row per node")

	assert.Equal(t, []string{"id", "x_0", "x_1"}, records[0])
	for node, record := range records[1:] {
		assert.Equal(t, strconv.Itoa(node), record[0], "rows in ascending node ID order")
		for d := 0; d < 2; d++ {
			value, err := strconv.ParseFloat(record[d+1], 64)
			require.NoError(t, err)
			assert.Equal(t, embedding.At(node, d), value)
		}
	}
}

func TestSaveEmbeddingBadPath(t *testing.T) {
	embedding := mat.NewDense(1, 1, []float64{1})
	err := SaveEmbedding(filepath.Join(t.TempDir(), "missing", "embedding.csv"), embedding)
	require.Error(t, err)
}
