package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/gilchrisn/tadw-embedding/pkg/features"
	"github.com/gilchrisn/tadw-embedding/pkg/graph"
	"github.com/gilchrisn/tadw-embedding/pkg/matrix"
	"github.com/gilchrisn/tadw-embedding/pkg/tadw"
)

func main() {
	cfg := tadw.NewConfig()

	edgePath := flag.String("edge-path", cfg.EdgePath(), "Input edge list CSV")
	featurePath := flag.String("feature-path", cfg.FeaturePath(), "Input node features")
	outputPath := flag.String("output-path", cfg.OutputPath(), "Output embedding CSV")
	dimensions := flag.Int("dimensions", cfg.Dimensions(), "Number of embedding dimensions")
	order := flag.Int("order", cfg.Order(), "Target matrix approximation order")
	iterations := flag.Int("iterations", cfg.Iterations(), "Number of gradient descent iterations")
	lambd := flag.Float64("lambd", cfg.Lambda(), "Regularization term coefficient")
	alpha := flag.Float64("alpha", cfg.Alpha(), "Learning rate")
	featureMode := flag.String("features", cfg.FeatureMode(), "Feature file mode: dense or sparse")
	lowerControl := flag.Float64("lower-control", cfg.LowerControl(), "Overflow control floor")
	seed := flag.Int64("seed", cfg.RandomSeed(), "Random seed for factor initialization")
	logLevel := flag.String("log-level", cfg.LogLevel(), "Log level: debug, info, warn, error")

	flag.Usage = func() {
		fmt.Println("[TADW]")
		fmt.Println("\tText-Associated DeepWalk node embedding")
		fmt.Println()
		fmt.Println("Options Description:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("./tadw -edge-path input/edges.csv -feature-path input/features.json -output-path output/embedding.csv -dimensions 32 -order 2 -iterations 200 -lambd 1000 -alpha 1e-6 -features sparse")
	}

	flag.Parse()

	cfg.Set("input.edge_path", *edgePath)
	cfg.Set("input.feature_path", *featurePath)
	cfg.Set("input.feature_mode", *featureMode)
	cfg.Set("output.embedding_path", *outputPath)
	cfg.Set("model.dimensions", *dimensions)
	cfg.Set("model.order", *order)
	cfg.Set("model.iterations", *iterations)
	cfg.Set("model.lambda", *lambd)
	cfg.Set("model.alpha", *alpha)
	cfg.Set("model.lower_control", *lowerControl)
	cfg.Set("model.random_seed", *seed)
	cfg.Set("logging.level", *logLevel)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	printParameters(cfg)

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Run failed: %v\n", err)
		os.Exit(1)
	}
}

// run executes the full pipeline: edge list -> normalized adjacency ->
// target matrix, feature loading, then factorization and export.
func run(cfg *tadw.Config) error {
	logger := cfg.CreateLogger()
	ctx := context.Background()

	g, err := graph.LoadEdgeList(cfg.EdgePath())
	if err != nil {
		return err
	}
	logger.Info().
		Int("nodes", g.NumNodes).
		Int("edges", g.NumEdges).
		Msg("Graph loaded")

	adjacency, err := matrix.NormalizedAdjacency(g)
	if err != nil {
		return err
	}

	target, err := matrix.TargetMatrix(adjacency, cfg.Order(), logger)
	if err != nil {
		return err
	}

	var feats mat.Matrix
	if cfg.FeatureMode() == "dense" {
		feats, err = features.LoadDense(cfg.FeaturePath())
	} else {
		feats, err = features.LoadSparse(cfg.FeaturePath())
	}
	if err != nil {
		return err
	}

	result, err := tadw.NewEngine(target, feats, cfg, logger).Run(ctx)
	if err != nil {
		return err
	}

	if err := tadw.SaveEmbedding(cfg.OutputPath(), result.Embedding); err != nil {
		return err
	}
	logger.Info().
		Str("path", cfg.OutputPath()).
		Msg("Embedding saved")
	return nil
}

// printParameters prints the effective configuration before the run.
func printParameters(cfg *tadw.Config) {
	rows := [][2]string{
		{"Edge path", cfg.EdgePath()},
		{"Feature path", cfg.FeaturePath()},
		{"Output path", cfg.OutputPath()},
		{"Features", cfg.FeatureMode()},
		{"Dimensions", fmt.Sprintf("%d", cfg.Dimensions())},
		{"Order", fmt.Sprintf("%d", cfg.Order())},
		{"Iterations", fmt.Sprintf("%d", cfg.Iterations())},
		{"Lambda", fmt.Sprintf("%g", cfg.Lambda())},
		{"Alpha", fmt.Sprintf("%g", cfg.Alpha())},
		{"Lower control", fmt.Sprintf("%g", cfg.LowerControl())},
		{"Random seed", fmt.Sprintf("%d", cfg.RandomSeed())},
	}

	width := len("Value")
	for _, row := range rows {
		if len(row[1]) > width {
			width = len(row[1])
		}
	}

	separator := fmt.Sprintf("+---------------+-%s-+\n", strings.Repeat("-", width))
	fmt.Print(separator)
	fmt.Printf("| %-13s | %-*s |\n", "Parameter", width, "Value")
	fmt.Print(separator)
	for _, row := range rows {
		fmt.Printf("| %-13s | %-*s |\n", row[0], width, row[1])
	}
	fmt.Print(separator)
}
