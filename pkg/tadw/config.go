package tadw

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config manages pipeline configuration using Viper
type Config struct {
	v *viper.Viper
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	v := viper.New()

	// Input/output paths
	v.SetDefault("input.edge_path", "./input/edges.csv")
	v.SetDefault("input.feature_path", "./input/features.json")
	v.SetDefault("input.feature_mode", "sparse")
	v.SetDefault("output.embedding_path", "./output/embedding.csv")

	// Model parameters
	v.SetDefault("model.dimensions", 32)
	v.SetDefault("model.order", 2)
	v.SetDefault("model.iterations", 200)
	v.SetDefault("model.lambda", 1000.0)
	v.SetDefault("model.alpha", 1e-6)
	v.SetDefault("model.lower_control", 1e-15)
	v.SetDefault("model.random_seed", int64(42))

	// Logging parameters
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.progress_interval", 25)

	return &Config{v: v}
}

// LoadFromFile loads configuration from file
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Getters for input/output parameters
func (c *Config) EdgePath() string    { return c.v.GetString("input.edge_path") }
func (c *Config) FeaturePath() string { return c.v.GetString("input.feature_path") }
func (c *Config) FeatureMode() string { return c.v.GetString("input.feature_mode") }
func (c *Config) OutputPath() string  { return c.v.GetString("output.embedding_path") }

// Getters for model parameters
func (c *Config) Dimensions() int       { return c.v.GetInt("model.dimensions") }
func (c *Config) Order() int            { return c.v.GetInt("model.order") }
func (c *Config) Iterations() int       { return c.v.GetInt("model.iterations") }
func (c *Config) Lambda() float64       { return c.v.GetFloat64("model.lambda") }
func (c *Config) Alpha() float64        { return c.v.GetFloat64("model.alpha") }
func (c *Config) LowerControl() float64 { return c.v.GetFloat64("model.lower_control") }
func (c *Config) RandomSeed() int64     { return c.v.GetInt64("model.random_seed") }

func (c *Config) LogLevel() string      { return c.v.GetString("logging.level") }
func (c *Config) ProgressInterval() int { return c.v.GetInt("logging.progress_interval") }

// Set allows dynamic configuration changes
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// Validate rejects configurations the pipeline cannot run with. All checks
// happen before any computation begins.
func (c *Config) Validate() error {
	if c.Dimensions() < 1 {
		return fmt.Errorf("%w: dimensions must be positive, got %d", ErrInvalidConfig, c.Dimensions())
	}
	if c.Order() < 1 {
		return fmt.Errorf("%w: order must be at least 1, got %d", ErrInvalidConfig, c.Order())
	}
	if c.Iterations() < 1 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations())
	}
	if c.LowerControl() <= 0 {
		return fmt.Errorf("%w: lower control floor must be positive, got %g", ErrInvalidConfig, c.LowerControl())
	}
	if mode := c.FeatureMode(); mode != "dense" && mode != "sparse" {
		return fmt.Errorf("%w: feature mode must be \"dense\" or \"sparse\", got %q", ErrInvalidConfig, mode)
	}
	if c.EdgePath() == "" || c.FeaturePath() == "" || c.OutputPath() == "" {
		return fmt.Errorf("%w: edge, feature and output paths are required", ErrInvalidConfig)
	}
	return nil
}

// CreateLogger creates a zerolog logger based on config, tagged with a
// unique run ID.
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("run_id", uuid.NewString()).Logger()
}
