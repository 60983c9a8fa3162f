package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// DefaultModelPath is the artifact the trainer writes and the service loads.
	DefaultModelPath = "eco_snap_model.pkl"
	// DefaultDatasetPath is the CSV the trainer reads.
	DefaultDatasetPath = "sustainability_dataset.csv"
)

// Config holds all configuration for the prediction service.
type Config struct {
	HTTPPort        string
	ModelPath       string
	Environment     string
	LogLevel        string
	LogFormat       string
	OTLPEndpoint    string
	ImpactThreshold float64
	TracingEnabled  bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8000"),
		ModelPath:       getEnv("MODEL_PATH", DefaultModelPath),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		ImpactThreshold: getEnvFloat("IMPACT_THRESHOLD", 10),
		TracingEnabled:  getEnvBool("TRACING_ENABLED", false),
	}
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
