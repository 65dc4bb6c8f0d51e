package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Field names map directly to environment variables; no prefix is applied
// so the Google Cloud conventions (GOOGLE_CLOUD_PROJECT, GCS_BUCKET) work as is.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// ProjectID is the Google Cloud project hosting Firestore.
	// Env: GOOGLE_CLOUD_PROJECT
	ProjectID string `envconfig:"GOOGLE_CLOUD_PROJECT"`

	// MapsAPIKey authenticates Places API requests.
	// Env: MAPS_API_KEY
	MapsAPIKey string `envconfig:"MAPS_API_KEY"`

	// Bucket is the GCS bucket holding the index artifact.
	// Env: GCS_BUCKET
	Bucket string `envconfig:"GCS_BUCKET"`

	// Collection is the Firestore collection for campground documents.
	// Env: CAMPGROUNDS_COLLECTION (default: campgrounds)
	Collection string `envconfig:"CAMPGROUNDS_COLLECTION" default:"campgrounds"`

	// Places configures the Places API text search.
	Places PlacesEnv `envconfig:"PLACES"`

	// IndexFile is the local path the index is written to before upload.
	// Env: INDEX_FILE (default: campgrounds.index)
	IndexFile string `envconfig:"INDEX_FILE" default:"campgrounds.index"`

	// IndexObject is the object name of the index in the bucket.
	// Env: INDEX_OBJECT (default: campgrounds.index)
	IndexObject string `envconfig:"INDEX_OBJECT" default:"campgrounds.index"`

	// Embedding configures the local embedding model.
	Embedding EmbeddingEnv `envconfig:"EMBEDDING"`
}

// PlacesEnv holds environment configuration for the Places API.
type PlacesEnv struct {
	// Query is the text query.
	// Env: PLACES_QUERY
	Query string `envconfig:"QUERY" default:"campgrounds managed by Oregon Parks and Recreation Department"`

	// Endpoint is the text search URL.
	// Env: PLACES_ENDPOINT
	Endpoint string `envconfig:"ENDPOINT" default:"https://places.googleapis.com/v1/places:searchText"`

	// Timeout is the request timeout in seconds.
	// Env: PLACES_TIMEOUT (default: 30)
	Timeout float64 `envconfig:"TIMEOUT" default:"30"`

	// RequestsPerSecond caps the outbound request rate.
	// Env: PLACES_REQUESTS_PER_SECOND (default: 1)
	RequestsPerSecond float64 `envconfig:"REQUESTS_PER_SECOND" default:"1"`

	// CacheDir replays successful responses from disk when set. Development only.
	// Env: PLACES_CACHE_DIR
	CacheDir string `envconfig:"CACHE_DIR"`
}

// EmbeddingEnv holds environment configuration for the embedding model.
type EmbeddingEnv struct {
	// ModelDir is the directory containing the ONNX model and tokenizer.
	// Env: EMBEDDING_MODEL_DIR (default: models)
	ModelDir string `envconfig:"MODEL_DIR" default:"models"`

	// BatchSize is the number of texts per model invocation.
	// Env: EMBEDDING_BATCH_SIZE (default: 32)
	BatchSize int `envconfig:"BATCH_SIZE" default:"32"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}

	return cfg.Apply(
		WithProjectID(strings.TrimSpace(e.ProjectID)),
		WithMapsAPIKey(strings.TrimSpace(e.MapsAPIKey)),
		WithBucket(strings.TrimSpace(e.Bucket)),
		WithCollection(e.Collection),
		WithPlacesQuery(e.Places.Query),
		WithPlacesEndpoint(e.Places.Endpoint),
		WithPlacesTimeout(time.Duration(e.Places.Timeout*float64(time.Second))),
		WithPlacesRatePerSec(e.Places.RequestsPerSecond),
		WithPlacesCacheDir(strings.TrimSpace(e.Places.CacheDir)),
		WithIndexFile(e.IndexFile),
		WithIndexObject(e.IndexObject),
		WithModelDir(e.Embedding.ModelDir),
		WithEmbeddingBatchSize(e.Embedding.BatchSize),
	)
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
