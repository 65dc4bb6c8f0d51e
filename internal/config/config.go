// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"time"
)

// Default configuration values.
const (
	DefaultHost               = "0.0.0.0"
	DefaultPort               = 8080
	DefaultLogLevel           = "INFO"
	DefaultCollection         = "campgrounds"
	DefaultPlacesQuery        = "campgrounds managed by Oregon Parks and Recreation Department"
	DefaultPlacesEndpoint     = "https://places.googleapis.com/v1/places:searchText"
	DefaultPlacesTimeout      = 30 * time.Second
	DefaultPlacesRatePerSec   = 1.0
	DefaultIndexFile          = "campgrounds.index"
	DefaultIndexObject        = "campgrounds.index"
	DefaultModelDir           = "models"
	DefaultEmbeddingBatchSize = 32
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig holds the main application configuration.
type AppConfig struct {
	host               string
	port               int
	logLevel           string
	logFormat          LogFormat
	projectID          string
	mapsAPIKey         string
	bucket             string
	collection         string
	placesQuery        string
	placesEndpoint     string
	placesTimeout      time.Duration
	placesRatePerSec   float64
	placesCacheDir     string
	indexFile          string
	indexObject        string
	modelDir           string
	embeddingBatchSize int
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:               DefaultHost,
		port:               DefaultPort,
		logLevel:           DefaultLogLevel,
		logFormat:          LogFormatPretty,
		collection:         DefaultCollection,
		placesQuery:        DefaultPlacesQuery,
		placesEndpoint:     DefaultPlacesEndpoint,
		placesTimeout:      DefaultPlacesTimeout,
		placesRatePerSec:   DefaultPlacesRatePerSec,
		indexFile:          DefaultIndexFile,
		indexObject:        DefaultIndexObject,
		modelDir:           DefaultModelDir,
		embeddingBatchSize: DefaultEmbeddingBatchSize,
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// ProjectID returns the Google Cloud project hosting Firestore.
func (c AppConfig) ProjectID() string { return c.projectID }

// MapsAPIKey returns the Places API key.
func (c AppConfig) MapsAPIKey() string { return c.mapsAPIKey }

// Bucket returns the GCS bucket holding the index artifact.
func (c AppConfig) Bucket() string { return c.bucket }

// Collection returns the Firestore collection name.
func (c AppConfig) Collection() string { return c.collection }

// PlacesQuery returns the text query sent to the Places API.
func (c AppConfig) PlacesQuery() string { return c.placesQuery }

// PlacesEndpoint returns the Places text search URL.
func (c AppConfig) PlacesEndpoint() string { return c.placesEndpoint }

// PlacesTimeout returns the Places request timeout.
func (c AppConfig) PlacesTimeout() time.Duration { return c.placesTimeout }

// PlacesRatePerSec returns the outbound Places request rate.
func (c AppConfig) PlacesRatePerSec() float64 { return c.placesRatePerSec }

// PlacesCacheDir returns the directory for cached Places responses.
// Empty disables caching.
func (c AppConfig) PlacesCacheDir() string { return c.placesCacheDir }

// IndexFile returns the local path the index is written to.
func (c AppConfig) IndexFile() string { return c.indexFile }

// IndexObject returns the object name of the index in the bucket.
func (c AppConfig) IndexObject() string { return c.indexObject }

// ModelDir returns the directory holding the embedding model.
func (c AppConfig) ModelDir() string { return c.modelDir }

// EmbeddingBatchSize returns the number of texts per embedding call.
func (c AppConfig) EmbeddingBatchSize() int { return c.embeddingBatchSize }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithProjectID sets the Google Cloud project.
func WithProjectID(id string) AppConfigOption {
	return func(c *AppConfig) { c.projectID = id }
}

// WithMapsAPIKey sets the Places API key.
func WithMapsAPIKey(key string) AppConfigOption {
	return func(c *AppConfig) { c.mapsAPIKey = key }
}

// WithBucket sets the GCS bucket.
func WithBucket(bucket string) AppConfigOption {
	return func(c *AppConfig) { c.bucket = bucket }
}

// WithCollection sets the Firestore collection.
func WithCollection(name string) AppConfigOption {
	return func(c *AppConfig) {
		if name != "" {
			c.collection = name
		}
	}
}

// WithPlacesQuery sets the Places text query.
func WithPlacesQuery(query string) AppConfigOption {
	return func(c *AppConfig) {
		if query != "" {
			c.placesQuery = query
		}
	}
}

// WithPlacesEndpoint sets the Places text search URL.
func WithPlacesEndpoint(url string) AppConfigOption {
	return func(c *AppConfig) {
		if url != "" {
			c.placesEndpoint = url
		}
	}
}

// WithPlacesTimeout sets the Places request timeout.
func WithPlacesTimeout(d time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if d > 0 {
			c.placesTimeout = d
		}
	}
}

// WithPlacesRatePerSec sets the outbound Places request rate.
func WithPlacesRatePerSec(r float64) AppConfigOption {
	return func(c *AppConfig) {
		if r > 0 {
			c.placesRatePerSec = r
		}
	}
}

// WithPlacesCacheDir enables on-disk caching of Places responses.
func WithPlacesCacheDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.placesCacheDir = dir }
}

// WithIndexFile sets the local index path.
func WithIndexFile(path string) AppConfigOption {
	return func(c *AppConfig) {
		if path != "" {
			c.indexFile = path
		}
	}
}

// WithIndexObject sets the index object name.
func WithIndexObject(name string) AppConfigOption {
	return func(c *AppConfig) {
		if name != "" {
			c.indexObject = name
		}
	}
}

// WithModelDir sets the embedding model directory.
func WithModelDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		if dir != "" {
			c.modelDir = dir
		}
	}
}

// WithEmbeddingBatchSize sets the number of texts per embedding call.
func WithEmbeddingBatchSize(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.embeddingBatchSize = n
		}
	}
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// The Maps API key is never logged, only whether it is present.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("project_id", c.projectID),
		slog.Bool("maps_api_key_set", c.mapsAPIKey != ""),
		slog.String("bucket", c.bucket),
		slog.String("collection", c.collection),
		slog.String("index_object", c.indexObject),
		slog.String("model_dir", c.modelDir),
		slog.String("log_level", c.logLevel),
	}
}
