package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConstants(t *testing.T) {
	if DefaultHost != "0.0.0.0" {
		t.Errorf("DefaultHost = %v, want '0.0.0.0'", DefaultHost)
	}
	if DefaultPort != 8080 {
		t.Errorf("DefaultPort = %v, want 8080", DefaultPort)
	}
	if DefaultCollection != "campgrounds" {
		t.Errorf("DefaultCollection = %v, want 'campgrounds'", DefaultCollection)
	}
	if DefaultIndexObject != "campgrounds.index" {
		t.Errorf("DefaultIndexObject = %v, want 'campgrounds.index'", DefaultIndexObject)
	}
	if DefaultIndexFile != DefaultIndexObject {
		t.Errorf("DefaultIndexFile = %v, want it to match the object name", DefaultIndexFile)
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "INFO", cfg.LogLevel())
	assert.Equal(t, LogFormatPretty, cfg.LogFormat())
	assert.Equal(t, DefaultPlacesQuery, cfg.PlacesQuery())
	assert.Equal(t, DefaultPlacesEndpoint, cfg.PlacesEndpoint())
	assert.Equal(t, 30*time.Second, cfg.PlacesTimeout())
	assert.Equal(t, 1.0, cfg.PlacesRatePerSec())
	assert.Equal(t, "models", cfg.ModelDir())
	assert.Equal(t, 32, cfg.EmbeddingBatchSize())
	assert.Empty(t, cfg.ProjectID())
	assert.Empty(t, cfg.MapsAPIKey())
	assert.Empty(t, cfg.Bucket())
}

func TestAppConfig_WithOptions(t *testing.T) {
	cfg := NewAppConfigWithOptions(
		WithHost("127.0.0.1"),
		WithPort(9090),
		WithProjectID("proj"),
		WithMapsAPIKey("key"),
		WithBucket("bucket"),
		WithCollection("parks"),
		WithIndexObject("parks.index"),
		WithEmbeddingBatchSize(8),
	)

	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, "proj", cfg.ProjectID())
	assert.Equal(t, "key", cfg.MapsAPIKey())
	assert.Equal(t, "bucket", cfg.Bucket())
	assert.Equal(t, "parks", cfg.Collection())
	assert.Equal(t, "parks.index", cfg.IndexObject())
	assert.Equal(t, 8, cfg.EmbeddingBatchSize())
}

func TestAppConfig_EmptyOptionsKeepDefaults(t *testing.T) {
	cfg := NewAppConfigWithOptions(
		WithCollection(""),
		WithIndexFile(""),
		WithPlacesTimeout(0),
		WithEmbeddingBatchSize(-1),
	)

	assert.Equal(t, DefaultCollection, cfg.Collection())
	assert.Equal(t, DefaultIndexFile, cfg.IndexFile())
	assert.Equal(t, DefaultPlacesTimeout, cfg.PlacesTimeout())
	assert.Equal(t, DefaultEmbeddingBatchSize, cfg.EmbeddingBatchSize())
}

func TestAppConfig_LogAttrsMasksAPIKey(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithMapsAPIKey("secret-key"))

	for _, attr := range cfg.LogAttrs() {
		assert.NotContains(t, attr.Value.String(), "secret-key", "attr %s leaks the API key", attr.Key)
	}
}

func TestAppConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		job     Job
		opts    []AppConfigOption
		missing []string
	}{
		{
			name:    "ingest with nothing set",
			job:     JobIngest,
			missing: []string{EnvProjectID, EnvMapsAPIKey},
		},
		{
			name:    "ingest without api key",
			job:     JobIngest,
			opts:    []AppConfigOption{WithProjectID("proj")},
			missing: []string{EnvMapsAPIKey},
		},
		{
			name: "ingest complete",
			job:  JobIngest,
			opts: []AppConfigOption{WithProjectID("proj"), WithMapsAPIKey("key")},
		},
		{
			name:    "index without bucket",
			job:     JobIndex,
			opts:    []AppConfigOption{WithProjectID("proj")},
			missing: []string{EnvBucket},
		},
		{
			name: "serve with bucket",
			job:  JobServe,
			opts: []AppConfigOption{WithBucket("bucket")},
		},
		{
			name:    "whitespace counts as missing",
			job:     JobServe,
			opts:    []AppConfigOption{WithBucket("   ")},
			missing: []string{EnvBucket},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAppConfigWithOptions(tt.opts...).Validate(tt.job)
			if len(tt.missing) == 0 {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissing))

			var missingErr *MissingError
			require.ErrorAs(t, err, &missingErr)
			assert.Equal(t, tt.job, missingErr.Job)
			assert.Equal(t, tt.missing, missingErr.Vars)
			for _, v := range tt.missing {
				assert.Contains(t, err.Error(), v)
			}
		})
	}
}

func TestAppConfig_ValidateUnknownJob(t *testing.T) {
	err := NewAppConfig().Validate(Job("reindex"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMissing))
}
