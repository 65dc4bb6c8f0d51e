package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/campsite/internal/config"
)

func TestServeOverrides(t *testing.T) {
	base := config.NewAppConfig()

	tests := []struct {
		name string
		host string
		port int
		want string
	}{
		{name: "no flags", want: "0.0.0.0:8080"},
		{name: "host only", host: "127.0.0.1", want: "127.0.0.1:8080"},
		{name: "port only", port: 9090, want: "0.0.0.0:9090"},
		{name: "both", host: "localhost", port: 3000, want: "localhost:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base.Apply(serveOverrides(tt.host, tt.port)...)
			assert.Equal(t, tt.want, cfg.Addr())
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := rootCmd()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"ingest", "index", "serve", "version"})
}

func TestVersionCmd(t *testing.T) {
	cmd := versionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "campsite dev")
}

func TestServeFlags(t *testing.T) {
	cmd := serveCmd()

	for _, name := range []string{"env-file", "host", "port"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestSetup_MissingRequired(t *testing.T) {
	t.Setenv(config.EnvProjectID, "")
	t.Setenv(config.EnvMapsAPIKey, "")
	t.Setenv(config.EnvBucket, "")
	t.Setenv("LOG_FORMAT", "json")

	_, _, err := setup(t.TempDir()+"/missing.env", config.JobIngest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrMissing))

	var missing *config.MissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{config.EnvProjectID, config.EnvMapsAPIKey}, missing.Vars)
}
