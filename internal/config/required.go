package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissing is matched by every MissingError.
var ErrMissing = errors.New("required configuration missing")

// Job identifies a pipeline stage. Each stage has its own set of
// required environment variables.
type Job string

// Job values.
const (
	JobIngest Job = "ingest"
	JobIndex  Job = "index"
	JobServe  Job = "serve"
)

// Environment variable names that can be required.
const (
	EnvProjectID  = "GOOGLE_CLOUD_PROJECT"
	EnvMapsAPIKey = "MAPS_API_KEY"
	EnvBucket     = "GCS_BUCKET"
)

var requiredByJob = map[Job][]string{
	JobIngest: {EnvProjectID, EnvMapsAPIKey},
	JobIndex:  {EnvBucket},
	JobServe:  {EnvBucket},
}

// MissingError lists the required variables that were not set for a job.
type MissingError struct {
	Job  Job
	Vars []string
}

// Error implements error.
func (e *MissingError) Error() string {
	return fmt.Sprintf("%s: required environment variable(s) not set: %s (set them or source your .env file)",
		e.Job, strings.Join(e.Vars, ", "))
}

// Is reports whether target is ErrMissing.
func (e *MissingError) Is(target error) bool {
	return target == ErrMissing
}

// Validate checks that every variable required by job has a value.
// All missing variables are reported together.
func (c AppConfig) Validate(job Job) error {
	vars, ok := requiredByJob[job]
	if !ok {
		return fmt.Errorf("unknown job %q", job)
	}

	var missing []string
	for _, name := range vars {
		if strings.TrimSpace(c.lookup(name)) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingError{Job: job, Vars: missing}
	}
	return nil
}

func (c AppConfig) lookup(name string) string {
	switch name {
	case EnvProjectID:
		return c.projectID
	case EnvMapsAPIKey:
		return c.mapsAPIKey
	case EnvBucket:
		return c.bucket
	default:
		return ""
	}
}
