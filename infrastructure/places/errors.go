package places

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// APIError is a non-2xx response from the Places API.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
	err        *googleapi.Error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("places api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("places api: status %d", e.StatusCode)
}

// Unwrap exposes the underlying googleapi.Error.
func (e *APIError) Unwrap() error {
	if e.err == nil {
		return nil
	}
	return e.err
}

func newAPIError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	return &APIError{
		StatusCode: gerr.Code,
		Message:    gerr.Message,
		Body:       gerr.Body,
		err:        gerr,
	}
}
