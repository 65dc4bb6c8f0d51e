//go:build !ORT

package provider

import "github.com/knights-analytics/hugot"

// newHugotSession uses the pure Go backend. Build with -tags ORT for ONNX Runtime.
func newHugotSession() (*hugot.Session, error) {
	return hugot.NewGoSession()
}
