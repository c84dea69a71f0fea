package webclient

import (
	"net/http"
	"time"
)

// NewDefault returns the HTTP client used for StackUp API calls.
// A zero timeout leaves the transport defaults untouched.
func NewDefault(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		return &http.Client{Transport: http.DefaultTransport}
	}
	return &http.Client{Transport: http.DefaultTransport, Timeout: timeout}
}
