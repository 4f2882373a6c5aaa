// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// NewHTTPClient returns the outbound client used for LLM calls. A zero timeout leaves
// the caller's context as the only deadline.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
