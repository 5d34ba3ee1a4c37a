// Package httpx owns the shared HTTP client used for every outbound model
// service call.
package httpx

import (
	"net/http"
	"time"
)

const defaultExternalHTTPTimeout = 90 * time.Second

// externalHTTPClient is shared across all external API calls so connection
// pooling works and the timeout is configured in exactly one place.
var externalHTTPClient = &http.Client{Timeout: defaultExternalHTTPTimeout}

// ExternalHTTPClient returns the shared outbound client.
func ExternalHTTPClient() *http.Client {
	return externalHTTPClient
}

// ConfigureExternalHTTPClient sets the shared client timeout from config.
// Non-positive seconds restores the default. Returns the applied timeout.
func ConfigureExternalHTTPClient(seconds int) time.Duration {
	d := defaultExternalHTTPTimeout
	if seconds > 0 {
		d = time.Duration(seconds) * time.Second
	}
	externalHTTPClient.Timeout = d
	return d
}
