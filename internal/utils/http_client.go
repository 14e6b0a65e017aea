package utils

import (
	"net/http"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance
// with a default-configured underlying resty.Client.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}

// RetryOnGatewayErrors makes the client retry a request up to count times when
// the response is 502, 503 or 504. Other failures are returned as-is. A count
// of zero or less leaves retries disabled.
func (c *HTTPClient) RetryOnGatewayErrors(count int) *HTTPClient {
	if count <= 0 {
		return c
	}

	c.SetRetryCount(count).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil || resp == nil {
				return false
			}
			return IsGatewayError(resp.StatusCode())
		})

	return c
}

// IsGatewayError reports whether status is one of 502, 503 or 504.
func IsGatewayError(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
