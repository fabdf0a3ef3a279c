// Package connection provides the authenticated HTTP client for shurlty-cli.
//
// Every request flows through a chain of http.RoundTripper middleware
// assembled once in NewHTTPClient:
//
//   - requestIDTransport: X-Request-ID header and debug logging
//   - metricsTransport: request counters and latency histogram
//   - rateLimitTransport: optional client-side throttle
//   - authFailureTransport: runs the AuthFailurePolicy on 401
//   - authTransport: Authorization: Bearer from the token store
//
// Non-2xx responses surface as *APIError carrying the decoded body.
package connection
