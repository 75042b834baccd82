// Package middleware provides HTTP middleware for the community API.
//
// # Available Middleware
//
//   - RequestID, Logger, Recovery, CORS, Compress: global request processing
//   - RateLimit: token bucket per client IP (golang.org/x/time/rate)
//   - Metrics: Prometheus request counters and latencies per route pattern
//   - Auth: bearer token to live account
//   - RequireAdmin: stored administrator role, after Auth
//
// # Context Values
//
// After Auth, handlers read the caller with:
//
//	user := middleware.GetUser(r.Context())
//	userID := middleware.GetUserID(r.Context())
package middleware
