// Package handler provides the HTTP handlers for the community API.
//
// Handlers are grouped by area (auth, users, events, media, moderation,
// site, admin). Each wraps the service it needs and maps service errors
// through MapServiceError.
//
// # Response Format
//
// Every body carries "success". Successful responses are written with
// WriteOK and a resource keyed the way clients expect (items, report,
// contacts...). Failures are a model.APIError with "message" and, for
// banned accounts, "kickReason".
//
// # Routing
//
// NewRouter registers all /api routes with their gates:
//
//	mux := handler.NewRouter(handler.RouterConfig{...})
//	server.Handler = middleware.Chain(middleware.Metrics(mux), ...)
package handler
