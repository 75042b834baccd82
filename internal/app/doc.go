// Package app assembles the community API from configuration and storage.
//
// cmd/server and the acceptance tests build the same App, so tests exercise
// the production middleware chain:
//
//	a, err := app.New(app.Options{Config: cfg, Storage: app.MemoryStorage(memory.New())})
//	if err != nil { ... }
//	if err := a.Start(ctx); err != nil { ... }
//	defer a.Close()
//	http.ListenAndServe(":8080", a.Handler)
package app
