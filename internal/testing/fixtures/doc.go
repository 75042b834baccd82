// Package fixtures provides test data factories for the community API.
//
// # Factory Pattern
//
// Create a factory over the repositories under test:
//
//	f := fixtures.New(fixtures.Stores{Users: repo})
//
// # Customization
//
// Use option functions for customization:
//
//	user := f.CreateUser(t, fixtures.WithEmail("custom@example.com"))
//	admin := f.CreateUser(t, fixtures.WithAdmin())
//
// # Random Data
//
// Unique ids and emails are generated automatically, so fixtures never
// collide within one store.
package fixtures
