// Package model defines domain entities and data structures for the community API.
//
// The model package contains the struct definitions for domain objects,
// request/response types, and the error envelope. Models are used across all
// layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - User: account with profile, role flag and moderation state
//   - KickRecord: tombstone written when an account is removed
//   - Report, ContactMessage: support and moderation inbox
//   - MediaItem, Comment: shared clips awaiting or past review
//   - Event: scheduled streams and community events
//   - Notification: per-account notices
//
// # JSON Serialization
//
// Field names are camelCase to match the web client:
//
//	type MediaItem struct {
//	    ID         string `json:"id"`
//	    CreditName string `json:"creditName"`
//	}
//
// # Error Types
//
// Every failure is written as an APIError envelope:
//
//	{"success": false, "message": "Missing fields"}
//
// Banned sign-ins additionally carry "kickReason".
package model
