// Package service implements the business logic layer for the community API.
//
// The service package contains all domain logic, validation rules, and
// orchestration of repository operations. Services are the primary
// abstraction between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with repository dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// Every service takes an optional Now clock so ban expiry and timestamps
// can be driven from tests.
//
// # Repository Interfaces
//
// Services define their own repository interfaces, satisfied by both the
// in-memory store and the SurrealDB repositories.
//
// # Moderation Hub
//
// Moderation mutations publish HubEvents on an EventHub. The admin stream
// and the Discord relay are its subscribers; publishing never blocks.
//
// # Example Usage
//
//	accounts := NewAccountService(AccountServiceConfig{
//	    UserRepo: users,
//	    KickRepo: kicks,
//	    Hub:      hub,
//	})
//	result, err := accounts.ApplyAction(ctx, adminID, model.UserActionRequest{
//	    UserID: targetID,
//	    Action: "ban",
//	})
package service
