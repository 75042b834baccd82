// Package repository implements the SurrealDB data access layer for the
// community API.
//
// Each repository struct satisfies one of the storage interfaces declared
// in the service package. Records are keyed by the ids the services issue,
// written with type::thing("table", $id), and read back with the table
// prefix stripped.
//
// # Query Patterns
//
//   - Parameterized queries with $variable syntax
//   - type::thing() for record addressing
//   - database.AtomicBatch where two writes must land together (kick)
//   - Single-statement UPSERT for flag toggles
//
// # Example Usage
//
//	repo := NewUserRepository(db)
//	user, err := repo.GetByEmail(ctx, "a@example.com")
//	if err != nil {
//	    return err
//	}
//	if user == nil {
//	    // Not found
//	}
package repository
