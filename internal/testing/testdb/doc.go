// Package testdb provides test database utilities for the community API.
//
// # Configuration
//
// The server is located through TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER
// and TEST_DB_PASSWORD (defaults localhost:8000, root/root). Set
// TEST_DB_SKIP to skip database-backed tests outright.
//
// # Isolation
//
// Each test gets its own namespace:
//
//	func TestA(t *testing.T) {
//	    tdb := testdb.New(t) // namespace: test_<nanos>_1
//	    defer tdb.Close()
//	}
package testdb
