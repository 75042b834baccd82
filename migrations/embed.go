// Package migrations holds the SurrealDB schema applied at startup.
package migrations

import "embed"

// FS contains every *.surql migration, applied in file name order.
//
//go:embed *.surql
var FS embed.FS
