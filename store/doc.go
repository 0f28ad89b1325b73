// SPDX-License-Identifier: MIT

// Package store keeps named mesh snapshots in a SQLite database.
//
// Each row holds one snapshot serialized by a codec (YAML by default)
// together with a few summary columns for listing. Saving under an existing
// name replaces the row. The database is opened through the pure-Go
// modernc.org/sqlite driver, so no cgo toolchain is needed.
package store
