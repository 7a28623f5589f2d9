// Package integrity provides catalog health checks.
//
// # Checks Provided
//
//   - Schema: Validates that the catalog tables match the GORM models (columns,
//     pinned types, and the (movie_id, artist_id) key of the join table).
//   - Links: Finds join rows whose movie or artist no longer exists.
//   - Storage: Checks that the snapshot bucket exists and counts snapshots.
//
// # HTTP Endpoints
//
//   - GET /api/integrity : Runs all checks.
//   - GET /api/integrity/schema : Runs the schema check.
//   - GET /api/integrity/links : Runs the links check (supports ?fix=true, admin only).
//   - GET /api/integrity/storage : Runs the storage check (supports ?fix=true, admin only).
package integrity
