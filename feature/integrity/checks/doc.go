// Package checks contains the individual catalog integrity checks: schema
// against models, orphaned join rows, and the snapshot bucket.
package checks
