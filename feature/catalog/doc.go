// Package catalog holds what the movie and artist features share: the GORM
// link store and owner adapters for the reconciler, DTO validation, HTTP error
// mapping, form helpers and schema migration.
//
// Both sides of the movie-artist relation reconcile through the same
// reconcile engine. MovieOwner and ArtistOwner adapt the loaded entities,
// LinkStore writes join rows inside the caller's transaction.
package catalog
