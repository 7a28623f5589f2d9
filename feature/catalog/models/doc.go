// Package models defines the catalog's persistence entities, transfer objects
// and view models, plus the mapping functions between them.
//
// Entities (Movie, Artist, MovieArtist) are GORM models. MovieArtist is the
// join entity of the many-to-many relation and is keyed by (movie_id, artist_id).
// DTOs carry validation tags and the target link set submitted by a client;
// views carry display names of linked entities for the browser surface.
package models
