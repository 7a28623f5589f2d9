// Package artists implements artist management, the mirror of package movies:
// an artist owns their links to movies, and the service reconciles the
// movies_artists rows against the submitted movie ids on every save.
// Routes live under /api/artists (JSON) and /artists (forms).
package artists
