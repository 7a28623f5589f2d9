// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either MySQL (production) or SQLite (development and
// tests) based on the application's configuration.
//
// # Connect
//
// Connect opens the database, enables gorm error translation so that duplicate
// keys surface as gorm.ErrDuplicatedKey, and verifies the connection with a ping.
//
// # Schema Inspection
//
// GetTableColumns and PrimaryKey read the live schema. The migrate command uses
// them to report that the movie-artist join table is keyed by (movie_id, artist_id)
// with no surrogate id.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	keys, err := database.PrimaryKey(db, "movies_artists")
package database
