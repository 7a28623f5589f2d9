package models

import "time"

// Movie represents the 'movies' table.
type Movie struct {
	ID          int       `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string    `gorm:"column:title;size:32;not null"`
	ReleaseDate time.Time `gorm:"column:release_date"`
	Genre       string    `gorm:"column:genre;size:64"`
	Price       float64   `gorm:"column:price;type:decimal(6,2)"`

	MoviesArtists []MovieArtist `gorm:"foreignKey:MovieID"`
}

// TableName overrides the table name for movies.
func (Movie) TableName() string {
	return "movies"
}

// Artist represents the 'artists' table.
type Artist struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName string    `gorm:"column:first_name;size:64;not null"`
	LastName  string    `gorm:"column:last_name;size:64;not null"`
	Birthday  time.Time `gorm:"column:birthday"`

	MoviesArtists []MovieArtist `gorm:"foreignKey:ArtistID"`
}

// TableName overrides the table name for artists.
func (Artist) TableName() string {
	return "artists"
}

// FullName is the display name used in option lists and views.
func (a Artist) FullName() string {
	return a.FirstName + " " + a.LastName
}

// MovieArtist represents the 'movies_artists' join table.
// The row is identified by (movie_id, artist_id); there is no surrogate key.
type MovieArtist struct {
	MovieID  int `gorm:"column:movie_id;primaryKey;autoIncrement:false"`
	ArtistID int `gorm:"column:artist_id;primaryKey;autoIncrement:false"`

	Movie  *Movie  `gorm:"foreignKey:MovieID"`
	Artist *Artist `gorm:"foreignKey:ArtistID"`
}

// TableName overrides the table name for the join.
func (MovieArtist) TableName() string {
	return "movies_artists"
}

// All lists the entities to migrate, join table last.
func All() []any {
	return []any{&Movie{}, &Artist{}, &MovieArtist{}}
}
