package models

import "time"

// MovieDto is the service-layer and REST representation of a movie.
type MovieDto struct {
	ID          int       `json:"id,omitempty"`
	Title       string    `json:"title" validate:"required,max=32"`
	ReleaseDate time.Time `json:"releaseDate" validate:"required"`
	Genre       string    `json:"genre" validate:"required,max=64"`
	Price       float64   `json:"price" validate:"gte=0,lte=999.99"`
	// ArtistIDs is the target link set. Nil clears every link on update.
	ArtistIDs []int `json:"moviesArtistsIds"`
}

// ArtistDto is the service-layer and REST representation of an artist.
type ArtistDto struct {
	ID        int       `json:"id,omitempty"`
	FirstName string    `json:"firstName" validate:"required,min=4,max=64"`
	LastName  string    `json:"lastName" validate:"required,min=4,max=64"`
	Birthday  time.Time `json:"birthday" validate:"required,artist_age"`
	// MovieIDs is the target link set. Nil clears every link on update.
	MovieIDs []int `json:"moviesArtistsIds"`
}

// Linked is a related entity shown next to its owner.
type Linked struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieView is the browser-facing view model of a movie.
type MovieView struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"releaseDate"`
	Genre       string   `json:"genre"`
	Price       float64  `json:"price"`
	Artists     []Linked `json:"artists"`
}

// ArtistView is the browser-facing view model of an artist.
type ArtistView struct {
	ID        int      `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Birthday  string   `json:"birthday"`
	Movies    []Linked `json:"movies"`
}

// Option is one checkbox of a selection list.
type Option struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Assigned bool   `json:"assigned"`
}
