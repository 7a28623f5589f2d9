package models

import (
	"sort"
)

const viewDateLayout = "2006-01-02"

// ToMovieDto maps a movie entity, with its loaded join rows, to a DTO.
func ToMovieDto(m *Movie) MovieDto {
	ids := make([]int, 0, len(m.MoviesArtists))
	for _, ma := range m.MoviesArtists {
		ids = append(ids, ma.ArtistID)
	}
	sort.Ints(ids)

	return MovieDto{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate,
		Genre:       m.Genre,
		Price:       m.Price,
		ArtistIDs:   ids,
	}
}

// MovieFromDto builds a new movie entity from d. Links are not part of the entity.
func MovieFromDto(d MovieDto) Movie {
	var m Movie
	ApplyMovieDto(&m, d)
	return m
}

// ApplyMovieDto copies the scalar fields of d onto m. Links are not touched.
func ApplyMovieDto(m *Movie, d MovieDto) {
	m.Title = d.Title
	m.ReleaseDate = d.ReleaseDate
	m.Genre = d.Genre
	m.Price = d.Price
}

// ToMovieView maps a movie with preloaded artists to its view model.
func ToMovieView(m *Movie) MovieView {
	artists := make([]Linked, 0, len(m.MoviesArtists))
	for _, ma := range m.MoviesArtists {
		l := Linked{ID: ma.ArtistID}
		if ma.Artist != nil {
			l.Name = ma.Artist.FullName()
		}
		artists = append(artists, l)
	}
	sort.Slice(artists, func(i, j int) bool { return artists[i].ID < artists[j].ID })

	return MovieView{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate.Format(viewDateLayout),
		Genre:       m.Genre,
		Price:       m.Price,
		Artists:     artists,
	}
}

// ToArtistDto maps an artist entity, with its loaded join rows, to a DTO.
func ToArtistDto(a *Artist) ArtistDto {
	ids := make([]int, 0, len(a.MoviesArtists))
	for _, ma := range a.MoviesArtists {
		ids = append(ids, ma.MovieID)
	}
	sort.Ints(ids)

	return ArtistDto{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Birthday:  a.Birthday,
		MovieIDs:  ids,
	}
}

// ArtistFromDto builds a new artist entity from d. Links are not part of the entity.
func ArtistFromDto(d ArtistDto) Artist {
	var a Artist
	ApplyArtistDto(&a, d)
	return a
}

// ApplyArtistDto copies the scalar fields of d onto a. Links are not touched.
func ApplyArtistDto(a *Artist, d ArtistDto) {
	a.FirstName = d.FirstName
	a.LastName = d.LastName
	a.Birthday = d.Birthday
}

// ToArtistView maps an artist with preloaded movies to its view model.
func ToArtistView(a *Artist) ArtistView {
	movies := make([]Linked, 0, len(a.MoviesArtists))
	for _, ma := range a.MoviesArtists {
		l := Linked{ID: ma.MovieID}
		if ma.Movie != nil {
			l.Name = ma.Movie.Title
		}
		movies = append(movies, l)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })

	return ArtistView{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Birthday:  a.Birthday.Format(viewDateLayout),
		Movies:    movies,
	}
}

// BuildOptions marks every candidate that appears in assigned.
func BuildOptions(candidates []Linked, assigned []int) []Option {
	set := make(map[int]struct{}, len(assigned))
	for _, id := range assigned {
		set[id] = struct{}{}
	}

	options := make([]Option, 0, len(candidates))
	for _, c := range candidates {
		_, ok := set[c.ID]
		options = append(options, Option{ID: c.ID, Name: c.Name, Assigned: ok})
	}
	return options
}
