package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToMovieDto_SortsLinkedIDs(t *testing.T) {
	m := &Movie{
		ID:    1,
		Title: "Alien",
		MoviesArtists: []MovieArtist{
			{MovieID: 1, ArtistID: 9},
			{MovieID: 1, ArtistID: 2},
		},
	}
	assert.Equal(t, []int{2, 9}, ToMovieDto(m).ArtistIDs)
	assert.NotNil(t, ToMovieDto(&Movie{ID: 2}).ArtistIDs)
}

func TestMovieFromDto_IgnoresLinks(t *testing.T) {
	d := MovieDto{ID: 7, Title: "Heat", Genre: "Crime", Price: 5, ArtistIDs: []int{1}}
	m := MovieFromDto(d)
	assert.Equal(t, 0, m.ID)
	assert.Equal(t, "Heat", m.Title)
	assert.Empty(t, m.MoviesArtists)
}

func TestToArtistView(t *testing.T) {
	a := &Artist{
		ID:        3,
		FirstName: "Sigourney",
		LastName:  "Weaver",
		Birthday:  time.Date(1949, 10, 8, 0, 0, 0, 0, time.UTC),
		MoviesArtists: []MovieArtist{
			{MovieID: 5, ArtistID: 3, Movie: &Movie{ID: 5, Title: "Aliens"}},
			{MovieID: 1, ArtistID: 3, Movie: &Movie{ID: 1, Title: "Alien"}},
		},
	}

	v := ToArtistView(a)
	assert.Equal(t, "1949-10-08", v.Birthday)
	assert.Equal(t, []Linked{{ID: 1, Name: "Alien"}, {ID: 5, Name: "Aliens"}}, v.Movies)

	d := ToArtistDto(a)
	assert.Equal(t, []int{1, 5}, d.MovieIDs)
	assert.Equal(t, "Sigourney", ArtistFromDto(d).FirstName)
}

func TestBuildOptions(t *testing.T) {
	candidates := []Linked{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}
	got := BuildOptions(candidates, []int{3, 1, 42})
	assert.Equal(t, []Option{
		{ID: 1, Name: "A", Assigned: true},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "C", Assigned: true},
	}, got)
}
