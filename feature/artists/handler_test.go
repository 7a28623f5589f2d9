package artists_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"movies-app/core/middleware/auth"
	"movies-app/core/reconcile"
	"movies-app/feature/artists"
	"movies-app/feature/catalog"
	"movies-app/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestArtistRoutes(t *testing.T) {
	db := setupDB(t)
	m := seedMovies(t, db, "Alien", "Heat")

	feature := artists.NewFeature(db, zap.NewNop(), catalog.NewValidator(today), reconcile.Options{})
	app := fiber.New()
	app.Use(auth.New(auth.Config{}))
	require.NoError(t, feature.Load(app))

	form := url.Values{
		"firstName":       {"Sigourney"},
		"lastName":        {"Weaver"},
		"birthday":        {"1949-10-08"},
		"selectedOptions": {strconv.Itoa(m[1])},
	}
	req := httptest.NewRequest("POST", "/artists", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/artists", resp.Header.Get("Location"))

	resp, err = app.Test(httptest.NewRequest("GET", "/api/artists", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data, _ := io.ReadAll(resp.Body)
	var list []models.ArtistDto
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, []int{m[1]}, list[0].MovieIDs)

	t.Run("Invalid date", func(t *testing.T) {
		bad := url.Values{"firstName": {"Sigourney"}, "lastName": {"Weaver"}, "birthday": {"08/10/1949"}}
		req := httptest.NewRequest("POST", "/artists", strings.NewReader(bad.Encode()))
		req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("JSON update with null ids clears", func(t *testing.T) {
		body := `{"firstName":"Sigourney","lastName":"Weaver","birthday":"1949-10-08","moviesArtistsIds":null}`
		req := httptest.NewRequest("PUT", "/api/artists/"+strconv.Itoa(list[0].ID), strings.NewReader(body))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var got models.ArtistDto
		data, _ := io.ReadAll(resp.Body)
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Empty(t, got.MovieIDs)
		assert.Equal(t, "1949-10-08", got.Birthday.UTC().Format("2006-01-02"))
	})

	t.Run("Delete via API", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("DELETE", "/api/artists/"+strconv.Itoa(list[0].ID), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest("GET", "/artists/"+strconv.Itoa(list[0].ID), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
