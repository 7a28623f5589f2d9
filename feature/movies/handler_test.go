package movies_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"movies-app/core/middleware/auth"
	"movies-app/core/reconcile"
	"movies-app/feature/catalog"
	"movies-app/feature/catalog/models"
	"movies-app/feature/movies"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T, authCfg auth.Config) (*fiber.App, *gorm.DB) {
	db := setupDB(t)
	feature := movies.NewFeature(db, zap.NewNop(), catalog.NewValidator(nil), reconcile.Options{})

	app := fiber.New()
	app.Use(auth.New(authCfg))
	require.NoError(t, feature.Load(app))
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func postForm(t *testing.T, app *fiber.App, target string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestHandleCreateAndUpdate(t *testing.T) {
	app, db := setupTestApp(t, auth.Config{})
	a := seedArtists(t, db, 2)

	body := `{"title":"Alien","releaseDate":"1979-05-25T00:00:00Z","genre":"Sci-Fi","price":9.99,"moviesArtistsIds":[` +
		strconv.Itoa(a[0]) + `,` + strconv.Itoa(a[1]) + `]}`
	resp, data := doJSON(t, app, "POST", "/api/movies", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))

	var created models.MovieDto
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Equal(t, a, created.ArtistIDs)

	// moviesArtistsIds omitted: every link is removed.
	body = `{"title":"Alien","releaseDate":"1979-05-25T00:00:00Z","genre":"Sci-Fi","price":9.99}`
	resp, data = doJSON(t, app, "PUT", "/api/movies/"+strconv.Itoa(created.ID), body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))

	var updated models.MovieDto
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Empty(t, updated.ArtistIDs)
	assert.Empty(t, linksOf(t, db))
}

func TestHandleCreate_Invalid(t *testing.T) {
	app, _ := setupTestApp(t, auth.Config{})

	resp, data := doJSON(t, app, "POST", "/api/movies", `{"title":"","genre":"Drama","price":5}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(data), `"title"`)

	resp, _ = doJSON(t, app, "POST", "/api/movies", `{not json`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleCreate_PlainDateAndPriceBound(t *testing.T) {
	app, db := setupTestApp(t, auth.Config{})

	resp, data := doJSON(t, app, "POST", "/api/movies", `{"title":"Alien","releaseDate":"1979-05-25","genre":"Sci-Fi","price":999.99}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))

	var stored models.Movie
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "1979-05-25", stored.ReleaseDate.UTC().Format("2006-01-02"))

	resp, data = doJSON(t, app, "POST", "/api/movies", `{"title":"Heat","releaseDate":"1995-12-15","genre":"Crime","price":999.995}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(data), `"price"`)

	resp, _ = doJSON(t, app, "POST", "/api/movies", `{"title":"Heat","releaseDate":"15/12/1995","genre":"Crime","price":5}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleGet_NotFound(t *testing.T) {
	app, _ := setupTestApp(t, auth.Config{})

	resp, _ := doJSON(t, app, "GET", "/api/movies/999", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/api/movies/abc", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandlePlan(t *testing.T) {
	app, db := setupTestApp(t, auth.Config{})
	a := seedArtists(t, db, 2)

	created, err := newService(db, reconcile.Options{}).AddMovie(context.Background(), movieDto("Alien", []int{a[0]}))
	require.NoError(t, err)

	body := `{"moviesArtistsIds":[` + strconv.Itoa(a[1]) + `]}`
	resp, data := doJSON(t, app, "POST", "/api/movies/"+strconv.Itoa(created.ID)+"/plan", body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))

	var plan reconcile.Plan
	require.NoError(t, json.Unmarshal(data, &plan))
	assert.Len(t, plan.Actions, 2)
	assert.Len(t, linksOf(t, db), 1)
}

func TestFormRoutes(t *testing.T) {
	app, db := setupTestApp(t, auth.Config{})
	a := seedArtists(t, db, 3)

	form := url.Values{
		"title":           {"Alien"},
		"releaseDate":     {"1979-05-25"},
		"genre":           {"Sci-Fi"},
		"price":           {"9.99"},
		"selectedOptions": {strconv.Itoa(a[0]), strconv.Itoa(a[2])},
	}
	resp := postForm(t, app, "/movies", form)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/movies", resp.Header.Get("Location"))

	var movie models.Movie
	require.NoError(t, db.First(&movie).Error)
	id := strconv.Itoa(movie.ID)
	assert.Len(t, linksOf(t, db), 2)

	t.Run("Edit form lists options", func(t *testing.T) {
		resp, data := doJSON(t, app, "GET", "/movies/"+id+"/edit", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var ef movies.EditForm
		require.NoError(t, json.Unmarshal(data, &ef))
		require.Len(t, ef.Options, 3)
		assert.True(t, ef.Options[0].Assigned)
		assert.False(t, ef.Options[1].Assigned)
		assert.True(t, ef.Options[2].Assigned)
	})

	t.Run("Malformed selection changes nothing", func(t *testing.T) {
		bad := url.Values{
			"title":           {"Renamed"},
			"releaseDate":     {"1979-05-25"},
			"genre":           {"Sci-Fi"},
			"price":           {"9.99"},
			"selectedOptions": {strconv.Itoa(a[1]), "abc"},
		}
		resp := postForm(t, app, "/movies/"+id+"/edit", bad)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var got models.Movie
		require.NoError(t, db.First(&got, movie.ID).Error)
		assert.Equal(t, "Alien", got.Title)
		assert.Len(t, linksOf(t, db), 2)
	})

	t.Run("Unchecking everything clears links", func(t *testing.T) {
		cleared := url.Values{
			"title":       {"Alien"},
			"releaseDate": {"1979-05-25"},
			"genre":       {"Sci-Fi"},
			"price":       {"9.99"},
		}
		resp := postForm(t, app, "/movies/"+id+"/edit", cleared)
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
		assert.Empty(t, linksOf(t, db))
	})

	t.Run("Delete", func(t *testing.T) {
		resp := postForm(t, app, "/movies/"+id+"/delete", url.Values{})
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

		resp, _ = doJSON(t, app, "GET", "/movies/"+id, "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestAuth(t *testing.T) {
	app, _ := setupTestApp(t, auth.Config{ApiKey: "secret", JWTSecret: "jwt-secret"})

	resp, _ := doJSON(t, app, "GET", "/api/movies", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/api/movies", nil)
	req.Header.Set(auth.HeaderAPIKey, "secret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	token, _, err := auth.NewToken("jwt-secret", "viewer", "user", time.Hour)
	require.NoError(t, err)

	req = httptest.NewRequest("GET", "/api/movies", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// A user token may read but not write.
	req = httptest.NewRequest("POST", "/movies/1/delete", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
