package catalog_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"movies-app/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectionApp(got *[]string, absent *bool) *fiber.App {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		vals := catalog.FormValues(c, catalog.SelectionField)
		*got = vals
		*absent = vals == nil
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestFormValues_URLEncoded(t *testing.T) {
	var got []string
	var absent bool
	app := selectionApp(&got, &absent)

	req := httptest.NewRequest("POST", "/", strings.NewReader("title=Alien&selectedOptions=3&selectedOptions=1"))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	_, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1"}, got)

	req = httptest.NewRequest("POST", "/", strings.NewReader("title=Alien"))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	_, err = app.Test(req)
	require.NoError(t, err)
	assert.True(t, absent)
}

func TestFormValues_Multipart(t *testing.T) {
	var got []string
	var absent bool
	app := selectionApp(&got, &absent)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("selectedOptions", "2"))
	require.NoError(t, w.WriteField("selectedOptions", "5"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "5"}, got)
	assert.False(t, absent)
}

func TestPathID(t *testing.T) {
	app := fiber.New()
	app.Get("/:id", func(c *fiber.Ctx) error {
		id, err := catalog.PathID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		return c.JSON(fiber.Map{"id": id})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/12", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
