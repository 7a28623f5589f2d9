package movies

import (
	"fmt"

	"movies-app/core/logger"
	"movies-app/core/middleware/auth"
	"movies-app/core/server"
	"movies-app/core/utils"
	"movies-app/feature/catalog"
	"movies-app/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
)

const listPath = "/movies"

// EditForm is the data behind the movie edit form.
type EditForm struct {
	Movie   *models.MovieDto `json:"movie,omitempty"`
	Options []models.Option  `json:"options"`
}

// RegisterFormRoutes registers the browser-facing routes under /movies.
// Mutations answer 303 See Other back to the list.
func (h *Handler) RegisterFormRoutes(app fiber.Router) {
	admin := auth.RequireRole(server.RoleAdmin)

	group := app.Group(listPath)
	group.Get("/", h.HandleIndex)
	group.Get("/new", admin, h.HandleNewForm)
	group.Post("/", admin, h.HandleCreateForm)
	group.Get("/:id", h.HandleDetails)
	group.Get("/:id/edit", admin, h.HandleEditForm)
	group.Post("/:id/edit", admin, h.HandleEditSubmit)
	group.Post("/:id/delete", admin, h.HandleDeleteSubmit)
}

// HandleIndex returns the movie list view.
func (h *Handler) HandleIndex(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	views, err := h.service.ListMovieViews(c.UserContext())
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(views)
}

// HandleDetails returns one movie with its artists' names.
func (h *Handler) HandleDetails(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := catalog.PathID(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	view, err := h.service.GetMovieView(c.UserContext(), id)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(view)
}

// HandleNewForm returns the artist options of an empty movie.
func (h *Handler) HandleNewForm(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	options, err := h.service.ArtistOptions(c.UserContext(), 0)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(EditForm{Options: options})
}

// HandleEditForm returns a movie and its artist options.
func (h *Handler) HandleEditForm(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := catalog.PathID(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	movie, err := h.service.GetMovie(c.UserContext(), id, true)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	options, err := h.service.ArtistOptions(c.UserContext(), id)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(EditForm{Movie: movie, Options: options})
}

// HandleCreateForm creates a movie from a submitted form.
func (h *Handler) HandleCreateForm(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	dto, err := movieFromForm(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	if _, err := h.service.AddMovie(c.UserContext(), dto); err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.Redirect(listPath, fiber.StatusSeeOther)
}

// HandleEditSubmit updates a movie from a submitted form. Unchecking every
// artist submits no selectedOptions field, which removes all links.
func (h *Handler) HandleEditSubmit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := catalog.PathID(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	dto, err := movieFromForm(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	if _, err := h.service.UpdateMovie(c.UserContext(), id, dto); err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.Redirect(listPath, fiber.StatusSeeOther)
}

// HandleDeleteSubmit deletes a movie.
func (h *Handler) HandleDeleteSubmit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := catalog.PathID(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	if err := h.service.DeleteMovie(c.UserContext(), id); err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.Redirect(listPath, fiber.StatusSeeOther)
}

// movieFromForm reads the movie form fields. Dates use YYYY-MM-DD.
func movieFromForm(c *fiber.Ctx) (models.MovieDto, error) {
	releaseDate, err := utils.ParseDate(c.FormValue("releaseDate"))
	if err != nil {
		return models.MovieDto{}, fmt.Errorf("%w: %v", catalog.ErrBadRequest, err)
	}
	price, err := utils.ParseFloat(c.FormValue("price"))
	if err != nil {
		return models.MovieDto{}, fmt.Errorf("%w: %v", catalog.ErrBadRequest, err)
	}
	artistIDs, err := catalog.Selection(c)
	if err != nil {
		return models.MovieDto{}, err
	}

	return models.MovieDto{
		Title:       c.FormValue("title"),
		ReleaseDate: releaseDate,
		Genre:       c.FormValue("genre"),
		Price:       price,
		ArtistIDs:   artistIDs,
	}, nil
}
