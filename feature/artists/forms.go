package artists

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

const listPath = "/artists"

// EditForm is the data behind the artist edit form.
type EditForm struct {
	Artist  *models.ArtistDto `json:"artist,omitempty"`
	Options []models.Option   `json:"options"`
}

// RegisterFormRoutes registers the browser-facing routes under /artists.
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

// HandleIndex returns the artist list view.
func (h *Handler) HandleIndex(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	views, err := h.service.ListArtistViews(c.UserContext())
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(views)
}

// HandleDetails returns one artist with their movies' titles.
func (h *Handler) HandleDetails(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := catalog.PathID(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	view, err := h.service.GetArtistView(c.UserContext(), id)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(view)
}

func (h *Handler) HandleNewForm(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	options, err := h.service.MovieOptions(c.UserContext(), 0)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(EditForm{Options: options})
}

func (h *Handler) HandleEditForm(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := catalog.PathID(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	artist, err := h.service.GetArtist(c.UserContext(), id, true)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	options, err := h.service.MovieOptions(c.UserContext(), id)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(EditForm{Artist: artist, Options: options})
}

func (h *Handler) HandleCreateForm(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	dto, err := artistFromForm(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	if _, err := h.service.AddArtist(c.UserContext(), dto); err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.Redirect(listPath, fiber.StatusSeeOther)
}

func (h *Handler) HandleEditSubmit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := catalog.PathID(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	dto, err := artistFromForm(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	if _, err := h.service.UpdateArtist(c.UserContext(), id, dto); err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.Redirect(listPath, fiber.StatusSeeOther)
}

func (h *Handler) HandleDeleteSubmit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := catalog.PathID(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	if err := h.service.DeleteArtist(c.UserContext(), id); err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.Redirect(listPath, fiber.StatusSeeOther)
}

func artistFromForm(c *fiber.Ctx) (models.ArtistDto, error) {
	birthday, err := utils.ParseDate(c.FormValue("birthday"))
	if err != nil {
		return models.ArtistDto{}, fmt.Errorf("%w: %v", catalog.ErrBadRequest, err)
	}
	movieIDs, err := catalog.Selection(c)
	if err != nil {
		return models.ArtistDto{}, err
	}

	return models.ArtistDto{
		FirstName: c.FormValue("firstName"),
		LastName:  c.FormValue("lastName"),
		Birthday:  birthday,
		MovieIDs:  movieIDs,
	}, nil
}
