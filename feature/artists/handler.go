package artists

import (
	"fmt"

	"movies-app/core/logger"
	"movies-app/core/middleware/auth"
	"movies-app/core/server"
	"movies-app/feature/catalog"
	"movies-app/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for artists.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// LinksRequest carries a target movie set for a reconcile preview.
type LinksRequest struct {
	MovieIDs []int `json:"moviesArtistsIds"`
}

// RegisterRoutes registers the artist REST routes under /api/artists.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	admin := auth.RequireRole(server.RoleAdmin)

	group := app.Group("/api/artists")
	group.Get("/", h.HandleList)
	group.Post("/", admin, h.HandleCreate)
	group.Get("/:id", h.HandleGet)
	group.Put("/:id", admin, h.HandleUpdate)
	group.Delete("/:id", admin, h.HandleDelete)
	group.Post("/:id/plan", admin, h.HandlePlan)
}

// HandleList returns all artists.
// @Summary List Artists
// @Description List every artist with the ids of their linked movies.
// @Tags artists
// @Produce json
// @Success 200 {array} models.ArtistDto "Artists"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/artists [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	artists, err := h.service.ListArtists(c.UserContext())
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(artists)
}

// HandleGet returns one artist.
// @Summary Get Artist
// @Tags artists
// @Produce json
// @Param id path int true "Artist ID"
// @Success 200 {object} models.ArtistDto "Artist"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/artists/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := catalog.PathID(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	artist, err := h.service.GetArtist(c.UserContext(), id, true)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(artist)
}

// HandleCreate creates an artist.
// @Summary Create Artist
// @Description Create an artist and link them to the movies in moviesArtistsIds.
// @Tags artists
// @Accept json
// @Produce json
// @Param artist body models.ArtistDto true "Artist"
// @Success 201 {object} models.ArtistDto "Created"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /api/artists [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var dto models.ArtistDto
	if err := c.BodyParser(&dto); err != nil {
		return catalog.WriteError(c, l, fmt.Errorf("%w: %v", catalog.ErrBadRequest, err))
	}

	artist, err := h.service.AddArtist(c.UserContext(), dto)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.Status(fiber.StatusCreated).JSON(artist)
}

// HandleUpdate replaces an artist's fields and movie links.
// @Summary Update Artist
// @Description Update an artist. A missing or null moviesArtistsIds removes every movie link.
// @Tags artists
// @Accept json
// @Produce json
// @Param id path int true "Artist ID"
// @Param artist body models.ArtistDto true "Artist"
// @Success 200 {object} models.ArtistDto "Updated"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Conflict"
// @Router /api/artists/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := catalog.PathID(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	var dto models.ArtistDto
	if err := c.BodyParser(&dto); err != nil {
		return catalog.WriteError(c, l, fmt.Errorf("%w: %v", catalog.ErrBadRequest, err))
	}

	artist, err := h.service.UpdateArtist(c.UserContext(), id, dto)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(artist)
}

// HandleDelete deletes an artist and their movie links.
// @Summary Delete Artist
// @Tags artists
// @Param id path int true "Artist ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/artists/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := catalog.PathID(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	if err := h.service.DeleteArtist(c.UserContext(), id); err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandlePlan previews the link changes an update would make.
// @Summary Preview Movie Links
// @Tags artists
// @Accept json
// @Produce json
// @Param id path int true "Artist ID"
// @Param links body LinksRequest true "Target movie ids"
// @Success 200 {object} reconcile.Plan "Plan"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/artists/{id}/plan [post]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := catalog.PathID(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	var req LinksRequest
	if err := c.BodyParser(&req); err != nil {
		return catalog.WriteError(c, l, fmt.Errorf("%w: %v", catalog.ErrBadRequest, err))
	}

	plan, err := h.service.ReconcileMovies(c.UserContext(), id, req.MovieIDs, true)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(plan)
}
