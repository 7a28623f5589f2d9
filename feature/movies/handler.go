package movies

import (
	"fmt"

	"movies-app/core/logger"
	"movies-app/core/middleware/auth"
	"movies-app/core/server"
	"movies-app/feature/catalog"
	"movies-app/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for movies.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// LinksRequest carries a target artist set for a reconcile preview.
type LinksRequest struct {
	ArtistIDs []int `json:"moviesArtistsIds"`
}

// RegisterRoutes registers the movie REST routes under /api/movies.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	admin := auth.RequireRole(server.RoleAdmin)

	group := app.Group("/api/movies")
	group.Get("/", h.HandleList)
	group.Post("/", admin, h.HandleCreate)
	group.Get("/:id", h.HandleGet)
	group.Put("/:id", admin, h.HandleUpdate)
	group.Delete("/:id", admin, h.HandleDelete)
	group.Post("/:id/plan", admin, h.HandlePlan)
}

// HandleList returns all movies.
// @Summary List Movies
// @Description List every movie with the ids of its linked artists.
// @Tags movies
// @Produce json
// @Success 200 {array} models.MovieDto "Movies"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/movies [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	movies, err := h.service.ListMovies(c.UserContext())
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(movies)
}

// HandleGet returns one movie.
// @Summary Get Movie
// @Description Get a movie and the ids of its linked artists.
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} models.MovieDto "Movie"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/movies/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := catalog.PathID(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	movie, err := h.service.GetMovie(c.UserContext(), id, true)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(movie)
}

// HandleCreate creates a movie.
// @Summary Create Movie
// @Description Create a movie and link it to the artists in moviesArtistsIds.
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body models.MovieDto true "Movie"
// @Success 201 {object} models.MovieDto "Created"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /api/movies [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var dto models.MovieDto
	if err := c.BodyParser(&dto); err != nil {
		return catalog.WriteError(c, l, fmt.Errorf("%w: %v", catalog.ErrBadRequest, err))
	}

	movie, err := h.service.AddMovie(c.UserContext(), dto)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movie)
}

// HandleUpdate replaces a movie's fields and artist links.
// @Summary Update Movie
// @Description Update a movie. A missing or null moviesArtistsIds removes every artist link.
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param movie body models.MovieDto true "Movie"
// @Success 200 {object} models.MovieDto "Updated"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Conflict"
// @Router /api/movies/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := catalog.PathID(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	var dto models.MovieDto
	if err := c.BodyParser(&dto); err != nil {
		return catalog.WriteError(c, l, fmt.Errorf("%w: %v", catalog.ErrBadRequest, err))
	}

	movie, err := h.service.UpdateMovie(c.UserContext(), id, dto)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(movie)
}

// HandleDelete deletes a movie and its artist links.
// @Summary Delete Movie
// @Tags movies
// @Param id path int true "Movie ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/movies/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := catalog.PathID(c)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}

	if err := h.service.DeleteMovie(c.UserContext(), id); err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandlePlan previews the link changes an update would make.
// @Summary Preview Artist Links
// @Description Compute, without applying, the link insertions and removals for a target artist set.
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param links body LinksRequest true "Target artist ids"
// @Success 200 {object} reconcile.Plan "Plan"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/movies/{id}/plan [post]
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

	plan, err := h.service.ReconcileArtists(c.UserContext(), id, req.ArtistIDs, true)
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(plan)
}
