package export

import (
	"movies-app/core/logger"
	"movies-app/core/middleware/auth"
	"movies-app/core/server"
	"movies-app/feature/catalog"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for catalog exports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the export routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/export")
	group.Post("/", auth.RequireRole(server.RoleAdmin), h.HandleExport)
	group.Get("/", h.HandleList)
	group.Get("/:name", h.HandleRead)
}

// HandleExport writes a new catalog snapshot.
// @Summary Export Catalog
// @Description Write a JSON snapshot of all movies, artists and links to object storage.
// @Tags export
// @Produce json
// @Success 201 {object} export.Result "Stored snapshot"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/export [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	res, err := h.service.Export(c.UserContext())
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleList lists stored snapshots.
// @Summary List Catalog Snapshots
// @Tags export
// @Produce json
// @Success 200 {array} export.ObjectInfo "Snapshots"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/export [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	items, err := h.service.List(c.UserContext())
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(items)
}

// HandleRead returns one stored snapshot.
// @Summary Get Catalog Snapshot
// @Tags export
// @Produce json
// @Param name path string true "Snapshot file name (e.g. 'catalog-1718000000000000000-1a2b3c4d.json')"
// @Success 200 {object} export.Snapshot "Snapshot"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/export/{name} [get]
func (h *Handler) HandleRead(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	snap, err := h.service.Read(c.UserContext(), c.Params("name"))
	if err != nil {
		return catalog.WriteError(c, l, err)
	}
	return c.JSON(snap)
}
