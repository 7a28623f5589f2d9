package integrity

import (
	"movies-app/core/logger"
	"movies-app/core/middleware/auth"
	"movies-app/core/server"
	"movies-app/feature/catalog"
	"movies-app/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.SchemaReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/links", h.HandleLinksCheck)
	group.Get("/storage", h.HandleStorageCheck)
}

// HandleIntegrityCheck runs all checks without fixing anything.
// @Summary Run All Integrity Checks
// @Description Performs the schema, links and storage checks.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /api/integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.UserContext()
	report := make(map[string]interface{})

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	if orphans, err := h.service.CheckLinks(ctx); err != nil {
		report["links"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["links"] = map[string]interface{}{"status": "ok", "orphans": orphans}
	}

	if st, err := h.service.CheckStorage(ctx); err != nil {
		report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["storage"] = st
	}

	return c.JSON(report)
}

// HandleSchemaCheck validates the catalog schema.
// @Summary Check Schema
// @Description Validates that the database tables match the catalog models, including the join table's composite key.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleLinksCheck finds and optionally removes orphaned join rows.
// @Summary Check Links
// @Description Lists join rows whose movie or artist no longer exists. Fixing requires the admin role.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Remove orphaned rows"
// @Success 200 {object} map[string]interface{} "Links Report"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Conflict"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/integrity/links [get]
func (h *Handler) HandleLinksCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"
	if fix && !isAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	}

	orphans, err := h.service.CheckLinks(c.UserContext())
	if err != nil {
		l.Error("Links check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(orphans) > 0 {
		l.Warn("Orphaned links detected", zap.Int("count", len(orphans)))

		if fix {
			if err := h.service.FixLinks(c.UserContext(), orphans); err != nil {
				return catalog.WriteError(c, l, err)
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  orphans,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"orphans": orphans,
	})
}

// HandleStorageCheck checks and optionally creates the snapshot bucket.
// @Summary Check Storage
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create the bucket if missing"
// @Success 200 {object} checks.StorageReport "Storage Report"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"
	if fix && !isAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	}

	report, err := h.service.CheckStorage(c.UserContext())
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.BucketExists && fix {
		if err := h.service.FixStorage(c.UserContext()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		report.BucketExists = true
	}
	return c.JSON(report)
}

func isAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals(auth.LocalsRole).(string)
	return role == server.RoleAdmin
}
