package integrity

import (
	"errors"

	"twii-miner/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/data", h.HandleDataCheck)
	group.Get("/bucket", h.HandleBucketCheck)
	group.Get("/database", h.HandleDatabaseCheck)
}

func errorStatus(err error) int {
	if errors.Is(err, ErrNoStorage) || errors.Is(err, ErrNoDatabase) {
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// HandleIntegrityCheck runs every check without fixing anything.
// @Summary Run All Integrity Checks
// @Description Performs the data, bucket and database checks. A check that fails is reported with its error.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]interface{})
	report["data"] = h.service.CheckData()

	if bucket, err := h.service.CheckBucket(c.Context()); err != nil {
		report["bucket"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["bucket"] = bucket
	}

	if schema, err := h.service.CheckDatabase(); err != nil {
		report["database"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["database"] = schema
	}

	return c.JSON(report)
}

// HandleDataCheck checks the data root and, with ?fix=true, creates missing
// directories.
// @Summary Check Data Root
// @Description Checks that the data root holds every required directory and that its documents are well formed. Optionally creates missing directories.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Create missing directories"
// @Success 200 {object} map[string]interface{} "Data Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/data [get]
func (h *Handler) HandleDataCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	if fix {
		created, err := h.service.FixData()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to fix data root",
				"details": err.Error(),
			})
		}
		if len(created) > 0 {
			l.Info("Created data root directories", zap.Strings("created", created))
		}
	}

	report := h.service.CheckData()
	if !report.OK() {
		l.Warn("Data root is incomplete",
			zap.Int("missing", len(report.Missing)),
			zap.Int("invalid", len(report.Invalid)))
	}
	return c.JSON(report)
}

// HandleBucketCheck checks the published artifacts and, with ?fix=true,
// creates the bucket or removes stale objects.
// @Summary Check Bucket
// @Description Checks that the bucket holds every published artifact and nothing else under the prefix.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Create the bucket and remove stale objects"
// @Success 200 {object} map[string]interface{} "Bucket Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Router /integrity/bucket [get]
func (h *Handler) HandleBucketCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	if fix {
		var stale []string
		if report, err := h.service.CheckBucket(c.Context()); err == nil {
			stale = report.Stale
		}
		if err := h.service.FixBucket(c.Context(), stale); err != nil {
			l.Error("Bucket fix failed", zap.Error(err))
			return c.Status(errorStatus(err)).JSON(fiber.Map{
				"error":   "Failed to fix bucket",
				"details": err.Error(),
			})
		}
	}

	report, err := h.service.CheckBucket(c.Context())
	if err != nil {
		l.Error("Bucket check failed", zap.Error(err))
		return c.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.OK() {
		l.Warn("Published artifacts are incomplete", zap.Strings("missing", report.Missing))
	}
	return c.JSON(report)
}

// HandleDatabaseCheck compares the export table with the export model.
// @Summary Check Database
// @Description Compares the columns of the export table with the export model.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Database Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Database not configured"
// @Router /integrity/database [get]
func (h *Handler) HandleDatabaseCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting export schema check")

	report, err := h.service.CheckDatabase()
	if err != nil {
		l.Error("Export schema check failed", zap.Error(err))
		return c.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
