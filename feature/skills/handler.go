package skills

import (
	"strings"

	"twii-miner/core/graph"
	"twii-miner/core/identity"
	"twii-miner/core/logger"
	"twii-miner/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the skill catalogue.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the skill routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/skills")
	group.Get("/", h.HandleList)
	group.Post("/rebuild", h.HandleRebuild)
	group.Get("/:id", h.HandleGet)
	app.Get("/report", h.HandleReport)
}

// HandleList lists skills, optionally filtered by ?group= and ?status=.
// @Summary List Skills
// @Description Lists the reconciled skills in id order. Builds the graph on first use.
// @Tags skills
// @Accept json
// @Produce json
// @Param group query string false "Group name (rep, gen, creep, ...)"
// @Param status query string false "Override status (not_found, found, multi_found)"
// @Success 200 {object} map[string]interface{} "Skill list"
// @Failure 400 {object} map[string]string "Unknown group or status"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /skills [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var f Filter
	if name := c.Query("group"); name != "" {
		f.Group = graph.ParseGroup(name)
		if f.Group == graph.GroupUnknown {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown group " + name})
		}
	}
	if name := c.Query("status"); name != "" {
		st, ok := parseStatus(name)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown status " + name})
		}
		f.Status = &st
	}

	views, err := h.service.List(c.Context(), f)
	if err != nil {
		l.Error("failed to build graph", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"count":  len(views),
		"skills": views,
	})
}

// HandleGet returns one skill by hex ("0x7000A2C1") or decimal id.
// @Summary Get Skill
// @Description Returns one reconciled skill with its acquisition links.
// @Tags skills
// @Accept json
// @Produce json
// @Param id path string true "Skill id, hex or decimal"
// @Success 200 {object} View "Skill"
// @Failure 400 {object} map[string]string "Invalid skill id"
// @Failure 404 {object} map[string]string "Skill not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /skills/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, ok := parseID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid skill id"})
	}

	v, found, err := h.service.Get(c.Context(), id)
	if err != nil {
		l.Error("failed to build graph", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "skill not found"})
	}
	return c.JSON(v)
}

// HandleReport returns the reconciliation report, as YAML with ?format=yaml.
// @Summary Get Report
// @Description Returns the report of the last build: multi-found ids, orphan records, unclassified skills and extraction warnings.
// @Tags skills
// @Accept json
// @Produce json,application/yaml
// @Param format query string false "Response format (json or yaml)"
// @Success 200 {object} reconcile.Report "Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /report [get]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Report(c.Context())
	if err != nil {
		l.Error("failed to build graph", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if c.Query("format") == string(reconcile.FormatYAML) {
		c.Set(fiber.HeaderContentType, "application/yaml")
		return report.Encode(c.Response().BodyWriter(), reconcile.FormatYAML)
	}
	return c.JSON(report)
}

// HandleRebuild drops the cached graph and rebuilds it.
// @Summary Rebuild Graph
// @Description Re-runs extraction and reconciliation over the data root. This operation may take a long time.
// @Tags skills
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Rebuild summary"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /skills/rebuild [post]
func (h *Handler) HandleRebuild(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("rebuild requested")

	snap, err := h.service.Rebuild(c.Context())
	if err != nil {
		l.Error("failed to rebuild graph", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":  "rebuilt",
		"built":   snap.Built,
		"summary": snap.Report.Summary,
	})
}

func parseID(raw string) (uint32, bool) {
	if strings.HasPrefix(raw, identity.HexPrefix) || strings.HasPrefix(raw, "0X") {
		id, err := identity.ParseHex(raw)
		return id, err == nil
	}
	return identity.ParseDecimal(raw)
}

func parseStatus(name string) (graph.Status, bool) {
	for _, st := range []graph.Status{graph.StatusNotFound, graph.StatusFound, graph.StatusMultiFound} {
		if st.String() == name {
			return st, true
		}
	}
	return 0, false
}
