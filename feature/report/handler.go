package report

import (
	"errors"

	"photo-sync/core/logger"
	"photo-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliation reports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the report routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reconcile")
	group.Get("/", h.HandleReconcile)
	group.Get("/:day", h.HandleDay)
}

// HandleReconcile returns the full report. Supports ?refresh=true.
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entry, err := h.service.Reconcile(c.Context(), c.QueryBool("refresh"))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(NewDocument(entry.Result, h.service.Source(), entry.Built))
}

// HandleDay returns the report for one day, in YYYY-MM-DD form.
func (h *Handler) HandleDay(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	day, err := reconcile.ParseDay(c.Params("day"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entry, err := h.service.Reconcile(c.Context(), c.QueryBool("refresh"))
	if err != nil {
		return h.fail(c, l, err)
	}

	missing, ok := entry.Result.Get(day)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "day " + day.String() + " was not scanned"})
	}
	if missing == nil {
		missing = reconcile.MissingPhotos{}
	}
	return c.JSON(fiber.Map{
		"day":     day,
		"missing": missing,
		"lines":   DayLines(reconcile.DayResult{Day: day, Missing: missing}),
	})
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	l.Error("Reconciliation failed", zap.Error(err))

	status := fiber.StatusInternalServerError
	var perr *reconcile.ProviderError
	if errors.As(err, &perr) {
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
