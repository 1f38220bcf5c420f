package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopapi/internal/services"
)

// AnalyticsHandler handles HTTP requests for the analytics dashboard.
type AnalyticsHandler struct {
	service *services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
	}
}

// RegisterRoutes registers the analytics routes with the Fiber app.
func (h *AnalyticsHandler) RegisterRoutes(router fiber.Router) {
	analyticsRoutes := router.Group("/analytics")
	analyticsRoutes.Get("/dashboard", h.HandleDashboard)
}

// HandleDashboard returns the analytics snapshot computed from the current
// store contents.
func (h *AnalyticsHandler) HandleDashboard(c *fiber.Ctx) error {
	dashboard, err := h.service.Dashboard()
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dashboard)
}
