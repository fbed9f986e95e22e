package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-reportes/internal/application/reports"
)

// DashboardHandler maneja el endpoint del dashboard.
type DashboardHandler struct {
	uc *reports.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reports.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetDashboard devuelve el dashboard del personal.
// GET /api/dashboard
//
// Respuesta: DashboardDTO (top_products[5], top_vendors[5], invoice_status_summary,
// top_customers[5], top_margins[5], generated_at). Cacheado 5 minutos.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := h.uc.GetDashboard(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(dashboard)
}
