package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/werkbank/workshop-system/internal/core/ports"
)

// PortalHandler serves the public progress page data. No authentication.
type PortalHandler struct {
	service ports.PortalService
}

func NewPortalHandler(service ports.PortalService) *PortalHandler {
	return &PortalHandler{service: service}
}

// Get handles GET /portal/:workorder_id.
//
// @Summary      Customer progress view of a work order
// @Tags         portal
// @Produce      json
// @Param        workorder_id  path      string  true  "Work order id"
// @Success      200           {object}  portalResponse
// @Failure      404           {object}  errorResponse
// @Router       /portal/{workorder_id} [get]
func (h *PortalHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("workorder_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPortalResponse(view))
}
