package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/werkbank/workshop-system/internal/core/ports"
)

// HeaderIdempotencyKey makes POST /workorders safe to retry.
const HeaderIdempotencyKey = "Idempotency-Key"

// WorkorderHandler serves /workorders and the work order activity trail.
type WorkorderHandler struct {
	service  ports.WorkorderService
	activity ports.ActivityService
}

func NewWorkorderHandler(service ports.WorkorderService, activity ports.ActivityService) *WorkorderHandler {
	return &WorkorderHandler{service: service, activity: activity}
}

// List handles GET /workorders.
//
// @Summary      List work orders
// @Tags         workorders
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id  header    string  true   "Organization id"
// @Param        status    query     string  false  "Status filter (any known spelling)"
// @Success      200       {array}   workorderResponse
// @Failure      400       {object}  errorResponse
// @Router       /workorders [get]
func (h *WorkorderHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(list, toWorkorderResponse))
}

// Get handles GET /workorders/:id.
//
// @Summary      Get a work order
// @Tags         workorders
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id  header    string  true  "Organization id"
// @Param        id        path      string  true  "Work order id"
// @Success      200       {object}  workorderResponse
// @Failure      404       {object}  errorResponse
// @Router       /workorders/{id} [get]
func (h *WorkorderHandler) Get(c echo.Context) error {
	w, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorkorderResponse(w))
}

// Create handles POST /workorders. A replayed Idempotency-Key returns the
// original work order with 200 instead of 201.
//
// @Summary      Create a work order
// @Tags         workorders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id         header    string                  true   "Organization id"
// @Param        Idempotency-Key  header    string                  false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createWorkorderRequest  true   "Work order"
// @Success      201              {object}  workorderResponse
// @Success      200              {object}  workorderResponse
// @Failure      400              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /workorders [post]
func (h *WorkorderHandler) Create(c echo.Context) error {
	var req createWorkorderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.service.Create(c.Request().Context(), toCreateWorkorder(req, c.Request().Header.Get(HeaderIdempotencyKey)))
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if res.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, toWorkorderResponse(res.Workorder))
}

// Update handles PATCH /workorders/:id.
//
// @Summary      Update a work order
// @Tags         workorders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id  header    string                  true  "Organization id"
// @Param        id        path      string                  true  "Work order id"
// @Param        body      body      updateWorkorderRequest  true  "Fields to change"
// @Success      200       {object}  workorderResponse
// @Failure      404       {object}  errorResponse
// @Router       /workorders/{id} [patch]
func (h *WorkorderHandler) Update(c echo.Context) error {
	var req updateWorkorderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	w, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateWorkorder(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorkorderResponse(w))
}

// Activity handles GET /workorders/:id/activity.
//
// @Summary      Work order activity trail
// @Tags         workorders
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id  header    string  true  "Organization id"
// @Param        id        path      string  true  "Work order id"
// @Success      200       {object}  activityListResponse
// @Failure      404       {object}  errorResponse
// @Router       /workorders/{id}/activity [get]
func (h *WorkorderHandler) Activity(c echo.Context) error {
	id := c.Param("id")
	items, err := h.activity.ListForWorkorder(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activityListResponse{WorkorderID: id, Items: items})
}
