package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/werkbank/workshop-system/internal/core/ports"
)

// EmployeeHandler serves /employees.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// List handles GET /employees.
//
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id  header    string  true  "Organization id"
// @Success      200       {array}   employeeResponse
// @Router       /employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(list, toEmployeeResponse))
}

// Get handles GET /employees/:id.
//
// @Summary      Get an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id  header    string  true  "Organization id"
// @Param        id        path      int     true  "Employee id"
// @Success      200       {object}  employeeResponse
// @Failure      404       {object}  errorResponse
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	emp, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(emp))
}

// Create handles POST /employees (Admin only).
//
// @Summary      Create an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id  header    string                 true  "Organization id"
// @Param        body      body      createEmployeeRequest  true  "Employee"
// @Success      201       {object}  employeeResponse
// @Failure      403       {object}  errorResponse
// @Failure      409       {object}  errorResponse
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req createEmployeeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	emp, err := h.service.Create(c.Request().Context(), ports.CreateEmployeeInput{
		Name:     req.Name,
		Role:     req.Role,
		UserID:   req.UserID,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEmployeeResponse(emp))
}

// Update handles PATCH /employees/:id. Changing role or is_active needs Admin.
//
// @Summary      Update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id  header    string                 true  "Organization id"
// @Param        id        path      int                    true  "Employee id"
// @Param        body      body      updateEmployeeRequest  true  "Fields to change"
// @Success      200       {object}  employeeResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /employees/{id} [patch]
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	var req updateEmployeeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := toUpdateEmployee(req)
	if err != nil {
		return err
	}

	emp, err := h.service.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(emp))
}
