package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/werkbank/workshop-system/internal/core/ports"
)

// CustomerHandler serves /customers.
type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// List handles GET /customers, ordered by name.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id  header    string  true  "Organization id"
// @Success      200       {array}   customerResponse
// @Router       /customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(list, toCustomerResponse))
}

// Get handles GET /customers/:id.
//
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id  header    string  true  "Organization id"
// @Param        id        path      int     true  "Customer id"
// @Success      200       {object}  customerResponse
// @Failure      404       {object}  errorResponse
// @Router       /customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	cust, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerResponse(cust))
}

// Create handles POST /customers.
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id  header    string                 true  "Organization id"
// @Param        body      body      createCustomerRequest  true  "Customer"
// @Success      201       {object}  customerResponse
// @Failure      400       {object}  errorResponse
// @Router       /customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req createCustomerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cust, err := h.service.Create(c.Request().Context(), ports.CreateCustomerInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCustomerResponse(cust))
}

// Update handles PATCH /customers/:id.
//
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id  header    string                 true  "Organization id"
// @Param        id        path      int                    true  "Customer id"
// @Param        body      body      updateCustomerRequest  true  "Fields to change"
// @Success      200       {object}  customerResponse
// @Failure      404       {object}  errorResponse
// @Router       /customers/{id} [patch]
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	var req updateCustomerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cust, err := h.service.Update(c.Request().Context(), id, ports.CustomerUpdate{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerResponse(cust))
}
