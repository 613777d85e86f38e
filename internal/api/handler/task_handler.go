package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
)

// TaskHandler serves /tasks.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id              header    string  true   "Organization id"
// @Param        workorder_id          query     string  false  "Work order filter"
// @Param        assigned_employee_id  query     int     false  "Assignee filter"
// @Param        status                query     string  false  "Status filter (any known spelling)"
// @Success      200                   {array}   taskResponse
// @Failure      400                   {object}  errorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	in := ports.ListTasksInput{
		WorkorderID: optionalQuery(c, "workorder_id"),
		Status:      optionalQuery(c, "status"),
	}
	if raw := optionalQuery(c, "assigned_employee_id"); raw != nil {
		id, err := strconv.ParseInt(*raw, 10, 64)
		if err != nil {
			return domain.Validation("assigned_employee_id must be an integer")
		}
		in.AssignedEmployeeID = &id
	}

	list, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(list, toTaskResponse))
}

// Get handles GET /tasks/:id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id  header    string  true  "Organization id"
// @Param        id        path      int     true  "Task id"
// @Success      200       {object}  taskResponse
// @Failure      404       {object}  errorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	t, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(t))
}

// Create handles POST /tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id  header    string             true  "Organization id"
// @Param        body      body      createTaskRequest  true  "Task"
// @Success      201       {object}  taskResponse
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	t, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		WorkorderID:        req.WorkorderID,
		Name:               req.Name,
		AssignedEmployeeID: req.AssignedEmployeeID,
		Status:             req.Status,
		TimeSpent:          req.TimeSpent,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTaskResponse(t))
}

// Update handles PATCH /tasks/:id.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Org-Id  header    string             true  "Organization id"
// @Param        id        path      int                true  "Task id"
// @Param        body      body      updateTaskRequest  true  "Fields to change"
// @Success      200       {object}  taskResponse
// @Failure      404       {object}  errorResponse
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	var req updateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	t, err := h.service.Update(c.Request().Context(), id, ports.UpdateTaskInput{
		Name:               req.Name,
		AssignedEmployeeID: req.AssignedEmployeeID,
		Status:             req.Status,
		TimeSpent:          req.TimeSpent,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(t))
}
