package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"taskhub/internal/model"
	"taskhub/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title          string          `json:"title" validate:"required"`
	Description    string          `json:"description"`
	Priority       string          `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	Status         string          `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS IN_REVIEW COMPLETED BLOCKED"`
	EstimatedHours decimal.Decimal `json:"estimated_hours"`
	StartDate      string          `json:"startDate"`
	EndDate        string          `json:"endDate"`
	EmployeeID     *uint           `json:"employee_id"`
}

// UpdateTaskRequest is a sparse patch. employee_id distinguishes absent
// (unchanged), null (unassign) and a value (reassign).
type UpdateTaskRequest struct {
	Title          *string          `json:"title"`
	Description    *string          `json:"description"`
	Priority       *string          `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	Status         *string          `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS IN_REVIEW COMPLETED BLOCKED"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours"`
	StartDate      *string          `json:"startDate"`
	EndDate        *string          `json:"endDate"`
	EmployeeID     OptionalUint     `json:"employee_id"`
}

// Create godoc
// @Summary Create a task under a project
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body CreateTaskRequest true "Task data"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	projectID, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Create(c.Request().Context(), actor, projectID, service.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       model.Priority(req.Priority),
		Status:         model.TaskStatus(req.Status),
		EstimatedHours: req.EstimatedHours,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		AssigneeID:     req.EmployeeID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

// ListByProject godoc
// @Summary List a project's tasks
// @Tags tasks
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {array} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/tasks [get]
func (h *TaskHandler) ListByProject(c echo.Context) error {
	projectID, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	tasks, err := h.taskService.ListByProject(c.Request().Context(), projectID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// Get godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param taskId path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{taskId} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	id, err := paramUint(c, "taskId")
	if err != nil {
		return respondError(c, err)
	}
	task, err := h.taskService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// Update godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param taskId path int true "Task ID"
// @Param request body UpdateTaskRequest true "Patch"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{taskId} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramUint(c, "taskId")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		EstimatedHours: req.EstimatedHours,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		AssigneeSet:    req.EmployeeID.Set,
		AssigneeID:     req.EmployeeID.Value,
	}
	if req.Priority != nil {
		priority := model.Priority(*req.Priority)
		in.Priority = &priority
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		in.Status = &status
	}

	task, err := h.taskService.Update(c.Request().Context(), actor, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary Delete a task (project owner only)
// @Tags tasks
// @Produce json
// @Param taskId path int true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{taskId} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramUint(c, "taskId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.taskService.Delete(c.Request().Context(), actor, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "task deleted"})
}
