package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskhub/internal/model"
	"taskhub/internal/service"
)

// EmployeeHandler handles employee and workload endpoints.
type EmployeeHandler struct {
	employeeService service.EmployeeService
	workloadService service.WorkloadService
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(employeeService service.EmployeeService, workloadService service.WorkloadService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		workloadService: workloadService,
	}
}

// UpdateEmployeeRequest is a sparse patch; absent fields stay unchanged.
type UpdateEmployeeRequest struct {
	Name         *string `json:"name"`
	Contact      *string `json:"contact"`
	MaxTasks     *int    `json:"max_tasks"`
	Availability *string `json:"availability" validate:"omitempty,oneof=AVAILABLE LIGHT MODERATE HEAVY"`
}

// List godoc
// @Summary List employees with their skills
// @Tags employees
// @Produce json
// @Success 200 {array} model.Employee
// @Router /employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	employees, err := h.employeeService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, employees)
}

// Get godoc
// @Summary Get an employee profile with skills, tasks, projects and stats
// @Description Pass "me" as the id to resolve the acting user's own profile.
// @Tags employees
// @Produce json
// @Param id path string true "Employee ID or me"
// @Success 200 {object} service.EmployeeProfile
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	var employeeID uint
	if c.Param("id") == "me" {
		actor, err := actorFrom(c)
		if err != nil {
			return respondError(c, err)
		}
		employee, err := h.employeeService.GetByUserID(c.Request().Context(), actor.UserID)
		if err != nil {
			return respondError(c, err)
		}
		employeeID = employee.ID
	} else {
		id, err := paramUint(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		employeeID = id
	}

	profile, err := h.employeeService.GetProfile(c.Request().Context(), employeeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// Update godoc
// @Summary Update an employee profile (self only)
// @Tags employees
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param request body UpdateEmployeeRequest true "Patch"
// @Success 200 {object} model.Employee
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.UpdateEmployeeInput{
		Name:     req.Name,
		Contact:  req.Contact,
		MaxTasks: req.MaxTasks,
	}
	if req.Availability != nil {
		availability := model.AvailabilityStatus(*req.Availability)
		in.Availability = &availability
	}

	employee, err := h.employeeService.UpdateProfile(c.Request().Context(), actor, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, employee)
}

// Available godoc
// @Summary List employees with spare capacity, least busy first
// @Tags employees
// @Produce json
// @Param skillRequired query string false "Filter to employees holding this skill"
// @Param maxTasks query int false "Override the per-employee task limit"
// @Success 200 {array} service.EmployeeWorkload
// @Router /employees/available [get]
func (h *EmployeeHandler) Available(c echo.Context) error {
	var maxTasksOverride *int
	if raw := c.QueryParam("maxTasks"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid maxTasks")
		}
		maxTasksOverride = &parsed
	}

	available, err := h.workloadService.AvailableEmployees(c.Request().Context(), c.QueryParam("skillRequired"), maxTasksOverride)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, available)
}

// Workload godoc
// @Summary Team-wide workload report with per-bucket counts
// @Tags employees
// @Produce json
// @Success 200 {object} service.TeamWorkloadReport
// @Router /employees/workload [get]
func (h *EmployeeHandler) Workload(c echo.Context) error {
	report, err := h.workloadService.TeamWorkload(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
