package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/service"
)

// ProjectHandler handles project and membership endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProjectRequest represents a project creation request.
type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	StartDate   string `json:"startDate"`
	Deadline    string `json:"deadline"`
	Employees   []uint `json:"employees"`
}

// UpdateProjectRequest is a sparse patch; absent fields stay unchanged.
// A present employees list replaces the member set wholesale.
type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	Status      *string `json:"status" validate:"omitempty,oneof=PLANNING IN_PROGRESS ON_HOLD COMPLETED"`
	StartDate   *string `json:"startDate"`
	Deadline    *string `json:"deadline"`
	Employees   *[]uint `json:"employees"`
}

// AddMemberRequest represents a membership creation request.
type AddMemberRequest struct {
	EmployeeID uint `json:"employee_id" validate:"required"`
}

// Create godoc
// @Summary Create a project owned by the acting employee
// @Tags projects
// @Accept json
// @Produce json
// @Param request body CreateProjectRequest true "Project data"
// @Success 201 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projectService.Create(c.Request().Context(), actor, service.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.Priority(req.Priority),
		StartDate:   req.StartDate,
		Deadline:    req.Deadline,
		MemberIDs:   req.Employees,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, project)
}

// List godoc
// @Summary List projects with optional filters
// @Tags projects
// @Produce json
// @Param status query string false "Project status"
// @Param priority query string false "Project priority"
// @Param createdBy query int false "Creator employee id"
// @Success 200 {array} model.Project
// @Router /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	filter := repository.ProjectFilter{
		Status:   model.ProjectStatus(c.QueryParam("status")),
		Priority: model.Priority(c.QueryParam("priority")),
	}
	if createdBy := c.QueryParam("createdBy"); createdBy != "" {
		id, err := strconv.ParseUint(createdBy, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid createdBy")
		}
		filter.CreatedBy = uint(id)
	}

	projects, err := h.projectService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

// Get godoc
// @Summary Get a project with tasks, milestones and members
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} model.Project
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	project, err := h.projectService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// Update godoc
// @Summary Update a project (owner only)
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body UpdateProjectRequest true "Patch"
// @Success 200 {object} model.Project
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		Deadline:    req.Deadline,
		MemberIDs:   req.Employees,
	}
	if req.Priority != nil {
		priority := model.Priority(*req.Priority)
		in.Priority = &priority
	}
	if req.Status != nil {
		status := model.ProjectStatus(*req.Status)
		in.Status = &status
	}

	project, err := h.projectService.Update(c.Request().Context(), actor, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// Delete godoc
// @Summary Delete a project with its tasks, milestones and memberships (owner only)
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.projectService.Delete(c.Request().Context(), actor, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "project deleted"})
}

// AddMember godoc
// @Summary Add an employee to the project team (owner only)
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body AddMemberRequest true "Member"
// @Success 201 {object} model.ProjectEmployee
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /projects/{id}/employees [post]
func (h *ProjectHandler) AddMember(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req AddMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	member, err := h.projectService.AddMember(c.Request().Context(), actor, id, req.EmployeeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, member)
}

// ListMembers godoc
// @Summary List the project team
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {array} model.ProjectEmployee
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/employees [get]
func (h *ProjectHandler) ListMembers(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	members, err := h.projectService.ListMembers(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, members)
}

// RemoveMember godoc
// @Summary Remove an employee from the project team (owner only)
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Param employeeId path int true "Employee ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/employees/{employeeId} [delete]
func (h *ProjectHandler) RemoveMember(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	employeeID, err := paramUint(c, "employeeId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.projectService.RemoveMember(c.Request().Context(), actor, id, employeeID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "member removed"})
}
