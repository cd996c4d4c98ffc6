package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskhub/internal/service"
)

// SkillHandler handles skill catalog and assignment endpoints.
type SkillHandler struct {
	skillService service.SkillService
}

// NewSkillHandler creates a new skill handler.
func NewSkillHandler(skillService service.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

// CreateSkillRequest represents a skill creation request.
type CreateSkillRequest struct {
	Name string `json:"name" validate:"required"`
}

// AssignSkillRequest represents a skill assignment request.
type AssignSkillRequest struct {
	SkillID         uint   `json:"skill_id" validate:"required"`
	YearsExperience int    `json:"years_experience" validate:"gte=0"`
	Proficiency     string `json:"proficiency"`
}

// RemoveSkillRequest represents a skill removal request.
type RemoveSkillRequest struct {
	EmployeeID uint `json:"employee_id" validate:"required"`
	SkillID    uint `json:"skill_id" validate:"required"`
}

// Create godoc
// @Summary Create a skill
// @Tags skills
// @Accept json
// @Produce json
// @Param request body CreateSkillRequest true "Skill data"
// @Success 201 {object} model.Skill
// @Failure 409 {object} errors.ErrorResponse
// @Router /skills [post]
func (h *SkillHandler) Create(c echo.Context) error {
	var req CreateSkillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	skill, err := h.skillService.Create(c.Request().Context(), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, skill)
}

// List godoc
// @Summary List the skill catalog
// @Tags skills
// @Produce json
// @Success 200 {array} model.Skill
// @Router /skills [get]
func (h *SkillHandler) List(c echo.Context) error {
	skills, err := h.skillService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, skills)
}

// ListForEmployee godoc
// @Summary List an employee's skill assignments
// @Tags skills
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {array} model.EmployeeSkill
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id}/skills [get]
func (h *SkillHandler) ListForEmployee(c echo.Context) error {
	employeeID, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	assignments, err := h.skillService.ListForEmployee(c.Request().Context(), employeeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, assignments)
}

// Assign godoc
// @Summary Assign a skill to an employee
// @Tags skills
// @Accept json
// @Produce json
// @Param employeeId path int true "Employee ID"
// @Param request body AssignSkillRequest true "Assignment data"
// @Success 201 {object} model.EmployeeSkill
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /skills/assign/{employeeId} [post]
func (h *SkillHandler) Assign(c echo.Context) error {
	employeeID, err := paramUint(c, "employeeId")
	if err != nil {
		return respondError(c, err)
	}

	var req AssignSkillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	assignment, err := h.skillService.Assign(c.Request().Context(), employeeID, req.SkillID, req.YearsExperience, req.Proficiency)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, assignment)
}

// Remove godoc
// @Summary Remove a skill from an employee
// @Tags skills
// @Accept json
// @Produce json
// @Param request body RemoveSkillRequest true "Removal data"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /skills/remove [delete]
func (h *SkillHandler) Remove(c echo.Context) error {
	var req RemoveSkillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.skillService.Remove(c.Request().Context(), req.EmployeeID, req.SkillID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "skill removed"})
}
