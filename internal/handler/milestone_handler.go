package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskhub/internal/service"
)

// MilestoneHandler handles milestone endpoints.
type MilestoneHandler struct {
	milestoneService service.MilestoneService
}

// NewMilestoneHandler creates a new milestone handler.
func NewMilestoneHandler(milestoneService service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestoneService: milestoneService}
}

// CreateMilestoneRequest represents a milestone creation request.
type CreateMilestoneRequest struct {
	Title   string `json:"title" validate:"required"`
	DueDate string `json:"dueDate"`
}

// UpdateMilestoneRequest is a sparse patch; absent fields stay unchanged.
type UpdateMilestoneRequest struct {
	Title     *string `json:"title"`
	DueDate   *string `json:"dueDate"`
	Completed *bool   `json:"completed"`
}

// Create godoc
// @Summary Create a milestone under a project (owner only)
// @Tags milestones
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body CreateMilestoneRequest true "Milestone data"
// @Success 201 {object} model.Milestone
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /projects/{id}/milestones [post]
func (h *MilestoneHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	projectID, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req CreateMilestoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	milestone, err := h.milestoneService.Create(c.Request().Context(), actor, projectID, service.CreateMilestoneInput{
		Title:   req.Title,
		DueDate: req.DueDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, milestone)
}

// ListByProject godoc
// @Summary List a project's milestones
// @Tags milestones
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {array} model.Milestone
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/milestones [get]
func (h *MilestoneHandler) ListByProject(c echo.Context) error {
	projectID, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	milestones, err := h.milestoneService.ListByProject(c.Request().Context(), projectID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, milestones)
}

// Update godoc
// @Summary Update a milestone (owner only)
// @Tags milestones
// @Accept json
// @Produce json
// @Param milestoneId path int true "Milestone ID"
// @Param request body UpdateMilestoneRequest true "Patch"
// @Success 200 {object} model.Milestone
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /milestones/{milestoneId} [put]
func (h *MilestoneHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramUint(c, "milestoneId")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateMilestoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	milestone, err := h.milestoneService.Update(c.Request().Context(), actor, id, service.UpdateMilestoneInput{
		Title:     req.Title,
		DueDate:   req.DueDate,
		Completed: req.Completed,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, milestone)
}

// Delete godoc
// @Summary Delete a milestone (owner only)
// @Tags milestones
// @Produce json
// @Param milestoneId path int true "Milestone ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /milestones/{milestoneId} [delete]
func (h *MilestoneHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramUint(c, "milestoneId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.milestoneService.Delete(c.Request().Context(), actor, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "milestone deleted"})
}
