package service

import (
	"context"

	"gorm.io/gorm"

	"taskhub/internal/authz"
	errs "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// CreateMilestoneInput is the data needed to create a milestone. An empty
// due date defaults to the project deadline.
type CreateMilestoneInput struct {
	Title   string
	DueDate string
}

// UpdateMilestoneInput is a sparse patch; nil fields stay unchanged.
type UpdateMilestoneInput struct {
	Title     *string
	DueDate   *string
	Completed *bool
}

// MilestoneService handles milestones. All mutations are owner-only; listing
// needs only authentication.
type MilestoneService interface {
	Create(ctx context.Context, actor authz.Actor, projectID uint, in CreateMilestoneInput) (*model.Milestone, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.Milestone, error)
	Update(ctx context.Context, actor authz.Actor, id uint, in UpdateMilestoneInput) (*model.Milestone, error)
	Delete(ctx context.Context, actor authz.Actor, id uint) error
}

type milestoneService struct {
	milestoneRepo repository.MilestoneRepository
	projectRepo   repository.ProjectRepository
}

// NewMilestoneService creates a new milestone service.
func NewMilestoneService(milestoneRepo repository.MilestoneRepository, projectRepo repository.ProjectRepository) MilestoneService {
	return &milestoneService{
		milestoneRepo: milestoneRepo,
		projectRepo:   projectRepo,
	}
}

func (s *milestoneService) Create(ctx context.Context, actor authz.Actor, projectID uint, in CreateMilestoneInput) (*model.Milestone, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !authz.Can(actor, authz.ActionManageMilestones, authz.Target{ProjectOwnerID: project.OwnerID}) {
		return nil, errs.Authorization("only the project owner can manage milestones")
	}

	dueDate := project.Deadline
	if in.DueDate != "" {
		parsed, err := parseDate(in.DueDate)
		if err != nil {
			return nil, errs.Validation("invalid due_date")
		}
		dueDate = parsed
	}

	milestone := &model.Milestone{
		Title:     in.Title,
		DueDate:   dueDate,
		ProjectID: projectID,
	}
	if err := s.milestoneRepo.Create(ctx, milestone); err != nil {
		return nil, errs.Internal(err)
	}
	return milestone, nil
}

func (s *milestoneService) ListByProject(ctx context.Context, projectID uint) ([]model.Milestone, error) {
	if _, err := s.findProject(ctx, projectID); err != nil {
		return nil, err
	}
	milestones, err := s.milestoneRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return milestones, nil
}

func (s *milestoneService) Update(ctx context.Context, actor authz.Actor, id uint, in UpdateMilestoneInput) (*model.Milestone, error) {
	milestone, project, err := s.findMilestone(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.Can(actor, authz.ActionManageMilestones, authz.Target{ProjectOwnerID: project.OwnerID}) {
		return nil, errs.Authorization("only the project owner can manage milestones")
	}

	if in.Title != nil {
		milestone.Title = *in.Title
	}
	if in.DueDate != nil {
		parsed, err := parseDate(*in.DueDate)
		if err != nil {
			return nil, errs.Validation("invalid due_date")
		}
		milestone.DueDate = parsed
	}
	if in.Completed != nil {
		milestone.Completed = *in.Completed
	}

	if err := s.milestoneRepo.Update(ctx, milestone); err != nil {
		return nil, errs.Internal(err)
	}
	return milestone, nil
}

func (s *milestoneService) Delete(ctx context.Context, actor authz.Actor, id uint) error {
	milestone, project, err := s.findMilestone(ctx, id)
	if err != nil {
		return err
	}

	if !authz.Can(actor, authz.ActionManageMilestones, authz.Target{ProjectOwnerID: project.OwnerID}) {
		return errs.Authorization("only the project owner can manage milestones")
	}

	if err := s.milestoneRepo.Delete(ctx, milestone.ID); err != nil {
		return errs.Internal(err)
	}
	return nil
}

func (s *milestoneService) findProject(ctx context.Context, projectID uint) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("project not found")
		}
		return nil, errs.Internal(err)
	}
	return project, nil
}

func (s *milestoneService) findMilestone(ctx context.Context, id uint) (*model.Milestone, *model.Project, error) {
	milestone, err := s.milestoneRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errs.NotFound("milestone not found")
		}
		return nil, nil, errs.Internal(err)
	}
	project, err := s.findProject(ctx, milestone.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return milestone, project, nil
}
