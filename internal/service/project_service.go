package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskhub/internal/authz"
	errs "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const defaultProjectDuration = 30 * 24 * time.Hour

// CreateProjectInput is the data needed to create a project. Date strings
// accept RFC 3339 or YYYY-MM-DD; empty means use the default.
type CreateProjectInput struct {
	Title       string
	Description string
	Priority    model.Priority
	StartDate   string
	Deadline    string
	MemberIDs   []uint
}

// UpdateProjectInput is a sparse patch; nil fields stay unchanged. A non-nil
// MemberIDs replaces the member set wholesale.
type UpdateProjectInput struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	Status      *model.ProjectStatus
	StartDate   *string
	Deadline    *string
	MemberIDs   *[]uint
}

// ProjectService handles project lifecycle and membership.
type ProjectService interface {
	Create(ctx context.Context, actor authz.Actor, in CreateProjectInput) (*model.Project, error)
	Get(ctx context.Context, id uint) (*model.Project, error)
	List(ctx context.Context, filter repository.ProjectFilter) ([]model.Project, error)
	Update(ctx context.Context, actor authz.Actor, id uint, in UpdateProjectInput) (*model.Project, error)
	Delete(ctx context.Context, actor authz.Actor, id uint) error

	AddMember(ctx context.Context, actor authz.Actor, projectID, employeeID uint) (*model.ProjectEmployee, error)
	RemoveMember(ctx context.Context, actor authz.Actor, projectID, employeeID uint) error
	ListMembers(ctx context.Context, projectID uint) ([]model.ProjectEmployee, error)
}

type projectService struct {
	projectRepo  repository.ProjectRepository
	employeeRepo repository.EmployeeRepository
	cache        Cache
}

// NewProjectService creates a new project service.
func NewProjectService(projectRepo repository.ProjectRepository, employeeRepo repository.EmployeeRepository, cache Cache) ProjectService {
	return &projectService{
		projectRepo:  projectRepo,
		employeeRepo: employeeRepo,
		cache:        cache,
	}
}

// Create makes the acting employee both creator and owner. Initial members
// are created in the same transaction as the project.
func (s *projectService) Create(ctx context.Context, actor authz.Actor, in CreateProjectInput) (*model.Project, error) {
	if actor.EmployeeID == 0 {
		return nil, errs.Authorization("no employee profile associated with this account")
	}

	startDate := time.Now()
	if in.StartDate != "" {
		parsed, err := parseDate(in.StartDate)
		if err != nil {
			return nil, errs.Validation("invalid start_date")
		}
		startDate = parsed
	}

	deadline := startDate.Add(defaultProjectDuration)
	if in.Deadline != "" {
		parsed, err := parseDate(in.Deadline)
		if err != nil {
			return nil, errs.Validation("invalid deadline")
		}
		deadline = parsed
	}

	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	memberIDs := dedupeIDs(in.MemberIDs)
	for _, employeeID := range memberIDs {
		if err := s.requireEmployee(ctx, employeeID); err != nil {
			return nil, err
		}
	}

	project := &model.Project{
		Title:       in.Title,
		Description: in.Description,
		Priority:    priority,
		Status:      model.ProjectStatusPlanning,
		StartDate:   startDate,
		Deadline:    deadline,
		CreatorID:   actor.EmployeeID,
		OwnerID:     actor.EmployeeID,
	}

	if err := s.projectRepo.CreateWithMembers(ctx, project, memberIDs); err != nil {
		return nil, errs.Internal(err)
	}
	return s.Get(ctx, project.ID)
}

func (s *projectService) Get(ctx context.Context, id uint) (*model.Project, error) {
	project, err := s.projectRepo.FindByIDWithDetails(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("project not found")
		}
		return nil, errs.Internal(err)
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context, filter repository.ProjectFilter) ([]model.Project, error) {
	projects, err := s.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return projects, nil
}

// Update applies a sparse patch, owner-only. A provided member list replaces
// the member set with delete-all-then-insert semantics: joined_at resets for
// members that stay.
func (s *projectService) Update(ctx context.Context, actor authz.Actor, id uint, in UpdateProjectInput) (*model.Project, error) {
	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.Can(actor, authz.ActionUpdateProject, authz.Target{ProjectOwnerID: project.OwnerID}) {
		return nil, errs.Authorization("only the project owner can update the project")
	}

	if in.Title != nil {
		project.Title = *in.Title
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Priority != nil {
		project.Priority = *in.Priority
	}
	if in.Status != nil {
		project.Status = *in.Status
	}
	if in.StartDate != nil {
		parsed, err := parseDate(*in.StartDate)
		if err != nil {
			return nil, errs.Validation("invalid start_date")
		}
		project.StartDate = parsed
	}
	if in.Deadline != nil {
		parsed, err := parseDate(*in.Deadline)
		if err != nil {
			return nil, errs.Validation("invalid deadline")
		}
		project.Deadline = parsed
	}

	// Validate the new member set before persisting anything, so an unknown
	// member id rejects the whole patch instead of leaving the field changes
	// committed.
	var memberIDs []uint
	if in.MemberIDs != nil {
		memberIDs = dedupeIDs(*in.MemberIDs)
		for _, employeeID := range memberIDs {
			if err := s.requireEmployee(ctx, employeeID); err != nil {
				return nil, err
			}
		}
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, errs.Internal(err)
	}

	if in.MemberIDs != nil {
		if err := s.projectRepo.ReplaceMembers(ctx, id, memberIDs); err != nil {
			return nil, errs.Internal(err)
		}
	}

	return s.Get(ctx, id)
}

// Delete removes the project with its tasks, milestones and memberships.
func (s *projectService) Delete(ctx context.Context, actor authz.Actor, id uint) error {
	project, err := s.findProject(ctx, id)
	if err != nil {
		return err
	}

	if !authz.Can(actor, authz.ActionDeleteProject, authz.Target{ProjectOwnerID: project.OwnerID}) {
		return errs.Authorization("only the project owner can delete the project")
	}

	if err := s.projectRepo.DeleteCascade(ctx, id); err != nil {
		return errs.Internal(err)
	}
	_ = s.cache.Delete(ctx, workloadSummaryCacheKey)
	return nil
}

// AddMember adds one employee to the project team, owner-only.
func (s *projectService) AddMember(ctx context.Context, actor authz.Actor, projectID, employeeID uint) (*model.ProjectEmployee, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !authz.Can(actor, authz.ActionManageMembers, authz.Target{ProjectOwnerID: project.OwnerID}) {
		return nil, errs.Authorization("only the project owner can manage members")
	}
	if err := s.requireEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	if _, err := s.projectRepo.FindMember(ctx, projectID, employeeID); err == nil {
		return nil, errs.Conflict("employee is already a member of this project")
	} else if err != gorm.ErrRecordNotFound {
		return nil, errs.Internal(err)
	}

	member := &model.ProjectEmployee{
		ProjectID:  projectID,
		EmployeeID: employeeID,
		JoinedAt:   time.Now(),
	}
	if err := s.projectRepo.CreateMember(ctx, member); err != nil {
		return nil, errs.Internal(err)
	}
	return member, nil
}

// RemoveMember removes one employee from the project team, owner-only.
// Removing an absent membership reports not-found rather than succeeding
// silently.
func (s *projectService) RemoveMember(ctx context.Context, actor authz.Actor, projectID, employeeID uint) error {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return err
	}

	if !authz.Can(actor, authz.ActionManageMembers, authz.Target{ProjectOwnerID: project.OwnerID}) {
		return errs.Authorization("only the project owner can manage members")
	}

	if _, err := s.projectRepo.FindMember(ctx, projectID, employeeID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.NotFound("project membership not found")
		}
		return errs.Internal(err)
	}

	if err := s.projectRepo.DeleteMember(ctx, projectID, employeeID); err != nil {
		return errs.Internal(err)
	}
	return nil
}

func (s *projectService) ListMembers(ctx context.Context, projectID uint) ([]model.ProjectEmployee, error) {
	if _, err := s.findProject(ctx, projectID); err != nil {
		return nil, err
	}
	members, err := s.projectRepo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return members, nil
}

func (s *projectService) findProject(ctx context.Context, id uint) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("project not found")
		}
		return nil, errs.Internal(err)
	}
	return project, nil
}

func (s *projectService) requireEmployee(ctx context.Context, employeeID uint) error {
	if _, err := s.employeeRepo.FindByID(ctx, employeeID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.NotFound(fmt.Sprintf("employee %d not found", employeeID))
		}
		return errs.Internal(err)
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %q", value)
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
