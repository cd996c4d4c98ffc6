package service

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"taskhub/internal/authz"
	errs "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const employeeProfileCacheTTL = 5 * time.Minute

// EmployeeStats are independent counts against the store, never cached
// counters. TotalProjects is the plain sum of owned and member projects and
// does not deduplicate a project the employee both owns and belongs to.
type EmployeeStats struct {
	TotalTasks     int64 `json:"total_tasks"`
	CompletedTasks int64 `json:"completed_tasks"`
	OwnedProjects  int64 `json:"owned_projects"`
	MemberProjects int64 `json:"member_projects"`
	TotalProjects  int64 `json:"total_projects"`
}

// EmployeeProfile is the read-only aggregate view of one employee.
type EmployeeProfile struct {
	Employee       model.Employee        `json:"employee"`
	Skills         []model.EmployeeSkill `json:"skills"`
	ActiveTasks    []model.Task          `json:"active_tasks"`
	OwnedProjects  []model.Project       `json:"owned_projects"`
	MemberProjects []model.Project       `json:"member_projects"`
	Stats          EmployeeStats         `json:"stats"`
}

// UpdateEmployeeInput is a sparse patch; nil fields stay unchanged.
type UpdateEmployeeInput struct {
	Name         *string
	Contact      *string
	MaxTasks     *int
	Availability *model.AvailabilityStatus
}

// EmployeeService handles employee profiles.
type EmployeeService interface {
	List(ctx context.Context) ([]model.Employee, error)
	GetProfile(ctx context.Context, employeeID uint) (*EmployeeProfile, error)
	GetByUserID(ctx context.Context, userID uint) (*model.Employee, error)
	UpdateProfile(ctx context.Context, actor authz.Actor, employeeID uint, in UpdateEmployeeInput) (*model.Employee, error)
}

type employeeService struct {
	employeeRepo repository.EmployeeRepository
	taskRepo     repository.TaskRepository
	projectRepo  repository.ProjectRepository
	cache        Cache
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(
	employeeRepo repository.EmployeeRepository,
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	cache Cache,
) EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		taskRepo:     taskRepo,
		projectRepo:  projectRepo,
		cache:        cache,
	}
}

func (s *employeeService) List(ctx context.Context) ([]model.Employee, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return employees, nil
}

// GetProfile assembles the aggregate view with caching.
func (s *employeeService) GetProfile(ctx context.Context, employeeID uint) (*EmployeeProfile, error) {
	key := employeeProfileCacheKey(employeeID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached EmployeeProfile
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	employee, err := s.employeeRepo.FindByIDWithSkills(ctx, employeeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("employee not found")
		}
		return nil, errs.Internal(err)
	}

	activeTasks, err := s.taskRepo.ListActiveByEmployee(ctx, employeeID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	owned, err := s.projectRepo.ListOwnedByEmployee(ctx, employeeID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	member, err := s.projectRepo.ListMemberProjects(ctx, employeeID)
	if err != nil {
		return nil, errs.Internal(err)
	}

	totalTasks, err := s.taskRepo.CountByEmployee(ctx, employeeID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	completedTasks, err := s.taskRepo.CountByEmployeeAndStatus(ctx, employeeID, model.TaskStatusCompleted)
	if err != nil {
		return nil, errs.Internal(err)
	}
	ownedCount, err := s.projectRepo.CountOwnedByEmployee(ctx, employeeID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	memberCount, err := s.projectRepo.CountMembershipsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, errs.Internal(err)
	}

	skills := employee.Skills
	employee.Skills = nil

	profile := &EmployeeProfile{
		Employee:       *employee,
		Skills:         skills,
		ActiveTasks:    activeTasks,
		OwnedProjects:  owned,
		MemberProjects: member,
		Stats: EmployeeStats{
			TotalTasks:     totalTasks,
			CompletedTasks: completedTasks,
			OwnedProjects:  ownedCount,
			MemberProjects: memberCount,
			TotalProjects:  ownedCount + memberCount,
		},
	}

	if payload, err := json.Marshal(profile); err == nil {
		_ = s.cache.Set(ctx, key, payload, employeeProfileCacheTTL)
	}
	return profile, nil
}

func (s *employeeService) GetByUserID(ctx context.Context, userID uint) (*model.Employee, error) {
	employee, err := s.employeeRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("employee not found")
		}
		return nil, errs.Internal(err)
	}
	return employee, nil
}

// UpdateProfile applies a sparse patch. Only the owning user may update.
func (s *employeeService) UpdateProfile(ctx context.Context, actor authz.Actor, employeeID uint, in UpdateEmployeeInput) (*model.Employee, error) {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("employee not found")
		}
		return nil, errs.Internal(err)
	}

	if !authz.Can(actor, authz.ActionUpdateEmployee, authz.Target{EmployeeUserID: employee.UserID}) {
		return nil, errs.Authorization("you can only update your own profile")
	}

	if in.Name != nil {
		employee.Name = *in.Name
	}
	if in.Contact != nil {
		employee.Contact = *in.Contact
	}
	if in.MaxTasks != nil {
		if *in.MaxTasks <= 0 {
			return nil, errs.Validation("max_tasks must be positive")
		}
		employee.MaxTasks = *in.MaxTasks
	}
	if in.Availability != nil {
		employee.Availability = *in.Availability
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, errs.Internal(err)
	}

	_ = s.cache.Delete(ctx, employeeProfileCacheKey(employeeID))
	_ = s.cache.Delete(ctx, workloadSummaryCacheKey)
	return employee, nil
}
