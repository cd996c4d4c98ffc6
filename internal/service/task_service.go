package service

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"taskhub/internal/authz"
	errs "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// CreateTaskInput is the data needed to create a task under a project.
// AssigneeID nil creates the task unassigned.
type CreateTaskInput struct {
	Title          string
	Description    string
	Priority       model.Priority
	Status         model.TaskStatus
	EstimatedHours decimal.Decimal
	StartDate      string
	EndDate        string
	AssigneeID     *uint
}

// UpdateTaskInput is a sparse patch. AssigneeSet distinguishes "assignee not
// in the patch" from "assignee explicitly set": when AssigneeSet is true and
// AssigneeID is nil the assignment is cleared.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Priority       *model.Priority
	Status         *model.TaskStatus
	EstimatedHours *decimal.Decimal
	StartDate      *string
	EndDate        *string
	AssigneeSet    bool
	AssigneeID     *uint
}

// TaskService handles task lifecycle. Create and update require only
// authentication; delete is restricted to the owning project's owner.
type TaskService interface {
	Create(ctx context.Context, actor authz.Actor, projectID uint, in CreateTaskInput) (*model.Task, error)
	Get(ctx context.Context, id uint) (*model.Task, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.Task, error)
	Update(ctx context.Context, actor authz.Actor, id uint, in UpdateTaskInput) (*model.Task, error)
	Delete(ctx context.Context, actor authz.Actor, id uint) error
}

type taskService struct {
	taskRepo     repository.TaskRepository
	projectRepo  repository.ProjectRepository
	employeeRepo repository.EmployeeRepository
	cache        Cache
}

// NewTaskService creates a new task service.
func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	employeeRepo repository.EmployeeRepository,
	cache Cache,
) TaskService {
	return &taskService{
		taskRepo:     taskRepo,
		projectRepo:  projectRepo,
		employeeRepo: employeeRepo,
		cache:        cache,
	}
}

// Create adds a task to a project. The project and, when provided, the
// assignee must exist. Over-assignment past max_tasks is permitted; it
// surfaces as unavailability in workload reports instead.
func (s *taskService) Create(ctx context.Context, actor authz.Actor, projectID uint, in CreateTaskInput) (*model.Task, error) {
	if !authz.Can(actor, authz.ActionCreateTask, authz.Target{}) {
		return nil, errs.Authorization("authentication required")
	}

	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("project not found")
		}
		return nil, errs.Internal(err)
	}

	if in.AssigneeID != nil {
		if err := s.requireEmployee(ctx, *in.AssigneeID); err != nil {
			return nil, err
		}
	}

	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	status := in.Status
	if status == "" {
		status = model.TaskStatusTodo
	}

	task := &model.Task{
		Title:          in.Title,
		Description:    in.Description,
		Priority:       priority,
		Status:         status,
		EstimatedHours: in.EstimatedHours,
		ProjectID:      projectID,
		EmployeeID:     in.AssigneeID,
	}

	if in.StartDate != "" {
		parsed, err := parseDate(in.StartDate)
		if err != nil {
			return nil, errs.Validation("invalid start_date")
		}
		task.StartDate = &parsed
	}
	if in.EndDate != "" {
		parsed, err := parseDate(in.EndDate)
		if err != nil {
			return nil, errs.Validation("invalid end_date")
		}
		task.EndDate = &parsed
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, errs.Internal(err)
	}

	s.invalidateWorkload(ctx, in.AssigneeID)
	return task, nil
}

func (s *taskService) Get(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByIDWithProject(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("task not found")
		}
		return nil, errs.Internal(err)
	}
	return task, nil
}

func (s *taskService) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("project not found")
		}
		return nil, errs.Internal(err)
	}
	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return tasks, nil
}

// Update applies a sparse patch. Assigning the same employee again is a
// no-op in effect: the task keeps exactly that one assignee.
func (s *taskService) Update(ctx context.Context, actor authz.Actor, id uint, in UpdateTaskInput) (*model.Task, error) {
	if !authz.Can(actor, authz.ActionUpdateTask, authz.Target{}) {
		return nil, errs.Authorization("authentication required")
	}

	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("task not found")
		}
		return nil, errs.Internal(err)
	}
	previousAssignee := task.EmployeeID

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.EstimatedHours != nil {
		task.EstimatedHours = *in.EstimatedHours
	}
	if in.StartDate != nil {
		parsed, err := parseDate(*in.StartDate)
		if err != nil {
			return nil, errs.Validation("invalid start_date")
		}
		task.StartDate = &parsed
	}
	if in.EndDate != nil {
		parsed, err := parseDate(*in.EndDate)
		if err != nil {
			return nil, errs.Validation("invalid end_date")
		}
		task.EndDate = &parsed
	}
	if in.AssigneeSet {
		if in.AssigneeID != nil {
			if err := s.requireEmployee(ctx, *in.AssigneeID); err != nil {
				return nil, err
			}
		}
		task.EmployeeID = in.AssigneeID
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, errs.Internal(err)
	}

	s.invalidateWorkload(ctx, previousAssignee)
	s.invalidateWorkload(ctx, task.EmployeeID)
	return task, nil
}

// Delete removes a task, restricted to the owner of the task's project.
func (s *taskService) Delete(ctx context.Context, actor authz.Actor, id uint) error {
	task, err := s.taskRepo.FindByIDWithProject(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.NotFound("task not found")
		}
		return errs.Internal(err)
	}

	var ownerID uint
	if task.Project != nil {
		ownerID = task.Project.OwnerID
	}
	if !authz.Can(actor, authz.ActionDeleteTask, authz.Target{ProjectOwnerID: ownerID}) {
		return errs.Authorization("only the project owner can delete tasks")
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return errs.Internal(err)
	}

	s.invalidateWorkload(ctx, task.EmployeeID)
	return nil
}

func (s *taskService) requireEmployee(ctx context.Context, employeeID uint) error {
	if _, err := s.employeeRepo.FindByID(ctx, employeeID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.NotFound("assignee employee not found")
		}
		return errs.Internal(err)
	}
	return nil
}

func (s *taskService) invalidateWorkload(ctx context.Context, employeeID *uint) {
	_ = s.cache.Delete(ctx, workloadSummaryCacheKey)
	if employeeID != nil {
		_ = s.cache.Delete(ctx, employeeProfileCacheKey(*employeeID))
	}
}
