package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"taskhub/internal/model"
)

// TaskRepository defines task persistence operations, including the live
// counts the workload aggregator is built on.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	FindByIDWithProject(ctx context.Context, id uint) (*model.Task, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.Task, error)
	ListActiveByEmployee(ctx context.Context, employeeID uint) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uint) error

	CountActiveByEmployee(ctx context.Context, employeeID uint) (int64, error)
	CountByEmployee(ctx context.Context, employeeID uint) (int64, error)
	CountByEmployeeAndStatus(ctx context.Context, employeeID uint, status model.TaskStatus) (int64, error)
	SumActiveEstimatedHours(ctx context.Context, employeeID uint) (decimal.Decimal, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) FindByIDWithProject(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Preload("Project").First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Preload("Employee").
		Order("id asc").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) ListActiveByEmployee(ctx context.Context, employeeID uint) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status IN ?", employeeID, model.ActiveTaskStatuses()).
		Order("id asc").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Task{}, id).Error
}

func (r *taskRepository) CountActiveByEmployee(ctx context.Context, employeeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("employee_id = ? AND status IN ?", employeeID, model.ActiveTaskStatuses()).
		Count(&count).Error
	return count, err
}

func (r *taskRepository) CountByEmployee(ctx context.Context, employeeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count, err
}

func (r *taskRepository) CountByEmployeeAndStatus(ctx context.Context, employeeID uint, status model.TaskStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("employee_id = ? AND status = ?", employeeID, status).
		Count(&count).Error
	return count, err
}

// SumActiveEstimatedHours sums estimated hours over the employee's active tasks.
func (r *taskRepository) SumActiveEstimatedHours(ctx context.Context, employeeID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("employee_id = ? AND status IN ?", employeeID, model.ActiveTaskStatuses()).
		Select("COALESCE(SUM(estimated_hours), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
