package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"taskhub/internal/model"
)

// ProjectFilter narrows project listings. Zero values mean no filtering.
type ProjectFilter struct {
	Status    model.ProjectStatus
	Priority  model.Priority
	CreatedBy uint
}

// ProjectRepository defines project and membership persistence operations.
type ProjectRepository interface {
	CreateWithMembers(ctx context.Context, project *model.Project, memberIDs []uint) error
	FindByID(ctx context.Context, id uint) (*model.Project, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*model.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]model.Project, error)
	ListOwnedByEmployee(ctx context.Context, employeeID uint) ([]model.Project, error)
	ListMemberProjects(ctx context.Context, employeeID uint) ([]model.Project, error)
	CountOwnedByEmployee(ctx context.Context, employeeID uint) (int64, error)
	CountMembershipsByEmployee(ctx context.Context, employeeID uint) (int64, error)
	Update(ctx context.Context, project *model.Project) error
	DeleteCascade(ctx context.Context, id uint) error

	ReplaceMembers(ctx context.Context, projectID uint, memberIDs []uint) error
	FindMember(ctx context.Context, projectID, employeeID uint) (*model.ProjectEmployee, error)
	CreateMember(ctx context.Context, member *model.ProjectEmployee) error
	DeleteMember(ctx context.Context, projectID, employeeID uint) error
	ListMembers(ctx context.Context, projectID uint) ([]model.ProjectEmployee, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository builds a GORM-backed repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// CreateWithMembers creates the project and its initial membership rows in one
// transaction.
func (r *projectRepository) CreateWithMembers(ctx context.Context, project *model.Project, memberIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		return insertMembers(tx, project.ID, memberIDs)
	})
}

func (r *projectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindByIDWithDetails(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Preload("Tasks").
		Preload("Milestones").
		Preload("Members.Employee").
		First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, filter ProjectFilter) ([]model.Project, error) {
	q := r.db.WithContext(ctx).Preload("Members.Employee")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.CreatedBy != 0 {
		q = q.Where("creator_id = ?", filter.CreatedBy)
	}

	var projects []model.Project
	if err := q.Order("id asc").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) ListOwnedByEmployee(ctx context.Context, employeeID uint) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).Where("owner_id = ?", employeeID).Order("id asc").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListMemberProjects lists the projects an employee belongs to via membership.
func (r *projectRepository) ListMemberProjects(ctx context.Context, employeeID uint) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Joins("JOIN project_employees ON project_employees.project_id = projects.id").
		Where("project_employees.employee_id = ?", employeeID).
		Order("projects.id asc").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) CountOwnedByEmployee(ctx context.Context, employeeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("owner_id = ?", employeeID).
		Count(&count).Error
	return count, err
}

func (r *projectRepository) CountMembershipsByEmployee(ctx context.Context, employeeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProjectEmployee{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count, err
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// DeleteCascade removes the project and its tasks, milestones and membership
// rows in one transaction.
func (r *projectRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Milestone{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.ProjectEmployee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, id).Error
	})
}

// ReplaceMembers swaps the whole member set: delete all rows, insert the new
// list. JoinedAt resets for members that survive the replacement.
func (r *projectRepository) ReplaceMembers(ctx context.Context, projectID uint, memberIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&model.ProjectEmployee{}).Error; err != nil {
			return err
		}
		return insertMembers(tx, projectID, memberIDs)
	})
}

func (r *projectRepository) FindMember(ctx context.Context, projectID, employeeID uint) (*model.ProjectEmployee, error) {
	var member model.ProjectEmployee
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND employee_id = ?", projectID, employeeID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *projectRepository) CreateMember(ctx context.Context, member *model.ProjectEmployee) error {
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *projectRepository) DeleteMember(ctx context.Context, projectID, employeeID uint) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND employee_id = ?", projectID, employeeID).
		Delete(&model.ProjectEmployee{}).Error
}

func (r *projectRepository) ListMembers(ctx context.Context, projectID uint) ([]model.ProjectEmployee, error) {
	var members []model.ProjectEmployee
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Preload("Employee").
		Order("employee_id asc").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func insertMembers(tx *gorm.DB, projectID uint, memberIDs []uint) error {
	rows := memberRows(projectID, memberIDs, time.Now())
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// memberRows builds fresh membership rows stamped with joinedAt. Replacement
// goes through here after a delete-all, so joined_at resets even for members
// that survive the swap.
func memberRows(projectID uint, memberIDs []uint, joinedAt time.Time) []model.ProjectEmployee {
	rows := make([]model.ProjectEmployee, 0, len(memberIDs))
	for _, employeeID := range memberIDs {
		rows = append(rows, model.ProjectEmployee{
			ProjectID:  projectID,
			EmployeeID: employeeID,
			JoinedAt:   joinedAt,
		})
	}
	return rows
}
