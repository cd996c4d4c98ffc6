package repository

import (
	"context"

	"gorm.io/gorm"

	"taskhub/internal/model"
)

// SkillRepository defines skill and skill-assignment persistence operations.
type SkillRepository interface {
	Create(ctx context.Context, skill *model.Skill) error
	FindByID(ctx context.Context, id uint) (*model.Skill, error)
	FindByName(ctx context.Context, name string) (*model.Skill, error)
	List(ctx context.Context) ([]model.Skill, error)

	FindAssignment(ctx context.Context, employeeID, skillID uint) (*model.EmployeeSkill, error)
	CreateAssignment(ctx context.Context, assignment *model.EmployeeSkill) error
	DeleteAssignment(ctx context.Context, employeeID, skillID uint) error
	ListAssignments(ctx context.Context, employeeID uint) ([]model.EmployeeSkill, error)
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository builds a GORM-backed repository.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) Create(ctx context.Context, skill *model.Skill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *skillRepository) FindByID(ctx context.Context, id uint) (*model.Skill, error) {
	var skill model.Skill
	if err := r.db.WithContext(ctx).First(&skill, id).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *skillRepository) FindByName(ctx context.Context, name string) (*model.Skill, error) {
	var skill model.Skill
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&skill).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *skillRepository) List(ctx context.Context) ([]model.Skill, error) {
	var skills []model.Skill
	if err := r.db.WithContext(ctx).Order("name asc").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *skillRepository) FindAssignment(ctx context.Context, employeeID, skillID uint) (*model.EmployeeSkill, error) {
	var assignment model.EmployeeSkill
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND skill_id = ?", employeeID, skillID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *skillRepository) CreateAssignment(ctx context.Context, assignment *model.EmployeeSkill) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *skillRepository) DeleteAssignment(ctx context.Context, employeeID, skillID uint) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ? AND skill_id = ?", employeeID, skillID).
		Delete(&model.EmployeeSkill{}).Error
}

func (r *skillRepository) ListAssignments(ctx context.Context, employeeID uint) ([]model.EmployeeSkill, error) {
	var assignments []model.EmployeeSkill
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Preload("Skill").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
