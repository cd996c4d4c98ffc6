package repository

import (
	"context"

	"gorm.io/gorm"

	"taskhub/internal/model"
)

// EmployeeRepository defines employee persistence operations.
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Employee, error)
	FindByIDWithSkills(ctx context.Context, id uint) (*model.Employee, error)
	FindByUserID(ctx context.Context, userID uint) (*model.Employee, error)
	List(ctx context.Context) ([]model.Employee, error)
	ListBySkillName(ctx context.Context, skillName string) ([]model.Employee, error)
	Update(ctx context.Context, employee *model.Employee) error
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository builds a GORM-backed repository.
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) FindByID(ctx context.Context, id uint) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByIDWithSkills(ctx context.Context, id uint) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).Preload("Skills.Skill").First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByUserID(ctx context.Context, userID uint) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := r.db.WithContext(ctx).Preload("Skills.Skill").Order("id asc").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// ListBySkillName lists employees holding a skill with the given name.
func (r *employeeRepository) ListBySkillName(ctx context.Context, skillName string) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).
		Joins("JOIN employee_skills ON employee_skills.employee_id = employees.id").
		Joins("JOIN skills ON skills.id = employee_skills.skill_id").
		Where("skills.name = ?", skillName).
		Preload("Skills.Skill").
		Order("employees.id asc").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}
