package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	errs "taskhub/internal/errors"
	"taskhub/internal/model"
)

func TestSkillService_Create(t *testing.T) {
	mockSkillRepo := new(MockSkillRepository)
	mockSkillRepo.On("FindByName", mock.Anything, "Go").Return(nil, gorm.ErrRecordNotFound)
	mockSkillRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Skill")).Return(nil)

	service := NewSkillService(mockSkillRepo, new(MockEmployeeRepository), noopCache{})
	skill, err := service.Create(context.Background(), "Go")

	assert.NoError(t, err)
	assert.Equal(t, "Go", skill.Name)
	mockSkillRepo.AssertExpectations(t)
}

func TestSkillService_Create_Duplicate(t *testing.T) {
	mockSkillRepo := new(MockSkillRepository)
	mockSkillRepo.On("FindByName", mock.Anything, "Go").Return(&model.Skill{ID: 1, Name: "Go"}, nil)

	service := NewSkillService(mockSkillRepo, new(MockEmployeeRepository), noopCache{})
	_, err := service.Create(context.Background(), "Go")

	assert.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	mockSkillRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSkillService_Assign(t *testing.T) {
	mockSkillRepo := new(MockSkillRepository)
	mockEmployeeRepo := new(MockEmployeeRepository)

	mockEmployeeRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Employee{ID: 10}, nil)
	mockSkillRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Skill{ID: 1, Name: "Go"}, nil)
	mockSkillRepo.On("FindAssignment", mock.Anything, uint(10), uint(1)).Return(nil, gorm.ErrRecordNotFound)
	mockSkillRepo.On("CreateAssignment", mock.Anything, mock.AnythingOfType("*model.EmployeeSkill")).Return(nil)

	// skills feed both the employee profile and the team workload report, so
	// assignment drops both cached views
	mockCache := new(MockCache)
	mockCache.On("Delete", mock.Anything, "employee:10:profile").Return(nil)
	mockCache.On("Delete", mock.Anything, "workload:summary").Return(nil)

	service := NewSkillService(mockSkillRepo, mockEmployeeRepo, mockCache)
	assignment, err := service.Assign(context.Background(), 10, 1, 3, "ADVANCED")

	assert.NoError(t, err)
	assert.Equal(t, uint(10), assignment.EmployeeID)
	assert.Equal(t, uint(1), assignment.SkillID)
	assert.Equal(t, 3, assignment.YearsExperience)
	assert.Equal(t, "ADVANCED", assignment.Proficiency)
	mockSkillRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestSkillService_Assign_Duplicate(t *testing.T) {
	mockSkillRepo := new(MockSkillRepository)
	mockEmployeeRepo := new(MockEmployeeRepository)

	mockEmployeeRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Employee{ID: 10}, nil)
	mockSkillRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Skill{ID: 1, Name: "Go"}, nil)
	mockSkillRepo.On("FindAssignment", mock.Anything, uint(10), uint(1)).Return(&model.EmployeeSkill{EmployeeID: 10, SkillID: 1}, nil)

	service := NewSkillService(mockSkillRepo, mockEmployeeRepo, noopCache{})
	_, err := service.Assign(context.Background(), 10, 1, 3, "ADVANCED")

	assert.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	mockSkillRepo.AssertNotCalled(t, "CreateAssignment", mock.Anything, mock.Anything)
}

func TestSkillService_Assign_UnknownEmployee(t *testing.T) {
	mockEmployeeRepo := new(MockEmployeeRepository)
	mockEmployeeRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewSkillService(new(MockSkillRepository), mockEmployeeRepo, noopCache{})
	_, err := service.Assign(context.Background(), 99, 1, 0, "BEGINNER")

	assert.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestSkillService_Remove(t *testing.T) {
	mockSkillRepo := new(MockSkillRepository)
	mockSkillRepo.On("FindAssignment", mock.Anything, uint(10), uint(1)).Return(&model.EmployeeSkill{EmployeeID: 10, SkillID: 1}, nil)
	mockSkillRepo.On("DeleteAssignment", mock.Anything, uint(10), uint(1)).Return(nil)

	mockCache := new(MockCache)
	mockCache.On("Delete", mock.Anything, "employee:10:profile").Return(nil)
	mockCache.On("Delete", mock.Anything, "workload:summary").Return(nil)

	service := NewSkillService(mockSkillRepo, new(MockEmployeeRepository), mockCache)

	assert.NoError(t, service.Remove(context.Background(), 10, 1))
	mockSkillRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestSkillService_ListForEmployee(t *testing.T) {
	mockSkillRepo := new(MockSkillRepository)
	mockEmployeeRepo := new(MockEmployeeRepository)

	mockEmployeeRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Employee{ID: 10}, nil)
	mockSkillRepo.On("ListAssignments", mock.Anything, uint(10)).Return([]model.EmployeeSkill{
		{EmployeeID: 10, SkillID: 1, Proficiency: "ADVANCED"},
		{EmployeeID: 10, SkillID: 2, Proficiency: "BEGINNER"},
	}, nil)

	service := NewSkillService(mockSkillRepo, mockEmployeeRepo, noopCache{})
	assignments, err := service.ListForEmployee(context.Background(), 10)

	assert.NoError(t, err)
	assert.Len(t, assignments, 2)
	mockSkillRepo.AssertExpectations(t)
}

func TestSkillService_ListForEmployee_UnknownEmployee(t *testing.T) {
	mockEmployeeRepo := new(MockEmployeeRepository)
	mockEmployeeRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewSkillService(new(MockSkillRepository), mockEmployeeRepo, noopCache{})
	_, err := service.ListForEmployee(context.Background(), 99)

	assert.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestSkillService_Remove_Absent(t *testing.T) {
	mockSkillRepo := new(MockSkillRepository)
	mockSkillRepo.On("FindAssignment", mock.Anything, uint(10), uint(1)).Return(nil, gorm.ErrRecordNotFound)

	service := NewSkillService(mockSkillRepo, new(MockEmployeeRepository), noopCache{})
	err := service.Remove(context.Background(), 10, 1)

	assert.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	mockSkillRepo.AssertNotCalled(t, "DeleteAssignment", mock.Anything, mock.Anything, mock.Anything)
}
