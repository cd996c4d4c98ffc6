package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"taskhub/internal/authz"
	errs "taskhub/internal/errors"
	"taskhub/internal/model"
)

func uintPtr(v uint) *uint { return &v }

func TestTaskService_Create(t *testing.T) {
	mockTaskRepo := new(MockTaskRepository)
	mockProjectRepo := new(MockProjectRepository)
	mockEmployeeRepo := new(MockEmployeeRepository)

	mockProjectRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Project{ID: 1, OwnerID: 10}, nil)
	mockEmployeeRepo.On("FindByID", mock.Anything, uint(20)).Return(&model.Employee{ID: 20}, nil)
	mockTaskRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	service := NewTaskService(mockTaskRepo, mockProjectRepo, mockEmployeeRepo, noopCache{})
	task, err := service.Create(context.Background(), otherActor, 1, CreateTaskInput{
		Title:          "Write docs",
		EstimatedHours: decimal.NewFromInt(4),
		AssigneeID:     uintPtr(20),
	})

	assert.NoError(t, err)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Equal(t, model.TaskStatusTodo, task.Status)
	assert.Equal(t, uint(1), task.ProjectID)
	assert.Equal(t, uint(20), *task.EmployeeID)
	mockTaskRepo.AssertExpectations(t)
}

func TestTaskService_Create_AnyAuthenticatedUserMayCreate(t *testing.T) {
	// Task creation is not restricted to the project owner.
	mockTaskRepo := new(MockTaskRepository)
	mockProjectRepo := new(MockProjectRepository)

	mockProjectRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Project{ID: 1, OwnerID: 10}, nil)
	mockTaskRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	service := NewTaskService(mockTaskRepo, mockProjectRepo, new(MockEmployeeRepository), noopCache{})
	task, err := service.Create(context.Background(), otherActor, 1, CreateTaskInput{Title: "Unassigned"})

	assert.NoError(t, err)
	assert.Nil(t, task.EmployeeID)
}

func TestTaskService_Create_UnauthenticatedDenied(t *testing.T) {
	service := NewTaskService(new(MockTaskRepository), new(MockProjectRepository), new(MockEmployeeRepository), noopCache{})

	_, err := service.Create(context.Background(), authz.Actor{}, 1, CreateTaskInput{Title: "Nope"})

	assert.Error(t, err)
	assert.Equal(t, errs.KindAuthorization, errs.KindOf(err))
}

func TestTaskService_Create_UnknownProject(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockProjectRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewTaskService(new(MockTaskRepository), mockProjectRepo, new(MockEmployeeRepository), noopCache{})
	_, err := service.Create(context.Background(), otherActor, 99, CreateTaskInput{Title: "Orphan"})

	assert.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestTaskService_Create_UnknownAssignee(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockEmployeeRepo := new(MockEmployeeRepository)

	mockProjectRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Project{ID: 1}, nil)
	mockEmployeeRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewTaskService(new(MockTaskRepository), mockProjectRepo, mockEmployeeRepo, noopCache{})
	_, err := service.Create(context.Background(), otherActor, 1, CreateTaskInput{
		Title:      "Ghost assignee",
		AssigneeID: uintPtr(99),
	})

	assert.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestTaskService_Update_ClearAssignee(t *testing.T) {
	mockTaskRepo := new(MockTaskRepository)
	mockTaskRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Task{ID: 5, ProjectID: 1, EmployeeID: uintPtr(20)}, nil)
	mockTaskRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	service := NewTaskService(mockTaskRepo, new(MockProjectRepository), new(MockEmployeeRepository), noopCache{})
	task, err := service.Update(context.Background(), otherActor, 5, UpdateTaskInput{
		AssigneeSet: true,
		AssigneeID:  nil,
	})

	assert.NoError(t, err)
	assert.Nil(t, task.EmployeeID)
}

func TestTaskService_Update_AssigneeAbsentFromPatchIsKept(t *testing.T) {
	mockTaskRepo := new(MockTaskRepository)
	mockTaskRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Task{ID: 5, ProjectID: 1, EmployeeID: uintPtr(20)}, nil)
	mockTaskRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	service := NewTaskService(mockTaskRepo, new(MockProjectRepository), new(MockEmployeeRepository), noopCache{})
	status := model.TaskStatusInProgress
	task, err := service.Update(context.Background(), otherActor, 5, UpdateTaskInput{Status: &status})

	assert.NoError(t, err)
	assert.Equal(t, model.TaskStatusInProgress, task.Status)
	assert.Equal(t, uint(20), *task.EmployeeID)
}

func TestTaskService_Update_ReassignSameEmployee(t *testing.T) {
	mockTaskRepo := new(MockTaskRepository)
	mockEmployeeRepo := new(MockEmployeeRepository)

	mockTaskRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Task{ID: 5, ProjectID: 1, EmployeeID: uintPtr(20)}, nil)
	mockEmployeeRepo.On("FindByID", mock.Anything, uint(20)).Return(&model.Employee{ID: 20}, nil)
	mockTaskRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	service := NewTaskService(mockTaskRepo, new(MockProjectRepository), mockEmployeeRepo, noopCache{})
	task, err := service.Update(context.Background(), otherActor, 5, UpdateTaskInput{
		AssigneeSet: true,
		AssigneeID:  uintPtr(20),
	})

	// Re-assigning the current assignee is accepted and keeps exactly one assignee.
	assert.NoError(t, err)
	assert.Equal(t, uint(20), *task.EmployeeID)
}

func TestTaskService_Delete_ProjectOwnerOnly(t *testing.T) {
	task := &model.Task{
		ID:        5,
		ProjectID: 1,
		Project:   &model.Project{ID: 1, OwnerID: 10},
	}

	t.Run("owner may delete", func(t *testing.T) {
		mockTaskRepo := new(MockTaskRepository)
		mockTaskRepo.On("FindByIDWithProject", mock.Anything, uint(5)).Return(task, nil)
		mockTaskRepo.On("Delete", mock.Anything, uint(5)).Return(nil)

		service := NewTaskService(mockTaskRepo, new(MockProjectRepository), new(MockEmployeeRepository), noopCache{})
		assert.NoError(t, service.Delete(context.Background(), ownerActor, 5))
		mockTaskRepo.AssertExpectations(t)
	})

	t.Run("non-owner is denied", func(t *testing.T) {
		mockTaskRepo := new(MockTaskRepository)
		mockTaskRepo.On("FindByIDWithProject", mock.Anything, uint(5)).Return(task, nil)

		service := NewTaskService(mockTaskRepo, new(MockProjectRepository), new(MockEmployeeRepository), noopCache{})
		err := service.Delete(context.Background(), otherActor, 5)

		assert.Error(t, err)
		assert.Equal(t, errs.KindAuthorization, errs.KindOf(err))
		mockTaskRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestTaskService_Update_InvalidDate(t *testing.T) {
	mockTaskRepo := new(MockTaskRepository)
	mockTaskRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Task{ID: 5, ProjectID: 1}, nil)

	service := NewTaskService(mockTaskRepo, new(MockProjectRepository), new(MockEmployeeRepository), noopCache{})
	bad := "yesterday"
	_, err := service.Update(context.Background(), otherActor, 5, UpdateTaskInput{StartDate: &bad})

	assert.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}
