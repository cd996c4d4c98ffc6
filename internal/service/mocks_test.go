package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateWithEmployee(ctx context.Context, user *model.User, employee *model.Employee) error {
	args := m.Called(ctx, user, employee)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockEmployeeRepository is a mock implementation of repository.EmployeeRepository.
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uint) (*model.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByIDWithSkills(ctx context.Context, id uint) (*model.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByUserID(ctx context.Context, userID uint) (*model.Employee, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListBySkillName(ctx context.Context, skillName string) ([]model.Employee, error) {
	args := m.Called(ctx, skillName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

// MockTaskRepository is a mock implementation of repository.TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByIDWithProject(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListActiveByEmployee(ctx context.Context, employeeID uint) ([]model.Task, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) CountActiveByEmployee(ctx context.Context, employeeID uint) (int64, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) CountByEmployee(ctx context.Context, employeeID uint) (int64, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) CountByEmployeeAndStatus(ctx context.Context, employeeID uint, status model.TaskStatus) (int64, error) {
	args := m.Called(ctx, employeeID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) SumActiveEstimatedHours(ctx context.Context, employeeID uint) (decimal.Decimal, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockProjectRepository is a mock implementation of repository.ProjectRepository.
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) CreateWithMembers(ctx context.Context, project *model.Project, memberIDs []uint) error {
	args := m.Called(ctx, project, memberIDs)
	return args.Error(0)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByIDWithDetails(ctx context.Context, id uint) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) List(ctx context.Context, filter repository.ProjectFilter) ([]model.Project, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) ListOwnedByEmployee(ctx context.Context, employeeID uint) ([]model.Project, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) ListMemberProjects(ctx context.Context, employeeID uint) ([]model.Project, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) CountOwnedByEmployee(ctx context.Context, employeeID uint) (int64, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) CountMembershipsByEmployee(ctx context.Context, employeeID uint) (int64, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) DeleteCascade(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) ReplaceMembers(ctx context.Context, projectID uint, memberIDs []uint) error {
	args := m.Called(ctx, projectID, memberIDs)
	return args.Error(0)
}

func (m *MockProjectRepository) FindMember(ctx context.Context, projectID, employeeID uint) (*model.ProjectEmployee, error) {
	args := m.Called(ctx, projectID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectEmployee), args.Error(1)
}

func (m *MockProjectRepository) CreateMember(ctx context.Context, member *model.ProjectEmployee) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockProjectRepository) DeleteMember(ctx context.Context, projectID, employeeID uint) error {
	args := m.Called(ctx, projectID, employeeID)
	return args.Error(0)
}

func (m *MockProjectRepository) ListMembers(ctx context.Context, projectID uint) ([]model.ProjectEmployee, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectEmployee), args.Error(1)
}

// MockSkillRepository is a mock implementation of repository.SkillRepository.
type MockSkillRepository struct {
	mock.Mock
}

func (m *MockSkillRepository) Create(ctx context.Context, skill *model.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func (m *MockSkillRepository) FindByID(ctx context.Context, id uint) (*model.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Skill), args.Error(1)
}

func (m *MockSkillRepository) FindByName(ctx context.Context, name string) (*model.Skill, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Skill), args.Error(1)
}

func (m *MockSkillRepository) List(ctx context.Context) ([]model.Skill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Skill), args.Error(1)
}

func (m *MockSkillRepository) FindAssignment(ctx context.Context, employeeID, skillID uint) (*model.EmployeeSkill, error) {
	args := m.Called(ctx, employeeID, skillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EmployeeSkill), args.Error(1)
}

func (m *MockSkillRepository) CreateAssignment(ctx context.Context, assignment *model.EmployeeSkill) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockSkillRepository) DeleteAssignment(ctx context.Context, employeeID, skillID uint) error {
	args := m.Called(ctx, employeeID, skillID)
	return args.Error(0)
}

func (m *MockSkillRepository) ListAssignments(ctx context.Context, employeeID uint) ([]model.EmployeeSkill, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EmployeeSkill), args.Error(1)
}

// MockMilestoneRepository is a mock implementation of repository.MilestoneRepository.
type MockMilestoneRepository struct {
	mock.Mock
}

func (m *MockMilestoneRepository) Create(ctx context.Context, milestone *model.Milestone) error {
	args := m.Called(ctx, milestone)
	return args.Error(0)
}

func (m *MockMilestoneRepository) FindByID(ctx context.Context, id uint) (*model.Milestone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Milestone), args.Error(1)
}

func (m *MockMilestoneRepository) ListByProject(ctx context.Context, projectID uint) ([]model.Milestone, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Milestone), args.Error(1)
}

func (m *MockMilestoneRepository) Update(ctx context.Context, milestone *model.Milestone) error {
	args := m.Called(ctx, milestone)
	return args.Error(0)
}

func (m *MockMilestoneRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// noopCache satisfies Cache for tests that don't assert cache traffic.
type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]byte, error)           { return nil, nil }
func (noopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (noopCache) Delete(context.Context, string) error                  { return nil }

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
