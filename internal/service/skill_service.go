package service

import (
	"context"

	"gorm.io/gorm"

	errs "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// SkillService handles the skill catalog and employee skill assignments.
// Assignment checks existence before insert so a duplicate surfaces as a
// conflict instead of a driver unique-key failure; removal checks first and
// reports not-found for an absent assignment.
type SkillService interface {
	Create(ctx context.Context, name string) (*model.Skill, error)
	List(ctx context.Context) ([]model.Skill, error)
	ListForEmployee(ctx context.Context, employeeID uint) ([]model.EmployeeSkill, error)
	Assign(ctx context.Context, employeeID, skillID uint, yearsExperience int, proficiency string) (*model.EmployeeSkill, error)
	Remove(ctx context.Context, employeeID, skillID uint) error
}

type skillService struct {
	skillRepo    repository.SkillRepository
	employeeRepo repository.EmployeeRepository
	cache        Cache
}

// NewSkillService creates a new skill service.
func NewSkillService(skillRepo repository.SkillRepository, employeeRepo repository.EmployeeRepository, cache Cache) SkillService {
	return &skillService{
		skillRepo:    skillRepo,
		employeeRepo: employeeRepo,
		cache:        cache,
	}
}

func (s *skillService) Create(ctx context.Context, name string) (*model.Skill, error) {
	if _, err := s.skillRepo.FindByName(ctx, name); err == nil {
		return nil, errs.Conflict("skill already exists")
	} else if err != gorm.ErrRecordNotFound {
		return nil, errs.Internal(err)
	}

	skill := &model.Skill{Name: name}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, errs.Internal(err)
	}
	return skill, nil
}

func (s *skillService) List(ctx context.Context) ([]model.Skill, error) {
	skills, err := s.skillRepo.List(ctx)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return skills, nil
}

func (s *skillService) ListForEmployee(ctx context.Context, employeeID uint) ([]model.EmployeeSkill, error) {
	if _, err := s.employeeRepo.FindByID(ctx, employeeID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("employee not found")
		}
		return nil, errs.Internal(err)
	}
	assignments, err := s.skillRepo.ListAssignments(ctx, employeeID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return assignments, nil
}

func (s *skillService) Assign(ctx context.Context, employeeID, skillID uint, yearsExperience int, proficiency string) (*model.EmployeeSkill, error) {
	if _, err := s.employeeRepo.FindByID(ctx, employeeID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("employee not found")
		}
		return nil, errs.Internal(err)
	}
	if _, err := s.skillRepo.FindByID(ctx, skillID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("skill not found")
		}
		return nil, errs.Internal(err)
	}

	if _, err := s.skillRepo.FindAssignment(ctx, employeeID, skillID); err == nil {
		return nil, errs.Conflict("skill already assigned to employee")
	} else if err != gorm.ErrRecordNotFound {
		return nil, errs.Internal(err)
	}

	assignment := &model.EmployeeSkill{
		EmployeeID:      employeeID,
		SkillID:         skillID,
		YearsExperience: yearsExperience,
		Proficiency:     proficiency,
	}
	if err := s.skillRepo.CreateAssignment(ctx, assignment); err != nil {
		return nil, errs.Internal(err)
	}

	s.invalidate(ctx, employeeID)
	return assignment, nil
}

func (s *skillService) Remove(ctx context.Context, employeeID, skillID uint) error {
	if _, err := s.skillRepo.FindAssignment(ctx, employeeID, skillID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.NotFound("skill assignment not found")
		}
		return errs.Internal(err)
	}

	if err := s.skillRepo.DeleteAssignment(ctx, employeeID, skillID); err != nil {
		return errs.Internal(err)
	}

	s.invalidate(ctx, employeeID)
	return nil
}

// invalidate drops the cached views that embed the employee's skills: the
// profile aggregate and the team workload report.
func (s *skillService) invalidate(ctx context.Context, employeeID uint) {
	_ = s.cache.Delete(ctx, employeeProfileCacheKey(employeeID))
	_ = s.cache.Delete(ctx, workloadSummaryCacheKey)
}
