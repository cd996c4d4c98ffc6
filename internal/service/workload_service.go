package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	errs "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const workloadCacheTTL = 30 * time.Second

// EmployeeWorkload is the derived capacity view of one employee, computed from
// live task rows, never from the stored current_workload counter.
type EmployeeWorkload struct {
	EmployeeID          uint                     `json:"employee_id"`
	Name                string                   `json:"name"`
	ActiveTasks         int                      `json:"active_tasks"`
	MaxTasks            int                      `json:"max_tasks"`
	CapacityUsedPercent float64                  `json:"capacity_used_percent"`
	Status              model.AvailabilityStatus `json:"status"`
	IsAvailable         bool                     `json:"is_available"`
	IsBooked            bool                     `json:"is_booked"`
	EstimatedHours      decimal.Decimal          `json:"estimated_hours"`
	Skills              []model.EmployeeSkill    `json:"skills,omitempty"`
}

// WorkloadSummary counts employees per availability bucket.
type WorkloadSummary struct {
	Available int `json:"available"`
	Light     int `json:"light"`
	Moderate  int `json:"moderate"`
	Heavy     int `json:"heavy"`
	Total     int `json:"total"`
}

// TeamWorkloadReport is the team-wide workload view.
type TeamWorkloadReport struct {
	Employees []EmployeeWorkload `json:"employees"`
	Summary   WorkloadSummary    `json:"summary"`
}

// CapacityUsedPercent returns active/max as a percentage. Not clamped: an
// over-assigned employee reads above 100.
func CapacityUsedPercent(activeTasks, maxTasks int) float64 {
	if maxTasks <= 0 {
		if activeTasks == 0 {
			return 0
		}
		return float64(activeTasks) * 100
	}
	return float64(activeTasks) / float64(maxTasks) * 100
}

// BucketFor maps capacity usage to an availability bucket.
func BucketFor(capacityUsedPercent float64) model.AvailabilityStatus {
	switch {
	case capacityUsedPercent == 0:
		return model.AvailabilityAvailable
	case capacityUsedPercent <= 50:
		return model.AvailabilityLight
	case capacityUsedPercent <= 80:
		return model.AvailabilityModerate
	default:
		return model.AvailabilityHeavy
	}
}

// WorkloadService computes derived capacity metrics.
type WorkloadService interface {
	EmployeeWorkload(ctx context.Context, employeeID uint) (*EmployeeWorkload, error)
	TeamWorkload(ctx context.Context) (*TeamWorkloadReport, error)
	AvailableEmployees(ctx context.Context, skillRequired string, maxTasksOverride *int) ([]EmployeeWorkload, error)
}

type workloadService struct {
	employeeRepo repository.EmployeeRepository
	taskRepo     repository.TaskRepository
	cache        Cache
}

// NewWorkloadService creates a new workload aggregator.
func NewWorkloadService(employeeRepo repository.EmployeeRepository, taskRepo repository.TaskRepository, cache Cache) WorkloadService {
	return &workloadService{
		employeeRepo: employeeRepo,
		taskRepo:     taskRepo,
		cache:        cache,
	}
}

// EmployeeWorkload computes the capacity view for one employee.
func (s *workloadService) EmployeeWorkload(ctx context.Context, employeeID uint) (*EmployeeWorkload, error) {
	employee, err := s.employeeRepo.FindByIDWithSkills(ctx, employeeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("employee not found")
		}
		return nil, errs.Internal(err)
	}
	workload, err := s.compute(ctx, employee, employee.MaxTasks)
	if err != nil {
		return nil, err
	}
	return &workload, nil
}

// TeamWorkload reports every employee's workload plus per-bucket counts.
// The report is cached briefly and invalidated on task mutations.
func (s *workloadService) TeamWorkload(ctx context.Context) (*TeamWorkloadReport, error) {
	if data, _ := s.cache.Get(ctx, workloadSummaryCacheKey); data != nil {
		var cached TeamWorkloadReport
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, errs.Internal(err)
	}

	report := &TeamWorkloadReport{Employees: make([]EmployeeWorkload, 0, len(employees))}
	for i := range employees {
		workload, err := s.compute(ctx, &employees[i], employees[i].MaxTasks)
		if err != nil {
			return nil, err
		}
		report.Employees = append(report.Employees, workload)

		switch workload.Status {
		case model.AvailabilityAvailable:
			report.Summary.Available++
		case model.AvailabilityLight:
			report.Summary.Light++
		case model.AvailabilityModerate:
			report.Summary.Moderate++
		case model.AvailabilityHeavy:
			report.Summary.Heavy++
		}
	}
	report.Summary.Total = len(employees)

	if payload, err := json.Marshal(report); err == nil {
		_ = s.cache.Set(ctx, workloadSummaryCacheKey, payload, workloadCacheTTL)
	}
	return report, nil
}

// AvailableEmployees filters to employees with spare capacity, least busy
// first; ties break by ascending employee id. A maxTasks override replaces
// each employee's own limit for the availability cut.
func (s *workloadService) AvailableEmployees(ctx context.Context, skillRequired string, maxTasksOverride *int) ([]EmployeeWorkload, error) {
	var (
		employees []model.Employee
		err       error
	)
	if skillRequired != "" {
		employees, err = s.employeeRepo.ListBySkillName(ctx, skillRequired)
	} else {
		employees, err = s.employeeRepo.List(ctx)
	}
	if err != nil {
		return nil, errs.Internal(err)
	}

	available := make([]EmployeeWorkload, 0, len(employees))
	for i := range employees {
		maxTasks := employees[i].MaxTasks
		if maxTasksOverride != nil {
			maxTasks = *maxTasksOverride
		}
		workload, err := s.compute(ctx, &employees[i], maxTasks)
		if err != nil {
			return nil, err
		}
		if !workload.IsAvailable {
			continue
		}
		available = append(available, workload)
	}

	sort.Slice(available, func(i, j int) bool {
		if available[i].ActiveTasks != available[j].ActiveTasks {
			return available[i].ActiveTasks < available[j].ActiveTasks
		}
		return available[i].EmployeeID < available[j].EmployeeID
	})
	return available, nil
}

func (s *workloadService) compute(ctx context.Context, employee *model.Employee, maxTasks int) (EmployeeWorkload, error) {
	active, err := s.taskRepo.CountActiveByEmployee(ctx, employee.ID)
	if err != nil {
		return EmployeeWorkload{}, errs.Internal(err)
	}
	hours, err := s.taskRepo.SumActiveEstimatedHours(ctx, employee.ID)
	if err != nil {
		return EmployeeWorkload{}, errs.Internal(err)
	}

	percent := CapacityUsedPercent(int(active), maxTasks)
	return EmployeeWorkload{
		EmployeeID:          employee.ID,
		Name:                employee.Name,
		ActiveTasks:         int(active),
		MaxTasks:            maxTasks,
		CapacityUsedPercent: percent,
		Status:              BucketFor(percent),
		IsAvailable:         int(active) < maxTasks,
		IsBooked:            active > 0,
		EstimatedHours:      hours,
		Skills:              employee.Skills,
	}, nil
}
