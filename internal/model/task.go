package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskStatus tracks a task through its lifecycle.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusInReview   TaskStatus = "IN_REVIEW"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
)

// ActiveTaskStatuses are the statuses counted against an employee's capacity.
// COMPLETED and BLOCKED tasks never count.
func ActiveTaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview}
}

// Task is the unit of tracked work. EmployeeID nil means unassigned.
type Task struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Title          string          `json:"title" gorm:"size:255;not null"`
	Description    string          `json:"description" gorm:"type:text"`
	Priority       Priority        `json:"priority" gorm:"size:20;default:'MEDIUM'"`
	Status         TaskStatus      `json:"status" gorm:"size:20;default:'TODO';index"`
	EstimatedHours decimal.Decimal `json:"estimated_hours" gorm:"type:decimal(6,2);default:0"`
	StartDate      *time.Time      `json:"start_date,omitempty"`
	EndDate        *time.Time      `json:"end_date,omitempty"`
	ProjectID      uint            `json:"project_id" gorm:"not null;index"`
	EmployeeID     *uint           `json:"employee_id,omitempty" gorm:"index"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Relations
	Project  *Project  `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}
