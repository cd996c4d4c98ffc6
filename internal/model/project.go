package model

import "time"

// Priority ranks projects and tasks.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// ProjectStatus tracks a project through its lifecycle.
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "PLANNING"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusOnHold     ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
)

// Project is the unit of work. Creator is provenance; Owner is the authority
// for mutation. Both are set to the creating employee at creation and can
// diverge if ownership transfer is added later.
type Project struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Title       string        `json:"title" gorm:"size:255;not null"`
	Description string        `json:"description" gorm:"type:text"`
	Priority    Priority      `json:"priority" gorm:"size:20;default:'MEDIUM'"`
	Status      ProjectStatus `json:"status" gorm:"size:20;default:'PLANNING';index"`
	StartDate   time.Time     `json:"start_date"`
	Deadline    time.Time     `json:"deadline"`
	CreatorID   uint          `json:"creator_id" gorm:"not null;index"`
	OwnerID     uint          `json:"owner_id" gorm:"not null;index"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	Creator    *Employee         `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Owner      *Employee         `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Tasks      []Task            `json:"tasks,omitempty" gorm:"foreignKey:ProjectID"`
	Milestones []Milestone       `json:"milestones,omitempty" gorm:"foreignKey:ProjectID"`
	Members    []ProjectEmployee `json:"members,omitempty" gorm:"foreignKey:ProjectID"`
}

// ProjectEmployee is project membership, distinct from task assignment.
// The (project_id, employee_id) pair is unique. Bulk member replacement
// recreates rows, so JoinedAt resets for surviving members.
type ProjectEmployee struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProjectID  uint      `json:"project_id" gorm:"uniqueIndex:idx_project_employee;not null"`
	EmployeeID uint      `json:"employee_id" gorm:"uniqueIndex:idx_project_employee;not null"`
	JoinedAt   time.Time `json:"joined_at"`

	// Relations
	Employee Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}
