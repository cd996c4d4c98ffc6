package model

import "time"

// AvailabilityStatus buckets an employee's live capacity usage.
type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "AVAILABLE"
	AvailabilityLight     AvailabilityStatus = "LIGHT"
	AvailabilityModerate  AvailabilityStatus = "MODERATE"
	AvailabilityHeavy     AvailabilityStatus = "HEAVY"
)

// DefaultMaxTasks is the capacity assigned to a new employee profile.
const DefaultMaxTasks = 5

// Employee is the work profile wrapping a User for assignment and ownership
// purposes. CurrentWorkload is written at creation but not kept in sync with
// task counts; capacity metrics always come from live task queries.
type Employee struct {
	ID              uint               `json:"id" gorm:"primaryKey"`
	UserID          uint               `json:"user_id" gorm:"uniqueIndex;not null"`
	Name            string             `json:"name" gorm:"size:255;not null"`
	Contact         string             `json:"contact" gorm:"size:255"`
	MaxTasks        int                `json:"max_tasks" gorm:"default:5"`
	CurrentWorkload int                `json:"current_workload" gorm:"default:0"`
	Availability    AvailabilityStatus `json:"availability" gorm:"size:20;default:'AVAILABLE'"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`

	// Relations
	Skills        []EmployeeSkill   `json:"skills,omitempty" gorm:"foreignKey:EmployeeID"`
	Tasks         []Task            `json:"tasks,omitempty" gorm:"foreignKey:EmployeeID"`
	OwnedProjects []Project         `json:"owned_projects,omitempty" gorm:"foreignKey:OwnerID"`
	Memberships   []ProjectEmployee `json:"memberships,omitempty" gorm:"foreignKey:EmployeeID"`
}
