package model

import "time"

// Milestone marks a dated checkpoint within a project.
type Milestone struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	DueDate   time.Time `json:"due_date"`
	Completed bool      `json:"completed" gorm:"default:false"`
	ProjectID uint      `json:"project_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
