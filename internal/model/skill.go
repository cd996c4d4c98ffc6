package model

import "time"

// Skill is a named capability employees can hold.
type Skill struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:100;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmployeeSkill joins an employee to a skill with experience metadata.
// The (employee_id, skill_id) pair is unique.
type EmployeeSkill struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	EmployeeID      uint      `json:"employee_id" gorm:"uniqueIndex:idx_employee_skill;not null"`
	SkillID         uint      `json:"skill_id" gorm:"uniqueIndex:idx_employee_skill;not null"`
	YearsExperience int       `json:"years_experience" gorm:"default:0"`
	Proficiency     string    `json:"proficiency,omitempty" gorm:"size:50"`
	CreatedAt       time.Time `json:"created_at"`

	// Relations
	Skill Skill `json:"skill,omitempty" gorm:"foreignKey:SkillID"`
}
