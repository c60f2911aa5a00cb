package models

// Staff roles
const (
	RoleNurse      = "Nurse"
	RoleDoctor     = "Doctor"
	RoleSpecialist = "Specialist"
	RoleAdmin      = "Admin"
)

// Staff represents the staff table
type Staff struct {
	ID                  string `gorm:"primaryKey;size:50" json:"id"`
	Name                string `gorm:"size:100;not null" json:"name"`
	Role                string `gorm:"type:enum('Nurse','Doctor','Specialist','Admin');not null" json:"role"`
	SkillLevel          int    `gorm:"not null" json:"skill_level"`                    // 1-10
	CurrentFatigueScore int    `gorm:"default:0" json:"current_fatigue_score"`        // 0-100, 100 is exhausted
	MaxHoursShift       int    `gorm:"default:12" json:"max_hours_shift"`
	CurrentHoursWorked  int    `gorm:"default:0" json:"current_hours_worked"`
}

// TableName specifies the table name for Staff model
func (Staff) TableName() string {
	return "staff"
}
