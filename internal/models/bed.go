package models

// Bed represents the beds table
// IDs follow the BED-NN convention with a monotonically allocated numeric suffix
type Bed struct {
	ID                 string  `gorm:"primaryKey;size:50" json:"id"`
	Ward               string  `gorm:"size:50;not null" json:"ward"`
	IsOccupied         bool    `gorm:"default:false" json:"is_occupied"`
	IsReserved         bool    `gorm:"default:false" json:"is_reserved"`
	RequiredSkillLevel int     `gorm:"not null" json:"required_skill_level"` // 1-10 scale
	AssignedPatientID  *string `gorm:"size:50" json:"assigned_patient_id"`
	AssignedStaffID    *string `gorm:"size:50" json:"assigned_staff_id"`
}

// TableName specifies the table name for Bed model
func (Bed) TableName() string {
	return "beds"
}

// IsFree reports whether the bed can accept a new allocation.
// Occupied takes precedence over reserved, but either flag blocks allocation.
func (b Bed) IsFree() bool {
	return !b.IsOccupied && !b.IsReserved
}
