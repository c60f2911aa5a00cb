package models

// Appointment statuses
const (
	AppointmentConfirmed = "Confirmed"
	AppointmentCancelled = "Cancelled"
)

// Appointment represents the appointments table
type Appointment struct {
	ID          string `gorm:"primaryKey;size:50" json:"id"`
	DoctorName  string `gorm:"size:100;not null" json:"doctor_name"`
	PatientName string `gorm:"size:100;not null" json:"patient_name"`
	Time        string `gorm:"size:50;not null" json:"time"`
	Reason      string `gorm:"size:255" json:"reason"`
	Status      string `gorm:"type:enum('Confirmed','Cancelled');default:'Confirmed'" json:"status"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}
