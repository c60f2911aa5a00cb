package models

// Acuity levels, ordinal 1-4
const (
	AcuityLow      = 1
	AcuityMedium   = 2
	AcuityHigh     = 3
	AcuityCritical = 4
)

// Patient lifecycle statuses
const (
	PatientWaiting    = "Waiting"
	PatientAdmitted   = "Admitted"
	PatientDischarged = "Discharged"
)

// MedicalEvent is one entry in a patient's treatment history (newest first)
type MedicalEvent struct {
	Date      string `json:"date"`
	Condition string `json:"condition"`
	Treatment string `json:"treatment"`
	Notes     string `json:"notes,omitempty"`
}

// Vitals is an optional snapshot of the patient's vital signs
type Vitals struct {
	HR    *int     `json:"hr,omitempty"`
	BPSys *int     `json:"bp_sys,omitempty"`
	BPDia *int     `json:"bp_dia,omitempty"`
	SpO2  *int     `json:"spo2,omitempty"`
	RR    *int     `json:"rr,omitempty"`
	Temp  *float64 `json:"temp,omitempty"`
}

// TriageEntry records one advisory triage assessment
type TriageEntry struct {
	Score              int      `json:"score"`
	Severity           string   `json:"severity"`
	RecommendedActions []string `json:"recommended_actions"`
	Timestamp          string   `json:"timestamp"`
}

// RiskProfile holds advisory risk predictions for a patient
type RiskProfile struct {
	SepsisRisk        int    `json:"sepsis_risk"`
	DeteriorationRisk int    `json:"deterioration_risk"`
	Rationale         string `json:"rationale"`
}

// Patient represents the patients table
type Patient struct {
	ID                string         `gorm:"primaryKey;size:50" json:"id"`
	Name              string         `gorm:"size:100;not null" json:"name"`
	AcuityScore       int            `gorm:"not null" json:"acuity_score"`
	Condition         string         `gorm:"size:255" json:"condition"`
	DetailedCondition string         `gorm:"type:text" json:"detailed_condition"`
	History           []MedicalEvent `gorm:"serializer:json" json:"history"`
	Status            string         `gorm:"type:enum('Waiting','Admitted','Discharged');default:'Waiting'" json:"status"`
	AssignedBedID     *string        `gorm:"size:50" json:"assigned_bed_id"`
	AssignedStaffID   *string        `gorm:"size:50" json:"assigned_staff_id"`
	Vitals            *Vitals        `gorm:"serializer:json" json:"vitals,omitempty"`
	TriageScore       *int           `json:"triage_score,omitempty"`
	TriageHistory     []TriageEntry  `gorm:"serializer:json" json:"triage_history,omitempty"`
	RiskProfile       *RiskProfile   `gorm:"serializer:json" json:"risk_profile,omitempty"`
}

// TableName specifies the table name for Patient model
func (Patient) TableName() string {
	return "patients"
}

// ValidAcuity reports whether score is one of the four ordinal acuity levels
func ValidAcuity(score int) bool {
	return score >= AcuityLow && score <= AcuityCritical
}
