package state

import (
	"fmt"

	"hospital-ops-backend/internal/models"
)

// HospitalState is the single authoritative in-memory snapshot. Records are
// treated as immutable values: mutations replace whole records, never edit
// them in place.
type HospitalState struct {
	Patients     []models.Patient       `json:"patients"`
	Beds         []models.Bed           `json:"beds"`
	Staff        []models.Staff         `json:"staff"`
	Inventory    []models.InventoryItem `json:"inventory"`
	Appointments []models.Appointment   `json:"appointments"`
	Alerts       []string               `json:"alerts"`
}

func (s HospitalState) clone() HospitalState {
	return HospitalState{
		Patients:     append([]models.Patient(nil), s.Patients...),
		Beds:         append([]models.Bed(nil), s.Beds...),
		Staff:        append([]models.Staff(nil), s.Staff...),
		Inventory:    append([]models.InventoryItem(nil), s.Inventory...),
		Appointments: append([]models.Appointment(nil), s.Appointments...),
		Alerts:       append([]string(nil), s.Alerts...),
	}
}

// DemoState builds the default offline configuration: 20 beds split across
// ICU/Trauma/General wards, a small roster and a starter inventory. Used when
// the database is unreachable so the dashboard stays fully functional.
func DemoState() HospitalState {
	beds := make([]models.Bed, 0, 20)
	for num := 1; num <= 20; num++ {
		ward := "General"
		skill := 3
		if num <= 4 {
			ward = "ICU"
			skill = 9
		} else if num <= 10 {
			ward = "Trauma"
			skill = 6
		}
		beds = append(beds, models.Bed{
			ID:                 fmt.Sprintf("BED-%02d", num),
			Ward:               ward,
			RequiredSkillLevel: skill,
		})
	}

	staff := []models.Staff{
		{ID: "S-001", Name: "Dr. Peter Parker", Role: models.RoleDoctor, SkillLevel: 9, CurrentFatigueScore: 20, MaxHoursShift: 12, CurrentHoursWorked: 4},
		{ID: "S-002", Name: "Nurse Joy", Role: models.RoleNurse, SkillLevel: 7, CurrentFatigueScore: 45, MaxHoursShift: 12, CurrentHoursWorked: 8},
		{ID: "S-003", Name: "Dr. Stephen Strange", Role: models.RoleSpecialist, SkillLevel: 10, CurrentFatigueScore: 10, MaxHoursShift: 10, CurrentHoursWorked: 2},
		{ID: "S-004", Name: "Dr. House", Role: models.RoleDoctor, SkillLevel: 10, CurrentFatigueScore: 85, MaxHoursShift: 12, CurrentHoursWorked: 14},
	}

	inventory := []models.InventoryItem{
		{ID: "INV-1", ItemName: "Morphine 5mg", Category: models.CategoryPharma, CurrentStock: 50, ReorderThreshold: 10, UsageRatePerSurgery: 1},
		{ID: "INV-2", ItemName: "Surgical Kit (Trauma)", Category: models.CategorySurgical, CurrentStock: 8, ReorderThreshold: 5, UsageRatePerSurgery: 1},
		{ID: "INV-3", ItemName: "Saline IV 1L", Category: models.CategoryConsumable, CurrentStock: 120, ReorderThreshold: 20, UsageRatePerSurgery: 2},
		{ID: "INV-4", ItemName: "O Negative Blood", Category: models.CategoryConsumable, CurrentStock: 3, ReorderThreshold: 5, UsageRatePerSurgery: 1},
	}

	return HospitalState{
		Beds:      beds,
		Staff:     staff,
		Inventory: inventory,
		Alerts:    []string{"System Online. Default bed configuration loaded."},
	}
}
