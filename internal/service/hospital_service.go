package service

import (
	"fmt"
	"log"

	"hospital-ops-backend/internal/core"
	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/repository"
	"hospital-ops-backend/internal/state"

	"github.com/google/uuid"
)

// HospitalService handles patient intake, bed allocation and treatment intents.
// Every mutation is applied to the in-memory store first so the dashboard stays
// responsive, then synced to the database on a best-effort basis. A failed or
// absent database leaves the snapshot authoritative (offline demo mode).
type HospitalService struct {
	store         *state.Store
	patientRepo   *repository.PatientRepository
	bedRepo       *repository.BedRepository
	inventoryRepo *repository.InventoryRepository
	auditRepo     *repository.AuditRepository
}

func NewHospitalService(
	store *state.Store,
	patientRepo *repository.PatientRepository,
	bedRepo *repository.BedRepository,
	inventoryRepo *repository.InventoryRepository,
	auditRepo *repository.AuditRepository,
) *HospitalService {
	return &HospitalService{
		store:         store,
		patientRepo:   patientRepo,
		bedRepo:       bedRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
	}
}

func (s *HospitalService) online() bool {
	return s.patientRepo != nil
}

// Snapshot returns the current hospital state
func (s *HospitalService) Snapshot() state.HospitalState {
	return s.store.Snapshot()
}

// SuggestBed runs the allocation engine against the current snapshot without
// mutating anything. An empty result means no suitable bed; the caller may
// escalate to the advisory collaborator or keep the patient Waiting.
func (s *HospitalService) SuggestBed(patientID string) (string, error) {
	snap := s.store.Snapshot()
	for _, p := range snap.Patients {
		if p.ID == patientID {
			return core.AllocateBed(p, snap.Beds), nil
		}
	}
	return "", state.ErrPatientNotFound
}

// ClassifyBeds returns the advisory match classification of every bed for the
// patient under consideration (or the neutral classification when patientID is
// empty).
func (s *HospitalService) ClassifyBeds(patientID string) (map[string]string, error) {
	snap := s.store.Snapshot()

	var patient *models.Patient
	if patientID != "" {
		for i := range snap.Patients {
			if snap.Patients[i].ID == patientID {
				patient = &snap.Patients[i]
				break
			}
		}
		if patient == nil {
			return nil, state.ErrPatientNotFound
		}
	}

	matches := make(map[string]string, len(snap.Beds))
	for _, b := range snap.Beds {
		matches[b.ID] = core.ClassifyBedMatch(b, patient)
	}
	return matches, nil
}

// AdmitPatient assigns a patient to a bed. When bedID is empty the allocation
// engine picks one. The admission consumes inventory (surgery for High and
// Critical acuity) and all changed records are synced to the database.
func (s *HospitalService) AdmitPatient(patientID, bedID string, userID uint) (state.AdmissionResult, error) {
	if bedID == "" {
		suggested, err := s.SuggestBed(patientID)
		if err != nil {
			return state.AdmissionResult{}, err
		}
		if suggested == "" {
			return state.AdmissionResult{}, fmt.Errorf("no suitable bed available for patient %s", patientID)
		}
		bedID = suggested
	}

	result, err := s.store.AdmitPatient(patientID, bedID)
	if err != nil {
		return state.AdmissionResult{}, err
	}

	if s.online() {
		if err := s.patientRepo.UpdatePatient(patientID, map[string]interface{}{
			"status":          models.PatientAdmitted,
			"assigned_bed_id": bedID,
		}); err != nil {
			log.Printf("Warning: patient sync failed, keeping local state: %v", err)
		}
		if err := s.bedRepo.UpdateBed(bedID, map[string]interface{}{
			"is_occupied":         true,
			"assigned_patient_id": patientID,
		}); err != nil {
			log.Printf("Warning: bed sync failed, keeping local state: %v", err)
		}
		if result.PreviousBed != nil {
			if err := s.bedRepo.UpdateBed(result.PreviousBed.ID, map[string]interface{}{
				"is_occupied":         false,
				"assigned_patient_id": nil,
			}); err != nil {
				log.Printf("Warning: bed release sync failed, keeping local state: %v", err)
			}
		}
		for _, item := range result.Inventory {
			if err := s.inventoryRepo.UpdateStock(item.ID, item.CurrentStock); err != nil {
				log.Printf("Warning: inventory sync failed for %s: %v", item.ID, err)
			}
		}
	}

	s.audit(userID, "patient_admission", fmt.Sprintf("Admitted patient %s to bed %s", patientID, bedID))
	return result, nil
}

// AddPatient registers a new arrival. Caller-supplied IDs are kept; a missing
// ID gets a generated one.
func (s *HospitalService) AddPatient(patient models.Patient, userID uint) (models.Patient, error) {
	if patient.ID == "" {
		patient.ID = fmt.Sprintf("P-%s", uuid.New().String()[:8])
	}
	if patient.Status == "" {
		patient.Status = models.PatientWaiting
	}

	if err := s.store.AddPatient(patient); err != nil {
		return models.Patient{}, err
	}

	if s.online() {
		if err := s.patientRepo.CreatePatient(&patient); err != nil {
			log.Printf("Warning: patient insert failed, keeping local state: %v", err)
		}
	}

	s.audit(userID, "patient_arrival", fmt.Sprintf("Registered patient %s (%s)", patient.ID, patient.Name))
	return patient, nil
}

// AddPatients bulk-registers surge arrivals as Waiting
func (s *HospitalService) AddPatients(patients []models.Patient, userID uint) ([]models.Patient, error) {
	added := make([]models.Patient, 0, len(patients))
	for _, p := range patients {
		if p.ID == "" {
			p.ID = fmt.Sprintf("SURGE-%s", uuid.New().String()[:8])
		}
		p.Status = models.PatientWaiting
		if err := s.store.AddPatient(p); err != nil {
			return added, err
		}
		added = append(added, p)
	}

	if s.online() {
		if err := s.patientRepo.CreatePatients(added); err != nil {
			log.Printf("Warning: surge bulk insert failed, keeping local state: %v", err)
		}
	}

	s.audit(userID, "surge_admission", fmt.Sprintf("Registered %d surge patients", len(added)))
	return added, nil
}

// AddBed creates a new bed with a generated BED-NN identifier
func (s *HospitalService) AddBed(ward string, skillLevel int, userID uint) (models.Bed, error) {
	bed := s.store.AddBed(ward, skillLevel)

	if s.online() {
		if err := s.bedRepo.CreateBed(&bed); err != nil {
			log.Printf("Warning: bed insert failed, keeping local state: %v", err)
		}
	}

	s.audit(userID, "bed_created", fmt.Sprintf("Created bed %s in ward %s (skill %d)", bed.ID, ward, skillLevel))
	return bed, nil
}

// ToggleReservation flips a bed's reserved flag
func (s *HospitalService) ToggleReservation(bedID string, userID uint) (models.Bed, error) {
	bed, err := s.store.ToggleReservation(bedID)
	if err != nil {
		return models.Bed{}, err
	}

	if s.online() {
		if err := s.bedRepo.UpdateBed(bedID, map[string]interface{}{
			"is_reserved": bed.IsReserved,
		}); err != nil {
			log.Printf("Warning: reservation sync failed, keeping local state: %v", err)
		}
	}

	s.audit(userID, "bed_reservation", fmt.Sprintf("Set bed %s reserved=%t", bedID, bed.IsReserved))
	return bed, nil
}

// AssignStaff sets or clears a patient's assigned staff member
func (s *HospitalService) AssignStaff(patientID string, staffID *string, userID uint) (models.Patient, error) {
	patient, err := s.store.AssignStaff(patientID, staffID)
	if err != nil {
		return models.Patient{}, err
	}

	if s.online() {
		if err := s.patientRepo.UpdatePatient(patientID, map[string]interface{}{
			"assigned_staff_id": staffID,
		}); err != nil {
			log.Printf("Warning: staff assignment sync failed, keeping local state: %v", err)
		}
	}

	return patient, nil
}

// RecordTreatment appends a treatment event to the patient history
func (s *HospitalService) RecordTreatment(patientID, treatment, notes, newDetailedCondition string, userID uint) (models.Patient, error) {
	patient, err := s.store.RecordTreatment(patientID, treatment, notes, newDetailedCondition)
	if err != nil {
		return models.Patient{}, err
	}

	if s.online() {
		updates := map[string]interface{}{"history": patient.History}
		if newDetailedCondition != "" {
			updates["detailed_condition"] = newDetailedCondition
		}
		if err := s.patientRepo.UpdatePatient(patientID, updates); err != nil {
			log.Printf("Warning: treatment sync failed, keeping local state: %v", err)
		}
	}

	s.audit(userID, "patient_treatment", fmt.Sprintf("Recorded treatment for patient %s: %s", patientID, treatment))
	return patient, nil
}

func (s *HospitalService) audit(userID uint, action, details string) {
	if s.auditRepo == nil {
		return
	}
	userIDPtr := &userID
	if userID == 0 {
		userIDPtr = nil
	}
	_ = s.auditRepo.CreateAuditLog(userIDPtr, action, details)
}
