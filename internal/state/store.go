package state

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"hospital-ops-backend/internal/core"
	"hospital-ops-backend/internal/models"
)

var (
	ErrPatientNotFound     = errors.New("patient not found")
	ErrBedNotFound         = errors.New("bed not found")
	ErrStaffNotFound       = errors.New("staff member not found")
	ErrItemNotFound        = errors.New("inventory item not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrBedUnavailable      = errors.New("bed is occupied or reserved")
	ErrInvalidAcuity       = errors.New("acuity score must be between 1 and 4")
)

// AdmissionResult carries the records an admission changed, so callers can
// persist exactly those to the external store. PreviousBed is set when a
// re-admission released the patient's prior bed.
type AdmissionResult struct {
	Patient     models.Patient
	Bed         models.Bed
	PreviousBed *models.Bed
	Inventory   []models.InventoryItem
}

// Store is the reconciliation layer: every mutation intent goes through one of
// its entry points and is applied as an atomic snapshot update under the lock.
// Two admissions racing against the same bed serialize here locally, but two
// application instances can still both succeed before the external store
// resolves the conflict. That risk is inherent to the eventually-consistent
// backend and is accepted, not worked around.
type Store struct {
	mu    sync.RWMutex
	state HospitalState
	rng   *rand.Rand
}

// NewStore creates a store with an empty snapshot. The rng drives the
// stochastic inventory consumption and is injectable for tests.
func NewStore(rng *rand.Rand) *Store {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Store{rng: rng}
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() HospitalState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Replace swaps in a complete snapshot, e.g. after a full refetch from the
// external store
func (s *Store) Replace(st HospitalState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

// AdmitPatient assigns a patient to a bed and applies the implied inventory
// consumption. High and Critical acuity imply surgery; anything lower is a
// routine procedure. The bed must be free and the patient must exist.
func (s *Store) AdmitPatient(patientID, bedID string) (AdmissionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pi := indexByID(s.state.Patients, patientID, patientKey)
	if pi < 0 {
		return AdmissionResult{}, ErrPatientNotFound
	}
	bi := indexByID(s.state.Beds, bedID, bedKey)
	if bi < 0 {
		return AdmissionResult{}, ErrBedNotFound
	}
	if !s.state.Beds[bi].IsFree() {
		return AdmissionResult{}, ErrBedUnavailable
	}

	next := s.state.clone()

	patient := next.Patients[pi]

	// Re-admission: release the prior bed so it never keeps a dangling
	// patient reference
	var previousBed *models.Bed
	if patient.AssignedBedID != nil && *patient.AssignedBedID != bedID {
		if prev := indexByID(next.Beds, *patient.AssignedBedID, bedKey); prev >= 0 {
			released := next.Beds[prev]
			released.IsOccupied = false
			released.AssignedPatientID = nil
			next.Beds[prev] = released
			previousBed = &released
		}
	}

	patient.Status = models.PatientAdmitted
	patient.AssignedBedID = &bedID
	next.Patients[pi] = patient

	bed := next.Beds[bi]
	bed.IsOccupied = true
	bed.AssignedPatientID = &patientID
	next.Beds[bi] = bed

	procedure := core.ProcedureRoutine
	if patient.AcuityScore >= models.AcuityHigh {
		procedure = core.ProcedureSurgery
	}
	next.Inventory = core.ApplyProcedureConsumption(next.Inventory, procedure, s.rng)

	s.state = next
	return AdmissionResult{Patient: patient, Bed: bed, PreviousBed: previousBed, Inventory: next.Inventory}, nil
}

// AddPatient appends a new patient to the snapshot
func (s *Store) AddPatient(p models.Patient) error {
	if !models.ValidAcuity(p.AcuityScore) {
		return ErrInvalidAcuity
	}
	if p.Status == "" {
		p.Status = models.PatientWaiting
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.clone()
	next.Patients = append(next.Patients, p)
	s.state = next
	return nil
}

// AddBed creates a bed with the next BED-NN identifier and returns it
func (s *Store) AddBed(ward string, skillLevel int) models.Bed {
	s.mu.Lock()
	defer s.mu.Unlock()

	bed := models.Bed{
		ID:                 core.GenerateBedID(s.state.Beds),
		Ward:               ward,
		RequiredSkillLevel: skillLevel,
	}
	next := s.state.clone()
	next.Beds = append(next.Beds, bed)
	s.state = next
	return bed
}

// ToggleReservation flips a bed's reserved flag and returns the updated bed.
// No constraint checking: a reserved bed may also be occupied.
func (s *Store) ToggleReservation(bedID string) (models.Bed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bi := indexByID(s.state.Beds, bedID, bedKey)
	if bi < 0 {
		return models.Bed{}, ErrBedNotFound
	}

	next := s.state.clone()
	bed := next.Beds[bi]
	bed.IsReserved = !bed.IsReserved
	next.Beds[bi] = bed
	s.state = next
	return bed, nil
}

// AssignStaff sets or clears (nil) a patient's assigned staff member
func (s *Store) AssignStaff(patientID string, staffID *string) (models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pi := indexByID(s.state.Patients, patientID, patientKey)
	if pi < 0 {
		return models.Patient{}, ErrPatientNotFound
	}
	if staffID != nil {
		if indexByID(s.state.Staff, *staffID, staffKey) < 0 {
			return models.Patient{}, ErrStaffNotFound
		}
	}

	next := s.state.clone()
	patient := next.Patients[pi]
	patient.AssignedStaffID = staffID
	next.Patients[pi] = patient
	s.state = next
	return patient, nil
}

// RecordTreatment prepends a medical event to the patient's history (newest
// first) and optionally rewrites the detailed condition
func (s *Store) RecordTreatment(patientID, treatment, notes, newDetailedCondition string) (models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pi := indexByID(s.state.Patients, patientID, patientKey)
	if pi < 0 {
		return models.Patient{}, ErrPatientNotFound
	}

	next := s.state.clone()
	patient := next.Patients[pi]

	event := models.MedicalEvent{
		Date:      time.Now().Format("2006-01-02"),
		Condition: patient.Condition,
		Treatment: treatment,
		Notes:     notes,
	}
	patient.History = append([]models.MedicalEvent{event}, patient.History...)
	if newDetailedCondition != "" {
		patient.DetailedCondition = newDetailedCondition
	}

	next.Patients[pi] = patient
	s.state = next
	return patient, nil
}

// AddStaff appends a staff member to the snapshot
func (s *Store) AddStaff(member models.Staff) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.clone()
	next.Staff = append(next.Staff, member)
	s.state = next
}

// UpdateStaff replaces the staff member matching the record's ID
func (s *Store) UpdateStaff(member models.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	si := indexByID(s.state.Staff, member.ID, staffKey)
	if si < 0 {
		return ErrStaffNotFound
	}
	next := s.state.clone()
	next.Staff[si] = member
	s.state = next
	return nil
}

// AddInventoryItem appends an inventory item to the snapshot
func (s *Store) AddInventoryItem(item models.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.clone()
	next.Inventory = append(next.Inventory, item)
	s.state = next
}

// UpdateInventoryItem replaces the item matching the record's ID
func (s *Store) UpdateInventoryItem(item models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ii := indexByID(s.state.Inventory, item.ID, itemKey)
	if ii < 0 {
		return ErrItemNotFound
	}
	next := s.state.clone()
	next.Inventory[ii] = item
	s.state = next
	return nil
}

// AddAppointment appends an appointment to the snapshot
func (s *Store) AddAppointment(appt models.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.clone()
	next.Appointments = append(next.Appointments, appt)
	s.state = next
}

// UpdateAppointment replaces the appointment matching the record's ID
func (s *Store) UpdateAppointment(appt models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ai := indexByID(s.state.Appointments, appt.ID, apptKey)
	if ai < 0 {
		return ErrAppointmentNotFound
	}
	next := s.state.clone()
	next.Appointments[ai] = appt
	s.state = next
	return nil
}

// AddAlert appends an operator-facing alert message
func (s *Store) AddAlert(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.clone()
	next.Alerts = append(next.Alerts, message)
	s.state = next
}

func indexByID[T any](list []T, id string, key func(T) string) int {
	for i, item := range list {
		if key(item) == id {
			return i
		}
	}
	return -1
}

func patientKey(p models.Patient) string       { return p.ID }
func bedKey(b models.Bed) string               { return b.ID }
func staffKey(s models.Staff) string           { return s.ID }
func itemKey(i models.InventoryItem) string    { return i.ID }
func apptKey(a models.Appointment) string      { return a.ID }
