package state

import (
	"math/rand"
	"testing"

	"hospital-ops-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(rand.New(rand.NewSource(7)))
	s.Replace(DemoState())
	return s
}

func TestAdmitPatientUpdatesBothSides(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddPatient(models.Patient{ID: "P-1", Name: "John Doe", AcuityScore: models.AcuityCritical}))

	result, err := s.AdmitPatient("P-1", "BED-01")
	require.NoError(t, err)

	assert.Equal(t, models.PatientAdmitted, result.Patient.Status)
	require.NotNil(t, result.Patient.AssignedBedID)
	assert.Equal(t, "BED-01", *result.Patient.AssignedBedID)

	assert.True(t, result.Bed.IsOccupied)
	require.NotNil(t, result.Bed.AssignedPatientID)
	assert.Equal(t, "P-1", *result.Bed.AssignedPatientID)

	snap := s.Snapshot()
	assert.Equal(t, models.PatientAdmitted, snap.Patients[0].Status)
	assert.True(t, snap.Beds[0].IsOccupied)
}

func TestAdmitPatientConsumesInventory(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddPatient(models.Patient{ID: "P-1", AcuityScore: models.AcuityCritical}))

	before := s.Snapshot().Inventory
	_, err := s.AdmitPatient("P-1", "BED-01")
	require.NoError(t, err)
	after := s.Snapshot().Inventory

	// Critical admission implies surgery: every item with a usage rate drops
	for i := range before {
		if before[i].UsageRatePerSurgery > 0 {
			assert.Less(t, after[i].CurrentStock, before[i].CurrentStock, after[i].ItemName)
		}
		assert.GreaterOrEqual(t, after[i].CurrentStock, 0)
	}
}

func TestAdmitPatientRejectsOccupiedBed(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddPatient(models.Patient{ID: "P-1", AcuityScore: models.AcuityCritical}))
	require.NoError(t, s.AddPatient(models.Patient{ID: "P-2", AcuityScore: models.AcuityCritical}))

	_, err := s.AdmitPatient("P-1", "BED-01")
	require.NoError(t, err)

	_, err = s.AdmitPatient("P-2", "BED-01")
	assert.ErrorIs(t, err, ErrBedUnavailable)
}

func TestAdmitPatientRejectsReservedBed(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddPatient(models.Patient{ID: "P-1", AcuityScore: models.AcuityLow}))

	_, err := s.ToggleReservation("BED-11")
	require.NoError(t, err)

	_, err = s.AdmitPatient("P-1", "BED-11")
	assert.ErrorIs(t, err, ErrBedUnavailable)
}

func TestAdmitPatientUnknownIDs(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AdmitPatient("P-404", "BED-01")
	assert.ErrorIs(t, err, ErrPatientNotFound)

	require.NoError(t, s.AddPatient(models.Patient{ID: "P-1", AcuityScore: models.AcuityLow}))
	_, err = s.AdmitPatient("P-1", "BED-404")
	assert.ErrorIs(t, err, ErrBedNotFound)
}

func TestAddPatientValidatesAcuity(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.AddPatient(models.Patient{ID: "P-1", AcuityScore: 5}), ErrInvalidAcuity)
	assert.ErrorIs(t, s.AddPatient(models.Patient{ID: "P-1", AcuityScore: 0}), ErrInvalidAcuity)
}

func TestAddPatientDefaultsToWaiting(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddPatient(models.Patient{ID: "P-1", AcuityScore: models.AcuityMedium}))
	assert.Equal(t, models.PatientWaiting, s.Snapshot().Patients[0].Status)
}

func TestAddBedGeneratesNextID(t *testing.T) {
	s := newTestStore(t)

	bed := s.AddBed("ICU", 10)
	assert.Equal(t, "BED-21", bed.ID)
	assert.Equal(t, "ICU", bed.Ward)
	assert.Equal(t, 10, bed.RequiredSkillLevel)

	bed = s.AddBed("General", 2)
	assert.Equal(t, "BED-22", bed.ID)
}

func TestToggleReservationFlips(t *testing.T) {
	s := newTestStore(t)

	bed, err := s.ToggleReservation("BED-05")
	require.NoError(t, err)
	assert.True(t, bed.IsReserved)

	bed, err = s.ToggleReservation("BED-05")
	require.NoError(t, err)
	assert.False(t, bed.IsReserved)
}

func TestAssignAndUnassignStaff(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddPatient(models.Patient{ID: "P-1", AcuityScore: models.AcuityMedium}))

	staffID := "S-001"
	patient, err := s.AssignStaff("P-1", &staffID)
	require.NoError(t, err)
	require.NotNil(t, patient.AssignedStaffID)
	assert.Equal(t, "S-001", *patient.AssignedStaffID)

	patient, err = s.AssignStaff("P-1", nil)
	require.NoError(t, err)
	assert.Nil(t, patient.AssignedStaffID)
}

func TestAssignStaffUnknownStaff(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddPatient(models.Patient{ID: "P-1", AcuityScore: models.AcuityMedium}))

	staffID := "S-404"
	_, err := s.AssignStaff("P-1", &staffID)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestRecordTreatmentPrependsHistory(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddPatient(models.Patient{
		ID:          "P-1",
		AcuityScore: models.AcuityHigh,
		Condition:   "Fracture",
		History:     []models.MedicalEvent{{Treatment: "X-Ray"}},
	}))

	patient, err := s.RecordTreatment("P-1", "Cast applied", "Left arm", "")
	require.NoError(t, err)

	require.Len(t, patient.History, 2)
	assert.Equal(t, "Cast applied", patient.History[0].Treatment)
	assert.Equal(t, "Fracture", patient.History[0].Condition)
	assert.Equal(t, "X-Ray", patient.History[1].Treatment)
}

func TestRecordTreatmentUpdatesDetailedCondition(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddPatient(models.Patient{ID: "P-1", AcuityScore: models.AcuityHigh, DetailedCondition: "old"}))

	patient, err := s.RecordTreatment("P-1", "Surgery", "", "post-op recovery")
	require.NoError(t, err)
	assert.Equal(t, "post-op recovery", patient.DetailedCondition)

	// Empty detailed condition leaves the previous value alone
	patient, err = s.RecordTreatment("P-1", "Check-up", "", "")
	require.NoError(t, err)
	assert.Equal(t, "post-op recovery", patient.DetailedCondition)
}

func TestUpdateStaffReplacesRecord(t *testing.T) {
	s := newTestStore(t)

	updated := models.Staff{ID: "S-002", Name: "Nurse Joy", Role: models.RoleNurse, SkillLevel: 8, CurrentFatigueScore: 50, MaxHoursShift: 12, CurrentHoursWorked: 9}
	require.NoError(t, s.UpdateStaff(updated))

	snap := s.Snapshot()
	for _, m := range snap.Staff {
		if m.ID == "S-002" {
			assert.Equal(t, 8, m.SkillLevel)
			assert.Equal(t, 50, m.CurrentFatigueScore)
		}
	}

	assert.ErrorIs(t, s.UpdateStaff(models.Staff{ID: "S-404"}), ErrStaffNotFound)
}

func TestAppointmentLifecycle(t *testing.T) {
	s := newTestStore(t)

	appt := models.Appointment{ID: "APT-1", DoctorName: "Dr. House", PatientName: "John", Time: "2:00 PM", Status: models.AppointmentConfirmed}
	s.AddAppointment(appt)

	appt.Status = models.AppointmentCancelled
	require.NoError(t, s.UpdateAppointment(appt))

	snap := s.Snapshot()
	require.Len(t, snap.Appointments, 1)
	assert.Equal(t, models.AppointmentCancelled, snap.Appointments[0].Status)

	assert.ErrorIs(t, s.UpdateAppointment(models.Appointment{ID: "APT-404"}), ErrAppointmentNotFound)
}

func TestSnapshotIsIsolatedCopy(t *testing.T) {
	s := newTestStore(t)

	snap := s.Snapshot()
	snap.Beds[0].IsOccupied = true
	snap.Alerts = append(snap.Alerts, "tampered")

	fresh := s.Snapshot()
	assert.False(t, fresh.Beds[0].IsOccupied)
	assert.Len(t, fresh.Alerts, 1)
}
