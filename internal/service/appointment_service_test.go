package service

import (
	"math/rand"
	"testing"

	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOfflineAppointmentService() *AppointmentService {
	store := state.NewStore(rand.New(rand.NewSource(1)))
	store.Replace(state.DemoState())
	return NewAppointmentService(store, nil)
}

func TestBookAppointment(t *testing.T) {
	svc := newOfflineAppointmentService()

	appt, err := svc.Book(models.Appointment{
		DoctorName:  "Dr. House",
		PatientName: "Jane Doe",
		Time:        "2026-09-01 10:00",
		Reason:      "Follow-up",
	})
	require.NoError(t, err)

	assert.Contains(t, appt.ID, "APT-")
	assert.Equal(t, models.AppointmentConfirmed, appt.Status)

	snap := svc.store.Snapshot()
	require.Len(t, snap.Appointments, 1)
	assert.Equal(t, appt.ID, snap.Appointments[0].ID)
}

func TestToggleAppointmentStatus(t *testing.T) {
	svc := newOfflineAppointmentService()

	appt, err := svc.Book(models.Appointment{DoctorName: "Dr. House", PatientName: "Jane", Time: "10:00"})
	require.NoError(t, err)

	toggled, err := svc.ToggleStatus(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, toggled.Status)

	toggled, err = svc.ToggleStatus(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentConfirmed, toggled.Status)
}

func TestToggleUnknownAppointment(t *testing.T) {
	svc := newOfflineAppointmentService()

	_, err := svc.ToggleStatus("APT-404")
	assert.ErrorIs(t, err, state.ErrAppointmentNotFound)
}

func TestUpdateAppointmentUnknownID(t *testing.T) {
	svc := newOfflineAppointmentService()

	_, err := svc.Update(models.Appointment{ID: "APT-404"})
	assert.ErrorIs(t, err, state.ErrAppointmentNotFound)
}
