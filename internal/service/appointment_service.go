package service

import (
	"fmt"
	"log"

	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/repository"
	"hospital-ops-backend/internal/state"

	"github.com/google/uuid"
)

// AppointmentService manages appointment bookings. Updates prioritize
// responsiveness: the local snapshot changes first and a failed sync is
// logged, not surfaced, leaving the local value authoritative until the next
// external push overwrites it.
type AppointmentService struct {
	store           *state.Store
	appointmentRepo *repository.AppointmentRepository
}

func NewAppointmentService(store *state.Store, appointmentRepo *repository.AppointmentRepository) *AppointmentService {
	return &AppointmentService{
		store:           store,
		appointmentRepo: appointmentRepo,
	}
}

func (s *AppointmentService) online() bool {
	return s.appointmentRepo != nil
}

// Book creates an appointment. Online, the stored record (with its confirmed
// ID) is applied to the snapshot immediately rather than waiting for the
// change feed, so there is no visible gap.
func (s *AppointmentService) Book(appt models.Appointment) (models.Appointment, error) {
	if appt.ID == "" {
		appt.ID = fmt.Sprintf("APT-%s", uuid.New().String()[:8])
	}
	if appt.Status == "" {
		appt.Status = models.AppointmentConfirmed
	}

	if s.online() {
		if err := s.appointmentRepo.CreateAppointment(&appt); err != nil {
			log.Printf("Warning: appointment insert failed, falling back to local state: %v", err)
		}
	}

	s.store.AddAppointment(appt)
	return appt, nil
}

// Update replaces an appointment record, optimistically local-first
func (s *AppointmentService) Update(appt models.Appointment) (models.Appointment, error) {
	if err := s.store.UpdateAppointment(appt); err != nil {
		return models.Appointment{}, err
	}

	if s.online() {
		if err := s.appointmentRepo.SaveAppointment(&appt); err != nil {
			log.Printf("Warning: appointment update sync failed, keeping local state: %v", err)
		}
	}
	return appt, nil
}

// ToggleStatus flips an appointment between Confirmed and Cancelled
func (s *AppointmentService) ToggleStatus(id string) (models.Appointment, error) {
	for _, a := range s.store.Snapshot().Appointments {
		if a.ID == id {
			if a.Status == models.AppointmentConfirmed {
				a.Status = models.AppointmentCancelled
			} else {
				a.Status = models.AppointmentConfirmed
			}
			return s.Update(a)
		}
	}
	return models.Appointment{}, state.ErrAppointmentNotFound
}
