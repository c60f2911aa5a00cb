package repository

import (
	"errors"

	"hospital-ops-backend/internal/models"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// GetAllAppointments retrieves all appointments
func (r *AppointmentRepository) GetAllAppointments() ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Order("id ASC").Find(&appointments).Error
	return appointments, err
}

// GetAppointmentByID retrieves an appointment by ID
func (r *AppointmentRepository) GetAppointmentByID(id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.Where("id = ?", id).First(&appt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("appointment not found")
		}
		return nil, err
	}
	return &appt, nil
}

// CreateAppointment inserts a new appointment and returns the stored record
func (r *AppointmentRepository) CreateAppointment(appt *models.Appointment) error {
	return r.db.Create(appt).Error
}

// SaveAppointment replaces the full appointment record
func (r *AppointmentRepository) SaveAppointment(appt *models.Appointment) error {
	return r.db.Save(appt).Error
}
