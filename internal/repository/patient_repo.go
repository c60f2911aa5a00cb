package repository

import (
	"errors"

	"hospital-ops-backend/internal/models"

	"gorm.io/gorm"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepo(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// GetAllPatients retrieves all patients
func (r *PatientRepository) GetAllPatients() ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.Order("id ASC").Find(&patients).Error
	return patients, err
}

// GetPatientByID retrieves a patient by ID
func (r *PatientRepository) GetPatientByID(id string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("patient not found")
		}
		return nil, err
	}
	return &patient, nil
}

// CreatePatient creates a new patient record
func (r *PatientRepository) CreatePatient(patient *models.Patient) error {
	return r.db.Create(patient).Error
}

// CreatePatients bulk-creates patient records (surge admissions)
func (r *PatientRepository) CreatePatients(patients []models.Patient) error {
	if len(patients) == 0 {
		return nil
	}
	return r.db.Create(&patients).Error
}

// UpdatePatient updates specific patient fields
func (r *PatientRepository) UpdatePatient(id string, updates map[string]interface{}) error {
	return r.db.Model(&models.Patient{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// SavePatient replaces the full patient record
func (r *PatientRepository) SavePatient(patient *models.Patient) error {
	return r.db.Save(patient).Error
}
