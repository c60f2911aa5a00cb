package repository

import (
	"errors"

	"hospital-ops-backend/internal/models"

	"gorm.io/gorm"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepo(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// GetAllStaff retrieves all staff members
func (r *StaffRepository) GetAllStaff() ([]models.Staff, error) {
	var staff []models.Staff
	err := r.db.Order("id ASC").Find(&staff).Error
	return staff, err
}

// GetStaffByID retrieves a staff member by ID
func (r *StaffRepository) GetStaffByID(id string) (*models.Staff, error) {
	var member models.Staff
	err := r.db.Where("id = ?", id).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("staff member not found")
		}
		return nil, err
	}
	return &member, nil
}

// CreateStaff creates a new staff record
func (r *StaffRepository) CreateStaff(member *models.Staff) error {
	return r.db.Create(member).Error
}

// SaveStaff replaces the full staff record
func (r *StaffRepository) SaveStaff(member *models.Staff) error {
	return r.db.Save(member).Error
}
