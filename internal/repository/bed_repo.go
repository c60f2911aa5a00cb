package repository

import (
	"errors"

	"hospital-ops-backend/internal/models"

	"gorm.io/gorm"
)

type BedRepository struct {
	db *gorm.DB
}

func NewBedRepo(db *gorm.DB) *BedRepository {
	return &BedRepository{db: db}
}

// GetAllBeds retrieves all beds ordered by ID
func (r *BedRepository) GetAllBeds() ([]models.Bed, error) {
	var beds []models.Bed
	err := r.db.Order("id ASC").Find(&beds).Error
	return beds, err
}

// GetBedByID retrieves a bed by ID
func (r *BedRepository) GetBedByID(id string) (*models.Bed, error) {
	var bed models.Bed
	err := r.db.Where("id = ?", id).First(&bed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("bed not found")
		}
		return nil, err
	}
	return &bed, nil
}

// CreateBed creates a new bed record
func (r *BedRepository) CreateBed(bed *models.Bed) error {
	return r.db.Create(bed).Error
}

// UpdateBed updates specific bed fields
func (r *BedRepository) UpdateBed(id string, updates map[string]interface{}) error {
	return r.db.Model(&models.Bed{}).
		Where("id = ?", id).
		Updates(updates).Error
}
