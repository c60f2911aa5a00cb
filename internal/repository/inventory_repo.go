package repository

import (
	"errors"

	"hospital-ops-backend/internal/models"

	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetAllItems retrieves all inventory items
func (r *InventoryRepository) GetAllItems() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.db.Order("id ASC").Find(&items).Error
	return items, err
}

// GetItemByID retrieves an inventory item by ID
func (r *InventoryRepository) GetItemByID(id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("inventory item not found")
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem creates a new inventory item
func (r *InventoryRepository) CreateItem(item *models.InventoryItem) error {
	return r.db.Create(item).Error
}

// SaveItem replaces the full inventory record
func (r *InventoryRepository) SaveItem(item *models.InventoryItem) error {
	return r.db.Save(item).Error
}

// UpdateStock updates only the stock level for an item
func (r *InventoryRepository) UpdateStock(id string, currentStock int) error {
	return r.db.Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Update("current_stock", currentStock).Error
}
