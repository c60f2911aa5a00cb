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

// InventoryService manages stock records and reorder analysis
type InventoryService struct {
	store         *state.Store
	inventoryRepo *repository.InventoryRepository
}

func NewInventoryService(store *state.Store, inventoryRepo *repository.InventoryRepository) *InventoryService {
	return &InventoryService{
		store:         store,
		inventoryRepo: inventoryRepo,
	}
}

func (s *InventoryService) online() bool {
	return s.inventoryRepo != nil
}

// AddItem registers a new inventory item
func (s *InventoryService) AddItem(item models.InventoryItem) (models.InventoryItem, error) {
	if item.ID == "" {
		item.ID = fmt.Sprintf("INV-%s", uuid.New().String()[:8])
	}

	s.store.AddInventoryItem(item)

	if s.online() {
		if err := s.inventoryRepo.CreateItem(&item); err != nil {
			log.Printf("Warning: inventory insert failed, keeping local state: %v", err)
		}
	}
	return item, nil
}

// UpdateItem replaces an inventory record
func (s *InventoryService) UpdateItem(item models.InventoryItem) (models.InventoryItem, error) {
	if err := s.store.UpdateInventoryItem(item); err != nil {
		return models.InventoryItem{}, err
	}

	if s.online() {
		if err := s.inventoryRepo.SaveItem(&item); err != nil {
			log.Printf("Warning: inventory update sync failed, keeping local state: %v", err)
		}
	}
	return item, nil
}

// LowStockItems returns the items at or below their reorder threshold
func (s *InventoryService) LowStockItems() []models.InventoryItem {
	var low []models.InventoryItem
	for _, item := range s.store.Snapshot().Inventory {
		if item.CurrentStock <= item.ReorderThreshold {
			low = append(low, item)
		}
	}
	return low
}

// ReorderSuggestion is one item's reorder recommendation
type ReorderSuggestion struct {
	ItemName     string `json:"item_name"`
	SuggestedQty int    `json:"suggested_qty"`
	Urgency      string `json:"urgency"`
	Reason       string `json:"reason"`
}

// ReorderSuggestions computes deterministic reorder recommendations for every
// low-stock item. The advisory collaborator may refine these; this path never
// depends on it.
func (s *InventoryService) ReorderSuggestions() []ReorderSuggestion {
	var suggestions []ReorderSuggestion
	for _, item := range s.LowStockItems() {
		need := core.ClassifyReorderNeed(item)
		if need == nil {
			continue
		}
		suggestions = append(suggestions, ReorderSuggestion{
			ItemName:     item.ItemName,
			SuggestedQty: need.SuggestedQty,
			Urgency:      need.Urgency,
			Reason:       need.Reason,
		})
	}
	return suggestions
}
