package handler

import (
	"net/http"

	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/service"
	"hospital-ops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventoryService *service.InventoryService
}

func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

type InventoryItemRequest struct {
	ID                  string `json:"id"`
	ItemName            string `json:"item_name" binding:"required"`
	Category            string `json:"category" binding:"required,oneof=Consumable Surgical Pharma"`
	CurrentStock        int    `json:"current_stock" binding:"min=0"`
	ReorderThreshold    int    `json:"reorder_threshold" binding:"required,min=0"`
	UsageRatePerSurgery int    `json:"usage_rate_per_surgery" binding:"min=0"`
}

func (r InventoryItemRequest) toModel() models.InventoryItem {
	return models.InventoryItem{
		ID:                  r.ID,
		ItemName:            r.ItemName,
		Category:            r.Category,
		CurrentStock:        r.CurrentStock,
		ReorderThreshold:    r.ReorderThreshold,
		UsageRatePerSurgery: r.UsageRatePerSurgery,
	}
}

// CreateItem registers a new inventory item
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.inventoryService.AddItem(req.toModel())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, item)
}

// UpdateItem replaces an inventory record
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	var req InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	item := req.toModel()
	item.ID = c.Param("id")

	updated, err := h.inventoryService.UpdateItem(item)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	utils.SuccessResponse(c, updated)
}

// GetLowStock returns the items at or below their reorder threshold
func (h *InventoryHandler) GetLowStock(c *gin.Context) {
	items := h.inventoryService.LowStockItems()

	utils.SuccessResponse(c, gin.H{
		"items": items,
		"count": len(items),
	})
}

// GetReorderSuggestions returns deterministic reorder recommendations
func (h *InventoryHandler) GetReorderSuggestions(c *gin.Context) {
	suggestions := h.inventoryService.ReorderSuggestions()

	utils.SuccessResponse(c, gin.H{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}
