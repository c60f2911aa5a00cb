package models

// Inventory categories
const (
	CategoryConsumable = "Consumable"
	CategorySurgical   = "Surgical"
	CategoryPharma     = "Pharma"
)

// Reorder urgency levels
const (
	UrgencyLow    = "Low"
	UrgencyMedium = "Medium"
	UrgencyHigh   = "High"
)

// ReorderSuggestion is attached to an item once its stock dips below threshold
type ReorderSuggestion struct {
	SuggestedQty int    `json:"suggested_qty"`
	Urgency      string `json:"urgency"`
	Reason       string `json:"reason"`
}

// InventoryItem represents the inventory table
type InventoryItem struct {
	ID                   string             `gorm:"primaryKey;size:50" json:"id"`
	ItemName             string             `gorm:"size:100;not null" json:"item_name"`
	Category             string             `gorm:"type:enum('Consumable','Surgical','Pharma');not null" json:"category"`
	CurrentStock         int                `gorm:"default:0" json:"current_stock"`
	ReorderThreshold     int                `gorm:"default:0" json:"reorder_threshold"`
	UsageRatePerSurgery  int                `gorm:"default:0" json:"usage_rate_per_surgery"`
	LastReorderSuggestion *ReorderSuggestion `gorm:"serializer:json" json:"last_reorder_suggestion,omitempty"`
}

// TableName specifies the table name for InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory"
}
