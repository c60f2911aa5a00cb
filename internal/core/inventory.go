package core

import (
	"fmt"
	"math"
	"math/rand"

	"hospital-ops-backend/internal/models"
)

// Procedure types driving inventory consumption
const (
	ProcedureSurgery = "Surgery"
	ProcedureRoutine = "Routine"
)

// routineUsageFactor scales surgical usage down for routine procedures
const routineUsageFactor = 0.2

// ApplyProcedureConsumption simulates stock depletion across the inventory for
// one procedure. Surgery consumes each item's full per-surgery rate, routine
// procedures a fifth of it. A multiplier drawn uniformly from [0.8, 1.2) models
// real-world variance; actual usage is rounded up to whole units and stock is
// clamped at zero. The rng is injected so tests can fix the seed.
func ApplyProcedureConsumption(items []models.InventoryItem, procedureType string, rng *rand.Rand) []models.InventoryItem {
	updated := make([]models.InventoryItem, len(items))
	for i, item := range items {
		usage := float64(item.UsageRatePerSurgery)
		if procedureType != ProcedureSurgery {
			usage *= routineUsageFactor
		}

		actual := int(math.Ceil(usage * (0.8 + rng.Float64()*0.4)))

		item.CurrentStock -= actual
		if item.CurrentStock < 0 {
			item.CurrentStock = 0
		}
		updated[i] = item
	}
	return updated
}

// ClassifyReorderNeed returns a reorder suggestion for an item at or below its
// threshold, or nil when stock is healthy. This is the deterministic fallback
// used when the advisory collaborator is unavailable: three thresholds' worth
// of stock, High urgency only when the shelf is empty.
func ClassifyReorderNeed(item models.InventoryItem) *models.ReorderSuggestion {
	if item.CurrentStock > item.ReorderThreshold {
		return nil
	}

	urgency := models.UrgencyMedium
	if item.CurrentStock == 0 {
		urgency = models.UrgencyHigh
	}

	return &models.ReorderSuggestion{
		SuggestedQty: item.ReorderThreshold * 3,
		Urgency:      urgency,
		Reason:       fmt.Sprintf("Stock (%d) below safety threshold (%d).", item.CurrentStock, item.ReorderThreshold),
	}
}
