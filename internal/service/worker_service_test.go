package service

import (
	"math/rand"
	"testing"

	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffRecordsInsertUpdateDelete(t *testing.T) {
	local := []models.Bed{
		{ID: "BED-01", Ward: "ICU"},
		{ID: "BED-02", Ward: "Trauma"},
	}
	remote := []models.Bed{
		{ID: "BED-01", Ward: "ICU", IsOccupied: true}, // changed
		{ID: "BED-03", Ward: "General"},               // new
	}

	diffs := diffRecords(local, remote, func(b models.Bed) string { return b.ID })
	require.Len(t, diffs, 3)

	kinds := map[state.ChangeKind]int{}
	for _, d := range diffs {
		kinds[d.kind]++
	}
	assert.Equal(t, 1, kinds[state.ChangeUpdate])
	assert.Equal(t, 1, kinds[state.ChangeInsert])
	assert.Equal(t, 1, kinds[state.ChangeDelete])
}

func TestDiffRecordsNoChanges(t *testing.T) {
	records := []models.Staff{{ID: "S-001", Name: "Dr. Parker"}}
	diffs := diffRecords(records, records, func(s models.Staff) string { return s.ID })
	assert.Empty(t, diffs)
}

func TestMergeTableAppliesToStore(t *testing.T) {
	store := state.NewStore(rand.New(rand.NewSource(1)))
	store.Replace(state.DemoState())
	w := NewWorkerService(store, nil, nil, nil, nil, nil, nil)

	w.mergeTable(state.TablePatients, []tableDiff{
		{kind: state.ChangeInsert, record: models.Patient{ID: "P-1", Name: "Jane", AcuityScore: models.AcuityLow, Status: models.PatientWaiting}},
	})

	snap := store.Snapshot()
	require.Len(t, snap.Patients, 1)
	assert.Equal(t, "Jane", snap.Patients[0].Name)
}

func TestDeriveAlertsFiresOncePerCondition(t *testing.T) {
	store := state.NewStore(rand.New(rand.NewSource(1)))
	store.Replace(state.DemoState())
	w := NewWorkerService(store, nil, nil, nil, nil, nil, nil)

	before := len(store.Snapshot().Alerts)

	// Demo roster has one at-risk member (S-004) and one low-stock item (INV-4)
	w.deriveAlerts()
	after := store.Snapshot().Alerts
	assert.Len(t, after, before+2)

	// A second pass must not duplicate the alerts
	w.deriveAlerts()
	assert.Len(t, store.Snapshot().Alerts, before+2)
}

func TestDeriveAlertsRefiresAfterRecovery(t *testing.T) {
	store := state.NewStore(rand.New(rand.NewSource(1)))
	store.Replace(state.DemoState())
	w := NewWorkerService(store, nil, nil, nil, nil, nil, nil)

	w.deriveAlerts()
	count := len(store.Snapshot().Alerts)

	// Restock INV-4 above threshold, then drop it again
	restocked := models.InventoryItem{ID: "INV-4", ItemName: "O Negative Blood", Category: models.CategoryConsumable, CurrentStock: 50, ReorderThreshold: 5, UsageRatePerSurgery: 1}
	require.NoError(t, store.UpdateInventoryItem(restocked))
	w.deriveAlerts()
	assert.Len(t, store.Snapshot().Alerts, count)

	depleted := restocked
	depleted.CurrentStock = 2
	require.NoError(t, store.UpdateInventoryItem(depleted))
	w.deriveAlerts()
	assert.Len(t, store.Snapshot().Alerts, count+1)
}
