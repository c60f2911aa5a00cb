package state

import (
	"math/rand"
	"testing"

	"hospital-ops-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyChangeInsertIsIdempotent(t *testing.T) {
	s := NewStore(rand.New(rand.NewSource(1)))
	require.NoError(t, s.AddPatient(models.Patient{ID: "P-1", AcuityScore: models.AcuityLow}))

	// Insert for an id already applied optimistically is a no-op
	s.ApplyChange(ChangeEvent{
		Table:  TablePatients,
		Kind:   ChangeInsert,
		Record: models.Patient{ID: "P-1", AcuityScore: models.AcuityLow},
	})
	assert.Len(t, s.Snapshot().Patients, 1)

	s.ApplyChange(ChangeEvent{
		Table:  TablePatients,
		Kind:   ChangeInsert,
		Record: models.Patient{ID: "P-2", AcuityScore: models.AcuityHigh},
	})
	assert.Len(t, s.Snapshot().Patients, 2)
}

func TestApplyChangeUpdateReplacesMatchingOnly(t *testing.T) {
	s := NewStore(rand.New(rand.NewSource(1)))
	s.Replace(DemoState())

	s.ApplyChange(ChangeEvent{
		Table:  TableBeds,
		Kind:   ChangeUpdate,
		Record: models.Bed{ID: "BED-02", Ward: "ICU", IsOccupied: true, RequiredSkillLevel: 9},
	})

	snap := s.Snapshot()
	for _, b := range snap.Beds {
		if b.ID == "BED-02" {
			assert.True(t, b.IsOccupied)
		} else {
			assert.False(t, b.IsOccupied)
		}
	}
}

func TestApplyChangeUpdateUnknownIDIsNoop(t *testing.T) {
	s := NewStore(rand.New(rand.NewSource(1)))
	s.Replace(DemoState())
	before := s.Snapshot()

	s.ApplyChange(ChangeEvent{
		Table:  TableBeds,
		Kind:   ChangeUpdate,
		Record: models.Bed{ID: "BED-99", Ward: "ICU"},
	})
	assert.Equal(t, before.Beds, s.Snapshot().Beds)
}

func TestApplyChangeDeleteRemovesRecord(t *testing.T) {
	s := NewStore(rand.New(rand.NewSource(1)))
	s.Replace(DemoState())

	s.ApplyChange(ChangeEvent{
		Table:  TableInventory,
		Kind:   ChangeDelete,
		Record: models.InventoryItem{ID: "INV-2"},
	})

	snap := s.Snapshot()
	assert.Len(t, snap.Inventory, 3)
	for _, item := range snap.Inventory {
		assert.NotEqual(t, "INV-2", item.ID)
	}
}

func TestApplyChangeUnknownTableDropped(t *testing.T) {
	s := NewStore(rand.New(rand.NewSource(1)))
	s.Replace(DemoState())
	before := s.Snapshot()

	s.ApplyChange(ChangeEvent{Table: "documents", Kind: ChangeInsert, Record: models.Patient{ID: "P-1"}})
	assert.Equal(t, before, s.Snapshot())
}

func TestApplyChangeMismatchedRecordTypeDropped(t *testing.T) {
	s := NewStore(rand.New(rand.NewSource(1)))
	s.Replace(DemoState())
	before := s.Snapshot()

	s.ApplyChange(ChangeEvent{Table: TableBeds, Kind: ChangeInsert, Record: models.Staff{ID: "S-9"}})
	assert.Equal(t, before, s.Snapshot())
}

func TestApplyChangeAcrossAllTables(t *testing.T) {
	s := NewStore(rand.New(rand.NewSource(1)))

	s.ApplyChange(ChangeEvent{Table: TableStaff, Kind: ChangeInsert, Record: models.Staff{ID: "S-1", Role: models.RoleNurse}})
	s.ApplyChange(ChangeEvent{Table: TableAppointments, Kind: ChangeInsert, Record: models.Appointment{ID: "APT-1"}})
	s.ApplyChange(ChangeEvent{Table: TableInventory, Kind: ChangeInsert, Record: models.InventoryItem{ID: "INV-1"}})

	snap := s.Snapshot()
	assert.Len(t, snap.Staff, 1)
	assert.Len(t, snap.Appointments, 1)
	assert.Len(t, snap.Inventory, 1)
}
