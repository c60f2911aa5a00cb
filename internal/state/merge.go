package state

import "hospital-ops-backend/internal/models"

// ChangeKind is the kind of externally-pushed change event
type ChangeKind string

const (
	ChangeInsert ChangeKind = "insert"
	ChangeUpdate ChangeKind = "update"
	ChangeDelete ChangeKind = "delete"
)

// Table names used by change events
const (
	TablePatients     = "patients"
	TableBeds         = "beds"
	TableStaff        = "staff"
	TableInventory    = "inventory"
	TableAppointments = "appointments"
)

// ChangeEvent is one change pushed by the external store's realtime feed.
// Record must be the typed model for the table; for deletes only its ID is
// consulted. Events carry no ordering guarantee; merge is last-write-wins
// per id.
type ChangeEvent struct {
	Table  string      `json:"table"`
	Kind   ChangeKind  `json:"kind"`
	Record interface{} `json:"record"`
}

// ApplyChange merges one externally-pushed change into the snapshot. Inserts
// are idempotent by id (a record the client already applied optimistically is
// not duplicated), updates replace the matching record, deletes remove it.
// Events with an unknown table or mismatched record type are dropped.
func (s *Store) ApplyChange(e ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	switch e.Table {
	case TablePatients:
		rec, ok := e.Record.(models.Patient)
		if !ok {
			return
		}
		next.Patients = mergeRecord(next.Patients, rec, e.Kind, patientKey)
	case TableBeds:
		rec, ok := e.Record.(models.Bed)
		if !ok {
			return
		}
		next.Beds = mergeRecord(next.Beds, rec, e.Kind, bedKey)
	case TableStaff:
		rec, ok := e.Record.(models.Staff)
		if !ok {
			return
		}
		next.Staff = mergeRecord(next.Staff, rec, e.Kind, staffKey)
	case TableInventory:
		rec, ok := e.Record.(models.InventoryItem)
		if !ok {
			return
		}
		next.Inventory = mergeRecord(next.Inventory, rec, e.Kind, itemKey)
	case TableAppointments:
		rec, ok := e.Record.(models.Appointment)
		if !ok {
			return
		}
		next.Appointments = mergeRecord(next.Appointments, rec, e.Kind, apptKey)
	default:
		return
	}
	s.state = next
}

func mergeRecord[T any](list []T, rec T, kind ChangeKind, key func(T) string) []T {
	id := key(rec)
	idx := indexByID(list, id, key)

	switch kind {
	case ChangeInsert:
		if idx >= 0 {
			return list // already applied locally, dedupe silently
		}
		return append(list, rec)
	case ChangeUpdate:
		if idx < 0 {
			return list
		}
		list[idx] = rec
		return list
	case ChangeDelete:
		if idx < 0 {
			return list
		}
		return append(list[:idx], list[idx+1:]...)
	}
	return list
}
