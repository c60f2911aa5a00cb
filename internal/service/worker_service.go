package service

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"time"

	"hospital-ops-backend/internal/core"
	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/realtime"
	"hospital-ops-backend/internal/repository"
	"hospital-ops-backend/internal/state"
)

// WorkerService is the background reconciler. It polls the database, diffs
// each table against the local snapshot, merges the differences as change
// events and pushes them to connected clients. It also derives operational
// alerts (staff at risk, stock below threshold) from the merged snapshot.
type WorkerService struct {
	store           *state.Store
	patientRepo     *repository.PatientRepository
	bedRepo         *repository.BedRepository
	staffRepo       *repository.StaffRepository
	inventoryRepo   *repository.InventoryRepository
	appointmentRepo *repository.AppointmentRepository
	hub             *realtime.Hub

	// alert keys already raised, so a persisting condition fires once
	raised map[string]bool
}

func NewWorkerService(
	store *state.Store,
	patientRepo *repository.PatientRepository,
	bedRepo *repository.BedRepository,
	staffRepo *repository.StaffRepository,
	inventoryRepo *repository.InventoryRepository,
	appointmentRepo *repository.AppointmentRepository,
	hub *realtime.Hub,
) *WorkerService {
	return &WorkerService{
		store:           store,
		patientRepo:     patientRepo,
		bedRepo:         bedRepo,
		staffRepo:       staffRepo,
		inventoryRepo:   inventoryRepo,
		appointmentRepo: appointmentRepo,
		hub:             hub,
		raised:          make(map[string]bool),
	}
}

// Start begins the background worker that reconciles database state
func (w *WorkerService) Start(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	log.Println("Background worker started - reconciling every 5s")

	for {
		select {
		case <-ctx.Done():
			log.Println("Background worker stopped")
			return
		case <-ticker.C:
			w.reconcile()
			w.deriveAlerts()
		}
	}
}

// reconcile pulls every table and merges what changed since the last pass
func (w *WorkerService) reconcile() {
	if w.patientRepo == nil {
		// Offline mode, nothing to reconcile against
		return
	}

	snap := w.store.Snapshot()

	if patients, err := w.patientRepo.GetAllPatients(); err != nil {
		log.Printf("Error fetching patients: %v", err)
	} else {
		w.mergeTable(state.TablePatients, diffRecords(snap.Patients, patients, func(p models.Patient) string { return p.ID }))
	}

	if beds, err := w.bedRepo.GetAllBeds(); err != nil {
		log.Printf("Error fetching beds: %v", err)
	} else {
		w.mergeTable(state.TableBeds, diffRecords(snap.Beds, beds, func(b models.Bed) string { return b.ID }))
	}

	if staff, err := w.staffRepo.GetAllStaff(); err != nil {
		log.Printf("Error fetching staff: %v", err)
	} else {
		w.mergeTable(state.TableStaff, diffRecords(snap.Staff, staff, func(m models.Staff) string { return m.ID }))
	}

	if items, err := w.inventoryRepo.GetAllItems(); err != nil {
		log.Printf("Error fetching inventory: %v", err)
	} else {
		w.mergeTable(state.TableInventory, diffRecords(snap.Inventory, items, func(i models.InventoryItem) string { return i.ID }))
	}

	if appts, err := w.appointmentRepo.GetAllAppointments(); err != nil {
		log.Printf("Error fetching appointments: %v", err)
	} else {
		w.mergeTable(state.TableAppointments, diffRecords(snap.Appointments, appts, func(a models.Appointment) string { return a.ID }))
	}
}

// tableDiff pairs a change kind with the record it applies to
type tableDiff struct {
	kind   state.ChangeKind
	record interface{}
}

func (w *WorkerService) mergeTable(table string, diffs []tableDiff) {
	for _, d := range diffs {
		event := state.ChangeEvent{Table: table, Kind: d.kind, Record: d.record}
		w.store.ApplyChange(event)
		if w.hub != nil {
			w.hub.Broadcast(event)
		}
	}
}

// diffRecords compares the local and remote copies of one table. Remote rows
// missing locally become inserts, changed rows become updates, local rows
// missing remotely become deletes. The database is authoritative here; local
// optimistic writes that failed to sync are overwritten on the next pass.
func diffRecords[T any](local, remote []T, key func(T) string) []tableDiff {
	localByID := make(map[string]T, len(local))
	for _, rec := range local {
		localByID[key(rec)] = rec
	}

	var diffs []tableDiff
	seen := make(map[string]bool, len(remote))
	for _, rec := range remote {
		id := key(rec)
		seen[id] = true
		existing, ok := localByID[id]
		if !ok {
			diffs = append(diffs, tableDiff{kind: state.ChangeInsert, record: rec})
			continue
		}
		if !reflect.DeepEqual(existing, rec) {
			diffs = append(diffs, tableDiff{kind: state.ChangeUpdate, record: rec})
		}
	}

	for _, rec := range local {
		if !seen[key(rec)] {
			diffs = append(diffs, tableDiff{kind: state.ChangeDelete, record: rec})
		}
	}
	return diffs
}

// deriveAlerts raises one alert per newly observed risk condition
func (w *WorkerService) deriveAlerts() {
	snap := w.store.Snapshot()

	atRisk := make(map[string]bool)
	for _, member := range core.AtRiskStaff(snap.Staff) {
		atRisk[member.ID] = true
		alertKey := "staff:" + member.ID
		if w.raised[alertKey] {
			continue
		}
		w.raised[alertKey] = true
		w.store.AddAlert(fmt.Sprintf("Staffing alert: %s is at risk (fatigue %d%%, %dh worked).",
			member.Name, member.CurrentFatigueScore, member.CurrentHoursWorked))
	}
	for _, member := range snap.Staff {
		if !atRisk[member.ID] {
			// Recovered, allow the alert to fire again on the next breach
			delete(w.raised, "staff:"+member.ID)
		}
	}

	for _, item := range snap.Inventory {
		need := core.ClassifyReorderNeed(item)
		alertKey := "inventory:" + item.ID
		if need == nil {
			// Restocked, allow the alert to fire again next time it runs low
			delete(w.raised, alertKey)
			continue
		}
		if w.raised[alertKey] {
			continue
		}
		w.raised[alertKey] = true
		w.store.AddAlert(fmt.Sprintf("Inventory alert: %s low (%d left). %s",
			item.ItemName, item.CurrentStock, need.Reason))
	}
}
