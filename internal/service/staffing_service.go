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

// StaffingService manages the staff roster and fatigue analytics
type StaffingService struct {
	store     *state.Store
	staffRepo *repository.StaffRepository
	auditRepo *repository.AuditRepository
}

func NewStaffingService(store *state.Store, staffRepo *repository.StaffRepository, auditRepo *repository.AuditRepository) *StaffingService {
	return &StaffingService{
		store:     store,
		staffRepo: staffRepo,
		auditRepo: auditRepo,
	}
}

func (s *StaffingService) online() bool {
	return s.staffRepo != nil
}

// AddStaff onboards a staff member. When autoFatigue is set the fatigue score
// is derived from the shift hours instead of the submitted value.
func (s *StaffingService) AddStaff(member models.Staff, autoFatigue bool, userID uint) (models.Staff, error) {
	if member.ID == "" {
		member.ID = fmt.Sprintf("S-%s", uuid.New().String()[:8])
	}
	if autoFatigue {
		member.CurrentFatigueScore = core.ComputeFatigueScore(member.CurrentHoursWorked, member.MaxHoursShift)
	}

	s.store.AddStaff(member)

	if s.online() {
		if err := s.staffRepo.CreateStaff(&member); err != nil {
			log.Printf("Warning: staff insert failed, keeping local state: %v", err)
		}
	}

	s.audit(userID, "staff_onboarded", fmt.Sprintf("Added staff %s (%s)", member.ID, member.Name))
	return member, nil
}

// UpdateStaff replaces a roster record. With autoFatigue the score is
// recomputed from the new shift hours; otherwise the submitted score stands as
// a manual override until the next auto recompute is requested.
func (s *StaffingService) UpdateStaff(member models.Staff, autoFatigue bool, userID uint) (models.Staff, error) {
	if autoFatigue {
		member.CurrentFatigueScore = core.ComputeFatigueScore(member.CurrentHoursWorked, member.MaxHoursShift)
	}

	if err := s.store.UpdateStaff(member); err != nil {
		return models.Staff{}, err
	}

	if s.online() {
		if err := s.staffRepo.SaveStaff(&member); err != nil {
			log.Printf("Warning: staff update sync failed, keeping local state: %v", err)
		}
	}

	s.audit(userID, "staff_updated", fmt.Sprintf("Updated staff %s (fatigue %d)", member.ID, member.CurrentFatigueScore))
	return member, nil
}

// AtRiskStaff returns the roster members flagged by the fatigue rules
func (s *StaffingService) AtRiskStaff() []models.Staff {
	return core.AtRiskStaff(s.store.Snapshot().Staff)
}

func (s *StaffingService) audit(userID uint, action, details string) {
	if s.auditRepo == nil {
		return
	}
	userIDPtr := &userID
	if userID == 0 {
		userIDPtr = nil
	}
	_ = s.auditRepo.CreateAuditLog(userIDPtr, action, details)
}
