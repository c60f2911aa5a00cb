package service

import (
	"math/rand"
	"testing"

	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOfflineStaffingService() *StaffingService {
	store := state.NewStore(rand.New(rand.NewSource(1)))
	store.Replace(state.DemoState())
	return NewStaffingService(store, nil, nil)
}

func TestAddStaffAutoFatigue(t *testing.T) {
	svc := newOfflineStaffingService()

	member, err := svc.AddStaff(models.Staff{
		Name:                "Nurse Chapel",
		Role:                models.RoleNurse,
		SkillLevel:          6,
		MaxHoursShift:       12,
		CurrentHoursWorked:  10,
		CurrentFatigueScore: 5, // ignored with autoFatigue
	}, true, 0)
	require.NoError(t, err)

	assert.NotEmpty(t, member.ID)
	// 10/12*100 + (10-8)*5 = 93 rounded
	assert.Equal(t, 93, member.CurrentFatigueScore)
}

func TestAddStaffGeneratedIDsAreUnique(t *testing.T) {
	svc := newOfflineStaffingService()

	a, err := svc.AddStaff(models.Staff{Name: "A", Role: models.RoleNurse, SkillLevel: 5, MaxHoursShift: 12}, false, 0)
	require.NoError(t, err)
	b, err := svc.AddStaff(models.Staff{Name: "B", Role: models.RoleNurse, SkillLevel: 5, MaxHoursShift: 12}, false, 0)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestAddStaffManualFatigueStands(t *testing.T) {
	svc := newOfflineStaffingService()

	member, err := svc.AddStaff(models.Staff{
		Name:                "Nurse Chapel",
		Role:                models.RoleNurse,
		SkillLevel:          6,
		MaxHoursShift:       12,
		CurrentHoursWorked:  10,
		CurrentFatigueScore: 5,
	}, false, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, member.CurrentFatigueScore)
}

func TestUpdateStaffRecomputesFatigue(t *testing.T) {
	svc := newOfflineStaffingService()

	member := state.DemoState().Staff[0] // S-001, 4h of 12
	member.CurrentHoursWorked = 6

	updated, err := svc.UpdateStaff(member, true, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, updated.CurrentFatigueScore)
}

func TestUpdateStaffUnknownID(t *testing.T) {
	svc := newOfflineStaffingService()

	_, err := svc.UpdateStaff(models.Staff{ID: "S-404"}, false, 0)
	assert.ErrorIs(t, err, state.ErrStaffNotFound)
}

func TestAtRiskStaff(t *testing.T) {
	svc := newOfflineStaffingService()

	atRisk := svc.AtRiskStaff()
	require.Len(t, atRisk, 1)
	assert.Equal(t, "S-004", atRisk[0].ID) // fatigue 85, 14h of 12
}
