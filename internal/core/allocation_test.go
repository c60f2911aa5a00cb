package core

import (
	"testing"

	"hospital-ops-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func bed(id string, skill int, occupied, reserved bool) models.Bed {
	return models.Bed{
		ID:                 id,
		Ward:               "General",
		IsOccupied:         occupied,
		IsReserved:         reserved,
		RequiredSkillLevel: skill,
	}
}

func TestAllocateBedCriticalNeverBelowSkill9(t *testing.T) {
	patient := models.Patient{ID: "P-1", AcuityScore: models.AcuityCritical}
	beds := []models.Bed{
		bed("BED-01", 3, false, false),
		bed("BED-02", 8, false, false),
		bed("BED-03", 9, false, false),
	}

	got := AllocateBed(patient, beds)
	assert.Equal(t, "BED-03", got)
}

func TestAllocateBedPrefersSmallestSufficientSkill(t *testing.T) {
	patient := models.Patient{ID: "P-1", AcuityScore: models.AcuityCritical}
	beds := []models.Bed{
		bed("BED-10", 10, false, false),
		bed("BED-09", 9, false, false),
	}

	// Both satisfy Critical; the skill-9 bed keeps the skill-10 bed free
	got := AllocateBed(patient, beds)
	assert.Equal(t, "BED-09", got)
}

func TestAllocateBedSkipsOccupiedAndReserved(t *testing.T) {
	patient := models.Patient{ID: "P-1", AcuityScore: models.AcuityLow}
	beds := []models.Bed{
		bed("BED-01", 5, true, false),
		bed("BED-02", 5, false, true),
		bed("BED-03", 5, false, false),
	}

	got := AllocateBed(patient, beds)
	assert.Equal(t, "BED-03", got)
}

func TestAllocateBedReturnsEmptyWhenNoCandidate(t *testing.T) {
	patient := models.Patient{ID: "P-1", AcuityScore: models.AcuityHigh}
	beds := []models.Bed{
		bed("BED-01", 9, true, false),  // occupied
		bed("BED-02", 10, false, true), // reserved
		bed("BED-03", 4, false, false), // below threshold
	}

	got := AllocateBed(patient, beds)
	assert.Empty(t, got)
}

func TestAllocateBedLowAcuityDoesNotTakeICU(t *testing.T) {
	patient := models.Patient{ID: "P-1", AcuityScore: models.AcuityLow}
	beds := []models.Bed{
		bed("BED-01", 9, false, false), // ICU
		bed("BED-02", 3, false, false), // General
	}

	got := AllocateBed(patient, beds)
	assert.Equal(t, "BED-02", got)
}

func TestAllocateBedReservationScenario(t *testing.T) {
	// First critical patient takes the skill-9 bed
	first := models.Patient{ID: "P-1", AcuityScore: models.AcuityCritical}
	beds := []models.Bed{
		bed("A", 9, false, false),
		bed("B", 10, false, false),
	}
	assert.Equal(t, "A", AllocateBed(first, beds))

	// A is now occupied, B reserved: a second critical patient has nowhere to go
	beds[0].IsOccupied = true
	beds[1].IsReserved = true
	second := models.Patient{ID: "P-2", AcuityScore: models.AcuityCritical}
	assert.Empty(t, AllocateBed(second, beds))
}

func TestMinRequiredSkill(t *testing.T) {
	assert.Equal(t, 1, MinRequiredSkill(models.AcuityLow))
	assert.Equal(t, 4, MinRequiredSkill(models.AcuityMedium))
	assert.Equal(t, 7, MinRequiredSkill(models.AcuityHigh))
	assert.Equal(t, 9, MinRequiredSkill(models.AcuityCritical))

	// Unknown acuity falls back to the critical requirement
	assert.Equal(t, 9, MinRequiredSkill(0))
	assert.Equal(t, 9, MinRequiredSkill(7))
}

func TestClassifyBedMatch(t *testing.T) {
	high := &models.Patient{ID: "P-1", AcuityScore: models.AcuityHigh} // needs 7+

	tests := []struct {
		name    string
		bed     models.Bed
		patient *models.Patient
		want    string
	}{
		{"occupied wins over everything", bed("BED-01", 9, true, true), high, MatchOccupied},
		{"reserved", bed("BED-01", 9, false, true), high, MatchReserved},
		{"no patient selected", bed("BED-01", 9, false, false), nil, MatchAvailable},
		{"skill below requirement", bed("BED-01", 5, false, false), high, MatchIncompatible},
		{"exact requirement is optimal", bed("BED-01", 7, false, false), high, MatchOptimal},
		{"within three levels is optimal", bed("BED-01", 10, false, false), high, MatchOptimal},
		{"far above requirement is suboptimal", bed("BED-01", 8, false, false), &models.Patient{AcuityScore: models.AcuityLow}, MatchSuboptimal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyBedMatch(tt.bed, tt.patient))
		})
	}
}

func TestGenerateBedID(t *testing.T) {
	beds := []models.Bed{
		bed("BED-01", 3, false, false),
		bed("BED-02", 3, false, false),
		bed("BED-09", 9, false, false),
	}
	assert.Equal(t, "BED-10", GenerateBedID(beds))
}

func TestGenerateBedIDIgnoresUnparseableIDs(t *testing.T) {
	beds := []models.Bed{
		bed("BED-03", 3, false, false),
		bed("legacy-bed", 3, false, false),
		bed("BED-XX", 3, false, false),
		bed("no-dash-here-at-all-1-2", 3, false, false),
	}
	assert.Equal(t, "BED-04", GenerateBedID(beds))
}

func TestGenerateBedIDEmptyList(t *testing.T) {
	assert.Equal(t, "BED-01", GenerateBedID(nil))
}
