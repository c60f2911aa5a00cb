package core

import (
	"fmt"
	"strconv"
	"strings"

	"hospital-ops-backend/internal/models"
)

// BedIDPrefix is the fixed tag for bed identifiers (BED-NN)
const BedIDPrefix = "BED"

// Bed match classifications, used for advisory display only
const (
	MatchOccupied     = "occupied"
	MatchReserved     = "reserved"
	MatchAvailable    = "available"
	MatchIncompatible = "incompatible"
	MatchOptimal      = "optimal"
	MatchSuboptimal   = "suboptimal"
)

// minSkillByAcuity maps patient acuity to the minimum bed capability it needs.
// Critical(4) needs skill 9+, High(3) 7+, Medium(2) 4+, Low(1) any.
var minSkillByAcuity = map[int]int{
	models.AcuityLow:      1,
	models.AcuityMedium:   4,
	models.AcuityHigh:     7,
	models.AcuityCritical: 9,
}

// MinRequiredSkill returns the minimum bed skill level for an acuity score.
// Unknown acuity is treated as Critical so a bad score never under-places a patient.
func MinRequiredSkill(acuity int) int {
	if min, ok := minSkillByAcuity[acuity]; ok {
		return min
	}
	return minSkillByAcuity[models.AcuityCritical]
}

// AllocateBed matches a patient to the best available bed and returns its ID,
// or "" when no suitable bed exists. The caller applies the assignment; this
// function never mutates state.
//
// Beds are filtered to unoccupied and unreserved, then to those meeting the
// patient's minimum skill level, and the candidate with the smallest sufficient
// skill level wins. That keeps high-capability beds (ICU) free for the patients
// who actually need them. Ties resolve to the earliest bed in the input order.
func AllocateBed(patient models.Patient, beds []models.Bed) string {
	minSkill := MinRequiredSkill(patient.AcuityScore)

	bestID := ""
	bestSkill := 0
	for _, b := range beds {
		if !b.IsFree() {
			continue
		}
		if b.RequiredSkillLevel < minSkill {
			continue
		}
		if bestID == "" || b.RequiredSkillLevel < bestSkill {
			bestID = b.ID
			bestSkill = b.RequiredSkillLevel
		}
	}
	return bestID
}

// ClassifyBedMatch reports how well a bed suits the patient under consideration.
// With no patient selected a free bed is simply "available". A compatible bed
// within 3 skill levels of the requirement is "optimal"; anything higher is
// "suboptimal" (compatible but wasteful, e.g. low acuity in an ICU bed).
func ClassifyBedMatch(bed models.Bed, patient *models.Patient) string {
	if bed.IsOccupied {
		return MatchOccupied
	}
	if bed.IsReserved {
		return MatchReserved
	}
	if patient == nil {
		return MatchAvailable
	}

	required := MinRequiredSkill(patient.AcuityScore)
	if bed.RequiredSkillLevel < required {
		return MatchIncompatible
	}
	if bed.RequiredSkillLevel-required <= 3 {
		return MatchOptimal
	}
	return MatchSuboptimal
}

// GenerateBedID computes the next bed ID from the existing beds: the maximum
// parsed numeric suffix plus one, zero-padded to two digits. IDs that do not
// parse are ignored, so a stray ID never blocks creation.
func GenerateBedID(beds []models.Bed) string {
	maxNum := 0
	for _, b := range beds {
		parts := strings.Split(b.ID, "-")
		if len(parts) != 2 {
			continue
		}
		num, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		if num > maxNum {
			maxNum = num
		}
	}
	return fmt.Sprintf("%s-%02d", BedIDPrefix, maxNum+1)
}
