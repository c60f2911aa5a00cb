package core

import (
	"math"

	"hospital-ops-backend/internal/models"
)

// fatigueRiskThreshold is the score above which a staff member counts as at risk
const fatigueRiskThreshold = 70

// ComputeFatigueScore derives a 0-100 fatigue score from shift hours.
// Base is the worked/max ratio scaled to 100; hours beyond 8 add a linear
// penalty of 5 points per hour to model accelerating cognitive decline.
// The result is rounded and clamped to [0, 100].
func ComputeFatigueScore(currentHours, maxHours int) int {
	if maxHours <= 0 {
		return 0
	}

	fatigue := float64(currentHours) / float64(maxHours) * 100
	if currentHours > 8 {
		fatigue += float64(currentHours-8) * 5
	}

	score := int(math.Round(fatigue))
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// AtRiskStaff returns the staff members flagged for fatigue risk: a fatigue
// score strictly above 70, or hours worked beyond the shift maximum. The
// overtime check is independent of the score since fatigue may have been
// manually overridden to something lower.
func AtRiskStaff(staff []models.Staff) []models.Staff {
	var atRisk []models.Staff
	for _, s := range staff {
		if s.CurrentFatigueScore > fatigueRiskThreshold || s.CurrentHoursWorked > s.MaxHoursShift {
			atRisk = append(atRisk, s)
		}
	}
	return atRisk
}
