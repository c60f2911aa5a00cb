package handler

import (
	"net/http"

	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/service"
	"hospital-ops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type StaffingHandler struct {
	staffingService *service.StaffingService
}

func NewStaffingHandler(staffingService *service.StaffingService) *StaffingHandler {
	return &StaffingHandler{
		staffingService: staffingService,
	}
}

type StaffRequest struct {
	ID                  string `json:"id"`
	Name                string `json:"name" binding:"required"`
	Role                string `json:"role" binding:"required,oneof=Nurse Doctor Specialist Admin"`
	SkillLevel          int    `json:"skill_level" binding:"required,min=1,max=10"`
	CurrentFatigueScore int    `json:"current_fatigue_score" binding:"min=0,max=100"`
	MaxHoursShift       int    `json:"max_hours_shift" binding:"required,min=1"`
	CurrentHoursWorked  int    `json:"current_hours_worked" binding:"min=0"`
	AutoFatigue         bool   `json:"auto_fatigue"`
}

func (r StaffRequest) toModel() models.Staff {
	return models.Staff{
		ID:                  r.ID,
		Name:                r.Name,
		Role:                r.Role,
		SkillLevel:          r.SkillLevel,
		CurrentFatigueScore: r.CurrentFatigueScore,
		MaxHoursShift:       r.MaxHoursShift,
		CurrentHoursWorked:  r.CurrentHoursWorked,
	}
}

// CreateStaff onboards a staff member
func (h *StaffingHandler) CreateStaff(c *gin.Context) {
	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.staffingService.AddStaff(req.toModel(), req.AutoFatigue, currentUserID(c))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, member)
}

// UpdateStaff replaces a roster record
func (h *StaffingHandler) UpdateStaff(c *gin.Context) {
	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	member := req.toModel()
	member.ID = c.Param("id")

	updated, err := h.staffingService.UpdateStaff(member, req.AutoFatigue, currentUserID(c))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	utils.SuccessResponse(c, updated)
}

// GetAtRiskStaff returns the roster members flagged by the fatigue rules
func (h *StaffingHandler) GetAtRiskStaff(c *gin.Context) {
	atRisk := h.staffingService.AtRiskStaff()

	utils.SuccessResponse(c, gin.H{
		"staff": atRisk,
		"count": len(atRisk),
	})
}
