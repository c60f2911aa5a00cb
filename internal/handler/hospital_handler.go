package handler

import (
	"errors"
	"net/http"

	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/service"
	"hospital-ops-backend/internal/state"
	"hospital-ops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type HospitalHandler struct {
	hospitalService *service.HospitalService
}

func NewHospitalHandler(hospitalService *service.HospitalService) *HospitalHandler {
	return &HospitalHandler{
		hospitalService: hospitalService,
	}
}

// currentUserID extracts the authenticated user's ID from the context, 0 when
// the route is unauthenticated
func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetState returns the full hospital snapshot
func (h *HospitalHandler) GetState(c *gin.Context) {
	utils.SuccessResponse(c, h.hospitalService.Snapshot())
}

type CreatePatientRequest struct {
	ID                string         `json:"id"`
	Name              string         `json:"name" binding:"required"`
	AcuityScore       int            `json:"acuity_score" binding:"required,min=1,max=4"`
	Condition         string         `json:"condition" binding:"required"`
	DetailedCondition string         `json:"detailed_condition"`
	Vitals            *models.Vitals `json:"vitals"`
}

// CreatePatient registers a new arrival in Waiting status
func (h *HospitalHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	patient, err := h.hospitalService.AddPatient(models.Patient{
		ID:                req.ID,
		Name:              req.Name,
		AcuityScore:       req.AcuityScore,
		Condition:         req.Condition,
		DetailedCondition: req.DetailedCondition,
		Vitals:            req.Vitals,
	}, currentUserID(c))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessResponse(c, patient)
}

type AdmitPatientRequest struct {
	BedID string `json:"bed_id"`
}

// AdmitPatient assigns the patient to a bed. An omitted bed_id lets the
// allocation engine choose.
func (h *HospitalHandler) AdmitPatient(c *gin.Context) {
	patientID := c.Param("id")

	// Body is optional; empty means auto-allocate
	var req AdmitPatientRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.hospitalService.AdmitPatient(patientID, req.BedID, currentUserID(c))
	if err != nil {
		utils.ErrorResponse(c, admissionStatus(err), err.Error())
		return
	}

	utils.SuccessResponse(c, result)
}

func admissionStatus(err error) int {
	switch {
	case errors.Is(err, state.ErrPatientNotFound), errors.Is(err, state.ErrBedNotFound):
		return http.StatusNotFound
	case errors.Is(err, state.ErrBedUnavailable):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// SuggestBed runs the allocation engine without committing anything
func (h *HospitalHandler) SuggestBed(c *gin.Context) {
	bedID, err := h.hospitalService.SuggestBed(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"bed_id":    bedID,
		"available": bedID != "",
	})
}

// ClassifyBeds returns every bed's match classification for the patient given
// in the patient_id query parameter (neutral when omitted)
func (h *HospitalHandler) ClassifyBeds(c *gin.Context) {
	matches, err := h.hospitalService.ClassifyBeds(c.Query("patient_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"matches": matches})
}

type CreateBedRequest struct {
	Ward       string `json:"ward" binding:"required"`
	SkillLevel int    `json:"skill_level" binding:"required,min=1,max=10"`
}

// CreateBed adds a bed with a generated identifier
func (h *HospitalHandler) CreateBed(c *gin.Context) {
	var req CreateBedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	bed, err := h.hospitalService.AddBed(req.Ward, req.SkillLevel, currentUserID(c))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, bed)
}

// ToggleReservation flips a bed's reserved flag
func (h *HospitalHandler) ToggleReservation(c *gin.Context) {
	bed, err := h.hospitalService.ToggleReservation(c.Param("id"), currentUserID(c))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	utils.SuccessResponse(c, bed)
}

type AssignStaffRequest struct {
	StaffID *string `json:"staff_id"`
}

// AssignStaff sets or clears a patient's assigned staff member (null clears)
func (h *HospitalHandler) AssignStaff(c *gin.Context) {
	var req AssignStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	patient, err := h.hospitalService.AssignStaff(c.Param("id"), req.StaffID, currentUserID(c))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	utils.SuccessResponse(c, patient)
}

type RecordTreatmentRequest struct {
	Treatment            string `json:"treatment" binding:"required"`
	Notes                string `json:"notes"`
	NewDetailedCondition string `json:"new_detailed_condition"`
}

// RecordTreatment appends a treatment event to the patient's history
func (h *HospitalHandler) RecordTreatment(c *gin.Context) {
	var req RecordTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	patient, err := h.hospitalService.RecordTreatment(c.Param("id"), req.Treatment, req.Notes, req.NewDetailedCondition, currentUserID(c))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	utils.SuccessResponse(c, patient)
}
