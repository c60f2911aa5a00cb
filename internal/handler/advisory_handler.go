package handler

import (
	"net/http"

	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/service"
	"hospital-ops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AdvisoryHandler exposes the generative advisory endpoints. All of them are
// safe to call with the collaborator unconfigured; the service answers with
// deterministic fallbacks.
type AdvisoryHandler struct {
	advisoryService  *service.AdvisoryService
	hospitalService  *service.HospitalService
	staffingService  *service.StaffingService
	inventoryService *service.InventoryService
}

func NewAdvisoryHandler(
	advisoryService *service.AdvisoryService,
	hospitalService *service.HospitalService,
	staffingService *service.StaffingService,
	inventoryService *service.InventoryService,
) *AdvisoryHandler {
	return &AdvisoryHandler{
		advisoryService:  advisoryService,
		hospitalService:  hospitalService,
		staffingService:  staffingService,
		inventoryService: inventoryService,
	}
}

type TriageRequest struct {
	Symptoms string        `json:"symptoms" binding:"required"`
	Age      int           `json:"age" binding:"required,min=0,max=130"`
	Vitals   models.Vitals `json:"vitals"`
}

// AnalyzeTriage scores a presenting patient
func (h *AdvisoryHandler) AnalyzeTriage(c *gin.Context) {
	var req TriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := h.advisoryService.AnalyzeTriage(c.Request.Context(), req.Symptoms, req.Vitals, req.Age)
	utils.SuccessResponse(c, result)
}

// PredictRisk estimates sepsis and deterioration risk for an existing patient
func (h *AdvisoryHandler) PredictRisk(c *gin.Context) {
	patientID := c.Param("id")

	for _, p := range h.hospitalService.Snapshot().Patients {
		if p.ID == patientID {
			profile := h.advisoryService.PredictPatientRisk(c.Request.Context(), p)
			utils.SuccessResponse(c, profile)
			return
		}
	}

	utils.ErrorResponse(c, http.StatusNotFound, "Patient not found")
}

type SummarizeRequest struct {
	Text string `json:"text" binding:"required"`
}

// SummarizeDocument condenses free medical text and extracts critical flags
func (h *AdvisoryHandler) SummarizeDocument(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary := h.advisoryService.SummarizeDocument(c.Request.Context(), req.Text)
	utils.SuccessResponse(c, summary)
}

// GenerateReport produces a strategic situation report from the snapshot
func (h *AdvisoryHandler) GenerateReport(c *gin.Context) {
	report := h.advisoryService.GenerateReport(c.Request.Context(), h.hospitalService.Snapshot())
	utils.SuccessResponse(c, gin.H{"report": report})
}

// GenerateSurge produces a mass-casualty scenario and registers its patients
// as Waiting arrivals
func (h *AdvisoryHandler) GenerateSurge(c *gin.Context) {
	scenario := h.advisoryService.GenerateSurgeScenario(c.Request.Context())

	patients := make([]models.Patient, len(scenario.GeneratedPatients))
	for i, sp := range scenario.GeneratedPatients {
		patients[i] = models.Patient{
			Name:              sp.Name,
			AcuityScore:       sp.AcuityScore,
			Condition:         sp.Condition,
			DetailedCondition: sp.DetailedCondition,
		}
	}

	added, err := h.hospitalService.AddPatients(patients, currentUserID(c))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"scenario_title":       scenario.ScenarioTitle,
		"scenario_description": scenario.ScenarioDescription,
		"patients":             added,
	})
}

// GenerateForecast predicts 24h hospital load
func (h *AdvisoryHandler) GenerateForecast(c *gin.Context) {
	snap := h.hospitalService.Snapshot()

	occupied := 0
	for _, b := range snap.Beds {
		if b.IsOccupied {
			occupied++
		}
	}

	forecast := h.advisoryService.GenerateForecast(c.Request.Context(), len(snap.Beds), occupied, len(snap.Inventory))
	utils.SuccessResponse(c, forecast)
}

// BalanceStaffLoad suggests rest or reassignment for overloaded staff
func (h *AdvisoryHandler) BalanceStaffLoad(c *gin.Context) {
	snap := h.hospitalService.Snapshot()

	suggestions := h.advisoryService.BalanceStaffLoad(c.Request.Context(), snap.Staff, len(snap.Patients))
	utils.SuccessResponse(c, gin.H{"suggestions": suggestions})
}

// SuggestReorder refines the low-stock analysis with advisory input
func (h *AdvisoryHandler) SuggestReorder(c *gin.Context) {
	suggestions := h.advisoryService.SuggestReorder(c.Request.Context(), h.inventoryService.LowStockItems())
	utils.SuccessResponse(c, gin.H{"suggestions": suggestions})
}

type ChatRequest struct {
	Message string                `json:"message" binding:"required"`
	History []service.ChatMessage `json:"history"`
}

// Chat runs one turn of the conversational assistant
func (h *AdvisoryHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	reply := h.advisoryService.Chat(c.Request.Context(), req.History, req.Message, h.hospitalService.Snapshot())
	utils.SuccessResponse(c, gin.H{"reply": reply})
}
