package handler

import (
	"net/http"

	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/service"
	"hospital-ops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
	hospitalService    *service.HospitalService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService, hospitalService *service.HospitalService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
		hospitalService:    hospitalService,
	}
}

// GetAppointments lists all appointments in the snapshot
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	appts := h.hospitalService.Snapshot().Appointments

	utils.SuccessResponse(c, gin.H{
		"appointments": appts,
		"count":        len(appts),
	})
}

type BookAppointmentRequest struct {
	DoctorName  string `json:"doctor_name" binding:"required"`
	PatientName string `json:"patient_name" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Reason      string `json:"reason"`
}

// BookAppointment creates a confirmed appointment
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	appt, err := h.appointmentService.Book(models.Appointment{
		DoctorName:  req.DoctorName,
		PatientName: req.PatientName,
		Time:        req.Time,
		Reason:      req.Reason,
	})
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SuccessResponse(c, appt)
}

// UpdateAppointment replaces an appointment record
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req models.Appointment
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ID = c.Param("id")

	appt, err := h.appointmentService.Update(req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	utils.SuccessResponse(c, appt)
}

// ToggleAppointmentStatus flips an appointment between Confirmed and Cancelled
func (h *AppointmentHandler) ToggleAppointmentStatus(c *gin.Context) {
	appt, err := h.appointmentService.ToggleStatus(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	utils.SuccessResponse(c, appt)
}
