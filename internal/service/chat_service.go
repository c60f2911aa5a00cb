package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/state"
)

// ChatMessage is one turn of the assistant conversation
type ChatMessage struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// bookAppointmentArgs are the tool-call arguments the assistant may emit
type bookAppointmentArgs struct {
	DoctorName  string `json:"doctorName"`
	PatientName string `json:"patientName"`
	Time        string `json:"time"`
	Reason      string `json:"reason"`
}

// chatTurn is the structured reply the assistant is asked to produce: either a
// plain reply or a book_appointment tool call.
type chatTurn struct {
	Reply           string               `json:"reply,omitempty"`
	BookAppointment *bookAppointmentArgs `json:"book_appointment,omitempty"`
}

// Chat runs one turn of the conversational assistant against the live
// snapshot. When the assistant emits a book_appointment tool call, the booking
// is executed through the appointment service and its result is fed back for
// a final confirmation message. Unavailable advisory yields a fixed offline
// reply.
func (s *AdvisoryService) Chat(ctx context.Context, history []ChatMessage, message string, snap state.HospitalState) string {
	if !s.Available() {
		return "Chat unavailable (System Offline)."
	}

	prompt := s.buildChatPrompt(history, message, snap)

	var turn chatTurn
	if err := s.generateJSON(ctx, prompt, &turn); err != nil {
		log.Printf("Advisory chat failed: %v", err)
		return "I'm having trouble accessing the hospital database right now."
	}

	if turn.BookAppointment == nil {
		return turn.Reply
	}

	// Execute the tool call and ask for a closing confirmation
	args := turn.BookAppointment
	toolResult := s.executeBooking(*args)

	followup := prompt + fmt.Sprintf(`

TOOL RESULT for book_appointment(%s, %s, %s): %s
Respond with JSON: {"reply": "one sentence confirmation or apology for the user"}`,
		args.DoctorName, args.PatientName, args.Time, toolResult)

	var closing chatTurn
	if err := s.generateJSON(ctx, followup, &closing); err != nil {
		log.Printf("Advisory chat followup failed: %v", err)
		return toolResult
	}
	if closing.Reply == "" {
		return toolResult
	}
	return closing.Reply
}

func (s *AdvisoryService) executeBooking(args bookAppointmentArgs) string {
	if s.appointments == nil {
		return "Error: appointment booking is not available."
	}
	appt, err := s.appointments.Book(models.Appointment{
		DoctorName:  args.DoctorName,
		PatientName: args.PatientName,
		Time:        args.Time,
		Reason:      args.Reason,
		Status:      models.AppointmentConfirmed,
	})
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return fmt.Sprintf("Success: Appointment %s booked for %s with %s at %s.", appt.ID, appt.PatientName, appt.DoctorName, appt.Time)
}

func (s *AdvisoryService) buildChatPrompt(history []ChatMessage, message string, snap state.HospitalState) string {
	type waitingPatient struct {
		Name      string `json:"name"`
		Condition string `json:"condition"`
		Acuity    int    `json:"acuity"`
	}
	type doctorEntry struct {
		Name    string `json:"name"`
		Role    string `json:"role"`
		Fatigue string `json:"fatigue"`
		Status  string `json:"status"`
	}

	var waiting []waitingPatient
	for _, p := range snap.Patients {
		if p.Status == models.PatientWaiting {
			waiting = append(waiting, waitingPatient{Name: p.Name, Condition: p.Condition, Acuity: p.AcuityScore})
		}
	}

	occupied := 0
	for _, b := range snap.Beds {
		if b.IsOccupied {
			occupied++
		}
	}

	var criticalInventory []string
	for _, i := range snap.Inventory {
		if i.CurrentStock <= i.ReorderThreshold {
			criticalInventory = append(criticalInventory, fmt.Sprintf("%s (%d left)", i.ItemName, i.CurrentStock))
		}
	}

	var doctors []doctorEntry
	for _, m := range snap.Staff {
		if m.Role != models.RoleDoctor && m.Role != models.RoleSpecialist {
			continue
		}
		status := "Available"
		if m.CurrentFatigueScore > 70 {
			status = "High Fatigue"
		}
		doctors = append(doctors, doctorEntry{
			Name:    m.Name,
			Role:    m.Role,
			Fatigue: fmt.Sprintf("%d%%", m.CurrentFatigueScore),
			Status:  status,
		})
	}

	recent := snap.Appointments
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}

	contextData, _ := json.Marshal(map[string]interface{}{
		"waiting_patients": waiting,
		"bed_status": map[string]int{
			"total":    len(snap.Beds),
			"occupied": occupied,
		},
		"critical_inventory":  criticalInventory,
		"doctors_available":   doctors,
		"recent_appointments": recent,
	})

	var b strings.Builder
	fmt.Fprintf(&b, `You are the hospital operations assistant. You have access to real-time hospital data.

LIVE DATA (JSON):
%s

CAPABILITIES:
1. Answer questions about patient status, beds, and inventory.
2. Check DOCTOR AVAILABILITY using the 'doctors_available' list above.
3. BOOK APPOINTMENTS by emitting a book_appointment tool call.

RULES:
- If asked for availability, list doctors with fatigue < 70%%.
- If asked to book an appointment, ask for missing details (Patient Name, Time, Reason) if not provided.
- Be concise.

Respond ONLY with JSON, either:
{"reply": "your answer"}
or, to book:
{"book_appointment": {"doctorName": "...", "patientName": "...", "time": "...", "reason": "..."}}

CONVERSATION:
`, contextData)

	for _, turn := range history {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Text)
	}
	fmt.Fprintf(&b, "user: %s\n", message)
	return b.String()
}
