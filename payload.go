package consult

// ConsultationSummaryResponse is the validated terminal payload of a session.
// It is constructed only by schema validation of a Complete envelope and is
// immutable thereafter; a new submission discards it.
type ConsultationSummaryResponse struct {
	ClinicalSummary     ClinicalSummary      `json:"clinical_summary"`
	NextSteps           NextSteps            `json:"next_steps"`
	PatientEmail        PatientFollowUpEmail `json:"patient_email"`
	GenerationTimestamp string               `json:"generation_timestamp"`
	ModelVersion        string               `json:"model_version,omitempty"`
}

// ClinicalSummary is the clinician-facing record of the visit.
type ClinicalSummary struct {
	PatientName             string                `json:"patient_name"`
	VisitDate               string                `json:"visit_date"`
	ChiefComplaint          string                `json:"chief_complaint"`
	HistoryOfPresentIllness string                `json:"history_of_present_illness"`
	VitalSigns              string                `json:"vital_signs,omitempty"`
	PhysicalExamFindings    []PhysicalExamFinding `json:"physical_exam_findings"`
	Assessments             []Assessment          `json:"assessments"`
	AdditionalNotes         string                `json:"additional_notes,omitempty"`
}

// PhysicalExamFinding is one examined body part and what was observed.
type PhysicalExamFinding struct {
	BodyPart string `json:"body_part"`
	Finding  string `json:"finding"`
}

// Assessment is one diagnosis with optional ICD-10 code and severity.
// Severity, when present, is one of the exact lower-case tokens
// "mild", "moderate", "severe".
type Assessment struct {
	Diagnosis string `json:"diagnosis"`
	ICDCode   string `json:"icd_code,omitempty"`
	Severity  string `json:"severity,omitempty"`
}

// NextSteps is the physician follow-up plan.
type NextSteps struct {
	Actions             []NextStepAction `json:"actions"`
	FollowUpAppointment string           `json:"follow_up_appointment,omitempty"`
	RedFlags            []string         `json:"red_flags,omitempty"`
}

// NextStepAction is one action item. ActionType is one of the exact
// lower-case tokens "diagnostic", "treatment", "referral", "follow-up",
// "education"; Priority, when present, one of "high", "medium", "low".
type NextStepAction struct {
	ActionType  string `json:"action_type"`
	Description string `json:"description"`
	Priority    string `json:"priority,omitempty"`
	Timeline    string `json:"timeline,omitempty"`
}

// PatientFollowUpEmail is the patient-friendly follow-up message.
type PatientFollowUpEmail struct {
	Greeting            string               `json:"greeting"`
	SummaryOfFindings   string               `json:"summary_of_findings"`
	TreatmentPlan       string               `json:"treatment_plan"`
	PatientInstructions []PatientInstruction `json:"patient_instructions"`
	WarningSigns        []string             `json:"warning_signs"`
	NextStepsTimeline   string               `json:"next_steps_timeline"`
	Closing             string               `json:"closing"`
	PhysicianSignature  string               `json:"physician_signature"`
}

// PatientInstruction is one actionable instruction with a free-text category
// (medication, activity, self-care, warning, ...).
type PatientInstruction struct {
	Category    string `json:"category"`
	Instruction string `json:"instruction"`
}
