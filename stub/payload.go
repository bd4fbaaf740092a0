package stub

import "github.com/visitnotes/consult"

// SamplePayload returns a fully populated consultation summary for the given
// patient and visit date. The clinical content is fictional.
func SamplePayload(patientName, visitDate string) consult.ConsultationSummaryResponse {
	return consult.ConsultationSummaryResponse{
		ClinicalSummary: consult.ClinicalSummary{
			PatientName:             patientName,
			VisitDate:               visitDate,
			ChiefComplaint:          "Back pain and bilateral foot pain",
			HistoryOfPresentIllness: "Patient presents with lower back pain radiating to both feet. Pain began approximately 2 weeks ago, rated 6/10 in severity.",
			VitalSigns:              "BP: 120/80, HR: 72, Temp: 98.6F",
			PhysicalExamFindings: []consult.PhysicalExamFinding{
				{BodyPart: "Back", Finding: "Tenderness in L4-L5 region, reduced range of motion"},
			},
			Assessments: []consult.Assessment{
				{Diagnosis: "Lower back pain, likely musculoskeletal origin", ICDCode: "M54.5", Severity: "moderate"},
			},
			AdditionalNotes: "Recommend follow-up imaging if symptoms persist.",
		},
		NextSteps: consult.NextSteps{
			Actions: []consult.NextStepAction{
				{ActionType: "diagnostic", Description: "Order lumbar spine X-ray", Priority: "high", Timeline: "within 48 hours"},
				{ActionType: "treatment", Description: "Prescribe NSAIDs (Ibuprofen 400mg TID)", Priority: "high", Timeline: "immediate"},
				{ActionType: "follow-up", Description: "Schedule re-evaluation visit", Priority: "medium", Timeline: "2 weeks"},
			},
			FollowUpAppointment: "2 weeks",
			RedFlags:            []string{"Severe or worsening pain", "Numbness or weakness in legs"},
		},
		PatientEmail: consult.PatientFollowUpEmail{
			Greeting:          "Dear " + patientName + ",",
			SummaryOfFindings: "Your back pain appears to be related to muscle and joint strain in your lower back area.",
			TreatmentPlan:     "We'll take some X-rays and prescribe pain medication to help with discomfort.",
			PatientInstructions: []consult.PatientInstruction{
				{Category: "medication", Instruction: "Take ibuprofen as directed with food"},
				{Category: "activity", Instruction: "Avoid heavy lifting until re-evaluation"},
			},
			WarningSigns:       []string{"Severe pain", "Numbness in legs"},
			NextStepsTimeline:  "We'll contact you within 48 hours with X-ray appointment details.",
			Closing:            "Take care and don't hesitate to call if you have concerns.",
			PhysicianSignature: "Dr. Sarah Smith, MD",
		},
		GenerationTimestamp: "2025-11-09T10:30:00Z",
		ModelVersion:        "stub-1",
	}
}
