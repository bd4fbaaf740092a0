// Package format renders a validated consultation payload's sub-objects as
// plain UTF-8 text for display, clipboard copy, or file export. Every
// function is pure and deterministic: the same input produces byte-identical
// output on every call.
package format

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/visitnotes/consult"
)

// ClinicalSummary renders the clinician-facing summary document.
func ClinicalSummary(s consult.ClinicalSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Patient: %s\n", s.PatientName)
	fmt.Fprintf(&b, "Date: %s\n\n", s.VisitDate)
	fmt.Fprintf(&b, "Chief Complaint: %s\n\n", s.ChiefComplaint)
	fmt.Fprintf(&b, "History of Present Illness:\n%s\n", s.HistoryOfPresentIllness)

	if s.VitalSigns != "" {
		fmt.Fprintf(&b, "\nVital Signs:\n%s\n", s.VitalSigns)
	}

	if len(s.PhysicalExamFindings) > 0 {
		b.WriteString("\nPhysical Examination:\n")
		for _, f := range s.PhysicalExamFindings {
			fmt.Fprintf(&b, "- %s: %s\n", f.BodyPart, f.Finding)
		}
	}

	b.WriteString("\nAssessment:\n")
	for i, a := range s.Assessments {
		fmt.Fprintf(&b, "%d. %s", i+1, a.Diagnosis)
		if a.ICDCode != "" {
			fmt.Fprintf(&b, " (ICD-10: %s)", a.ICDCode)
		}
		if a.Severity != "" {
			fmt.Fprintf(&b, " - Severity: %s", a.Severity)
		}
		b.WriteByte('\n')
	}

	if s.AdditionalNotes != "" {
		fmt.Fprintf(&b, "\nAdditional Notes:\n%s\n", s.AdditionalNotes)
	}
	return b.String()
}

// NextSteps renders the physician follow-up plan.
func NextSteps(n consult.NextSteps) string {
	var b strings.Builder
	for i, a := range n.Actions {
		fmt.Fprintf(&b, "%d. [%s] %s", i+1, strings.ToUpper(a.ActionType), a.Description)
		if a.Timeline != "" {
			fmt.Fprintf(&b, " (Timeline: %s)", a.Timeline)
		}
		if a.Priority != "" {
			fmt.Fprintf(&b, " [Priority: %s]", a.Priority)
		}
		b.WriteByte('\n')
	}

	if n.FollowUpAppointment != "" {
		fmt.Fprintf(&b, "\nFollow-up Appointment: %s\n", n.FollowUpAppointment)
	}

	if len(n.RedFlags) > 0 {
		b.WriteString("\n⚠️ Red Flags - Call immediately if:\n")
		for _, flag := range n.RedFlags {
			fmt.Fprintf(&b, "- %s\n", flag)
		}
	}
	return b.String()
}

// PatientEmail renders the patient-friendly follow-up message.
func PatientEmail(e consult.PatientFollowUpEmail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", e.Greeting)
	fmt.Fprintf(&b, "%s\n\n", e.SummaryOfFindings)
	fmt.Fprintf(&b, "What we're doing next:\n%s\n\n", e.TreatmentPlan)
	b.WriteString("What you should do:\n")

	for _, in := range e.PatientInstructions {
		fmt.Fprintf(&b, "• [%s] %s\n", titleCase(in.Category), in.Instruction)
	}

	if len(e.WarningSigns) > 0 {
		b.WriteString("\n⚠️ Call us immediately if you experience:\n")
		for _, w := range e.WarningSigns {
			fmt.Fprintf(&b, "• %s\n", w)
		}
	}

	fmt.Fprintf(&b, "\nNext Steps:\n%s\n", e.NextStepsTimeline)
	fmt.Fprintf(&b, "\n%s\n\n%s", e.Closing, e.PhysicianSignature)
	return b.String()
}

// titleCase upper-cases the first letter of each word and lower-cases the
// rest, treating any non-letter as a word boundary ("self-care" becomes
// "Self-Care").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
