package consult

import (
	"fmt"
	"strings"
	"time"
)

// visitDateLayout is the calendar-date form the service accepts.
const visitDateLayout = "2006-01-02"

// minNotesLen matches the service-side minimum for consultation notes.
const minNotesLen = 10

// ConsultationRequest carries one clinician submission. It is immutable after
// creation: the session reads it, nothing mutates it.
type ConsultationRequest struct {
	PatientName string
	VisitDate   string // calendar date, YYYY-MM-DD
	Notes       string // free text, passed through unmodified
}

// Validate checks the submission constraints. The notes themselves are never
// sanitized or rewritten; only their presence is checked.
func (r ConsultationRequest) Validate() error {
	if strings.TrimSpace(r.PatientName) == "" {
		return fmt.Errorf("%w: patient name is required", ErrValidation)
	}
	if _, err := time.Parse(visitDateLayout, r.VisitDate); err != nil {
		return fmt.Errorf("%w: visit date must be YYYY-MM-DD, got %q", ErrValidation, r.VisitDate)
	}
	if len(strings.TrimSpace(r.Notes)) < minNotesLen {
		return fmt.Errorf("%w: consultation notes must be at least %d characters", ErrValidation, minNotesLen)
	}
	return nil
}
