package consult_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/visitnotes/consult"
)

func validRequest() consult.ConsultationRequest {
	return consult.ConsultationRequest{
		PatientName: "John Doe",
		VisitDate:   "2025-11-15",
		Notes:       "Patient reports headache for two weeks.",
	}
}

func TestConsultationRequest_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validRequest().Validate())

	tests := []struct {
		name   string
		mutate func(*consult.ConsultationRequest)
	}{
		{"empty patient name", func(r *consult.ConsultationRequest) { r.PatientName = "" }},
		{"whitespace patient name", func(r *consult.ConsultationRequest) { r.PatientName = "   " }},
		{"empty visit date", func(r *consult.ConsultationRequest) { r.VisitDate = "" }},
		{"non-ISO visit date", func(r *consult.ConsultationRequest) { r.VisitDate = "15/11/2025" }},
		{"empty notes", func(r *consult.ConsultationRequest) { r.Notes = "" }},
		{"notes too short", func(r *consult.ConsultationRequest) { r.Notes = "headache" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := validRequest()
			tt.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, consult.ErrValidation)
		})
	}
}

func TestConsultationRequest_NotesPassThroughUnmodified(t *testing.T) {
	t.Parallel()

	// Free text is the clinician's own; validation must not normalize it.
	req := validRequest()
	req.Notes = "  BP 120/80 <unsanitized> & verbatim\n\ttabs too  "
	require.NoError(t, req.Validate())
	assert.Equal(t, "  BP 120/80 <unsanitized> & verbatim\n\ttabs too  ", req.Notes)
}
