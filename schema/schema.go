// Package schema validates a Complete envelope's raw payload before it is
// trusted. Validation is total and field-by-field: it walks the whole
// document and collects every violation into one ValidationError instead of
// short-circuiting, so a failure report names everything that is wrong.
//
// Enumerated fields are matched case-sensitively against their exact
// lower-case tokens. No normalization is performed.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/visitnotes/consult"
)

// visitDateLayout matches the submission-side date format.
const visitDateLayout = "2006-01-02"

// ErrSchema is the sentinel matched by errors.Is for any validation failure.
var ErrSchema = errors.New("payload schema violation")

// Issue is one field-level violation: the path that failed and why.
type Issue struct {
	Path   string
	Reason string
}

func (i Issue) String() string { return i.Path + ": " + i.Reason }

// ValidationError aggregates every Issue found in a single validation pass.
type ValidationError struct {
	Issues []Issue
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("%v: %s", ErrSchema, e.Issues[0])
	}
	return fmt.Sprintf("%v: %d violations", ErrSchema, len(e.Issues))
}

// Is matches ErrSchema so callers can classify without unwrapping manually.
func (e *ValidationError) Is(target error) bool { return target == ErrSchema }

func (e *ValidationError) add(path, reason string) {
	e.Issues = append(e.Issues, Issue{Path: path, Reason: reason})
}

// Closed enum token sets. Matched exactly; "Mild" is not "mild".
var (
	severities  = tokenSet("mild", "moderate", "severe")
	actionTypes = tokenSet("diagnostic", "treatment", "referral", "follow-up", "education")
	priorities  = tokenSet("high", "medium", "low")
)

func tokenSet(tokens ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

func tokenList(set map[string]struct{}) string {
	tokens := make([]string, 0, len(set))
	for t := range set {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return strings.Join(tokens, ", ")
}

// Validate checks raw against the consultation summary shape. On success it
// returns the decoded payload; on failure the error is a *ValidationError
// listing every violation found.
func Validate(raw json.RawMessage) (consult.ConsultationSummaryResponse, error) {
	var zero consult.ConsultationSummaryResponse
	v := &ValidationError{}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		v.add("$", "malformed JSON: "+err.Error())
		return zero, v
	}

	if root := asObject(v, "$", doc); root != nil {
		if cs := requiredObject(v, root, "$", "clinical_summary"); cs != nil {
			validateClinicalSummary(v, "$.clinical_summary", cs)
		}
		if ns := requiredObject(v, root, "$", "next_steps"); ns != nil {
			validateNextSteps(v, "$.next_steps", ns)
		}
		if pe := requiredObject(v, root, "$", "patient_email"); pe != nil {
			validatePatientEmail(v, "$.patient_email", pe)
		}
		requiredString(v, root, "$", "generation_timestamp")
		optionalString(v, root, "$", "model_version")
	}

	if len(v.Issues) > 0 {
		return zero, v
	}

	var out consult.ConsultationSummaryResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		// Shape checks above make this unreachable for well-formed input.
		v.add("$", "decode: "+err.Error())
		return zero, v
	}
	return out, nil
}

func validateClinicalSummary(v *ValidationError, path string, obj map[string]any) {
	requiredString(v, obj, path, "patient_name")
	requiredDate(v, obj, path, "visit_date")
	requiredString(v, obj, path, "chief_complaint")
	requiredString(v, obj, path, "history_of_present_illness")
	optionalString(v, obj, path, "vital_signs")
	optionalString(v, obj, path, "additional_notes")

	for i, el := range requiredArray(v, obj, path, "physical_exam_findings") {
		elPath := fmt.Sprintf("%s.physical_exam_findings[%d]", path, i)
		if f := asObject(v, elPath, el); f != nil {
			requiredString(v, f, elPath, "body_part")
			requiredString(v, f, elPath, "finding")
		}
	}

	for i, el := range requiredArray(v, obj, path, "assessments") {
		elPath := fmt.Sprintf("%s.assessments[%d]", path, i)
		if a := asObject(v, elPath, el); a != nil {
			requiredString(v, a, elPath, "diagnosis")
			optionalString(v, a, elPath, "icd_code")
			optionalEnum(v, a, elPath, "severity", severities)
		}
	}
}

func validateNextSteps(v *ValidationError, path string, obj map[string]any) {
	for i, el := range requiredArray(v, obj, path, "actions") {
		elPath := fmt.Sprintf("%s.actions[%d]", path, i)
		if a := asObject(v, elPath, el); a != nil {
			requiredEnum(v, a, elPath, "action_type", actionTypes)
			requiredString(v, a, elPath, "description")
			optionalEnum(v, a, elPath, "priority", priorities)
			optionalString(v, a, elPath, "timeline")
		}
	}
	optionalString(v, obj, path, "follow_up_appointment")
	optionalStringArray(v, obj, path, "red_flags")
}

func validatePatientEmail(v *ValidationError, path string, obj map[string]any) {
	requiredString(v, obj, path, "greeting")
	requiredString(v, obj, path, "summary_of_findings")
	requiredString(v, obj, path, "treatment_plan")
	requiredString(v, obj, path, "next_steps_timeline")
	requiredString(v, obj, path, "closing")
	requiredString(v, obj, path, "physician_signature")

	for i, el := range requiredArray(v, obj, path, "patient_instructions") {
		elPath := fmt.Sprintf("%s.patient_instructions[%d]", path, i)
		if in := asObject(v, elPath, el); in != nil {
			requiredString(v, in, elPath, "category")
			requiredString(v, in, elPath, "instruction")
		}
	}

	requiredStringArray(v, obj, path, "warning_signs")
}

// typeName reports the JSON type of a decoded value for violation messages.
func typeName(val any) string {
	switch val.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", val)
	}
}

func asObject(v *ValidationError, path string, val any) map[string]any {
	obj, ok := val.(map[string]any)
	if !ok {
		v.add(path, "expected object, got "+typeName(val))
		return nil
	}
	return obj
}

func requiredObject(v *ValidationError, obj map[string]any, path, key string) map[string]any {
	val, ok := obj[key]
	if !ok || val == nil {
		v.add(path+"."+key, "required object is missing")
		return nil
	}
	return asObject(v, path+"."+key, val)
}

func requiredString(v *ValidationError, obj map[string]any, path, key string) string {
	val, ok := obj[key]
	if !ok || val == nil {
		v.add(path+"."+key, "required string is missing")
		return ""
	}
	s, ok := val.(string)
	if !ok {
		v.add(path+"."+key, "expected string, got "+typeName(val))
		return ""
	}
	return s
}

// optionalString tolerates an absent or null value.
func optionalString(v *ValidationError, obj map[string]any, path, key string) {
	val, ok := obj[key]
	if !ok || val == nil {
		return
	}
	if _, ok := val.(string); !ok {
		v.add(path+"."+key, "expected string, got "+typeName(val))
	}
}

// requiredDate checks a required calendar-date string in YYYY-MM-DD form.
// The value must name a real date, so "2025-13-45" is a violation.
func requiredDate(v *ValidationError, obj map[string]any, path, key string) {
	s := requiredString(v, obj, path, key)
	if s == "" {
		return
	}
	if _, err := time.Parse(visitDateLayout, s); err != nil {
		v.add(path+"."+key, fmt.Sprintf("expected YYYY-MM-DD date, got %q", s))
	}
}

// requiredArray enforces the declared-array invariant: the field may be
// empty but never absent or null.
func requiredArray(v *ValidationError, obj map[string]any, path, key string) []any {
	val, ok := obj[key]
	if !ok || val == nil {
		v.add(path+"."+key, "required array is missing")
		return nil
	}
	arr, ok := val.([]any)
	if !ok {
		v.add(path+"."+key, "expected array, got "+typeName(val))
		return nil
	}
	return arr
}

func requiredStringArray(v *ValidationError, obj map[string]any, path, key string) {
	for i, el := range requiredArray(v, obj, path, key) {
		if _, ok := el.(string); !ok {
			v.add(fmt.Sprintf("%s.%s[%d]", path, key, i), "expected string, got "+typeName(el))
		}
	}
}

// optionalStringArray tolerates an absent or null field but checks elements
// when the array is present.
func optionalStringArray(v *ValidationError, obj map[string]any, path, key string) {
	val, ok := obj[key]
	if !ok || val == nil {
		return
	}
	arr, ok := val.([]any)
	if !ok {
		v.add(path+"."+key, "expected array, got "+typeName(val))
		return
	}
	for i, el := range arr {
		if _, ok := el.(string); !ok {
			v.add(fmt.Sprintf("%s.%s[%d]", path, key, i), "expected string, got "+typeName(el))
		}
	}
}

func requiredEnum(v *ValidationError, obj map[string]any, path, key string, allowed map[string]struct{}) {
	val, ok := obj[key]
	if !ok || val == nil {
		v.add(path+"."+key, "required string is missing")
		return
	}
	checkEnum(v, path, key, val, allowed)
}

// optionalEnum tolerates an absent or null value but rejects anything
// outside the closed set, including case variants.
func optionalEnum(v *ValidationError, obj map[string]any, path, key string, allowed map[string]struct{}) {
	val, ok := obj[key]
	if !ok || val == nil {
		return
	}
	checkEnum(v, path, key, val, allowed)
}

func checkEnum(v *ValidationError, path, key string, val any, allowed map[string]struct{}) {
	s, ok := val.(string)
	if !ok {
		v.add(path+"."+key, "expected string, got "+typeName(val))
		return
	}
	if _, ok := allowed[s]; !ok {
		v.add(path+"."+key, fmt.Sprintf("%q is not one of: %s", s, tokenList(allowed)))
	}
}
