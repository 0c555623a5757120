package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	"workforce/internal/platform/validation"
	"workforce/internal/transport/http/api"
)

type ValidationIssue = validation.Issue

// Validator collects issues that struct tags cannot express, such as
// cross-field rules or values parsed by hand.
type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{issues: make([]ValidationIssue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.issues = append(v.issues, ValidationIssue{Field: strings.TrimSpace(field), Reason: reason})
}

// Struct runs the tag based rules on payload and keeps any failures.
func (v *Validator) Struct(payload any) {
	for _, issue := range validation.Struct(payload) {
		v.Add(issue.Field, issue.Reason)
	}
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

func (v *Validator) Issues() []ValidationIssue {
	if v == nil || len(v.issues) == 0 {
		return nil
	}
	out := make([]ValidationIssue, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	FailValidation(w, requestID, v.Issues())
	return true
}

// Validate runs the tag based rules and writes a 400 when payload fails.
// It reports whether the handler may continue.
func Validate(w http.ResponseWriter, requestID string, payload any) bool {
	v := NewValidator()
	v.Struct(payload)
	return !v.Reject(w, requestID)
}

func FailValidation(w http.ResponseWriter, requestID string, issues []ValidationIssue) {
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"invalid_input",
		"payload validation failed",
		map[string]any{"fields": issues},
		requestID,
	)
}

// DecodeJSON reads one JSON object into dst. Unknown fields are rejected and
// an oversized body maps to 413.
func DecodeJSON(w http.ResponseWriter, r *http.Request, requestID string, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
			return false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return false
	}
	return true
}
