// Package request validates reconcile requests arriving from outside the
// process before they reach the matcher.
//
// The matcher assumes well-formed input; everything that can be wrong with a
// request (wrong JSON shapes, empty names, oversized inputs) is rejected here.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"varmatch/internal/diagnostic"
)

// Request is a validated reconcile request.
type Request struct {
	ExtractedVariables []string          `json:"extractedVariables"`
	UserPreferences    map[string]string `json:"userPreferences"`
}

// Raw is a reconcile request whose fields have not been shape-checked yet.
type Raw struct {
	ExtractedVariables json.RawMessage `json:"extractedVariables"`
	UserPreferences    json.RawMessage `json:"userPreferences"`
}

// Limits caps the size of a request. A zero field disables that cap.
type Limits struct {
	MaxPlaceholders int
	MaxPreferences  int
	MaxNameLength   int
}

// ValidationError reports a request with the wrong shape.
type ValidationError struct {
	Diagnostics *diagnostic.Diagnostics
}

func (e *ValidationError) Error() string {
	return "invalid request: " + e.Diagnostics.Error().Error()
}

// LimitError reports a well-formed request that exceeds a configured limit.
type LimitError struct {
	Field string
	Limit int
	Got   int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: %d exceeds limit of %d", e.Field, e.Got, e.Limit)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsLimitError reports whether err is (or wraps) a LimitError.
func IsLimitError(err error) bool {
	var le *LimitError
	return errors.As(err, &le)
}

// Decode parses and validates a JSON request body.
// Warnings (such as dropped empty placeholders) are returned even on success.
func Decode(data []byte, limits Limits) (Request, *diagnostic.Diagnostics, error) {
	var raw Raw

	if err := json.Unmarshal(data, &raw); err != nil {
		diags := &diagnostic.Diagnostics{}
		diags.AddError("malformed_json", fmt.Sprintf("request body is not a JSON object: %v", err), "")

		return Request{}, diags, &ValidationError{Diagnostics: diags}
	}

	return FromRaw(raw, limits)
}

// FromRaw validates the shape of each field of a raw request and applies limits.
// Missing or null fields are treated as empty.
func FromRaw(raw Raw, limits Limits) (Request, *diagnostic.Diagnostics, error) {
	diags := &diagnostic.Diagnostics{}
	req := Request{UserPreferences: map[string]string{}}

	req.ExtractedVariables = decodePlaceholders(raw.ExtractedVariables, diags)
	if prefs := decodePreferences(raw.UserPreferences, diags); prefs != nil {
		req.UserPreferences = prefs
	}

	if diags.HasErrors() {
		return Request{}, diags, &ValidationError{Diagnostics: diags}
	}

	if err := checkLimits(req, limits); err != nil {
		return Request{}, diags, err
	}

	return req, diags, nil
}

// Validate applies the non-shape checks to an already typed request:
// empty placeholders are dropped with a warning and limits are enforced.
func Validate(req Request, limits Limits) (Request, *diagnostic.Diagnostics, error) {
	diags := &diagnostic.Diagnostics{}

	out := Request{
		ExtractedVariables: make([]string, 0, len(req.ExtractedVariables)),
		UserPreferences:    req.UserPreferences,
	}
	if out.UserPreferences == nil {
		out.UserPreferences = map[string]string{}
	}

	for i, name := range req.ExtractedVariables {
		if name == "" {
			diags.AddWarning("empty_placeholder", "empty placeholder name dropped",
				fmt.Sprintf("extractedVariables[%d]", i))

			continue
		}

		out.ExtractedVariables = append(out.ExtractedVariables, name)
	}

	if err := checkLimits(out, limits); err != nil {
		return Request{}, diags, err
	}

	return out, diags, nil
}

func decodePlaceholders(data json.RawMessage, diags *diagnostic.Diagnostics) []string {
	out := []string{}
	if isAbsent(data) {
		return out
	}

	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		diags.AddError("not_a_sequence", "extractedVariables must be an array of strings", "extractedVariables")
		return nil
	}

	for i, item := range items {
		field := fmt.Sprintf("extractedVariables[%d]", i)

		name, ok := item.(string)
		if !ok {
			diags.AddError("not_a_string", fmt.Sprintf("expected string, got %s", jsonKind(item)), field)
			continue
		}

		if name == "" {
			diags.AddWarning("empty_placeholder", "empty placeholder name dropped", field)
			continue
		}

		out = append(out, name)
	}

	return out
}

func decodePreferences(data json.RawMessage, diags *diagnostic.Diagnostics) map[string]string {
	if isAbsent(data) {
		return nil
	}

	var items map[string]any
	if err := json.Unmarshal(data, &items); err != nil {
		diags.AddError("not_a_mapping", "userPreferences must be an object of string values", "userPreferences")
		return nil
	}

	out := make(map[string]string, len(items))
	for key, value := range items {
		str, ok := value.(string)
		if !ok {
			diags.AddError("not_a_string", fmt.Sprintf("expected string, got %s", jsonKind(value)),
				fmt.Sprintf("userPreferences[%q]", key))

			continue
		}

		out[key] = str
	}

	return out
}

func checkLimits(req Request, limits Limits) error {
	if limits.MaxPlaceholders > 0 && len(req.ExtractedVariables) > limits.MaxPlaceholders {
		return &LimitError{Field: "extractedVariables", Limit: limits.MaxPlaceholders, Got: len(req.ExtractedVariables)}
	}

	if limits.MaxPreferences > 0 && len(req.UserPreferences) > limits.MaxPreferences {
		return &LimitError{Field: "userPreferences", Limit: limits.MaxPreferences, Got: len(req.UserPreferences)}
	}

	if limits.MaxNameLength <= 0 {
		return nil
	}

	for i, name := range req.ExtractedVariables {
		if n := utf8.RuneCountInString(name); n > limits.MaxNameLength {
			return &LimitError{Field: fmt.Sprintf("extractedVariables[%d]", i), Limit: limits.MaxNameLength, Got: n}
		}
	}

	for key := range req.UserPreferences {
		if n := utf8.RuneCountInString(key); n > limits.MaxNameLength {
			return &LimitError{Field: fmt.Sprintf("userPreferences[%q]", key), Limit: limits.MaxNameLength, Got: n}
		}
	}

	return nil
}

func isAbsent(data json.RawMessage) bool {
	return len(data) == 0 || string(data) == "null"
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
