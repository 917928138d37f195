package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator to produce structured field
// errors. All failures are collected, never short-circuited at the first.
type Validator struct {
	v *validator.Validate
}

// New constructs a Validator.
func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// FieldErrors validates s against its validate tags and maps each failure to
// a wire field name and reason key. reasons is keyed by
// "<StructField>.<tag>" with "<StructField>" as the catch-all; fields maps
// struct field names to wire names, defaulting to the lowercased field name.
// Returns nil when s is valid.
func (val *Validator) FieldErrors(s any, fields, reasons map[string]string) map[string]string {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": "invalid_payload"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name, ok := fields[fe.StructField()]
		if !ok {
			name = strings.ToLower(fe.StructField())
		}
		reason, ok := reasons[fe.StructField()+"."+fe.Tag()]
		if !ok {
			reason = reasons[fe.StructField()]
		}
		if reason == "" {
			reason = fe.Tag()
		}
		if _, exists := out[name]; !exists {
			out[name] = reason
		}
	}
	return out
}

// Messages validates s and returns one sentence per failed field, in struct
// field order. messages is keyed by struct field name.
func (val *Validator) Messages(s any, messages map[string]string) []string {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Request body is not valid"}
	}

	seen := make(map[string]struct{}, len(verrs))
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if _, dup := seen[fe.StructField()]; dup {
			continue
		}
		seen[fe.StructField()] = struct{}{}
		if msg, ok := messages[fe.StructField()]; ok {
			out = append(out, msg)
		} else {
			out = append(out, fe.StructField()+" is not valid")
		}
	}
	return out
}
