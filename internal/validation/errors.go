package validation

// ErrorKind tags why a field failed. Kinds are stable identifiers; the text shown to a
// user always comes from the translation catalog via FieldError.Key.
type ErrorKind string

const (
	KindRequired              ErrorKind = "required"
	KindTooShort              ErrorKind = "too_short"
	KindInvalidFormat         ErrorKind = "invalid_format"
	KindForbiddenCharacter    ErrorKind = "contains_forbidden_character"
	KindConditionallyRequired ErrorKind = "conditionally_required"
	KindServiceTypeRequired   ErrorKind = "service_type_required"
	KindEquipmentRequired     ErrorKind = "equipment_required"
	KindFormSubmissionFailed  ErrorKind = "form_submission_failed"
)

// FormField is the pseudo field that carries form-level errors.
const FormField = "form"

// FieldError is a single validation verdict attached to one field.
type FieldError struct {
	Field string    `json:"field"`
	Kind  ErrorKind `json:"kind"`
	Key   string    `json:"key"`
}

// SubmissionFailed is the form-level error reported when the mail relay rejects a message.
func SubmissionFailed() FieldError {
	return FieldError{Field: FormField, Kind: KindFormSubmissionFailed, Key: "errorMessage"}
}

// Fields returns the distinct field names in errs, in order.
func Fields(errs []FieldError) []string {
	seen := make(map[string]struct{}, len(errs))
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		if _, ok := seen[e.Field]; ok {
			continue
		}
		seen[e.Field] = struct{}{}
		out = append(out, e.Field)
	}
	return out
}

// Contains reports whether errs has an entry for field.
func Contains(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
