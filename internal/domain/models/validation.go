package models

// ValidationResult maps field names to the first failing message.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

func NewValidationResult() ValidationResult {
	return ValidationResult{Valid: true, Errors: map[string]string{}}
}

// Add records a message unless the field already has one.
func (r *ValidationResult) Add(field, message string) {
	if r.Errors == nil {
		r.Errors = map[string]string{}
	}
	if _, ok := r.Errors[field]; ok {
		return
	}
	r.Errors[field] = message
	r.Valid = false
}

func (r ValidationResult) Field(field string) (string, bool) {
	msg, ok := r.Errors[field]
	return msg, ok
}
