package response_models

type ContactResult struct {
	Sent    bool             `json:"sent"`
	Message string           `json:"message,omitempty"`
	Errors  []FieldErrorView `json:"errors,omitempty"`
}
