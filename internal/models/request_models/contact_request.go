package request_models

// ContactRequest carries no binding rules: every field is checked by the
// validation package so the client gets per-field messages.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message"`
}

type ContactFieldRequest struct {
	Field string `json:"field" binding:"required,oneof=name email phone company message"`
	Value string `json:"value"`
}
