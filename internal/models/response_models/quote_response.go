package response_models

type FieldErrorView struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Key     string `json:"key"`
	Message string `json:"message"`
}

type DialogView struct {
	Kind        string           `json:"kind"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Errors      []FieldErrorView `json:"errors,omitempty"`
}

type ReviewLine struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type WizardView struct {
	Step           int              `json:"step"`
	MaxSteps       int              `json:"max_steps"`
	ServiceType    string           `json:"service_type,omitempty"`
	Answers        map[string]any   `json:"answers"`
	Status         string           `json:"status"`
	Outcome        string           `json:"outcome,omitempty"`
	Errors         []FieldErrorView `json:"errors"`
	Dialog         *DialogView      `json:"dialog,omitempty"`
	FormError      *FieldErrorView  `json:"form_error,omitempty"`
	Review         []ReviewLine     `json:"review,omitempty"`
	SuccessMessage string           `json:"success_message,omitempty"`
}

// BlurResult is the verdict for a single field plus the refreshed wizard.
type BlurResult struct {
	Error  *FieldErrorView `json:"error,omitempty"`
	Wizard WizardView      `json:"wizard"`
}
