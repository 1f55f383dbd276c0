package request_models

type SetAnswersRequest struct {
	Answers map[string]any `json:"answers" binding:"required"`
}

type BlurRequest struct {
	Field string `json:"field" binding:"required"`
}

type ServiceTypeRequest struct {
	ServiceType string `json:"serviceType" binding:"required"`
}

type EquipmentRequest struct {
	EquipmentNeeded string `json:"equipmentNeeded" binding:"required"`
}

type GaugeRequest struct {
	CargoGaugeType string `json:"cargoGaugeType" binding:"required"`
}

// QuoteAnswersFile is the YAML document read by the render-quote command.
type QuoteAnswersFile struct {
	Language    string         `yaml:"language"`
	ServiceType string         `yaml:"serviceType"`
	Answers     map[string]any `yaml:"answers"`
}
