package quote

import "errors"

type ServiceType string

const (
	ServiceUnset ServiceType = ""
	ServiceAir   ServiceType = "air"
	ServiceSea   ServiceType = "sea"
	ServiceLand  ServiceType = "land"
)

// ParseServiceType accepts air, sea or land.
func ParseServiceType(s string) (ServiceType, error) {
	switch t := ServiceType(s); t {
	case ServiceAir, ServiceSea, ServiceLand:
		return t, nil
	}
	return ServiceUnset, ErrInvalidServiceType
}

const (
	EquipmentLCL    = "LCL"
	Equipment20REEF = "20REEF"
	Equipment40REEF = "40REEF"
	Equipment20OT   = "20OT"
	Equipment40OT   = "40OT"
)

func isReefer(code string) bool { return code == Equipment20REEF || code == Equipment40REEF }
func isOpenTop(code string) bool { return code == Equipment20OT || code == Equipment40OT }
func knownEquipment(code string) bool {
	switch code {
	case EquipmentLCL, "20ft", "40ft", "20HC", "40HC", Equipment20REEF, Equipment40REEF, Equipment20OT, Equipment40OT:
		return true
	}
	return false
}

type SubmissionStatus string

const (
	StatusIdle       SubmissionStatus = "idle"
	StatusSubmitting SubmissionStatus = "submitting"
	StatusSucceeded  SubmissionStatus = "succeeded"
	StatusFailed     SubmissionStatus = "failed"
)

// Outcome describes what a step transition did.
type Outcome string

const (
	OutcomeAdvanced          Outcome = "advanced"
	OutcomeBlocked           Outcome = "blocked"
	OutcomeNeedsConfirmation Outcome = "needs_confirmation"
	OutcomeUnchanged         Outcome = "unchanged"
	OutcomeReset             Outcome = "reset"
	OutcomeDismissed         Outcome = "dismissed"
)

var (
	ErrUnknownField           = errors.New("unknown wizard field")
	ErrUnsupportedValue       = errors.New("unsupported answer value")
	ErrInvalidServiceType     = errors.New("invalid service type")
	ErrInvalidEquipment       = errors.New("invalid equipment code")
	ErrInvalidGauge           = errors.New("invalid cargo gauge type")
	ErrEquipmentNotApplicable = errors.New("equipment applies to sea freight only")
	ErrGaugeNotApplicable     = errors.New("cargo gauge applies to open top containers only")
	ErrFieldNotApplicable     = errors.New("field does not apply to the selected shipment")
	ErrConfirmationPending    = errors.New("a confirmation is pending")
	ErrNoPendingConfirmation  = errors.New("no confirmation is pending")
	ErrSubmissionInProgress   = errors.New("submission already in progress")
	ErrNotOnReviewStep        = errors.New("quote can only be submitted from the review step")
	ErrServiceTypeMissing     = errors.New("service type is required to submit")
)
