package quote

import (
	"sort"

	v "freightline/internal/validation"
)

// MaxSteps is the number of wizard steps: contact details, shipping details, review.
const MaxSteps = 3

// Wizard owns one visitor's quote request while it is being filled in. It is not safe
// for concurrent use; callers serialize access per session.
type Wizard struct {
	step        int
	serviceType ServiceType
	answers     Answers
	status      SubmissionStatus
	errors      map[string]v.FieldError
	dialog      *Dialog
	formError   *v.FieldError
}

// New returns a wizard on step one with no answers.
func New() *Wizard {
	return &Wizard{
		step:    1,
		answers: Answers{},
		status:  StatusIdle,
		errors:  map[string]v.FieldError{},
	}
}

// Clone returns an independent copy of w.
func (w *Wizard) Clone() *Wizard {
	c := *w
	c.answers = w.answers.Clone()
	c.errors = make(map[string]v.FieldError, len(w.errors))
	for f, fe := range w.errors {
		c.errors[f] = fe
	}
	if w.dialog != nil {
		d := w.dialog.clone()
		c.dialog = &d
	}
	if w.formError != nil {
		fe := *w.formError
		c.formError = &fe
	}
	return &c
}

// State is a read-only snapshot of a wizard.
type State struct {
	Step        int
	MaxSteps    int
	ServiceType ServiceType
	Answers     Answers
	Status      SubmissionStatus
	Errors      []v.FieldError
	Dialog      *Dialog
	FormError   *v.FieldError
}

func (w *Wizard) Snapshot() State {
	st := State{
		Step:        w.step,
		MaxSteps:    MaxSteps,
		ServiceType: w.serviceType,
		Answers:     w.answers.Clone(),
		Status:      w.status,
		Errors:      w.Errors(),
	}
	if w.dialog != nil {
		d := w.dialog.clone()
		st.Dialog = &d
	}
	if w.formError != nil {
		fe := *w.formError
		st.FormError = &fe
	}
	return st
}

func (w *Wizard) Step() int { return w.step }
func (w *Wizard) ServiceType() ServiceType { return w.serviceType }
func (w *Wizard) Status() SubmissionStatus { return w.status }
func (w *Wizard) Answer(field string) any { return w.answers[field] }
func (w *Wizard) PendingDialog() *Dialog { return w.dialog }
func (w *Wizard) FormError() *v.FieldError { return w.formError }
func (w *Wizard) values() v.Values { return values{answers: w.answers, serviceType: w.serviceType} }
func (w *Wizard) Error(field string) (v.FieldError, bool) {
	fe, ok := w.errors[field]
	return fe, ok
}

// Errors returns the inline field errors in field priority order.
func (w *Wizard) Errors() []v.FieldError {
	out := make([]v.FieldError, 0, len(w.errors))
	for _, fe := range w.errors {
		out = append(out, fe)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iok := fieldRank[out[i].Field]
		rj, jok := fieldRank[out[j].Field]
		if iok != jok {
			return iok
		}
		if ri != rj {
			return ri < rj
		}
		return out[i].Field < out[j].Field
	})
	return out
}

// guard rejects state changes while a modal confirmation or a submission is open.
func (w *Wizard) guard() error {
	if w.dialog != nil {
		return ErrConfirmationPending
	}
	if w.status == StatusSubmitting {
		return ErrSubmissionInProgress
	}
	return nil
}

// replaceErrors swaps the stored errors for fields with errs. Errors on other
// fields are left alone.
func (w *Wizard) replaceErrors(fields []string, errs []v.FieldError) {
	for _, f := range fields {
		delete(w.errors, f)
	}
	for _, fe := range errs {
		w.errors[fe.Field] = fe
	}
}

func clampStep(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxSteps {
		return MaxSteps
	}
	return n
}

// Advance validates the current step and moves forward when nothing blocks.
// On step one errors are reported inline. On step two the context fields are
// checked first and block inline; branch errors open the error override dialog.
func (w *Wizard) Advance() (Outcome, error) {
	if err := w.guard(); err != nil {
		return "", err
	}
	switch w.step {
	case 1:
		schema := StepOneSchema()
		errs := schema.Validate(w.values())
		w.replaceErrors(schema.Fields(), errs)
		if len(errs) > 0 {
			return OutcomeBlocked, nil
		}
	case 2:
		ctx := ContextSchema()
		errs := ctx.Validate(w.values())
		if len(errs) > 0 {
			w.replaceErrors(ctx.Fields(), errs)
			return OutcomeBlocked, nil
		}
		branch := w.branchSchema()
		errs = branch.Validate(w.values())
		w.replaceErrors(branch.Fields(), errs)
		if len(errs) > 0 {
			w.dialog = &Dialog{Kind: DialogErrorOverride, Errors: errs}
			return OutcomeNeedsConfirmation, nil
		}
	default:
		return OutcomeUnchanged, nil
	}
	w.step = clampStep(w.step + 1)
	return OutcomeAdvanced, nil
}

// Retreat moves back one step, keeping answers and errors. An open dialog is
// dismissed. Nothing moves while a submission is in flight.
func (w *Wizard) Retreat() {
	if w.status == StatusSubmitting {
		return
	}
	w.dialog = nil
	w.step = clampStep(w.step - 1)
}

func (w *Wizard) branchSchema() Schema {
	return BranchSchema(w.serviceType, w.answers.Text(v.FieldEquipmentNeeded))
}

// SetAnswer records an input change. Blank values remove the field and whatever
// depends on it. Selections with side effects are routed to their dedicated
// commands, and fields the current selections hide are refused.
func (w *Wizard) SetAnswer(field string, value any) error {
	if err := w.guard(); err != nil {
		return err
	}
	if field == v.FieldServiceType {
		s, _ := value.(string)
		return w.SelectServiceType(s)
	}
	if !IsKnownField(field) {
		return ErrUnknownField
	}
	val, ok := normalize(value)
	if !ok {
		return ErrUnsupportedValue
	}
	if val == nil {
		w.clear(field)
		return nil
	}
	switch field {
	case v.FieldEquipmentNeeded:
		s, _ := val.(string)
		return w.SelectEquipment(s)
	case v.FieldCargoGaugeType:
		s, _ := val.(string)
		return w.SelectGauge(s)
	}
	if !Applies(field, w.serviceType, w.answers) {
		return ErrFieldNotApplicable
	}
	w.answers[field] = val
	return nil
}

// clear removes field along with the answers that only exist because of it.
func (w *Wizard) clear(field string) {
	switch field {
	case v.FieldEquipmentNeeded:
		w.answers.purge(v.FieldTemperature, v.FieldTemperatureUnit, v.FieldCargoGaugeType, v.FieldContainerCapacity)
	case v.FieldCargoGaugeType:
		w.answers.purge(v.FieldContainerCapacity)
	}
	delete(w.answers, field)
}

// Blur validates a single field against the rules active for it and records or
// clears its inline error.
func (w *Wizard) Blur(field string) (*v.FieldError, error) {
	if field != v.FieldServiceType && !IsKnownField(field) {
		return nil, ErrUnknownField
	}
	fe, ok := StepOneSchema().ValidateField(field, w.values())
	if !ok {
		// fields the active branch exempts have no rule and always pass
		fe, _ = w.branchSchema().ValidateField(field, w.values())
	}
	if fe == nil {
		delete(w.errors, field)
		return nil, nil
	}
	w.errors[field] = *fe
	return fe, nil
}

// SelectServiceType switches the shipping mode. Every branch-specific answer is
// purged, including when the same mode is picked again.
func (w *Wizard) SelectServiceType(s string) error {
	if err := w.guard(); err != nil {
		return err
	}
	t, err := ParseServiceType(s)
	if err != nil {
		return err
	}
	w.serviceType = t
	w.answers.purge(branchFields...)
	for _, f := range branchFields {
		delete(w.errors, f)
	}
	delete(w.errors, v.FieldServiceType)
	return nil
}

// SelectEquipment picks the sea freight container. Reefer-only and open-top-only
// answers are dropped when they no longer apply.
func (w *Wizard) SelectEquipment(code string) error {
	if err := w.guard(); err != nil {
		return err
	}
	if w.serviceType != ServiceSea {
		return ErrEquipmentNotApplicable
	}
	if !knownEquipment(code) {
		return ErrInvalidEquipment
	}
	w.answers[v.FieldEquipmentNeeded] = code
	delete(w.errors, v.FieldEquipmentNeeded)
	if !isReefer(code) {
		w.answers.purge(v.FieldTemperature, v.FieldTemperatureUnit)
	}
	if isOpenTop(code) {
		w.answers[v.FieldCargoGaugeType] = "in"
		w.answers.purge(v.FieldContainerCapacity, v.FieldCargoDimensions)
	} else {
		w.answers.purge(v.FieldCargoGaugeType, v.FieldContainerCapacity)
	}
	return nil
}

// SelectGauge records whether open-top cargo fits the container. In-gauge cargo
// has no capacity or dimensions.
func (w *Wizard) SelectGauge(gauge string) error {
	if err := w.guard(); err != nil {
		return err
	}
	if !isOpenTop(w.answers.Text(v.FieldEquipmentNeeded)) {
		return ErrGaugeNotApplicable
	}
	switch gauge {
	case "in":
		w.answers.purge(v.FieldContainerCapacity, v.FieldCargoDimensions)
	case "out":
	default:
		return ErrInvalidGauge
	}
	w.answers[v.FieldCargoGaugeType] = gauge
	return nil
}

// ResetBranch clears everything past step one while keeping the visitor's identity.
// The shipping term and service type are cleared too.
func (w *Wizard) ResetBranch() {
	kept := Answers{}
	for _, f := range identityFields {
		if val, ok := w.answers[f]; ok {
			kept[f] = val
		}
	}
	w.answers = kept
	w.serviceType = ServiceUnset
	for f := range w.errors {
		if !isIdentityField(f) {
			delete(w.errors, f)
		}
	}
}

func isIdentityField(field string) bool {
	for _, f := range identityFields {
		if f == field {
			return true
		}
	}
	return false
}
