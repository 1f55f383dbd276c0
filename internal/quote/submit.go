package quote

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	v "freightline/internal/validation"
)

// Line is one rendered answer in the outgoing quote request.
type Line struct {
	Field    string
	LabelKey string
	Value    string
}

// Submission is the serialized quote handed to the mail relay.
type Submission struct {
	ServiceType ServiceType
	Lines       []Line
}

// Subject is the email subject line for the quote request.
func (s Submission) Subject() string {
	return fmt.Sprintf("New Quote Request - %s Freight", strings.ToUpper(string(s.ServiceType)))
}

// Labeler turns a label key into display text.
type Labeler func(key string) string

var bodyTpl = template.Must(template.New("quoteBody").Parse(
	`{{range .}}<p><strong>{{.Label}}:</strong> {{.Value}}</p>
{{end}}`))

// HTML renders every line as "label: value", escaping visitor input.
func (s Submission) HTML(label Labeler) (string, error) {
	type row struct{ Label, Value string }
	rows := make([]row, 0, len(s.Lines))
	for _, l := range s.Lines {
		rows = append(rows, row{Label: label(l.LabelKey), Value: l.Value})
	}
	var buf bytes.Buffer
	if err := bodyTpl.Execute(&buf, rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// LabelKey is the translation key used to label field in review and email output.
func LabelKey(field string) string {
	if field == v.FieldShippingTerm {
		return "shippingTerms"
	}
	return field
}

// Serialize lists the non-empty answers in field priority order.
func Serialize(service ServiceType, answers Answers) Submission {
	sub := Submission{ServiceType: service}
	for _, f := range FieldOrder {
		if !answers.Present(f) {
			continue
		}
		sub.Lines = append(sub.Lines, Line{
			Field:    f,
			LabelKey: LabelKey(f),
			Value:    strings.TrimSpace(answers.Text(f)),
		})
	}
	return sub
}

// Review returns the lines shown on the review step.
func (w *Wizard) Review() []Line {
	return Serialize(w.serviceType, w.answers).Lines
}

// BeginSubmission serializes the answers and marks the wizard as submitting. The
// submitting flag rejects a second submission until FinishSubmission is called.
func (w *Wizard) BeginSubmission() (Submission, error) {
	if err := w.guard(); err != nil {
		return Submission{}, err
	}
	if w.step != MaxSteps {
		return Submission{}, ErrNotOnReviewStep
	}
	if w.serviceType == ServiceUnset {
		fe := v.SubmissionFailed()
		w.formError = &fe
		w.status = StatusFailed
		return Submission{}, ErrServiceTypeMissing
	}
	w.status = StatusSubmitting
	w.formError = nil
	return Serialize(w.serviceType, w.answers), nil
}

// FinishSubmission records the relay result. Success resets the wizard to a fresh
// start; failure keeps every answer and sets the form-level error for a retry.
func (w *Wizard) FinishSubmission(relayErr error) {
	if w.status != StatusSubmitting {
		return
	}
	if relayErr != nil {
		fe := v.SubmissionFailed()
		w.formError = &fe
		w.status = StatusFailed
		return
	}
	*w = *New()
	w.status = StatusSucceeded
}
