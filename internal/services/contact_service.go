package services

import (
	"bytes"
	"context"
	"html/template"
	"strings"

	"go.uber.org/zap"

	"freightline/internal/i18n"
	"freightline/internal/models/request_models"
	"freightline/internal/models/response_models"
	v "freightline/internal/validation"
)

const contactSubject = "New Contact Form Submission"

type ContactServiceInterface interface {
	ValidateField(field, value, lang string) *response_models.FieldErrorView
	Submit(ctx context.Context, req request_models.ContactRequest, lang string) response_models.ContactResult
}

type ContactService struct {
	relay      MailRelay
	translator i18n.Translator
	recipients []string
	log        *zap.Logger
}

func NewContactService(relay MailRelay, translator i18n.Translator, recipients []string, log *zap.Logger) ContactServiceInterface {
	return &ContactService{relay: relay, translator: translator, recipients: recipients, log: log}
}

func contactRules() []v.Rule {
	return []v.Rule{v.NameRule(), v.EmailRule(), v.PhoneRule(), v.CompanyRule(), v.MessageRule()}
}

func contactValues(req request_models.ContactRequest) v.Map {
	return v.Map{
		v.FieldName:    req.Name,
		v.FieldEmail:   req.Email,
		v.FieldPhone:   req.Phone,
		v.FieldCompany: req.Company,
		v.FieldMessage: req.Message,
	}
}

func (s *ContactService) ValidateField(field, value, lang string) *response_models.FieldErrorView {
	for _, r := range contactRules() {
		if r.Field != field {
			continue
		}
		if fe := r.Evaluate(v.Map{field: value}); fe != nil {
			ev := errorView(s.translator, lang, *fe)
			return &ev
		}
	}
	return nil
}

// Submit validates every field and relays the message when nothing fails.
func (s *ContactService) Submit(ctx context.Context, req request_models.ContactRequest, lang string) response_models.ContactResult {
	if errs := v.Apply(contactRules(), contactValues(req)); len(errs) > 0 {
		return response_models.ContactResult{Errors: errorViews(s.translator, lang, errs)}
	}

	body, err := contactBody(req, func(key string) string { return s.translator.T(lang, key) })
	if err == nil {
		err = s.relay.Send(ctx, Message{
			To:      s.recipients,
			Subject: contactSubject,
			HTML:    body,
			ReplyTo: strings.TrimSpace(req.Email),
		})
	}
	if err != nil {
		s.log.Error("contact submission failed", zap.Error(err))
		return response_models.ContactResult{
			Errors: errorViews(s.translator, lang, []v.FieldError{v.SubmissionFailed()}),
		}
	}
	return response_models.ContactResult{Sent: true, Message: s.translator.T(lang, "contactSuccess")}
}

var contactTpl = template.Must(template.New("contactBody").Parse(
	`{{range .}}<p><strong>{{.Label}}:</strong> {{.Value}}</p>
{{end}}`))

// contactBody renders the submission. The message keeps its line breaks.
func contactBody(req request_models.ContactRequest, label func(string) string) (string, error) {
	type row struct {
		Label string
		Value template.HTML
	}
	text := func(s string) template.HTML { return template.HTML(template.HTMLEscapeString(strings.TrimSpace(s))) }

	rows := []row{
		{label(v.FieldName), text(req.Name)},
		{label(v.FieldEmail), text(req.Email)},
		{label(v.FieldPhone), text(req.Phone)},
	}
	if strings.TrimSpace(req.Company) != "" {
		rows = append(rows, row{label(v.FieldCompany), text(req.Company)})
	}
	msg := strings.ReplaceAll(template.HTMLEscapeString(strings.TrimSpace(req.Message)), "\n", "<br>")
	rows = append(rows, row{label(v.FieldMessage), template.HTML(msg)})

	var buf bytes.Buffer
	if err := contactTpl.Execute(&buf, rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}
