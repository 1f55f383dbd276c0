package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"freightline/internal/i18n"
	"freightline/internal/models/response_models"
	"freightline/internal/quote"
	v "freightline/internal/validation"
	mem "freightline/pkg/memcache"
	"freightline/pkg/utils"
)

type QuoteServiceInterface interface {
	Start(previousID, lang string) (string, response_models.WizardView)
	Get(id, lang string) (response_models.WizardView, error)
	Discard(id string) error
	SetAnswers(id, lang string, answers map[string]any) (response_models.WizardView, error)
	Blur(id, lang, field string) (response_models.BlurResult, error)
	SelectServiceType(id, lang, serviceType string) (response_models.WizardView, error)
	SelectEquipment(id, lang, code string) (response_models.WizardView, error)
	SelectGauge(id, lang, gauge string) (response_models.WizardView, error)
	Next(id, lang string) (response_models.WizardView, error)
	Previous(id, lang string) (response_models.WizardView, error)
	RequestReset(id, lang string) (response_models.WizardView, error)
	Confirm(id, lang string) (response_models.WizardView, error)
	Cancel(id, lang string) (response_models.WizardView, error)
	Submit(ctx context.Context, id, lang string) (response_models.WizardView, error)
}

type QuoteService struct {
	sessions   mem.SessionStore[*quote.Wizard]
	relay      MailRelay
	translator i18n.Translator
	recipients []string
	log        *zap.Logger
}

func NewQuoteService(
	sessions mem.SessionStore[*quote.Wizard],
	relay MailRelay,
	translator i18n.Translator,
	recipients []string,
	log *zap.Logger,
) QuoteServiceInterface {
	return &QuoteService{
		sessions:   sessions,
		relay:      relay,
		translator: translator,
		recipients: recipients,
		log:        log,
	}
}

// Start discards the caller's previous wizard, if any, and opens a fresh one.
func (s *QuoteService) Start(previousID, lang string) (string, response_models.WizardView) {
	if previousID != "" {
		s.sessions.Delete(previousID)
	}
	id := s.sessions.Create()
	return id, wizardView(s.translator, lang, quote.New().Snapshot(), "")
}

func (s *QuoteService) Get(id, lang string) (response_models.WizardView, error) {
	return s.command(id, lang, func(*quote.Wizard) (quote.Outcome, error) { return "", nil })
}

func (s *QuoteService) Discard(id string) error {
	if !s.sessions.Delete(id) {
		return utils.ErrSessionNotFound
	}
	return nil
}

// SetAnswers applies the changes in field priority order so side effects
// (service type and equipment purges) happen before dependent fields are set.
// The batch runs on a copy of the wizard and is kept only if every change applies.
func (s *QuoteService) SetAnswers(id, lang string, answers map[string]any) (response_models.WizardView, error) {
	return s.command(id, lang, func(w *quote.Wizard) (quote.Outcome, error) {
		draft := w.Clone()
		if st, ok := answers[v.FieldServiceType]; ok {
			if err := draft.SetAnswer(v.FieldServiceType, st); err != nil {
				return "", fmt.Errorf("%s: %w", v.FieldServiceType, err)
			}
		}
		for _, f := range orderedKeys(answers) {
			if f == v.FieldServiceType {
				continue
			}
			if err := draft.SetAnswer(f, answers[f]); err != nil {
				return "", fmt.Errorf("%s: %w", f, err)
			}
		}
		*w = *draft
		return "", nil
	})
}

func orderedKeys(answers map[string]any) []string {
	out := make([]string, 0, len(answers))
	for _, f := range quote.FieldOrder {
		if _, ok := answers[f]; ok {
			out = append(out, f)
		}
	}
	for f := range answers {
		if !quote.IsKnownField(f) && f != v.FieldServiceType {
			out = append(out, f) // rejected by SetAnswer
		}
	}
	return out
}

func (s *QuoteService) Blur(id, lang, field string) (response_models.BlurResult, error) {
	var res response_models.BlurResult
	view, err := s.command(id, lang, func(w *quote.Wizard) (quote.Outcome, error) {
		fe, err := w.Blur(field)
		if fe != nil {
			ev := errorView(s.translator, lang, *fe)
			res.Error = &ev
		}
		return "", err
	})
	res.Wizard = view
	return res, err
}

func (s *QuoteService) SelectServiceType(id, lang, serviceType string) (response_models.WizardView, error) {
	return s.command(id, lang, func(w *quote.Wizard) (quote.Outcome, error) {
		return "", w.SelectServiceType(serviceType)
	})
}

func (s *QuoteService) SelectEquipment(id, lang, code string) (response_models.WizardView, error) {
	return s.command(id, lang, func(w *quote.Wizard) (quote.Outcome, error) {
		return "", w.SelectEquipment(code)
	})
}

func (s *QuoteService) SelectGauge(id, lang, gauge string) (response_models.WizardView, error) {
	return s.command(id, lang, func(w *quote.Wizard) (quote.Outcome, error) {
		return "", w.SelectGauge(gauge)
	})
}

func (s *QuoteService) Next(id, lang string) (response_models.WizardView, error) {
	return s.command(id, lang, (*quote.Wizard).Advance)
}

func (s *QuoteService) Previous(id, lang string) (response_models.WizardView, error) {
	return s.command(id, lang, func(w *quote.Wizard) (quote.Outcome, error) {
		w.Retreat()
		return "", nil
	})
}

func (s *QuoteService) RequestReset(id, lang string) (response_models.WizardView, error) {
	return s.command(id, lang, func(w *quote.Wizard) (quote.Outcome, error) {
		if err := w.RequestReset(); err != nil {
			return "", err
		}
		return quote.OutcomeNeedsConfirmation, nil
	})
}

func (s *QuoteService) Confirm(id, lang string) (response_models.WizardView, error) {
	return s.command(id, lang, (*quote.Wizard).Confirm)
}

func (s *QuoteService) Cancel(id, lang string) (response_models.WizardView, error) {
	return s.command(id, lang, (*quote.Wizard).Cancel)
}

// Submit serializes the wizard under the session lock, relays the email with the
// lock released, then records the result. The wizard's submitting status rejects
// a second submit in the meantime.
func (s *QuoteService) Submit(ctx context.Context, id, lang string) (response_models.WizardView, error) {
	var sub quote.Submission
	view, err := s.command(id, lang, func(w *quote.Wizard) (quote.Outcome, error) {
		var err error
		sub, err = w.BeginSubmission()
		return "", err
	})
	if errors.Is(err, quote.ErrServiceTypeMissing) {
		// the wizard already carries the form-level error
		return view, nil
	}
	if err != nil {
		return view, err
	}

	relayErr := s.send(ctx, sub, lang)
	if relayErr != nil {
		s.log.Error("quote submission failed",
			zap.String("session_id", id),
			zap.String("service_type", string(sub.ServiceType)),
			zap.Error(relayErr))
	} else {
		s.log.Info("quote submitted",
			zap.String("session_id", id),
			zap.String("service_type", string(sub.ServiceType)))
	}

	return s.command(id, lang, func(w *quote.Wizard) (quote.Outcome, error) {
		w.FinishSubmission(relayErr)
		return "", nil
	})
}

func (s *QuoteService) send(ctx context.Context, sub quote.Submission, lang string) error {
	body, err := sub.HTML(func(key string) string { return s.translator.T(lang, key) })
	if err != nil {
		return err
	}
	msg := Message{To: s.recipients, Subject: sub.Subject(), HTML: body}
	for _, l := range sub.Lines {
		if l.Field == v.FieldEmail {
			msg.ReplyTo = strings.TrimSpace(l.Value)
		}
	}
	return s.relay.Send(ctx, msg)
}

// command runs fn on the session's wizard under its lock and renders the result.
func (s *QuoteService) command(id, lang string, fn func(*quote.Wizard) (quote.Outcome, error)) (response_models.WizardView, error) {
	var view response_models.WizardView
	err := s.sessions.With(id, func(w *quote.Wizard) error {
		outcome, err := fn(w)
		view = wizardView(s.translator, lang, w.Snapshot(), outcome)
		return err
	})
	return view, classify(err)
}

// classify maps wizard and store errors onto the API error classes.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mem.ErrNotFound):
		return utils.ErrSessionNotFound
	case errors.Is(err, quote.ErrUnknownField),
		errors.Is(err, quote.ErrUnsupportedValue),
		errors.Is(err, quote.ErrInvalidServiceType),
		errors.Is(err, quote.ErrInvalidEquipment),
		errors.Is(err, quote.ErrInvalidGauge):
		return fmt.Errorf("%w: %w", utils.ErrInvalidInput, err)
	case errors.Is(err, quote.ErrEquipmentNotApplicable),
		errors.Is(err, quote.ErrGaugeNotApplicable),
		errors.Is(err, quote.ErrFieldNotApplicable),
		errors.Is(err, quote.ErrConfirmationPending),
		errors.Is(err, quote.ErrNoPendingConfirmation),
		errors.Is(err, quote.ErrSubmissionInProgress),
		errors.Is(err, quote.ErrNotOnReviewStep):
		return fmt.Errorf("%w: %w", utils.ErrConflict, err)
	}
	return err
}
