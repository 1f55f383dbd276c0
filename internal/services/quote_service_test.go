package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightline/internal/quote"
	"freightline/pkg/utils"
)

func identity() map[string]any {
	return map[string]any{
		"name":  "Amal Haddad",
		"email": "amal@example.com",
		"phone": "+971 50 123 4567",
	}
}

func landShipment() map[string]any {
	return map[string]any{
		"serviceType":         "land",
		"companyNameSupplier": "Gulf Traders",
		"originAddress":       "Jebel Ali, Dubai",
		"destinationAddress":  "Riyadh Dry Port",
		"descriptionOfGoods":  "Machine spare parts",
		"shippingTerm":        "FOB",
		"numberOfPackages":    "12",
		"cargoDimensions":     "120x80x100",
		"weightValue":         "850",
		"loadingAssistance":   "yes",
	}
}

func toReview(t *testing.T, s *QuoteService) string {
	t.Helper()
	id, view := s.Start("", "en")
	require.Equal(t, 1, view.Step)

	_, err := s.SetAnswers(id, "en", identity())
	require.NoError(t, err)
	view, err = s.Next(id, "en")
	require.NoError(t, err)
	require.Equal(t, 2, view.Step)

	_, err = s.SetAnswers(id, "en", landShipment())
	require.NoError(t, err)
	view, err = s.Next(id, "en")
	require.NoError(t, err)
	require.Equal(t, string(quote.OutcomeAdvanced), view.Outcome)
	require.Equal(t, 3, view.Step)
	return id
}

func TestQuoteReviewIsTranslated(t *testing.T) {
	s := newQuoteService(t, &fakeRelay{})
	id := toReview(t, s)

	view, err := s.Get(id, "en")
	require.NoError(t, err)
	require.NotEmpty(t, view.Review)
	assert.Equal(t, "name", view.Review[0].Field)
	assert.Equal(t, "Full name", view.Review[0].Label)

	var labels []string
	for _, l := range view.Review {
		labels = append(labels, l.Label)
	}
	assert.Contains(t, labels, "shipping terms")
}

func TestQuoteSubmitSuccess(t *testing.T) {
	relay := &fakeRelay{}
	s := newQuoteService(t, relay)
	id := toReview(t, s)

	view, err := s.Submit(context.Background(), id, "en")
	require.NoError(t, err)

	assert.Equal(t, 1, view.Step)
	assert.Empty(t, view.Answers)
	assert.Equal(t, string(quote.StatusSucceeded), view.Status)
	assert.Equal(t, "Thank you! Your quote request has been sent.", view.SuccessMessage)

	sent := relay.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"ops@freightline.example"}, sent[0].To)
	assert.Equal(t, "New Quote Request - LAND Freight", sent[0].Subject)
	assert.Equal(t, "amal@example.com", sent[0].ReplyTo)
	assert.Contains(t, sent[0].HTML, "<p><strong>shipping terms:</strong> FOB</p>")
	assert.Contains(t, sent[0].HTML, "<p><strong>Full name:</strong> Amal Haddad</p>")
}

func TestQuoteSubmitRelayFailure(t *testing.T) {
	relay := &fakeRelay{err: errRelayDown}
	s := newQuoteService(t, relay)
	id := toReview(t, s)

	view, err := s.Submit(context.Background(), id, "en")
	require.NoError(t, err)

	assert.Equal(t, 3, view.Step)
	assert.Equal(t, string(quote.StatusFailed), view.Status)
	require.NotNil(t, view.FormError)
	assert.Equal(t, "errorMessage", view.FormError.Key)
	assert.Equal(t, "An error occurred while sending your request. Please try again.", view.FormError.Message)
	assert.Equal(t, "Amal Haddad", view.Answers["name"])
}

func TestQuoteSubmitWithoutServiceType(t *testing.T) {
	relay := &fakeRelay{}
	s := newQuoteService(t, relay)
	id, _ := s.Start("", "en")

	_, err := s.SetAnswers(id, "en", identity())
	require.NoError(t, err)
	_, err = s.Next(id, "en")
	require.NoError(t, err)

	shipment := landShipment()
	delete(shipment, "serviceType")
	delete(shipment, "loadingAssistance")
	_, err = s.SetAnswers(id, "en", shipment)
	require.NoError(t, err)

	view, err := s.Next(id, "en")
	require.NoError(t, err)
	require.Equal(t, string(quote.OutcomeNeedsConfirmation), view.Outcome)
	require.NotNil(t, view.Dialog)
	assert.Equal(t, "Some details are missing", view.Dialog.Title)
	assert.Equal(t, "serviceType", view.Dialog.Errors[0].Field)

	view, err = s.Confirm(id, "en")
	require.NoError(t, err)
	require.Equal(t, 3, view.Step)

	view, err = s.Submit(context.Background(), id, "en")
	require.NoError(t, err)
	require.NotNil(t, view.FormError)
	assert.Equal(t, "errorMessage", view.FormError.Key)
	assert.Empty(t, relay.messages())
}

func TestQuoteDoubleSubmitRejected(t *testing.T) {
	relay := &fakeRelay{entered: make(chan struct{}), release: make(chan struct{})}
	s := newQuoteService(t, relay)
	id := toReview(t, s)

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), id, "en")
		done <- err
	}()
	<-relay.entered

	_, err := s.Submit(context.Background(), id, "en")
	assert.ErrorIs(t, err, utils.ErrConflict)
	assert.ErrorIs(t, err, quote.ErrSubmissionInProgress)

	view, err := s.Get(id, "en")
	require.NoError(t, err, "reads are served while the relay runs")
	assert.Equal(t, string(quote.StatusSubmitting), view.Status)

	close(relay.release)
	require.NoError(t, <-done)
	assert.Len(t, relay.messages(), 1)
}

func TestQuoteErrorsAreClassified(t *testing.T) {
	s := newQuoteService(t, &fakeRelay{})

	_, err := s.Get("missing", "en")
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)

	id, _ := s.Start("", "en")
	_, err = s.SetAnswers(id, "en", map[string]any{"favouriteColour": "blue"})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = s.SelectEquipment(id, "en", "LCL")
	assert.ErrorIs(t, err, utils.ErrConflict, "equipment needs sea freight")

	_, err = s.Confirm(id, "en")
	assert.ErrorIs(t, err, utils.ErrConflict)

	_, err = s.SelectServiceType(id, "en", "rail")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestQuoteStartReplacesPreviousSession(t *testing.T) {
	s := newQuoteService(t, &fakeRelay{})
	first, _ := s.Start("", "en")
	second, _ := s.Start(first, "en")

	assert.NotEqual(t, first, second)
	_, err := s.Get(first, "en")
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)

	require.NoError(t, s.Discard(second))
	assert.ErrorIs(t, s.Discard(second), utils.ErrSessionNotFound)
}

func TestQuoteBlur(t *testing.T) {
	s := newQuoteService(t, &fakeRelay{})
	id, _ := s.Start("", "ar")
	_, err := s.SetAnswers(id, "ar", map[string]any{"email": "not-an-email"})
	require.NoError(t, err)

	res, err := s.Blur(id, "ar", "email")
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	assert.Equal(t, "invalidEmail", res.Error.Key)
	assert.Equal(t, "يرجى إدخال بريد إلكتروني صالح.", res.Error.Message)
	require.Len(t, res.Wizard.Errors, 1)

	_, err = s.SetAnswers(id, "ar", map[string]any{"email": "amal@example.com"})
	require.NoError(t, err)
	res, err = s.Blur(id, "ar", "email")
	require.NoError(t, err)
	assert.Nil(t, res.Error)
	assert.Empty(t, res.Wizard.Errors)
}

func TestQuoteSetAnswersAppliesServiceTypeFirst(t *testing.T) {
	s := newQuoteService(t, &fakeRelay{})
	id, _ := s.Start("", "en")

	view, err := s.SetAnswers(id, "en", map[string]any{
		"equipmentNeeded": "20OT",
		"serviceType":     "sea",
	})
	require.NoError(t, err)
	assert.Equal(t, "sea", view.ServiceType)
	assert.Equal(t, "20OT", view.Answers["equipmentNeeded"])
	assert.Equal(t, "in", view.Answers["cargoGaugeType"])

	view, err = s.SelectGauge(id, "en", "out")
	require.NoError(t, err)
	assert.Equal(t, "out", view.Answers["cargoGaugeType"])
}

func TestQuoteResetFlow(t *testing.T) {
	s := newQuoteService(t, &fakeRelay{})
	id, _ := s.Start("", "en")
	_, err := s.SetAnswers(id, "en", identity())
	require.NoError(t, err)
	_, err = s.Next(id, "en")
	require.NoError(t, err)
	_, err = s.SetAnswers(id, "en", landShipment())
	require.NoError(t, err)

	view, err := s.RequestReset(id, "en")
	require.NoError(t, err)
	require.NotNil(t, view.Dialog)
	assert.Equal(t, "reset_confirm", view.Dialog.Kind)

	view, err = s.Confirm(id, "en")
	require.NoError(t, err)
	assert.Equal(t, string(quote.OutcomeReset), view.Outcome)
	assert.Empty(t, view.ServiceType)
	assert.Equal(t, "Gulf Traders", view.Answers["companyNameSupplier"])
	assert.NotContains(t, view.Answers, "originAddress")

	view, err = s.Previous(id, "en")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Step)
}

func TestQuoteSetAnswersIsAllOrNothing(t *testing.T) {
	s := newQuoteService(t, &fakeRelay{})
	id, _ := s.Start("", "en")
	_, err := s.SetAnswers(id, "en", map[string]any{
		"name":             "Old",
		"serviceType":      "sea",
		"equipmentNeeded":  "LCL",
		"numberOfPackages": "12",
	})
	require.NoError(t, err)
	before, err := s.Get(id, "en")
	require.NoError(t, err)

	view, err := s.SetAnswers(id, "en", map[string]any{
		"serviceType": "air",
		"name":        "New",
		"temperature": "-18",
	})
	assert.ErrorIs(t, err, utils.ErrConflict)
	assert.ErrorIs(t, err, quote.ErrFieldNotApplicable)
	assert.Equal(t, before, view)

	after, err := s.Get(id, "en")
	require.NoError(t, err)
	assert.Equal(t, "sea", after.ServiceType)
	assert.Equal(t, "Old", after.Answers["name"])
	assert.Equal(t, "12", after.Answers["numberOfPackages"])
}

func TestQuoteSetAnswersAcceptsBlankHiddenInputs(t *testing.T) {
	s := newQuoteService(t, &fakeRelay{})
	id, _ := s.Start("", "en")
	_, err := s.SetAnswers(id, "en", map[string]any{"serviceType": "sea", "equipmentNeeded": "20REEF", "temperature": "-18"})
	require.NoError(t, err)

	view, err := s.SetAnswers(id, "en", map[string]any{
		"serviceType":     "air",
		"name":            "New",
		"equipmentNeeded": "",
		"temperature":     "",
		"deliveryUrgency": "express",
	})
	require.NoError(t, err)
	assert.Equal(t, "air", view.ServiceType)
	assert.Equal(t, "New", view.Answers["name"])
	assert.Equal(t, "express", view.Answers["deliveryUrgency"])
	assert.NotContains(t, view.Answers, "equipmentNeeded")
	assert.NotContains(t, view.Answers, "temperature")
}

func TestQuotePreviousIsIgnoredWhileSubmitting(t *testing.T) {
	relay := &fakeRelay{entered: make(chan struct{}), release: make(chan struct{})}
	s := newQuoteService(t, relay)
	id := toReview(t, s)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Submit(context.Background(), id, "en")
	}()
	<-relay.entered

	view, err := s.Previous(id, "en")
	require.NoError(t, err)
	assert.Equal(t, 3, view.Step)

	close(relay.release)
	<-done
}
