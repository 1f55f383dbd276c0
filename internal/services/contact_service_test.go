package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"freightline/internal/models/request_models"
	"freightline/pkg/utils"
)

func validContact() request_models.ContactRequest {
	return request_models.ContactRequest{
		Name:    "Youssef Karim",
		Email:   "youssef@example.com",
		Phone:   "+216 71 000 000",
		Message: "Do you ship reefers to Sfax?\nWe need two per month.",
	}
}

func TestContactSubmitSends(t *testing.T) {
	relay := &fakeRelay{}
	s := NewContactService(relay, catalog(t), []string{"hello@freightline.example"}, zap.NewNop())

	res := s.Submit(context.Background(), validContact(), "en")
	require.True(t, res.Sent)
	assert.Equal(t, "Thank you! Your message has been sent.", res.Message)

	sent := relay.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "New Contact Form Submission", sent[0].Subject)
	assert.Equal(t, "youssef@example.com", sent[0].ReplyTo)
	assert.Contains(t, sent[0].HTML, "Do you ship reefers to Sfax?<br>We need two per month.")
	assert.NotContains(t, sent[0].HTML, "Company")
}

func TestContactBodyEscapes(t *testing.T) {
	req := validContact()
	req.Company = "A&B <Logistics>"
	req.Message = "<script>alert(1)</script>\nthanks"

	body, err := contactBody(req, func(k string) string { return k })
	require.NoError(t, err)
	assert.Contains(t, body, "<strong>company:</strong> A&amp;B &lt;Logistics&gt;")
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;<br>thanks")
}

func TestContactSubmitValidation(t *testing.T) {
	relay := &fakeRelay{}
	s := NewContactService(relay, catalog(t), []string{"hello@freightline.example"}, zap.NewNop())

	res := s.Submit(context.Background(), request_models.ContactRequest{
		Name:    "R2D2",
		Email:   "r2d2",
		Company: "X",
		Message: "hi",
	}, "en")

	assert.False(t, res.Sent)
	var keys []string
	for _, e := range res.Errors {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"nameContainsNumbers", "invalidEmail", "phoneRequired", "companyTooShort", "messageTooShort"}, keys)
	assert.Empty(t, relay.messages())
}

func TestContactSubmitRelayFailure(t *testing.T) {
	s := NewContactService(&fakeRelay{err: errRelayDown}, catalog(t), []string{"hello@freightline.example"}, zap.NewNop())

	res := s.Submit(context.Background(), validContact(), "en")
	assert.False(t, res.Sent)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "form", res.Errors[0].Field)
	assert.Equal(t, "form_submission_failed", res.Errors[0].Kind)
}

func TestContactValidateField(t *testing.T) {
	s := NewContactService(&fakeRelay{}, catalog(t), nil, zap.NewNop())

	fe := s.ValidateField("phone", "12ab", "en")
	require.NotNil(t, fe)
	assert.Equal(t, "invalidPhone", fe.Key)

	assert.Nil(t, s.ValidateField("company", "", "en"), "company is optional")
	assert.Nil(t, s.ValidateField("message", "A long enough message", "en"))
}

func TestPages(t *testing.T) {
	s := NewPageService(catalog(t))

	p, err := s.GetPage("about", "en")
	require.NoError(t, err)
	assert.Equal(t, "About us", p.Title)

	p, err = s.GetPage("services", "ar")
	require.NoError(t, err)
	assert.Equal(t, "خدماتنا", p.Title)
	assert.Equal(t, "الشحن الجوي، والشحن البحري بالحاويات الكاملة والجزئية، والنقل البري.", p.Description)

	_, err = s.GetPage("careers", "en")
	assert.ErrorIs(t, err, utils.ErrPageNotFound)

	assert.Len(t, s.ListPages("en"), 3)
}
