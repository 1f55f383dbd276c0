package services

import (
	"freightline/internal/i18n"
	"freightline/internal/models/response_models"
	"freightline/internal/quote"
	v "freightline/internal/validation"
)

func errorView(t i18n.Translator, lang string, fe v.FieldError) response_models.FieldErrorView {
	return response_models.FieldErrorView{
		Field:   fe.Field,
		Kind:    string(fe.Kind),
		Key:     fe.Key,
		Message: t.T(lang, fe.Key),
	}
}

func errorViews(t i18n.Translator, lang string, errs []v.FieldError) []response_models.FieldErrorView {
	out := make([]response_models.FieldErrorView, 0, len(errs))
	for _, fe := range errs {
		out = append(out, errorView(t, lang, fe))
	}
	return out
}

var dialogText = map[quote.DialogKind][2]string{
	quote.DialogErrorOverride: {"errorFormTitle", "errorFormDesc"},
	quote.DialogResetConfirm:  {"resetConfirmTitle", "resetConfirmInfo"},
}

func wizardView(t i18n.Translator, lang string, st quote.State, outcome quote.Outcome) response_models.WizardView {
	view := response_models.WizardView{
		Step:        st.Step,
		MaxSteps:    st.MaxSteps,
		ServiceType: string(st.ServiceType),
		Answers:     st.Answers,
		Status:      string(st.Status),
		Outcome:     string(outcome),
		Errors:      errorViews(t, lang, st.Errors),
	}
	if st.Dialog != nil {
		keys := dialogText[st.Dialog.Kind]
		view.Dialog = &response_models.DialogView{
			Kind:        string(st.Dialog.Kind),
			Title:       t.T(lang, keys[0]),
			Description: t.T(lang, keys[1]),
			Errors:      errorViews(t, lang, st.Dialog.Errors),
		}
	}
	if st.FormError != nil {
		fe := errorView(t, lang, *st.FormError)
		view.FormError = &fe
	}
	if st.Step == st.MaxSteps {
		for _, l := range quote.Serialize(st.ServiceType, st.Answers).Lines {
			view.Review = append(view.Review, response_models.ReviewLine{
				Field: l.Field,
				Label: t.T(lang, l.LabelKey),
				Value: l.Value,
			})
		}
	}
	if st.Status == quote.StatusSucceeded {
		view.SuccessMessage = t.T(lang, "quoteSuccess")
	}
	return view
}
