package quote

import v "freightline/internal/validation"

type DialogKind string

const (
	// DialogErrorOverride lists unresolved step-two errors and lets the visitor
	// continue anyway.
	DialogErrorOverride DialogKind = "error_override"
	// DialogResetConfirm asks before the branch reset wipes step-two answers.
	DialogResetConfirm DialogKind = "reset_confirm"
)

// Dialog is a pending two-outcome confirmation. Nothing changes until Confirm.
type Dialog struct {
	Kind   DialogKind
	Errors []v.FieldError
}

func (d Dialog) clone() Dialog {
	out := Dialog{Kind: d.Kind}
	if len(d.Errors) > 0 {
		out.Errors = append([]v.FieldError(nil), d.Errors...)
	}
	return out
}

// RequestReset opens the branch reset confirmation.
func (w *Wizard) RequestReset() error {
	if err := w.guard(); err != nil {
		return err
	}
	w.dialog = &Dialog{Kind: DialogResetConfirm}
	return nil
}

// Confirm accepts the pending dialog. An error override force-advances past the
// listed errors; a reset confirmation runs ResetBranch.
func (w *Wizard) Confirm() (Outcome, error) {
	if w.dialog == nil {
		return "", ErrNoPendingConfirmation
	}
	kind := w.dialog.Kind
	w.dialog = nil
	switch kind {
	case DialogErrorOverride:
		w.step = clampStep(w.step + 1)
		return OutcomeAdvanced, nil
	case DialogResetConfirm:
		w.ResetBranch()
		return OutcomeReset, nil
	}
	return OutcomeUnchanged, nil
}

// Cancel closes the pending dialog without touching answers. Errors that the
// override dialog listed stay visible inline.
func (w *Wizard) Cancel() (Outcome, error) {
	if w.dialog == nil {
		return "", ErrNoPendingConfirmation
	}
	w.dialog = nil
	return OutcomeDismissed, nil
}
