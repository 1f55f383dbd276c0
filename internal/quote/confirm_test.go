package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v "freightline/internal/validation"
)

// seaLCLMissingPickup is the EXW sea/LCL request with no pickup address.
func seaLCLMissingPickup(t *testing.T) *Wizard {
	t.Helper()
	w := onStepTwo(t)
	set(t, w, map[string]any{v.FieldShippingTerm: "EXW", v.FieldExactPickupAddress: ""})
	require.NoError(t, w.SelectServiceType("sea"))
	require.NoError(t, w.SelectEquipment("LCL"))
	set(t, w, cargo())
	return w
}

func TestErrorOverrideConfirmForcesAdvance(t *testing.T) {
	w := seaLCLMissingPickup(t)

	out, err := w.Advance()
	require.NoError(t, err)
	require.Equal(t, OutcomeNeedsConfirmation, out)

	d := w.PendingDialog()
	require.NotNil(t, d)
	assert.Equal(t, DialogErrorOverride, d.Kind)
	var keys []string
	for _, fe := range d.Errors {
		keys = append(keys, fe.Key)
	}
	assert.Contains(t, keys, "exactPickupAddressRequired")

	out, err = w.Confirm()
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdvanced, out)
	assert.Equal(t, 3, w.Step())
	assert.Nil(t, w.PendingDialog())
}

func TestErrorOverrideCancelStaysWithErrorsVisible(t *testing.T) {
	w := seaLCLMissingPickup(t)
	_, err := w.Advance()
	require.NoError(t, err)

	out, err := w.Cancel()
	require.NoError(t, err)
	assert.Equal(t, OutcomeDismissed, out)
	assert.Equal(t, 2, w.Step())
	assert.Nil(t, w.PendingDialog())

	fe, ok := w.Error(v.FieldExactPickupAddress)
	require.True(t, ok)
	assert.Equal(t, "exactPickupAddressRequired", fe.Key)
}

func TestConfirmWithoutDialog(t *testing.T) {
	w := New()
	_, err := w.Confirm()
	assert.ErrorIs(t, err, ErrNoPendingConfirmation)
	_, err = w.Cancel()
	assert.ErrorIs(t, err, ErrNoPendingConfirmation)
}

func TestResetConfirmKeepsIdentity(t *testing.T) {
	w := onStepTwo(t)
	set(t, w, map[string]any{v.FieldShippingTerm: "EXW", v.FieldExactPickupAddress: "Warehouse 4, Al Quoz", v.FieldAdditionalInfo: "fragile"})
	require.NoError(t, w.SelectServiceType("sea"))
	require.NoError(t, w.SelectEquipment("40REEF"))
	set(t, w, map[string]any{v.FieldTemperature: "-20"})
	_, err := w.Blur(v.FieldNumberOfPackages)
	require.NoError(t, err)

	require.NoError(t, w.RequestReset())
	assert.Equal(t, DialogResetConfirm, w.PendingDialog().Kind)

	out, err := w.Confirm()
	require.NoError(t, err)
	assert.Equal(t, OutcomeReset, out)

	st := w.Snapshot()
	assert.Equal(t, Answers{
		v.FieldName:                "Amal Haddad",
		v.FieldEmail:               "amal@example.com",
		v.FieldPhone:               "+971 50 123 4567",
		v.FieldCompanyNameSupplier: "Gulf Traders",
	}, st.Answers)
	assert.Empty(t, st.Answers.Text(v.FieldShippingTerm))
	assert.Equal(t, ServiceUnset, st.ServiceType)
	assert.Equal(t, 2, st.Step)
	assert.Empty(t, st.Errors)
}

func TestResetCancelIsNoOp(t *testing.T) {
	w := onStepTwo(t)
	require.NoError(t, w.SelectServiceType("air"))
	before := w.Snapshot()

	require.NoError(t, w.RequestReset())
	_, err := w.Cancel()
	require.NoError(t, err)

	assert.Equal(t, before, w.Snapshot())
}
