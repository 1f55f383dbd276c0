package quote

import (
	"strconv"
	"strings"

	v "freightline/internal/validation"
)

// Answers maps a wizard field to its current value: a string, a number or a bool.
// Fields outside the active branch are deleted rather than blanked.
type Answers map[string]any

// FieldOrder is the fixed field priority used for review and for the outgoing email.
// It is also the set of fields the wizard accepts.
var FieldOrder = []string{
	v.FieldName,
	v.FieldEmail,
	v.FieldPhone,
	v.FieldCompanyNameSupplier,
	v.FieldShippingTerm,
	v.FieldExactPickupAddress,
	v.FieldCargoType,
	v.FieldDeliveryUrgency,
	v.FieldPreferredAirline,
	v.FieldEquipmentNeeded,
	v.FieldTemperature,
	v.FieldTemperatureUnit,
	v.FieldCargoGaugeType,
	v.FieldContainerCapacity,
	v.FieldCargoDimensions,
	v.FieldDimensionsUnit,
	v.FieldNumberOfPackages,
	v.FieldWeightValue,
	v.FieldWeightUnit,
	v.FieldLoadingAssistance,
	v.FieldUnloadingAssistance,
	v.FieldOriginAddress,
	v.FieldDestinationAddress,
	v.FieldDescriptionOfGoods,
	v.FieldAdditionalInfo,
}

var fieldRank = func() map[string]int {
	m := make(map[string]int, len(FieldOrder))
	for i, f := range FieldOrder {
		m[f] = i
	}
	return m
}()

// IsKnownField reports whether field is part of the wizard's answer set.
func IsKnownField(field string) bool {
	_, ok := fieldRank[field]
	return ok
}

// identityFields survive a branch reset.
var identityFields = []string{v.FieldName, v.FieldEmail, v.FieldPhone, v.FieldCompanyNameSupplier}

// branchFields are purged on every service type selection.
var branchFields = []string{
	v.FieldDeliveryUrgency,
	v.FieldPreferredAirline,
	v.FieldEquipmentNeeded,
	v.FieldTemperature,
	v.FieldTemperatureUnit,
	v.FieldCargoGaugeType,
	v.FieldContainerCapacity,
	v.FieldCargoDimensions,
	v.FieldDimensionsUnit,
	v.FieldNumberOfPackages,
	v.FieldWeightValue,
	v.FieldWeightUnit,
	v.FieldLoadingAssistance,
	v.FieldUnloadingAssistance,
}

// branchApplies limits branch fields to the service type, equipment and gauge that
// show them. Fields missing from the table apply to every branch.
var branchApplies = map[string]func(t ServiceType, a Answers) bool{
	v.FieldDeliveryUrgency:     onlyFor(ServiceAir),
	v.FieldPreferredAirline:    onlyFor(ServiceAir),
	v.FieldEquipmentNeeded:     onlyFor(ServiceSea),
	v.FieldTemperature:         reeferOnly,
	v.FieldTemperatureUnit:     reeferOnly,
	v.FieldCargoGaugeType:      openTopOnly,
	v.FieldContainerCapacity:   outOfGaugeOnly,
	v.FieldCargoDimensions:     dimensionsApply,
	v.FieldLoadingAssistance:   onlyFor(ServiceLand),
	v.FieldUnloadingAssistance: onlyFor(ServiceLand),
}

func onlyFor(s ServiceType) func(ServiceType, Answers) bool {
	return func(t ServiceType, _ Answers) bool { return t == s }
}

func reeferOnly(t ServiceType, a Answers) bool {
	return t == ServiceSea && isReefer(a.Text(v.FieldEquipmentNeeded))
}

func openTopOnly(t ServiceType, a Answers) bool {
	return t == ServiceSea && isOpenTop(a.Text(v.FieldEquipmentNeeded))
}

func outOfGaugeOnly(t ServiceType, a Answers) bool {
	return openTopOnly(t, a) && a.Text(v.FieldCargoGaugeType) == "out"
}

// dimensionsApply is false for in-gauge open top cargo, which fits the container.
func dimensionsApply(t ServiceType, a Answers) bool {
	return !openTopOnly(t, a) || a.Text(v.FieldCargoGaugeType) == "out"
}

// Applies reports whether field can hold an answer under the given selections.
func Applies(field string, t ServiceType, a Answers) bool {
	fn, ok := branchApplies[field]
	return !ok || fn(t, a)
}

// Text renders a field's value as the validators see it.
func (a Answers) Text(field string) string {
	switch val := a[field].(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		if val {
			return "yes"
		}
		return "no"
	default:
		return ""
	}
}

// Present reports whether field holds a non-empty value. Zero numbers and false
// count as empty.
func (a Answers) Present(field string) bool {
	switch val := a[field].(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case float64:
		return val != 0
	case int:
		return val != 0
	case bool:
		return val
	default:
		return false
	}
}

func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, val := range a {
		out[k] = val
	}
	return out
}

func (a Answers) purge(fields ...string) {
	for _, f := range fields {
		delete(a, f)
	}
}

// normalize accepts the value types a form can produce. Blank strings become nil.
func normalize(value any) (any, bool) {
	switch val := value.(type) {
	case nil:
		return nil, true
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, true
		}
		return val, true
	case float64, bool:
		return val, true
	case int:
		return float64(val), true
	case float32:
		return float64(val), true
	case int64:
		return float64(val), true
	default:
		return nil, false
	}
}

// values is the validator view of a wizard: its answers plus the selected service type.
type values struct {
	answers     Answers
	serviceType ServiceType
}

func (s values) Text(field string) string {
	if field == v.FieldServiceType {
		return string(s.serviceType)
	}
	return s.answers.Text(field)
}
