package quote

import (
	v "freightline/internal/validation"
)

// Filter rewrites the error list after generic validation.
type Filter func(errs []v.FieldError, vals v.Values) []v.FieldError

// Schema is the ordered rule set for one wizard step plus its post-validation filters.
type Schema struct {
	Rules   []v.Rule
	Filters []Filter
}

// Validate applies the rules, then every filter in order.
func (s Schema) Validate(vals v.Values) []v.FieldError {
	errs := v.Apply(s.Rules, vals)
	for _, f := range s.Filters {
		errs = f(errs, vals)
	}
	return errs
}

// ValidateField evaluates the schema's rule for one field, filters included.
// ok is false when the schema has no rule for field.
func (s Schema) ValidateField(field string, vals v.Values) (fe *v.FieldError, ok bool) {
	var rules []v.Rule
	for _, r := range s.Rules {
		if r.Field == field {
			rules = append(rules, r)
		}
	}
	if len(rules) == 0 {
		return nil, false
	}
	errs := Schema{Rules: rules, Filters: s.Filters}.Validate(vals)
	if len(errs) == 0 {
		return nil, true
	}
	return &errs[0], true
}

// Fields lists the fields the schema has rules for.
func (s Schema) Fields() []string {
	seen := make(map[string]struct{}, len(s.Rules))
	out := make([]string, 0, len(s.Rules))
	for _, r := range s.Rules {
		if _, ok := seen[r.Field]; ok {
			continue
		}
		seen[r.Field] = struct{}{}
		out = append(out, r.Field)
	}
	return out
}

// FOBOverride drops exactPickupAddress errors when the shipping term is FOB. The
// pickup rule is still evaluated; its verdict is discarded here.
func FOBOverride(errs []v.FieldError, vals v.Values) []v.FieldError {
	if vals.Text(v.FieldShippingTerm) != "FOB" {
		return errs
	}
	out := errs[:0:0]
	for _, e := range errs {
		if e.Field != v.FieldExactPickupAddress {
			out = append(out, e)
		}
	}
	return out
}

// StepOneSchema covers the contact details collected on the first step.
func StepOneSchema() Schema {
	return Schema{Rules: []v.Rule{v.NameRule(), v.EmailRule(), v.PhoneRule()}}
}

// ContextSchema is the first pass of step-two validation: the identity and route
// fields every branch depends on. Failures here block inline.
func ContextSchema() Schema {
	return Schema{Rules: []v.Rule{
		v.NameRule(),
		v.EmailRule(),
		v.PhoneRule(),
		v.TextRule(v.FieldOriginAddress, 3),
		v.TextRule(v.FieldDestinationAddress, 3),
		v.CompanyNameSupplierRule(),
		v.TextRule(v.FieldDescriptionOfGoods, 6),
	}}
}

func baseRules() []v.Rule {
	return []v.Rule{
		v.NameRule(),
		v.EmailRule(),
		v.PhoneRule(),
		v.TextRule(v.FieldOriginAddress, 3),
		v.TextRule(v.FieldDestinationAddress, 3),
		v.EnumRule(v.FieldServiceType, v.KindServiceTypeRequired, v.ServiceTypes),
		v.CompanyNameSupplierRule(),
		v.NumberOfPackagesRule(),
		v.OptionalEnumRule(v.FieldShippingTerm, v.ShippingTerms),
		v.ExactPickupAddressRule(),
		v.TextRule(v.FieldDescriptionOfGoods, 6),
		v.OptionalEnumRule(v.FieldCargoType, v.CargoTypes),
		v.OptionalEnumRule(v.FieldCargoGaugeType, v.CargoGaugeTypes),
		v.ContainerCapacityRule(),
		v.WeightValueRule(),
		v.CargoDimensionsRule(),
		v.OptionalEnumRule(v.FieldTemperatureUnit, v.TemperatureUnits),
		v.OptionalEnumRule(v.FieldDimensionsUnit, v.DimensionUnits),
		v.OptionalEnumRule(v.FieldWeightUnit, v.WeightUnits),
	}
}

// anyEquipment matches every equipment selection in the branch table.
const anyEquipment = "*"

// branchRow adjusts the base rules for one (service type, equipment) combination.
type branchRow struct {
	service   ServiceType
	equipment string
	exempt    []string
	require   []func() v.Rule
	when      func(vals v.Values) bool
}

var cargoBreakdown = []string{v.FieldNumberOfPackages, v.FieldCargoDimensions, v.FieldWeightValue}

func isLCL(vals v.Values) bool {
	return vals.Text(v.FieldServiceType) == string(ServiceSea) && vals.Text(v.FieldEquipmentNeeded) == EquipmentLCL
}

var branchTable = []branchRow{
	{
		service:   ServiceSea,
		equipment: anyEquipment,
		exempt:    cargoBreakdown,
		require: []func() v.Rule{
			func() v.Rule { return v.EnumRule(v.FieldEquipmentNeeded, v.KindEquipmentRequired, v.EquipmentCodes) },
		},
	},
	{
		service:   ServiceSea,
		equipment: EquipmentLCL,
		require:   []func() v.Rule{v.NumberOfPackagesRule, v.CargoDimensionsRule, v.WeightValueRule},
		when:      isLCL,
	},
	{
		service:   ServiceAir,
		equipment: anyEquipment,
		require: []func() v.Rule{
			func() v.Rule { return v.EnumRule(v.FieldDeliveryUrgency, v.KindRequired, v.DeliveryUrgency) },
		},
	},
	{
		service:   ServiceLand,
		equipment: anyEquipment,
		require: []func() v.Rule{
			func() v.Rule { return v.OptionalEnumRule(v.FieldLoadingAssistance, v.YesNo) },
			func() v.Rule { return v.OptionalEnumRule(v.FieldUnloadingAssistance, v.YesNo) },
		},
	},
}

// BranchSchema composes the step-two schema for the selected service type and
// equipment from the base rules and the branch table.
func BranchSchema(service ServiceType, equipment string) Schema {
	rules := baseRules()
	for _, row := range branchTable {
		if row.service != service || (row.equipment != anyEquipment && row.equipment != equipment) {
			continue
		}
		rules = without(rules, row.exempt)
		for _, build := range row.require {
			r := build()
			if row.when != nil {
				r = r.Conditionally(row.when)
			}
			rules = append(rules, r)
		}
	}
	return Schema{Rules: rules, Filters: []Filter{FOBOverride}}
}

func without(rules []v.Rule, fields []string) []v.Rule {
	if len(fields) == 0 {
		return rules
	}
	drop := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		drop[f] = struct{}{}
	}
	out := rules[:0]
	for _, r := range rules {
		if _, ok := drop[r.Field]; !ok {
			out = append(out, r)
		}
	}
	return out
}
