package validation

import "regexp"

// Field names shared by the quote wizard and the contact form.
const (
	FieldName                = "name"
	FieldEmail               = "email"
	FieldPhone               = "phone"
	FieldCompanyNameSupplier = "companyNameSupplier"
	FieldServiceType         = "serviceType"
	FieldShippingTerm        = "shippingTerm"
	FieldExactPickupAddress  = "exactPickupAddress"
	FieldCargoType           = "cargoType"
	FieldDeliveryUrgency     = "deliveryUrgency"
	FieldPreferredAirline    = "preferredAirline"
	FieldEquipmentNeeded     = "equipmentNeeded"
	FieldTemperature         = "temperature"
	FieldTemperatureUnit     = "temperatureUnit"
	FieldCargoGaugeType      = "cargoGaugeType"
	FieldContainerCapacity   = "containerCapacity"
	FieldCargoDimensions     = "cargoDimensions"
	FieldDimensionsUnit      = "dimensionsUnit"
	FieldNumberOfPackages    = "numberOfPackages"
	FieldWeightValue         = "weightValue"
	FieldWeightUnit          = "weightUnit"
	FieldLoadingAssistance   = "loadingAssistance"
	FieldUnloadingAssistance = "unloadingAssistance"
	FieldOriginAddress       = "originAddress"
	FieldDestinationAddress  = "destinationAddress"
	FieldDescriptionOfGoods  = "descriptionOfGoods"
	FieldAdditionalInfo      = "additionalInfo"

	// contact form only
	FieldCompany = "company"
	FieldMessage = "message"
)

var (
	ShippingTerms    = []string{"EXW", "FOB"}
	ServiceTypes     = []string{"air", "sea", "land"}
	DeliveryUrgency  = []string{"standard", "express", "priority"}
	EquipmentCodes   = []string{"LCL", "20ft", "40ft", "20HC", "40HC", "20REEF", "40REEF", "20OT", "40OT"}
	CargoGaugeTypes  = []string{"in", "out"}
	CargoTypes       = []string{"general", "hazardous"}
	TemperatureUnits = []string{"C", "F"}
	DimensionUnits   = []string{"cm", "in", "m", "ft"}
	WeightUnits      = []string{"kg", "lb", "ton"}
	YesNo            = []string{"yes", "no"}
)

var phonePattern = regexp.MustCompile(`^\+?[0-9\s-]{8,}$`)

func NameRule() Rule {
	return Rule{Field: FieldName, Checks: []Check{
		Required("nameRequired"),
		MinLength(2, "nameTooShort"),
		NoDigits("nameContainsNumbers"),
	}}
}

func CompanyNameSupplierRule() Rule {
	return Rule{Field: FieldCompanyNameSupplier, Checks: []Check{
		Required("companyNameSupplierRequired"),
		MinLength(2, "companyNameTooShort"),
		NoDigits("companyNameSupplierContainsNumbers"),
	}}
}

func EmailRule() Rule {
	return Rule{Field: FieldEmail, Checks: []Check{
		Required("emailRequired"),
		Email("invalidEmail"),
	}}
}

func PhoneRule() Rule {
	return Rule{Field: FieldPhone, Checks: []Check{
		Required("phoneRequired"),
		MinLength(8, "invalidPhone"),
		Pattern(phonePattern, "invalidPhone"),
		HasDigit("invalidPhone"),
	}}
}

// TextRule is the required + minimum length rule used by address and description fields.
func TextRule(field string, min int) Rule {
	return Rule{Field: field, Checks: []Check{
		Required(field + "Required"),
		MinLength(min, field+"TooShort"),
	}}
}

// EnumRule requires field to hold one of options, reporting blanks with kind.
func EnumRule(field string, kind ErrorKind, options []string) Rule {
	return Rule{Field: field, Checks: []Check{
		RequiredAs(kind, field+"Required"),
		OneOf(field+"Invalid", options...),
	}}
}

// OptionalEnumRule accepts a blank value or one of options.
func OptionalEnumRule(field string, options []string) Rule {
	return Rule{Field: field, Optional: true, Checks: []Check{OneOf(field+"Invalid", options...)}}
}

func NumberOfPackagesRule() Rule   { return TextRule(FieldNumberOfPackages, 2) }
func CargoDimensionsRule() Rule    { return TextRule(FieldCargoDimensions, 3) }
func ExactPickupAddressRule() Rule { return TextRule(FieldExactPickupAddress, 6) }

func WeightValueRule() Rule {
	return Rule{Field: FieldWeightValue, Checks: []Check{Required("weightValueRequired")}}
}

func MessageRule() Rule {
	return Rule{Field: FieldMessage, Checks: []Check{
		Required("messageRequired"),
		MinLength(10, "messageTooShort"),
	}}
}

// CompanyRule is the contact form's optional company field.
func CompanyRule() Rule {
	return Rule{Field: FieldCompany, Optional: true, Checks: []Check{
		MinLength(2, "companyTooShort"),
		NoDigits("companyContainsNumbers"),
	}}
}

func ContainerCapacityRule() Rule {
	return Rule{Field: FieldContainerCapacity, Optional: true, Checks: []Check{Numeric("containerCapacityInvalid")}}
}

var standalone = map[string]func() Rule{
	FieldName:                NameRule,
	FieldCompanyNameSupplier: CompanyNameSupplierRule,
	FieldEmail:               EmailRule,
	FieldPhone:               PhoneRule,
	FieldOriginAddress:       func() Rule { return TextRule(FieldOriginAddress, 3) },
	FieldDestinationAddress:  func() Rule { return TextRule(FieldDestinationAddress, 3) },
	FieldExactPickupAddress:  ExactPickupAddressRule,
	FieldDescriptionOfGoods:  func() Rule { return TextRule(FieldDescriptionOfGoods, 6) },
	FieldNumberOfPackages:    NumberOfPackagesRule,
	FieldCargoDimensions:     CargoDimensionsRule,
	FieldWeightValue:         WeightValueRule,
	FieldMessage:             MessageRule,
	FieldCompany:             CompanyRule,
	FieldContainerCapacity:   ContainerCapacityRule,
	FieldServiceType:         func() Rule { return EnumRule(FieldServiceType, KindServiceTypeRequired, ServiceTypes) },
	FieldEquipmentNeeded:     func() Rule { return EnumRule(FieldEquipmentNeeded, KindEquipmentRequired, EquipmentCodes) },
	FieldDeliveryUrgency:     func() Rule { return EnumRule(FieldDeliveryUrgency, KindRequired, DeliveryUrgency) },
	FieldShippingTerm:        func() Rule { return OptionalEnumRule(FieldShippingTerm, ShippingTerms) },
	FieldCargoGaugeType:      func() Rule { return OptionalEnumRule(FieldCargoGaugeType, CargoGaugeTypes) },
	FieldCargoType:           func() Rule { return OptionalEnumRule(FieldCargoType, CargoTypes) },
	FieldTemperatureUnit:     func() Rule { return OptionalEnumRule(FieldTemperatureUnit, TemperatureUnits) },
	FieldDimensionsUnit:      func() Rule { return OptionalEnumRule(FieldDimensionsUnit, DimensionUnits) },
	FieldWeightUnit:          func() Rule { return OptionalEnumRule(FieldWeightUnit, WeightUnits) },
	FieldLoadingAssistance:   func() Rule { return OptionalEnumRule(FieldLoadingAssistance, YesNo) },
	FieldUnloadingAssistance: func() Rule { return OptionalEnumRule(FieldUnloadingAssistance, YesNo) },
}

// RuleFor returns the context-free rule for field.
func RuleFor(field string) (Rule, bool) {
	build, ok := standalone[field]
	if !ok {
		return Rule{}, false
	}
	return build(), true
}

// ValidateField checks one field in isolation. Fields without a rule always pass.
func ValidateField(field string, v Values) *FieldError {
	r, ok := RuleFor(field)
	if !ok {
		return nil
	}
	return r.Evaluate(v)
}
