package tax

// VAT / GST rates by country, as decimals.
var taxRates = map[string]float64{
	// EU
	"AT": 0.20, "BE": 0.21, "BG": 0.20, "HR": 0.25, "CY": 0.19, "CZ": 0.21,
	"DK": 0.25, "EE": 0.20, "FI": 0.24, "FR": 0.20, "DE": 0.19, "GR": 0.24,
	"HU": 0.27, "IE": 0.23, "IT": 0.22, "LV": 0.21, "LT": 0.21, "LU": 0.17,
	"MT": 0.18, "NL": 0.21, "PL": 0.23, "PT": 0.23, "RO": 0.19, "SK": 0.20,
	"SI": 0.22, "ES": 0.21, "SE": 0.25,

	"GB": 0.20,

	// Other VAT-inclusive markets
	"AU": 0.10, "NZ": 0.15, "ZA": 0.15, "BR": 0.17, "AR": 0.21, "CL": 0.19,
	"CO": 0.19, "MX": 0.16, "PE": 0.18,

	"JP": 0.10, "KR": 0.10, "IN": 0.18, "CN": 0.13,

	// Sales tax handled separately by the processor
	"US": 0, "CA": 0,

	// No VAT on digital goods
	"HK": 0, "SG": 0, "AE": 0, "QA": 0, "KW": 0, "BH": 0, "OM": 0, "SA": 0,
}

// Countries whose displayed price contains VAT.
var vatInclusive = map[string]struct{}{
	"AT": {}, "BE": {}, "BG": {}, "HR": {}, "CY": {}, "CZ": {}, "DK": {},
	"EE": {}, "FI": {}, "FR": {}, "DE": {}, "GR": {}, "HU": {}, "IE": {},
	"IT": {}, "LV": {}, "LT": {}, "LU": {}, "MT": {}, "NL": {}, "PL": {},
	"PT": {}, "RO": {}, "SK": {}, "SI": {}, "ES": {}, "SE": {}, "GB": {},
	"AU": {}, "NZ": {}, "ZA": {}, "BR": {}, "AR": {}, "CL": {}, "CO": {},
	"MX": {}, "PE": {}, "JP": {}, "KR": {}, "IN": {}, "CN": {},
}

// Countries where the processor adds tax on top and expects a pre-tax price.
var processorPreTax = map[string]struct{}{
	"US": {}, "CA": {}, "BR": {},
}

// DefaultTable builds the country classification table from the built-in
// rate and treatment sets.
func DefaultTable() *Table {
	entries := make(map[string]CountryTax, len(taxRates))
	for country, rate := range taxRates {
		ct := CountryTax{Rate: rate}
		if _, ok := vatInclusive[country]; ok {
			ct.Treatment = VATInclusive
		}
		if _, ok := processorPreTax[country]; ok {
			ct.Remittance = ProcessorPreTax
		}
		entries[country] = ct
	}
	// Countries in the inclusive set without an explicit rate still classify.
	for country := range vatInclusive {
		if _, ok := entries[country]; !ok {
			entries[country] = CountryTax{Treatment: VATInclusive}
		}
	}
	return &Table{entries: entries}
}

// NewTable builds a classification table from explicit entries.
func NewTable(entries map[string]CountryTax) *Table {
	return &Table{entries: entries}
}
