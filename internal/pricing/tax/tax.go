// Package tax classifies countries for VAT/GST handling and derives the tax
// breakdown and processor remittance price for a visible storefront price.
package tax

// Treatment says whether the visible price already contains VAT.
type Treatment int

const (
	// VATExclusive means the visible price is pre-tax (or the country has no
	// VAT on digital goods). Tax, if any, is added on top.
	VATExclusive Treatment = iota
	// VATInclusive means the visible price already contains VAT.
	VATInclusive
)

// RemittanceRule says which figure the payment processor expects.
type RemittanceRule int

const (
	// ProcessorVATInclusive: the processor takes the tax-inclusive figure.
	ProcessorVATInclusive RemittanceRule = iota
	// ProcessorPreTax: the processor adds tax itself and expects the pre-tax
	// figure.
	ProcessorPreTax
)

// CountryTax is the full tax classification of one country.
type CountryTax struct {
	Rate       float64
	Treatment  Treatment
	Remittance RemittanceRule
}

// Assessment is the tax breakdown for one visible price.
type Assessment struct {
	Rate            float64
	VATAmount       float64
	NetBeforeFees   float64
	UserPays        float64
	RemittancePrice float64
}

// Table maps country codes to their tax classification. Immutable after
// construction.
type Table struct {
	entries map[string]CountryTax
}

// Lookup returns the classification for a country. Unknown countries get
// zero rate, VAT-exclusive, processor VAT-inclusive: no special handling.
func (t *Table) Lookup(country string) CountryTax {
	if ct, ok := t.entries[country]; ok {
		return ct
	}
	return CountryTax{}
}

// Assess computes the tax breakdown for a visible price under a
// classification.
//
// VAT-inclusive: vat = visible - visible/(1+rate), net = visible/(1+rate).
// VAT-exclusive: vat = visible*rate, net = visible, user pays visible+vat.
// The remittance price strips VAT back out only for processor pre-tax
// countries whose visible price is VAT-inclusive (e.g. Brazil).
func Assess(visible float64, ct CountryTax) Assessment {
	a := Assessment{Rate: ct.Rate}

	if ct.Treatment == VATInclusive && ct.Rate > 0 {
		a.NetBeforeFees = visible / (1 + ct.Rate)
		a.VATAmount = visible - a.NetBeforeFees
		a.UserPays = visible
	} else {
		a.VATAmount = visible * ct.Rate
		a.NetBeforeFees = visible
		a.UserPays = visible + a.VATAmount
	}

	switch {
	case ct.Remittance == ProcessorPreTax && ct.Treatment == VATInclusive && ct.Rate > 0:
		a.RemittancePrice = a.UserPays / (1 + ct.Rate)
	default:
		// Pre-tax with an exclusive price is already pre-tax; a
		// VAT-inclusive processor wants the figure as-is.
		a.RemittancePrice = a.UserPays
	}
	return a
}
