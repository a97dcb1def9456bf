package tax

import (
	"math"
	"testing"
)

const tol = 1e-6

func TestAssessVATInclusive(t *testing.T) {
	table := DefaultTable()
	ct := table.Lookup("DE")
	if ct.Treatment != VATInclusive || ct.Rate != 0.19 {
		t.Fatalf("unexpected DE classification: %+v", ct)
	}

	a := Assess(4.99, ct)
	wantNet := 4.99 / 1.19
	if math.Abs(a.NetBeforeFees-wantNet) > tol {
		t.Fatalf("net before fees %v, want %v", a.NetBeforeFees, wantNet)
	}
	if math.Abs(a.VATAmount-(4.99-wantNet)) > tol {
		t.Fatalf("vat amount %v", a.VATAmount)
	}
	if a.UserPays != 4.99 {
		t.Fatalf("user pays %v, want visible price", a.UserPays)
	}
	// Round trip: net * (1+rate) recovers the visible price.
	if math.Abs(a.NetBeforeFees*1.19-4.99) > tol {
		t.Fatalf("round trip failed: %v", a.NetBeforeFees*1.19)
	}
}

func TestAssessNoVATProcessorPreTax(t *testing.T) {
	table := DefaultTable()
	ct := table.Lookup("US")
	if ct.Treatment != VATExclusive || ct.Remittance != ProcessorPreTax {
		t.Fatalf("unexpected US classification: %+v", ct)
	}

	a := Assess(9.99, ct)
	if a.VATAmount != 0 {
		t.Fatalf("expected zero vat, got %v", a.VATAmount)
	}
	if a.UserPays != 9.99 || a.RemittancePrice != 9.99 {
		t.Fatalf("user pays %v remittance %v, want 9.99 for both", a.UserPays, a.RemittancePrice)
	}
}

func TestAssessBrazilStripsVATForProcessor(t *testing.T) {
	table := DefaultTable()
	ct := table.Lookup("BR")
	if ct.Treatment != VATInclusive || ct.Remittance != ProcessorPreTax {
		t.Fatalf("unexpected BR classification: %+v", ct)
	}

	a := Assess(10.00, ct)
	want := 10.00 / 1.17
	if math.Abs(a.RemittancePrice-want) > tol {
		t.Fatalf("remittance %v, want %v", a.RemittancePrice, want)
	}
	if a.UserPays != 10.00 {
		t.Fatalf("user pays %v, want 10.00", a.UserPays)
	}
}

func TestAssessVATExclusiveAddsTaxOnTop(t *testing.T) {
	a := Assess(10.00, CountryTax{Rate: 0.08, Treatment: VATExclusive})
	if math.Abs(a.VATAmount-0.80) > tol {
		t.Fatalf("vat %v, want 0.80", a.VATAmount)
	}
	if math.Abs(a.UserPays-10.80) > tol {
		t.Fatalf("user pays %v, want 10.80", a.UserPays)
	}
	if math.Abs(a.RemittancePrice-10.80) > tol {
		t.Fatalf("remittance %v, want user pays for a VAT-inclusive processor", a.RemittancePrice)
	}
}

func TestLookupUnknownCountryDefaults(t *testing.T) {
	table := DefaultTable()
	ct := table.Lookup("ZZ")
	if ct.Rate != 0 || ct.Treatment != VATExclusive || ct.Remittance != ProcessorVATInclusive {
		t.Fatalf("unknown country should have no special handling: %+v", ct)
	}

	a := Assess(5.00, ct)
	if a.VATAmount != 0 || a.UserPays != 5.00 || a.RemittancePrice != 5.00 {
		t.Fatalf("unexpected assessment for unknown country: %+v", a)
	}
}

func TestZeroRateGulfStates(t *testing.T) {
	table := DefaultTable()
	for _, c := range []string{"HK", "SG", "AE", "QA", "KW", "BH", "OM", "SA"} {
		ct := table.Lookup(c)
		if ct.Rate != 0 || ct.Treatment != VATExclusive {
			t.Errorf("%s should be zero-rate exclusive: %+v", c, ct)
		}
	}
}
