package fees

import (
	"math"
	"testing"

	"github.com/Dotan-Peleh/currency-convertor/internal/domain/models"
	"github.com/Dotan-Peleh/currency-convertor/internal/pricing/fx"
)

const tol = 1e-6

func converter() *fx.Converter {
	return fx.NewConverter(models.RateSnapshot{
		Date:  "2026-08-30",
		Rates: map[string]float64{"USD": 1.0, "EUR": 0.92},
	}, nil)
}

func TestComputeZeroFees(t *testing.T) {
	b := Compute(4.99, 4.1933, "EUR", converter(), Config{})
	if b.FeeLocal != 0 {
		t.Fatalf("expected zero fee, got %v", b.FeeLocal)
	}
	if math.Abs(b.NetLocal-4.1933) > tol {
		t.Fatalf("net local %v", b.NetLocal)
	}
	if math.Abs(b.GrossUSD-4.99/0.92) > tol {
		t.Fatalf("gross usd %v", b.GrossUSD)
	}
	if math.Abs(b.NetUSD-4.1933/0.92) > tol {
		t.Fatalf("net usd %v", b.NetUSD)
	}
}

func TestComputeFeeOnNetBeforeFees(t *testing.T) {
	cfg := Config{FeePercent: 0.05, FixedFee: 0.30}
	b := Compute(10.0, 8.0, "USD", converter(), cfg)
	wantFee := 8.0*0.05 + 0.30
	if math.Abs(b.FeeLocal-wantFee) > tol {
		t.Fatalf("fee local %v, want %v", b.FeeLocal, wantFee)
	}
	if math.Abs(b.NetLocal-(8.0-wantFee)) > tol {
		t.Fatalf("net local %v", b.NetLocal)
	}
	// Fee derives from net-before-fees, never the gross.
	if math.Abs((b.GrossUSD-b.FeeUSD)-(10.0-wantFee)) > tol {
		t.Fatalf("usd figures inconsistent: gross %v fee %v", b.GrossUSD, b.FeeUSD)
	}
}

func TestReferenceComparison(t *testing.T) {
	// Zero fees, no VAT: net equals gross, reference keeps 70%.
	b := Compute(10.0, 10.0, "USD", converter(), Config{})
	wantPct := (10.0 - 7.0) / 7.0 * 100
	if math.Abs(b.NetVsReferencePct-wantPct) > tol {
		t.Fatalf("pct %v, want %v", b.NetVsReferencePct, wantPct)
	}
	if b.NetVsReference != "+42.9%" {
		t.Fatalf("formatted %q", b.NetVsReference)
	}
}

func TestReferenceComparisonSmallSeller(t *testing.T) {
	b := Compute(10.0, 10.0, "USD", converter(), Config{SmallSeller: true})
	wantPct := (10.0 - 8.5) / 8.5 * 100
	if math.Abs(b.NetVsReferencePct-wantPct) > tol {
		t.Fatalf("pct %v, want %v", b.NetVsReferencePct, wantPct)
	}
}

func TestReferenceComparisonZeroGross(t *testing.T) {
	b := Compute(0, 0, "USD", converter(), Config{})
	if b.NetVsReferencePct != 0 {
		t.Fatalf("expected 0 when reference net is not positive, got %v", b.NetVsReferencePct)
	}
	if b.NetVsReference != "0.0%" {
		t.Fatalf("formatted %q", b.NetVsReference)
	}
}

func TestNegativeComparisonKeepsSign(t *testing.T) {
	// A 40% processing fee leaves less than the reference's 70% share.
	b := Compute(10.0, 10.0, "USD", converter(), Config{FeePercent: 0.40})
	if b.NetVsReferencePct >= 0 {
		t.Fatalf("expected negative comparison, got %v", b.NetVsReferencePct)
	}
	if b.NetVsReference[0] == '+' {
		t.Fatalf("negative pct must not carry a plus sign: %q", b.NetVsReference)
	}
}
