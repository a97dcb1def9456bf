package fx

import (
	"math"
	"testing"

	"github.com/Dotan-Peleh/currency-convertor/internal/domain/models"
)

func snapshot() models.RateSnapshot {
	return models.RateSnapshot{
		Date: "2026-08-30",
		Rates: map[string]float64{
			"USD": 1.0,
			"EUR": 0.92,
			"JPY": 147.5,
		},
	}
}

func TestRoundTrip(t *testing.T) {
	c := NewConverter(snapshot(), nil)
	for _, x := range []float64{0.99, 4.99, 123.45, 9999.0} {
		for _, cur := range []string{"USD", "EUR", "JPY"} {
			back := c.ToUSD(c.ToLocal(x, cur), cur)
			if math.Abs(back-x) > 1e-6 {
				t.Errorf("round trip %v %s: got %v", x, cur, back)
			}
		}
	}
}

func TestMissingRateFallsBackToOne(t *testing.T) {
	c := NewConverter(snapshot(), nil)
	if r := c.Rate("XXX"); r != 1.0 {
		t.Fatalf("missing rate should fall back to 1.0, got %v", r)
	}
	if got := c.ToLocal(4.99, "XXX"); got != 4.99 {
		t.Fatalf("conversion with missing rate should be identity, got %v", got)
	}
}

func TestForwardConversion(t *testing.T) {
	c := NewConverter(snapshot(), nil)
	got := c.ToLocal(4.99, "EUR")
	if math.Abs(got-4.5908) > 1e-9 {
		t.Fatalf("expected 4.5908, got %v", got)
	}
}
