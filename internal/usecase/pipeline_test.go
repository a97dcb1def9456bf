package usecase

import (
	"context"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/Dotan-Peleh/currency-convertor/internal/domain/models"
	"github.com/Dotan-Peleh/currency-convertor/internal/pricing/fees"
	"github.com/Dotan-Peleh/currency-convertor/internal/pricing/stability"
	"github.com/Dotan-Peleh/currency-convertor/internal/pricing/tax"
	"github.com/Dotan-Peleh/currency-convertor/internal/pricing/tiers"
	applogger "github.com/Dotan-Peleh/currency-convertor/pkg/logger"
)

type fakeMetrics struct {
	mu    sync.Mutex
	pairs map[string]int
}

func (m *fakeMetrics) RecordPair(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pairs == nil {
		m.pairs = map[string]int{}
	}
	m.pairs[result]++
}

func (m *fakeMetrics) RecordRun(records, held, skipped int, seconds float64) {}
func (m *fakeMetrics) RecordRateFetch(seconds float64, failed bool)          {}
func (m *fakeMetrics) RecordVisiblePrice(country, sku string, price float64) {}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func testPipeline(t *testing.T, excluded []string) (*Pipeline, *fakeMetrics) {
	t.Helper()
	m := &fakeMetrics{}
	p := NewPipeline(
		tiers.NewResolver(tiers.NewCatalog(), tiers.SnapUp),
		tax.DefaultTable(),
		stability.NewGate(0.05),
		fees.Config{},
		excluded,
		4,
		m,
		testLogger(t),
	)
	return p, m
}

func snapshot() models.RateSnapshot {
	return models.RateSnapshot{
		Date:  "2026-08-30",
		Rates: map[string]float64{"USD": 1.0, "EUR": 0.92, "BRL": 5.40},
	}
}

func TestRunGermanPair(t *testing.T) {
	p, _ := testPipeline(t, nil)
	skus := []models.SKU{{AppleSKU: "credits.small", GoogleSKU: "credits_small", USDCost: "4.99"}}

	res := p.Run(context.Background(), skus, map[string]string{"DE": "EUR"}, snapshot(), nil)
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d (skipped: %+v)", len(res.Records), res.Skipped)
	}
	r := res.Records[0]
	if r.Country != "DE" || r.Currency != "EUR" {
		t.Fatalf("unexpected record: %+v", r)
	}
	if math.Abs(r.RawLocalPrice-4.5908) > 1e-9 {
		t.Fatalf("raw local price %v, want 4.5908", r.RawLocalPrice)
	}
	if r.VisiblePrice != 4.99 {
		t.Fatalf("visible price %v, want 4.99", r.VisiblePrice)
	}
	if math.Abs(r.VATAmount-0.80) > 1e-9 {
		t.Fatalf("vat amount %v, want 0.80 (rounded)", r.VATAmount)
	}
	if r.VATRate != 19.0 {
		t.Fatalf("vat rate %v, want 19.0", r.VATRate)
	}
	if !r.WasUpdated {
		t.Fatalf("first publish should adopt")
	}
	if r.CountryName != "Germany" {
		t.Fatalf("country name %q", r.CountryName)
	}
}

func TestRunStabilityHoldKeepsPreviousVisible(t *testing.T) {
	p, m := testPipeline(t, nil)
	skus := []models.SKU{{AppleSKU: "credits.small", USDCost: "4.99"}}
	prev := models.PreviousPrices{
		{Country: "US", AppleSKU: "credits.small"}: 4.89, // new 4.99 is ~2% higher
	}

	res := p.Run(context.Background(), skus, map[string]string{"US": "USD"}, snapshot(), prev)
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}
	r := res.Records[0]
	if r.WasUpdated {
		t.Fatalf("sub-threshold increase must hold: %+v", r)
	}
	if r.VisiblePrice != 4.89 {
		t.Fatalf("held record must surface the previous visible price, got %v", r.VisiblePrice)
	}
	// Derived fields still reflect the fresh computation.
	if r.GrossUSD != 4.99 {
		t.Fatalf("gross usd %v, want fresh 4.99", r.GrossUSD)
	}
	if res.Held != 1 || res.Adopted != 0 {
		t.Fatalf("held/adopted counts wrong: %+v", res)
	}
	if m.pairs["held"] != 1 {
		t.Fatalf("metrics not recorded: %+v", m.pairs)
	}
}

func TestRunStabilityDecreaseAdopts(t *testing.T) {
	p, _ := testPipeline(t, nil)
	skus := []models.SKU{{AppleSKU: "credits.small", USDCost: "4.99"}}
	prev := models.PreviousPrices{
		{Country: "US", AppleSKU: "credits.small"}: 5.99,
	}

	res := p.Run(context.Background(), skus, map[string]string{"US": "USD"}, snapshot(), prev)
	r := res.Records[0]
	if !r.WasUpdated || r.VisiblePrice != 4.99 {
		t.Fatalf("decrease must adopt the new price: %+v", r)
	}
}

func TestRunSkipsMalformedCost(t *testing.T) {
	p, m := testPipeline(t, nil)
	skus := []models.SKU{
		{AppleSKU: "credits.bad", USDCost: "not-a-price"},
		{AppleSKU: "credits.good", USDCost: "1.99"},
	}

	res := p.Run(context.Background(), skus, map[string]string{"US": "USD"}, snapshot(), nil)
	if len(res.Records) != 1 || res.Records[0].AppleSKU != "credits.good" {
		t.Fatalf("bad pair must not block the batch: %+v", res.Records)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Stage != "parse" {
		t.Fatalf("expected one parse skip: %+v", res.Skipped)
	}
	if m.pairs["skipped"] != 1 {
		t.Fatalf("skip not recorded: %+v", m.pairs)
	}
}

func TestRunExcludedCountries(t *testing.T) {
	p, _ := testPipeline(t, []string{"BR"})
	skus := []models.SKU{{AppleSKU: "credits.small", USDCost: "4.99"}}

	res := p.Run(context.Background(), skus, map[string]string{"US": "USD", "BR": "BRL"}, snapshot(), nil)
	if len(res.Records) != 1 || res.Records[0].Country != "US" {
		t.Fatalf("excluded country must be skipped entirely: %+v", res.Records)
	}
}

func TestRunEmptyInputsIsZeroCountResult(t *testing.T) {
	p, _ := testPipeline(t, nil)
	res := p.Run(context.Background(), nil, map[string]string{"US": "USD"}, snapshot(), nil)
	if len(res.Records) != 0 || len(res.Skipped) != 0 {
		t.Fatalf("expected zero-count result: %+v", res)
	}
}

func TestRunIdempotent(t *testing.T) {
	p, _ := testPipeline(t, nil)
	skus := []models.SKU{
		{AppleSKU: "credits.small", USDCost: "4.99"},
		{AppleSKU: "credits.big", USDCost: "49.99"},
	}
	cc := map[string]string{"US": "USD", "DE": "EUR", "BR": "BRL"}
	prev := models.PreviousPrices{
		{Country: "DE", AppleSKU: "credits.small"}: 4.99,
	}

	a := p.Run(context.Background(), skus, cc, snapshot(), prev)
	b := p.Run(context.Background(), skus, cc, snapshot(), prev)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical inputs must yield identical output\nfirst:  %+v\nsecond: %+v", a, b)
	}
}

func TestRunBrazilRemittance(t *testing.T) {
	p, _ := testPipeline(t, nil)
	skus := []models.SKU{{AppleSKU: "credits.small", USDCost: "4.99"}}

	res := p.Run(context.Background(), skus, map[string]string{"BR": "BRL"}, snapshot(), nil)
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %+v", res)
	}
	r := res.Records[0]
	// BRL has no curated table; the synthesized grid snaps 26.946 up.
	if r.VisiblePrice <= r.RawLocalPrice {
		t.Fatalf("visible %v must exceed raw %v", r.VisiblePrice, r.RawLocalPrice)
	}
	want := round(r.UserPays/1.17, 2)
	if math.Abs(r.RemittancePrice-want) > 0.01 {
		t.Fatalf("remittance %v, want user pays / 1.17 = %v", r.RemittancePrice, want)
	}
}
