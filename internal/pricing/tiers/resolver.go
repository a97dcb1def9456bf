package tiers

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SnapMode selects how a raw price is snapped onto the tier grid.
type SnapMode string

const (
	// SnapUp picks the first tier strictly above the raw price. This is the
	// authoritative mode: the visible price never undercuts the raw price.
	SnapUp SnapMode = "up"
	// SnapNearest and SnapDown are retained for operator experiments. They
	// do not honor the visible >= raw guarantee.
	SnapNearest SnapMode = "nearest"
	SnapDown    SnapMode = "down"
)

// ParseSnapMode validates a configured snap mode string.
func ParseSnapMode(s string) (SnapMode, error) {
	switch SnapMode(s) {
	case SnapUp, SnapNearest, SnapDown:
		return SnapMode(s), nil
	case "":
		return SnapUp, nil
	}
	return "", fmt.Errorf("unknown snap mode %q", s)
}

// tierEps absorbs float noise from the currency conversion so a raw price
// landing exactly on a tier resolves to that tier instead of the next one.
const tierEps = 1e-9

// Currencies priced in whole units: no minor-unit rounding applies.
var zeroDecimalCurrencies = map[string]struct{}{
	"JPY": {}, "KRW": {}, "VND": {}, "CLP": {}, "IDR": {},
}

// Resolver maps raw converted prices to visible storefront tiers.
type Resolver struct {
	catalog *Catalog
	mode    SnapMode
}

// NewResolver creates a resolver over a shared immutable catalog.
func NewResolver(catalog *Catalog, mode SnapMode) *Resolver {
	if mode == "" {
		mode = SnapUp
	}
	return &Resolver{catalog: catalog, mode: mode}
}

// Resolve snaps raw onto the tier grid for currency. raw must be positive.
//
// In up mode the result is the first tier at or above raw (a raw price that
// lands exactly on a tier keeps that tier; anything between tiers snaps up),
// so the visible price never falls below the raw conversion. The one
// exception is a raw price above every tier, where the maximum tier is
// returned. With no tiers at all the raw price is rounded up to the next
// minor currency unit.
func (r *Resolver) Resolve(raw float64, currency string) (float64, error) {
	if raw <= 0 {
		return 0, fmt.Errorf("raw price must be positive, got %v", raw)
	}

	t := r.catalog.TiersFor(currency, raw)
	if len(t) == 0 {
		return roundUpMinorUnit(raw, currency), nil
	}

	switch r.mode {
	case SnapNearest, SnapDown:
		return snapLegacy(raw, t, r.mode), nil
	default:
		for _, tier := range t {
			if tier > raw-tierEps {
				return tier, nil
			}
		}
		return t[len(t)-1], nil
	}
}

// snapLegacy implements the nearest/down modes over the same grid.
func snapLegacy(raw float64, t []float64, mode SnapMode) float64 {
	if raw <= t[0] {
		return t[0]
	}
	if raw >= t[len(t)-1] {
		return t[len(t)-1]
	}
	for i := 0; i < len(t)-1; i++ {
		if t[i] <= raw && raw <= t[i+1] {
			if mode == SnapDown {
				return t[i]
			}
			if raw-t[i] <= t[i+1]-raw {
				return t[i]
			}
			return t[i+1]
		}
	}
	return t[len(t)-1]
}

// roundUpMinorUnit rounds raw up to the next representable price in the
// currency's minor unit (whole units for zero-decimal currencies).
func roundUpMinorUnit(raw float64, currency string) float64 {
	places := int32(2)
	if _, ok := zeroDecimalCurrencies[currency]; ok {
		places = 0
	}
	v, _ := decimal.NewFromFloat(raw).RoundCeil(places).Float64()
	return v
}
