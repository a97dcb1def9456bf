// Package tiers implements storefront price points: curated vendor tables
// per currency, an algorithmic fallback for currencies without one, and the
// resolver that snaps a raw converted price onto a visible tier.
package tiers

import "math"

// Curated vendor price points. These follow the Apple / Google Play store
// tiers and are authoritative: they are returned verbatim, never re-sorted.
var curatedTiers = map[string][]float64{
	"USD": {0.99, 1.99, 2.99, 3.99, 4.99, 5.99, 6.99, 7.99, 9.99, 10.99, 12.99, 14.99, 19.99, 24.99, 29.99, 39.99, 49.99, 54.99, 59.99, 64.99, 69.99, 74.99, 79.99, 84.99, 89.99, 94.99, 99.99, 199.99},
	"EUR": {0.99, 1.99, 2.99, 3.99, 4.99, 5.99, 6.99, 7.99, 9.99, 10.99, 12.99, 14.99, 19.99, 24.99, 29.99, 39.99, 49.99, 54.99, 59.99, 64.99, 69.99, 74.99, 79.99, 84.99, 89.99, 94.99, 99.99, 199.99},
	"GBP": {0.79, 1.49, 1.99, 2.99, 3.99, 4.99, 5.99, 7.99, 9.99, 10.99, 12.99, 14.99, 19.99, 24.99, 29.99, 39.99, 49.99, 54.99, 59.99, 64.99, 69.99, 74.99, 79.99, 84.99, 89.99, 94.99, 99.99, 199.99},
	"JPY": {120, 160, 250, 370, 490, 610, 730, 860, 980, 1100, 1200, 1400, 1900, 2400, 2900, 3900, 4900, 5400, 5900, 6400, 6900, 7400, 7900, 8400, 8900, 9400, 9900, 19900},
	"ILS": {3.9, 7.9, 11.9, 15.9, 19.9, 23.9, 27.9, 31.9, 35.9, 39.9, 43.9, 47.9, 59.9, 74.9, 89.9, 119.9, 149.9, 164.9, 179.9, 194.9, 209.9, 224.9, 239.9, 254.9, 269.9, 284.9, 299.9, 599.9},
}

// maxSynthesisSteps bounds the synthesizer walk so it always terminates.
const maxSynthesisSteps = 512

// Catalog is the immutable per-currency tier table. Build one at process
// start and share it; it is safe for concurrent readers.
type Catalog struct {
	curated map[string][]float64
}

// NewCatalog builds a catalog from the built-in vendor tables.
func NewCatalog() *Catalog {
	return &Catalog{curated: curatedTiers}
}

// NewCatalogWith builds a catalog from explicit vendor tables, replacing the
// built-in ones. Tables must be strictly increasing.
func NewCatalogWith(tables map[string][]float64) *Catalog {
	return &Catalog{curated: tables}
}

// Curated returns the vendor table for a currency, if one exists.
func (c *Catalog) Curated(currency string) ([]float64, bool) {
	t, ok := c.curated[currency]
	return t, ok
}

// TiersFor returns the ordered tier sequence for a currency. A curated table
// wins; otherwise a sequence is synthesized around the reference price; with
// no reference the USD table is the fallback.
func (c *Catalog) TiersFor(currency string, reference float64) []float64 {
	if t, ok := c.curated[currency]; ok {
		return t
	}
	if reference > 0 {
		return Synthesize(reference)
	}
	return c.curated["USD"]
}

// Synthesize builds a strictly increasing sequence of "nice" price points
// spanning [reference/2, reference*1.5]. Deterministic for a given reference.
func Synthesize(reference float64) []float64 {
	lo := reference / 2
	hi := reference * 1.5

	var out []float64
	v := 0.0
	for i := 0; i < maxSynthesisSteps; i++ {
		next := nextPoint(v)
		if next <= v {
			break // defensive: the walk must strictly increase
		}
		v = next
		if v < lo {
			continue
		}
		if v > hi {
			// Keep at least one point above the reference so the resolver
			// always has somewhere to snap up to.
			if len(out) == 0 || out[len(out)-1] <= reference {
				out = append(out, v)
			}
			break
		}
		if len(out) == 0 || v > out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// nextPoint is the successor function of the synthesizer: given a price
// point it returns the next canonical point. Below one unit it steps by 0.10
// and finishes in the .90/.95/.99 cluster; above, it walks an integer cadence
// ending in 0/5/9, with the step scaled by magnitude band.
func nextPoint(v float64) float64 {
	const eps = 1e-9
	if v < 0.10-eps {
		return 0.10
	}
	if v < 0.80-eps {
		return math.Floor(v*10+eps)/10 + 0.10
	}
	if v < 0.90-eps {
		return 0.90
	}
	if v < 0.95-eps {
		return 0.95
	}
	if v < 0.99-eps {
		return 0.99
	}

	s := bandScale(v)
	u := math.Floor(v/s + eps)
	if u < 5 {
		return (u + 1) * s
	}
	switch d := math.Mod(u, 10); {
	case d < 5:
		u = u - d + 5
	case d < 9:
		u = u - d + 9
	default:
		u++ // x9 carries to the next block: 99 -> 100, 990 -> 1000
	}
	return u * s
}

// bandScale maps a value to its magnitude band step multiplier.
func bandScale(v float64) float64 {
	switch {
	case v < 100:
		return 1
	case v < 1000:
		return 10
	case v < 10000:
		return 100
	default:
		return 1000
	}
}
