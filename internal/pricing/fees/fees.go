// Package fees computes the processing-fee breakdown on a priced pair and
// the margin comparison against a reference storefront's cut.
package fees

import (
	"fmt"

	"github.com/Dotan-Peleh/currency-convertor/internal/pricing/fx"
)

// Config holds the fee knobs. Zero values mean no processing fee.
type Config struct {
	// FeePercent and FixedFee define the processor fee applied to the
	// tax-exclusive net, in local currency.
	FeePercent float64
	FixedFee   float64
	// ReferenceFeePercent is the reference storefront's revenue share,
	// typically 0.30, or 0.15 when SmallSeller applies.
	ReferenceFeePercent float64
	SmallSeller         bool
}

// referencePct resolves the effective reference fee.
func (c Config) referencePct() float64 {
	if c.SmallSeller {
		return 0.15
	}
	if c.ReferenceFeePercent > 0 {
		return c.ReferenceFeePercent
	}
	return 0.30
}

// Breakdown is the USD revenue decomposition for one pair.
type Breakdown struct {
	FeeLocal          float64
	NetLocal          float64
	GrossUSD          float64
	FeeUSD            float64
	NetUSD            float64
	NetVsReferencePct float64
	NetVsReference    string
}

// Compute derives the fee breakdown. The fee applies to the tax-exclusive
// net in local currency; every USD figure uses the same rate snapshot as the
// forward conversion so the round trip is consistent.
func Compute(visible, netBeforeFees float64, currency string, conv *fx.Converter, cfg Config) Breakdown {
	b := Breakdown{}
	b.FeeLocal = netBeforeFees*cfg.FeePercent + cfg.FixedFee
	b.NetLocal = netBeforeFees - b.FeeLocal

	b.GrossUSD = conv.ToUSD(visible, currency)
	b.FeeUSD = conv.ToUSD(b.FeeLocal, currency)
	b.NetUSD = conv.ToUSD(b.NetLocal, currency)

	referenceNet := b.GrossUSD * (1 - cfg.referencePct())
	if referenceNet > 0 {
		b.NetVsReferencePct = (b.NetUSD - referenceNet) / referenceNet * 100
	}
	b.NetVsReference = formatSignedPct(b.NetVsReferencePct)
	return b
}

// formatSignedPct renders a percentage with an explicit sign for gains.
func formatSignedPct(pct float64) string {
	if pct > 0 {
		return fmt.Sprintf("+%.1f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}
