// Package fx converts amounts between USD and local currencies against a
// single immutable rate snapshot, so forward and reverse conversions within
// one run always agree.
package fx

import (
	"github.com/Dotan-Peleh/currency-convertor/internal/domain/models"
	applogger "github.com/Dotan-Peleh/currency-convertor/pkg/logger"
)

// Converter wraps one rate snapshot. Safe for concurrent readers.
type Converter struct {
	snap   models.RateSnapshot
	logger *applogger.Logger
}

// NewConverter creates a converter over a snapshot. logger may be nil.
func NewConverter(snap models.RateSnapshot, logger *applogger.Logger) *Converter {
	return &Converter{snap: snap, logger: logger}
}

// Date returns the snapshot's as-of date.
func (c *Converter) Date() string {
	return c.snap.Date
}

// Rate returns the USD to currency rate. A missing currency falls back to
// 1.0 with a warning rather than failing the pair.
func (c *Converter) Rate(currency string) float64 {
	if r, ok := c.snap.Rates[currency]; ok && r > 0 {
		return r
	}
	if c.logger != nil {
		c.logger.Warn("exchange rate missing, using 1.0", applogger.String("currency", currency))
	}
	return 1.0
}

// ToLocal converts a USD amount to the target currency.
func (c *Converter) ToLocal(usd float64, currency string) float64 {
	return usd * c.Rate(currency)
}

// ToUSD converts a local-currency amount back to USD using the same rate
// as the forward conversion.
func (c *Converter) ToUSD(local float64, currency string) float64 {
	r := c.Rate(currency)
	if r == 0 {
		return 0
	}
	return local / r
}
