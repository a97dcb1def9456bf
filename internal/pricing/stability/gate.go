// Package stability implements the hysteresis rule that keeps published
// prices from churning: a freshly computed price only replaces the previous
// one when it drops, or when the increase is significant.
package stability

import "fmt"

// DefaultThreshold is the relative increase above which a new price is
// adopted despite being higher.
const DefaultThreshold = 0.05

// Decision is the gate's verdict for one pair.
type Decision struct {
	Adopt  bool
	Reason string
}

// Gate evaluates price updates against the previous published price.
type Gate struct {
	threshold float64
}

// NewGate creates a gate. A non-positive threshold falls back to the default.
func NewGate(threshold float64) *Gate {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Gate{threshold: threshold}
}

// Evaluate decides whether newPrice should replace the previous published
// price. hasPrevious is false on the first publish for a pair.
func (g *Gate) Evaluate(newPrice, previous float64, hasPrevious bool) Decision {
	if !hasPrevious {
		return Decision{Adopt: true, Reason: "first time setting price"}
	}
	if newPrice <= 0 || previous <= 0 {
		return Decision{Adopt: true, Reason: "invalid price detected, updating"}
	}

	change := (newPrice - previous) / previous
	if newPrice < previous {
		return Decision{Adopt: true, Reason: fmt.Sprintf("price decreased by %.1f%% (beneficial)", -change*100)}
	}
	if change > g.threshold {
		return Decision{Adopt: true, Reason: fmt.Sprintf("price increased by %.1f%% (above %.0f%% threshold)", change*100, g.threshold*100)}
	}
	return Decision{Adopt: false, Reason: fmt.Sprintf("price increased by %.1f%% (below %.0f%% threshold, keeping stable)", change*100, g.threshold*100)}
}
