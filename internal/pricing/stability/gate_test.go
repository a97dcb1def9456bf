package stability

import "testing"

func TestFirstPublishAdopts(t *testing.T) {
	g := NewGate(0.05)
	d := g.Evaluate(4.99, 0, false)
	if !d.Adopt {
		t.Fatalf("first publish must adopt: %+v", d)
	}
}

func TestInvalidPreviousAdopts(t *testing.T) {
	g := NewGate(0.05)
	if d := g.Evaluate(4.99, -1, true); !d.Adopt {
		t.Fatalf("invalid previous must adopt: %+v", d)
	}
	if d := g.Evaluate(0, 4.99, true); !d.Adopt {
		t.Fatalf("invalid new price must adopt: %+v", d)
	}
}

func TestDecreaseAlwaysAdopts(t *testing.T) {
	g := NewGate(0.05)
	d := g.Evaluate(4.49, 4.99, true)
	if !d.Adopt {
		t.Fatalf("a decrease must adopt: %+v", d)
	}
}

func TestSmallIncreaseHolds(t *testing.T) {
	g := NewGate(0.05)
	d := g.Evaluate(5.09, 4.99, true) // ~2% increase
	if d.Adopt {
		t.Fatalf("a sub-threshold increase must hold: %+v", d)
	}
}

func TestLargeIncreaseAdopts(t *testing.T) {
	g := NewGate(0.05)
	d := g.Evaluate(5.99, 4.99, true) // ~20% increase
	if !d.Adopt {
		t.Fatalf("a significant increase must adopt: %+v", d)
	}
}

func TestThresholdIsExclusive(t *testing.T) {
	g := NewGate(0.05)
	// Exactly at the threshold is not "above" it.
	d := g.Evaluate(105, 100, true)
	if d.Adopt {
		t.Fatalf("an increase of exactly the threshold must hold: %+v", d)
	}
}

func TestDefaultThresholdApplied(t *testing.T) {
	g := NewGate(0)
	if g.threshold != DefaultThreshold {
		t.Fatalf("expected default threshold, got %v", g.threshold)
	}
}
