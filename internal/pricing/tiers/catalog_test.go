package tiers

import "testing"

func TestCuratedTablesStrictlyIncreasing(t *testing.T) {
	c := NewCatalog()
	for _, cur := range []string{"USD", "EUR", "GBP", "JPY", "ILS"} {
		tiers, ok := c.Curated(cur)
		if !ok {
			t.Fatalf("expected curated table for %s", cur)
		}
		if len(tiers) == 0 {
			t.Fatalf("empty table for %s", cur)
		}
		for i := 1; i < len(tiers); i++ {
			if tiers[i] <= tiers[i-1] {
				t.Fatalf("%s tiers not strictly increasing at %d: %v <= %v", cur, i, tiers[i], tiers[i-1])
			}
		}
	}
}

func TestTiersForCuratedVerbatim(t *testing.T) {
	c := NewCatalog()
	got := c.TiersFor("EUR", 123.45)
	want, _ := c.Curated("EUR")
	if len(got) != len(want) {
		t.Fatalf("curated table altered: got %d tiers, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("curated table altered at %d: %v != %v", i, got[i], want[i])
		}
	}
}

func TestTiersForFallsBackToUSD(t *testing.T) {
	c := NewCatalog()
	got := c.TiersFor("XYZ", 0)
	usd, _ := c.Curated("USD")
	if len(got) != len(usd) || got[0] != usd[0] {
		t.Fatalf("expected USD fallback without a reference price")
	}
}

func TestSynthesizeCoversReference(t *testing.T) {
	seq := Synthesize(37.20)
	if len(seq) == 0 {
		t.Fatalf("expected non-empty sequence")
	}
	for i := 1; i < len(seq); i++ {
		if seq[i] <= seq[i-1] {
			t.Fatalf("sequence not strictly increasing at %d: %v", i, seq)
		}
	}
	if seq[0] > 20 {
		t.Fatalf("sequence should start near reference/2, starts at %v", seq[0])
	}
	if seq[len(seq)-1] <= 37.20 {
		t.Fatalf("sequence must contain a point above the reference, ends at %v", seq[len(seq)-1])
	}
	// First point above the raw reference is what the resolver will pick.
	var snap float64
	for _, v := range seq {
		if v > 37.20 {
			snap = v
			break
		}
	}
	if snap != 39 {
		t.Fatalf("expected first point above 37.20 to be 39, got %v", snap)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	a := Synthesize(250)
	b := Synthesize(250)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSynthesizeSubUnitCluster(t *testing.T) {
	seq := Synthesize(0.85) // spans [0.425, 1.275]
	saw := map[float64]bool{}
	for _, v := range seq {
		saw[v] = true
	}
	for _, want := range []float64{0.90, 0.95, 0.99} {
		if !saw[want] {
			t.Fatalf("expected %.2f in sub-unit cluster, got %v", want, seq)
		}
	}
}

func TestSynthesizeMagnitudeBands(t *testing.T) {
	cases := []struct {
		reference float64
		contains  float64
	}{
		{60, 59},       // <100 band, unit steps ending 0/5/9
		{600, 590},     // 100-1000 band, steps of 10
		{6000, 5900},   // 1000-10000 band, steps of 100
		{60000, 59000}, // >=10000 band, steps of 1000
	}
	for _, tc := range cases {
		seq := Synthesize(tc.reference)
		found := false
		for _, v := range seq {
			if v == tc.contains {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Synthesize(%v) missing %v: %v", tc.reference, tc.contains, seq)
		}
	}
}

func TestSynthesizeTinyReferenceStillYieldsPoint(t *testing.T) {
	seq := Synthesize(0.04)
	if len(seq) == 0 {
		t.Fatalf("expected at least one point for a tiny reference")
	}
	if seq[len(seq)-1] <= 0.04 {
		t.Fatalf("expected a point above the reference, got %v", seq)
	}
}

func TestNextPointCarries(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0.99, 1},
		{4, 5},
		{5, 9},
		{9, 10},
		{10, 15},
		{19, 20},
		{99, 100},
		{100, 150},
		{950, 990},
		{990, 1000},
		{9900, 10000},
	}
	for _, tc := range cases {
		if got := nextPoint(tc.in); got != tc.want {
			t.Errorf("nextPoint(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
