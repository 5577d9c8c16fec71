package quantile

import (
	"math"
	"math/rand/v2"
	"testing"

	"qqfit/domain/core"
	"qqfit/domain/dist"
	"qqfit/domain/sample"
	"qqfit/ports"
)

func TestLevelsClosedGrid(t *testing.T) {
	levels := Levels(5)
	if len(levels) != 5 {
		t.Fatalf("Expected 5 levels, got %d", len(levels))
	}
	if levels[0] != GridLo {
		t.Errorf("Expected first level %v, got %v", GridLo, levels[0])
	}
	if levels[4] != GridHi {
		t.Errorf("Expected last level %v, got %v", GridHi, levels[4])
	}
	for i := 1; i < len(levels); i++ {
		if levels[i] <= levels[i-1] {
			t.Errorf("Levels not strictly increasing at %d: %v", i, levels)
		}
	}
	// Uniform spacing
	step := levels[1] - levels[0]
	for i := 2; i < len(levels); i++ {
		if math.Abs((levels[i]-levels[i-1])-step) > 1e-12 {
			t.Errorf("Uneven spacing at %d: %v", i, levels)
		}
	}
}

func TestLevelsDegenerateCounts(t *testing.T) {
	if got := Levels(0); got != nil {
		t.Errorf("Expected nil for zero levels, got %v", got)
	}
	one := Levels(1)
	if len(one) != 1 || one[0] != GridLo {
		t.Errorf("Expected [%v], got %v", GridLo, one)
	}
	two := Levels(2)
	if two[0] != GridLo || two[1] != GridHi {
		t.Errorf("Expected both endpoints, got %v", two)
	}
}

func TestPairsCountAndOrder(t *testing.T) {
	data := sample.Sample{3.2, 1.1, 2.7, 0.4, 2.7}

	pairs, err := Pairs(data, dist.StandardNormal())
	if err != nil {
		t.Fatalf("Pairs failed: %v", err)
	}
	if len(pairs) != data.Len() {
		t.Fatalf("Expected %d pairs, got %d", data.Len(), len(pairs))
	}
	for i := 1; i < len(pairs); i++ {
		if pairs[i].Empirical < pairs[i-1].Empirical {
			t.Errorf("Empirical sequence decreases at %d: %v", i, pairs)
		}
	}
	// The standard normal grid is symmetric around zero
	first, last := pairs[0].Theoretical, pairs[len(pairs)-1].Theoretical
	if math.Abs(first+last) > 1e-9 {
		t.Errorf("Expected symmetric theoretical endpoints, got %v and %v", first, last)
	}
}

func TestPairsExcludesNonFinite(t *testing.T) {
	data := sample.Sample{1.0, math.NaN(), 2.0, math.Inf(1), 3.0}

	pairs, err := Pairs(data, dist.StandardNormal())
	if err != nil {
		t.Fatalf("Pairs failed: %v", err)
	}
	if len(pairs) != 3 {
		t.Errorf("Expected non-finite values excluded, got %d pairs", len(pairs))
	}
}

func TestPairsEmptySample(t *testing.T) {
	_, err := Pairs(sample.Sample{math.NaN()}, dist.StandardNormal())
	if err == nil {
		t.Fatal("Expected error for sample with no finite values")
	}
	if !core.IsInputError(err) {
		t.Errorf("Expected input error, got %v", err)
	}
}

func TestReferenceSpansBothSequences(t *testing.T) {
	pairs := []ports.QQPair{
		{Theoretical: -3.0, Empirical: 0.5},
		{Theoretical: 1.0, Empirical: 7.5},
	}

	ref := Reference(pairs)
	if ref.Min != -3.0 {
		t.Errorf("Expected min from theoretical side, got %v", ref.Min)
	}
	if ref.Max != 7.5 {
		t.Errorf("Expected max from empirical side, got %v", ref.Max)
	}
}

func TestBandMarkers(t *testing.T) {
	// mean 5, population standard deviation 2
	data := sample.Sample{2, 4, 4, 4, 5, 5, 7, 9}

	for _, k := range []float64{0, 1, 2.5} {
		band, err := NewBand(data, k)
		if err != nil {
			t.Fatalf("NewBand(%v) failed: %v", k, err)
		}
		if band.Center != 5 {
			t.Errorf("k=%v: expected center 5, got %v", k, band.Center)
		}
		if band.Lower != 5-k*2 {
			t.Errorf("k=%v: expected lower %v, got %v", k, 5-k*2, band.Lower)
		}
		if band.Upper != 5+k*2 {
			t.Errorf("k=%v: expected upper %v, got %v", k, 5+k*2, band.Upper)
		}
	}
}

func TestBandRejectsNegativeMultiplier(t *testing.T) {
	_, err := NewBand(sample.Sample{1, 2, 3}, -1)
	if err == nil {
		t.Fatal("Expected error for negative multiplier")
	}
	if !core.IsInputError(err) {
		t.Errorf("Expected input error, got %v", err)
	}
}

func TestRampSaturates(t *testing.T) {
	band := ports.Band{Center: 5, Lower: 3, Upper: 7}

	tests := []struct {
		x    float64
		want float64
	}{
		{0, 3},
		{3, 3},
		{5, 5},
		{7, 7},
		{100, 7},
	}
	for _, tt := range tests {
		if got := Ramp(band, tt.x); got != tt.want {
			t.Errorf("Ramp(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestSimulatedMatchesGrid(t *testing.T) {
	d := dist.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(3, 5)}

	pairs := Simulated(d, 50)
	if len(pairs) != 50 {
		t.Fatalf("Expected 50 pairs, got %d", len(pairs))
	}
	for i := 1; i < len(pairs); i++ {
		if pairs[i].Empirical < pairs[i-1].Empirical {
			t.Errorf("Simulated draws not sorted at %d", i)
		}
		if pairs[i].Theoretical <= pairs[i-1].Theoretical {
			t.Errorf("Theoretical grid not increasing at %d", i)
		}
	}

	again := Simulated(dist.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(3, 5)}, 50)
	for i := range pairs {
		if pairs[i] != again[i] {
			t.Errorf("Seeded simulation not reproducible at %d", i)
		}
	}
}

func TestDensityCurve(t *testing.T) {
	d := dist.StandardNormal()

	curve := DensityCurve(d, 2.0, 5)
	if len(curve) != 5 {
		t.Fatalf("Expected 5 points, got %d", len(curve))
	}
	if curve[0].X != 0 || curve[4].X != 2.0 {
		t.Errorf("Expected X span [0, 2], got [%v, %v]", curve[0].X, curve[4].X)
	}
	for _, p := range curve {
		if math.Abs(p.Y-d.Prob(p.X)) > 1e-12 {
			t.Errorf("Curve point at %v disagrees with density", p.X)
		}
	}

	if got := DensityCurve(d, -1, 5); got != nil {
		t.Errorf("Expected no curve for non-positive max, got %v", got)
	}
}

func TestCompareOptionalGeometry(t *testing.T) {
	data := sample.Sample{1.5, 2.5, 3.5, 4.5}
	d := dist.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(1, 2)}

	bare, err := Compare(data, d, Options{})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if bare.Ref != nil || bare.Band != nil || bare.Simulated != nil {
		t.Error("Expected no optional geometry by default")
	}
	if len(bare.Pairs) != data.Len() {
		t.Errorf("Expected %d pairs, got %d", data.Len(), len(bare.Pairs))
	}

	full, err := Compare(data, d, Options{RefLine: true, Band: true, BandMultiplier: 2, Simulate: true})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if full.Ref == nil || full.Band == nil {
		t.Fatal("Expected reference line and band")
	}
	if len(full.Simulated) != len(full.Pairs) {
		t.Errorf("Expected %d simulated pairs, got %d", len(full.Pairs), len(full.Simulated))
	}
	mean := data.Mean()
	sd := data.StdDev()
	if full.Band.Lower != mean-2*sd || full.Band.Upper != mean+2*sd {
		t.Errorf("Band markers off: %+v", full.Band)
	}
}
