package dist

import (
	"math"
	"testing"

	"qqfit/domain/core"
)

// TestParseFamilyRoundTrip verifies every supported tag resolves and prints back
func TestParseFamilyRoundTrip(t *testing.T) {
	for _, family := range Families() {
		parsed, err := ParseFamily(family.String())
		if err != nil {
			t.Fatalf("ParseFamily(%q) failed: %v", family.String(), err)
		}
		if parsed != family {
			t.Errorf("ParseFamily(%q) = %v, want %v", family.String(), parsed, family)
		}
	}
}

// TestParseFamilyUnknownTag verifies unknown tags fail as configuration errors
func TestParseFamilyUnknownTag(t *testing.T) {
	_, err := ParseFamily("weibull")
	if err == nil {
		t.Fatal("Expected error for unknown family tag")
	}
	if !core.IsConfigurationError(err) {
		t.Errorf("Expected configuration error, got %v", err)
	}
}

// TestFamilyArity verifies the fixed parameter arities
func TestFamilyArity(t *testing.T) {
	tests := []struct {
		family Family
		arity  int
	}{
		{FamilyNormal, 2},
		{FamilyBurr, 3},
		{FamilyGamma, 2},
		{FamilyDemo, 0},
	}
	for _, test := range tests {
		if got := test.family.Arity(); got != test.arity {
			t.Errorf("%s arity = %d, want %d", test.family, got, test.arity)
		}
	}
}

// TestDemoIsFixedStandardNormal verifies the parameterless demo variant
func TestDemoIsFixedStandardNormal(t *testing.T) {
	d := Demo{}

	if d.Family() != FamilyDemo {
		t.Errorf("Expected demo family, got %s", d.Family())
	}
	if len(d.Params()) != 0 {
		t.Errorf("Expected no parameters, got %v", d.Params())
	}
	if d.Mean() != 0 {
		t.Errorf("Expected mean 0, got %v", d.Mean())
	}
	if d.StdDev() != 1 {
		t.Errorf("Expected standard deviation 1, got %v", d.StdDev())
	}
	if q := d.Quantile(0.5); math.Abs(q) > 1e-12 {
		t.Errorf("Expected median 0, got %v", q)
	}
	// Standard normal density peaks at 1/sqrt(2*pi)
	if p := d.Prob(0); math.Abs(p-1/math.Sqrt(2*math.Pi)) > 1e-12 {
		t.Errorf("Unexpected density at 0: %v", p)
	}
}

// TestNormalQuantileSymmetry verifies quantiles are symmetric around the location
func TestNormalQuantileSymmetry(t *testing.T) {
	n := Normal{Mu: 0, Sigma: 2.5}

	for _, p := range []float64{0.01, 0.1, 0.25, 0.4} {
		lo := n.Quantile(p)
		hi := n.Quantile(1 - p)
		if math.Abs(lo+hi) > 1e-9 {
			t.Errorf("Quantiles at %v and %v not symmetric: %v vs %v", p, 1-p, lo, hi)
		}
	}
}

// TestGammaMoments verifies mean and standard deviation in shape/rate form
func TestGammaMoments(t *testing.T) {
	g := Gamma{Alpha: 2, Beta: 0.5}

	if mean := g.Mean(); math.Abs(mean-4.0) > 1e-12 {
		t.Errorf("Expected mean 4, got %v", mean)
	}
	if sd := g.StdDev(); math.Abs(sd-math.Sqrt(2)/0.5) > 1e-12 {
		t.Errorf("Expected standard deviation %v, got %v", math.Sqrt(2)/0.5, sd)
	}
}

// TestBurrQuantileCDFRoundTrip verifies the closed forms invert each other
func TestBurrQuantileCDFRoundTrip(t *testing.T) {
	b := Burr{C: 2, K: 3, Lambda: 1.5}

	for _, p := range []float64{0.01, 0.25, 0.5, 0.75, 0.99} {
		x := b.Quantile(p)
		if got := b.CDF(x); math.Abs(got-p) > 1e-10 {
			t.Errorf("CDF(Quantile(%v)) = %v", p, got)
		}
	}
}

// TestBurrMedian verifies the quantile function against a hand-computed value
func TestBurrMedian(t *testing.T) {
	b := Burr{C: 2, K: 3, Lambda: 1.5}

	// lambda * (2^(1/3) - 1)^(1/2)
	want := 1.5 * math.Sqrt(math.Cbrt(2)-1)
	if got := b.Quantile(0.5); math.Abs(got-want) > 1e-12 {
		t.Errorf("Expected median %v, got %v", want, got)
	}
}

// TestBurrMoments verifies the beta-function moments against hand-computed values
func TestBurrMoments(t *testing.T) {
	b := Burr{C: 2, K: 3, Lambda: 1.5}

	// Mean = lambda*k*B(k-1/c, 1+1/c) = 4.5*B(2.5, 1.5) = 4.5*pi/16
	wantMean := 4.5 * math.Pi / 16
	if got := b.Mean(); math.Abs(got-wantMean) > 1e-9 {
		t.Errorf("Expected mean %v, got %v", wantMean, got)
	}

	// E[X^2] = lambda^2*k*B(2, 2) = 6.75/6 = 1.125
	wantVar := 1.125 - wantMean*wantMean
	if got := b.Variance(); math.Abs(got-wantVar) > 1e-9 {
		t.Errorf("Expected variance %v, got %v", wantVar, got)
	}
	if got := b.StdDev(); math.Abs(got-math.Sqrt(wantVar)) > 1e-9 {
		t.Errorf("Expected standard deviation %v, got %v", math.Sqrt(wantVar), got)
	}
}

// TestBurrDivergentMoments verifies +Inf is reported when moments do not exist
func TestBurrDivergentMoments(t *testing.T) {
	// c*k = 0.5: no mean, no variance
	heavy := Burr{C: 1, K: 0.5, Lambda: 1}
	if !math.IsInf(heavy.Mean(), 1) {
		t.Errorf("Expected divergent mean, got %v", heavy.Mean())
	}
	if !math.IsInf(heavy.StdDev(), 1) {
		t.Errorf("Expected divergent standard deviation, got %v", heavy.StdDev())
	}

	// c*k = 1.5: mean exists, variance does not
	moderate := Burr{C: 1, K: 1.5, Lambda: 1}
	if math.IsInf(moderate.Mean(), 1) {
		t.Errorf("Expected finite mean, got %v", moderate.Mean())
	}
	if !math.IsInf(moderate.StdDev(), 1) {
		t.Errorf("Expected divergent standard deviation, got %v", moderate.StdDev())
	}
}

// TestBurrDensityIntegratesAroundMode verifies density is positive on the support
// and zero outside it
func TestBurrDensitySupport(t *testing.T) {
	b := Burr{C: 2, K: 3, Lambda: 1.5}

	if p := b.Prob(-1); p != 0 {
		t.Errorf("Expected zero density below support, got %v", p)
	}
	if p := b.Prob(0); p != 0 {
		t.Errorf("Expected zero density at zero, got %v", p)
	}
	if p := b.Prob(1.0); p <= 0 {
		t.Errorf("Expected positive density inside support, got %v", p)
	}
}

// TestFromParamsRoundTrip verifies cached vectors reconstruct each variant verbatim
func TestFromParamsRoundTrip(t *testing.T) {
	tests := []struct {
		family Family
		params []float64
	}{
		{FamilyNormal, []float64{0, 3.25}},
		{FamilyBurr, []float64{2.0, 3.0, 1.5}},
		{FamilyGamma, []float64{2.5, 1.25}},
	}

	for _, test := range tests {
		d, err := FromParams(test.family, test.params)
		if err != nil {
			t.Fatalf("FromParams(%s) failed: %v", test.family, err)
		}
		if d.Family() != test.family {
			t.Errorf("Expected family %s, got %s", test.family, d.Family())
		}
		got := d.Params()
		if len(got) != len(test.params) {
			t.Fatalf("Expected %d params, got %d", len(test.params), len(got))
		}
		for i := range got {
			if got[i] != test.params[i] {
				t.Errorf("%s param %d: expected %v, got %v", test.family, i, test.params[i], got[i])
			}
		}
	}
}

// TestFromParamsArityMismatch verifies corrupt cache vectors fail as fit errors
func TestFromParamsArityMismatch(t *testing.T) {
	_, err := FromParams(FamilyBurr, []float64{1, 2})
	if err == nil {
		t.Fatal("Expected error for wrong parameter arity")
	}
	if !core.IsFitError(err) {
		t.Errorf("Expected fit error, got %v", err)
	}
}

// TestFromParamsDemo verifies demo reconstructs to the fixed standard normal
func TestFromParamsDemo(t *testing.T) {
	d, err := FromParams(FamilyDemo, nil)
	if err != nil {
		t.Fatalf("FromParams(demo) failed: %v", err)
	}
	if d.Mean() != 0 || d.StdDev() != 1 {
		t.Errorf("Expected standard normal, got mean=%v sd=%v", d.Mean(), d.StdDev())
	}
}
