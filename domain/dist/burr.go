package dist

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mathext"
)

// Burr is the Burr type XII variant with two shape parameters and a scale:
//
//	F(x) = 1 - (1 + (x/lambda)^c)^(-k), x > 0
//
// Support is (0, inf); the location is fixed at zero by the fitting contract.
// Moments exist only up to order c*k: Mean diverges for c*k <= 1 and StdDev
// for c*k <= 2, in which case +Inf is returned.
type Burr struct {
	C      float64
	K      float64
	Lambda float64

	Src rand.Source
}

// Family returns FamilyBurr
func (b Burr) Family() Family {
	return FamilyBurr
}

// Params returns [c, k, lambda]
func (b Burr) Params() []float64 {
	return []float64{b.C, b.K, b.Lambda}
}

// CDF returns the cumulative probability at x
func (b Burr) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return 1 - math.Pow(1+math.Pow(x/b.Lambda, b.C), -b.K)
}

// Quantile returns the inverse CDF at probability p
func (b Burr) Quantile(p float64) float64 {
	if p < 0 || p > 1 {
		panic("dist: percentile out of bounds")
	}
	return b.Lambda * math.Pow(math.Pow(1-p, -1/b.K)-1, 1/b.C)
}

// Prob returns the density at x
func (b Burr) Prob(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Exp(b.LogProb(x))
}

// LogProb returns the natural logarithm of the density at x
func (b Burr) LogProb(x float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}
	y := x / b.Lambda
	return math.Log(b.C) + math.Log(b.K) - math.Log(b.Lambda) +
		(b.C-1)*math.Log(y) - (b.K+1)*math.Log1p(math.Pow(y, b.C))
}

// Rand draws one value by inverse-transform sampling
func (b Burr) Rand() float64 {
	var u float64
	if b.Src == nil {
		u = rand.Float64()
	} else {
		u = rand.New(b.Src).Float64()
	}
	return b.Quantile(u)
}

// rawMoment returns E[X^r] = lambda^r * k * B(k - r/c, 1 + r/c) for c*k > r
func (b Burr) rawMoment(r float64) float64 {
	if b.C*b.K <= r {
		return math.Inf(1)
	}
	return math.Pow(b.Lambda, r) * b.K * mathext.Beta(b.K-r/b.C, 1+r/b.C)
}

// Mean returns the distribution mean, +Inf when c*k <= 1
func (b Burr) Mean() float64 {
	return b.rawMoment(1)
}

// Variance returns the distribution variance, +Inf when c*k <= 2
func (b Burr) Variance() float64 {
	m1 := b.rawMoment(1)
	if math.IsInf(m1, 1) {
		return math.Inf(1)
	}
	m2 := b.rawMoment(2)
	if math.IsInf(m2, 1) {
		return math.Inf(1)
	}
	return m2 - m1*m1
}

// StdDev returns the distribution standard deviation, +Inf when c*k <= 2
func (b Burr) StdDev() float64 {
	return math.Sqrt(b.Variance())
}
