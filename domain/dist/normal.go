package dist

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Normal is the normal (Gaussian) variant. The fitting contract pins Mu to
// zero; a nonzero Mu can only come from a hand-written cache record.
type Normal struct {
	Mu    float64
	Sigma float64

	Src rand.Source
}

// StandardNormal returns the unit normal: location 0, scale 1
func StandardNormal() Normal {
	return Normal{Mu: 0, Sigma: 1}
}

func (n Normal) dist() distuv.Normal {
	return distuv.Normal{Mu: n.Mu, Sigma: n.Sigma, Src: n.Src}
}

// Family returns FamilyNormal
func (n Normal) Family() Family {
	return FamilyNormal
}

// Params returns [mu, sigma]
func (n Normal) Params() []float64 {
	return []float64{n.Mu, n.Sigma}
}

// Quantile returns the inverse CDF at probability p
func (n Normal) Quantile(p float64) float64 {
	return n.dist().Quantile(p)
}

// Prob returns the density at x
func (n Normal) Prob(x float64) float64 {
	return n.dist().Prob(x)
}

// CDF returns the cumulative probability at x
func (n Normal) CDF(x float64) float64 {
	return n.dist().CDF(x)
}

// Rand draws one value
func (n Normal) Rand() float64 {
	return n.dist().Rand()
}

// Mean returns mu
func (n Normal) Mean() float64 {
	return n.Mu
}

// StdDev returns sigma
func (n Normal) StdDev() float64 {
	return n.Sigma
}
