package dist

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Demo is the reserved diagnostic variant: a fixed standard normal with no
// free parameters. It is never fitted and never cached, so a demo run
// exercises the full chart path with a known reference shape.
type Demo struct {
	Src rand.Source
}

func (d Demo) dist() distuv.Normal {
	return distuv.Normal{Mu: 0, Sigma: 1, Src: d.Src}
}

// Family returns FamilyDemo
func (d Demo) Family() Family {
	return FamilyDemo
}

// Params returns the empty vector; the shape is fixed
func (d Demo) Params() []float64 {
	return []float64{}
}

// Quantile returns the standard normal inverse CDF at probability p
func (d Demo) Quantile(p float64) float64 {
	return d.dist().Quantile(p)
}

// Prob returns the standard normal density at x
func (d Demo) Prob(x float64) float64 {
	return d.dist().Prob(x)
}

// CDF returns the standard normal cumulative probability at x
func (d Demo) CDF(x float64) float64 {
	return d.dist().CDF(x)
}

// Rand draws one value
func (d Demo) Rand() float64 {
	return d.dist().Rand()
}

// Mean returns 0
func (d Demo) Mean() float64 {
	return 0
}

// StdDev returns 1
func (d Demo) StdDev() float64 {
	return 1
}
