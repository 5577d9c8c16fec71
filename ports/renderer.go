package ports

import (
	"context"

	"qqfit/domain/dist"
)

// QQPair is one plotted point: a model quantile paired with the empirical
// order statistic at the same probability level.
type QQPair struct {
	Theoretical float64
	Empirical   float64
}

// RefLine is the y = x segment drawn under a quantile plot. Min and Max span
// the smallest and largest value across both paired sequences.
type RefLine struct {
	Min float64
	Max float64
}

// Band carries the dispersion markers for a quantile plot. Center is the
// sample mean, Lower and Upper sit a fixed number of sample standard
// deviations either side of it. The renderer draws the band as a saturating
// ramp: flat at Lower, rising along the diagonal, flat again at Upper.
type Band struct {
	Center float64
	Lower  float64
	Upper  float64
}

// CurvePoint is one point of a fitted density curve.
type CurvePoint struct {
	X float64
	Y float64
}

// QQChart is the plot-ready payload for one quantile-quantile chart. Ref and
// Band are nil when the run did not request them.
type QQChart struct {
	Family    dist.Family
	Year      int
	Pairs     []QQPair
	Simulated []QQPair
	Ref       *RefLine
	Band      *Band
}

// DistChart is the plot-ready payload for one histogram chart with the
// fitted density overlaid.
type DistChart struct {
	Family  dist.Family
	Year    int
	Values  []float64
	Density []CurvePoint
}

// ChartRenderer turns plot payloads into image files and returns the path
// each file was written to.
type ChartRenderer interface {
	RenderQQ(ctx context.Context, chart QQChart) (string, error)
	RenderDistribution(ctx context.Context, chart DistChart) (string, error)
}
