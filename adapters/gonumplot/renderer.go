package gonumplot

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"qqfit/domain/core"
	"qqfit/domain/dist"
	"qqfit/internal/quantile"
	"qqfit/ports"
)

// Renderer draws diagnostic charts with gonum/plot and writes one image file
// per chart into an output directory. The file format is taken from the
// configured extension (png, svg, pdf).
type Renderer struct {
	dir     string
	format  string
	axisMin *float64
	axisMax *float64
}

// NewRenderer creates the output directory if needed and returns a renderer
// writing <dir>/QQ_<family>_<year>.<format> and DIST_ equivalents.
func NewRenderer(dir, format string, axisMin, axisMax *float64) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, core.ConfigurationErrorf("failed to create plot directory %s: %v", dir, err)
	}
	return &Renderer{dir: dir, format: format, axisMin: axisMin, axisMax: axisMax}, nil
}

// RenderQQ draws the quantile pairs as a scatter, plus the optional reference
// diagonal, dispersion band and simulated-resample overlay, and saves the
// figure. Returns the written file path.
func (r *Renderer) RenderQQ(ctx context.Context, chart ports.QQChart) (string, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Q-Q Plot: %s (%s)", chart.Family, yearLabel(chart.Year))
	p.X.Label.Text = "Theoretical Quantiles"
	p.Y.Label.Text = "Empirical Quantiles"

	if chart.Band != nil {
		poly, err := bandPolygon(*chart.Band, chart.Pairs)
		if err == nil && poly != nil {
			p.Add(poly)
			p.Legend.Add("Dispersion Band", poly)
		}
		for _, m := range bandMarkers(*chart.Band, chart.Pairs) {
			p.Add(m)
		}
	}

	if chart.Ref != nil {
		refLine, err := plotter.NewLine(plotter.XYs{
			{X: chart.Ref.Min, Y: chart.Ref.Min},
			{X: chart.Ref.Max, Y: chart.Ref.Max},
		})
		if err != nil {
			return "", core.FitErrorf("failed to build reference line: %v", err)
		}
		refLine.LineStyle.Width = vg.Points(1.5)
		refLine.Color = color.RGBA{R: 200, A: 255}
		p.Add(refLine)
		p.Legend.Add("Reference", refLine)
	}

	empirical, err := plotter.NewScatter(pairsToXYs(chart.Pairs))
	if err != nil {
		return "", core.FitErrorf("failed to build quantile scatter: %v", err)
	}
	empirical.Color = color.RGBA{B: 255, A: 255}
	empirical.Shape = draw.CircleGlyph{}
	empirical.Radius = vg.Points(2)
	p.Add(empirical)
	p.Legend.Add("Observed", empirical)

	if len(chart.Simulated) > 0 {
		sim, err := plotter.NewScatter(pairsToXYs(chart.Simulated))
		if err != nil {
			return "", core.FitErrorf("failed to build simulated scatter: %v", err)
		}
		sim.Color = color.RGBA{R: 120, G: 120, B: 120, A: 180}
		sim.Shape = draw.CrossGlyph{}
		sim.Radius = vg.Points(2)
		p.Add(sim)
		p.Legend.Add("Simulated", sim)
	}

	r.applyAxisLimits(p)
	p.Legend.Top = true
	p.Legend.Left = true

	path := r.chartPath("QQ", chart.Family, chart.Year)
	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", core.FitErrorf("failed to save chart %s: %v", path, err)
	}
	log.Printf("[Renderer] Wrote Q-Q chart %s (%d pairs)", path, len(chart.Pairs))
	return path, nil
}

// RenderDistribution draws a normalized histogram of the cleaned sample with
// the fitted density curve overlaid, and saves the figure.
func (r *Renderer) RenderDistribution(ctx context.Context, chart ports.DistChart) (string, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Distribution: %s (%s)", chart.Family, yearLabel(chart.Year))
	p.X.Label.Text = "Value"
	p.Y.Label.Text = "Density"

	if len(chart.Values) > 0 {
		hist, err := plotter.NewHist(plotter.Values(chart.Values), histogramBins)
		if err != nil {
			return "", core.FitErrorf("failed to build histogram: %v", err)
		}
		hist.Normalize(1)
		hist.FillColor = color.RGBA{B: 255, A: 90}
		p.Add(hist)
	}

	if len(chart.Density) > 0 {
		curve := make(plotter.XYs, len(chart.Density))
		for i, pt := range chart.Density {
			curve[i].X = pt.X
			curve[i].Y = pt.Y
		}
		density, err := plotter.NewLine(curve)
		if err != nil {
			return "", core.FitErrorf("failed to build density curve: %v", err)
		}
		density.LineStyle.Width = vg.Points(2)
		density.Color = color.RGBA{R: 255, A: 255}
		p.Add(density)
		p.Legend.Add("Fitted Density", density)
	}

	// The axis override only makes sense on the value axis here; the density
	// axis keeps its own scale.
	if r.axisMin != nil {
		p.X.Min = *r.axisMin
	}
	if r.axisMax != nil {
		p.X.Max = *r.axisMax
	}

	path := r.chartPath("DIST", chart.Family, chart.Year)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return "", core.FitErrorf("failed to save chart %s: %v", path, err)
	}
	log.Printf("[Renderer] Wrote distribution chart %s (%d values)", path, len(chart.Values))
	return path, nil
}

const histogramBins = 100

// bandSamples controls how finely the saturating band edge is traced.
const bandSamples = 100

func (r *Renderer) chartPath(prefix string, family dist.Family, year int) string {
	name := fmt.Sprintf("%s_%s_%s.%s", prefix, family, yearLabel(year), r.format)
	return filepath.Join(r.dir, name)
}

func (r *Renderer) applyAxisLimits(p *plot.Plot) {
	if r.axisMin != nil {
		p.X.Min = *r.axisMin
		p.Y.Min = *r.axisMin
	}
	if r.axisMax != nil {
		p.X.Max = *r.axisMax
		p.Y.Max = *r.axisMax
	}
}

// yearLabel renders the all-years key (0) as "all".
func yearLabel(year int) string {
	if year == 0 {
		return "all"
	}
	return fmt.Sprintf("%d", year)
}

func pairsToXYs(pairs []ports.QQPair) plotter.XYs {
	pts := make(plotter.XYs, len(pairs))
	for i, pair := range pairs {
		pts[i].X = pair.Theoretical
		pts[i].Y = pair.Empirical
	}
	return pts
}

// bandPolygon fills the region between the lower band bound and the
// saturating ramp across the theoretical axis range.
func bandPolygon(b ports.Band, pairs []ports.QQPair) (*plotter.Polygon, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	xMin, xMax := pairs[0].Theoretical, pairs[0].Theoretical
	for _, pair := range pairs[1:] {
		if pair.Theoretical < xMin {
			xMin = pair.Theoretical
		}
		if pair.Theoretical > xMax {
			xMax = pair.Theoretical
		}
	}
	if xMax <= xMin {
		return nil, nil
	}

	pts := make(plotter.XYs, 0, 2*bandSamples+4)
	pts = append(pts, plotter.XY{X: xMin, Y: b.Lower}, plotter.XY{X: xMax, Y: b.Lower})
	step := (xMax - xMin) / float64(bandSamples)
	for i := bandSamples; i >= 0; i-- {
		x := xMin + float64(i)*step
		pts = append(pts, plotter.XY{X: x, Y: quantile.Ramp(b, x)})
	}

	poly, err := plotter.NewPolygon(pts)
	if err != nil {
		return nil, err
	}
	poly.Color = color.RGBA{G: 180, B: 120, A: 50}
	poly.LineStyle.Width = 0
	return poly, nil
}

// bandMarkers returns horizontal lines at the center and both band bounds.
func bandMarkers(b ports.Band, pairs []ports.QQPair) []*plotter.Line {
	if len(pairs) == 0 {
		return nil
	}
	xMin, xMax := pairs[0].Theoretical, pairs[0].Theoretical
	for _, pair := range pairs[1:] {
		if pair.Theoretical < xMin {
			xMin = pair.Theoretical
		}
		if pair.Theoretical > xMax {
			xMax = pair.Theoretical
		}
	}

	markers := make([]*plotter.Line, 0, 3)
	for _, level := range []float64{b.Center, b.Lower, b.Upper} {
		line, err := plotter.NewLine(plotter.XYs{{X: xMin, Y: level}, {X: xMax, Y: level}})
		if err != nil {
			continue
		}
		line.LineStyle.Width = vg.Points(0.5)
		line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		line.Color = color.RGBA{G: 140, B: 90, A: 200}
		markers = append(markers, line)
	}
	return markers
}
