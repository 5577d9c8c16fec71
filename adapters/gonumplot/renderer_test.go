package gonumplot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"qqfit/domain/dist"
	"qqfit/ports"
)

func testQQChart() ports.QQChart {
	return ports.QQChart{
		Family: dist.FamilyNormal,
		Year:   2003,
		Pairs: []ports.QQPair{
			{Theoretical: -1.2, Empirical: -1.0},
			{Theoretical: 0.0, Empirical: 0.1},
			{Theoretical: 1.2, Empirical: 1.3},
		},
		Simulated: []ports.QQPair{
			{Theoretical: -1.2, Empirical: -1.1},
			{Theoretical: 0.0, Empirical: -0.05},
			{Theoretical: 1.2, Empirical: 1.15},
		},
		Ref:  &ports.RefLine{Min: -1.2, Max: 1.3},
		Band: &ports.Band{Center: 0.1, Lower: -0.9, Upper: 1.1},
	}
}

func TestRenderQQWritesFile(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRenderer(dir, "png", nil, nil)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	path, err := r.RenderQQ(context.Background(), testQQChart())
	if err != nil {
		t.Fatalf("RenderQQ failed: %v", err)
	}

	want := filepath.Join(dir, "QQ_normal_2003.png")
	if path != want {
		t.Errorf("Expected path %s, got %s", want, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected chart file on disk: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected non-empty chart file")
	}
}

func TestRenderQQAllYearsLabel(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRenderer(dir, "svg", nil, nil)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	chart := testQQChart()
	chart.Year = 0
	path, err := r.RenderQQ(context.Background(), chart)
	if err != nil {
		t.Fatalf("RenderQQ failed: %v", err)
	}

	want := filepath.Join(dir, "QQ_normal_all.svg")
	if path != want {
		t.Errorf("Expected path %s, got %s", want, path)
	}
}

func TestRenderQQWithoutOptionalGeometry(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRenderer(dir, "png", nil, nil)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	chart := testQQChart()
	chart.Ref = nil
	chart.Band = nil
	chart.Simulated = nil
	if _, err := r.RenderQQ(context.Background(), chart); err != nil {
		t.Fatalf("RenderQQ without overlays failed: %v", err)
	}
}

func TestRenderQQAxisOverride(t *testing.T) {
	dir := t.TempDir()
	lo, hi := -5.0, 5.0
	r, err := NewRenderer(dir, "png", &lo, &hi)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	if _, err := r.RenderQQ(context.Background(), testQQChart()); err != nil {
		t.Fatalf("RenderQQ with axis limits failed: %v", err)
	}
}

func TestRenderDistributionWritesFile(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRenderer(dir, "png", nil, nil)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	chart := ports.DistChart{
		Family: dist.FamilyGamma,
		Year:   2005,
		Values: []float64{0.4, 0.9, 1.1, 1.4, 1.9, 2.3, 2.8, 3.5},
		Density: []ports.CurvePoint{
			{X: 0.0, Y: 0.0},
			{X: 1.0, Y: 0.35},
			{X: 2.0, Y: 0.2},
			{X: 3.5, Y: 0.05},
		},
	}
	path, err := r.RenderDistribution(context.Background(), chart)
	if err != nil {
		t.Fatalf("RenderDistribution failed: %v", err)
	}

	want := filepath.Join(dir, "DIST_gamma_2005.png")
	if path != want {
		t.Errorf("Expected path %s, got %s", want, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected chart file on disk: %v", err)
	}
}

func TestNewRendererCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "plots")
	if _, err := NewRenderer(dir, "png", nil, nil); err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Expected output directory to exist: %v", err)
	}
}
