package testkit

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"qqfit/adapters/flatfile"
)

// TestKit provides fixtures for exercising the pipeline without touching
// real storage: an in-memory parameter cache and a deterministic
// observation-file generator.
type TestKit struct {
	cache *MemParamCache
}

// NewTestKit creates a new test kit instance.
func NewTestKit() *TestKit {
	return &TestKit{cache: NewMemParamCache()}
}

// ParamCache returns the kit's in-memory parameter cache.
func (t *TestKit) ParamCache() *MemParamCache {
	return t.cache
}

// ObservationConfig configures the synthetic observation generator.
type ObservationConfig struct {
	Columns     []string `json:"columns"`
	Years       []int    `json:"years"`
	RowsPerYear int      `json:"rows_per_year"`
	MissingRate float64  `json:"missing_rate"`
	Sentinel    float64  `json:"sentinel"`
	Seed        uint64   `json:"seed"`
}

// DefaultObservationConfig returns sensible defaults for observation
// generation: two columns, two years, a light sprinkle of sentinels.
func DefaultObservationConfig() ObservationConfig {
	return ObservationConfig{
		Columns:     []string{"station", "level"},
		Years:       []int{2003, 2005},
		RowsPerYear: 200,
		MissingRate: 0.05,
		Sentinel:    -999,
		Seed:        42,
	}
}

// ObservationGenerator produces deterministic positive-valued observation
// rows in the per-year flat-file layout.
type ObservationGenerator struct {
	config ObservationConfig
	rng    *rand.Rand
}

// NewObservationGenerator creates a generator seeded from the config.
func NewObservationGenerator(config ObservationConfig) *ObservationGenerator {
	return &ObservationGenerator{
		config: config,
		rng:    rand.New(rand.NewPCG(config.Seed, config.Seed+1)),
	}
}

// Rows generates one year's worth of rows. Values are lognormal, so every
// fitted family has positive support to work with; sentinels replace values
// at the configured rate.
func (g *ObservationGenerator) Rows() [][]float64 {
	rows := make([][]float64, g.config.RowsPerYear)
	for i := range rows {
		row := make([]float64, len(g.config.Columns))
		for j := range row {
			if g.rng.Float64() < g.config.MissingRate {
				row[j] = g.config.Sentinel
				continue
			}
			row[j] = math.Exp(g.rng.NormFloat64() * 0.5)
		}
		rows[i] = row
	}
	return rows
}

// WriteDataDir materializes a full data directory under dir: the column
// catalog plus one whitespace-separated file per configured year.
func (g *ObservationGenerator) WriteDataDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", dir, err)
	}
	if err := WriteCatalog(dir, g.config.Columns); err != nil {
		return fmt.Errorf("writing column catalog: %w", err)
	}

	for _, year := range g.config.Years {
		if err := writeYearFile(dir, year, g.Rows()); err != nil {
			return err
		}
	}
	return nil
}

// WriteYearFile writes rows as one whitespace-separated year file under dir.
func WriteYearFile(dir string, year int, rows [][]float64) error {
	return writeYearFile(dir, year, rows)
}

func writeYearFile(dir string, year int, rows [][]float64) error {
	var b strings.Builder
	for _, row := range rows {
		for j, v := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}

	name := fmt.Sprintf("%04d%s", year, flatfile.DataExt)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// WriteCatalog writes a column catalog naming the given columns under dir.
func WriteCatalog(dir string, columns []string) error {
	var b strings.Builder
	b.WriteString("column_names:\n")
	for _, name := range columns {
		b.WriteString("  - " + name + "\n")
	}
	return os.WriteFile(filepath.Join(dir, flatfile.CatalogFile), []byte(b.String()), 0644)
}
