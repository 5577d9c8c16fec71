package flatfile

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"qqfit/domain/core"
	"qqfit/domain/sample"
	"qqfit/ports"
)

// DataExt is the recognized data-file extension. Observation files are named
// exactly YYYY.txt; anything else in the directory is skipped.
const DataExt = ".txt"

// Source reads whitespace-separated observation files named by year out of a
// single data directory. The column catalog is loaded once at construction
// and immutable afterward.
type Source struct {
	dir       string
	columns   []string
	sentinels map[float64]bool
}

var _ ports.SampleSource = (*Source)(nil)

// NewSource validates the data directory, loads its column catalog, and
// returns a source that treats the given sentinel values as missing data.
func NewSource(dir string, missing []float64) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", core.ErrDirectoryMissing, dir)
		}
		return nil, core.InputErrorf("reading data directory %s: %v", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", core.ErrDirectoryMissing, dir)
	}

	columns, err := ColumnNames(dir)
	if err != nil {
		return nil, err
	}

	sentinels := make(map[float64]bool, len(missing))
	for _, v := range missing {
		sentinels[v] = true
	}

	return &Source{dir: dir, columns: columns, sentinels: sentinels}, nil
}

// Columns returns the catalog column order.
func (s *Source) Columns(ctx context.Context) ([]string, error) {
	return append([]string(nil), s.columns...), nil
}

// Years returns the years the directory has observation files for, ascending.
func (s *Source) Years(ctx context.Context) ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, core.InputErrorf("listing data directory %s: %v", s.dir, err)
	}

	var years []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if year, ok := yearOf(entry.Name()); ok {
			years = append(years, year)
		}
	}
	sort.Ints(years)
	return years, nil
}

// Load concatenates the named column across the given years. A nil or empty
// year list means every year in the directory. Sentinel and non-finite
// values are dropped row-wise as each file is parsed, so surviving values
// keep their file order.
func (s *Source) Load(ctx context.Context, column string, years []int) (sample.Sample, error) {
	idx := s.columnIndex(column)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", core.ErrColumnMissing, column)
	}

	var selected map[int]bool
	if len(years) > 0 {
		selected = make(map[int]bool, len(years))
		for _, y := range years {
			selected[y] = true
		}
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, core.InputErrorf("listing data directory %s: %v", s.dir, err)
	}

	var out sample.Sample
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		year, ok := yearOf(entry.Name())
		if !ok {
			continue
		}
		if selected != nil && !selected[year] {
			continue
		}

		values, dropped, err := s.readColumn(filepath.Join(s.dir, entry.Name()), idx)
		if err != nil {
			return nil, err
		}
		log.Printf("[FlatFile] %s: column %q kept %d values, dropped %d missing", entry.Name(), column, len(values), dropped)
		out = append(out, values...)
	}

	if out.IsEmpty() {
		return nil, core.NewEmptySampleError(fmt.Sprintf("no data for column %q after year filtering", column))
	}
	return out, nil
}

// readColumn extracts one column from a single whitespace-separated file,
// dropping rows whose target value is a sentinel or non-finite.
func (s *Source) readColumn(path string, idx int) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, core.InputErrorf("opening data file %s: %v", path, err)
	}
	defer f.Close()

	var (
		values  []float64
		dropped int
		lineNo  int
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if idx >= len(fields) {
			return nil, 0, core.InputErrorf("file %s row %d has %d columns, catalog names column %d", path, lineNo, len(fields), idx+1)
		}

		v, err := strconv.ParseFloat(fields[idx], 64)
		if err != nil {
			return nil, 0, core.InputErrorf("file %s row %d: %q is not numeric", path, lineNo, fields[idx])
		}
		if s.sentinels[v] || math.IsNaN(v) || math.IsInf(v, 0) {
			dropped++
			continue
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, core.InputErrorf("reading data file %s: %v", path, err)
	}

	return values, dropped, nil
}

func (s *Source) columnIndex(column string) int {
	for i, name := range s.columns {
		if name == column {
			return i
		}
	}
	return -1
}

// yearOf reports whether name is exactly a 4-digit year plus the data
// extension and returns the year.
func yearOf(name string) (int, bool) {
	stem, found := strings.CutSuffix(name, DataExt)
	if !found || len(stem) != 4 {
		return 0, false
	}
	for _, r := range stem {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	year, err := strconv.Atoi(stem)
	if err != nil {
		return 0, false
	}
	return year, true
}
