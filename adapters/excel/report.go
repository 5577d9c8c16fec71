package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"qqfit/domain/core"
	"qqfit/ports"
)

// ReportWriter writes run reports as xlsx workbooks with a Summary sheet
// (one row per fit result) and a Parameters sheet (long form, one row per
// parameter).
type ReportWriter struct {
	dir string
}

// NewReportWriter creates the report directory if needed
func NewReportWriter(dir string) (*ReportWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, core.ConfigurationErrorf("failed to create report directory %s: %v", dir, err)
	}
	return &ReportWriter{dir: dir}, nil
}

var summaryHeaders = []string{
	"family", "year", "fit_source", "n", "mean", "std_dev", "median", "min", "max",
	"sample_hash", "qq_chart", "dist_chart",
}

var parameterHeaders = []string{"family", "year", "parameter", "value"}

// WriteRunReport writes report_<runID>.xlsx and returns its path
func (w *ReportWriter) WriteRunReport(ctx context.Context, report ports.RunReport) (string, error) {
	f := excelize.NewFile()

	summary := "Summary"
	idx, err := f.NewSheet(summary)
	if err != nil {
		return "", core.ConfigurationErrorf("failed to create sheet %s: %v", summary, err)
	}
	f.SetActiveSheet(idx)

	if err := writeRow(f, summary, 1, toCells(summaryHeaders)); err != nil {
		return "", err
	}
	for i, result := range report.Results {
		row := []interface{}{
			result.Family.String(),
			yearCell(result.Year),
			string(result.Source),
			result.Summary.N,
			result.Summary.Mean,
			result.Summary.StdDev,
			result.Summary.Median,
			result.Summary.Min,
			result.Summary.Max,
			result.SampleHash.String(),
			result.QQChartPath,
			result.DistChartPath,
		}
		if err := writeRow(f, summary, i+2, row); err != nil {
			return "", err
		}
	}

	params := "Parameters"
	if _, err := f.NewSheet(params); err != nil {
		return "", core.ConfigurationErrorf("failed to create sheet %s: %v", params, err)
	}
	if err := writeRow(f, params, 1, toCells(parameterHeaders)); err != nil {
		return "", err
	}
	rowIdx := 2
	for _, result := range report.Results {
		names := result.Family.ParamNames()
		if len(names) != len(result.Params) {
			continue
		}
		for i, name := range names {
			row := []interface{}{
				result.Family.String(),
				yearCell(result.Year),
				name,
				result.Params[i],
			}
			if err := writeRow(f, params, rowIdx, row); err != nil {
				return "", err
			}
			rowIdx++
		}
	}

	f.DeleteSheet("Sheet1")

	path := filepath.Join(w.dir, fmt.Sprintf("report_%s.xlsx", report.RunID))
	if err := f.SaveAs(path); err != nil {
		return "", core.ConfigurationErrorf("failed to save workbook %s: %v", path, err)
	}
	return path, nil
}

func writeRow(f *excelize.File, sheet string, rowIdx int, values []interface{}) error {
	for c, v := range values {
		cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return core.ConfigurationErrorf("failed to write cell %s!%s: %v", sheet, cell, err)
		}
	}
	return nil
}

func toCells(headers []string) []interface{} {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}

func yearCell(year int) string {
	if year == 0 {
		return "all"
	}
	return strconv.Itoa(year)
}
