package excel

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"qqfit/domain/core"
	"qqfit/domain/dist"
	"qqfit/domain/sample"
	"qqfit/ports"
)

func testRunReport() ports.RunReport {
	created := core.NewTimestamp(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return ports.RunReport{
		RunID:     core.RunID("run-xlsx-1"),
		CreatedAt: created,
		Column:    "level",
		Years:     []int{2003},
		Results: []ports.FitResult{
			{
				Family: dist.FamilyGamma,
				Year:   2003,
				Params: []float64{2.5, 1.25},
				Source: ports.FitSourceCache,
				Summary: sample.Summary{
					N: 80, Mean: 2.0, StdDev: 1.26, Min: 0.1, Max: 7.9, Median: 1.7,
				},
				SampleHash:  core.ComputeSampleHash([]float64{1, 2}),
				QQChartPath: "plots/QQ_gamma_2003.png",
			},
		},
	}
}

func TestWriteRunReportWorkbook(t *testing.T) {
	dir := t.TempDir()
	w, err := NewReportWriter(dir)
	if err != nil {
		t.Fatalf("NewReportWriter failed: %v", err)
	}

	path, err := w.WriteRunReport(context.Background(), testRunReport())
	if err != nil {
		t.Fatalf("WriteRunReport failed: %v", err)
	}

	want := filepath.Join(dir, "report_run-xlsx-1.xlsx")
	if path != want {
		t.Errorf("Expected path %s, got %s", want, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("Failed to read Summary sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header plus one result row, got %d rows", len(rows))
	}
	if rows[0][0] != "family" || rows[0][2] != "fit_source" {
		t.Errorf("Unexpected Summary headers: %v", rows[0])
	}
	if rows[1][0] != "gamma" || rows[1][1] != "2003" || rows[1][2] != "cache" {
		t.Errorf("Unexpected Summary row: %v", rows[1])
	}

	paramRows, err := f.GetRows("Parameters")
	if err != nil {
		t.Fatalf("Failed to read Parameters sheet: %v", err)
	}
	if len(paramRows) != 3 {
		t.Fatalf("Expected header plus two parameter rows, got %d", len(paramRows))
	}
	if paramRows[1][2] != "alpha" || paramRows[2][2] != "beta" {
		t.Errorf("Unexpected parameter names: %v", paramRows)
	}
}

func TestWriteRunReportAllYearsLabel(t *testing.T) {
	dir := t.TempDir()
	w, err := NewReportWriter(dir)
	if err != nil {
		t.Fatalf("NewReportWriter failed: %v", err)
	}

	report := testRunReport()
	report.Results[0].Year = 0
	path, err := w.WriteRunReport(context.Background(), report)
	if err != nil {
		t.Fatalf("WriteRunReport failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("Failed to read Summary sheet: %v", err)
	}
	if rows[1][1] != "all" {
		t.Errorf("Expected all-years label, got %q", rows[1][1])
	}
}

func TestWriteRunReportDemoHasNoParameterRows(t *testing.T) {
	dir := t.TempDir()
	w, err := NewReportWriter(dir)
	if err != nil {
		t.Fatalf("NewReportWriter failed: %v", err)
	}

	report := testRunReport()
	report.Results[0].Family = dist.FamilyDemo
	report.Results[0].Params = nil
	report.Results[0].Source = ports.FitSourceFixed

	path, err := w.WriteRunReport(context.Background(), report)
	if err != nil {
		t.Fatalf("WriteRunReport failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	paramRows, err := f.GetRows("Parameters")
	if err != nil {
		t.Fatalf("Failed to read Parameters sheet: %v", err)
	}
	if len(paramRows) != 1 {
		t.Errorf("Expected only the header row for demo, got %d rows", len(paramRows))
	}
}
