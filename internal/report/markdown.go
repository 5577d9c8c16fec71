package report

import (
	"fmt"
	"strconv"
	"strings"

	"qqfit/ports"
)

// Markdown renders a run report as a self-contained markdown document: run
// metadata, then one section per fit result with parameters, descriptive
// statistics and chart file references.
func Markdown(report ports.RunReport) string {
	var b strings.Builder

	b.WriteString("# Q-Q Fit Report\n\n")
	fmt.Fprintf(&b, "- **Run**: %s\n", report.RunID)
	fmt.Fprintf(&b, "- **Created**: %s\n", report.CreatedAt)
	fmt.Fprintf(&b, "- **Column**: %s\n", report.Column)
	fmt.Fprintf(&b, "- **Years**: %s\n\n", yearsLabel(report.Years))

	for _, result := range report.Results {
		writeResult(&b, result)
	}

	return b.String()
}

func writeResult(b *strings.Builder, result ports.FitResult) {
	fmt.Fprintf(b, "## %s (%s)\n\n", result.Family, resultYearLabel(result.Year))
	fmt.Fprintf(b, "- **Fit source**: %s\n", result.Source)
	if result.SampleHash != "" {
		fmt.Fprintf(b, "- **Sample hash**: `%s`\n", result.SampleHash)
	}
	b.WriteString("\n")

	names := result.Family.ParamNames()
	if len(names) > 0 && len(names) == len(result.Params) {
		b.WriteString("| Parameter | Value |\n|---|---|\n")
		for i, name := range names {
			fmt.Fprintf(b, "| %s | %s |\n", name, formatValue(result.Params[i]))
		}
		b.WriteString("\n")
	}

	s := result.Summary
	b.WriteString("| Statistic | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| N | %d |\n", s.N)
	fmt.Fprintf(b, "| Mean | %s |\n", formatValue(s.Mean))
	fmt.Fprintf(b, "| Std Dev | %s |\n", formatValue(s.StdDev))
	fmt.Fprintf(b, "| Median | %s |\n", formatValue(s.Median))
	fmt.Fprintf(b, "| Min | %s |\n", formatValue(s.Min))
	fmt.Fprintf(b, "| Max | %s |\n", formatValue(s.Max))
	b.WriteString("\n")

	if result.QQChartPath != "" {
		fmt.Fprintf(b, "- Q-Q chart: `%s`\n", result.QQChartPath)
	}
	if result.DistChartPath != "" {
		fmt.Fprintf(b, "- Distribution chart: `%s`\n", result.DistChartPath)
	}
	if result.QQChartPath != "" || result.DistChartPath != "" {
		b.WriteString("\n")
	}
}

func yearsLabel(years []int) string {
	if len(years) == 0 {
		return "all"
	}
	parts := make([]string, len(years))
	for i, year := range years {
		parts[i] = strconv.Itoa(year)
	}
	return strings.Join(parts, ", ")
}

func resultYearLabel(year int) string {
	if year == 0 {
		return "all"
	}
	return strconv.Itoa(year)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
