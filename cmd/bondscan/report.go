package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hrseymour/bond-extractor/pkg/core/scrape"
	"github.com/hrseymour/bond-extractor/pkg/core/utils"
)

// writeOutputs persists the run artifacts: bonds.csv, summary.json and
// report.html.
func writeOutputs(dir string, table *scrape.ResultTable, summary scrape.Summary) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := writeCSV(filepath.Join(dir, "bonds.csv"), table.Rows); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, "summary.json"), summary); err != nil {
		return err
	}
	return writeReport(filepath.Join(dir, "report.html"), table, summary)
}

func writeCSV(path string, rows []scrape.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(scrape.CSVHeader()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row.CSVRecord()); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

// writeReport renders the run summary as Markdown, then converts it to HTML.
func writeReport(path string, table *scrape.ResultTable, summary scrape.Summary) error {
	md := summaryMarkdown(table, summary)
	if !utils.ValidateMarkdown(md) {
		return fmt.Errorf("generated report is not valid markdown")
	}
	html, err := utils.RenderMarkdownHTML(md)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return os.WriteFile(path, []byte(html), 0644)
}

func summaryMarkdown(table *scrape.ResultTable, summary scrape.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Bond Scan Report\n\n")
	fmt.Fprintf(&b, "Run `%s` generated %s\n\n", table.RunID, table.GeneratedAt.Format("2006-01-02 15:04 MST"))

	fmt.Fprintf(&b, "## Totals\n\n")
	fmt.Fprintf(&b, "- Bonds: %d\n", summary.TotalBonds)
	fmt.Fprintf(&b, "- Issuers: %d\n", summary.UniqueCompanies)
	fmt.Fprintf(&b, "- Total principal: $%.0f\n", summary.TotalPrincipal)
	if summary.AvgInterestRate != nil {
		fmt.Fprintf(&b, "- Average coupon: %.3f%%\n", *summary.AvgInterestRate*100)
	}
	b.WriteString("\n")

	writeFreqTable(&b, "By Security Rank", summary.BySecurityRank)
	writeFreqTable(&b, "By Coupon Type", summary.ByCouponType)

	if summary.Floating.Count > 0 {
		fmt.Fprintf(&b, "## Floating Rate\n\n")
		fmt.Fprintf(&b, "- Count: %d\n", summary.Floating.Count)
		if summary.Floating.AvgSpread != nil {
			fmt.Fprintf(&b, "- Average spread: %.3f%%\n", *summary.Floating.AvgSpread*100)
		}
		b.WriteString("\n")
		writeFreqTable(&b, "By Benchmark", summary.Floating.ByBenchmark)
	}

	if summary.Convertible.Count > 0 {
		fmt.Fprintf(&b, "## Convertible\n\n")
		fmt.Fprintf(&b, "- Count: %d\n", summary.Convertible.Count)
		fmt.Fprintf(&b, "- Total principal: $%.0f\n\n", summary.Convertible.TotalPrincipal)
	}

	return b.String()
}

func writeFreqTable(b *strings.Builder, title string, freq map[string]int) {
	if len(freq) == 0 {
		return
	}
	keys := make([]string, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "| Variant | Count |\n|---|---|\n")
	for _, k := range keys {
		fmt.Fprintf(b, "| %s | %d |\n", k, freq[k])
	}
	b.WriteString("\n")
}
