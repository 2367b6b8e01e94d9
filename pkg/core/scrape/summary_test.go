package scrape

import (
	"testing"

	"github.com/hrseymour/bond-extractor/pkg/core/bond"
)

func ptr[T any](v T) *T { return &v }

func sampleRows() []Row {
	fixed := bond.CouponFixed
	floating := bond.CouponFloating
	senior := bond.SeniorUnsecured
	junior := bond.JuniorSubordinated
	sofr := bond.BenchTermSofr

	return []Row{
		{
			Ticker: "AES", CIK: "0000874761",
			Record: bond.Record{
				SecurityType:    &senior,
				PrincipalAmount: ptr(500000000.0),
				InterestRate:    ptr(0.0695),
				CouponType:      &fixed,
			},
		},
		{
			Ticker: "AES", CIK: "0000874761",
			Record: bond.Record{
				SecurityType:    &junior,
				PrincipalAmount: ptr(200000000.0),
				InterestRate:    ptr(0.0805),
				CouponType:      &floating,
				RateBenchmark:   &sofr,
				RateSpread:      ptr(0.0215),
			},
		},
		{
			Ticker: "DUK", CIK: "0001326160",
			Record: bond.Record{
				PrincipalAmount: ptr(300000000.0),
				Convertible:     ptr(true),
			},
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRows())

	if s.TotalBonds != 3 {
		t.Errorf("TotalBonds = %d, want 3", s.TotalBonds)
	}
	if s.TotalPrincipal != 1000000000 {
		t.Errorf("TotalPrincipal = %v, want 1000000000", s.TotalPrincipal)
	}
	if s.UniqueCompanies != 2 {
		t.Errorf("UniqueCompanies = %d, want 2", s.UniqueCompanies)
	}
	if s.AvgInterestRate == nil || *s.AvgInterestRate < 0.0749 || *s.AvgInterestRate > 0.0751 {
		t.Errorf("AvgInterestRate = %v, want 0.075", s.AvgInterestRate)
	}
	if s.BySecurityRank["SeniorUnsecured"] != 1 || s.BySecurityRank["JuniorSubordinated"] != 1 {
		t.Errorf("BySecurityRank = %v", s.BySecurityRank)
	}
	if s.ByCouponType["Fixed"] != 1 || s.ByCouponType["Floating"] != 1 {
		t.Errorf("ByCouponType = %v", s.ByCouponType)
	}

	if s.Floating.Count != 1 {
		t.Errorf("Floating.Count = %d, want 1", s.Floating.Count)
	}
	if s.Floating.ByBenchmark["TermSofr"] != 1 {
		t.Errorf("Floating.ByBenchmark = %v", s.Floating.ByBenchmark)
	}
	if s.Floating.AvgSpread == nil || *s.Floating.AvgSpread != 0.0215 {
		t.Errorf("Floating.AvgSpread = %v, want 0.0215", s.Floating.AvgSpread)
	}

	if s.Convertible.Count != 1 || s.Convertible.TotalPrincipal != 300000000 {
		t.Errorf("Convertible = %+v", s.Convertible)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalBonds != 0 || s.UniqueCompanies != 0 {
		t.Errorf("empty summary = %+v", s)
	}
	if s.AvgInterestRate != nil {
		t.Errorf("AvgInterestRate should be nil with no rates, got %v", *s.AvgInterestRate)
	}
}

func TestCSVRecordMatchesHeader(t *testing.T) {
	header := CSVHeader()
	for _, row := range sampleRows() {
		record := row.CSVRecord()
		if len(record) != len(header) {
			t.Fatalf("record has %d cells, header has %d columns", len(record), len(header))
		}
	}

	// Spot-check projection of one row.
	row := sampleRows()[0]
	record := row.CSVRecord()
	cols := make(map[string]string, len(header))
	for i, name := range header {
		cols[name] = record[i]
	}
	if cols["ticker"] != "AES" || cols["security_type"] != "SeniorUnsecured" {
		t.Errorf("projection wrong: %v", cols)
	}
	if cols["interest_rate"] != "0.0695" {
		t.Errorf("interest_rate cell = %q", cols["interest_rate"])
	}
	if cols["callable"] != "" {
		t.Errorf("absent field should be empty, got %q", cols["callable"])
	}
}

func TestNewResultTableHasRunID(t *testing.T) {
	a := NewResultTable()
	b := NewResultTable()
	if a.RunID == "" || a.RunID == b.RunID {
		t.Errorf("run IDs should be unique and non-empty: %q vs %q", a.RunID, b.RunID)
	}
	if a.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}
