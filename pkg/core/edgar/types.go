// Package edgar locates, downloads and normalizes SEC EDGAR filings.
// API documentation: https://www.sec.gov/developer
package edgar

import (
	"fmt"
	"strings"
)

// FilingDescriptor identifies one SEC filing. Instances are produced by the
// locator strategies and are not modified afterwards; the accession number is
// the uniqueness key. Fields the underlying discovery source does not provide
// stay empty rather than being omitted.
type FilingDescriptor struct {
	Ticker          string `json:"ticker"`
	CompanyName     string `json:"company_name"`
	CIK             string `json:"cik"` // zero-padded to 10 digits
	Form            string `json:"form"`
	FilingDate      string `json:"filing_date"` // YYYY-MM-DD
	AccessionNumber string `json:"accession_number"`
	PrimaryDocument string `json:"primary_document"`
	FilingURL       string `json:"filing_url"`
}

// BondFormTypes is the allow-list of form types that plausibly describe bond
// issuances: prospectus supplements, shelf registrations, free-writing
// prospectuses and current/periodic reports.
var BondFormTypes = []string{
	"424B1", "424B2", "424B3", "424B4", "424B5", "424B7", "424B8",
	"FWP", "S-3", "S-3/A", "S-3ASR", "8-K", "10-K", "10-Q",
}

// PadCIK zero-pads a numeric CIK string to the 10 digits SEC endpoints expect.
func PadCIK(cik string) string {
	return fmt.Sprintf("%010s", strings.TrimLeft(cik, "0"))
}

// FilingURL constructs the canonical Archives download URL for a filing.
// Format: https://www.sec.gov/Archives/edgar/data/{cik}/{accession-no-dashes}/{document}
func FilingURL(cik, accessionNumber, primaryDocument string) string {
	if cik == "" || accessionNumber == "" || primaryDocument == "" {
		return ""
	}
	return fmt.Sprintf("https://www.sec.gov/Archives/edgar/data/%s/%s/%s",
		strings.TrimLeft(cik, "0"),
		strings.ReplaceAll(accessionNumber, "-", ""),
		primaryDocument)
}
