package edgar

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"context"
)

const (
	defaultSubmissionsURL = "https://data.sec.gov/submissions/CIK%s.json"
	defaultTickerMapURL   = "https://www.sec.gov/files/company_tickers.json"
	defaultSearchURL      = "https://efts.sec.gov/LATEST/search-index"
)

// Client talks to the SEC EDGAR discovery endpoints. The SEC asks for a
// descriptive User-Agent with contact info on every request.
type Client struct {
	httpClient *http.Client
	userAgent  string

	// Endpoint overrides, primarily for tests.
	SubmissionsURL string
	TickerMapURL   string
	SearchURL      string
}

// NewClient creates an EDGAR client. name and email form the identifying
// contact string the SEC requires.
func NewClient(name, email string) *Client {
	return &Client{
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		userAgent:      fmt.Sprintf("BondExtractor/1.0 %s (%s)", name, email),
		SubmissionsURL: defaultSubmissionsURL,
		TickerMapURL:   defaultTickerMapURL,
		SearchURL:      defaultSearchURL,
	}
}

// SearchOptions narrows a locator query. Zero values mean "no constraint"
// except dates, which default to the last five years ending today.
type SearchOptions struct {
	Query      string   // full-text query, Strategy B only
	Forms      []string // form-type filter; nil means BondFormTypes
	FromDate   string   // YYYY-MM-DD
	ToDate     string   // YYYY-MM-DD
	MaxResults int      // Strategy B pagination cap; 0 means 5000
}

func (o SearchOptions) dateRange() (string, string) {
	to := o.ToDate
	if to == "" {
		to = time.Now().Format("2006-01-02")
	}
	from := o.FromDate
	if from == "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			t = time.Now()
		}
		from = t.AddDate(-5, 0, 0).Format("2006-01-02")
	}
	return from, to
}

func (o SearchOptions) forms() []string {
	if len(o.Forms) == 0 {
		return BondFormTypes
	}
	out := make([]string, len(o.Forms))
	for i, f := range o.Forms {
		out[i] = strings.ToUpper(strings.TrimSpace(f))
	}
	return out
}

// getJSON performs a GET with the identifying User-Agent and decodes the JSON
// response into v.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("SEC API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("SEC API returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse SEC response: %w", err)
	}
	return nil
}

// tickerEntry is one row of the public ticker -> CIK mapping file.
// Response structure: { "0": {"cik_str": 320193, "ticker": "AAPL", "title": "..."}, ... }
type tickerEntry struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// LookupCIKByTicker resolves a ticker symbol to its zero-padded CIK via the
// SEC company tickers file.
func (c *Client) LookupCIKByTicker(ctx context.Context, ticker string) (string, error) {
	var mapping map[string]tickerEntry
	if err := c.getJSON(ctx, c.TickerMapURL, &mapping); err != nil {
		return "", fmt.Errorf("fetch ticker mapping: %w", err)
	}

	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	for _, entry := range mapping {
		if strings.EqualFold(entry.Ticker, ticker) {
			return fmt.Sprintf("%010d", entry.CIK), nil
		}
	}
	return "", fmt.Errorf("ticker %s not found in SEC database", ticker)
}

// ResolveCIK accepts either a ticker or a numeric CIK and returns the
// zero-padded CIK, or "" when resolution fails.
func (c *Client) ResolveCIK(ctx context.Context, ident string) string {
	s := strings.TrimSpace(ident)
	if s == "" {
		return ""
	}
	if isNumeric(s) {
		return PadCIK(s)
	}
	cik, err := c.LookupCIKByTicker(ctx, s)
	if err != nil {
		return ""
	}
	return cik
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// submissionsResponse mirrors the per-company submissions index. Filing
// attributes arrive as parallel arrays.
type submissionsResponse struct {
	CIK     string   `json:"cik"`
	Name    string   `json:"name"`
	Tickers []string `json:"tickers"`
	Filings struct {
		Recent struct {
			AccessionNumber []string `json:"accessionNumber"`
			FilingDate      []string `json:"filingDate"`
			Form            []string `json:"form"`
			PrimaryDocument []string `json:"primaryDocument"`
		} `json:"recent"`
	} `json:"filings"`
}

// RecentFilings is locator Strategy A: resolve each identifier to a CIK, pull
// that company's recent-filings index, filter by date range and the bond form
// allow-list, and sort descending by filing date. It fails soft: any network
// or parse error contributes an empty result, never an error.
func (c *Client) RecentFilings(ctx context.Context, identifiers []string, opts SearchOptions) []FilingDescriptor {
	from, to := opts.dateRange()
	formSet := make(map[string]bool)
	for _, f := range opts.forms() {
		formSet[f] = true
	}

	var out []FilingDescriptor
	for _, ident := range identifiers {
		cik := c.ResolveCIK(ctx, ident)
		if cik == "" {
			continue
		}

		var sub submissionsResponse
		if err := c.getJSON(ctx, fmt.Sprintf(c.SubmissionsURL, cik), &sub); err != nil {
			fmt.Printf("Warning: submissions lookup failed for %s: %v. Skipping.\n", ident, err)
			continue
		}

		ticker := strings.ToUpper(strings.TrimSpace(ident))
		if isNumeric(ticker) && len(sub.Tickers) > 0 {
			ticker = sub.Tickers[0]
		}

		// The index arrives as parallel arrays. A truncated response can leave
		// them uneven; treat that as a parse error and skip the company.
		recent := sub.Filings.Recent
		if len(recent.Form) != len(recent.AccessionNumber) || len(recent.FilingDate) != len(recent.AccessionNumber) {
			fmt.Printf("Warning: malformed submissions index for %s. Skipping.\n", ident)
			continue
		}
		for i := range recent.AccessionNumber {
			if !formSet[recent.Form[i]] {
				continue
			}
			date := recent.FilingDate[i]
			if date < from || date > to {
				continue
			}
			primary := ""
			if i < len(recent.PrimaryDocument) {
				primary = recent.PrimaryDocument[i]
			}
			out = append(out, FilingDescriptor{
				Ticker:          ticker,
				CompanyName:     sub.Name,
				CIK:             cik,
				Form:            recent.Form[i],
				FilingDate:      date,
				AccessionNumber: recent.AccessionNumber[i],
				PrimaryDocument: primary,
				FilingURL:       FilingURL(cik, recent.AccessionNumber[i], primary),
			})
		}
	}

	sortByDateDesc(out)
	return out
}

func sortByDateDesc(filings []FilingDescriptor) {
	sort.SliceStable(filings, func(i, j int) bool {
		return filings[i].FilingDate > filings[j].FilingDate
	})
}
