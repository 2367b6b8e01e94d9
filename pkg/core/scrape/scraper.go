package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/hrseymour/bond-extractor/pkg/core/edgar"
	"github.com/hrseymour/bond-extractor/pkg/core/extract"
)

// Strategy selects how filings are discovered.
type Strategy string

const (
	// StrategyIndex walks each company's recent-filings submission index.
	StrategyIndex Strategy = "index"
	// StrategySearch pages through EDGAR full-text search.
	StrategySearch Strategy = "search"
)

const (
	defaultMaxFilings = 10
	defaultFetchDelay = 500 * time.Millisecond
)

// Scraper wires locator, fetcher and extractor into the per-company pipeline.
// Processing is strictly sequential: one filing is fetched, normalized and
// extracted before the next begins, with a fixed pause between fetches.
type Scraper struct {
	client    *edgar.Client
	fetcher   *edgar.Fetcher
	extractor *extract.BondExtractor

	strategy   Strategy
	search     edgar.SearchOptions
	maxFilings int
	delay      time.Duration
}

// NewScraper creates a scraper with index-based discovery, a ten-filing cap
// per company and a 500ms inter-fetch delay.
func NewScraper(client *edgar.Client, fetcher *edgar.Fetcher, extractor *extract.BondExtractor) *Scraper {
	return &Scraper{
		client:     client,
		fetcher:    fetcher,
		extractor:  extractor,
		strategy:   StrategyIndex,
		maxFilings: defaultMaxFilings,
		delay:      defaultFetchDelay,
	}
}

// SetStrategy switches the discovery strategy.
func (s *Scraper) SetStrategy(strategy Strategy) {
	s.strategy = strategy
}

// SetSearchOptions sets the query, form filter and date range for discovery.
func (s *Scraper) SetSearchOptions(opts edgar.SearchOptions) {
	s.search = opts
}

// SetMaxFilings caps how many filings per company are processed. Values below
// one keep the current cap.
func (s *Scraper) SetMaxFilings(n int) {
	if n > 0 {
		s.maxFilings = n
	}
}

// SetDelay adjusts the pause between successive filing fetches.
func (s *Scraper) SetDelay(d time.Duration) {
	s.delay = d
}

// Locate runs the configured discovery strategy for a set of identifiers
// (tickers or CIKs) and returns date-descending, de-duplicated descriptors.
func (s *Scraper) Locate(ctx context.Context, identifiers []string) []edgar.FilingDescriptor {
	if s.strategy == StrategySearch {
		return s.client.SearchFilings(ctx, identifiers, s.search)
	}
	return s.client.RecentFilings(ctx, identifiers, s.search)
}

// Run executes the pipeline for every identifier and assembles one table.
func (s *Scraper) Run(ctx context.Context, identifiers []string) *ResultTable {
	table := NewResultTable()
	for _, ident := range identifiers {
		start := time.Now()
		fmt.Printf("Starting bond scan for %s...\n", ident)

		rows := s.RunForCompany(ctx, ident)
		table.Rows = append(table.Rows, rows...)

		fmt.Printf("Completed %s: %d bonds in %v\n", ident, len(rows), time.Since(start))
	}
	return table
}

// RunForCompany locates the company's filings and processes them. Discovery
// and per-filing failures degrade to fewer rows, never an error.
func (s *Scraper) RunForCompany(ctx context.Context, identifier string) []Row {
	filings := s.Locate(ctx, []string{identifier})
	if len(filings) == 0 {
		fmt.Printf("Warning: no filings found for %s. Skipping.\n", identifier)
		return nil
	}
	return s.RunForFilings(ctx, filings)
}

// RunForFilings processes an explicit filing list, capped at the configured
// maximum, pausing between fetches.
func (s *Scraper) RunForFilings(ctx context.Context, filings []edgar.FilingDescriptor) []Row {
	if len(filings) > s.maxFilings {
		fmt.Printf("Capping at %d of %d filings\n", s.maxFilings, len(filings))
		filings = filings[:s.maxFilings]
	}

	var rows []Row
	for i, filing := range filings {
		if i > 0 && s.delay > 0 {
			time.Sleep(s.delay)
		}
		fmt.Printf("Processing %s %s filed %s (%s)...\n",
			filing.Ticker, filing.Form, filing.FilingDate, filing.AccessionNumber)

		text := s.fetcher.FetchText(ctx, filing)
		if text == "" {
			fmt.Printf("Warning: no text for %s. Skipping.\n", filing.AccessionNumber)
			continue
		}

		records, err := s.extractor.ExtractBonds(ctx, text, filing.Form)
		if err != nil {
			fmt.Printf("Warning: extraction failed for %s: %v. Skipping.\n", filing.AccessionNumber, err)
			continue
		}
		fmt.Printf("  Extracted %d bonds\n", len(records))

		for _, record := range records {
			rows = append(rows, Row{
				Ticker:          filing.Ticker,
				CompanyName:     filing.CompanyName,
				CIK:             filing.CIK,
				Form:            filing.Form,
				FilingDate:      filing.FilingDate,
				AccessionNumber: filing.AccessionNumber,
				FilingURL:       filing.FilingURL,
				Record:          record,
			})
		}
	}
	return rows
}
