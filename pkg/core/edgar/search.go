package edgar

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const searchBatchSize = 100

// displayNameRe matches EDGAR full-text-search display names, e.g.
// "AES CORP  (AES)  (CIK 0000874761)".
var displayNameRe = regexp.MustCompile(`^(.+?)\s+\(([^)]+)\)\s+\(CIK\s+(\d+)\)$`)

// searchResponse is the EFTS hits envelope.
type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []searchEnvelopeHit `json:"hits"`
	} `json:"hits"`
}

type searchEnvelopeHit struct {
	ID     string    `json:"_id"` // "accession:document.htm"
	Source searchHit `json:"_source"`
}

type searchHit struct {
	Accession    string   `json:"adsh"`
	Form         string   `json:"form"`
	FileDate     string   `json:"file_date"`
	DisplayNames []string `json:"display_names"`
	CIKs         []string `json:"ciks"`
}

// SearchFilings is locator Strategy B: query EDGAR full-text search with
// company identifiers, an optional free-text query, a form filter and a date
// range, paging through results in batches of 100 until the reported total,
// the MaxResults cap, or an empty batch. Results are de-duplicated by
// accession number (keep-first) and sorted descending by filing date.
// Fails soft: errors yield an empty slice.
func (c *Client) SearchFilings(ctx context.Context, identifiers []string, opts SearchOptions) []FilingDescriptor {
	from, to := opts.dateRange()

	var ciks []string
	seenCIK := make(map[string]bool)
	for _, ident := range identifiers {
		cik := c.ResolveCIK(ctx, ident)
		if cik != "" && !seenCIK[cik] {
			seenCIK[cik] = true
			ciks = append(ciks, cik)
		}
	}

	params := url.Values{}
	if opts.Query != "" {
		params.Set("q", opts.Query)
	}
	if len(ciks) > 0 {
		params.Set("ciks", strings.Join(ciks, ","))
	}
	if forms := opts.forms(); len(forms) > 0 {
		params.Set("forms", strings.Join(forms, ","))
	}
	params.Set("dateRange", "custom")
	params.Set("startdt", from)
	params.Set("enddt", to)

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 5000
	}

	var all []searchEnvelopeHit
	offset := 0
	total := -1
	for {
		// Size the final batch so the cap is never overshot.
		size := searchBatchSize
		if remaining := maxResults - offset; remaining < size {
			size = remaining
		}
		if size <= 0 {
			break
		}

		batch, err := c.fetchSearchBatch(ctx, params, offset, size)
		if err != nil {
			fmt.Printf("Warning: full-text search failed at offset %d: %v\n", offset, err)
			break
		}
		if total < 0 {
			total = batch.Hits.Total.Value
			fmt.Printf("Total filings available: %d\n", total)
		}
		hits := batch.Hits.Hits
		if len(hits) == 0 {
			break
		}
		if len(hits) > size {
			// The endpoint returned more than requested.
			hits = hits[:size]
		}
		all = append(all, hits...)
		offset += len(hits)
		if offset >= total || offset >= maxResults {
			break
		}
	}

	var out []FilingDescriptor
	seen := make(map[string]bool)
	for _, hit := range all {
		src := hit.Source
		if src.Accession == "" || seen[src.Accession] {
			continue
		}
		seen[src.Accession] = true

		name, ticker, cik := parseDisplayName(firstOf(src.DisplayNames))
		if cik == "" && len(src.CIKs) > 0 {
			cik = src.CIKs[0]
		}
		if cik != "" {
			cik = PadCIK(cik)
		}
		primary := primaryDocumentFromID(hit.ID)

		out = append(out, FilingDescriptor{
			Ticker:          ticker,
			CompanyName:     name,
			CIK:             cik,
			Form:            src.Form,
			FilingDate:      src.FileDate,
			AccessionNumber: src.Accession,
			PrimaryDocument: primary,
			FilingURL:       FilingURL(cik, src.Accession, primary),
		})
	}

	sortByDateDesc(out)
	return out
}

func (c *Client) fetchSearchBatch(ctx context.Context, base url.Values, offset, size int) (*searchResponse, error) {
	params := url.Values{}
	for k, v := range base {
		params[k] = v
	}
	params.Set("from", fmt.Sprintf("%d", offset))
	params.Set("size", fmt.Sprintf("%d", size))

	var resp searchResponse
	if err := c.getJSON(ctx, c.SearchURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// parseDisplayName splits "COMPANY NAME (TICKER) (CIK 0000874761)" into its
// parts. Non-matching strings yield empty components, not an error.
func parseDisplayName(s string) (name, ticker, cik string) {
	m := displayNameRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", "", ""
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), m[3]
}

// primaryDocumentFromID recovers the document filename from an EFTS hit ID of
// the form "0000874761-25-000043:prospectus.htm".
func primaryDocumentFromID(id string) string {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return ""
}

func firstOf(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	return ss[0]
}
