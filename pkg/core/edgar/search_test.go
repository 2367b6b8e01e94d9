package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseDisplayName(t *testing.T) {
	name, ticker, cik := parseDisplayName("AES CORP  (AES)  (CIK 0000874761)")
	if name != "AES CORP" || ticker != "AES" || cik != "0000874761" {
		t.Errorf("got (%q, %q, %q)", name, ticker, cik)
	}

	name, ticker, cik = parseDisplayName("garbage without pattern")
	if name != "" || ticker != "" || cik != "" {
		t.Errorf("non-matching name should yield empty parts, got (%q, %q, %q)", name, ticker, cik)
	}
}

func TestPrimaryDocumentFromID(t *testing.T) {
	if got := primaryDocumentFromID("0000874761-25-000043:prospectus.htm"); got != "prospectus.htm" {
		t.Errorf("got %q", got)
	}
	if got := primaryDocumentFromID("no-colon"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func searchPayload(total int, hits ...map[string]any) string {
	body := map[string]any{
		"hits": map[string]any{
			"total": map[string]any{"value": total},
			"hits":  hits,
		},
	}
	data, _ := json.Marshal(body)
	return string(data)
}

func searchHitJSON(id, accession, form, date, display string) map[string]any {
	return map[string]any{
		"_id": id,
		"_source": map[string]any{
			"adsh":          accession,
			"form":          form,
			"file_date":     date,
			"display_names": []string{display},
			"ciks":          []string{"874761"},
		},
	}
}

func TestSearchFilingsDeduplicatesByAccession(t *testing.T) {
	display := "AES CORP  (AES)  (CIK 0000874761)"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, searchPayload(3,
			searchHitJSON("acc-1:first.htm", "acc-1", "424B2", "2025-03-01", display),
			searchHitJSON("acc-1:second.htm", "acc-1", "424B2", "2025-03-01", display),
			searchHitJSON("acc-2:other.htm", "acc-2", "FWP", "2025-04-01", display),
		))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	got := c.SearchFilings(context.Background(), nil, SearchOptions{Query: "senior notes"})

	if len(got) != 2 {
		t.Fatalf("got %d descriptors, want 2 after dedupe: %+v", len(got), got)
	}
	// Keep-first: the acc-1 descriptor must carry the first hit's document.
	var acc1 *FilingDescriptor
	for i := range got {
		if got[i].AccessionNumber == "acc-1" {
			acc1 = &got[i]
		}
	}
	if acc1 == nil {
		t.Fatal("acc-1 missing from results")
	}
	if acc1.PrimaryDocument != "first.htm" {
		t.Errorf("dedupe should keep first hit, got %q", acc1.PrimaryDocument)
	}
	if acc1.Ticker != "AES" || acc1.CompanyName != "AES CORP" || acc1.CIK != "0000874761" {
		t.Errorf("display name not parsed: %+v", acc1)
	}
	// Date-descending: acc-2 (April) before acc-1 (March).
	if got[0].AccessionNumber != "acc-2" {
		t.Errorf("not sorted date-descending: %+v", got)
	}
}

func TestSearchFilingsPaginates(t *testing.T) {
	display := "AES CORP  (AES)  (CIK 0000874761)"
	var offsets []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		from := r.URL.Query().Get("from")
		offsets = append(offsets, from)
		if from == "0" {
			hits := make([]map[string]any, searchBatchSize)
			for i := range hits {
				acc := fmt.Sprintf("acc-%03d", i)
				hits[i] = searchHitJSON(acc+":d.htm", acc, "424B2", "2025-01-01", display)
			}
			fmt.Fprint(w, searchPayload(searchBatchSize+1, hits...))
			return
		}
		fmt.Fprint(w, searchPayload(searchBatchSize+1,
			searchHitJSON("acc-last:d.htm", "acc-last", "424B2", "2025-01-02", display)))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	got := c.SearchFilings(context.Background(), nil, SearchOptions{Query: "notes"})

	if len(got) != searchBatchSize+1 {
		t.Fatalf("got %d descriptors, want %d", len(got), searchBatchSize+1)
	}
	if len(offsets) != 2 || offsets[0] != "0" || offsets[1] != "100" {
		t.Errorf("pagination offsets = %v, want [0 100]", offsets)
	}
}

func TestSearchFilingsMaxResultsCap(t *testing.T) {
	display := "AES CORP  (AES)  (CIK 0000874761)"
	calls := 0
	var sizes []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		sizes = append(sizes, r.URL.Query().Get("size"))
		// Always return a full batch, ignoring the requested size.
		hits := make([]map[string]any, searchBatchSize)
		for i := range hits {
			acc := fmt.Sprintf("acc-%d-%03d", calls, i)
			hits[i] = searchHitJSON(acc+":d.htm", acc, "424B2", "2025-01-01", display)
		}
		fmt.Fprint(w, searchPayload(10000, hits...))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	got := c.SearchFilings(context.Background(), nil, SearchOptions{Query: "notes", MaxResults: 150})

	if calls != 2 {
		t.Errorf("expected pagination to stop at the cap after 2 batches, made %d calls", calls)
	}
	if len(sizes) != 2 || sizes[0] != "100" || sizes[1] != "50" {
		t.Errorf("batch sizes = %v, want [100 50] (final batch shrunk to the cap)", sizes)
	}
	// The cap is exact even when the endpoint over-returns.
	if len(got) != 150 {
		t.Errorf("got %d descriptors, want exactly 150", len(got))
	}
}

func TestSearchFilingsFailsSoft(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	if got := c.SearchFilings(context.Background(), nil, SearchOptions{Query: "notes"}); len(got) != 0 {
		t.Errorf("expected empty result on server error, got %+v", got)
	}
}
