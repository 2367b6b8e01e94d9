package edgar

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Fetcher retrieves filing documents and turns them into structured plain
// text, optionally through a local file cache keyed by ticker and accession
// number. Cached entries hold the already-normalized text, so a cache hit
// skips both the download and the HTML pass.
type Fetcher struct {
	client *Client
	cache  *FilingCache
}

// NewFetcher creates a Fetcher. cacheDir may be empty to disable caching.
func NewFetcher(client *Client, cacheDir string) *Fetcher {
	return &Fetcher{
		client: client,
		cache:  NewFilingCache(cacheDir),
	}
}

// FetchText returns the structured plain text of a filing, or "" on any
// failure (network error, missing document, non-200 response). Callers must
// treat "" as "skip this filing".
func (f *Fetcher) FetchText(ctx context.Context, desc FilingDescriptor) string {
	if text := f.cache.Get(desc.Ticker, desc.AccessionNumber); text != "" {
		return text
	}

	url := desc.FilingURL
	if url == "" {
		url = FilingURL(desc.CIK, desc.AccessionNumber, desc.PrimaryDocument)
	}
	if url == "" {
		return ""
	}

	raw, err := f.download(ctx, url)
	if err != nil {
		fmt.Printf("Warning: download failed for %s: %v. Skipping.\n", desc.AccessionNumber, err)
		return ""
	}

	text := StructuredText(raw)
	if text == "" {
		return ""
	}

	if err := f.cache.Set(desc.Ticker, desc.AccessionNumber, text); err != nil {
		fmt.Printf("Warning: cache write failed for %s: %v\n", desc.AccessionNumber, err)
	}
	return text
}

func (f *Fetcher) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.client.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("SEC returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
