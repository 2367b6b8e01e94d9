package extract

import (
	"context"
	"fmt"

	"github.com/hrseymour/bond-extractor/pkg/core/bond"
	"github.com/hrseymour/bond-extractor/pkg/core/edgar"
	"github.com/hrseymour/bond-extractor/pkg/core/utils"
)

// BondExtractor extracts bond terms from filing text through an AIProvider.
// Results are memoized by content fingerprint, so re-runs over the same
// filing set within a process never repeat an LLM call.
type BondExtractor struct {
	provider AIProvider
	cache    map[string][]bond.Record
}

// NewBondExtractor creates an extractor backed by the given provider.
func NewBondExtractor(provider AIProvider) *BondExtractor {
	return &BondExtractor{
		provider: provider,
		cache:    make(map[string][]bond.Record),
	}
}

// ExtractBonds pulls every bond described in the normalized filing text.
// Malformed model output degrades to an empty record list; only transport
// failures from the provider surface as errors.
func (e *BondExtractor) ExtractBonds(ctx context.Context, text string, form string) ([]bond.Record, error) {
	key := edgar.ContentHash(text)
	if records, ok := e.cache[key]; ok {
		fmt.Printf("  Cache hit for %s filing (%d bonds)\n", form, len(records))
		return records, nil
	}

	response, err := e.provider.Generate(ctx, SystemPrompt, buildPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("bond extraction from %s filing: %w", form, err)
	}

	records := recordsFromResponse(response)
	e.cache[key] = records
	return records, nil
}

// CacheSize reports how many distinct filings have been extracted so far.
func (e *BondExtractor) CacheSize() int {
	return len(e.cache)
}

// recordsFromResponse parses the model output and coerces each entry of the
// "bonds" array. A missing or malformed array yields zero records; entries
// that are not objects are skipped.
func recordsFromResponse(response string) []bond.Record {
	payload := utils.SafeJSONLoads(response)

	rawBonds, ok := payload["bonds"].([]interface{})
	if !ok {
		return []bond.Record{}
	}

	records := make([]bond.Record, 0, len(rawBonds))
	for _, entry := range rawBonds {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		records = append(records, bond.FromRaw(bond.RawBond(m)))
	}
	return records
}
