package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hrseymour/bond-extractor/pkg/core/bond"
)

// MaxPromptChars caps the filing text embedded in the prompt so the request
// stays inside the collaborator's input limits.
const MaxPromptChars = 100000

// SystemPrompt frames the extraction task for the model.
const SystemPrompt = `You are an expert financial analyst specializing in bond markets and SEC filings.
Your task is to extract ALL bond and note terms from filing text and return them as strict JSON.
Use null for any field the filing does not state. Never invent values.`

// buildPrompt embeds the JSON schema, the normalization rules and the
// (truncated) filing text into a single user prompt.
func buildPrompt(text string) string {
	text = truncate(text, MaxPromptChars)

	return fmt.Sprintf(`Extract ALL bond information from this SEC filing. Return a JSON object with a top-level "bonds" array.

REQUIRED STRUCTURE:
%s

RULES:
- Percentages to decimals: 5.25%% -> 0.0525
- Basis points to decimals: 215 bps -> 0.0215
- Millions/billions to absolute numbers: $500M -> 500000000
- Time spans and reset/deferral intervals measured in months
- Dates must be YYYY-MM-DD
- Enumerated fields must use one of the listed values exactly, or null

TEXT TO ANALYZE:
%s

Only return JSON, no extra commentary.`, schemaBlock(), text)
}

// truncate cuts s to at most max bytes, backing off to a rune boundary so the
// prompt never carries a split multibyte sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// schemaBlock renders the bonds schema with every field name and its allowed
// type or enumerated values.
func schemaBlock() string {
	enum := func(values []string) string {
		return `"` + strings.Join(values, `" | "`) + `" | null`
	}

	return fmt.Sprintf(`{"bonds": [{
  "cusip": string | null,
  "isin": string | null,
  "security_type": %s,
  "principal_amount": number | null,
  "currency": string | null,
  "face_value": number | null,
  "interest_rate": number | null,
  "coupon_type": %s,
  "payment_frequency": %s,
  "rate_benchmark": %s,
  "rate_spread": number | null,
  "rate_floor": number | null,
  "rate_cap": number | null,
  "reset_frequency": number (months) | null,
  "next_reset_date": "YYYY-MM-DD" | null,
  "reset_trigger": %s,
  "issue_date": "YYYY-MM-DD" | null,
  "first_payment_date": "YYYY-MM-DD" | null,
  "maturity_date": "YYYY-MM-DD" | null,
  "callable": boolean | null,
  "first_call_date": "YYYY-MM-DD" | null,
  "call_price": number | null,
  "puttable": boolean | null,
  "first_put_date": "YYYY-MM-DD" | null,
  "put_price": number | null,
  "convertible": boolean | null,
  "conversion_price": number | null,
  "conversion_ratio": number | null,
  "deferral_allowed": boolean | null,
  "max_deferral_period": number (months) | null,
  "deferred_interest_cumulative": boolean | null
}]}`,
		enum(bond.SecurityRankValues()),
		enum(bond.CouponTypeValues()),
		enum(bond.PaymentFrequencyValues()),
		enum(bond.RateBenchmarkValues()),
		enum(bond.TriggerCauseValues()),
	)
}
