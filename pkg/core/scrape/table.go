// Package scrape drives the per-company pipeline: locate filings, fetch and
// normalize each document, extract bond terms, and tag every record with the
// filing it came from.
package scrape

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hrseymour/bond-extractor/pkg/core/bond"
)

// Row is one extracted bond with its filing provenance. The provenance fields
// are copied from the FilingDescriptor at merge time; the record itself never
// carries a back-reference to the filing.
type Row struct {
	Ticker          string `json:"ticker"`
	CompanyName     string `json:"company_name"`
	CIK             string `json:"cik"`
	Form            string `json:"form"`
	FilingDate      string `json:"filing_date"`
	AccessionNumber string `json:"accession_number"`
	FilingURL       string `json:"filing_url"`

	bond.Record
}

// ResultTable is the flat output of one run.
type ResultTable struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Rows        []Row     `json:"rows"`
}

// NewResultTable creates an empty table with a fresh run ID.
func NewResultTable() *ResultTable {
	return &ResultTable{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
	}
}

// CSVHeader lists the output columns: provenance first, then the record
// fields in schema order.
func CSVHeader() []string {
	return []string{
		"ticker", "company_name", "cik", "form", "filing_date", "accession_number", "filing_url",
		"cusip", "isin",
		"security_type", "principal_amount", "currency", "face_value",
		"interest_rate", "coupon_type", "payment_frequency",
		"rate_benchmark", "rate_spread", "rate_floor", "rate_cap",
		"reset_frequency", "next_reset_date", "reset_trigger",
		"issue_date", "first_payment_date", "maturity_date",
		"callable", "first_call_date", "call_price",
		"puttable", "first_put_date", "put_price",
		"convertible", "conversion_price", "conversion_ratio",
		"deferral_allowed", "max_deferral_period", "deferred_interest_cumulative",
	}
}

// CSVRecord projects the row onto CSVHeader's column order. Absent fields
// render as empty cells.
func (r Row) CSVRecord() []string {
	return []string{
		r.Ticker, r.CompanyName, r.CIK, r.Form, r.FilingDate, r.AccessionNumber, r.FilingURL,
		str(r.CUSIP), str(r.ISIN),
		enum(r.SecurityType), num(r.PrincipalAmount), r.Currency, num(r.FaceValue),
		num(r.InterestRate), enum(r.CouponType), enum(r.PaymentFrequency),
		enum(r.RateBenchmark), num(r.RateSpread), num(r.RateFloor), num(r.RateCap),
		integer(r.ResetFrequency), str(r.NextResetDate), enum(r.ResetTrigger),
		str(r.IssueDate), str(r.FirstPaymentDate), str(r.MaturityDate),
		boolean(r.Callable), str(r.FirstCallDate), num(r.CallPrice),
		boolean(r.Puttable), str(r.FirstPutDate), num(r.PutPrice),
		boolean(r.Convertible), num(r.ConversionPrice), num(r.ConversionRatio),
		boolean(r.DeferralAllowed), integer(r.MaxDeferralPeriod), boolean(r.DeferredInterestCumulative),
	}
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func enum[T ~string](v *T) string {
	if v == nil {
		return ""
	}
	return string(*v)
}

func num(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func integer(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func boolean(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}
