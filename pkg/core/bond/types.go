// Package bond defines the canonical bond-security schema extracted from SEC
// filings, plus the coercion layer that turns loosely-typed LLM output into it.
package bond

// SchemaVersion identifies the enum sets and field lists below. Bump it when a
// variant is added or removed so downstream consumers can detect drift.
const SchemaVersion = "v1"

// SecurityRank is the seniority of a security in the capital structure.
type SecurityRank string

const (
	SeniorSecured      SecurityRank = "SeniorSecured"
	SeniorUnsecured    SecurityRank = "SeniorUnsecured"
	SeniorSubordinated SecurityRank = "SeniorSubordinated"
	JuniorSubordinated SecurityRank = "JuniorSubordinated"
	PreferredStock     SecurityRank = "PreferredStock"
)

// SecurityRankValues returns the closed set of SecurityRank variants.
func SecurityRankValues() []string {
	return []string{
		string(SeniorSecured), string(SeniorUnsecured), string(SeniorSubordinated),
		string(JuniorSubordinated), string(PreferredStock),
	}
}

// CouponType describes how the coupon of a bond is determined.
type CouponType string

const (
	CouponFixed     CouponType = "Fixed"
	CouponFloating  CouponType = "Floating"
	CouponZero      CouponType = "Zero"
	CouponRateReset CouponType = "RateReset"
	CouponStepUp    CouponType = "StepUp"
	CouponPIK       CouponType = "PIK"
	CouponOther     CouponType = "Other"
)

// CouponTypeValues returns the closed set of CouponType variants.
func CouponTypeValues() []string {
	return []string{
		string(CouponFixed), string(CouponFloating), string(CouponZero),
		string(CouponRateReset), string(CouponStepUp), string(CouponPIK),
		string(CouponOther),
	}
}

// PaymentFrequency is how often coupon payments occur.
type PaymentFrequency string

const (
	PayMonthly    PaymentFrequency = "Monthly"
	PayQuarterly  PaymentFrequency = "Quarterly"
	PaySemiAnnual PaymentFrequency = "SemiAnnual"
	PayAnnual     PaymentFrequency = "Annual"
	PayZero       PaymentFrequency = "Zero"
	PayOther      PaymentFrequency = "Other"
)

// PaymentFrequencyValues returns the closed set of PaymentFrequency variants.
func PaymentFrequencyValues() []string {
	return []string{
		string(PayMonthly), string(PayQuarterly), string(PaySemiAnnual),
		string(PayAnnual), string(PayZero), string(PayOther),
	}
}

// RateBenchmark is the reference rate a floating or reset coupon is computed
// against. "Fixed" is included so fixed-to-floating notes can name their
// initial leg.
type RateBenchmark string

const (
	BenchFixed    RateBenchmark = "Fixed"
	BenchCAD3Mo   RateBenchmark = "CAD3Mo"
	BenchCAD5Yr   RateBenchmark = "CAD5Yr"
	BenchCADPrime RateBenchmark = "CADPrime"
	BenchLibor1Mo RateBenchmark = "Libor1Mo"
	BenchLibor3Mo RateBenchmark = "Libor3Mo"
	BenchLibor6Mo RateBenchmark = "Libor6Mo"
	BenchLibor1Yr RateBenchmark = "Libor1Yr"
	BenchTermSofr RateBenchmark = "TermSofr"
	BenchSofr1Mo  RateBenchmark = "Sofr1Mo"
	BenchSofr3Mo  RateBenchmark = "Sofr3Mo"
	BenchSofr6Mo  RateBenchmark = "Sofr6Mo"
	BenchTreas1Mo RateBenchmark = "Treas1Mo"
	BenchTreas3Mo RateBenchmark = "Treas3Mo"
	BenchTreas1Yr RateBenchmark = "Treas1Yr"
	BenchTreas2Yr RateBenchmark = "Treas2Yr"
	BenchTreas5Yr RateBenchmark = "Treas5Yr"
	BenchTreas7Yr RateBenchmark = "Treas7Yr"
	BenchTreas10Yr RateBenchmark = "Treas10Yr"
	BenchTreas30Yr RateBenchmark = "Treas30Yr"
)

// RateBenchmarkValues returns the closed set of RateBenchmark variants.
func RateBenchmarkValues() []string {
	return []string{
		string(BenchFixed),
		string(BenchCAD3Mo), string(BenchCAD5Yr), string(BenchCADPrime),
		string(BenchLibor1Mo), string(BenchLibor3Mo), string(BenchLibor6Mo), string(BenchLibor1Yr),
		string(BenchTermSofr), string(BenchSofr1Mo), string(BenchSofr3Mo), string(BenchSofr6Mo),
		string(BenchTreas1Mo), string(BenchTreas3Mo), string(BenchTreas1Yr), string(BenchTreas2Yr),
		string(BenchTreas5Yr), string(BenchTreas7Yr), string(BenchTreas10Yr), string(BenchTreas30Yr),
	}
}

// TriggerCause is what causes the next coupon reset on a reset-rate note.
type TriggerCause string

const (
	TriggerScheduled TriggerCause = "Scheduled"
	TriggerCall      TriggerCause = "Call"
	TriggerOther     TriggerCause = "Other"
)

// TriggerCauseValues returns the closed set of TriggerCause variants.
func TriggerCauseValues() []string {
	return []string{string(TriggerScheduled), string(TriggerCall), string(TriggerOther)}
}

// DefaultCurrency and DefaultFaceValue fill records where the filing is silent.
const (
	DefaultCurrency  = "USD"
	DefaultFaceValue = 1000.0
)

// Record is the canonical extracted bond. Every field except Currency is
// optional: nil means the filing did not state it (or stated something the
// closed enum sets could not absorb: unrecognized variants drop to nil by
// policy, there is no catch-all variant).
type Record struct {
	// Identifiers
	CUSIP *string `json:"cusip"`
	ISIN  *string `json:"isin"`

	// Issuance terms
	SecurityType    *SecurityRank `json:"security_type"`
	PrincipalAmount *float64      `json:"principal_amount"`
	Currency        string        `json:"currency"`
	FaceValue       *float64      `json:"face_value"`

	// Interest / coupon. Rates are decimal fractions (0.0695, not 6.95).
	InterestRate     *float64          `json:"interest_rate"`
	CouponType       *CouponType       `json:"coupon_type"`
	PaymentFrequency *PaymentFrequency `json:"payment_frequency"`

	// Floating / reset
	RateBenchmark  *RateBenchmark `json:"rate_benchmark"`
	RateSpread     *float64       `json:"rate_spread"`
	RateFloor      *float64       `json:"rate_floor"`
	RateCap        *float64       `json:"rate_cap"`
	ResetFrequency *int           `json:"reset_frequency"` // months
	NextResetDate  *string        `json:"next_reset_date"`
	ResetTrigger   *TriggerCause  `json:"reset_trigger"`

	// Lifecycle dates, ISO 8601 where normalization succeeded
	IssueDate        *string `json:"issue_date"`
	FirstPaymentDate *string `json:"first_payment_date"`
	MaturityDate     *string `json:"maturity_date"`

	// Call option
	Callable      *bool    `json:"callable"`
	FirstCallDate *string  `json:"first_call_date"`
	CallPrice     *float64 `json:"call_price"`

	// Put option
	Puttable     *bool    `json:"puttable"`
	FirstPutDate *string  `json:"first_put_date"`
	PutPrice     *float64 `json:"put_price"`

	// Conversion option
	Convertible     *bool    `json:"convertible"`
	ConversionPrice *float64 `json:"conversion_price"`
	ConversionRatio *float64 `json:"conversion_ratio"`

	// Interest deferral features
	DeferralAllowed            *bool `json:"deferral_allowed"`
	MaxDeferralPeriod          *int  `json:"max_deferral_period"` // months
	DeferredInterestCumulative *bool `json:"deferred_interest_cumulative"`
}

// RawBond is the untyped payload for one bond as decoded from an LLM response.
// It is deliberately distinct from Record: FromRaw is the only crossing point
// and it never fails.
type RawBond map[string]any
