package bond

import (
	"fmt"
	"strconv"
	"strings"
)

// Coercion field lists. These drive the cleanup passes in FromRaw and are the
// source of truth for which schema keys get which treatment. Treat them as
// configuration verified by TestFieldListsCoverSchema, not as something to
// infer from the struct.
var (
	// RateFields are decimal-fraction rates; percent-looking values collapse.
	RateFields = []string{"interest_rate", "rate_spread", "rate_floor", "rate_cap"}

	// MoneyFields are absolute amounts or prices, taken as-is numerically.
	MoneyFields = []string{
		"principal_amount", "face_value", "call_price", "put_price",
		"conversion_price", "conversion_ratio",
	}

	// DurationFields are month counts.
	DurationFields = []string{"reset_frequency", "max_deferral_period"}

	// BoolFields are option/feature flags.
	BoolFields = []string{
		"callable", "puttable", "convertible",
		"deferral_allowed", "deferred_interest_cumulative",
	}

	// DateFields are normalized toward ISO 8601.
	DateFields = []string{
		"next_reset_date", "issue_date", "first_payment_date",
		"maturity_date", "first_call_date", "first_put_date",
	}
)

// enumFields maps schema keys to their closed variant sets.
var enumFields = map[string]func() []string{
	"security_type":     SecurityRankValues,
	"coupon_type":       CouponTypeValues,
	"payment_frequency": PaymentFrequencyValues,
	"rate_benchmark":    RateBenchmarkValues,
	"reset_trigger":     TriggerCauseValues,
}

// FromRaw converts an untyped LLM payload into a canonical Record. The
// conversion is total: unknown keys are dropped, missing keys stay nil,
// unrecognized enum strings drop to nil, and defaults fill currency and face
// value. It never fails.
func FromRaw(raw RawBond) Record {
	clean := make(RawBond, len(raw))
	for k, v := range raw {
		clean[k] = v
	}

	for _, k := range RateFields {
		if v, ok := clean[k]; ok {
			clean[k] = FromPercent(v)
		}
	}

	var r Record

	r.CUSIP = stringVal(clean["cusip"])
	r.ISIN = stringVal(clean["isin"])

	r.SecurityType = (*SecurityRank)(CoerceEnum(SecurityRankValues(), clean["security_type"]))
	r.CouponType = (*CouponType)(CoerceEnum(CouponTypeValues(), clean["coupon_type"]))
	r.PaymentFrequency = (*PaymentFrequency)(CoerceEnum(PaymentFrequencyValues(), clean["payment_frequency"]))
	r.RateBenchmark = (*RateBenchmark)(CoerceEnum(RateBenchmarkValues(), clean["rate_benchmark"]))
	r.ResetTrigger = (*TriggerCause)(CoerceEnum(TriggerCauseValues(), clean["reset_trigger"]))

	r.InterestRate = numberVal(clean["interest_rate"])
	r.RateSpread = numberVal(clean["rate_spread"])
	r.RateFloor = numberVal(clean["rate_floor"])
	r.RateCap = numberVal(clean["rate_cap"])

	r.PrincipalAmount = numberVal(clean["principal_amount"])
	r.FaceValue = numberVal(clean["face_value"])
	r.CallPrice = numberVal(clean["call_price"])
	r.PutPrice = numberVal(clean["put_price"])
	r.ConversionPrice = numberVal(clean["conversion_price"])
	r.ConversionRatio = numberVal(clean["conversion_ratio"])

	r.ResetFrequency = ToInt(clean["reset_frequency"])
	r.MaxDeferralPeriod = ToInt(clean["max_deferral_period"])

	r.Callable = ToBool(clean["callable"])
	r.Puttable = ToBool(clean["puttable"])
	r.Convertible = ToBool(clean["convertible"])
	r.DeferralAllowed = ToBool(clean["deferral_allowed"])
	r.DeferredInterestCumulative = ToBool(clean["deferred_interest_cumulative"])

	r.NextResetDate = dateVal(clean["next_reset_date"])
	r.IssueDate = dateVal(clean["issue_date"])
	r.FirstPaymentDate = dateVal(clean["first_payment_date"])
	r.MaturityDate = dateVal(clean["maturity_date"])
	r.FirstCallDate = dateVal(clean["first_call_date"])
	r.FirstPutDate = dateVal(clean["first_put_date"])

	r.Currency = DefaultCurrency
	if c := stringVal(clean["currency"]); c != nil && strings.TrimSpace(*c) != "" {
		r.Currency = strings.TrimSpace(*c)
	}
	if r.FaceValue == nil || *r.FaceValue == 0 {
		fv := DefaultFaceValue
		r.FaceValue = &fv
	}

	return r
}

func stringVal(v any) *string {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		out := s
		return &out
	}
	return nil
}

func numberVal(v any) *float64 {
	if v == nil {
		return nil
	}
	switch x := v.(type) {
	case float64:
		f := x
		return &f
	case int:
		f := float64(x)
		return &f
	case string:
		cleaned := strings.NewReplacer(",", "", "$", "").Replace(strings.TrimSpace(x))
		if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return &f
		}
	}
	return nil
}

func dateVal(v any) *string {
	if v == nil {
		return nil
	}
	var s string
	switch x := v.(type) {
	case string:
		s = x
	default:
		s = fmt.Sprint(x)
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	out := NormalizeDate(s)
	return &out
}
