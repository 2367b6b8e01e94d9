package bond

import (
	"encoding/json"
	"reflect"
	"sort"
	"testing"
)

func TestFromRawDefaults(t *testing.T) {
	r := FromRaw(RawBond{})

	if r.Currency != DefaultCurrency {
		t.Errorf("Currency = %q, want %q", r.Currency, DefaultCurrency)
	}
	if r.FaceValue == nil || *r.FaceValue != DefaultFaceValue {
		t.Errorf("FaceValue = %v, want %v", r.FaceValue, DefaultFaceValue)
	}
	if r.CUSIP != nil || r.InterestRate != nil || r.Callable != nil {
		t.Errorf("empty payload should leave optional fields nil: %+v", r)
	}
}

func TestFromRawCoercesFields(t *testing.T) {
	r := FromRaw(RawBond{
		"cusip":             "00130HCF1",
		"security_type":     "senior unsecured",
		"principal_amount":  "500,000,000",
		"interest_rate":     6.95,
		"rate_spread":       "2.15%",
		"coupon_type":       "fixed",
		"payment_frequency": "semi-annual",
		"maturity_date":     "July 15, 2055",
		"callable":          "yes",
		"reset_frequency":   "60",
		"currency":          "  CAD ",
		"face_value":        0,
		"extra_model_key":   "dropped silently",
	})

	if r.CUSIP == nil || *r.CUSIP != "00130HCF1" {
		t.Errorf("CUSIP = %v", r.CUSIP)
	}
	if r.SecurityType == nil || *r.SecurityType != SeniorUnsecured {
		t.Errorf("SecurityType = %v, want SeniorUnsecured", r.SecurityType)
	}
	if r.PrincipalAmount == nil || *r.PrincipalAmount != 500000000 {
		t.Errorf("PrincipalAmount = %v, want 500000000", r.PrincipalAmount)
	}
	if r.InterestRate == nil || !almostEqual(*r.InterestRate, 0.0695) {
		t.Errorf("InterestRate = %v, want 0.0695", r.InterestRate)
	}
	if r.RateSpread == nil || !almostEqual(*r.RateSpread, 0.0215) {
		t.Errorf("RateSpread = %v, want 0.0215", r.RateSpread)
	}
	if r.CouponType == nil || *r.CouponType != CouponFixed {
		t.Errorf("CouponType = %v, want Fixed", r.CouponType)
	}
	if r.PaymentFrequency == nil || *r.PaymentFrequency != PaySemiAnnual {
		t.Errorf("PaymentFrequency = %v, want SemiAnnual", r.PaymentFrequency)
	}
	if r.MaturityDate == nil || *r.MaturityDate != "2055-07-15" {
		t.Errorf("MaturityDate = %v, want 2055-07-15", r.MaturityDate)
	}
	if r.Callable == nil || !*r.Callable {
		t.Errorf("Callable = %v, want true", r.Callable)
	}
	if r.ResetFrequency == nil || *r.ResetFrequency != 60 {
		t.Errorf("ResetFrequency = %v, want 60", r.ResetFrequency)
	}
	if r.Currency != "CAD" {
		t.Errorf("Currency = %q, want CAD", r.Currency)
	}
	if r.FaceValue == nil || *r.FaceValue != DefaultFaceValue {
		t.Errorf("zero face value should take the default, got %v", r.FaceValue)
	}
}

func TestFromRawUnrecognizedEnumDropsToNil(t *testing.T) {
	r := FromRaw(RawBond{
		"security_type":  "mezzanine",
		"rate_benchmark": "EURIBOR 3M",
	})
	if r.SecurityType != nil {
		t.Errorf("SecurityType = %v, want nil", r.SecurityType)
	}
	if r.RateBenchmark != nil {
		t.Errorf("RateBenchmark = %v, want nil", r.RateBenchmark)
	}
}

// The coercion field lists are configuration, not something inferred from the
// struct. This test pins them against the Record schema so a typo in any list
// (a missing or concatenated key) fails loudly instead of silently skipping a
// field's coercion.
func TestFieldListsCoverSchema(t *testing.T) {
	schema := recordJSONKeys(t)

	var listed []string
	listed = append(listed, RateFields...)
	listed = append(listed, MoneyFields...)
	listed = append(listed, DurationFields...)
	listed = append(listed, BoolFields...)
	listed = append(listed, DateFields...)
	for k := range enumFields {
		listed = append(listed, k)
	}
	listed = append(listed, "cusip", "isin", "currency")

	seen := make(map[string]bool)
	for _, k := range listed {
		if !schema[k] {
			t.Errorf("field list names %q, which is not a schema key", k)
		}
		if seen[k] {
			t.Errorf("field %q appears in more than one list", k)
		}
		seen[k] = true
	}

	var missing []string
	for k := range schema {
		if !seen[k] {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	if len(missing) > 0 {
		t.Errorf("schema keys not covered by any field list: %v", missing)
	}
}

func recordJSONKeys(t *testing.T) map[string]bool {
	t.Helper()
	keys := make(map[string]bool)
	rt := reflect.TypeOf(Record{})
	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			t.Fatalf("field %s has no json tag", rt.Field(i).Name)
		}
		keys[tag] = true
	}
	return keys
}

func TestRecordJSONRoundTripKeepsNulls(t *testing.T) {
	r := FromRaw(RawBond{"interest_rate": 0.05})
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["cusip"] != nil {
		t.Errorf("absent field should serialize as null, got %v", m["cusip"])
	}
	if m["interest_rate"] != 0.05 {
		t.Errorf("interest_rate = %v, want 0.05", m["interest_rate"])
	}
}
