package scrape

import (
	"github.com/hrseymour/bond-extractor/pkg/core/bond"
)

// Summary aggregates a result table for the run report.
type Summary struct {
	TotalBonds      int            `json:"total_bonds"`
	TotalPrincipal  float64        `json:"total_principal"`
	UniqueCompanies int            `json:"unique_companies"`
	AvgInterestRate *float64       `json:"avg_interest_rate"`
	BySecurityRank  map[string]int `json:"by_security_rank"`
	ByCouponType    map[string]int `json:"by_coupon_type"`

	Floating    FloatingSummary    `json:"floating"`
	Convertible ConvertibleSummary `json:"convertible"`
}

// FloatingSummary covers the floating and rate-reset subset.
type FloatingSummary struct {
	Count       int            `json:"count"`
	ByBenchmark map[string]int `json:"by_benchmark"`
	AvgSpread   *float64       `json:"avg_spread"`
}

// ConvertibleSummary covers bonds flagged convertible.
type ConvertibleSummary struct {
	Count          int     `json:"count"`
	TotalPrincipal float64 `json:"total_principal"`
}

// Summarize computes run statistics over a flat row table. Rows missing a
// field simply do not contribute to that field's aggregate.
func Summarize(rows []Row) Summary {
	s := Summary{
		TotalBonds:     len(rows),
		BySecurityRank: make(map[string]int),
		ByCouponType:   make(map[string]int),
		Floating: FloatingSummary{
			ByBenchmark: make(map[string]int),
		},
	}

	companies := make(map[string]bool)
	var rateSum, spreadSum float64
	var rateCount, spreadCount int

	for _, row := range rows {
		if row.CIK != "" {
			companies[row.CIK] = true
		} else if row.Ticker != "" {
			companies[row.Ticker] = true
		}

		if row.PrincipalAmount != nil {
			s.TotalPrincipal += *row.PrincipalAmount
		}
		if row.InterestRate != nil {
			rateSum += *row.InterestRate
			rateCount++
		}
		if row.SecurityType != nil {
			s.BySecurityRank[string(*row.SecurityType)]++
		}
		if row.CouponType != nil {
			s.ByCouponType[string(*row.CouponType)]++
		}

		if isFloating(row.CouponType) {
			s.Floating.Count++
			if row.RateBenchmark != nil {
				s.Floating.ByBenchmark[string(*row.RateBenchmark)]++
			}
			if row.RateSpread != nil {
				spreadSum += *row.RateSpread
				spreadCount++
			}
		}

		if row.Convertible != nil && *row.Convertible {
			s.Convertible.Count++
			if row.PrincipalAmount != nil {
				s.Convertible.TotalPrincipal += *row.PrincipalAmount
			}
		}
	}

	s.UniqueCompanies = len(companies)
	if rateCount > 0 {
		avg := rateSum / float64(rateCount)
		s.AvgInterestRate = &avg
	}
	if spreadCount > 0 {
		avg := spreadSum / float64(spreadCount)
		s.Floating.AvgSpread = &avg
	}
	return s
}

// isFloating treats both pure floaters and fixed-to-reset notes as the
// floating subset, since both carry benchmark and spread terms.
func isFloating(ct *bond.CouponType) bool {
	if ct == nil {
		return false
	}
	return *ct == bond.CouponFloating || *ct == bond.CouponRateReset
}
