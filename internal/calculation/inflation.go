// Package calculation implements the planning engine: inflation and
// discounting, loan amortization, goal valuation, bucketed asset
// aggregation, the year-by-year cashflow and liquidation simulator, and the
// summary/audit metrics. Everything here is a pure function of the entity
// snapshot and an explicit currentYear; there is no I/O and no clock access.
package calculation

import (
	"github.com/arthayojana/arthayojana/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalTwelve  = decimal.NewFromInt(12)
	decimalHundred = decimal.NewFromInt(100)
)

// onePlusPct converts a percentage rate to a growth factor, e.g. 8.5 -> 1.085.
func onePlusPct(pct decimal.Decimal) decimal.Decimal {
	return decimalOne.Add(pct.Div(decimalHundred))
}

// Inflate grows base from fromYear to toYear. With bucket inflation enabled
// the applicable regime's rate is applied for each elapsed year individually,
// so spans crossing the retirement year remain exact; otherwise the fallback
// rate compounds flat. toYear at or before fromYear returns base unchanged.
func Inflate(base decimal.Decimal, fromYear, toYear int, settings *domain.DiscountSettings, fallbackRatePct decimal.Decimal, retirementYear int) decimal.Decimal {
	if toYear <= fromYear {
		return base
	}
	if settings == nil || !settings.UseBucketInflation {
		rate := fallbackRatePct
		if settings != nil && rate.IsZero() {
			rate = settings.DefaultInflationRate
		}
		return base.Mul(onePlusPct(rate).Pow(decimal.NewFromInt(int64(toYear - fromYear))))
	}

	value := base
	for year := fromYear; year < toYear; year++ {
		rate := settings.PreRetirementRate
		if year >= retirementYear {
			rate = settings.PostRetirementRate
		}
		if rate.IsZero() {
			rate = settings.DefaultInflationRate
		}
		value = value.Mul(onePlusPct(rate))
	}
	return value
}

// RealRate is the inflation-adjusted return as a fraction:
// (1+investment)/(1+inflation) - 1, both inputs in percent.
func RealRate(investmentRatePct, inflationRatePct decimal.Decimal) decimal.Decimal {
	return onePlusPct(investmentRatePct).Div(onePlusPct(inflationRatePct)).Sub(decimalOne)
}

// PVAnnuityFactor is the present value of n annual payments of 1 at rate r
// (a fraction, not a percent): (1 - (1+r)^-n) / r, degrading to n when r is
// zero.
func PVAnnuityFactor(r decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	if r.IsZero() {
		return decimal.NewFromInt(int64(n))
	}
	discount := decimalOne.Add(r).Pow(decimal.NewFromInt(int64(n)))
	return decimalOne.Sub(decimalOne.Div(discount)).Div(r)
}
