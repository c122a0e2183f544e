package calculation

import (
	"strings"

	"github.com/arthayojana/arthayojana/internal/domain"
	"github.com/shopspring/decimal"
)

// defaultBucketReturns are the per-bucket annual return rates (percent)
// used when no assets map into a bucket to blend from.
var defaultBucketReturns = map[domain.Bucket]decimal.Decimal{
	domain.BucketSavings:      decimal.NewFromInt(6),
	domain.BucketDirectEquity: decimal.NewFromInt(12),
	domain.BucketMutualFunds:  decimal.NewFromInt(11),
	domain.BucketGold:         decimal.NewFromInt(8),
	domain.BucketRealEstate:   decimal.NewFromInt(9),
	domain.BucketNetSavings:   decimal.NewFromInt(6),
}

var mutualFundMarkers = []string{"mutual", "mf", "index"}

// retirementVehicleMarkers identify debt instruments modeled outside the
// engine's buckets entirely (employer retirement corpus schemes).
var retirementVehicleMarkers = []string{"epf", "gpf", "dsop", "nps"}

func containsAny(s string, markers []string) bool {
	s = strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// ClassifyAsset maps an asset to its liquidity bucket. The second return is
// false for holdings the simulator excludes: retirement-scheme debt
// vehicles and personal-use assets.
func ClassifyAsset(a *domain.Asset) (domain.Bucket, bool) {
	switch a.Category {
	case domain.CategoryLiquid:
		return domain.BucketSavings, true
	case domain.CategoryDebt:
		if containsAny(a.SubCategory, retirementVehicleMarkers) {
			return 0, false
		}
		return domain.BucketSavings, true
	case domain.CategoryEquity:
		if containsAny(a.SubCategory, mutualFundMarkers) {
			return domain.BucketMutualFunds, true
		}
		return domain.BucketDirectEquity, true
	case domain.CategoryGoldSilver:
		return domain.BucketGold, true
	case domain.CategoryRealEstate:
		return domain.BucketRealEstate, true
	default:
		return 0, false
	}
}

// ClassifyLabel applies the asset classification rules to a free-text
// commitment label. Unrecognized labels land in savings; retirement-scheme
// labels are excluded.
func ClassifyLabel(label string) (domain.Bucket, bool) {
	switch {
	case containsAny(label, retirementVehicleMarkers):
		return 0, false
	case containsAny(label, mutualFundMarkers) || containsAny(label, []string{"sip"}):
		return domain.BucketMutualFunds, true
	case containsAny(label, []string{"equity", "stock", "share"}):
		return domain.BucketDirectEquity, true
	case containsAny(label, []string{"gold", "silver"}):
		return domain.BucketGold, true
	case containsAny(label, []string{"real estate", "property", "land", "plot"}):
		return domain.BucketRealEstate, true
	default:
		return domain.BucketSavings, true
	}
}

// BlendedBucketReturns derives each bucket's annual return rate by blending
// its contributing assets' growth rates weighted by current value, falling
// back to the bucket default when nothing maps in.
func BlendedBucketReturns(assets []domain.Asset) map[domain.Bucket]decimal.Decimal {
	weighted := domain.NewBucketAmounts()
	values := domain.NewBucketAmounts()
	for i := range assets {
		bucket, ok := ClassifyAsset(&assets[i])
		if !ok {
			continue
		}
		weighted[bucket] = weighted[bucket].Add(assets[i].CurrentValue.Mul(assets[i].GrowthRate))
		values[bucket] = values[bucket].Add(assets[i].CurrentValue)
	}

	rates := make(map[domain.Bucket]decimal.Decimal, len(domain.AllBuckets))
	for _, b := range domain.AllBuckets {
		if values[b].GreaterThan(decimal.Zero) {
			rates[b] = weighted[b].Div(values[b])
		} else {
			rates[b] = defaultBucketReturns[b]
		}
	}
	return rates
}

// AssetVesting schedules an asset's future value into a bucket at the year
// it becomes available to the plan.
type AssetVesting struct {
	Bucket domain.Bucket
	Year   int
	Amount decimal.Decimal
}

// AssetVestings projects each goal-available asset to its vesting year,
// compounding the current value at the asset's own growth rate for the
// years until then. Assets already available vest in the first projection
// year.
func AssetVestings(assets []domain.Asset, currentYear int) []AssetVesting {
	firstYear := currentYear + 1
	var vestings []AssetVesting
	for i := range assets {
		a := &assets[i]
		if !a.AvailableForGoals {
			continue
		}
		bucket, ok := ClassifyAsset(a)
		if !ok {
			continue
		}
		vestYear := a.AvailableFrom
		if vestYear < firstYear {
			vestYear = firstYear
		}
		futureValue := a.CurrentValue.Mul(onePlusPct(a.GrowthRate).Pow(decimal.NewFromInt(int64(vestYear - currentYear))))
		vestings = append(vestings, AssetVesting{Bucket: bucket, Year: vestYear, Amount: futureValue})
	}
	return vestings
}

// annualContribution computes one year's worth of a recurring contribution
// line: annualized by frequency and stepped up for the years elapsed since
// its start. Zero outside [startYear, endYear].
func annualContribution(amount decimal.Decimal, freq domain.Frequency, stepUpPct decimal.Decimal, startYear, endYear, year int) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if startYear > 0 && year < startYear {
		return decimal.Zero
	}
	if endYear > 0 && year > endYear {
		return decimal.Zero
	}
	annual := amount
	if freq == "" || freq == domain.FrequencyMonthly {
		annual = annual.Mul(decimalTwelve)
	}
	elapsed := 0
	if startYear > 0 && year > startYear {
		elapsed = year - startYear
	}
	if elapsed > 0 && stepUpPct.GreaterThan(decimal.Zero) {
		annual = annual.Mul(onePlusPct(stepUpPct).Pow(decimal.NewFromInt(int64(elapsed))))
	}
	return annual
}

// BucketContributionsForYear gathers the year's scheduled inflows into each
// bucket: asset contribution schedules plus investment commitments routed by
// label classification.
func BucketContributionsForYear(assets []domain.Asset, commitments []domain.InvestmentCommitment, year int) domain.BucketAmounts {
	contributions := domain.NewBucketAmounts()
	for i := range assets {
		a := &assets[i]
		if a.MonthlyContribution.LessThanOrEqual(decimal.Zero) {
			continue
		}
		bucket, ok := ClassifyAsset(a)
		if !ok {
			continue
		}
		amount := annualContribution(a.MonthlyContribution, a.ContributionFrequency, a.ContributionStepUp, a.ContributionStartYear, a.ContributionEndYear, year)
		contributions[bucket] = contributions[bucket].Add(amount)
	}
	for i := range commitments {
		c := &commitments[i]
		bucket, ok := ClassifyLabel(c.Label)
		if !ok {
			continue
		}
		amount := annualContribution(c.Amount, c.Frequency, c.StepUp, c.StartYear, c.EndYear, year)
		contributions[bucket] = contributions[bucket].Add(amount)
	}
	return contributions
}
