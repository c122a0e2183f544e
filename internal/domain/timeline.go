package domain

import "github.com/shopspring/decimal"

// TimelineRow is one projection year of the cashflow and liquidation
// simulation. Rows are derived, never persisted, and rebuilt in full on
// every run.
type TimelineRow struct {
	Year int `json:"year"`

	Opening       BucketAmounts `json:"opening"`
	Contributions BucketAmounts `json:"contributions"`
	Withdrawals   BucketAmounts `json:"withdrawals"`
	Returns       BucketAmounts `json:"returns"`
	Closing       BucketAmounts `json:"closing"`

	Inflow      decimal.Decimal `json:"inflow"`
	Expenses    decimal.Decimal `json:"expenses"`
	DebtService decimal.Decimal `json:"debtService"`
	Committed   decimal.Decimal `json:"committed"`

	// NetAvailable is inflow minus expenses, debt service and committed
	// contributions, plus the prior year's floating corpus.
	NetAvailable decimal.Decimal `json:"netAvailable"`

	TotalGoalDemand decimal.Decimal `json:"totalGoalDemand"`
	GoalFundedTotal decimal.Decimal `json:"goalFundedTotal"`

	// FundingRatio is the blended fundable/total ratio, a display
	// simplification; the per-goal AchievementPct is authoritative.
	FundingRatio decimal.Decimal `json:"fundingRatio"`

	Goals []GoalYearResult `json:"goals"`
}

// GoalYearResult is one goal's funding outcome for one year.
type GoalYearResult struct {
	GoalID           string          `json:"goalId"`
	Description      string          `json:"description"`
	Priority         int             `json:"priority"`
	Required         decimal.Decimal `json:"required"`
	FundedFromCash   decimal.Decimal `json:"fundedFromCash"`
	FundedFromAssets decimal.Decimal `json:"fundedFromAssets"`
	AchievementPct   decimal.Decimal `json:"achievementPct"`
}

// Funded is the goal's total funding for the year.
func (g GoalYearResult) Funded() decimal.Decimal {
	return g.FundedFromCash.Add(g.FundedFromAssets)
}

// AuditReport bundles the point-in-time ratios and the ordered
// recommendations derived from them.
type AuditReport struct {
	DebtRatio           decimal.Decimal  `json:"debtRatio"`
	SurvivalRatio       decimal.Decimal  `json:"survivalRatio"`
	SuccessRatio        decimal.Decimal  `json:"successRatio"`
	EmergencyFundMonths decimal.Decimal  `json:"emergencyFundMonths"`
	InsuranceGap        decimal.Decimal  `json:"insuranceGap"`
	Recommendations     []Recommendation `json:"recommendations"`
}

// Recommendation is one rule-based action flag.
type Recommendation struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}
