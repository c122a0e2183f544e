package calculation

import (
	"github.com/arthayojana/arthayojana/internal/domain"
	"github.com/shopspring/decimal"
)

// Default rates for the HLV sizing when the snapshot carries no risk
// profile or discount settings, in percent.
var (
	defaultHLVInvestmentRate = decimal.NewFromInt(8)
	defaultHLVInflationRate  = decimal.NewFromInt(6)
)

// Thresholds the recommendation rules test against.
var (
	emergencyFundFloorMonths = decimal.NewFromInt(6)
	debtRatioCeiling         = decimal.NewFromFloat(0.40)
	savingsRateFloor         = decimal.NewFromFloat(0.20)
)

// Audit derives the point-in-time ratio bundle and the ordered
// recommendations from the snapshot. Ratios are fractions (0.4 = 40%);
// EmergencyFundMonths is in months.
func (ce *CalculationEngine) Audit(state *domain.FinanceState, currentYear int) *domain.AuditReport {
	monthlyIncome := state.MonthlyHouseholdIncome()
	monthlyExpenses := state.MonthlyHouseholdExpenses()

	monthlyDebt := decimal.Zero
	totalOutstanding := decimal.Zero
	for i := range state.Loans {
		loan := &state.Loans[i]
		totalOutstanding = totalOutstanding.Add(loan.OutstandingAmount)
		emi := loan.EMI
		if emi.LessThanOrEqual(decimal.Zero) {
			months, _ := InferTenureMonths(loan)
			emi = CalculateEMI(loan.OutstandingAmount, loan.InterestRate, months)
		}
		monthlyDebt = monthlyDebt.Add(emi)
	}

	monthlyCommitted := decimal.Zero
	for i := range state.Commitments {
		c := &state.Commitments[i]
		amount := c.Amount
		if c.Frequency == domain.FrequencyYearly {
			amount = amount.Div(decimalTwelve)
		}
		monthlyCommitted = monthlyCommitted.Add(amount)
	}

	report := &domain.AuditReport{
		DebtRatio:     safeRatio(monthlyDebt, monthlyIncome),
		SurvivalRatio: safeRatio(monthlyExpenses, monthlyIncome),
	}
	surplus := monthlyIncome.Sub(monthlyExpenses).Sub(monthlyDebt).Sub(monthlyCommitted)
	if monthlyIncome.GreaterThan(decimal.Zero) {
		report.SuccessRatio = surplus.Div(monthlyIncome)
	}

	liquid := decimal.Zero
	for i := range state.Assets {
		bucket, ok := ClassifyAsset(&state.Assets[i])
		if ok && bucket == domain.BucketSavings {
			liquid = liquid.Add(state.Assets[i].CurrentValue)
		}
	}
	monthlyOutgo := monthlyExpenses.Add(monthlyDebt).Add(monthlyCommitted)
	if monthlyOutgo.GreaterThan(decimal.Zero) {
		report.EmergencyFundMonths = liquid.Div(monthlyOutgo)
	}

	report.InsuranceGap = ce.insuranceGap(state, currentYear, totalOutstanding, monthlyExpenses)
	report.Recommendations = buildRecommendations(state, report, surplus)
	return report
}

// insuranceGap sizes the Human-Life-Value shortfall: immediate needs plus
// the present value of expense replacement plus debts and goal targets, net
// of in-force life cover and goal-available assets. Floored at zero.
func (ce *CalculationEngine) insuranceGap(state *domain.FinanceState, currentYear int, totalOutstanding, monthlyExpenses decimal.Decimal) decimal.Decimal {
	investmentRate := defaultHLVInvestmentRate
	if state.RiskProfile != nil && state.RiskProfile.ExpectedReturnRate.GreaterThan(decimal.Zero) {
		investmentRate = state.RiskProfile.ExpectedReturnRate
	}
	inflationRate := defaultHLVInflationRate
	if state.Discount != nil && state.Discount.DefaultInflationRate.GreaterThan(decimal.Zero) {
		inflationRate = state.Discount.DefaultInflationRate
	}

	annualExpenses := monthlyExpenses.Mul(decimalTwelve)
	// One year of expenses as the transition buffer.
	immediateNeeds := annualExpenses

	replacementYears := state.Profile.LifeExpectancyYear() - currentYear
	realRate := RealRate(investmentRate, inflationRate)
	replacementPV := annualExpenses.Mul(PVAnnuityFactor(realRate, replacementYears))

	goalRequirements := decimal.Zero
	for i := range state.Goals {
		goal := NormalizeRetirementGoal(state.Goals[i], &state.Profile)
		if goal.Type == domain.GoalTypeRetirement {
			// Retirement expenses are already inside the replacement PV.
			continue
		}
		remaining := goal.TargetAmountToday.Sub(goal.CurrentAmount)
		if remaining.GreaterThan(decimal.Zero) {
			goalRequirements = goalRequirements.Add(remaining)
		}
	}

	existingCover := decimal.Zero
	for i := range state.Insurances {
		existingCover = existingCover.Add(state.Insurances[i].Cover)
	}

	usableAssets := decimal.Zero
	for i := range state.Assets {
		if !state.Assets[i].AvailableForGoals {
			continue
		}
		if _, ok := ClassifyAsset(&state.Assets[i]); ok {
			usableAssets = usableAssets.Add(state.Assets[i].CurrentValue)
		}
	}

	gap := immediateNeeds.Add(replacementPV).Add(totalOutstanding).Add(goalRequirements).
		Sub(existingCover).Sub(usableAssets)
	if gap.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return gap
}

// buildRecommendations evaluates the rule list in fixed priority order:
// deficit, emergency fund, debt load, insurance gap, savings rate, missing
// goals, missing risk profile, all clear.
func buildRecommendations(state *domain.FinanceState, report *domain.AuditReport, monthlySurplus decimal.Decimal) []domain.Recommendation {
	var recs []domain.Recommendation

	if monthlySurplus.LessThan(decimal.Zero) {
		recs = append(recs, domain.Recommendation{
			Code:     "deficit",
			Severity: "critical",
			Message:  "Monthly outflows exceed income; the plan runs a cash deficit before any goal funding.",
		})
	}
	if report.EmergencyFundMonths.LessThan(emergencyFundFloorMonths) {
		recs = append(recs, domain.Recommendation{
			Code:     "emergency-fund",
			Severity: "high",
			Message:  "Liquid reserves cover fewer than six months of commitments; build the emergency fund first.",
		})
	}
	if report.DebtRatio.GreaterThan(debtRatioCeiling) {
		recs = append(recs, domain.Recommendation{
			Code:     "debt-load",
			Severity: "high",
			Message:  "Debt service takes more than 40% of income; consider prepaying or restructuring loans.",
		})
	}
	if report.InsuranceGap.GreaterThan(decimal.Zero) {
		recs = append(recs, domain.Recommendation{
			Code:     "insurance-gap",
			Severity: "medium",
			Message:  "Life cover falls short of the household's human-life-value need.",
		})
	}
	if report.SuccessRatio.LessThan(savingsRateFloor) {
		recs = append(recs, domain.Recommendation{
			Code:     "savings-rate",
			Severity: "medium",
			Message:  "Less than 20% of income is left after commitments; goal funding capacity is thin.",
		})
	}
	if len(state.Goals) == 0 {
		recs = append(recs, domain.Recommendation{
			Code:     "no-goals",
			Severity: "low",
			Message:  "No goals are defined; the projection has nothing to fund.",
		})
	}
	if state.RiskProfile == nil {
		recs = append(recs, domain.Recommendation{
			Code:     "no-risk-profile",
			Severity: "low",
			Message:  "No risk profile is set; corpus returns fall back to defaults.",
		})
	}
	if len(recs) == 0 {
		recs = append(recs, domain.Recommendation{
			Code:     "all-clear",
			Severity: "info",
			Message:  "No issues flagged by the rule set.",
		})
	}
	return recs
}

// safeRatio guards the zero-income case: with nothing coming in, any
// positive numerator reads as a full 100% ratio rather than NaN.
func safeRatio(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.GreaterThan(decimal.Zero) {
		return numerator.Div(denominator)
	}
	if numerator.GreaterThan(decimal.Zero) {
		return decimalOne
	}
	return decimal.Zero
}
