package calculation

import (
	"github.com/arthayojana/arthayojana/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalWindow resolves a goal's start and end calendar years against the
// profile's anchors. An unset end date collapses to the start year.
func GoalWindow(goal *domain.Goal, profile *domain.Profile) (int, int) {
	birthYear := profile.BirthYear()
	start := goal.StartDate.Resolve(birthYear, profile.RetirementAge, profile.LifeExpectancy)
	end := goal.EndDate.Resolve(birthYear, profile.RetirementAge, profile.LifeExpectancy)
	if end < start {
		end = start
	}
	return start, end
}

// NormalizeRetirementGoal derives TargetAmountToday for Retirement-type
// goals from their handling mode: CurrentExpenses annualizes the household's
// present monthly expenses, Estimate uses the user's annual figure, and
// Detailed sums the itemized retirement expense lines. Other goal types are
// returned unchanged.
func NormalizeRetirementGoal(goal domain.Goal, profile *domain.Profile) domain.Goal {
	if goal.Type != domain.GoalTypeRetirement {
		return goal
	}
	switch goal.RetirementHandling {
	case domain.RetirementCurrentExpenses:
		goal.TargetAmountToday = profile.MonthlyExpenses.Mul(decimalTwelve)
	case domain.RetirementEstimate:
		goal.TargetAmountToday = goal.EstimatedAnnualExpense
	case domain.RetirementDetailed:
		total := decimal.Zero
		for i := range goal.DetailedExpenses {
			total = total.Add(goal.DetailedExpenses[i].MonthlyAmount)
		}
		goal.TargetAmountToday = total.Mul(decimalTwelve)
	}
	return goal
}

// StartGoalAmount inflates the goal's today-value to its start year. This is
// the figure cached on the goal at save time; GoalAmountForYear prefers the
// cache when bucket inflation is off.
func StartGoalAmount(goal *domain.Goal, profile *domain.Profile, settings *domain.DiscountSettings, currentYear int) decimal.Decimal {
	startYear, _ := GoalWindow(goal, profile)
	return Inflate(goal.TargetAmountToday, currentYear, startYear, settings, goal.InflationRate, profile.RetirementYear())
}

// GoalAmountForYear computes the nominal cash a goal demands in one year:
// zero outside its window, the full inflated amount in the end year for
// one-time goals, and the recurring amount (annualized for monthly goals,
// gated by the interval for periodic goals) inflated from the start-year
// base for the elapsed years since start.
func GoalAmountForYear(goal *domain.Goal, year int, profile *domain.Profile, settings *domain.DiscountSettings, currentYear int) decimal.Decimal {
	startYear, endYear := GoalWindow(goal, profile)
	if year < startYear || year > endYear {
		return decimal.Zero
	}

	var startAmount decimal.Decimal
	switch {
	case settings != nil && settings.UseBucketInflation:
		startAmount = Inflate(goal.TargetAmountToday, currentYear, startYear, settings, goal.InflationRate, profile.RetirementYear())
	case goal.StartGoalAmount.GreaterThan(decimal.Zero):
		startAmount = goal.StartGoalAmount
	default:
		startAmount = Inflate(goal.TargetAmountToday, currentYear, startYear, nil, goal.InflationRate, 0)
	}

	if !goal.IsRecurring {
		if year == endYear {
			return startAmount
		}
		return decimal.Zero
	}

	elapsed := year - startYear
	interval := goal.FrequencyIntervalYears
	if goal.Frequency == domain.FrequencyOnceIn10Years {
		interval = 10
	}
	if interval > 1 && elapsed%interval != 0 {
		return decimal.Zero
	}

	amount := Inflate(startAmount, startYear, year, settings, goal.InflationRate, profile.RetirementYear())
	if goal.Frequency == domain.FrequencyMonthly {
		amount = amount.Mul(decimalTwelve)
	}
	return amount
}

// SyncGoalLoan reconciles a goal's financing bridge against the loan list
// and returns the updated list. Enabling the bridge creates or updates the
// synced Loan record; disabling it removes the record. The input slice is
// not mutated.
func SyncGoalLoan(goal *domain.Goal, loans []domain.Loan) []domain.Loan {
	out := make([]domain.Loan, 0, len(loans)+1)
	var existing *domain.Loan
	for i := range loans {
		if goal.Loan != nil && goal.Loan.LoanID != "" && loans[i].ID == goal.Loan.LoanID {
			existing = &loans[i]
			continue
		}
		out = append(out, loans[i])
	}

	if goal.Loan == nil || !goal.Loan.Enabled {
		return out
	}

	synced := domain.Loan{
		ID:                goal.Loan.LoanID,
		Type:              goal.Type,
		Owner:             goal.Owner,
		Source:            "goal-bridge",
		SanctionedAmount:  goal.Loan.Amount,
		OutstandingAmount: goal.Loan.Amount,
		InterestRate:      goal.Loan.InterestRate,
		RemainingTenure:   goal.Loan.TenureYears,
		Notes:             "financing bridge for goal " + goal.Description,
	}
	if synced.ID == "" {
		synced.ID = uuid.NewString()
		goal.Loan.LoanID = synced.ID
	}
	if existing != nil {
		synced.StartYear = existing.StartYear
		synced.LumpSumRepayments = existing.LumpSumRepayments
	}
	return append(out, synced)
}
