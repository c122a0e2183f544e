package calculation

import (
	"testing"

	"github.com/arthayojana/arthayojana/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeRatio(t *testing.T) {
	assert.True(t, safeRatio(decimal.NewFromInt(40), decimal.NewFromInt(100)).Equal(decimal.NewFromFloat(0.4)))
	assert.True(t, safeRatio(decimal.NewFromInt(40), decimal.Zero).Equal(decimal.NewFromInt(1)),
		"positive outgo against zero income reads as a full ratio")
	assert.True(t, safeRatio(decimal.Zero, decimal.Zero).IsZero())
}

func TestAudit_HealthyHousehold(t *testing.T) {
	state := &domain.FinanceState{
		Profile: domain.Profile{
			DOB: "1980-01-01", RetirementAge: 60, LifeExpectancy: 85,
			Income:          domain.DetailedIncome{Salary: decimal.NewFromInt(200000)},
			MonthlyExpenses: decimal.NewFromInt(60000),
		},
		Assets: []domain.Asset{
			{
				Name: "bank", Category: domain.CategoryLiquid,
				CurrentValue: decimal.NewFromInt(2000000), AvailableForGoals: true,
			},
		},
		Insurances: []domain.Insurance{
			{Type: "Term", Cover: decimal.NewFromInt(100000000)},
		},
		Goals:       []domain.Goal{{Description: "college", TargetAmountToday: decimal.NewFromInt(1000000)}},
		RiskProfile: &domain.RiskProfile{Category: "Balanced", ExpectedReturnRate: decimal.NewFromInt(10)},
	}

	report := NewCalculationEngine(nil).Audit(state, 2025)
	require.NotNil(t, report)

	assert.True(t, report.DebtRatio.IsZero())
	assert.InDelta(t, 0.3, report.SurvivalRatio.InexactFloat64(), 1e-9)
	assert.InDelta(t, 0.7, report.SuccessRatio.InexactFloat64(), 1e-9)
	assert.InDelta(t, 2000000.0/60000, report.EmergencyFundMonths.InexactFloat64(), 1e-6)
	assert.True(t, report.InsuranceGap.IsZero(), "an oversized cover must floor the gap at zero")

	require.Len(t, report.Recommendations, 1)
	assert.Equal(t, "all-clear", report.Recommendations[0].Code)
}

func TestAudit_DeficitHouseholdRecommendationOrder(t *testing.T) {
	state := &domain.FinanceState{
		Profile: domain.Profile{
			DOB: "1980-01-01", RetirementAge: 60, LifeExpectancy: 85,
			Income:          domain.DetailedIncome{Salary: decimal.NewFromInt(50000)},
			MonthlyExpenses: decimal.NewFromInt(60000),
		},
	}

	report := NewCalculationEngine(nil).Audit(state, 2025)
	codes := make([]string, 0, len(report.Recommendations))
	for _, r := range report.Recommendations {
		codes = append(codes, r.Code)
	}
	assert.Equal(t, []string{
		"deficit",
		"emergency-fund",
		"insurance-gap",
		"savings-rate",
		"no-goals",
		"no-risk-profile",
	}, codes, "rules must fire in their fixed priority order")

	assert.Equal(t, "critical", report.Recommendations[0].Severity)
}

func TestAudit_DebtRatioInfersEMI(t *testing.T) {
	state := &domain.FinanceState{
		Profile: domain.Profile{
			DOB: "1980-01-01", RetirementAge: 60, LifeExpectancy: 85,
			Income: domain.DetailedIncome{Salary: decimal.NewFromInt(100000)},
		},
		Loans: []domain.Loan{
			{
				ID: "home", OutstandingAmount: decimal.NewFromInt(2500000),
				InterestRate: decimal.NewFromFloat(8.5), RemainingTenure: 240,
			},
		},
	}

	report := NewCalculationEngine(nil).Audit(state, 2025)
	assert.InDelta(t, 0.21696, report.DebtRatio.InexactFloat64(), 0.0001,
		"a loan without an explicit EMI derives one from its terms")
}

func TestAudit_DebtLoadRecommendation(t *testing.T) {
	state := &domain.FinanceState{
		Profile: domain.Profile{
			DOB: "1980-01-01", RetirementAge: 60, LifeExpectancy: 85,
			Income: domain.DetailedIncome{Salary: decimal.NewFromInt(40000)},
		},
		Loans: []domain.Loan{
			{
				ID: "home", OutstandingAmount: decimal.NewFromInt(2500000),
				InterestRate: decimal.NewFromFloat(8.5), RemainingTenure: 240,
				EMI: decimal.NewFromInt(21696),
			},
		},
	}

	report := NewCalculationEngine(nil).Audit(state, 2025)
	assert.True(t, report.DebtRatio.GreaterThan(decimal.NewFromFloat(0.40)))

	found := false
	for _, r := range report.Recommendations {
		if r.Code == "debt-load" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAudit_EmergencyFundBoundary(t *testing.T) {
	state := &domain.FinanceState{
		Profile: domain.Profile{
			DOB: "1980-01-01", RetirementAge: 60, LifeExpectancy: 85,
			Income:          domain.DetailedIncome{Salary: decimal.NewFromInt(500000)},
			MonthlyExpenses: decimal.NewFromInt(100000),
		},
		Assets: []domain.Asset{
			{Name: "bank", Category: domain.CategoryLiquid, CurrentValue: decimal.NewFromInt(600000)},
		},
	}

	report := NewCalculationEngine(nil).Audit(state, 2025)
	assert.True(t, report.EmergencyFundMonths.Equal(decimal.NewFromInt(6)))
	for _, r := range report.Recommendations {
		assert.NotEqual(t, "emergency-fund", r.Code, "exactly six months must not trip the floor")
	}
}

func TestAudit_YearlyCommitmentsCountMonthly(t *testing.T) {
	state := &domain.FinanceState{
		Profile: domain.Profile{
			DOB: "1980-01-01", RetirementAge: 60, LifeExpectancy: 85,
			Income: domain.DetailedIncome{Salary: decimal.NewFromInt(100000)},
		},
		Commitments: []domain.InvestmentCommitment{
			{Label: "ELSS lump", Amount: decimal.NewFromInt(120000), Frequency: domain.FrequencyYearly},
		},
	}

	report := NewCalculationEngine(nil).Audit(state, 2025)
	assert.InDelta(t, 0.9, report.SuccessRatio.InexactFloat64(), 1e-9,
		"a yearly commitment enters the surplus at one twelfth")
}

func TestInsuranceGap_GoalRequirementsAndDebt(t *testing.T) {
	ce := NewCalculationEngine(nil)
	state := &domain.FinanceState{
		Profile: domain.Profile{DOB: "1980-01-01", RetirementAge: 60, LifeExpectancy: 85},
		Goals: []domain.Goal{
			{
				Description:       "college",
				TargetAmountToday: decimal.NewFromInt(1000000),
				CurrentAmount:     decimal.NewFromInt(400000),
			},
			{
				Description:            "retire",
				Type:                   domain.GoalTypeRetirement,
				RetirementHandling:     domain.RetirementEstimate,
				EstimatedAnnualExpense: decimal.NewFromInt(900000),
			},
		},
	}

	// Zero monthly expenses isolates the debt and goal terms.
	gap := ce.insuranceGap(state, 2025, decimal.NewFromInt(500000), decimal.Zero)
	assert.True(t, gap.Equal(decimal.NewFromInt(1100000)),
		"gap = outstanding debt + goal shortfall; retirement goals stay out")
}

func TestInsuranceGap_AssetsAndCoverOffset(t *testing.T) {
	ce := NewCalculationEngine(nil)
	state := &domain.FinanceState{
		Profile: domain.Profile{DOB: "1980-01-01", RetirementAge: 60, LifeExpectancy: 85},
		Assets: []domain.Asset{
			{
				Name: "folio", Category: domain.CategoryEquity, SubCategory: "stocks",
				CurrentValue: decimal.NewFromInt(300000), AvailableForGoals: true,
			},
			{
				Name: "car", Category: domain.CategoryPersonal,
				CurrentValue: decimal.NewFromInt(800000), AvailableForGoals: true,
			},
		},
		Insurances: []domain.Insurance{{Type: "Term", Cover: decimal.NewFromInt(100000)}},
	}

	gap := ce.insuranceGap(state, 2025, decimal.NewFromInt(900000), decimal.Zero)
	assert.True(t, gap.Equal(decimal.NewFromInt(500000)),
		"cover and bucketed assets offset the need; personal assets do not")
}
