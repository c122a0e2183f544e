package calculation

import (
	"testing"

	"github.com/arthayojana/arthayojana/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine_NilLogger(t *testing.T) {
	engine := NewCalculationEngine(nil)
	require.NotNil(t, engine)
	assert.NotNil(t, engine.logger, "nil logger must be replaced with a no-op logger")
}

func engineTestProfile() domain.Profile {
	return domain.Profile{
		Name:           "Ravi",
		DOB:            "1980-01-01",
		RetirementAge:  60,
		LifeExpectancy: 65,
	}
}

func oneTimeGoal(id string, priority int, year int, amount int64) domain.Goal {
	return domain.Goal{
		ID:                id,
		Description:       id,
		Priority:          priority,
		TargetAmountToday: decimal.NewFromInt(amount),
		StartDate:         domain.RelativeDate{Type: domain.RelativeYear, Value: year},
		EndDate:           domain.RelativeDate{Type: domain.RelativeYear, Value: year},
	}
}

func TestProjectTimeline_SpansToLifeExpectancy(t *testing.T) {
	state := &domain.FinanceState{Profile: engineTestProfile()}
	timeline := NewCalculationEngine(nil).ProjectTimeline(state, 2025)

	require.Len(t, timeline, 20, "2026 through 2045 inclusive")
	assert.Equal(t, 2026, timeline[0].Year)
	assert.Equal(t, 2045, timeline[len(timeline)-1].Year)
}

func TestProjectTimeline_LiquidationOrderScenario(t *testing.T) {
	state := &domain.FinanceState{
		Profile: engineTestProfile(),
		Assets: []domain.Asset{
			{
				Name: "bank balance", Category: domain.CategoryLiquid,
				CurrentValue: decimal.NewFromInt(100000), AvailableForGoals: true,
			},
			{
				Name: "gold holdings", Category: domain.CategoryGoldSilver,
				CurrentValue: decimal.NewFromInt(200000), AvailableForGoals: true,
			},
		},
		Goals:            []domain.Goal{oneTimeGoal("car", 1, 2026, 150000)},
		LiquidationOrder: []domain.Bucket{domain.BucketGold, domain.BucketSavings},
	}

	timeline := NewCalculationEngine(nil).ProjectTimeline(state, 2025)
	require.NotEmpty(t, timeline)
	row := timeline[0]

	assert.True(t, row.Opening[domain.BucketSavings].Equal(decimal.NewFromInt(100000)))
	assert.True(t, row.Opening[domain.BucketGold].Equal(decimal.NewFromInt(200000)))

	assert.True(t, row.Withdrawals[domain.BucketGold].Equal(decimal.NewFromInt(150000)),
		"the configured order drains gold first")
	assert.True(t, row.Withdrawals[domain.BucketSavings].IsZero(),
		"savings must remain untouched while gold can cover the shortfall")

	require.Len(t, row.Goals, 1)
	assert.True(t, row.Goals[0].FundedFromAssets.Equal(decimal.NewFromInt(150000)))
	assert.True(t, row.Goals[0].AchievementPct.Equal(decimal.NewFromInt(100)))
}

func TestProjectTimeline_PriorityOrdering(t *testing.T) {
	income := domain.CashflowItem{
		Label: "consulting", FlowType: domain.FlowIncome,
		Amount: decimal.NewFromInt(150000), Frequency: domain.FrequencyYearly,
		StartYear: 2026, EndYear: 2026,
	}
	state := &domain.FinanceState{
		Profile:   engineTestProfile(),
		Cashflows: []domain.CashflowItem{income},
		Goals: []domain.Goal{
			oneTimeGoal("school", 2, 2026, 100000),
			oneTimeGoal("vacation", 1, 2026, 100000),
		},
	}

	timeline := NewCalculationEngine(nil).ProjectTimeline(state, 2025)
	require.NotEmpty(t, timeline)
	row := timeline[0]
	require.Len(t, row.Goals, 2)

	school, vacation := row.Goals[0], row.Goals[1]
	assert.True(t, vacation.AchievementPct.Equal(decimal.NewFromInt(100)),
		"priority 1 is funded first")
	assert.True(t, school.AchievementPct.Equal(decimal.NewFromInt(50)),
		"priority 2 takes what remains")
	assert.True(t, vacation.AchievementPct.GreaterThanOrEqual(school.AchievementPct))
}

func TestProjectTimeline_EqualPriorityStableByInsertionOrder(t *testing.T) {
	income := domain.CashflowItem{
		Label: "consulting", FlowType: domain.FlowIncome,
		Amount: decimal.NewFromInt(150000), Frequency: domain.FrequencyYearly,
		StartYear: 2026, EndYear: 2026,
	}
	state := &domain.FinanceState{
		Profile:   engineTestProfile(),
		Cashflows: []domain.CashflowItem{income},
		Goals: []domain.Goal{
			oneTimeGoal("first", 1, 2026, 100000),
			oneTimeGoal("second", 1, 2026, 100000),
		},
	}

	timeline := NewCalculationEngine(nil).ProjectTimeline(state, 2025)
	row := timeline[0]
	assert.True(t, row.Goals[0].AchievementPct.Equal(decimal.NewFromInt(100)))
	assert.True(t, row.Goals[1].AchievementPct.Equal(decimal.NewFromInt(50)))
}

func TestProjectTimeline_ConservationAcrossYears(t *testing.T) {
	state := &domain.FinanceState{
		Profile: engineTestProfile(),
		Assets: []domain.Asset{
			{
				Name: "savings", Category: domain.CategoryLiquid,
				CurrentValue: decimal.NewFromInt(400000), GrowthRate: decimal.NewFromInt(4),
				AvailableForGoals: true,
			},
			{
				Name: "equity folio", Category: domain.CategoryEquity, SubCategory: "stocks",
				CurrentValue: decimal.NewFromInt(800000), GrowthRate: decimal.NewFromInt(12),
				AvailableForGoals: true,
			},
		},
		Cashflows: []domain.CashflowItem{
			{
				Label: "salary", FlowType: domain.FlowIncome,
				Amount: decimal.NewFromInt(80000), Frequency: domain.FrequencyMonthly,
				StartYear: 2026, EndYear: 2035, GrowthRate: decimal.NewFromInt(8),
			},
			{
				Label: "household", FlowType: domain.FlowExpense,
				Amount: decimal.NewFromInt(60000), Frequency: domain.FrequencyMonthly,
				StartYear: 2026, EndYear: 2045, GrowthRate: decimal.NewFromInt(6),
			},
		},
		Goals: []domain.Goal{
			oneTimeGoal("wedding", 1, 2030, 1200000),
			oneTimeGoal("world tour", 2, 2030, 2500000),
		},
	}

	timeline := NewCalculationEngine(nil).ProjectTimeline(state, 2025)
	require.NotEmpty(t, timeline)

	for _, row := range timeline {
		liquidated := decimal.Zero
		for _, b := range domain.AllBuckets {
			w := row.Withdrawals[b]
			assert.True(t, w.GreaterThanOrEqual(decimal.Zero))
			available := row.Opening[b].Add(row.Contributions[b])
			assert.True(t, w.LessThanOrEqual(available.Add(decimal.NewFromFloat(0.01))),
				"year %d: cannot withdraw more than bucket %s holds", row.Year, b)
			liquidated = liquidated.Add(w)
		}

		funded := decimal.Zero
		for _, g := range row.Goals {
			funded = funded.Add(g.Funded())
			assert.True(t, g.Funded().LessThanOrEqual(g.Required.Add(decimal.NewFromFloat(0.01))),
				"no goal is overfunded")
		}
		limit := row.NetAvailable.Add(liquidated)
		assert.True(t, funded.LessThanOrEqual(limit.Add(decimal.NewFromFloat(0.01))),
			"year %d: funding must not exceed cash plus liquidation", row.Year)
	}
}

func TestProjectTimeline_ResidualCorpusRollsForward(t *testing.T) {
	state := &domain.FinanceState{
		Profile: engineTestProfile(),
		Cashflows: []domain.CashflowItem{
			{
				Label: "salary", FlowType: domain.FlowIncome,
				Amount: decimal.NewFromInt(500000), Frequency: domain.FrequencyYearly,
				StartYear: 2026, EndYear: 2030,
			},
		},
	}

	timeline := NewCalculationEngine(nil).ProjectTimeline(state, 2025)
	require.True(t, len(timeline) >= 2)

	first := timeline[0]
	assert.True(t, first.NetAvailable.Equal(decimal.NewFromInt(500000)))
	assert.True(t, first.Contributions[domain.BucketNetSavings].Equal(decimal.NewFromInt(500000)),
		"the surplus becomes the floating corpus contribution")
	assert.InDelta(t, 500000*1.06, first.Closing[domain.BucketNetSavings].InexactFloat64(), 0.01)

	second := timeline[1]
	assert.InDelta(t, 500000+500000*1.06, second.NetAvailable.InexactFloat64(), 0.01,
		"last year's corpus is swept into this year's cash")
}

func TestProjectTimeline_CorpusNeverGoesNegative(t *testing.T) {
	state := &domain.FinanceState{
		Profile: engineTestProfile(),
		Cashflows: []domain.CashflowItem{
			{
				Label: "rent", FlowType: domain.FlowExpense,
				Amount: decimal.NewFromInt(30000), Frequency: domain.FrequencyMonthly,
				StartYear: 2026, EndYear: 2045,
			},
		},
		Assets: []domain.Asset{
			{
				Name: "savings", Category: domain.CategoryLiquid,
				CurrentValue: decimal.NewFromInt(1000000), AvailableForGoals: true,
			},
		},
	}

	timeline := NewCalculationEngine(nil).ProjectTimeline(state, 2025)
	for _, row := range timeline {
		assert.True(t, row.Contributions[domain.BucketNetSavings].GreaterThanOrEqual(decimal.Zero),
			"year %d: a deficit must liquidate buckets, not produce a negative corpus", row.Year)
		assert.True(t, row.Closing[domain.BucketNetSavings].GreaterThanOrEqual(decimal.Zero))
	}

	// The deficit itself draws down the savings bucket.
	first := timeline[0]
	assert.True(t, first.NetAvailable.LessThan(decimal.Zero))
	assert.True(t, first.Withdrawals[domain.BucketSavings].Equal(decimal.NewFromInt(360000)),
		"the annual deficit is covered by liquidation")
}

func TestProjectTimeline_Deterministic(t *testing.T) {
	state := &domain.FinanceState{
		Profile: engineTestProfile(),
		Assets: []domain.Asset{
			{
				Name: "folio", Category: domain.CategoryEquity, SubCategory: "index",
				CurrentValue: decimal.NewFromInt(750000), GrowthRate: decimal.NewFromInt(11),
				AvailableForGoals: true,
			},
		},
		Goals: []domain.Goal{oneTimeGoal("college", 1, 2032, 2000000)},
	}

	engine := NewCalculationEngine(nil)
	first := engine.ProjectTimeline(state, 2025)
	second := engine.ProjectTimeline(state, 2025)
	assert.Equal(t, first, second, "identical inputs must yield an identical timeline")
}

func TestProjectTimeline_FallbackLiquidationOrderSellsLowestYieldFirst(t *testing.T) {
	state := &domain.FinanceState{
		Profile: engineTestProfile(),
		Assets: []domain.Asset{
			{
				Name: "bank", Category: domain.CategoryLiquid,
				CurrentValue: decimal.NewFromInt(500000), GrowthRate: decimal.NewFromInt(3),
				AvailableForGoals: true,
			},
			{
				Name: "stocks", Category: domain.CategoryEquity, SubCategory: "stocks",
				CurrentValue: decimal.NewFromInt(500000), GrowthRate: decimal.NewFromInt(12),
				AvailableForGoals: true,
			},
		},
		Goals: []domain.Goal{oneTimeGoal("car", 1, 2026, 400000)},
	}

	timeline := NewCalculationEngine(nil).ProjectTimeline(state, 2025)
	row := timeline[0]
	assert.True(t, row.Withdrawals[domain.BucketSavings].Equal(decimal.NewFromInt(400000)),
		"without a configured order the lowest-yield bucket sells first")
	assert.True(t, row.Withdrawals[domain.BucketDirectEquity].IsZero())
}

func TestWeightedIncomeGrowth(t *testing.T) {
	state := &domain.FinanceState{
		Profile: domain.Profile{
			Income: domain.DetailedIncome{
				Salary:           decimal.NewFromInt(100000),
				ExpectedIncrease: decimal.NewFromInt(10),
			},
		},
		Family: []domain.FamilyMember{
			{
				Relation: "Spouse",
				Income: domain.DetailedIncome{
					Salary:           decimal.NewFromInt(50000),
					ExpectedIncrease: decimal.NewFromInt(4),
				},
			},
		},
	}
	growth := weightedIncomeGrowth(state)
	assert.InDelta(t, 8.0, growth.InexactFloat64(), 1e-9, "(100k*10 + 50k*4) / 150k")

	assert.True(t, weightedIncomeGrowth(&domain.FinanceState{}).IsZero(),
		"no income means no growth, not a division by zero")
}
