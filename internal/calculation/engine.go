package calculation

import (
	"fmt"
	"sort"

	"github.com/arthayojana/arthayojana/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CalculationEngine orchestrates the projection run. It holds no state
// between runs; every invocation derives a fresh timeline from the snapshot
// and the explicit currentYear.
type CalculationEngine struct {
	logger *zap.Logger
}

// NewCalculationEngine creates an engine. A nil logger is replaced with a
// no-op logger so the engine stays usable in pure contexts.
func NewCalculationEngine(logger *zap.Logger) *CalculationEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculationEngine{logger: logger}
}

// ProjectTimeline runs the year-by-year cashflow and liquidation simulation
// from currentYear+1 through the life-expectancy year and returns the
// materialized timeline. The snapshot is never mutated.
func (ce *CalculationEngine) ProjectTimeline(state *domain.FinanceState, currentYear int) []domain.TimelineRow {
	if state == nil {
		return nil
	}
	retirementYear := state.Profile.RetirementYear()
	endYear := state.Profile.LifeExpectancyYear()
	firstYear := currentYear + 1
	if endYear < firstYear {
		return nil
	}

	goals := make([]domain.Goal, len(state.Goals))
	hasRetirementGoal := false
	for i := range state.Goals {
		goals[i] = NormalizeRetirementGoal(state.Goals[i], &state.Profile)
		if goals[i].Type == domain.GoalTypeRetirement {
			hasRetirementGoal = true
		}
	}

	// Funding order: ascending priority, stable by insertion order.
	order := make([]int, len(goals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return goals[order[a]].Priority < goals[order[b]].Priority
	})

	schedules := make([]*domain.LoanSchedule, 0, len(state.Loans))
	for i := range state.Loans {
		schedules = append(schedules, BuildAmortizationSchedule(&state.Loans[i], ScheduleOptions{CurrentYear: currentYear}))
	}

	rates := BlendedBucketReturns(state.Assets)
	if state.RiskProfile != nil && state.RiskProfile.ExpectedReturnRate.GreaterThan(decimal.Zero) {
		rates[domain.BucketNetSavings] = state.RiskProfile.ExpectedReturnRate
	}
	if state.ReturnRateOverride != nil {
		rates[domain.BucketNetSavings] = *state.ReturnRateOverride
	}

	liquidationOrder := state.LiquidationOrder
	if len(liquidationOrder) == 0 {
		liquidationOrder = fallbackLiquidationOrder(rates)
	}

	vestByYear := make(map[int][]AssetVesting)
	for _, v := range AssetVestings(state.Assets, currentYear) {
		vestByYear[v.Year] = append(vestByYear[v.Year], v)
	}

	incomeGrowth := weightedIncomeGrowth(state)
	balances := domain.NewBucketAmounts()
	timeline := make([]domain.TimelineRow, 0, endYear-firstYear+1)

	for year := firstYear; year <= endYear; year++ {
		row := domain.TimelineRow{Year: year}
		row.Opening = balances.Clone()

		contributions := BucketContributionsForYear(state.Assets, state.Commitments, year)
		committed := contributions.Total()
		for _, v := range vestByYear[year] {
			row.Opening[v.Bucket] = row.Opening[v.Bucket].Add(v.Amount)
		}
		row.Contributions = contributions

		inflow := ce.annualInflow(state, year, currentYear, retirementYear, incomeGrowth)
		expenses := ce.annualExpenses(state, year, currentYear, retirementYear, hasRetirementGoal)
		debt := DebtServiceForYear(schedules, year)

		// The floating corpus closed last year is swept into this year's
		// cash rather than sitting in the liquidation pool, so it is never
		// counted twice.
		corpus := row.Opening[domain.BucketNetSavings]
		net := inflow.Sub(expenses).Sub(debt).Sub(committed).Add(corpus)

		row.Inflow = inflow
		row.Expenses = expenses
		row.DebtService = debt
		row.Committed = committed
		row.NetAvailable = net

		demands := make([]decimal.Decimal, len(goals))
		totalDemand := decimal.Zero
		for i := range goals {
			demands[i] = GoalAmountForYear(&goals[i], year, &state.Profile, state.Discount, currentYear)
			totalDemand = totalDemand.Add(demands[i])
		}
		row.TotalGoalDemand = totalDemand

		available := domain.NewBucketAmounts()
		totalBucketAssets := decimal.Zero
		for _, b := range domain.AllBuckets {
			if b == domain.BucketNetSavings {
				continue
			}
			available[b] = row.Opening[b].Add(contributions[b])
			totalBucketAssets = totalBucketAssets.Add(available[b])
		}

		fundable := totalBucketAssets.Add(net)
		if fundable.LessThan(decimal.Zero) {
			fundable = decimal.Zero
		}
		fundedTotal := totalDemand
		if fundable.LessThan(fundedTotal) {
			fundedTotal = fundable
		}
		row.GoalFundedTotal = fundedTotal
		if totalDemand.GreaterThan(decimal.Zero) {
			row.FundingRatio = fundedTotal.Div(totalDemand).Mul(decimalHundred)
		} else {
			row.FundingRatio = decimalHundred
		}

		liquidationNeed := fundedTotal.Sub(net)
		if liquidationNeed.LessThan(decimal.Zero) {
			liquidationNeed = decimal.Zero
		}
		row.Withdrawals = domain.NewBucketAmounts()
		liquidated := decimal.Zero
		if liquidationNeed.GreaterThan(decimal.Zero) {
			ce.logger.Debug(fmt.Sprintf("year %d: liquidating %s to cover goal demand", year, liquidationNeed.StringFixed(2)),
				zap.String("op", "calculation.ProjectTimeline"),
			)
			for _, b := range liquidationOrder {
				if liquidationNeed.LessThanOrEqual(decimal.Zero) {
					break
				}
				draw := available[b]
				if draw.GreaterThan(liquidationNeed) {
					draw = liquidationNeed
				}
				if draw.LessThanOrEqual(decimal.Zero) {
					continue
				}
				row.Withdrawals[b] = row.Withdrawals[b].Add(draw)
				available[b] = available[b].Sub(draw)
				liquidationNeed = liquidationNeed.Sub(draw)
				liquidated = liquidated.Add(draw)
			}
		}

		row.Goals = apportionGoals(goals, order, demands, net, liquidated)

		residual := net.Sub(totalDemand)
		if residual.LessThan(decimal.Zero) {
			residual = decimal.Zero
		}
		row.Contributions[domain.BucketNetSavings] = residual

		row.Returns = domain.NewBucketAmounts()
		row.Closing = domain.NewBucketAmounts()
		for _, b := range domain.AllBuckets {
			base := available[b]
			if b == domain.BucketNetSavings {
				base = residual
			}
			closing := base.Mul(onePlusPct(rates[b]))
			row.Returns[b] = closing.Sub(base)
			row.Closing[b] = closing
		}

		balances = row.Closing
		timeline = append(timeline, row)
	}

	return timeline
}

// apportionGoals splits the year's funding across goals in priority order:
// each goal draws first from remaining net cash, then from the liquidated
// pool, until its demand is met or both pools run dry.
func apportionGoals(goals []domain.Goal, order []int, demands []decimal.Decimal, net, liquidated decimal.Decimal) []domain.GoalYearResult {
	cashPool := net
	if cashPool.LessThan(decimal.Zero) {
		// A deficit consumes liquidation proceeds before any goal does.
		liquidated = liquidated.Add(cashPool)
		cashPool = decimal.Zero
	}
	assetPool := liquidated
	if assetPool.LessThan(decimal.Zero) {
		assetPool = decimal.Zero
	}

	results := make([]domain.GoalYearResult, len(goals))
	for _, idx := range order {
		g := &goals[idx]
		required := demands[idx]
		res := domain.GoalYearResult{
			GoalID:      g.ID,
			Description: g.Description,
			Priority:    g.Priority,
			Required:    required,
		}

		fromCash := required
		if fromCash.GreaterThan(cashPool) {
			fromCash = cashPool
		}
		cashPool = cashPool.Sub(fromCash)

		remaining := required.Sub(fromCash)
		fromAssets := remaining
		if fromAssets.GreaterThan(assetPool) {
			fromAssets = assetPool
		}
		assetPool = assetPool.Sub(fromAssets)

		res.FundedFromCash = fromCash
		res.FundedFromAssets = fromAssets
		if required.GreaterThan(decimal.Zero) {
			res.AchievementPct = fromCash.Add(fromAssets).Div(required).Mul(decimalHundred)
		} else {
			res.AchievementPct = decimalHundred
		}
		results[idx] = res
	}
	return results
}

// fallbackLiquidationOrder sells lowest-yield buckets first. The floating
// corpus is excluded; it is swept into cash directly.
func fallbackLiquidationOrder(rates map[domain.Bucket]decimal.Decimal) []domain.Bucket {
	order := make([]domain.Bucket, 0, len(domain.AllBuckets)-1)
	for _, b := range domain.AllBuckets {
		if b != domain.BucketNetSavings {
			order = append(order, b)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rates[order[a]].LessThan(rates[order[b]])
	})
	return order
}

// weightedIncomeGrowth blends every earner's expected annual increase,
// weighted by their share of household income, in percent.
func weightedIncomeGrowth(state *domain.FinanceState) decimal.Decimal {
	totalIncome := state.Profile.Income.Total()
	weighted := totalIncome.Mul(state.Profile.Income.ExpectedIncrease)
	for i := range state.Family {
		income := state.Family[i].Income.Total()
		totalIncome = totalIncome.Add(income)
		weighted = weighted.Add(income.Mul(state.Family[i].Income.ExpectedIncrease))
	}
	if totalIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return weighted.Div(totalIncome)
}

// annualInflow computes the year's income: explicit Income cashflow lines
// when any exist, otherwise the household income records compounded at the
// blended growth rate. Earned components stop at the retirement year;
// rental and investment income continue.
func (ce *CalculationEngine) annualInflow(state *domain.FinanceState, year, currentYear, retirementYear int, incomeGrowth decimal.Decimal) decimal.Decimal {
	hasIncomeLines := false
	for i := range state.Cashflows {
		if state.Cashflows[i].FlowType == domain.FlowIncome {
			hasIncomeLines = true
			break
		}
	}
	if hasIncomeLines {
		total := decimal.Zero
		for i := range state.Cashflows {
			c := &state.Cashflows[i]
			if c.FlowType != domain.FlowIncome {
				continue
			}
			total = total.Add(cashflowAmountForYear(c, year))
		}
		return total
	}

	monthly := decimal.Zero
	incomes := []domain.DetailedIncome{state.Profile.Income}
	for i := range state.Family {
		incomes = append(incomes, state.Family[i].Income)
	}
	for _, inc := range incomes {
		if year <= retirementYear {
			monthly = monthly.Add(inc.Total())
		} else {
			monthly = monthly.Add(inc.Rental).Add(inc.Investment)
		}
	}
	annual := monthly.Mul(decimalTwelve)
	if year > currentYear && incomeGrowth.GreaterThan(decimal.Zero) {
		annual = annual.Mul(onePlusPct(incomeGrowth).Pow(decimal.NewFromInt(int64(year - currentYear))))
	}
	return annual
}

// annualExpenses computes the year's living expenses plus explicit Expense
// cashflow lines. When a Retirement goal exists, living expenses after the
// retirement year move into that goal's demand instead of the outflow.
func (ce *CalculationEngine) annualExpenses(state *domain.FinanceState, year, currentYear, retirementYear int, hasRetirementGoal bool) decimal.Decimal {
	total := decimal.Zero
	defaultRate := decimal.Zero
	if state.Discount != nil {
		defaultRate = state.Discount.DefaultInflationRate
	}

	includeLiving := !(hasRetirementGoal && year > retirementYear)
	if includeLiving {
		if len(state.Expenses) > 0 {
			for i := range state.Expenses {
				e := &state.Expenses[i]
				rate := e.InflationRate
				if rate.IsZero() {
					rate = defaultRate
				}
				annual := e.MonthlyAmount.Mul(decimalTwelve)
				total = total.Add(Inflate(annual, currentYear, year, nil, rate, 0))
			}
		} else {
			annual := state.Profile.MonthlyExpenses.Mul(decimalTwelve)
			total = total.Add(Inflate(annual, currentYear, year, state.Discount, defaultRate, retirementYear))
		}
		for i := range state.Family {
			annual := state.Family[i].MonthlyExpenses.Mul(decimalTwelve)
			total = total.Add(Inflate(annual, currentYear, year, state.Discount, defaultRate, retirementYear))
		}
	}

	for i := range state.Cashflows {
		c := &state.Cashflows[i]
		if c.FlowType != domain.FlowExpense {
			continue
		}
		total = total.Add(cashflowAmountForYear(c, year))
	}
	return total
}

// cashflowAmountForYear annualizes one cashflow line for a year, applying
// its growth escalator (step-up when no growth rate is set).
func cashflowAmountForYear(c *domain.CashflowItem, year int) decimal.Decimal {
	escalator := c.GrowthRate
	if escalator.IsZero() {
		escalator = c.StepUp
	}
	return annualContribution(c.Amount, c.Frequency, escalator, c.StartYear, c.EndYear, year)
}
