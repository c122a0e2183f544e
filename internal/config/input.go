// Package config loads and validates FinanceState snapshots. Validation
// enforces the entry-form ranges here so the calculation engine can assume
// numerically sane inputs.
package config

import (
	"fmt"
	"os"

	"github.com/arthayojana/arthayojana/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Entry-form ranges, in percent.
var (
	maxGrowthRate       = decimal.NewFromInt(30)
	minInterestRate     = decimal.NewFromInt(1)
	maxInterestRate     = decimal.NewFromInt(40)
	maxGoalInflation    = decimal.NewFromInt(15)
	maxIncomeIncrease   = decimal.NewFromInt(25)
	relativeOffsetLimit = 5
)

// InputParser handles parsing of state snapshot files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a FinanceState from a YAML (or JSON) file, assigns
// missing entity IDs, and validates it.
func (ip *InputParser) LoadFromFile(filename string, currentYear int) (*domain.FinanceState, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var state domain.FinanceState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	ip.AssignIDs(&state)
	if err := ip.ValidateState(&state, currentYear); err != nil {
		return nil, fmt.Errorf("state validation failed: %w", err)
	}
	return &state, nil
}

// AssignIDs fills empty entity IDs so weak references stay resolvable.
func (ip *InputParser) AssignIDs(state *domain.FinanceState) {
	for i := range state.Family {
		if state.Family[i].ID == "" {
			state.Family[i].ID = uuid.NewString()
		}
	}
	for i := range state.Assets {
		if state.Assets[i].ID == "" {
			state.Assets[i].ID = uuid.NewString()
		}
	}
	for i := range state.Loans {
		if state.Loans[i].ID == "" {
			state.Loans[i].ID = uuid.NewString()
		}
	}
	for i := range state.Goals {
		if state.Goals[i].ID == "" {
			state.Goals[i].ID = uuid.NewString()
		}
	}
	for i := range state.Commitments {
		if state.Commitments[i].ID == "" {
			state.Commitments[i].ID = uuid.NewString()
		}
	}
	for i := range state.Insurances {
		if state.Insurances[i].ID == "" {
			state.Insurances[i].ID = uuid.NewString()
		}
	}
}

// ValidateState validates the loaded snapshot.
func (ip *InputParser) ValidateState(state *domain.FinanceState, currentYear int) error {
	if err := ip.validateProfile(&state.Profile); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}
	for i := range state.Assets {
		if err := ip.validateAsset(&state.Assets[i], currentYear); err != nil {
			return fmt.Errorf("asset %d (%s) validation failed: %w", i, state.Assets[i].Name, err)
		}
	}
	for i := range state.Loans {
		if err := ip.validateLoan(&state.Loans[i]); err != nil {
			return fmt.Errorf("loan %d (%s) validation failed: %w", i, state.Loans[i].Type, err)
		}
	}
	for i := range state.Goals {
		if err := ip.validateGoal(&state.Goals[i]); err != nil {
			return fmt.Errorf("goal %d (%s) validation failed: %w", i, state.Goals[i].Description, err)
		}
	}
	for i := range state.Cashflows {
		if err := ip.validateWindow(state.Cashflows[i].StartYear, state.Cashflows[i].EndYear); err != nil {
			return fmt.Errorf("cashflow %d (%s) validation failed: %w", i, state.Cashflows[i].Label, err)
		}
	}
	for i := range state.Commitments {
		if err := ip.validateWindow(state.Commitments[i].StartYear, state.Commitments[i].EndYear); err != nil {
			return fmt.Errorf("commitment %d (%s) validation failed: %w", i, state.Commitments[i].Label, err)
		}
	}
	if err := ip.validateLiquidationOrder(state.LiquidationOrder); err != nil {
		return fmt.Errorf("liquidation order validation failed: %w", err)
	}

	ip.clampRates(state)
	return nil
}

func (ip *InputParser) validateProfile(profile *domain.Profile) error {
	if profile.DOB == "" {
		return fmt.Errorf("date of birth is required")
	}
	if profile.BirthYear() == 0 {
		return fmt.Errorf("date of birth %q is not parseable", profile.DOB)
	}
	if profile.RetirementAge <= 0 {
		return fmt.Errorf("retirement age is required")
	}
	if profile.RetirementAge >= profile.LifeExpectancy {
		return fmt.Errorf("retirement age (%d) must be below life expectancy (%d)",
			profile.RetirementAge, profile.LifeExpectancy)
	}
	return nil
}

func (ip *InputParser) validateAsset(asset *domain.Asset, currentYear int) error {
	if asset.CurrentValue.LessThan(decimal.Zero) {
		return fmt.Errorf("current value cannot be negative")
	}
	if asset.PurchaseYear > currentYear {
		return fmt.Errorf("purchase year (%d) cannot be in the future", asset.PurchaseYear)
	}
	if asset.AvailableFrom != 0 && asset.AvailableFrom < asset.PurchaseYear {
		return fmt.Errorf("available-from year (%d) cannot precede purchase year (%d)",
			asset.AvailableFrom, asset.PurchaseYear)
	}
	if asset.ContributionStartYear != 0 && asset.ContributionEndYear != 0 &&
		asset.ContributionStartYear > asset.ContributionEndYear {
		return fmt.Errorf("contribution start year (%d) is after end year (%d)",
			asset.ContributionStartYear, asset.ContributionEndYear)
	}
	return nil
}

func (ip *InputParser) validateLoan(loan *domain.Loan) error {
	if loan.OutstandingAmount.LessThan(decimal.Zero) {
		return fmt.Errorf("outstanding amount cannot be negative")
	}
	if loan.SanctionedAmount.GreaterThan(decimal.Zero) &&
		loan.SanctionedAmount.LessThan(loan.OutstandingAmount) {
		return fmt.Errorf("sanctioned amount must be at least the outstanding amount")
	}
	if loan.InterestRate.LessThan(minInterestRate) || loan.InterestRate.GreaterThan(maxInterestRate) {
		return fmt.Errorf("interest rate must be between 1%% and 40%%")
	}
	return nil
}

func (ip *InputParser) validateGoal(goal *domain.Goal) error {
	if goal.TargetAmountToday.LessThan(decimal.Zero) {
		return fmt.Errorf("target amount cannot be negative")
	}
	if goal.InflationRate.LessThan(decimal.Zero) || goal.InflationRate.GreaterThan(maxGoalInflation) {
		return fmt.Errorf("inflation rate must be between 0%% and 15%%")
	}
	for _, rd := range []domain.RelativeDate{goal.StartDate, goal.EndDate} {
		if rd.Type == domain.RelativeRetirement || rd.Type == domain.RelativeLifeExpectancy {
			if rd.Value < -relativeOffsetLimit || rd.Value > relativeOffsetLimit {
				return fmt.Errorf("%s offset %d is outside [-5, 5]", rd.Type, rd.Value)
			}
		}
	}
	if goal.Type == domain.GoalTypeRetirement && goal.RetirementHandling == "" {
		return fmt.Errorf("retirement goals require a handling mode")
	}
	return nil
}

func (ip *InputParser) validateWindow(startYear, endYear int) error {
	if startYear != 0 && endYear != 0 && startYear > endYear {
		return fmt.Errorf("start year (%d) is after end year (%d)", startYear, endYear)
	}
	return nil
}

func (ip *InputParser) validateLiquidationOrder(order []domain.Bucket) error {
	seen := make(map[domain.Bucket]bool, len(order))
	for _, b := range order {
		if b == domain.BucketNetSavings {
			return fmt.Errorf("the floating corpus bucket cannot appear in the liquidation order")
		}
		if seen[b] {
			return fmt.Errorf("bucket %s appears twice", b)
		}
		seen[b] = true
	}
	return nil
}

// clampRates applies the entry-form clamps rather than rejecting: growth
// 0-30, expected increase 0-25, the same behaviour the forms enforce.
func (ip *InputParser) clampRates(state *domain.FinanceState) {
	clamp := func(v decimal.Decimal, max decimal.Decimal) decimal.Decimal {
		if v.LessThan(decimal.Zero) {
			return decimal.Zero
		}
		if v.GreaterThan(max) {
			return max
		}
		return v
	}
	state.Profile.Income.ExpectedIncrease = clamp(state.Profile.Income.ExpectedIncrease, maxIncomeIncrease)
	for i := range state.Family {
		state.Family[i].Income.ExpectedIncrease = clamp(state.Family[i].Income.ExpectedIncrease, maxIncomeIncrease)
	}
	for i := range state.Assets {
		state.Assets[i].GrowthRate = clamp(state.Assets[i].GrowthRate, maxGrowthRate)
	}
}
