package domain

import "github.com/shopspring/decimal"

// FlowType distinguishes supply from demand cashflow lines.
type FlowType string

const (
	FlowIncome  FlowType = "Income"
	FlowExpense FlowType = "Expense"
)

// CashflowItem is a recurring income or expense line fed to the simulator
// independently of assets and expense items. GrowthRate is the annual
// escalator applied from StartYear, in percent.
type CashflowItem struct {
	Label      string          `yaml:"label" json:"label"`
	FlowType   FlowType        `yaml:"flowType" json:"flowType"`
	Amount     decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency  Frequency       `yaml:"frequency" json:"frequency"`
	StepUp     decimal.Decimal `yaml:"stepUp" json:"stepUp"`
	StartYear  int             `yaml:"startYear" json:"startYear"`
	EndYear    int             `yaml:"endYear" json:"endYear"`
	GrowthRate decimal.Decimal `yaml:"growthRate" json:"growthRate"`
}

// InvestmentCommitment is a recurring contribution the household has
// committed to; it is both subtracted from annual cash and credited to the
// bucket its label classifies into.
type InvestmentCommitment struct {
	ID         string          `yaml:"id" json:"id"`
	Label      string          `yaml:"label" json:"label"`
	Amount     decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency  Frequency       `yaml:"frequency" json:"frequency"`
	StepUp     decimal.Decimal `yaml:"stepUp" json:"stepUp"`
	StartYear  int             `yaml:"startYear" json:"startYear"`
	EndYear    int             `yaml:"endYear" json:"endYear"`
	GrowthRate decimal.Decimal `yaml:"growthRate" json:"growthRate"`
}

// ExpenseItem is one line of the household's detailed living expenses.
// A zero InflationRate falls back to the default discount rate.
type ExpenseItem struct {
	Label         string          `yaml:"label" json:"label"`
	MonthlyAmount decimal.Decimal `yaml:"monthlyAmount" json:"monthlyAmount"`
	InflationRate decimal.Decimal `yaml:"inflationRate" json:"inflationRate"`
}

// DiscountSettings configures inflation behaviour. When UseBucketInflation
// is set, distinct pre- and post-retirement regimes apply year by year;
// otherwise DefaultInflationRate compounds flat.
type DiscountSettings struct {
	DefaultInflationRate decimal.Decimal `yaml:"defaultInflationRate" json:"defaultInflationRate"`
	UseBucketInflation   bool            `yaml:"useBucketInflation" json:"useBucketInflation"`
	PreRetirementRate    decimal.Decimal `yaml:"preRetirementRate" json:"preRetirementRate"`
	PostRetirementRate   decimal.Decimal `yaml:"postRetirementRate" json:"postRetirementRate"`
}
