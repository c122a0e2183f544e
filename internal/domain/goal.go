package domain

import "github.com/shopspring/decimal"

// Frequency describes how often a recurring amount repeats.
type Frequency string

const (
	FrequencyOnce           Frequency = "Once"
	FrequencyMonthly        Frequency = "Monthly"
	FrequencyYearly         Frequency = "Yearly"
	FrequencyCustomInterval Frequency = "CustomInterval"
	FrequencyOnceIn10Years  Frequency = "OnceIn10Years"
)

// RetirementHandling selects how a Retirement goal's target is derived.
type RetirementHandling string

const (
	RetirementCurrentExpenses RetirementHandling = "CurrentExpenses"
	RetirementEstimate        RetirementHandling = "Estimate"
	RetirementDetailed        RetirementHandling = "Detailed"
)

// GoalTypeRetirement marks the goal type with special handling modes.
const GoalTypeRetirement = "Retirement"

// Goal is a funding target. Priority ranks funding order (lower first,
// ties broken by insertion order). StartGoalAmount caches the inflated
// start-year value computed at save time.
type Goal struct {
	ID                     string             `yaml:"id" json:"id"`
	Type                   string             `yaml:"type" json:"type"`
	Description            string             `yaml:"description" json:"description"`
	Priority               int                `yaml:"priority" json:"priority"`
	Owner                  string             `yaml:"owner" json:"owner"`
	ResourceBuckets        []string           `yaml:"resourceBuckets" json:"resourceBuckets"`
	IsRecurring            bool               `yaml:"isRecurring" json:"isRecurring"`
	Frequency              Frequency          `yaml:"frequency" json:"frequency"`
	FrequencyIntervalYears int                `yaml:"frequencyIntervalYears" json:"frequencyIntervalYears"`
	StartDate              RelativeDate       `yaml:"startDate" json:"startDate"`
	EndDate                RelativeDate       `yaml:"endDate" json:"endDate"`
	TargetAmountToday      decimal.Decimal    `yaml:"targetAmountToday" json:"targetAmountToday"`
	StartGoalAmount        decimal.Decimal    `yaml:"startGoalAmount" json:"startGoalAmount"`
	InflationRate          decimal.Decimal    `yaml:"inflationRate" json:"inflationRate"`
	CurrentAmount          decimal.Decimal    `yaml:"currentAmount" json:"currentAmount"`
	Loan                   *GoalLoan          `yaml:"loan,omitempty" json:"loan,omitempty"`
	RetirementHandling     RetirementHandling `yaml:"retirementHandling,omitempty" json:"retirementHandling,omitempty"`
	EstimatedAnnualExpense decimal.Decimal    `yaml:"estimatedAnnualExpense" json:"estimatedAnnualExpense"`
	DetailedExpenses       []ExpenseItem      `yaml:"detailedExpenses,omitempty" json:"detailedExpenses,omitempty"`
}

// GoalLoan is the optional financing bridge on a goal. When Enabled, a Loan
// record with ID LoanID is kept in sync by calculation.SyncGoalLoan.
type GoalLoan struct {
	Enabled      bool            `yaml:"enabled" json:"enabled"`
	LoanID       string          `yaml:"loanId" json:"loanId"`
	Amount       decimal.Decimal `yaml:"amount" json:"amount"`
	InterestRate decimal.Decimal `yaml:"interestRate" json:"interestRate"`
	TenureYears  int             `yaml:"tenureYears" json:"tenureYears"`
}
