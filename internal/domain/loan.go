package domain

import "github.com/shopspring/decimal"

// Loan is an outstanding liability. RemainingTenure is ambiguous by design:
// upstream forms accept either months or years in the same field, and the
// amortization engine disambiguates it (see calculation.InferTenureMonths).
// An EMI of zero means "derive the installment from rate and tenure".
type Loan struct {
	ID                string             `yaml:"id" json:"id"`
	Type              string             `yaml:"type" json:"type"`
	Owner             string             `yaml:"owner" json:"owner"`
	Source            string             `yaml:"source" json:"source"`
	SourceType        string             `yaml:"sourceType" json:"sourceType"`
	SanctionedAmount  decimal.Decimal    `yaml:"sanctionedAmount" json:"sanctionedAmount"`
	OutstandingAmount decimal.Decimal    `yaml:"outstandingAmount" json:"outstandingAmount"`
	InterestRate      decimal.Decimal    `yaml:"interestRate" json:"interestRate"`
	RemainingTenure   int                `yaml:"remainingTenure" json:"remainingTenure"`
	EMI               decimal.Decimal    `yaml:"emi" json:"emi"`
	StartYear         int                `yaml:"startYear" json:"startYear"`
	LumpSumRepayments []LumpSumRepayment `yaml:"lumpSumRepayments" json:"lumpSumRepayments"`
	Notes             string             `yaml:"notes" json:"notes"`
}

// LumpSumRepayment is a one-off principal repayment planned for a calendar
// year; it applies at the first month of that year in the schedule.
type LumpSumRepayment struct {
	Year   int             `yaml:"year" json:"year"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// TenureBasis records how RemainingTenure was interpreted.
type TenureBasis string

const (
	TenureMonths TenureBasis = "months"
	TenureYears  TenureBasis = "years"
)

// LoanScheduleEntry is one month of an amortization schedule.
// NegativeAmortization marks months where the EMI did not cover accrued
// interest and the balance grew.
type LoanScheduleEntry struct {
	Month                int             `json:"month"`
	Year                 int             `json:"year"`
	Opening              decimal.Decimal `json:"opening"`
	Interest             decimal.Decimal `json:"interest"`
	Principal            decimal.Decimal `json:"principal"`
	ExtraPayment         decimal.Decimal `json:"extraPayment"`
	Closing              decimal.Decimal `json:"closing"`
	NegativeAmortization bool            `json:"negativeAmortization,omitempty"`
}

// LoanSchedule is the full month-by-month simulation of a loan.
// DidNotConverge is set when the runaway guard stopped a loan that
// structurally never amortizes; callers must treat the schedule as truncated.
type LoanSchedule struct {
	LoanID          string              `json:"loanId"`
	EMI             decimal.Decimal     `json:"emi"`
	Basis           TenureBasis         `json:"basis"`
	MonthsRemaining int                 `json:"monthsRemaining"`
	TotalInterest   decimal.Decimal     `json:"totalInterest"`
	DidNotConverge  bool                `json:"didNotConverge,omitempty"`
	Entries         []LoanScheduleEntry `json:"entries"`
}
