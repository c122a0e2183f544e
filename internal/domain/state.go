package domain

import "github.com/shopspring/decimal"

// FinanceState is the immutable entity snapshot the engine runs on. The
// persistence collaborator round-trips this shape losslessly; the engine
// never mutates it.
type FinanceState struct {
	Profile     Profile                `yaml:"profile" json:"profile"`
	Family      []FamilyMember         `yaml:"family" json:"family"`
	Assets      []Asset                `yaml:"assets" json:"assets"`
	Loans       []Loan                 `yaml:"loans" json:"loans"`
	Goals       []Goal                 `yaml:"goals" json:"goals"`
	Cashflows   []CashflowItem         `yaml:"cashflows" json:"cashflows"`
	Commitments []InvestmentCommitment `yaml:"commitments" json:"commitments"`
	Expenses    []ExpenseItem          `yaml:"expenses" json:"expenses"`
	Insurances  []Insurance            `yaml:"insurances" json:"insurances"`
	Discount    *DiscountSettings      `yaml:"discount,omitempty" json:"discount,omitempty"`
	RiskProfile *RiskProfile           `yaml:"riskProfile,omitempty" json:"riskProfile,omitempty"`

	// LiquidationOrder overrides the sell sequence used when cash cannot
	// cover goal demand; empty means ascending by blended return rate.
	LiquidationOrder []Bucket `yaml:"liquidationOrder,omitempty" json:"liquidationOrder,omitempty"`

	// ReturnRateOverride, when set, replaces the risk-profile-implied
	// return on the floating corpus bucket, in percent.
	ReturnRateOverride *decimal.Decimal `yaml:"returnRateOverride,omitempty" json:"returnRateOverride,omitempty"`
}

// MonthlyHouseholdIncome sums the profile's and every family member's
// income components for one month.
func (fs *FinanceState) MonthlyHouseholdIncome() decimal.Decimal {
	total := fs.Profile.Income.Total()
	for i := range fs.Family {
		total = total.Add(fs.Family[i].Income.Total())
	}
	return total
}

// MonthlyHouseholdExpenses sums detailed expense items when present, falling
// back to the profile's flat monthly figure, plus family members' own
// expenses.
func (fs *FinanceState) MonthlyHouseholdExpenses() decimal.Decimal {
	total := decimal.Zero
	if len(fs.Expenses) > 0 {
		for i := range fs.Expenses {
			total = total.Add(fs.Expenses[i].MonthlyAmount)
		}
	} else {
		total = fs.Profile.MonthlyExpenses
	}
	for i := range fs.Family {
		total = total.Add(fs.Family[i].MonthlyExpenses)
	}
	return total
}
