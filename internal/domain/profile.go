// Package domain defines the entity model for the planning engine: the
// household profile, assets, loans, goals, cashflows, and the derived
// timeline structures. All monetary amounts are decimal.Decimal; rates are
// stored as entered, i.e. 8.5 means 8.5% per year.
package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Profile holds the primary member's identity and planning anchors.
type Profile struct {
	Name            string          `yaml:"name" json:"name"`
	DOB             string          `yaml:"dob" json:"dob"`
	RetirementAge   int             `yaml:"retirementAge" json:"retirementAge"`
	LifeExpectancy  int             `yaml:"lifeExpectancy" json:"lifeExpectancy"`
	MonthlyExpenses decimal.Decimal `yaml:"monthlyExpenses" json:"monthlyExpenses"`
	Income          DetailedIncome  `yaml:"income" json:"income"`
}

var dobLayouts = []string{"2006-01-02", "02/01/2006", "2006"}

// BirthYear extracts the calendar year from the profile's date of birth.
// Returns 0 when the date cannot be parsed; the input layer rejects such
// profiles before they reach the engine.
func (p *Profile) BirthYear() int {
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, p.DOB); err == nil {
			return t.Year()
		}
	}
	if y, err := strconv.Atoi(p.DOB); err == nil {
		return y
	}
	return 0
}

// RetirementYear resolves the profile's retirement calendar year.
func (p *Profile) RetirementYear() int {
	return p.BirthYear() + p.RetirementAge
}

// LifeExpectancyYear resolves the final projection year.
func (p *Profile) LifeExpectancyYear() int {
	return p.BirthYear() + p.LifeExpectancy
}

// DetailedIncome breaks a person's income into named monthly components.
// ExpectedIncrease is the annual growth applied to the total, in percent.
type DetailedIncome struct {
	Salary           decimal.Decimal `yaml:"salary" json:"salary"`
	Bonus            decimal.Decimal `yaml:"bonus" json:"bonus"`
	Reimbursements   decimal.Decimal `yaml:"reimbursements" json:"reimbursements"`
	Business         decimal.Decimal `yaml:"business" json:"business"`
	Rental           decimal.Decimal `yaml:"rental" json:"rental"`
	Investment       decimal.Decimal `yaml:"investment" json:"investment"`
	ExpectedIncrease decimal.Decimal `yaml:"expectedIncrease" json:"expectedIncrease"`
}

// Total sums all income components for one month.
func (di DetailedIncome) Total() decimal.Decimal {
	return di.Salary.Add(di.Bonus).Add(di.Reimbursements).
		Add(di.Business).Add(di.Rental).Add(di.Investment)
}

// FamilyMember is owned by the household profile. Assets, loans and goals
// reference members by ID; removing a member does not cascade to them.
type FamilyMember struct {
	ID              string          `yaml:"id" json:"id"`
	Name            string          `yaml:"name" json:"name"`
	Relation        string          `yaml:"relation" json:"relation"`
	Age             int             `yaml:"age" json:"age"`
	IsDependent     bool            `yaml:"isDependent" json:"isDependent"`
	Income          DetailedIncome  `yaml:"income" json:"income"`
	MonthlyExpenses decimal.Decimal `yaml:"monthlyExpenses" json:"monthlyExpenses"`
}

// RiskProfile captures the household's risk category and the expected return
// it implies for the floating corpus bucket.
type RiskProfile struct {
	Category           string          `yaml:"category" json:"category"`
	ExpectedReturnRate decimal.Decimal `yaml:"expectedReturnRate" json:"expectedReturnRate"`
}

// Insurance is an in-force policy; life covers offset the HLV gap.
type Insurance struct {
	ID            string          `yaml:"id" json:"id"`
	Type          string          `yaml:"type" json:"type"`
	Cover         decimal.Decimal `yaml:"cover" json:"cover"`
	AnnualPremium decimal.Decimal `yaml:"annualPremium" json:"annualPremium"`
}
