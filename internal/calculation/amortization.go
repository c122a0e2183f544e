package calculation

import (
	"github.com/arthayojana/arthayojana/internal/domain"
	"github.com/shopspring/decimal"
)

// runawayGuardMonths bounds the amortization loop beyond the stated tenure
// so structurally non-amortizing loans terminate with DidNotConverge set.
const runawayGuardMonths = 600

// tenureYearsThreshold is the heuristic cutoff when the implied-EMI
// comparison cannot disambiguate: tenures at or below it read as years.
const tenureYearsThreshold = 40

// dominanceMargin keeps the implied-EMI comparison from flip-flopping on
// near-ties; an interpretation wins only when its error is under 0.6x the
// other's.
var dominanceMargin = decimal.NewFromFloat(0.6)

// CalculateEMI returns the fixed monthly installment that amortizes
// principal over months at the given annual percentage rate. A non-positive
// rate degrades to simple division.
func CalculateEMI(principal decimal.Decimal, annualRatePct decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(months))
	if annualRatePct.LessThanOrEqual(decimal.Zero) {
		return principal.Div(n)
	}
	r := annualRatePct.Div(decimalHundred).Div(decimalTwelve)
	factor := decimalOne.Add(r).Pow(n)
	return principal.Mul(r).Mul(factor).Div(factor.Sub(decimalOne))
}

// InferTenureMonths disambiguates a loan's RemainingTenure field, which
// upstream forms populate as either months or years. When the stated EMI,
// outstanding amount and rate are all known, the implied EMI under both
// readings is compared against the stated EMI and the closer one wins,
// subject to the dominance margin; otherwise a threshold heuristic applies.
func InferTenureMonths(loan *domain.Loan) (int, domain.TenureBasis) {
	tenure := loan.RemainingTenure
	if tenure <= 0 {
		return 0, domain.TenureMonths
	}

	if loan.EMI.GreaterThan(decimal.Zero) &&
		loan.OutstandingAmount.GreaterThan(decimal.Zero) &&
		loan.InterestRate.GreaterThan(decimal.Zero) {
		asMonths := CalculateEMI(loan.OutstandingAmount, loan.InterestRate, tenure)
		asYears := CalculateEMI(loan.OutstandingAmount, loan.InterestRate, tenure*12)
		diffMonths := asMonths.Sub(loan.EMI).Abs()
		diffYears := asYears.Sub(loan.EMI).Abs()
		if diffMonths.LessThan(diffYears.Mul(dominanceMargin)) {
			return tenure, domain.TenureMonths
		}
		if diffYears.LessThan(diffMonths.Mul(dominanceMargin)) {
			return tenure * 12, domain.TenureYears
		}
	}

	if tenure <= tenureYearsThreshold {
		return tenure * 12, domain.TenureYears
	}
	return tenure, domain.TenureMonths
}

// ScheduleOptions tunes a schedule build. ExtraPayment is a one-shot
// what-if prepayment applied at the first month. OverrideMonths bypasses
// tenure inference. CurrentYear anchors schedule months to calendar years;
// zero keeps years relative to the schedule start.
type ScheduleOptions struct {
	ExtraPayment   decimal.Decimal
	OverrideMonths int
	CurrentYear    int
}

// BuildAmortizationSchedule simulates a loan month by month: interest
// accrues on the opening balance, the EMI covers interest first, scheduled
// lump sums land on the first month of their calendar year, and the balance
// rolls forward. Months where the EMI does not cover interest are marked
// NegativeAmortization and the balance grows. The loop stops at payoff or
// at tenure plus the runaway guard, whichever comes first.
func BuildAmortizationSchedule(loan *domain.Loan, opts ScheduleOptions) *domain.LoanSchedule {
	months := opts.OverrideMonths
	basis := domain.TenureMonths
	if months <= 0 {
		months, basis = InferTenureMonths(loan)
	}

	emi := loan.EMI
	if emi.LessThanOrEqual(decimal.Zero) {
		emi = CalculateEMI(loan.OutstandingAmount, loan.InterestRate, months)
	}

	schedule := &domain.LoanSchedule{
		LoanID:        loan.ID,
		EMI:           emi,
		Basis:         basis,
		TotalInterest: decimal.Zero,
	}
	if months <= 0 || loan.OutstandingAmount.LessThanOrEqual(decimal.Zero) {
		return schedule
	}

	monthlyRate := loan.InterestRate.Div(decimalHundred).Div(decimalTwelve)
	balance := loan.OutstandingAmount
	extraPending := opts.ExtraPayment
	lumpApplied := make([]bool, len(loan.LumpSumRepayments))
	maxMonths := months + runawayGuardMonths

	for m := 0; m < maxMonths; m++ {
		year := opts.CurrentYear + m/12
		entry := domain.LoanScheduleEntry{
			Month:   m + 1,
			Year:    year,
			Opening: balance,
		}

		interest := balance.Mul(monthlyRate)
		entry.Interest = interest
		schedule.TotalInterest = schedule.TotalInterest.Add(interest)

		if emi.GreaterThanOrEqual(interest) {
			principal := emi.Sub(interest)
			if principal.GreaterThan(balance) {
				principal = balance
			}
			entry.Principal = principal
			balance = balance.Sub(principal)
		} else {
			entry.Principal = decimal.Zero
			entry.NegativeAmortization = true
			balance = balance.Add(interest.Sub(emi))
		}

		extra := decimal.Zero
		if extraPending.GreaterThan(decimal.Zero) {
			extra = extra.Add(extraPending)
			extraPending = decimal.Zero
		}
		if m%12 == 0 {
			for i, lump := range loan.LumpSumRepayments {
				if !lumpApplied[i] && lump.Year == year {
					extra = extra.Add(lump.Amount)
					lumpApplied[i] = true
				}
			}
		}
		if extra.GreaterThan(balance) {
			extra = balance
		}
		if extra.GreaterThan(decimal.Zero) {
			entry.ExtraPayment = extra
			balance = balance.Sub(extra)
		}

		entry.Closing = balance
		schedule.Entries = append(schedule.Entries, entry)

		if balance.LessThanOrEqual(decimal.Zero) {
			break
		}
	}

	schedule.MonthsRemaining = len(schedule.Entries)
	if balance := schedule.Entries[len(schedule.Entries)-1].Closing; balance.GreaterThan(decimal.Zero) {
		schedule.DidNotConverge = true
	}
	return schedule
}

// DebtServiceForYear sums the cash paid against a set of schedules in one
// calendar year: the EMI portion (interest plus principal) and any lump or
// extra payments landing that year.
func DebtServiceForYear(schedules []*domain.LoanSchedule, year int) decimal.Decimal {
	total := decimal.Zero
	for _, s := range schedules {
		for i := range s.Entries {
			e := &s.Entries[i]
			if e.Year != year {
				continue
			}
			if e.NegativeAmortization {
				// Cash out is the EMI even though interest accrued past it.
				total = total.Add(s.EMI)
			} else {
				total = total.Add(e.Interest).Add(e.Principal)
			}
			total = total.Add(e.ExtraPayment)
		}
	}
	return total
}
