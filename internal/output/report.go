// Package output renders the engine's results as console text, JSON, or
// CSV. It is a serialization surface only; locale-aware currency formatting
// belongs to the presentation collaborator.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthayojana/arthayojana/internal/domain"
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ReportGenerator handles report generation in the supported formats.
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// WriteTimeline renders a projection timeline in the given format.
func (rg *ReportGenerator) WriteTimeline(w io.Writer, timeline []domain.TimelineRow, format string) error {
	switch format {
	case "console":
		return rg.writeTimelineConsole(w, timeline)
	case "json":
		return writeJSON(w, timeline)
	case "csv":
		return rg.writeTimelineCSV(w, timeline)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteSchedule renders a loan amortization schedule.
func (rg *ReportGenerator) WriteSchedule(w io.Writer, schedule *domain.LoanSchedule, format string) error {
	switch format {
	case "console":
		return rg.writeScheduleConsole(w, schedule)
	case "json":
		return writeJSON(w, schedule)
	case "csv":
		return rg.writeScheduleCSV(w, schedule)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteAudit renders the audit metric bundle.
func (rg *ReportGenerator) WriteAudit(w io.Writer, report *domain.AuditReport, format string) error {
	switch format {
	case "console":
		return rg.writeAuditConsole(w, report)
	case "json":
		return writeJSON(w, report)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (rg *ReportGenerator) writeTimelineConsole(w io.Writer, timeline []domain.TimelineRow) error {
	fmt.Fprintln(w, "YEAR-BY-YEAR PROJECTION")
	fmt.Fprintln(w, strings.Repeat("=", 100))
	fmt.Fprintf(w, "%-6s %14s %14s %14s %14s %14s %10s\n",
		"Year", "Inflow", "Expenses", "DebtSvc", "NetAvail", "GoalDemand", "Funded%")
	for i := range timeline {
		row := &timeline[i]
		fmt.Fprintf(w, "%-6d %14s %14s %14s %14s %14s %9s%%\n",
			row.Year,
			row.Inflow.StringFixed(0),
			row.Expenses.StringFixed(0),
			row.DebtService.StringFixed(0),
			row.NetAvailable.StringFixed(0),
			row.TotalGoalDemand.StringFixed(0),
			row.FundingRatio.StringFixed(1),
		)
		for _, g := range row.Goals {
			if g.Required.IsZero() {
				continue
			}
			fmt.Fprintf(w, "       goal %-36s required %14s funded %14s (%s%%)\n",
				g.Description, g.Required.StringFixed(0), g.Funded().StringFixed(0), g.AchievementPct.StringFixed(1))
		}
	}
	if len(timeline) > 0 {
		final := timeline[len(timeline)-1]
		fmt.Fprintln(w, strings.Repeat("-", 100))
		fmt.Fprintf(w, "Closing corpus in %d: %s\n", final.Year, final.Closing.Total().StringFixed(0))
	}
	return nil
}

func (rg *ReportGenerator) writeTimelineCSV(w io.Writer, timeline []domain.TimelineRow) error {
	cw := csv.NewWriter(w)
	header := []string{"year", "inflow", "expenses", "debtService", "committed", "netAvailable", "goalDemand", "goalFunded"}
	for _, b := range domain.AllBuckets {
		header = append(header, "closing_"+b.String())
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range timeline {
		row := &timeline[i]
		record := []string{
			strconv.Itoa(row.Year),
			row.Inflow.StringFixed(2),
			row.Expenses.StringFixed(2),
			row.DebtService.StringFixed(2),
			row.Committed.StringFixed(2),
			row.NetAvailable.StringFixed(2),
			row.TotalGoalDemand.StringFixed(2),
			row.GoalFundedTotal.StringFixed(2),
		}
		for _, b := range domain.AllBuckets {
			record = append(record, row.Closing[b].StringFixed(2))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (rg *ReportGenerator) writeScheduleConsole(w io.Writer, schedule *domain.LoanSchedule) error {
	fmt.Fprintf(w, "AMORTIZATION SCHEDULE (loan %s)\n", schedule.LoanID)
	fmt.Fprintf(w, "EMI: %s  basis: %s  months: %d  total interest: %s\n",
		schedule.EMI.StringFixed(2), schedule.Basis, schedule.MonthsRemaining, schedule.TotalInterest.StringFixed(2))
	if schedule.DidNotConverge {
		fmt.Fprintln(w, "WARNING: loan did not amortize within the simulation bound; schedule is truncated")
	}
	fmt.Fprintf(w, "%-6s %14s %12s %12s %12s %14s\n", "Month", "Opening", "Interest", "Principal", "Extra", "Closing")
	for i := range schedule.Entries {
		e := &schedule.Entries[i]
		marker := ""
		if e.NegativeAmortization {
			marker = "  !neg-am"
		}
		fmt.Fprintf(w, "%-6d %14s %12s %12s %12s %14s%s\n",
			e.Month, e.Opening.StringFixed(2), e.Interest.StringFixed(2),
			e.Principal.StringFixed(2), e.ExtraPayment.StringFixed(2), e.Closing.StringFixed(2), marker)
	}
	return nil
}

func (rg *ReportGenerator) writeScheduleCSV(w io.Writer, schedule *domain.LoanSchedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "year", "opening", "interest", "principal", "extra", "closing", "negativeAmortization"}); err != nil {
		return err
	}
	for i := range schedule.Entries {
		e := &schedule.Entries[i]
		if err := cw.Write([]string{
			strconv.Itoa(e.Month),
			strconv.Itoa(e.Year),
			e.Opening.StringFixed(2),
			e.Interest.StringFixed(2),
			e.Principal.StringFixed(2),
			e.ExtraPayment.StringFixed(2),
			e.Closing.StringFixed(2),
			strconv.FormatBool(e.NegativeAmortization),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (rg *ReportGenerator) writeAuditConsole(w io.Writer, report *domain.AuditReport) error {
	fmt.Fprintln(w, "FINANCIAL HEALTH AUDIT")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Debt ratio:            %s%%\n", report.DebtRatio.Mul(hundred).StringFixed(1))
	fmt.Fprintf(w, "Survival ratio:        %s%%\n", report.SurvivalRatio.Mul(hundred).StringFixed(1))
	fmt.Fprintf(w, "Success ratio:         %s%%\n", report.SuccessRatio.Mul(hundred).StringFixed(1))
	fmt.Fprintf(w, "Emergency fund:        %s months\n", report.EmergencyFundMonths.StringFixed(1))
	fmt.Fprintf(w, "Insurance (HLV) gap:   %s\n", report.InsuranceGap.StringFixed(0))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "RECOMMENDATIONS")
	for _, rec := range report.Recommendations {
		fmt.Fprintf(w, "  [%s] %s: %s\n", rec.Severity, rec.Code, rec.Message)
	}
	return nil
}
