package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/makinimakes/power-in-numbers-sub000/internal/domain"
)

// ReportGenerator renders engine results in various formats.
type ReportGenerator struct {
	Out io.Writer
}

// NewReportGenerator creates a report generator writing to out.
func NewReportGenerator(out io.Writer) *ReportGenerator {
	return &ReportGenerator{Out: out}
}

// GenerateProjectReport renders a full recompute result.
func (rg *ReportGenerator) GenerateProjectReport(project *domain.Project, result *domain.RecomputeResult, format string) error {
	switch format {
	case "console":
		return rg.projectConsole(project, result)
	case "json":
		return rg.asJSON(result)
	case "csv":
		return rg.projectCSV(result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateRatesReport renders one worker's rate bundle.
func (rg *ReportGenerator) GenerateRatesReport(handle string, bundle domain.WorkerRateBundle, format string) error {
	switch format {
	case "console":
		return rg.ratesConsole(handle, bundle)
	case "json":
		return rg.asJSON(bundle)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateEquityReport renders only the equity and distribution slice of a
// recompute result.
func (rg *ReportGenerator) GenerateEquityReport(result *domain.RecomputeResult, format string) error {
	switch format {
	case "console":
		return rg.equityConsole(result)
	case "json":
		return rg.asJSON(struct {
			EquityByMember map[string]decimal.Decimal `json:"equity_by_member"`
			TotalEquity    decimal.Decimal            `json:"total_equity"`
			Scenarios      []domain.IncomeScenario    `json:"scenarios"`
			Distributions  []domain.DistributionPlan  `json:"distributions"`
		}{result.EquityByMember, result.TotalEquity, result.Scenarios, result.Distributions})
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func (rg *ReportGenerator) asJSON(v any) error {
	enc := json.NewEncoder(rg.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func money(d decimal.Decimal) string {
	return moneyStyle.Render("$" + d.StringFixed(2))
}

func (rg *ReportGenerator) ratesConsole(handle string, bundle domain.WorkerRateBundle) error {
	fmt.Fprintln(rg.Out, titleStyle.Render("Rates: "+handle))
	if bundle.Status == domain.RateIncomplete {
		fmt.Fprintln(rg.Out, warnStyle.Render("profile incomplete: rates reflect insufficient data"))
	}

	br := bundle.Capacity
	fmt.Fprintln(rg.Out, headerStyle.Render("Capacity"))
	fmt.Fprintf(rg.Out, "  %s %s\n", labelStyle.Render("total hours/yr:   "), br.TotalWorkHours.StringFixed(1))
	fmt.Fprintf(rg.Out, "  %s %s\n", labelStyle.Render("non-billable:     "), br.NonBillableHours.StringFixed(1))
	fmt.Fprintf(rg.Out, "  %s %s\n", labelStyle.Render("billable:         "), br.BillableHours.StringFixed(1))
	fmt.Fprintf(rg.Out, "  %s %s%%\n", labelStyle.Render("billable ratio:   "), br.BillableRatio.Mul(decimal.NewFromInt(100)).StringFixed(1))
	for _, u := range br.Unresolved {
		fmt.Fprintf(rg.Out, "  %s\n", warnStyle.Render(fmt.Sprintf(
			"revise %q in %q: %s per %s has no meaning", u.Activity, u.Line, u.Unit, u.Cadence)))
	}

	fmt.Fprintln(rg.Out, headerStyle.Render("Rates"))
	fmt.Fprintf(rg.Out, "  %-10s %12s %12s\n", "", "now", "goal")
	rows := []struct {
		label     string
		now, goal decimal.Decimal
	}{
		{"hourly", bundle.NowSheet.Hourly, bundle.GoalSheet.Hourly},
		{"daily", bundle.NowSheet.Daily, bundle.GoalSheet.Daily},
		{"weekly", bundle.NowSheet.Weekly, bundle.GoalSheet.Weekly},
		{"monthly", bundle.NowSheet.Monthly, bundle.GoalSheet.Monthly},
	}
	for _, row := range rows {
		fmt.Fprintf(rg.Out, "  %-10s %12s %12s\n", labelStyle.Render(row.label),
			"$"+row.now.StringFixed(2), "$"+row.goal.StringFixed(2))
	}

	if len(bundle.OverheadRates) > 0 {
		fmt.Fprintln(rg.Out, headerStyle.Render("Overhead surcharges"))
		lines := make([]string, 0, len(bundle.OverheadRates))
		for line := range bundle.OverheadRates {
			lines = append(lines, line)
		}
		sort.Strings(lines)
		for _, line := range lines {
			fmt.Fprintf(rg.Out, "  %-24s %s/hr\n", labelStyle.Render(line), money(bundle.OverheadRates[line]))
		}
	}
	return nil
}

func (rg *ReportGenerator) projectConsole(project *domain.Project, result *domain.RecomputeResult) error {
	fmt.Fprintln(rg.Out, titleStyle.Render("Project: "+project.Name))
	fmt.Fprintf(rg.Out, "%s %s  %s %s\n",
		labelStyle.Render("pay band min:"), money(result.Band.Min),
		labelStyle.Render("max:"), money(result.Band.Max))

	fmt.Fprintln(rg.Out, headerStyle.Render("Phases"))
	for _, phase := range result.Phases {
		marker := ""
		if !phase.Active {
			marker = labelStyle.Render(" (inactive, excluded)")
		}
		fmt.Fprintf(rg.Out, "  %-24s labor %12s  expenses %12s  total %12s%s\n",
			phase.Name,
			"$"+phase.Labor.StringFixed(2),
			"$"+phase.Expenses.StringFixed(2),
			"$"+phase.Total.StringFixed(2), marker)
		if phase.PercentSaturated {
			fmt.Fprintf(rg.Out, "  %s\n", warnStyle.Render("percentage fees reach 100%: gross-up skipped, review this phase"))
		}
	}
	fmt.Fprintf(rg.Out, "%s %s\n", labelStyle.Render("project total (active):"), money(result.TotalCost))

	fmt.Fprintln(rg.Out, headerStyle.Render("Equity owed"))
	members := make([]string, 0, len(result.EquityByMember))
	for member := range result.EquityByMember {
		members = append(members, member)
	}
	sort.Strings(members)
	for _, member := range members {
		fmt.Fprintf(rg.Out, "  %-24s %s\n", member, money(result.EquityByMember[member]))
	}
	fmt.Fprintf(rg.Out, "%s %s\n", labelStyle.Render("total liability:"), money(result.TotalEquity))

	fmt.Fprintln(rg.Out, headerStyle.Render("Income scenarios"))
	for i, scenario := range result.Scenarios {
		fmt.Fprintf(rg.Out, "  %-10s income %12s  net %12s  after distribution %12s\n",
			scenario.Kind,
			"$"+scenario.Income.StringFixed(2),
			"$"+scenario.NetProfit.StringFixed(2),
			"$"+scenario.NetAfterDistribution.StringFixed(2))
		if i < len(result.Distributions) {
			for _, payout := range result.Distributions[i].Payouts {
				fmt.Fprintf(rg.Out, "    %-22s owed %10s  payout %10s  remaining %10s\n",
					payout.Member,
					"$"+payout.Owed.StringFixed(2),
					"$"+payout.Payout.StringFixed(2),
					"$"+payout.Remaining.StringFixed(2))
			}
		}
	}
	return nil
}

func (rg *ReportGenerator) equityConsole(result *domain.RecomputeResult) error {
	fmt.Fprintln(rg.Out, titleStyle.Render("Equity & distribution"))
	members := make([]string, 0, len(result.EquityByMember))
	for member := range result.EquityByMember {
		members = append(members, member)
	}
	sort.Strings(members)
	for _, member := range members {
		fmt.Fprintf(rg.Out, "  %-24s %s\n", member, money(result.EquityByMember[member]))
	}
	fmt.Fprintf(rg.Out, "%s %s\n", labelStyle.Render("total liability:"), money(result.TotalEquity))

	for i, scenario := range result.Scenarios {
		fmt.Fprintf(rg.Out, "%s net %s\n",
			headerStyle.Render(string(scenario.Kind)), money(scenario.NetProfit))
		if i >= len(result.Distributions) {
			continue
		}
		plan := result.Distributions[i]
		fmt.Fprintf(rg.Out, "  %s %s\n", labelStyle.Render("distributable:"), money(plan.Distributable))
		for _, payout := range plan.Payouts {
			fmt.Fprintf(rg.Out, "  %-24s payout %10s  remaining %10s\n",
				payout.Member, "$"+payout.Payout.StringFixed(2), "$"+payout.Remaining.StringFixed(2))
		}
	}
	return nil
}

func (rg *ReportGenerator) projectCSV(result *domain.RecomputeResult) error {
	w := csv.NewWriter(rg.Out)
	defer w.Flush()

	header := []string{"phase", "active", "item", "assignee", "method", "effective_rate", "hours", "overhead", "cost"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, phase := range result.Phases {
		for _, item := range phase.Items {
			record := []string{
				phase.Name,
				fmt.Sprintf("%t", phase.Active),
				item.Name,
				item.Assignee,
				string(item.Method),
				item.EffectiveRate.StringFixed(4),
				item.Hours.StringFixed(2),
				item.Overhead.StringFixed(2),
				item.Cost.StringFixed(2),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	return w.Error()
}
