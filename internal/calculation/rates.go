package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/makinimakes/power-in-numbers-sub000/internal/domain"
)

// UnearnedAnnual sums a worker's unearned income, annualized.
func UnearnedAnnual(u domain.UnearnedIncome) decimal.Decimal {
	total := decimal.Zero
	for _, item := range u.Items {
		total = total.Add(item.Annualized())
	}
	return total
}

// GrossUp divides a fixed sum by (1 - percent/100). The error is
// ErrPercentSaturated when percent reaches 100, where the gross-up has no
// finite value.
func GrossUp(fixed, percent decimal.Decimal) (decimal.Decimal, error) {
	if percent.GreaterThanOrEqual(hundred) {
		return decimal.Zero, ErrPercentSaturated
	}
	return fixed.Div(decimal.NewFromInt(1).Sub(percent.Div(hundred))), nil
}

// DeriveGoals aggregates a worker's expense schedule into income targets.
// Fixed expenses annualize directly; percent-of-income items gross the net
// goal up so that after paying them the fixed expenses are still covered.
// Gross figures add the worker's tax rate on top of net.
func DeriveGoals(profile *domain.WorkerProfile) domain.IncomeGoals {
	fixed := decimal.Zero
	percent := decimal.Zero
	for _, item := range profile.Expenses.Items {
		if item.IsPercent() {
			percent = percent.Add(item.Amount)
			continue
		}
		fixed = fixed.Add(item.Annualized())
	}

	taxFactor := decimal.NewFromInt(1).Add(profile.Expenses.TaxRatePercent.Div(hundred))
	goals := domain.IncomeGoals{
		CurrentGross: profile.CurrentNetIncome.Mul(taxFactor),
	}

	goalNet, err := GrossUp(fixed, percent)
	if err != nil {
		goals.Saturated = true
		return goals
	}
	goals.GoalNet = goalNet
	goals.GoalGross = goalNet.Mul(taxFactor)
	return goals
}

// SheetFor spreads an adjusted annual gross across the schedule. The chain
// is deliberate: weekly comes from the annual figure, monthly and daily
// from weekly, hourly from daily, so the four values always agree.
func SheetFor(adjGross decimal.Decimal, schedule domain.WorkSchedule, billableRatio decimal.Decimal) domain.RateSheet {
	if !schedule.IsComplete() || !billableRatio.IsPositive() {
		return domain.RateSheet{}
	}
	weekly := adjGross.Div(schedule.WeeksPerYear).Div(billableRatio)
	monthly := weekly.Mul(schedule.WeeksPerYear).Div(twelve)
	daily := weekly.Div(schedule.DaysPerWeek)
	hourly := daily.Div(schedule.HoursPerDay)
	return domain.RateSheet{
		Hourly:  hourly,
		Daily:   daily,
		Weekly:  weekly,
		Monthly: monthly,
	}
}

// Rates derives a worker's now and goal rates. Incomplete schedules,
// all-non-billable years and saturated percent expenses all produce zero
// rates with an incomplete status instead of an error: zero here means
// "insufficient data", never "verified zero".
func Rates(profile *domain.WorkerProfile) domain.WorkerRateBundle {
	bundle := domain.WorkerRateBundle{
		Capacity: Capacity(profile),
		Goals:    DeriveGoals(profile),
		Status:   domain.RateComplete,
	}

	if !profile.Schedule.IsComplete() || !bundle.Capacity.BillableRatio.IsPositive() {
		bundle.Status = domain.RateIncomplete
		return bundle
	}
	if bundle.Goals.Saturated {
		bundle.Status = domain.RateIncomplete
	}

	unearned := UnearnedAnnual(profile.Unearned)
	adjNow := bundle.Goals.CurrentGross.Sub(unearned)
	if adjNow.IsNegative() {
		adjNow = decimal.Zero
	}
	adjGoal := bundle.Goals.GoalGross.Sub(unearned)
	if adjGoal.IsNegative() {
		adjGoal = decimal.Zero
	}

	bundle.NowSheet = SheetFor(adjNow, profile.Schedule, bundle.Capacity.BillableRatio)
	bundle.GoalSheet = SheetFor(adjGoal, profile.Schedule, bundle.Capacity.BillableRatio)
	bundle.Now = bundle.NowSheet.Hourly
	bundle.Goal = bundle.GoalSheet.Hourly
	return bundle
}

// OverheadPoolCost totals an overhead project's annual cost. Percent items
// form a composite gross-up over the fixed sum; a composite at or past
// 100% is blocked rather than grossed up.
func OverheadPoolCost(pool *domain.OverheadProject) (decimal.Decimal, error) {
	fixed := decimal.Zero
	percent := decimal.Zero
	for _, item := range pool.Expenses {
		if item.IsPercent() {
			percent = percent.Add(item.Amount)
			continue
		}
		fixed = fixed.Add(item.Annualized())
	}
	return GrossUp(fixed, percent)
}

// OverheadRate spreads an overhead pool across one line of work's own
// activity hours, yielding an hourly surcharge. A line with no resolvable
// activity hours gets a zero rate.
func OverheadRate(line domain.LineOfWork, pool *domain.OverheadProject, schedule domain.WorkSchedule) (decimal.Decimal, error) {
	cost, err := OverheadPoolCost(pool)
	if err != nil {
		return decimal.Zero, err
	}
	hours := LineActivityHours(line, schedule)
	if !hours.IsPositive() {
		return decimal.Zero, nil
	}
	return cost.Div(hours), nil
}
