package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/makinimakes/power-in-numbers-sub000/internal/domain"
)

// weeksPerMonth is the conversion used when a line of work's duration is
// expressed in months.
var weeksPerMonth = decimal.NewFromFloat(4.333)

var (
	twelve   = decimal.NewFromInt(12)
	fiftyTwo = decimal.NewFromInt(52)
	hundred  = decimal.NewFromInt(100)
)

// LineWeeks converts a line of work's declared duration into weeks against
// the worker's schedule. Unknown units resolve to zero.
func LineWeeks(d domain.LineDuration, schedule domain.WorkSchedule) decimal.Decimal {
	switch d.Unit {
	case domain.DurationWeeks:
		return d.Value
	case domain.DurationMonths:
		return d.Value.Mul(weeksPerMonth)
	case domain.DurationPercentOfYear:
		return d.Value.Div(hundred).Mul(schedule.WeeksPerYear)
	default:
		return decimal.Zero
	}
}

// ActivityAnnualHours annualizes one recurring activity against the
// worker's schedule and the weeks its line of work is active. Combinations
// with no sensible reading (days per day, weeks per week, ...) return
// ErrInvalidCadence; the zero value they also return must not be summed.
func ActivityAnnualHours(a domain.Activity, schedule domain.WorkSchedule, lineWeeks decimal.Decimal) (decimal.Decimal, error) {
	amount := a.Amount
	hoursPerDay := schedule.HoursPerDay
	daysPerWeek := schedule.DaysPerWeek
	activeMonths := lineWeeks.Mul(twelve).Div(fiftyTwo)

	switch a.Unit {
	case domain.UnitHours:
		switch a.Cadence {
		case domain.PerDay:
			return amount.Mul(daysPerWeek).Mul(lineWeeks), nil
		case domain.PerWeek:
			return amount.Mul(lineWeeks), nil
		case domain.PerMonth:
			return amount.Mul(activeMonths), nil
		case domain.PerYear:
			return amount, nil
		}
	case domain.UnitDays:
		switch a.Cadence {
		case domain.PerWeek:
			return amount.Mul(hoursPerDay).Mul(lineWeeks), nil
		case domain.PerMonth:
			return amount.Mul(hoursPerDay).Mul(activeMonths), nil
		case domain.PerYear:
			return amount.Mul(hoursPerDay), nil
		}
	case domain.UnitWeeks:
		switch a.Cadence {
		case domain.PerMonth:
			return amount.Mul(daysPerWeek).Mul(hoursPerDay).Mul(activeMonths), nil
		case domain.PerYear:
			return amount.Mul(daysPerWeek).Mul(hoursPerDay), nil
		}
	case domain.UnitMonths:
		if a.Cadence == domain.PerYear {
			return amount.Mul(daysPerWeek).Mul(hoursPerDay).Mul(activeMonths), nil
		}
	}
	return decimal.Zero, ErrInvalidCadence
}

// Capacity normalizes a worker's schedule and declared non-billable
// activities into annual hour totals and a billable ratio. A schedule with
// any non-positive factor yields the all-zero breakdown so downstream rate
// math divides by nothing. Activities that cannot be annualized are listed
// in Unresolved and left out of the totals.
func Capacity(profile *domain.WorkerProfile) domain.CapacityBreakdown {
	if !profile.Schedule.IsComplete() {
		return domain.CapacityBreakdown{}
	}

	totalWork := profile.Schedule.AnnualHours()
	nonBillable := decimal.Zero
	var unresolved []domain.UnresolvedActivity

	for _, line := range profile.LinesOfWork {
		lineWeeks := LineWeeks(line.Duration, profile.Schedule)
		for _, act := range line.Activities {
			hours, err := ActivityAnnualHours(act, profile.Schedule, lineWeeks)
			if err != nil {
				unresolved = append(unresolved, domain.UnresolvedActivity{
					Line:     line.Label,
					Activity: act.Label,
					Unit:     act.Unit,
					Cadence:  act.Cadence,
				})
				continue
			}
			nonBillable = nonBillable.Add(hours)
		}
	}

	billable := totalWork.Sub(nonBillable)
	if billable.IsNegative() {
		billable = decimal.Zero
	}

	return domain.CapacityBreakdown{
		TotalWorkHours:   totalWork,
		NonBillableHours: nonBillable,
		BillableHours:    billable,
		BillableRatio:    billable.Div(totalWork),
		Unresolved:       unresolved,
	}
}

// LineActivityHours sums the annualized hours of one line's activities,
// skipping unresolvable entries. This is the denominator for that line's
// overhead rate.
func LineActivityHours(line domain.LineOfWork, schedule domain.WorkSchedule) decimal.Decimal {
	lineWeeks := LineWeeks(line.Duration, schedule)
	total := decimal.Zero
	for _, act := range line.Activities {
		hours, err := ActivityAnnualHours(act, schedule, lineWeeks)
		if err != nil {
			continue
		}
		total = total.Add(hours)
	}
	return total
}
