package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/makinimakes/power-in-numbers-sub000/internal/domain"
)

// PhaseContext is what line-item resolution needs from the enclosing phase
// and project: the phase schedule, the effective pay modifier and the
// project band.
type PhaseContext struct {
	Weeks              decimal.Decimal
	Hours              decimal.Decimal // per week
	PayModifierPercent decimal.Decimal
	Band               domain.PayBand
}

// Capacity returns the phase's budgeted hours.
func (pc PhaseContext) Capacity() decimal.Decimal {
	return pc.Weeks.Mul(pc.Hours)
}

// ItemInputs carries per-assignee data the engine resolves before costing
// an item: the assignee's fresh goal rate and the overhead surcharge
// derived from their selected lines of work. Both are zero when the
// assignee has no linked profile.
type ItemInputs struct {
	HasProfile   bool
	GoalRate     decimal.Decimal
	OverheadRate decimal.Decimal
}

// ResolvedSchedule is a time item's schedule after mode resolution. Total
// is weeks x hours except in total mode, where it is the explicit figure.
type ResolvedSchedule struct {
	Weeks decimal.Decimal
	Hours decimal.Decimal
	Total decimal.Decimal
}

// ResolveSchedule applies a time item's schedule mode against the phase.
// Total mode is checked against phase capacity and rejected with
// ErrCapacityExceeded unless the caller passes override; this is the
// second half of the two-phase confirm.
func ResolveSchedule(t *domain.TimeItem, phase PhaseContext, override bool) (ResolvedSchedule, error) {
	switch t.ScheduleMode {
	case domain.ScheduleCustom, domain.ScheduleManual, "":
		return ResolvedSchedule{Weeks: t.Weeks, Hours: t.Hours, Total: t.Weeks.Mul(t.Hours)}, nil
	case domain.SchedulePhase:
		return ResolvedSchedule{Weeks: phase.Weeks, Hours: phase.Hours, Total: phase.Weeks.Mul(phase.Hours)}, nil
	case domain.ScheduleCurbed:
		weeks := decimal.Min(t.Weeks, phase.Weeks)
		hours := decimal.Min(t.Hours, phase.Hours)
		return ResolvedSchedule{Weeks: weeks, Hours: hours, Total: weeks.Mul(hours)}, nil
	case domain.ScheduleTotal:
		if t.TotalHours.GreaterThan(phase.Capacity()) && !override {
			return ResolvedSchedule{}, fmt.Errorf("total hours %s over phase capacity %s: %w",
				t.TotalHours.StringFixed(1), phase.Capacity().StringFixed(1), ErrCapacityExceeded)
		}
		return ResolvedSchedule{Total: t.TotalHours}, nil
	default:
		return ResolvedSchedule{}, fmt.Errorf("unknown schedule mode %q", t.ScheduleMode)
	}
}

// clampWithGoalCap forces rate into the band, then back down to base if
// clamping pushed it above: band pressure may lower a wage but never pays
// a worker above their own base.
func clampWithGoalCap(rate, base decimal.Decimal, band domain.PayBand) decimal.Decimal {
	clamped := band.Clamp(rate)
	if clamped.GreaterThan(base) {
		return base
	}
	return clamped
}

// EffectiveTimeRate resolves a time item's hourly rate per its rate mode.
// Flat-fee items have no direct rate here; their imputed rate is derived
// from the resolved schedule in resolveTimeItem.
func EffectiveTimeRate(t *domain.TimeItem, phase PhaseContext, in ItemInputs) decimal.Decimal {
	switch t.RateMode {
	case domain.RatePhase:
		modified := t.Rate.Mul(phase.PayModifierPercent.Div(hundred))
		return clampWithGoalCap(modified, t.Rate, phase.Band)
	case domain.RateGoal:
		if !in.HasProfile {
			return decimal.Zero
		}
		return clampWithGoalCap(in.GoalRate, in.GoalRate, phase.Band)
	default: // custom
		return t.Rate
	}
}

// resolveTimeItem costs one time item: effective rate x resolved hours,
// plus the overhead surcharge over the same hours.
func resolveTimeItem(item *domain.LineItem, phase PhaseContext, in ItemInputs, override bool) (domain.ItemCost, error) {
	t := item.Time
	if t == nil {
		return domain.ItemCost{}, fmt.Errorf("item %s: time method without time fields", item.ID)
	}

	sched, err := ResolveSchedule(t, phase, override)
	if err != nil {
		return domain.ItemCost{}, fmt.Errorf("item %s: %w", item.ID, err)
	}

	overheadRate := t.OverheadRate
	if !overheadRate.IsPositive() {
		overheadRate = in.OverheadRate
	}
	overhead := overheadRate.Mul(sched.Total)

	cost := domain.ItemCost{
		ItemID:   item.ID,
		Name:     item.Name,
		Assignee: item.Assignee,
		Type:     item.Type,
		Method:   domain.MethodTime,
		Hours:    sched.Total,
		Overhead: overhead,
	}

	if t.RateMode == domain.RateFlat {
		cost.Cost = t.FlatFee.Add(overhead)
		if sched.Total.IsPositive() {
			cost.EffectiveRate = t.FlatFee.Div(sched.Total)
		}
		return cost, nil
	}

	rate := EffectiveTimeRate(t, phase, in)
	cost.EffectiveRate = rate
	cost.Cost = rate.Mul(sched.Total).Add(overhead)
	return cost, nil
}

// ResolveItem costs one non-percentage line item. Percentage items depend
// on the rest of the phase and are resolved by ResolvePhase.
func ResolveItem(item *domain.LineItem, phase PhaseContext, in ItemInputs, override bool) (domain.ItemCost, error) {
	switch item.Method {
	case domain.MethodTime:
		return resolveTimeItem(item, phase, in, override)
	case domain.MethodLumpSum:
		if item.LumpSum == nil {
			return domain.ItemCost{}, fmt.Errorf("item %s: lump_sum method without lump_sum fields", item.ID)
		}
		return domain.ItemCost{
			ItemID: item.ID, Name: item.Name, Assignee: item.Assignee,
			Type: item.Type, Method: domain.MethodLumpSum,
			Cost: item.LumpSum.Amount,
		}, nil
	case domain.MethodUnit:
		if item.Unit == nil {
			return domain.ItemCost{}, fmt.Errorf("item %s: unit method without unit fields", item.ID)
		}
		return domain.ItemCost{
			ItemID: item.ID, Name: item.Name, Assignee: item.Assignee,
			Type: item.Type, Method: domain.MethodUnit,
			EffectiveRate: item.Unit.Rate,
			Cost:          item.Unit.Rate.Mul(item.Unit.Count),
		}, nil
	case domain.MethodPercentage:
		return domain.ItemCost{}, fmt.Errorf("item %s: percentage items resolve at phase level", item.ID)
	default:
		return domain.ItemCost{}, fmt.Errorf("item %s: unknown method %q", item.ID, item.Method)
	}
}

// ResolvePhase costs every item in a phase. Non-percentage items resolve
// first and form the fixed subtotal; percentage items then take their
// share of that subtotal, grossed up so stacked fees do not erode each
// other. A percent total at or past 100% cannot be grossed up: the factor
// stays 1 and the result is flagged PercentSaturated for review.
// inputs resolves per-assignee data and may be nil when no item needs it.
func ResolvePhase(phase domain.Phase, settings domain.ProjectSettings, band domain.PayBand, inputs func(item *domain.LineItem) ItemInputs, override bool) (domain.PhaseCost, error) {
	pc := PhaseContext{
		Weeks:              phase.Weeks,
		Hours:              phase.Hours,
		PayModifierPercent: phase.PayModifier(settings),
		Band:               band,
	}

	result := domain.PhaseCost{
		PhaseID: phase.ID,
		Name:    phase.Name,
		Active:  phase.Active,
	}

	fixedSubtotal := decimal.Zero
	percentTotal := decimal.Zero
	var percentItems []*domain.LineItem

	for i := range phase.LineItems {
		item := &phase.LineItems[i]
		if item.Method == domain.MethodPercentage {
			if item.Percentage == nil {
				return domain.PhaseCost{}, fmt.Errorf("item %s: percentage method without percentage fields", item.ID)
			}
			percentTotal = percentTotal.Add(item.Percentage.Percent)
			percentItems = append(percentItems, item)
			continue
		}

		var in ItemInputs
		if inputs != nil {
			in = inputs(item)
		}
		cost, err := ResolveItem(item, pc, in, override)
		if err != nil {
			return domain.PhaseCost{}, err
		}
		result.Items = append(result.Items, cost)
		fixedSubtotal = fixedSubtotal.Add(cost.Cost)
	}

	grossUpFactor := decimal.NewFromInt(1)
	if percentTotal.GreaterThanOrEqual(hundred) {
		result.PercentSaturated = true
	} else if percentTotal.IsPositive() {
		grossUpFactor = decimal.NewFromInt(1).Div(decimal.NewFromInt(1).Sub(percentTotal.Div(hundred)))
	}

	for _, item := range percentItems {
		cost := fixedSubtotal.Mul(grossUpFactor).Mul(item.Percentage.Percent.Div(hundred))
		result.Items = append(result.Items, domain.ItemCost{
			ItemID: item.ID, Name: item.Name, Assignee: item.Assignee,
			Type: item.Type, Method: domain.MethodPercentage,
			Cost: cost,
		})
	}

	for _, cost := range result.Items {
		result.Total = result.Total.Add(cost.Cost)
		if cost.Type == domain.ItemLabor {
			result.Labor = result.Labor.Add(cost.Cost)
		} else {
			result.Expenses = result.Expenses.Add(cost.Cost)
		}
	}
	return result, nil
}

// CheckLineDuration rejects a line of work whose resolved weeks exceed the
// worker's annual schedule, unless the caller overrides. First half of the
// two-phase confirm for schedule edits.
func CheckLineDuration(schedule domain.WorkSchedule, line domain.LineOfWork, override bool) error {
	if override {
		return nil
	}
	weeks := LineWeeks(line.Duration, schedule)
	if weeks.GreaterThan(schedule.WeeksPerYear) {
		return fmt.Errorf("line %q resolves to %s weeks over the %s-week schedule: %w",
			line.Label, weeks.StringFixed(1), schedule.WeeksPerYear.StringFixed(1), ErrCapacityExceeded)
	}
	return nil
}

// CheckPhaseTotalHours rejects a total-hours figure over the phase's
// weeks x hours capacity, unless the caller overrides. Second half of the
// two-phase confirm; ResolveSchedule applies the same guard at cost time.
func CheckPhaseTotalHours(phase domain.Phase, totalHours decimal.Decimal, override bool) error {
	if override {
		return nil
	}
	if totalHours.GreaterThan(phase.Capacity()) {
		return fmt.Errorf("total hours %s over phase %q capacity %s: %w",
			totalHours.StringFixed(1), phase.Name, phase.Capacity().StringFixed(1), ErrCapacityExceeded)
	}
	return nil
}
