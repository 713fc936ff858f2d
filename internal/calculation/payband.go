package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/makinimakes/power-in-numbers-sub000/internal/domain"
)

// MemberRate is the pair of hourly rates one member contributes to the
// pay band. Members without a profile contribute zeros.
type MemberRate struct {
	Handle string
	Now    decimal.Decimal
	Goal   decimal.Decimal
}

// Band computes a project's allowable wage corridor. The floor is the
// highest now-rate on the team scaled by minMod; the ceiling is the lowest
// positive goal-rate scaled by maxMod, but never below the floor nor below
// the unmodified highest now-rate. Members with a zero goal are excluded
// from the ceiling candidates so an incomplete profile cannot drag the
// ceiling to zero.
func Band(members []MemberRate, minModPercent, maxModPercent decimal.Decimal) domain.PayBand {
	highNow := decimal.Zero
	lowGoal := decimal.Zero
	for _, m := range members {
		if m.Now.GreaterThan(highNow) {
			highNow = m.Now
		}
		if m.Goal.IsPositive() && (lowGoal.IsZero() || m.Goal.LessThan(lowGoal)) {
			lowGoal = m.Goal
		}
	}

	min := highNow.Mul(minModPercent.Div(hundred))
	max := lowGoal.Mul(maxModPercent.Div(hundred))

	floor := highNow
	if min.GreaterThan(floor) {
		floor = min
	}
	if max.LessThan(floor) {
		max = floor
	}

	return domain.PayBand{Min: min, Max: max}
}
