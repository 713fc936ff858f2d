package calculation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/makinimakes/power-in-numbers-sub000/internal/domain"
)

// Equity measures the gap between what a stretch of work should have paid
// and what it actually pays. The gap floors at zero: being paid above goal
// earns no negative stake.
func Equity(goalRate, actualRate, hours decimal.Decimal) domain.EquityStake {
	gap := goalRate.Sub(actualRate)
	if gap.IsNegative() {
		gap = decimal.Zero
	}
	return domain.EquityStake{Gap: gap, Value: gap.Mul(hours)}
}

// ScenarioIncomes builds the three cumulative income tiers from a
// project's income sources: confirmed, confirmed+likely, everything.
func ScenarioIncomes(sources []domain.IncomeSource) (confirmed, possible, ideal decimal.Decimal) {
	for _, s := range sources {
		switch s.Status {
		case domain.IncomeConfirmed:
			confirmed = confirmed.Add(s.Amount)
		case domain.IncomeLikely:
			possible = possible.Add(s.Amount)
		case domain.IncomeNotLikely:
			ideal = ideal.Add(s.Amount)
		}
	}
	possible = possible.Add(confirmed)
	ideal = ideal.Add(possible)
	return confirmed, possible, ideal
}

// Distribute splits available profit across members in proportion to what
// each is owed. Only profit up to the total liability is distributable; a
// loss distributes nothing. Payouts are ordered by member handle so the
// plan is deterministic.
func Distribute(scenario domain.ScenarioKind, netProfit decimal.Decimal, owed map[string]decimal.Decimal) domain.DistributionPlan {
	plan := domain.DistributionPlan{Scenario: scenario}

	totalOwed := decimal.Zero
	for _, amount := range owed {
		totalOwed = totalOwed.Add(amount)
	}

	if netProfit.IsPositive() {
		plan.Distributable = decimal.Min(netProfit, totalOwed)
	}

	handles := make([]string, 0, len(owed))
	for handle := range owed {
		handles = append(handles, handle)
	}
	sort.Strings(handles)

	for _, handle := range handles {
		memberOwed := owed[handle]
		payout := decimal.Zero
		if totalOwed.IsPositive() {
			payout = plan.Distributable.Mul(memberOwed.Div(totalOwed))
		}
		remaining := memberOwed.Sub(payout)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		plan.Payouts = append(plan.Payouts, domain.MemberPayout{
			Member:    handle,
			Owed:      memberOwed,
			Payout:    payout,
			Remaining: remaining,
		})
	}
	return plan
}
