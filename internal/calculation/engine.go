package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/makinimakes/power-in-numbers-sub000/internal/domain"
)

// Logger receives optional engine diagnostics. The engine stays silent
// unless one is attached.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Engine runs complete recompute passes over project snapshots. It holds
// no state between passes: the same snapshot always produces the same
// result, and inputs are never mutated.
type Engine struct {
	Logger Logger

	// AllowOverCapacity confirms total-hours schedules past phase
	// capacity. Off by default; callers flip it after the user accepts
	// the overage.
	AllowOverCapacity bool
}

// NewEngine creates an engine with defaults.
func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) debugf(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Debugf(format, args...)
	}
}

// MemberRates derives the rate bundle for one member handle, including the
// overhead rates of any lines of work linked to overhead pools in the
// snapshot. A handle with no profile yields a zero, incomplete bundle.
func (e *Engine) MemberRates(snap *domain.Snapshot, handle string) domain.WorkerRateBundle {
	profile := snap.Profiles[handle]
	if profile == nil {
		e.debugf("member %s has no linked profile, rates zeroed", handle)
		return domain.WorkerRateBundle{Status: domain.RateIncomplete}
	}

	bundle := Rates(profile)
	for _, line := range profile.LinesOfWork {
		if line.OverheadProjectID == "" {
			continue
		}
		pool := snap.Overheads[line.OverheadProjectID]
		if pool == nil {
			e.debugf("line %s references unknown overhead pool %s", line.Label, line.OverheadProjectID)
			continue
		}
		rate, err := OverheadRate(line, pool, profile.Schedule)
		if err != nil {
			e.debugf("overhead rate for line %s blocked: %v", line.Label, err)
			continue
		}
		if bundle.OverheadRates == nil {
			bundle.OverheadRates = make(map[string]decimal.Decimal)
		}
		bundle.OverheadRates[line.ID] = rate
	}
	return bundle
}

// modOrFull treats an unset modifier as 100%.
func modOrFull(mod decimal.Decimal) decimal.Decimal {
	if mod.IsZero() {
		return hundred
	}
	return mod
}

// Recompute runs the full pipeline over a snapshot: member rates, pay
// band, phase costs, equity liabilities, income scenarios and profit
// distributions. Inactive phases are costed for display but excluded from
// every aggregate.
func (e *Engine) Recompute(snap *domain.Snapshot) (*domain.RecomputeResult, error) {
	if snap == nil || snap.Project == nil {
		return nil, fmt.Errorf("recompute: snapshot has no project")
	}
	project := snap.Project

	result := &domain.RecomputeResult{
		MemberRates:    make(map[string]domain.WorkerRateBundle, len(project.TeamMembers)),
		EquityByMember: make(map[string]decimal.Decimal),
	}

	var memberRates []MemberRate
	for _, member := range project.TeamMembers {
		bundle := e.MemberRates(snap, member.Handle)
		result.MemberRates[member.Handle] = bundle
		memberRates = append(memberRates, MemberRate{
			Handle: member.Handle,
			Now:    bundle.Now,
			Goal:   bundle.Goal,
		})
	}

	result.Band = Band(memberRates,
		modOrFull(project.Settings.MinModPercent),
		modOrFull(project.Settings.MaxModPercent))
	e.debugf("pay band [%s, %s]", result.Band.Min.StringFixed(2), result.Band.Max.StringFixed(2))

	inputs := func(item *domain.LineItem) ItemInputs {
		bundle, ok := result.MemberRates[item.Assignee]
		if !ok {
			return ItemInputs{}
		}
		in := ItemInputs{HasProfile: true, GoalRate: bundle.Goal}
		if item.Time != nil {
			for _, lineID := range item.Time.OverheadSelections {
				in.OverheadRate = in.OverheadRate.Add(bundle.OverheadRates[lineID])
			}
		}
		return in
	}

	for _, phase := range project.Phases {
		phaseCost, err := ResolvePhase(phase, project.Settings, result.Band, inputs, e.AllowOverCapacity)
		if err != nil {
			return nil, fmt.Errorf("phase %s: %w", phase.Name, err)
		}
		result.Phases = append(result.Phases, phaseCost)
		if !phase.Active {
			continue
		}

		result.TotalCost = result.TotalCost.Add(phaseCost.Total)
		for _, item := range phaseCost.Items {
			if item.Method != domain.MethodTime || item.Assignee == "" {
				continue
			}
			bundle, ok := result.MemberRates[item.Assignee]
			if !ok || bundle.Status == domain.RateIncomplete {
				continue
			}
			stake := Equity(bundle.Goal, item.EffectiveRate, item.Hours)
			result.EquityByMember[item.Assignee] = result.EquityByMember[item.Assignee].Add(stake.Value)
			result.TotalEquity = result.TotalEquity.Add(stake.Value)
		}
	}

	confirmed, possible, ideal := ScenarioIncomes(project.IncomeSources)
	incomes := []struct {
		kind   domain.ScenarioKind
		amount decimal.Decimal
	}{
		{domain.ScenarioConfirmed, confirmed},
		{domain.ScenarioPossible, possible},
		{domain.ScenarioIdeal, ideal},
	}
	for _, income := range incomes {
		netProfit := income.amount.Sub(result.TotalCost)
		netAfter := netProfit.Sub(result.TotalEquity)
		if netAfter.IsNegative() {
			netAfter = decimal.Zero
		}
		result.Scenarios = append(result.Scenarios, domain.IncomeScenario{
			Kind:                 income.kind,
			Income:               income.amount,
			NetProfit:            netProfit,
			NetAfterDistribution: netAfter,
		})
		result.Distributions = append(result.Distributions,
			Distribute(income.kind, netProfit, result.EquityByMember))
	}

	return result, nil
}
