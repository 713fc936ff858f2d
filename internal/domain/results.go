package domain

import (
	"github.com/shopspring/decimal"
)

// CapacityBreakdown is the output of capacity normalization for one worker.
// Unresolved lists activities whose unit/cadence pair is nonsensical; they
// are excluded from NonBillableHours rather than counted as zero, so a
// caller can tell "no time" apart from "needs correction".
type CapacityBreakdown struct {
	TotalWorkHours   decimal.Decimal      `json:"total_work_hours"`
	NonBillableHours decimal.Decimal      `json:"non_billable_hours"`
	BillableHours    decimal.Decimal      `json:"billable_hours"`
	BillableRatio    decimal.Decimal      `json:"billable_ratio"`
	Unresolved       []UnresolvedActivity `json:"unresolved,omitempty"`
}

// UnresolvedActivity points at an activity that could not be annualized.
type UnresolvedActivity struct {
	Line     string          `json:"line"`
	Activity string          `json:"activity"`
	Unit     ActivityUnit    `json:"unit"`
	Cadence  ActivityCadence `json:"cadence"`
}

// IncomeGoals are the derived income targets behind a worker's rates.
// Saturated is set when percent-of-income expenses reach or exceed 100%,
// which makes the goal mathematically unreachable.
type IncomeGoals struct {
	GoalNet      decimal.Decimal `json:"goal_net"`
	GoalGross    decimal.Decimal `json:"goal_gross"`
	CurrentGross decimal.Decimal `json:"current_gross"`
	Saturated    bool            `json:"saturated,omitempty"`
}

// RateSheet is one income level expressed at every schedule granularity.
// The values form a consistent chain: weekly derives from annual income,
// monthly from weekly, daily from weekly, hourly from daily.
type RateSheet struct {
	Hourly  decimal.Decimal `json:"hourly"`
	Daily   decimal.Decimal `json:"daily"`
	Weekly  decimal.Decimal `json:"weekly"`
	Monthly decimal.Decimal `json:"monthly"`
}

// RateStatus marks whether a worker's rates could be fully derived.
type RateStatus string

const (
	RateComplete   RateStatus = "complete"
	RateIncomplete RateStatus = "incomplete"
)

// WorkerRateBundle is everything the rate deriver produces for one worker.
// OverheadRates maps line-of-work IDs to their per-hour surcharges; these
// are outputs for the orchestrator to persist, never written back to the
// profile.
type WorkerRateBundle struct {
	Now           decimal.Decimal            `json:"now"`  // hourly
	Goal          decimal.Decimal            `json:"goal"` // hourly
	NowSheet      RateSheet                  `json:"now_sheet"`
	GoalSheet     RateSheet                  `json:"goal_sheet"`
	Capacity      CapacityBreakdown          `json:"capacity"`
	Goals         IncomeGoals                `json:"goals"`
	OverheadRates map[string]decimal.Decimal `json:"overhead_rates,omitempty"`
	Status        RateStatus                 `json:"status"`
}

// PayBand is the project's allowable hourly wage corridor.
type PayBand struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Clamp returns rate forced into [Min, Max].
func (b PayBand) Clamp(rate decimal.Decimal) decimal.Decimal {
	if rate.LessThan(b.Min) {
		return b.Min
	}
	if rate.GreaterThan(b.Max) {
		return b.Max
	}
	return rate
}

// ItemCost is one resolved line item.
type ItemCost struct {
	ItemID        string          `json:"item_id"`
	Name          string          `json:"name"`
	Assignee      string          `json:"assignee,omitempty"`
	Type          ItemType        `json:"type"`
	Method        CostMethod      `json:"method"`
	EffectiveRate decimal.Decimal `json:"effective_rate"` // hourly; imputed for flat fees
	Hours         decimal.Decimal `json:"hours"`          // resolved total hours, time items only
	Overhead      decimal.Decimal `json:"overhead"`       // surcharge included in Cost
	Cost          decimal.Decimal `json:"cost"`
}

// PhaseCost is one phase's resolved budget. PercentSaturated flags that the
// phase's percentage items sum to 100% or more, in which case the gross-up
// was skipped and the figures need review.
type PhaseCost struct {
	PhaseID          string          `json:"phase_id"`
	Name             string          `json:"name"`
	Active           bool            `json:"active"`
	Labor            decimal.Decimal `json:"labor"`
	Expenses         decimal.Decimal `json:"expenses"`
	Total            decimal.Decimal `json:"total"`
	Items            []ItemCost      `json:"items"`
	PercentSaturated bool            `json:"percent_saturated,omitempty"`
}

// EquityStake is the pay gap for one stretch of work.
type EquityStake struct {
	Gap   decimal.Decimal `json:"gap"`   // goal rate minus actual rate, floored at zero
	Value decimal.Decimal `json:"value"` // gap x hours
}

// ScenarioKind is one of the three cumulative income confidence tiers.
type ScenarioKind string

const (
	ScenarioConfirmed ScenarioKind = "confirmed"
	ScenarioPossible  ScenarioKind = "possible"
	ScenarioIdeal     ScenarioKind = "ideal"
)

// IncomeScenario is the project's profit picture at one confidence tier.
type IncomeScenario struct {
	Kind                 ScenarioKind    `json:"kind"`
	Income               decimal.Decimal `json:"income"`
	NetProfit            decimal.Decimal `json:"net_profit"`
	NetAfterDistribution decimal.Decimal `json:"net_after_distribution"`
}

// MemberPayout is one member's slice of a distribution.
type MemberPayout struct {
	Member    string          `json:"member"`
	Owed      decimal.Decimal `json:"owed"`
	Payout    decimal.Decimal `json:"payout"`
	Remaining decimal.Decimal `json:"remaining"`
}

// DistributionPlan is a proportional distribution of available profit
// against the equity liability at one income scenario.
type DistributionPlan struct {
	Scenario      ScenarioKind    `json:"scenario"`
	Distributable decimal.Decimal `json:"distributable"`
	Payouts       []MemberPayout  `json:"payouts"`
}

// Snapshot is the full input to a recompute pass: the project document plus
// the profile and overhead documents it references, keyed by member handle
// and overhead project ID.
type Snapshot struct {
	Project   *Project
	Profiles  map[string]*WorkerProfile
	Overheads map[string]*OverheadProject
}

// RecomputeResult is everything one pass over a snapshot yields. The engine
// never mutates the snapshot; cached fields the documents used to carry
// (goals, billable ratio, overhead rates) all live here.
type RecomputeResult struct {
	MemberRates    map[string]WorkerRateBundle `json:"member_rates"`
	Band           PayBand                     `json:"band"`
	Phases         []PhaseCost                 `json:"phases"`
	TotalCost      decimal.Decimal             `json:"total_cost"` // active phases only
	EquityByMember map[string]decimal.Decimal  `json:"equity_by_member"`
	TotalEquity    decimal.Decimal             `json:"total_equity"`
	Scenarios      []IncomeScenario            `json:"scenarios"`
	Distributions  []DistributionPlan          `json:"distributions"`
}
