package domain

import (
	"github.com/shopspring/decimal"
)

// Member identifies a project collaborator. Handle is the key used to look
// up the member's WorkerProfile (email or username); a member whose handle
// resolves to no profile contributes zero rates and an incomplete status.
type Member struct {
	Handle string `yaml:"handle" json:"handle"`
	Name   string `yaml:"name,omitempty" json:"name,omitempty"`
}

// ProjectSettings carries the project-wide rate knobs.
type ProjectSettings struct {
	MinModPercent            decimal.Decimal `yaml:"min_mod_percent" json:"min_mod_percent"`
	MaxModPercent            decimal.Decimal `yaml:"max_mod_percent" json:"max_mod_percent"`
	GlobalPayRatePercent     decimal.Decimal `yaml:"global_pay_rate_percent" json:"global_pay_rate_percent"`
	GlobalExpenseRatePercent decimal.Decimal `yaml:"global_expense_rate_percent" json:"global_expense_rate_percent"`
}

// RateSource selects where a phase takes its pay/expense modifiers from.
type RateSource string

const (
	RateSourceProject  RateSource = "project"
	RateSourceOverride RateSource = "override"
)

// Phase is a time-boxed budget bucket within a project. Inactive phases are
// kept in the document but excluded from every project-level aggregate.
type Phase struct {
	ID                 string          `yaml:"id" json:"id"`
	Name               string          `yaml:"name" json:"name"`
	Weeks              decimal.Decimal `yaml:"weeks" json:"weeks"`
	Hours              decimal.Decimal `yaml:"hours" json:"hours"` // per week
	Active             bool            `yaml:"active" json:"active"`
	RateSource         RateSource      `yaml:"rate_source" json:"rate_source"`
	PayRatePercent     decimal.Decimal `yaml:"pay_rate_percent,omitempty" json:"pay_rate_percent,omitempty"`
	ExpenseRatePercent decimal.Decimal `yaml:"expense_rate_percent,omitempty" json:"expense_rate_percent,omitempty"`
	LineItems          []LineItem      `yaml:"line_items" json:"line_items"`
}

// PayModifier returns the phase's effective pay modifier percent, falling
// back to the project-wide rate unless the phase overrides it.
func (p Phase) PayModifier(settings ProjectSettings) decimal.Decimal {
	if p.RateSource == RateSourceOverride {
		return p.PayRatePercent
	}
	return settings.GlobalPayRatePercent
}

// ExpenseModifier returns the phase's effective expense modifier percent.
func (p Phase) ExpenseModifier(settings ProjectSettings) decimal.Decimal {
	if p.RateSource == RateSourceOverride {
		return p.ExpenseRatePercent
	}
	return settings.GlobalExpenseRatePercent
}

// Capacity returns the phase's total budgeted hours (weeks x hours/week).
func (p Phase) Capacity() decimal.Decimal {
	return p.Weeks.Mul(p.Hours)
}

// ItemType separates labor entries from pass-through expenses.
type ItemType string

const (
	ItemLabor   ItemType = "labor"
	ItemExpense ItemType = "expense"
)

// CostMethod is the tag of the LineItem union.
type CostMethod string

const (
	MethodTime       CostMethod = "time"
	MethodLumpSum    CostMethod = "lump_sum"
	MethodUnit       CostMethod = "unit"
	MethodPercentage CostMethod = "percentage"
)

// RateMode selects how a time item's hourly rate is resolved.
type RateMode string

const (
	RateCustom RateMode = "custom" // rate as entered, no clamping
	RatePhase  RateMode = "phase"  // base x phase modifier, band-clamped, goal-capped
	RateGoal   RateMode = "goal"   // assignee's fresh goal rate, band-clamped, goal-capped
	RateFlat   RateMode = "flat"   // fixed fee; hourly rate only imputed for equity
)

// ScheduleMode selects how a time item's weeks/hours are resolved.
type ScheduleMode string

const (
	ScheduleCustom ScheduleMode = "custom" // as entered
	SchedulePhase  ScheduleMode = "phase"  // inherit phase weeks and hours
	ScheduleCurbed ScheduleMode = "curbed" // per-field min of item value and phase value
	ScheduleTotal  ScheduleMode = "total"  // explicit total hours, checked against phase capacity
	ScheduleManual ScheduleMode = "manual" // as entered, never inherits
)

// LineItem is one entry inside a phase, polymorphic over Method. Exactly one
// variant pointer matching Method must be populated.
type LineItem struct {
	ID       string     `yaml:"id" json:"id"`
	Name     string     `yaml:"name" json:"name"`
	Assignee string     `yaml:"assignee,omitempty" json:"assignee,omitempty"` // member handle, labor items
	Type     ItemType   `yaml:"type" json:"type"`
	Method   CostMethod `yaml:"method" json:"method"`

	Time       *TimeItem       `yaml:"time,omitempty" json:"time,omitempty"`
	LumpSum    *LumpSumItem    `yaml:"lump_sum,omitempty" json:"lump_sum,omitempty"`
	Unit       *UnitItem       `yaml:"unit,omitempty" json:"unit,omitempty"`
	Percentage *PercentageItem `yaml:"percentage,omitempty" json:"percentage,omitempty"`
}

// TimeItem is rate x schedule labor, plus an optional overhead surcharge.
// OverheadRate, when positive, is used as-is; otherwise OverheadSelections
// names lines of work on the assignee's profile whose derived overhead
// rates are summed.
type TimeItem struct {
	Rate               decimal.Decimal `yaml:"rate" json:"rate"`
	RateMode           RateMode        `yaml:"rate_mode" json:"rate_mode"`
	FlatFee            decimal.Decimal `yaml:"flat_fee,omitempty" json:"flat_fee,omitempty"`
	Weeks              decimal.Decimal `yaml:"weeks,omitempty" json:"weeks,omitempty"`
	Hours              decimal.Decimal `yaml:"hours,omitempty" json:"hours,omitempty"` // per week
	TotalHours         decimal.Decimal `yaml:"total_hours,omitempty" json:"total_hours,omitempty"`
	ScheduleMode       ScheduleMode    `yaml:"schedule_mode" json:"schedule_mode"`
	OverheadRate       decimal.Decimal `yaml:"overhead_rate,omitempty" json:"overhead_rate,omitempty"`
	OverheadSelections []string        `yaml:"overhead_selections,omitempty" json:"overhead_selections,omitempty"`
}

// LumpSumItem is a flat amount.
type LumpSumItem struct {
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// UnitItem is rate x count.
type UnitItem struct {
	Rate  decimal.Decimal `yaml:"rate" json:"rate"`
	Count decimal.Decimal `yaml:"count" json:"count"`
}

// PercentageItem takes a share of the phase's non-percentage subtotal,
// grossed up so percentage fees do not erode each other.
type PercentageItem struct {
	Percent decimal.Decimal `yaml:"percent" json:"percent"`
}

// IncomeStatus is the confidence tier of a project income source.
type IncomeStatus string

const (
	IncomeConfirmed IncomeStatus = "confirmed"
	IncomeLikely    IncomeStatus = "likely"
	IncomeNotLikely IncomeStatus = "not_likely"
)

// IncomeSource is one expected payment into the project.
type IncomeSource struct {
	ID     string          `yaml:"id" json:"id"`
	Name   string          `yaml:"name" json:"name"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
	Status IncomeStatus    `yaml:"status" json:"status"`
}

// Project is a shared budget document: team, phases, income sources and
// rate settings. Saves are full-document overwrites, so the engine treats
// every invocation as a fresh snapshot.
type Project struct {
	ID            string          `yaml:"id" json:"id"`
	Name          string          `yaml:"name" json:"name"`
	Owner         string          `yaml:"owner" json:"owner"`
	TeamMembers   []Member        `yaml:"team_members" json:"team_members"`
	Phases        []Phase         `yaml:"phases" json:"phases"`
	IncomeSources []IncomeSource  `yaml:"income_sources" json:"income_sources"`
	Settings      ProjectSettings `yaml:"settings" json:"settings"`
}

// OverheadProject is a named pool of business costs. Dividing its total by
// a line of work's activity hours yields a per-hour surcharge.
type OverheadProject struct {
	ID       string        `yaml:"id" json:"id"`
	Name     string        `yaml:"name" json:"name"`
	Expenses []ExpenseItem `yaml:"expenses" json:"expenses"`
}
