package domain

import (
	"github.com/shopspring/decimal"
)

// WorkSchedule describes how much of the year a worker makes available for
// work of any kind. All three factors must be positive for rate math to be
// meaningful; a zero or negative factor marks the schedule as incomplete.
type WorkSchedule struct {
	WeeksPerYear decimal.Decimal `yaml:"weeks_per_year" json:"weeks_per_year"`
	DaysPerWeek  decimal.Decimal `yaml:"days_per_week" json:"days_per_week"`
	HoursPerDay  decimal.Decimal `yaml:"hours_per_day" json:"hours_per_day"`
}

// AnnualHours returns weeks x days x hours.
func (s WorkSchedule) AnnualHours() decimal.Decimal {
	return s.WeeksPerYear.Mul(s.DaysPerWeek).Mul(s.HoursPerDay)
}

// IsComplete reports whether every schedule factor is positive.
func (s WorkSchedule) IsComplete() bool {
	return s.WeeksPerYear.IsPositive() && s.DaysPerWeek.IsPositive() && s.HoursPerDay.IsPositive()
}

// MoneyCadence describes how an expense or income line recurs.
type MoneyCadence string

const (
	CadenceMonthly  MoneyCadence = "monthly"
	CadencePeriodic MoneyCadence = "periodic"
	CadenceAnnual   MoneyCadence = "annual"
	CadencePercent  MoneyCadence = "percent"
)

// ExpenseItem is a single expense line. Percent-cadence items express a
// percentage of net income rather than a currency amount and are excluded
// from Annualized; callers gross the fixed sum up by the percent total.
type ExpenseItem struct {
	ID        string          `yaml:"id" json:"id"`
	Label     string          `yaml:"label" json:"label"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	Cadence   MoneyCadence    `yaml:"cadence" json:"cadence"`
	Frequency decimal.Decimal `yaml:"frequency,omitempty" json:"frequency,omitempty"` // times per year, periodic only
}

// Annualized converts the item to a per-year amount. Percent items return
// zero; their contribution is a gross-up, not an addend.
func (e ExpenseItem) Annualized() decimal.Decimal {
	switch e.Cadence {
	case CadenceMonthly:
		return e.Amount.Mul(decimal.NewFromInt(12))
	case CadencePeriodic:
		freq := e.Frequency
		if !freq.IsPositive() {
			freq = decimal.NewFromInt(1)
		}
		return e.Amount.Mul(freq)
	case CadencePercent:
		return decimal.Zero
	default:
		return e.Amount
	}
}

// IsPercent reports whether the item is a percent-of-income line.
func (e ExpenseItem) IsPercent() bool {
	return e.Cadence == CadencePercent
}

// IncomeItem is a single unearned-income line (grants, rental income,
// a partner's contribution). Same cadence semantics as ExpenseItem.
type IncomeItem struct {
	ID        string          `yaml:"id" json:"id"`
	Label     string          `yaml:"label" json:"label"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	Cadence   MoneyCadence    `yaml:"cadence" json:"cadence"`
	Frequency decimal.Decimal `yaml:"frequency,omitempty" json:"frequency,omitempty"`
}

// Annualized converts the item to a per-year amount.
func (i IncomeItem) Annualized() decimal.Decimal {
	switch i.Cadence {
	case CadenceMonthly:
		return i.Amount.Mul(decimal.NewFromInt(12))
	case CadencePeriodic:
		freq := i.Frequency
		if !freq.IsPositive() {
			freq = decimal.NewFromInt(1)
		}
		return i.Amount.Mul(freq)
	default:
		return i.Amount
	}
}

// ExpenseBook holds a worker's personal expense schedule and tax rate.
type ExpenseBook struct {
	TaxRatePercent decimal.Decimal `yaml:"tax_rate_percent" json:"tax_rate_percent"`
	Items          []ExpenseItem   `yaml:"items" json:"items"`
}

// UnearnedIncome holds income a worker receives without billing hours.
type UnearnedIncome struct {
	Items []IncomeItem `yaml:"items" json:"items"`
}

// ActivityUnit is the unit an activity's amount is measured in.
type ActivityUnit string

const (
	UnitHours  ActivityUnit = "hours"
	UnitDays   ActivityUnit = "days"
	UnitWeeks  ActivityUnit = "weeks"
	UnitMonths ActivityUnit = "months"
)

// ActivityCadence is how often an activity recurs.
type ActivityCadence string

const (
	PerDay   ActivityCadence = "per_day"
	PerWeek  ActivityCadence = "per_week"
	PerMonth ActivityCadence = "per_month"
	PerYear  ActivityCadence = "per_year"
)

// Activity is a recurring non-billable time commitment inside a line of
// work: meetings, admin, bookkeeping. Some unit/cadence pairs are
// nonsensical (days per day) and are flagged by the capacity normalizer
// rather than computed.
type Activity struct {
	Label   string          `yaml:"label" json:"label"`
	Amount  decimal.Decimal `yaml:"amount" json:"amount"`
	Unit    ActivityUnit    `yaml:"unit" json:"unit"`
	Cadence ActivityCadence `yaml:"cadence" json:"cadence"`
}

// DurationUnit is how a line of work's share of the year is expressed.
type DurationUnit string

const (
	DurationWeeks         DurationUnit = "weeks"
	DurationMonths        DurationUnit = "months"
	DurationPercentOfYear DurationUnit = "percent_of_year"
)

// LineDuration is the portion of the year a line of work occupies.
type LineDuration struct {
	Value decimal.Decimal `yaml:"value" json:"value"`
	Unit  DurationUnit    `yaml:"unit" json:"unit"`
}

// LineOfWork is one category of a worker's year that carries non-billable
// activities, and optionally links an overhead pool whose cost is spread
// across the line's own activity hours.
type LineOfWork struct {
	ID                string       `yaml:"id" json:"id"`
	Label             string       `yaml:"label" json:"label"`
	Duration          LineDuration `yaml:"duration" json:"duration"`
	Activities        []Activity   `yaml:"activities" json:"activities"`
	OverheadProjectID string       `yaml:"overhead_project_id,omitempty" json:"overhead_project_id,omitempty"`
}

// WorkerProfile is one worker's complete financial picture: schedule,
// expenses, unearned income, current earnings and lines of work. Derived
// values (goals, billable ratio, overhead rates) are engine outputs and are
// never stored back onto the profile.
type WorkerProfile struct {
	Name             string          `yaml:"name" json:"name"`
	Schedule         WorkSchedule    `yaml:"schedule" json:"schedule"`
	Expenses         ExpenseBook     `yaml:"expenses" json:"expenses"`
	Unearned         UnearnedIncome  `yaml:"unearned_income" json:"unearned_income"`
	LinesOfWork      []LineOfWork    `yaml:"lines_of_work" json:"lines_of_work"`
	CurrentNetIncome decimal.Decimal `yaml:"current_net_income" json:"current_net_income"`
}
