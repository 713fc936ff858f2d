package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makinimakes/power-in-numbers-sub000/internal/domain"
)

// standardProfile reproduces the reference worker: 50 weeks x 4 days x
// 6 hours, 30% tax, $4000/month fixed expenses plus a 10% savings line,
// $5000/yr unearned income, and 300 non-billable hours (ratio 0.75).
func standardProfile() *domain.WorkerProfile {
	return &domain.WorkerProfile{
		Name:     "ada",
		Schedule: standardSchedule(),
		Expenses: domain.ExpenseBook{
			TaxRatePercent: decimal.NewFromInt(30),
			Items: []domain.ExpenseItem{
				{Label: "rent+living", Amount: decimal.NewFromInt(4000), Cadence: domain.CadenceMonthly},
				{Label: "savings", Amount: decimal.NewFromInt(10), Cadence: domain.CadencePercent},
			},
		},
		Unearned: domain.UnearnedIncome{
			Items: []domain.IncomeItem{
				{Label: "grant", Amount: decimal.NewFromInt(5000), Cadence: domain.CadenceAnnual},
			},
		},
		LinesOfWork: []domain.LineOfWork{
			{
				ID:       "client",
				Label:    "client work",
				Duration: domain.LineDuration{Value: decimal.NewFromInt(50), Unit: domain.DurationWeeks},
				Activities: []domain.Activity{
					{Label: "meetings", Amount: decimal.NewFromInt(6), Unit: domain.UnitHours, Cadence: domain.PerWeek},
				},
			},
		},
		CurrentNetIncome: decimal.NewFromInt(30000),
	}
}

func TestUnearnedAnnual(t *testing.T) {
	u := domain.UnearnedIncome{Items: []domain.IncomeItem{
		{Amount: decimal.NewFromInt(100), Cadence: domain.CadenceMonthly},
		{Amount: decimal.NewFromInt(500), Cadence: domain.CadencePeriodic, Frequency: decimal.NewFromInt(4)},
		{Amount: decimal.NewFromInt(250), Cadence: domain.CadencePeriodic}, // frequency defaults to 1
		{Amount: decimal.NewFromInt(1000), Cadence: domain.CadenceAnnual},
	}}
	total := UnearnedAnnual(u)
	assert.True(t, total.Equal(decimal.NewFromInt(4450)), "got %s", total)
}

func TestDeriveGoals(t *testing.T) {
	goals := DeriveGoals(standardProfile())

	// fixedSum=48000, percentSum=10: goalNet = 48000 / 0.9
	assert.InDelta(t, 53333.33, goals.GoalNet.InexactFloat64(), 0.01)
	assert.InDelta(t, 69333.33, goals.GoalGross.InexactFloat64(), 0.01)
	assert.True(t, goals.CurrentGross.Equal(decimal.NewFromInt(39000)))
	assert.False(t, goals.Saturated)
}

func TestDeriveGoalsSaturatedPercent(t *testing.T) {
	profile := standardProfile()
	profile.Expenses.Items = append(profile.Expenses.Items,
		domain.ExpenseItem{Label: "more savings", Amount: decimal.NewFromInt(90), Cadence: domain.CadencePercent})

	goals := DeriveGoals(profile)
	assert.True(t, goals.Saturated)
	assert.True(t, goals.GoalNet.IsZero())
	assert.True(t, goals.GoalGross.IsZero())
}

func TestRatesReferenceScenario(t *testing.T) {
	bundle := Rates(standardProfile())

	require.Equal(t, domain.RateComplete, bundle.Status)
	assert.True(t, bundle.Capacity.BillableRatio.Equal(decimal.NewFromFloat(0.75)))

	// rateGoal = (69333.33 - 5000) / (1200 * 0.75)
	assert.InDelta(t, 71.48, bundle.Goal.InexactFloat64(), 0.01)
	// rateNow = (39000 - 5000) / 900
	assert.InDelta(t, 37.78, bundle.Now.InexactFloat64(), 0.01)
}

func TestRateSheetChainConsistency(t *testing.T) {
	bundle := Rates(standardProfile())
	sheet := bundle.GoalSheet
	schedule := standardProfile().Schedule

	// weekly -> daily -> hourly must agree with the headline hourly rate.
	assert.InDelta(t, sheet.Weekly.Div(schedule.DaysPerWeek).InexactFloat64(), sheet.Daily.InexactFloat64(), 1e-9)
	assert.InDelta(t, sheet.Daily.Div(schedule.HoursPerDay).InexactFloat64(), sheet.Hourly.InexactFloat64(), 1e-9)
	assert.InDelta(t, sheet.Weekly.Mul(schedule.WeeksPerYear).Div(decimal.NewFromInt(12)).InexactFloat64(),
		sheet.Monthly.InexactFloat64(), 1e-9)
	assert.InDelta(t, bundle.Goal.InexactFloat64(), sheet.Hourly.InexactFloat64(), 1e-9)
}

func TestRatesZeroScheduleFactors(t *testing.T) {
	for _, field := range []string{"weeks", "days", "hours"} {
		t.Run(field, func(t *testing.T) {
			profile := standardProfile()
			switch field {
			case "weeks":
				profile.Schedule.WeeksPerYear = decimal.Zero
			case "days":
				profile.Schedule.DaysPerWeek = decimal.Zero
			case "hours":
				profile.Schedule.HoursPerDay = decimal.Zero
			}
			bundle := Rates(profile)
			assert.Equal(t, domain.RateIncomplete, bundle.Status)
			assert.True(t, bundle.Now.IsZero())
			assert.True(t, bundle.Goal.IsZero())
		})
	}
}

func TestRatesFullyNonBillable(t *testing.T) {
	profile := standardProfile()
	profile.LinesOfWork[0].Activities[0].Amount = decimal.NewFromInt(24) // 1200h, eats the year

	bundle := Rates(profile)
	assert.Equal(t, domain.RateIncomplete, bundle.Status)
	assert.True(t, bundle.Goal.IsZero())
}

func TestRatesUnearnedAboveGross(t *testing.T) {
	profile := standardProfile()
	profile.Unearned.Items[0].Amount = decimal.NewFromInt(500000)

	bundle := Rates(profile)
	assert.Equal(t, domain.RateComplete, bundle.Status)
	assert.True(t, bundle.Now.IsZero())
	assert.True(t, bundle.Goal.IsZero())
}

func TestOverheadPoolCost(t *testing.T) {
	pool := &domain.OverheadProject{
		Name: "studio",
		Expenses: []domain.ExpenseItem{
			{Label: "rent", Amount: decimal.NewFromInt(300), Cadence: domain.CadenceMonthly},
			{Label: "insurance", Amount: decimal.NewFromInt(400), Cadence: domain.CadencePeriodic, Frequency: decimal.NewFromInt(2)},
			{Label: "contingency", Amount: decimal.NewFromInt(12), Cadence: domain.CadencePercent},
		},
	}
	cost, err := OverheadPoolCost(pool)
	require.NoError(t, err)
	// (3600 + 800) / (1 - 0.12)
	assert.InDelta(t, 5000.0, cost.InexactFloat64(), 0.01)
}

func TestOverheadPoolCostSaturated(t *testing.T) {
	pool := &domain.OverheadProject{
		Expenses: []domain.ExpenseItem{
			{Amount: decimal.NewFromInt(1000), Cadence: domain.CadenceAnnual},
			{Amount: decimal.NewFromInt(100), Cadence: domain.CadencePercent},
		},
	}
	_, err := OverheadPoolCost(pool)
	assert.ErrorIs(t, err, ErrPercentSaturated)
}

func TestOverheadRate(t *testing.T) {
	line := domain.LineOfWork{
		Duration: domain.LineDuration{Value: decimal.NewFromInt(25), Unit: domain.DurationWeeks},
		Activities: []domain.Activity{
			{Amount: decimal.NewFromInt(4), Unit: domain.UnitHours, Cadence: domain.PerWeek}, // 100h
		},
	}
	pool := &domain.OverheadProject{
		Expenses: []domain.ExpenseItem{
			{Amount: decimal.NewFromInt(2500), Cadence: domain.CadenceAnnual},
		},
	}

	rate, err := OverheadRate(line, pool, standardSchedule())
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(25)), "got %s", rate)
}

func TestOverheadRateNoActivityHours(t *testing.T) {
	line := domain.LineOfWork{
		Duration: domain.LineDuration{Value: decimal.NewFromInt(10), Unit: domain.DurationWeeks},
	}
	pool := &domain.OverheadProject{
		Expenses: []domain.ExpenseItem{{Amount: decimal.NewFromInt(1000), Cadence: domain.CadenceAnnual}},
	}

	rate, err := OverheadRate(line, pool, standardSchedule())
	require.NoError(t, err)
	assert.True(t, rate.IsZero())
}
