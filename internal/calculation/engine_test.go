package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makinimakes/power-in-numbers-sub000/internal/domain"
)

// benProfile is a second worker with round numbers: 1600h/yr, no
// non-billable time, goal 22.50/h, now 15/h.
func benProfile() *domain.WorkerProfile {
	return &domain.WorkerProfile{
		Name: "ben",
		Schedule: domain.WorkSchedule{
			WeeksPerYear: decimal.NewFromInt(40),
			DaysPerWeek:  decimal.NewFromInt(5),
			HoursPerDay:  decimal.NewFromInt(8),
		},
		Expenses: domain.ExpenseBook{
			Items: []domain.ExpenseItem{
				{Label: "living", Amount: decimal.NewFromInt(3000), Cadence: domain.CadenceMonthly},
			},
		},
		CurrentNetIncome: decimal.NewFromInt(24000),
	}
}

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Project: &domain.Project{
			ID: "proj", Name: "group show", Owner: "ada",
			TeamMembers: []domain.Member{
				{Handle: "ada"}, {Handle: "ben"}, {Handle: "ghost"},
			},
			Settings: testSettings(),
			Phases: []domain.Phase{
				{
					ID: "ph1", Name: "build", Active: true,
					Weeks: decimal.NewFromInt(2), Hours: decimal.NewFromInt(10),
					LineItems: []domain.LineItem{
						{ID: "work", Name: "fabrication", Method: domain.MethodTime,
							Type: domain.ItemLabor, Assignee: "ben",
							Time: &domain.TimeItem{Rate: decimal.NewFromInt(10),
								RateMode: domain.RateCustom, ScheduleMode: domain.SchedulePhase}},
						{ID: "mat", Name: "materials", Method: domain.MethodLumpSum,
							Type:    domain.ItemExpense,
							LumpSum: &domain.LumpSumItem{Amount: decimal.NewFromInt(100)}},
					},
				},
				{
					ID: "ph2", Name: "abandoned idea", Active: false,
					LineItems: []domain.LineItem{
						{ID: "big", Method: domain.MethodLumpSum, Type: domain.ItemExpense,
							LumpSum: &domain.LumpSumItem{Amount: decimal.NewFromInt(9999)}},
					},
				},
			},
			IncomeSources: []domain.IncomeSource{
				{Name: "fee", Amount: decimal.NewFromInt(1000), Status: domain.IncomeConfirmed},
				{Name: "maybe", Amount: decimal.NewFromInt(500), Status: domain.IncomeLikely},
			},
		},
		Profiles: map[string]*domain.WorkerProfile{
			"ada": standardProfile(),
			"ben": benProfile(),
		},
	}
}

func TestRecompute(t *testing.T) {
	result, err := NewEngine().Recompute(testSnapshot())
	require.NoError(t, err)

	// Member rates: ben's are exact, ghost has no profile.
	ben := result.MemberRates["ben"]
	assert.True(t, ben.Goal.Equal(decimal.NewFromFloat(22.5)), "got %s", ben.Goal)
	assert.True(t, ben.Now.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, domain.RateIncomplete, result.MemberRates["ghost"].Status)
	assert.True(t, result.MemberRates["ghost"].Now.IsZero())

	// Band: highest now is ada's, lowest positive goal is ben's; the
	// ceiling clamps up to the highNow floor.
	assert.InDelta(t, 37.78, result.Band.Min.InexactFloat64(), 0.01)
	assert.InDelta(t, 37.78, result.Band.Max.InexactFloat64(), 0.01)

	// Inactive phase is costed for display but excluded from the total.
	require.Len(t, result.Phases, 2)
	assert.True(t, result.Phases[1].Total.Equal(decimal.NewFromInt(9999)))
	assert.True(t, result.TotalCost.Equal(decimal.NewFromInt(300)), "got %s", result.TotalCost)

	// Ben worked 20h at 10 against a 22.50 goal.
	assert.True(t, result.EquityByMember["ben"].Equal(decimal.NewFromInt(250)), "got %s", result.EquityByMember["ben"])
	assert.True(t, result.TotalEquity.Equal(decimal.NewFromInt(250)))

	// Scenarios: confirmed 1000, possible 1500; always against confirmed cost.
	require.Len(t, result.Scenarios, 3)
	confirmed := result.Scenarios[0]
	assert.Equal(t, domain.ScenarioConfirmed, confirmed.Kind)
	assert.True(t, confirmed.NetProfit.Equal(decimal.NewFromInt(700)))
	assert.True(t, confirmed.NetAfterDistribution.Equal(decimal.NewFromInt(450)))

	possible := result.Scenarios[1]
	assert.True(t, possible.NetProfit.Equal(decimal.NewFromInt(1200)))

	// Distribution at the confirmed tier pays ben's full liability.
	require.Len(t, result.Distributions, 3)
	plan := result.Distributions[0]
	assert.True(t, plan.Distributable.Equal(decimal.NewFromInt(250)))
	require.Len(t, plan.Payouts, 1)
	assert.True(t, plan.Payouts[0].Payout.Equal(decimal.NewFromInt(250)))
	assert.True(t, plan.Payouts[0].Remaining.IsZero())
}

func TestRecomputeIsIdempotent(t *testing.T) {
	engine := NewEngine()
	snap := testSnapshot()

	first, err := engine.Recompute(snap)
	require.NoError(t, err)
	second, err := engine.Recompute(snap)
	require.NoError(t, err)

	assert.True(t, first.TotalCost.Equal(second.TotalCost))
	assert.True(t, first.TotalEquity.Equal(second.TotalEquity))
	assert.True(t, first.Band.Min.Equal(second.Band.Min))
	assert.True(t, first.Band.Max.Equal(second.Band.Max))
}

func TestRecomputeDoesNotMutateSnapshot(t *testing.T) {
	snap := testSnapshot()
	before := snap.Profiles["ada"].Expenses.Items[0].Amount

	_, err := NewEngine().Recompute(snap)
	require.NoError(t, err)

	assert.True(t, snap.Profiles["ada"].Expenses.Items[0].Amount.Equal(before))
	assert.Len(t, snap.Project.Phases[0].LineItems, 2)
}

func TestRecomputeCapacityExceeded(t *testing.T) {
	snap := testSnapshot()
	snap.Project.Phases[0].LineItems[0].Time.ScheduleMode = domain.ScheduleTotal
	snap.Project.Phases[0].LineItems[0].Time.TotalHours = decimal.NewFromInt(500) // capacity is 20

	_, err := NewEngine().Recompute(snap)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	engine := NewEngine()
	engine.AllowOverCapacity = true
	result, err := engine.Recompute(snap)
	require.NoError(t, err)
	assert.True(t, result.Phases[0].Items[0].Hours.Equal(decimal.NewFromInt(500)))
}

func TestRecomputeOverheadSelections(t *testing.T) {
	snap := testSnapshot()
	ada := snap.Profiles["ada"]
	ada.LinesOfWork[0].OverheadProjectID = "studio"
	snap.Overheads = map[string]*domain.OverheadProject{
		"studio": {
			ID: "studio", Name: "studio",
			// 300 non-billable hours on ada's line: 3/h surcharge.
			Expenses: []domain.ExpenseItem{
				{Amount: decimal.NewFromInt(900), Cadence: domain.CadenceAnnual},
			},
		},
	}
	snap.Project.Phases[0].LineItems[0].Assignee = "ada"
	snap.Project.Phases[0].LineItems[0].Time.OverheadSelections = []string{"client"}

	result, err := NewEngine().Recompute(snap)
	require.NoError(t, err)

	ratesAda := result.MemberRates["ada"]
	require.Contains(t, ratesAda.OverheadRates, "client")
	assert.True(t, ratesAda.OverheadRates["client"].Equal(decimal.NewFromInt(3)))

	// 20h at 10/h plus 20h of 3/h surcharge.
	item := result.Phases[0].Items[0]
	assert.True(t, item.Overhead.Equal(decimal.NewFromInt(60)))
	assert.True(t, item.Cost.Equal(decimal.NewFromInt(260)), "got %s", item.Cost)
}

func TestRecomputeNilSnapshot(t *testing.T) {
	_, err := NewEngine().Recompute(nil)
	assert.Error(t, err)
	_, err = NewEngine().Recompute(&domain.Snapshot{})
	assert.Error(t, err)
}
