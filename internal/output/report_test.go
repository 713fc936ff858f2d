package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makinimakes/power-in-numbers-sub000/internal/domain"
)

func sampleResult() (*domain.Project, *domain.RecomputeResult) {
	project := &domain.Project{Name: "group show"}
	result := &domain.RecomputeResult{
		MemberRates: map[string]domain.WorkerRateBundle{
			"ada": {Now: decimal.NewFromInt(35), Goal: decimal.NewFromInt(70), Status: domain.RateComplete},
		},
		Band: domain.PayBand{Min: decimal.NewFromInt(35), Max: decimal.NewFromInt(40)},
		Phases: []domain.PhaseCost{
			{
				PhaseID: "p1", Name: "build", Active: true,
				Labor: decimal.NewFromInt(800), Expenses: decimal.NewFromInt(150),
				Total: decimal.NewFromInt(950),
				Items: []domain.ItemCost{
					{ItemID: "i1", Name: "fabrication", Assignee: "ada", Type: domain.ItemLabor,
						Method: domain.MethodTime, EffectiveRate: decimal.NewFromInt(40),
						Hours: decimal.NewFromInt(20), Cost: decimal.NewFromInt(800)},
				},
			},
			{PhaseID: "p2", Name: "later", Active: false},
		},
		TotalCost:      decimal.NewFromInt(950),
		EquityByMember: map[string]decimal.Decimal{"ada": decimal.NewFromInt(600)},
		TotalEquity:    decimal.NewFromInt(600),
		Scenarios: []domain.IncomeScenario{
			{Kind: domain.ScenarioConfirmed, Income: decimal.NewFromInt(2000),
				NetProfit: decimal.NewFromInt(1050), NetAfterDistribution: decimal.NewFromInt(450)},
		},
		Distributions: []domain.DistributionPlan{
			{Scenario: domain.ScenarioConfirmed, Distributable: decimal.NewFromInt(600),
				Payouts: []domain.MemberPayout{
					{Member: "ada", Owed: decimal.NewFromInt(600), Payout: decimal.NewFromInt(600)},
				}},
		},
	}
	return project, result
}

func TestProjectConsoleReport(t *testing.T) {
	project, result := sampleResult()
	var buf bytes.Buffer

	err := NewReportGenerator(&buf).GenerateProjectReport(project, result, "console")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "group show")
	assert.Contains(t, out, "build")
	assert.Contains(t, out, "inactive, excluded")
	assert.Contains(t, out, "$950.00")
	assert.Contains(t, out, "ada")
}

func TestProjectJSONReport(t *testing.T) {
	project, result := sampleResult()
	var buf bytes.Buffer

	err := NewReportGenerator(&buf).GenerateProjectReport(project, result, "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "band")
	assert.Contains(t, decoded, "phases")
	assert.Contains(t, decoded, "equity_by_member")
}

func TestProjectCSVReport(t *testing.T) {
	project, result := sampleResult()
	var buf bytes.Buffer

	err := NewReportGenerator(&buf).GenerateProjectReport(project, result, "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2) // header plus one item row
	assert.Contains(t, lines[0], "effective_rate")
	assert.Contains(t, lines[1], "fabrication")
}

func TestRatesReport(t *testing.T) {
	bundle := domain.WorkerRateBundle{
		Now:    decimal.NewFromFloat(37.78),
		Goal:   decimal.NewFromFloat(71.48),
		Status: domain.RateIncomplete,
		Capacity: domain.CapacityBreakdown{
			Unresolved: []domain.UnresolvedActivity{
				{Line: "teaching", Activity: "prep", Unit: domain.UnitDays, Cadence: domain.PerDay},
			},
		},
	}
	var buf bytes.Buffer

	err := NewReportGenerator(&buf).GenerateRatesReport("ada", bundle, "console")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ada")
	assert.Contains(t, out, "incomplete")
	assert.Contains(t, out, "revise")
}

func TestUnsupportedFormat(t *testing.T) {
	project, result := sampleResult()
	err := NewReportGenerator(&bytes.Buffer{}).GenerateProjectReport(project, result, "parchment")
	assert.Error(t, err)
}
