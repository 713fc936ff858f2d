package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/makinimakes/power-in-numbers-sub000/internal/domain"
)

// Document is a complete workspace file: worker profiles keyed by handle,
// overhead pools, and optionally one project that references them.
type Document struct {
	Profiles  map[string]*domain.WorkerProfile `yaml:"profiles"`
	Overheads []domain.OverheadProject         `yaml:"overhead_projects,omitempty"`
	Project   *domain.Project                  `yaml:"project,omitempty"`
}

// Snapshot converts the document into the engine's input form.
func (d *Document) Snapshot() *domain.Snapshot {
	overheads := make(map[string]*domain.OverheadProject, len(d.Overheads))
	for i := range d.Overheads {
		overheads[d.Overheads[i].ID] = &d.Overheads[i]
	}
	return &domain.Snapshot{
		Project:   d.Project,
		Profiles:  d.Profiles,
		Overheads: overheads,
	}
}

// InputParser handles parsing of workspace input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a workspace document from a YAML file, applies
// defaults and validates it.
func (ip *InputParser) LoadFromFile(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse parses raw YAML into a defaulted, validated document.
func (ip *InputParser) Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&doc)

	if err := ip.Validate(&doc); err != nil {
		return nil, fmt.Errorf("document validation failed: %w", err)
	}
	return &doc, nil
}

// ApplyDefaults fills the gaps the engine expects pre-normalized: missing
// IDs, periodic frequencies, rate sources and band modifiers.
func (ip *InputParser) ApplyDefaults(doc *Document) {
	one := decimal.NewFromInt(1)
	full := decimal.NewFromInt(100)

	defaultExpenses := func(items []domain.ExpenseItem) {
		for i := range items {
			if items[i].ID == "" {
				items[i].ID = uuid.NewString()
			}
			if items[i].Cadence == domain.CadencePeriodic && !items[i].Frequency.IsPositive() {
				items[i].Frequency = one
			}
		}
	}

	for handle, profile := range doc.Profiles {
		if profile == nil {
			continue
		}
		if profile.Name == "" {
			profile.Name = handle
		}
		defaultExpenses(profile.Expenses.Items)
		for i := range profile.Unearned.Items {
			item := &profile.Unearned.Items[i]
			if item.ID == "" {
				item.ID = uuid.NewString()
			}
			if item.Cadence == domain.CadencePeriodic && !item.Frequency.IsPositive() {
				item.Frequency = one
			}
		}
		for i := range profile.LinesOfWork {
			if profile.LinesOfWork[i].ID == "" {
				profile.LinesOfWork[i].ID = uuid.NewString()
			}
		}
	}

	for i := range doc.Overheads {
		if doc.Overheads[i].ID == "" {
			doc.Overheads[i].ID = uuid.NewString()
		}
		defaultExpenses(doc.Overheads[i].Expenses)
	}

	if doc.Project == nil {
		return
	}
	project := doc.Project
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	if project.Settings.MinModPercent.IsZero() {
		project.Settings.MinModPercent = full
	}
	if project.Settings.MaxModPercent.IsZero() {
		project.Settings.MaxModPercent = full
	}
	if project.Settings.GlobalPayRatePercent.IsZero() {
		project.Settings.GlobalPayRatePercent = full
	}
	if project.Settings.GlobalExpenseRatePercent.IsZero() {
		project.Settings.GlobalExpenseRatePercent = full
	}
	for i := range project.Phases {
		phase := &project.Phases[i]
		if phase.ID == "" {
			phase.ID = uuid.NewString()
		}
		if phase.RateSource == "" {
			phase.RateSource = domain.RateSourceProject
		}
		for j := range phase.LineItems {
			if phase.LineItems[j].ID == "" {
				phase.LineItems[j].ID = uuid.NewString()
			}
			if phase.LineItems[j].Type == "" {
				phase.LineItems[j].Type = domain.ItemLabor
			}
		}
	}
	for i := range project.IncomeSources {
		if project.IncomeSources[i].ID == "" {
			project.IncomeSources[i].ID = uuid.NewString()
		}
	}
}

// Validate checks the document for structural problems the engine cannot
// absorb. Zero and missing numeric data is the engine's concern and stays
// valid here.
func (ip *InputParser) Validate(doc *Document) error {
	for handle, profile := range doc.Profiles {
		if profile == nil {
			return fmt.Errorf("profile %q is empty", handle)
		}
		if err := ip.validateProfile(profile); err != nil {
			return fmt.Errorf("profile %q: %w", handle, err)
		}
	}
	if doc.Project != nil {
		if err := ip.validateProject(doc.Project, doc); err != nil {
			return fmt.Errorf("project %q: %w", doc.Project.Name, err)
		}
	}
	return nil
}

func (ip *InputParser) validateProfile(profile *domain.WorkerProfile) error {
	for _, item := range profile.Expenses.Items {
		if err := validCadence(item.Cadence); err != nil {
			return fmt.Errorf("expense %q: %w", item.Label, err)
		}
	}
	for _, item := range profile.Unearned.Items {
		if item.Cadence == domain.CadencePercent {
			return fmt.Errorf("income %q: percent cadence is not valid for income", item.Label)
		}
		if err := validCadence(item.Cadence); err != nil {
			return fmt.Errorf("income %q: %w", item.Label, err)
		}
	}
	for _, line := range profile.LinesOfWork {
		switch line.Duration.Unit {
		case domain.DurationWeeks, domain.DurationMonths, domain.DurationPercentOfYear, "":
		default:
			return fmt.Errorf("line %q: unknown duration unit %q", line.Label, line.Duration.Unit)
		}
		for _, act := range line.Activities {
			switch act.Unit {
			case domain.UnitHours, domain.UnitDays, domain.UnitWeeks, domain.UnitMonths:
			default:
				return fmt.Errorf("line %q activity %q: unknown unit %q", line.Label, act.Label, act.Unit)
			}
			switch act.Cadence {
			case domain.PerDay, domain.PerWeek, domain.PerMonth, domain.PerYear:
			default:
				return fmt.Errorf("line %q activity %q: unknown cadence %q", line.Label, act.Label, act.Cadence)
			}
		}
	}
	return nil
}

func (ip *InputParser) validateProject(project *domain.Project, doc *Document) error {
	if project.Name == "" {
		return fmt.Errorf("project name is required")
	}

	handles := make(map[string]bool, len(project.TeamMembers))
	for _, member := range project.TeamMembers {
		if member.Handle == "" {
			return fmt.Errorf("team member with empty handle")
		}
		handles[member.Handle] = true
	}

	for _, phase := range project.Phases {
		for _, item := range phase.LineItems {
			if err := ip.validateLineItem(&item, handles); err != nil {
				return fmt.Errorf("phase %q item %q: %w", phase.Name, item.Name, err)
			}
		}
	}

	for _, source := range project.IncomeSources {
		switch source.Status {
		case domain.IncomeConfirmed, domain.IncomeLikely, domain.IncomeNotLikely:
		default:
			return fmt.Errorf("income source %q: unknown status %q", source.Name, source.Status)
		}
	}
	return nil
}

// validateLineItem checks that exactly the variant named by Method is
// populated. Assignees outside the team are allowed; the engine treats
// them as profile-less members.
func (ip *InputParser) validateLineItem(item *domain.LineItem, _ map[string]bool) error {
	switch item.Method {
	case domain.MethodTime:
		if item.Time == nil {
			return fmt.Errorf("time method requires time fields")
		}
		switch item.Time.RateMode {
		case domain.RateCustom, domain.RatePhase, domain.RateGoal, domain.RateFlat, "":
		default:
			return fmt.Errorf("unknown rate mode %q", item.Time.RateMode)
		}
		switch item.Time.ScheduleMode {
		case domain.ScheduleCustom, domain.SchedulePhase, domain.ScheduleCurbed,
			domain.ScheduleTotal, domain.ScheduleManual, "":
		default:
			return fmt.Errorf("unknown schedule mode %q", item.Time.ScheduleMode)
		}
	case domain.MethodLumpSum:
		if item.LumpSum == nil {
			return fmt.Errorf("lump_sum method requires lump_sum fields")
		}
	case domain.MethodUnit:
		if item.Unit == nil {
			return fmt.Errorf("unit method requires unit fields")
		}
	case domain.MethodPercentage:
		if item.Percentage == nil {
			return fmt.Errorf("percentage method requires percentage fields")
		}
	default:
		return fmt.Errorf("unknown method %q", item.Method)
	}
	return nil
}

func validCadence(c domain.MoneyCadence) error {
	switch c {
	case domain.CadenceMonthly, domain.CadencePeriodic, domain.CadenceAnnual, domain.CadencePercent, "":
		return nil
	default:
		return fmt.Errorf("unknown cadence %q", c)
	}
}
