package config

import (
	"fmt"
	"os"
	"time"

	"github.com/nisago/portfolio-projection/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// The YAML request format is owned by this package; domain types stay
// transport-agnostic. Amounts are plain YAML numbers and dates are
// ISO 8601 day strings ("2026-01-01").

type requestFile struct {
	StartingBalance         float64            `yaml:"starting_balance"`
	CompositionByRegion     map[string]float64 `yaml:"composition_by_region,omitempty"`
	CompositionByAssetClass map[string]float64 `yaml:"composition_by_asset_class,omitempty"`
	Plans                   []planFile         `yaml:"plans,omitempty"`
	PriorLifetimeUsage      usageFile          `yaml:"prior_lifetime_usage,omitempty"`
	CurrentYearUsage        usageFile          `yaml:"current_year_usage,omitempty"`
	ProjectionYears         int                `yaml:"projection_years"`
	AnnualReturnRate        float64            `yaml:"annual_return_rate"`
	AsOf                    string             `yaml:"as_of,omitempty"`
}

type planFile struct {
	Name                    string  `yaml:"name,omitempty"`
	TargetAccountType       string  `yaml:"target_account_type"`
	TargetAssetRegion       string  `yaml:"target_asset_region,omitempty"`
	TargetAssetClass        string  `yaml:"target_asset_class,omitempty"`
	Frequency               string  `yaml:"frequency"`
	AmountJPY               float64 `yaml:"amount_jpy"`
	StartDate               string  `yaml:"start_date"`
	EndDate                 string  `yaml:"end_date,omitempty"`
	BonusMonths             []int   `yaml:"bonus_months,omitempty"`
	HighFrequencyAsset      bool    `yaml:"high_frequency_asset,omitempty"`
	ContinueIfLimitExceeded bool    `yaml:"continue_if_limit_exceeded,omitempty"`
}

type usageFile struct {
	Tsumitate float64 `yaml:"tsumitate"`
	Growth    float64 `yaml:"growth"`
}

const dateLayout = "2006-01-02"

// InputParser handles parsing of projection request files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a projection request from a YAML file. An absent
// as_of date defaults to today (midnight UTC) so hand-written request
// files stay short; persisted requests should pin it for reproducibility.
func (ip *InputParser) LoadFromFile(filename string) (*domain.ProjectionInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file requestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	input, err := file.toDomain()
	if err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	if err := ip.ValidateInput(input); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	return input, nil
}

func (rf *requestFile) toDomain() (*domain.ProjectionInput, error) {
	input := &domain.ProjectionInput{
		StartingBalance:    decimal.NewFromFloat(rf.StartingBalance),
		ProjectionYears:    rf.ProjectionYears,
		AnnualReturnRate:   decimal.NewFromFloat(rf.AnnualReturnRate),
		PriorLifetimeUsage: rf.PriorLifetimeUsage.toDomain(),
		CurrentYearUsage:   rf.CurrentYearUsage.toDomain(),
	}

	if rf.AsOf != "" {
		asOf, err := time.Parse(dateLayout, rf.AsOf)
		if err != nil {
			return nil, fmt.Errorf("as_of must be a YYYY-MM-DD date: %w", err)
		}
		input.AsOf = asOf
	} else {
		now := time.Now().UTC()
		input.AsOf = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	if len(rf.CompositionByRegion) > 0 {
		input.CompositionByRegion = make(map[domain.AssetRegion]decimal.Decimal, len(rf.CompositionByRegion))
		for region, pct := range rf.CompositionByRegion {
			input.CompositionByRegion[domain.AssetRegion(region)] = decimal.NewFromFloat(pct)
		}
	}
	if len(rf.CompositionByAssetClass) > 0 {
		input.CompositionByAssetClass = make(map[domain.AssetClass]decimal.Decimal, len(rf.CompositionByAssetClass))
		for class, pct := range rf.CompositionByAssetClass {
			input.CompositionByAssetClass[domain.AssetClass(class)] = decimal.NewFromFloat(pct)
		}
	}

	for i := range rf.Plans {
		plan, err := rf.Plans[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("plan %d (%s): %w", i, planLabel(rf.Plans[i].Name), err)
		}
		input.Plans = append(input.Plans, plan)
	}

	return input, nil
}

func (pf *planFile) toDomain() (domain.RecurringPlan, error) {
	plan := domain.RecurringPlan{
		Name:                    pf.Name,
		TargetAccountType:       domain.AccountType(pf.TargetAccountType),
		TargetAssetRegion:       domain.AssetRegion(pf.TargetAssetRegion),
		TargetAssetClass:        domain.AssetClass(pf.TargetAssetClass),
		Frequency:               domain.Frequency(pf.Frequency),
		AmountJPY:               decimal.NewFromFloat(pf.AmountJPY),
		BonusMonths:             pf.BonusMonths,
		HighFrequencyAsset:      pf.HighFrequencyAsset,
		ContinueIfLimitExceeded: pf.ContinueIfLimitExceeded,
	}

	if pf.StartDate != "" {
		start, err := time.Parse(dateLayout, pf.StartDate)
		if err != nil {
			return domain.RecurringPlan{}, fmt.Errorf("start_date must be a YYYY-MM-DD date: %w", err)
		}
		plan.StartDate = start
	}
	if pf.EndDate != "" {
		end, err := time.Parse(dateLayout, pf.EndDate)
		if err != nil {
			return domain.RecurringPlan{}, fmt.Errorf("end_date must be a YYYY-MM-DD date: %w", err)
		}
		plan.EndDate = &end
	}

	return plan, nil
}

func (uf usageFile) toDomain() domain.QuotaUsage {
	return domain.QuotaUsage{
		Tsumitate: decimal.NewFromFloat(uf.Tsumitate),
		Growth:    decimal.NewFromFloat(uf.Growth),
	}
}

// ValidateInput checks the structural shape of a parsed request. The
// calculation engine repeats the parameter checks and additionally
// dry-runs the quota allocation; this layer only rejects requests that
// are malformed on their face.
func (ip *InputParser) ValidateInput(input *domain.ProjectionInput) error {
	if input.ProjectionYears < 1 || input.ProjectionYears > 50 {
		return fmt.Errorf("projection_years must be between 1 and 50, got %d", input.ProjectionYears)
	}
	if input.AnnualReturnRate.LessThan(decimal.NewFromInt(-100)) || input.AnnualReturnRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("annual_return_rate must be between -100 and 100, got %s", input.AnnualReturnRate.String())
	}
	if input.StartingBalance.IsNegative() {
		return fmt.Errorf("starting_balance cannot be negative")
	}
	for i := range input.Plans {
		if err := input.Plans[i].Validate(); err != nil {
			return fmt.Errorf("plan %d (%s): %w", i, planLabel(input.Plans[i].Name), err)
		}
	}
	return nil
}

func planLabel(name string) string {
	if name != "" {
		return name
	}
	return "unnamed"
}

// MarshalInput renders a projection input back into the YAML request
// format, used by the `example` subcommand.
func (ip *InputParser) MarshalInput(input *domain.ProjectionInput) ([]byte, error) {
	file := requestFile{
		StartingBalance:  input.StartingBalance.InexactFloat64(),
		ProjectionYears:  input.ProjectionYears,
		AnnualReturnRate: input.AnnualReturnRate.InexactFloat64(),
		PriorLifetimeUsage: usageFile{
			Tsumitate: input.PriorLifetimeUsage.Tsumitate.InexactFloat64(),
			Growth:    input.PriorLifetimeUsage.Growth.InexactFloat64(),
		},
		CurrentYearUsage: usageFile{
			Tsumitate: input.CurrentYearUsage.Tsumitate.InexactFloat64(),
			Growth:    input.CurrentYearUsage.Growth.InexactFloat64(),
		},
	}
	if !input.AsOf.IsZero() {
		file.AsOf = input.AsOf.Format(dateLayout)
	}
	if len(input.CompositionByRegion) > 0 {
		file.CompositionByRegion = make(map[string]float64, len(input.CompositionByRegion))
		for region, pct := range input.CompositionByRegion {
			file.CompositionByRegion[string(region)] = pct.InexactFloat64()
		}
	}
	if len(input.CompositionByAssetClass) > 0 {
		file.CompositionByAssetClass = make(map[string]float64, len(input.CompositionByAssetClass))
		for class, pct := range input.CompositionByAssetClass {
			file.CompositionByAssetClass[string(class)] = pct.InexactFloat64()
		}
	}
	for i := range input.Plans {
		plan := &input.Plans[i]
		pf := planFile{
			Name:                    plan.Name,
			TargetAccountType:       string(plan.TargetAccountType),
			TargetAssetRegion:       string(plan.TargetAssetRegion),
			TargetAssetClass:        string(plan.TargetAssetClass),
			Frequency:               string(plan.Frequency),
			AmountJPY:               plan.AmountJPY.InexactFloat64(),
			StartDate:               plan.StartDate.Format(dateLayout),
			BonusMonths:             plan.BonusMonths,
			HighFrequencyAsset:      plan.HighFrequencyAsset,
			ContinueIfLimitExceeded: plan.ContinueIfLimitExceeded,
		}
		if plan.EndDate != nil {
			pf.EndDate = plan.EndDate.Format(dateLayout)
		}
		file.Plans = append(file.Plans, pf)
	}
	return yaml.Marshal(&file)
}

// CreateExampleInput returns a populated example request, used by the
// `example` subcommand to scaffold a starting file.
func (ip *InputParser) CreateExampleInput() *domain.ProjectionInput {
	startDate, _ := time.Parse(dateLayout, "2025-01-01")
	bonusEnd, _ := time.Parse(dateLayout, "2030-12-31")
	asOf, _ := time.Parse(dateLayout, "2025-06-01")

	return &domain.ProjectionInput{
		StartingBalance: decimal.NewFromInt(5000000),
		CompositionByRegion: map[domain.AssetRegion]decimal.Decimal{
			domain.RegionDomesticStocks:      decimal.NewFromInt(40),
			domain.RegionInternationalStocks: decimal.NewFromInt(50),
			domain.RegionCryptocurrency:      decimal.NewFromInt(10),
		},
		CompositionByAssetClass: map[domain.AssetClass]decimal.Decimal{
			domain.ClassMutualFund:     decimal.NewFromInt(80),
			domain.ClassCryptocurrency: decimal.NewFromInt(10),
			domain.ClassREIT:           decimal.NewFromInt(10),
		},
		Plans: []domain.RecurringPlan{
			{
				Name:                    "Monthly index fund",
				TargetAccountType:       domain.AccountNISATsumitate,
				TargetAssetRegion:       domain.RegionInternationalStocks,
				TargetAssetClass:        domain.ClassMutualFund,
				Frequency:               domain.FrequencyMonthly,
				AmountJPY:               decimal.NewFromInt(100000),
				StartDate:               startDate,
				ContinueIfLimitExceeded: true,
			},
			{
				Name:              "Bonus-month top-up",
				TargetAccountType: domain.AccountNISAGrowth,
				TargetAssetRegion: domain.RegionDomesticStocks,
				TargetAssetClass:  domain.ClassIndividualStock,
				Frequency:         domain.FrequencyBonusMonth,
				AmountJPY:         decimal.NewFromInt(200000),
				StartDate:         startDate,
				EndDate:           &bonusEnd,
				BonusMonths:       []int{6, 12},
			},
			{
				Name:               "Daily crypto accumulation",
				TargetAccountType:  domain.AccountGeneral,
				TargetAssetRegion:  domain.RegionCryptocurrency,
				TargetAssetClass:   domain.ClassCryptocurrency,
				Frequency:          domain.FrequencyDaily,
				AmountJPY:          decimal.NewFromInt(1000),
				StartDate:          startDate,
				HighFrequencyAsset: true,
			},
		},
		PriorLifetimeUsage: domain.QuotaUsage{
			Tsumitate: decimal.NewFromInt(600000),
			Growth:    decimal.NewFromInt(1200000),
		},
		CurrentYearUsage: domain.QuotaUsage{
			Tsumitate: decimal.NewFromInt(600000),
			Growth:    decimal.Zero,
		},
		ProjectionYears:  20,
		AnnualReturnRate: decimal.NewFromInt(5),
		AsOf:             asOf,
	}
}
