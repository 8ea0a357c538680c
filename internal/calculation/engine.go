package calculation

import (
	"github.com/nisago/portfolio-projection/internal/domain"
	"github.com/nisago/portfolio-projection/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Projection parameter bounds, mirroring what the API accepts.
var (
	MinProjectionYears = 1
	MaxProjectionYears = 50
	MinReturnRate      = decimal.NewFromInt(-100)
	MaxReturnRate      = decimal.NewFromInt(100)
)

// ProjectionEngine drives the year-by-year future-value projection. It is
// a pure synchronous computation: one QuotaLedger per run, no I/O inside
// the loop, identical inputs always produce identical results. Engines are
// stateless between runs and safe to share across goroutines as long as
// the logger is.
type ProjectionEngine struct {
	Logger Logger
	Debug  bool
}

// NewProjectionEngine creates an engine with a no-op logger.
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: NopLogger{}}
}

// SetLogger sets the engine logger. A nil logger installs the no-op one.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// Validate checks the input parameters and then dry-runs the allocation for
// every projection year, reporting the first year in which a quota would
// overflow while none of its contributing plans allows continuing past the
// cap. Callers should invoke it before RunProjection to surface
// user-correctable problems; RunProjection repeats the check itself, so the
// loop proper can never fail.
func (pe *ProjectionEngine) Validate(input *domain.ProjectionInput) error {
	if err := validateInput(input); err != nil {
		return err
	}
	return checkCapViolations(input)
}

// RunProjection validates the input and computes the full projection:
// the year-by-year breakdown, the aggregate totals and the projected
// composition. After validation the loop is infallible; degenerate states
// (zero contributions, negative growth, exhausted lifetime quotas) are
// computed, not rejected.
func (pe *ProjectionEngine) RunProjection(input *domain.ProjectionInput) (*domain.ProjectionResult, error) {
	if err := pe.Validate(input); err != nil {
		return nil, err
	}

	rate := input.AnnualReturnRate.Div(decimal.NewFromInt(100))
	growthFactor := decimal.NewFromInt(1).Add(rate)

	ledger := NewQuotaLedger(input.PriorLifetimeUsage)
	balance := input.StartingBalance
	totalContributions := decimal.Zero
	records := make([]domain.YearRecord, 0, input.ProjectionYears)

	for year := 1; year <= input.ProjectionYears; year++ {
		windowStart, windowEnd := dateutil.ProjectionYearWindow(input.AsOf, year)
		yc := DeriveYearContributions(input.Plans, windowStart, windowEnd)

		annualBase := domain.QuotaUsage{}
		if year == 1 {
			annualBase = input.CurrentYearUsage
		}

		res := ledger.Allocate(yc.Proposed(), annualBase)

		// The general account is never capped; quota overflow also grows
		// the balance when the quota's plans allow continuing, it just
		// stays out of the usage counters.
		credited := res.Credited().Add(yc.General)
		if yc.ContinueTsumitate {
			credited = credited.Add(res.OverflowTsumitate)
		}
		if yc.ContinueGrowth {
			credited = credited.Add(res.OverflowGrowth)
		}

		balanceBeforeGrowth := balance.Add(credited)
		endingBalance := balanceBeforeGrowth.Mul(growthFactor)
		interestEarned := endingBalance.Sub(balanceBeforeGrowth)
		totalContributions = totalContributions.Add(credited)

		annualUsage := domain.QuotaUsage{
			Tsumitate: annualBase.Tsumitate.Add(res.CreditedTsumitate),
			Growth:    annualBase.Growth.Add(res.CreditedGrowth),
		}

		if pe.Debug {
			pe.Logger.Debugf("year %d: contributions=%s credited_tsumitate=%s credited_growth=%s overflow=%s ending=%s",
				year, credited.StringFixed(2), res.CreditedTsumitate.StringFixed(2),
				res.CreditedGrowth.StringFixed(2), res.Overflow().StringFixed(2), endingBalance.StringFixed(2))
		}

		records = append(records, domain.YearRecord{
			Year:                year,
			StartingBalance:     balance,
			Contributions:       credited,
			BalanceBeforeGrowth: balanceBeforeGrowth,
			GrowthRate:          rate,
			EndingBalance:       endingBalance,
			InterestEarned:      interestEarned,
			QuotaUsage:          ledger.Snapshot(annualUsage, res.Overflow()),
		})

		balance = endingBalance
	}

	result := &domain.ProjectionResult{
		StartingBalance:    input.StartingBalance,
		ProjectionYears:    input.ProjectionYears,
		AnnualReturnRate:   input.AnnualReturnRate,
		TotalContributions: totalContributions,
		TotalInterestGains: balance.Sub(input.StartingBalance).Sub(totalContributions),
		ProjectedValue:     balance,
		YearBreakdown:      records,
	}
	result.CompositionByRegion = projectCompositionByRegion(input.CompositionByRegion, balance)
	result.CompositionByAssetClass = projectCompositionByAssetClass(input.CompositionByAssetClass, balance)

	return result, nil
}

// validateInput rejects malformed parameters before any computation.
func validateInput(input *domain.ProjectionInput) error {
	if input.ProjectionYears < MinProjectionYears || input.ProjectionYears > MaxProjectionYears {
		return domain.NewInputValidationError("projection_years", "must be between 1 and 50", decimal.NewFromInt(int64(input.ProjectionYears)).String())
	}
	if input.AnnualReturnRate.LessThan(MinReturnRate) || input.AnnualReturnRate.GreaterThan(MaxReturnRate) {
		return domain.NewInputValidationError("annual_return_rate", "must be between -100 and 100", input.AnnualReturnRate.String())
	}
	if input.StartingBalance.IsNegative() {
		return domain.NewInputValidationError("starting_balance", "must be non-negative", input.StartingBalance.String())
	}
	if input.AsOf.IsZero() {
		return domain.NewInputValidationError("as_of", "is required", "")
	}
	if input.PriorLifetimeUsage.Tsumitate.IsNegative() || input.PriorLifetimeUsage.Growth.IsNegative() {
		return domain.NewInputValidationError("prior_lifetime_usage", "must be non-negative", "")
	}
	if input.CurrentYearUsage.Tsumitate.IsNegative() || input.CurrentYearUsage.Growth.IsNegative() {
		return domain.NewInputValidationError("current_year_usage", "must be non-negative", "")
	}
	for region, pct := range input.CompositionByRegion {
		if pct.IsNegative() {
			return domain.NewInputValidationError("composition_by_region", "percentages must be non-negative", string(region))
		}
	}
	for class, pct := range input.CompositionByAssetClass {
		if pct.IsNegative() {
			return domain.NewInputValidationError("composition_by_asset_class", "percentages must be non-negative", string(class))
		}
	}
	for i := range input.Plans {
		if err := input.Plans[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// checkCapViolations dry-runs every year's allocation on a throwaway ledger
// and reports the first quota overflow that no contributing plan permits.
func checkCapViolations(input *domain.ProjectionInput) error {
	ledger := NewQuotaLedger(input.PriorLifetimeUsage)
	for year := 1; year <= input.ProjectionYears; year++ {
		windowStart, windowEnd := dateutil.ProjectionYearWindow(input.AsOf, year)
		yc := DeriveYearContributions(input.Plans, windowStart, windowEnd)

		annualBase := domain.QuotaUsage{}
		if year == 1 {
			annualBase = input.CurrentYearUsage
		}
		res := ledger.Allocate(yc.Proposed(), annualBase)

		if res.OverflowTsumitate.IsPositive() && !yc.ContinueTsumitate {
			return &domain.CapViolationError{
				Year:        year,
				AccountType: domain.AccountNISATsumitate,
				Proposed:    yc.Tsumitate,
				Allowed:     res.CreditedTsumitate,
			}
		}
		if res.OverflowGrowth.IsPositive() && !yc.ContinueGrowth {
			return &domain.CapViolationError{
				Year:        year,
				AccountType: domain.AccountNISAGrowth,
				Proposed:    yc.Growth,
				Allowed:     res.CreditedGrowth,
			}
		}
	}
	return nil
}
