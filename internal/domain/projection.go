package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectionInput is the immutable snapshot a projection run consumes.
// Callers assemble it once from their stores before calling the engine;
// the year loop never re-reads external state.
type ProjectionInput struct {
	// StartingBalance is the current total portfolio value in JPY.
	StartingBalance decimal.Decimal `json:"starting_balance"`

	// CompositionByRegion and CompositionByAssetClass hold the current
	// composition as percentages (values sum to ~100).
	CompositionByRegion     map[AssetRegion]decimal.Decimal `json:"composition_by_region,omitempty"`
	CompositionByAssetClass map[AssetClass]decimal.Decimal  `json:"composition_by_asset_class,omitempty"`

	Plans []RecurringPlan `json:"plans"`

	// PriorLifetimeUsage seeds the quota ledger with the investor's actual
	// historical NISA usage so projections start from real state.
	PriorLifetimeUsage QuotaUsage `json:"prior_lifetime_usage"`

	// CurrentYearUsage counts against year 1's annual caps only; it is
	// already reflected in PriorLifetimeUsage and never double-counted
	// against lifetime quotas.
	CurrentYearUsage QuotaUsage `json:"current_year_usage"`

	ProjectionYears int `json:"projection_years"`

	// AnnualReturnRate is a percentage, e.g. 5 for 5%.
	AnnualReturnRate decimal.Decimal `json:"annual_return_rate"`

	// AsOf anchors projection year 1 to a calendar year. Supplying it
	// explicitly keeps runs reproducible; the zero value is rejected.
	AsOf time.Time `json:"as_of"`
}

// QuotaUsage is a pair of amounts charged against the two NISA quotas.
type QuotaUsage struct {
	Tsumitate decimal.Decimal `json:"tsumitate"`
	Growth    decimal.Decimal `json:"growth"`
}

// Total returns the combined usage across both quotas.
func (u QuotaUsage) Total() decimal.Decimal {
	return u.Tsumitate.Add(u.Growth)
}

// UsageEntry is one used/remaining/limit triple in a quota snapshot.
type UsageEntry struct {
	Used      decimal.Decimal `json:"used"`
	Remaining decimal.Decimal `json:"remaining"`
	Limit     decimal.Decimal `json:"limit"`
}

// QuotaSnapshot captures NISA quota state after one projection year's
// allocation: this year's usage against annual caps, the cumulative
// lifetime usage, and the amount that overflowed to the general account.
type QuotaSnapshot struct {
	Tsumitate         UsageEntry      `json:"tsumitate"`
	Growth            UsageEntry      `json:"growth"`
	Total             UsageEntry      `json:"total"`
	LifetimeTsumitate UsageEntry      `json:"lifetime_tsumitate"`
	LifetimeGrowth    UsageEntry      `json:"lifetime_growth"`
	LifetimeTotal     UsageEntry      `json:"lifetime_total"`
	OverflowToGeneral decimal.Decimal `json:"overflow_to_general"`
}

// YearRecord is one projected year. Records are immutable once emitted and
// the sequence is fully deterministic for identical inputs.
type YearRecord struct {
	Year                int             `json:"year"`
	StartingBalance     decimal.Decimal `json:"starting_balance"`
	Contributions       decimal.Decimal `json:"contributions"`
	BalanceBeforeGrowth decimal.Decimal `json:"balance_before_growth"`
	GrowthRate          decimal.Decimal `json:"growth_rate"`
	EndingBalance       decimal.Decimal `json:"ending_balance"`
	InterestEarned      decimal.Decimal `json:"interest_earned"`
	QuotaUsage          QuotaSnapshot   `json:"nisa_usage"`
}

// CompositionEntry is one slice of the projected composition.
type CompositionEntry struct {
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ProjectionResult aggregates a full projection run.
type ProjectionResult struct {
	StartingBalance    decimal.Decimal `json:"starting_balance"`
	ProjectionYears    int             `json:"projection_years"`
	AnnualReturnRate   decimal.Decimal `json:"annual_return_rate"`
	TotalContributions decimal.Decimal `json:"total_accumulated_contributions"`
	TotalInterestGains decimal.Decimal `json:"total_interest_gains"`
	ProjectedValue     decimal.Decimal `json:"projected_total_value"`

	CompositionByRegion     map[AssetRegion]CompositionEntry `json:"projected_composition_by_region,omitempty"`
	CompositionByAssetClass map[AssetClass]CompositionEntry  `json:"projected_composition_by_asset_class,omitempty"`

	YearBreakdown []YearRecord `json:"year_by_year_breakdown"`
}

// FinalYear returns the last projected year record.
func (r *ProjectionResult) FinalYear() YearRecord {
	if len(r.YearBreakdown) == 0 {
		return YearRecord{}
	}
	return r.YearBreakdown[len(r.YearBreakdown)-1]
}
