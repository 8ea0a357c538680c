package calculation

import (
	"github.com/nisago/portfolio-projection/internal/domain"
	"github.com/shopspring/decimal"
)

// NISA contribution limits under the 2024+ system, in JPY.
var (
	AnnualLimitTsumitate = decimal.NewFromInt(1200000)
	AnnualLimitGrowth    = decimal.NewFromInt(2400000)
	AnnualLimitTotal     = decimal.NewFromInt(3600000)
	LifetimeLimitTotal   = decimal.NewFromInt(18000000)
	LifetimeLimitGrowth  = decimal.NewFromInt(12000000)
)

// QuotaLedger tracks cumulative lifetime NISA usage across the years of a
// single projection run. One ledger belongs to exactly one run; it is
// seeded from the investor's historical usage, mutated once per year by
// Allocate, and discarded when the run completes.
type QuotaLedger struct {
	lifetime domain.QuotaUsage
}

// NewQuotaLedger creates a ledger seeded with prior lifetime usage.
func NewQuotaLedger(prior domain.QuotaUsage) *QuotaLedger {
	return &QuotaLedger{lifetime: prior}
}

// Lifetime returns the cumulative lifetime usage recorded so far.
func (l *QuotaLedger) Lifetime() domain.QuotaUsage {
	return l.lifetime
}

// Clone returns an independent copy, used for dry-run cap validation.
func (l *QuotaLedger) Clone() *QuotaLedger {
	return &QuotaLedger{lifetime: l.lifetime}
}

// AllocationResult reports how one year's proposed NISA contributions were
// split between credited quota usage and overflow to the general account.
type AllocationResult struct {
	CreditedTsumitate decimal.Decimal
	CreditedGrowth    decimal.Decimal
	OverflowTsumitate decimal.Decimal
	OverflowGrowth    decimal.Decimal
}

// Credited returns the total amount credited across both quotas.
func (r AllocationResult) Credited() decimal.Decimal {
	return r.CreditedTsumitate.Add(r.CreditedGrowth)
}

// Overflow returns the total amount that fell through to the general account.
func (r AllocationResult) Overflow() decimal.Decimal {
	return r.OverflowTsumitate.Add(r.OverflowGrowth)
}

// Allocate applies one projection year's proposed contributions to the
// quotas, honouring the annual per-quota caps, the shared annual cap, the
// growth quota's lifetime cap and the shared lifetime cap simultaneously.
//
// annualBase is usage already charged against this calendar year's annual
// caps (non-zero only in year 1, where the investor may have invested
// before the projection's as-of date). It narrows the annual caps but does
// not advance lifetime counters, which already reflect it.
//
// The tsumitate quota is always satisfied before the growth quota when the
// two compete for the shared annual or lifetime budget. Allocate never
// fails: amounts that cannot be credited are returned as overflow, and the
// lifetime counters advance exactly once, by the credited amounts.
func (l *QuotaLedger) Allocate(proposed, annualBase domain.QuotaUsage) AllocationResult {
	proposedTsumitate := nonNegative(proposed.Tsumitate)
	proposedGrowth := nonNegative(proposed.Growth)

	sharedAnnual := nonNegative(AnnualLimitTotal.Sub(annualBase.Total()))
	sharedLifetime := nonNegative(LifetimeLimitTotal.Sub(l.lifetime.Total()))

	// Tsumitate first. Its lifetime room is bounded only by the shared
	// lifetime cap, so lifetime exhaustion can starve it even when the
	// static annual cap still has room.
	effectiveTsumitate := decimal.Min(
		nonNegative(AnnualLimitTsumitate.Sub(annualBase.Tsumitate)),
		sharedLifetime,
	)
	creditedTsumitate := nonNegative(decimal.Min(proposedTsumitate, effectiveTsumitate, sharedAnnual))
	sharedAnnual = sharedAnnual.Sub(creditedTsumitate)
	sharedLifetime = sharedLifetime.Sub(creditedTsumitate)

	effectiveGrowth := decimal.Min(
		nonNegative(AnnualLimitGrowth.Sub(annualBase.Growth)),
		nonNegative(LifetimeLimitGrowth.Sub(l.lifetime.Growth)),
		sharedLifetime,
	)
	creditedGrowth := nonNegative(decimal.Min(proposedGrowth, effectiveGrowth, sharedAnnual))

	l.lifetime.Tsumitate = l.lifetime.Tsumitate.Add(creditedTsumitate)
	l.lifetime.Growth = l.lifetime.Growth.Add(creditedGrowth)

	return AllocationResult{
		CreditedTsumitate: creditedTsumitate,
		CreditedGrowth:    creditedGrowth,
		OverflowTsumitate: proposedTsumitate.Sub(creditedTsumitate),
		OverflowGrowth:    proposedGrowth.Sub(creditedGrowth),
	}
}

// Snapshot builds the quota usage view for one year record. annual is the
// year's total annual usage (base plus credited) and overflow the amount
// that fell through to the general account this year.
func (l *QuotaLedger) Snapshot(annual domain.QuotaUsage, overflow decimal.Decimal) domain.QuotaSnapshot {
	return domain.QuotaSnapshot{
		Tsumitate:         usageEntry(annual.Tsumitate, AnnualLimitTsumitate),
		Growth:            usageEntry(annual.Growth, AnnualLimitGrowth),
		Total:             usageEntry(annual.Total(), AnnualLimitTotal),
		LifetimeTsumitate: usageEntry(l.lifetime.Tsumitate, LifetimeLimitTotal),
		LifetimeGrowth:    usageEntry(l.lifetime.Growth, LifetimeLimitGrowth),
		LifetimeTotal:     usageEntry(l.lifetime.Total(), LifetimeLimitTotal),
		OverflowToGeneral: overflow,
	}
}

func usageEntry(used, limit decimal.Decimal) domain.UsageEntry {
	return domain.UsageEntry{
		Used:      used,
		Remaining: nonNegative(limit.Sub(used)),
		Limit:     limit,
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
