package calculation

import (
	"time"

	"github.com/nisago/portfolio-projection/internal/domain"
	"github.com/shopspring/decimal"
)

// Trading-day counts used to annualise DAILY plans. Markets that trade
// every calendar day (cryptocurrency) get 365; everything else uses a
// 245-day business-day approximation.
const (
	TradingDaysAlwaysOpen = 365
	TradingDaysBusiness   = 245
)

// AnnualContribution returns the amount a plan contributes during one
// projection year whose calendar window is [windowStart, windowEnd].
// Plans whose active range does not overlap the window contribute zero.
func AnnualContribution(plan *domain.RecurringPlan, windowStart, windowEnd time.Time) decimal.Decimal {
	if !plan.ActiveDuring(windowStart, windowEnd) {
		return decimal.Zero
	}
	switch plan.Frequency {
	case domain.FrequencyMonthly:
		return plan.AmountJPY.Mul(decimal.NewFromInt(12))
	case domain.FrequencyBonusMonth:
		return plan.AmountJPY.Mul(decimal.NewFromInt(int64(len(plan.BonusMonths))))
	case domain.FrequencyDaily:
		days := TradingDaysBusiness
		if plan.HighFrequencyAsset {
			days = TradingDaysAlwaysOpen
		}
		return plan.AmountJPY.Mul(decimal.NewFromInt(int64(days)))
	}
	return decimal.Zero
}

// YearContributions is one projection year's contributions partitioned by
// target account, plus the per-quota continue-past-cap policy aggregated
// across the quota's contributing plans (OR semantics: one permissive plan
// lets the whole quota's overflow continue into the general account).
type YearContributions struct {
	Tsumitate decimal.Decimal
	Growth    decimal.Decimal
	General   decimal.Decimal

	ContinueTsumitate bool
	ContinueGrowth    bool
}

// Proposed returns the NISA-quota portion as an allocation request.
func (yc YearContributions) Proposed() domain.QuotaUsage {
	return domain.QuotaUsage{Tsumitate: yc.Tsumitate, Growth: yc.Growth}
}

// Total returns the combined contributions across all accounts.
func (yc YearContributions) Total() decimal.Decimal {
	return yc.Tsumitate.Add(yc.Growth).Add(yc.General)
}

// DeriveYearContributions computes and partitions all plans' contributions
// for the projection year covering [windowStart, windowEnd].
func DeriveYearContributions(plans []domain.RecurringPlan, windowStart, windowEnd time.Time) YearContributions {
	var yc YearContributions
	for i := range plans {
		plan := &plans[i]
		amount := AnnualContribution(plan, windowStart, windowEnd)
		if amount.IsZero() {
			continue
		}
		switch plan.TargetAccountType {
		case domain.AccountNISATsumitate:
			yc.Tsumitate = yc.Tsumitate.Add(amount)
			yc.ContinueTsumitate = yc.ContinueTsumitate || plan.ContinueIfLimitExceeded
		case domain.AccountNISAGrowth:
			yc.Growth = yc.Growth.Add(amount)
			yc.ContinueGrowth = yc.ContinueGrowth || plan.ContinueIfLimitExceeded
		default:
			yc.General = yc.General.Add(amount)
		}
	}
	return yc
}
