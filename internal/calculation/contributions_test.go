package calculation

import (
	"testing"
	"time"

	"github.com/nisago/portfolio-projection/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func monthlyPlan(account domain.AccountType, amount int64) domain.RecurringPlan {
	return domain.RecurringPlan{
		TargetAccountType: account,
		Frequency:         domain.FrequencyMonthly,
		AmountJPY:         decimal.NewFromInt(amount),
		StartDate:         date(2026, 1, 1),
	}
}

func TestAnnualContribution_Monthly(t *testing.T) {
	plan := monthlyPlan(domain.AccountNISATsumitate, 100000)

	got := AnnualContribution(&plan, date(2026, 1, 1), date(2026, 12, 31))

	assert.True(t, got.Equal(decimal.NewFromInt(1200000)))
}

func TestAnnualContribution_BonusMonths(t *testing.T) {
	plan := domain.RecurringPlan{
		TargetAccountType: domain.AccountNISAGrowth,
		Frequency:         domain.FrequencyBonusMonth,
		AmountJPY:         decimal.NewFromInt(200000),
		StartDate:         date(2026, 1, 1),
		BonusMonths:       []int{6, 12},
	}

	got := AnnualContribution(&plan, date(2026, 1, 1), date(2026, 12, 31))

	assert.True(t, got.Equal(decimal.NewFromInt(400000)))
}

func TestAnnualContribution_DailyTradingDays(t *testing.T) {
	tests := []struct {
		name          string
		highFrequency bool
		want          int64
	}{
		{"business days", false, 245000},
		{"always-open market", true, 365000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := domain.RecurringPlan{
				TargetAccountType:  domain.AccountGeneral,
				Frequency:          domain.FrequencyDaily,
				AmountJPY:          decimal.NewFromInt(1000),
				StartDate:          date(2026, 1, 1),
				HighFrequencyAsset: tt.highFrequency,
			}

			got := AnnualContribution(&plan, date(2026, 1, 1), date(2026, 12, 31))

			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)))
		})
	}
}

func TestAnnualContribution_OutsideActiveRange(t *testing.T) {
	end := date(2027, 12, 31)
	plan := domain.RecurringPlan{
		TargetAccountType: domain.AccountGeneral,
		Frequency:         domain.FrequencyMonthly,
		AmountJPY:         decimal.NewFromInt(50000),
		StartDate:         date(2027, 1, 1),
		EndDate:           &end,
	}

	assert.True(t, AnnualContribution(&plan, date(2026, 1, 1), date(2026, 12, 31)).IsZero(), "before start")
	assert.False(t, AnnualContribution(&plan, date(2027, 1, 1), date(2027, 12, 31)).IsZero(), "active year")
	assert.True(t, AnnualContribution(&plan, date(2028, 1, 1), date(2028, 12, 31)).IsZero(), "after end")
}

func TestDeriveYearContributions_PartitionsByAccount(t *testing.T) {
	plans := []domain.RecurringPlan{
		monthlyPlan(domain.AccountNISATsumitate, 100000),
		monthlyPlan(domain.AccountNISAGrowth, 150000),
		monthlyPlan(domain.AccountGeneral, 50000),
	}

	yc := DeriveYearContributions(plans, date(2026, 1, 1), date(2026, 12, 31))

	assert.True(t, yc.Tsumitate.Equal(decimal.NewFromInt(1200000)))
	assert.True(t, yc.Growth.Equal(decimal.NewFromInt(1800000)))
	assert.True(t, yc.General.Equal(decimal.NewFromInt(600000)))
	assert.True(t, yc.Total().Equal(decimal.NewFromInt(3600000)))
}

func TestDeriveYearContributions_ContinueFlagORsAcrossPlans(t *testing.T) {
	strict := monthlyPlan(domain.AccountNISAGrowth, 100000)
	permissive := monthlyPlan(domain.AccountNISAGrowth, 150000)
	permissive.ContinueIfLimitExceeded = true

	yc := DeriveYearContributions([]domain.RecurringPlan{strict, permissive}, date(2026, 1, 1), date(2026, 12, 31))

	assert.True(t, yc.ContinueGrowth, "one permissive plan lifts the whole quota")
	assert.False(t, yc.ContinueTsumitate)
}

func TestDeriveYearContributions_InactivePlanDoesNotSetFlags(t *testing.T) {
	end := date(2026, 12, 31)
	expired := monthlyPlan(domain.AccountNISATsumitate, 100000)
	expired.EndDate = &end
	expired.ContinueIfLimitExceeded = true

	yc := DeriveYearContributions([]domain.RecurringPlan{expired}, date(2027, 1, 1), date(2027, 12, 31))

	assert.True(t, yc.Tsumitate.IsZero())
	assert.False(t, yc.ContinueTsumitate)
}
