package domain

import (
	"fmt"
	"time"

	"github.com/nisago/portfolio-projection/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// AccountType identifies the account a contribution is credited to.
// The two NISA quotas are capped; the general account is not.
type AccountType string

const (
	AccountNISATsumitate AccountType = "NISA_TSUMITATE"
	AccountNISAGrowth    AccountType = "NISA_GROWTH"
	AccountGeneral       AccountType = "GENERAL"
)

// Valid reports whether the account type is one of the known values.
func (a AccountType) Valid() bool {
	switch a {
	case AccountNISATsumitate, AccountNISAGrowth, AccountGeneral:
		return true
	}
	return false
}

// IsNISA reports whether contributions to this account count against NISA quotas.
func (a AccountType) IsNISA() bool {
	return a == AccountNISATsumitate || a == AccountNISAGrowth
}

// Frequency is the cadence of a recurring investment plan.
type Frequency string

const (
	FrequencyDaily      Frequency = "DAILY"
	FrequencyMonthly    Frequency = "MONTHLY"
	FrequencyBonusMonth Frequency = "BONUS_MONTH"
)

// Valid reports whether the frequency is one of the known values.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyMonthly, FrequencyBonusMonth:
		return true
	}
	return false
}

// AssetRegion classifies a holding or plan target by market region.
type AssetRegion string

const (
	RegionDomesticStocks      AssetRegion = "DOMESTIC_STOCKS"
	RegionInternationalStocks AssetRegion = "INTERNATIONAL_STOCKS"
	RegionDomesticBonds       AssetRegion = "DOMESTIC_BONDS"
	RegionInternationalBonds  AssetRegion = "INTERNATIONAL_BONDS"
	RegionDomesticREITs       AssetRegion = "DOMESTIC_REITS"
	RegionInternationalREITs  AssetRegion = "INTERNATIONAL_REITS"
	RegionCryptocurrency      AssetRegion = "CRYPTOCURRENCY"
	RegionOther               AssetRegion = "OTHER"
)

// AssetClass classifies a holding or plan target by instrument kind.
type AssetClass string

const (
	ClassIndividualStock AssetClass = "INDIVIDUAL_STOCK"
	ClassMutualFund      AssetClass = "MUTUAL_FUND"
	ClassCryptocurrency  AssetClass = "CRYPTOCURRENCY"
	ClassREIT            AssetClass = "REIT"
	ClassGovernmentBond  AssetClass = "GOVERNMENT_BOND"
	ClassOther           AssetClass = "OTHER"
)

// RecurringPlan is an immutable description of a recurring investment.
// Amounts are JPY. A plan is active for any projection year whose calendar
// window overlaps [StartDate, EndDate]; an absent EndDate means open-ended.
type RecurringPlan struct {
	Name              string      `json:"name"`
	TargetAccountType AccountType `json:"target_account_type"`
	TargetAssetRegion AssetRegion `json:"target_asset_region"`
	TargetAssetClass  AssetClass  `json:"target_asset_class"`

	Frequency Frequency       `json:"frequency"`
	AmountJPY decimal.Decimal `json:"amount_jpy"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	// BonusMonths lists the months (1-12) a BONUS_MONTH plan pays out.
	BonusMonths []int `json:"bonus_months,omitempty"`

	// HighFrequencyAsset marks instruments that trade every calendar day
	// (e.g. cryptocurrency); DAILY plans then contribute 365 times a year
	// instead of the 245 business-day approximation.
	HighFrequencyAsset bool `json:"high_frequency_asset"`

	// ContinueIfLimitExceeded lets contributions overflow into the general
	// account once NISA quotas are exhausted instead of being a plan error.
	ContinueIfLimitExceeded bool `json:"continue_if_limit_exceeded"`
}

// Validate checks the plan's structural invariants.
func (p *RecurringPlan) Validate() error {
	if !p.TargetAccountType.Valid() {
		return NewInputValidationError("target_account_type", "must be NISA_TSUMITATE, NISA_GROWTH or GENERAL", string(p.TargetAccountType))
	}
	if !p.Frequency.Valid() {
		return NewInputValidationError("frequency", "must be DAILY, MONTHLY or BONUS_MONTH", string(p.Frequency))
	}
	if p.AmountJPY.LessThanOrEqual(decimal.Zero) {
		return NewInputValidationError("amount_jpy", "must be positive", p.AmountJPY.String())
	}
	if p.StartDate.IsZero() {
		return NewInputValidationError("start_date", "is required", "")
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return NewInputValidationError("end_date", "must be on or after start_date", p.EndDate.Format("2006-01-02"))
	}
	if p.Frequency == FrequencyBonusMonth {
		if len(p.BonusMonths) == 0 {
			return NewInputValidationError("bonus_months", "must be non-empty for BONUS_MONTH frequency", "")
		}
		for _, m := range p.BonusMonths {
			if m < 1 || m > 12 {
				return NewInputValidationError("bonus_months", "entries must be between 1 and 12", fmt.Sprintf("%d", m))
			}
		}
	}
	return nil
}

// ActiveDuring reports whether the plan's date range overlaps [windowStart, windowEnd].
func (p *RecurringPlan) ActiveDuring(windowStart, windowEnd time.Time) bool {
	planEnd := windowEnd
	if p.EndDate != nil {
		planEnd = *p.EndDate
	}
	_, _, ok := dateutil.Overlap(p.StartDate, planEnd, windowStart, windowEnd)
	return ok
}
