package output

import (
	"bytes"
	"encoding/csv"

	"github.com/nisago/portfolio-projection/internal/domain"
)

// CSVFormatter emits one row per projected year with the quota usage
// columns the year-by-year breakdown carries.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Year", "StartingBalance", "Contributions", "BalanceBeforeGrowth",
		"EndingBalance", "InterestEarned",
		"TsumitateUsed", "TsumitateRemaining", "GrowthUsed", "GrowthRemaining",
		"LifetimeTotalUsed", "LifetimeTotalRemaining", "OverflowToGeneral",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, yr := range result.YearBreakdown {
		row := []string{
			intToString(yr.Year),
			yr.StartingBalance.StringFixed(2),
			yr.Contributions.StringFixed(2),
			yr.BalanceBeforeGrowth.StringFixed(2),
			yr.EndingBalance.StringFixed(2),
			yr.InterestEarned.StringFixed(2),
			yr.QuotaUsage.Tsumitate.Used.StringFixed(2),
			yr.QuotaUsage.Tsumitate.Remaining.StringFixed(2),
			yr.QuotaUsage.Growth.Used.StringFixed(2),
			yr.QuotaUsage.Growth.Remaining.StringFixed(2),
			yr.QuotaUsage.LifetimeTotal.Used.StringFixed(2),
			yr.QuotaUsage.LifetimeTotal.Remaining.StringFixed(2),
			yr.QuotaUsage.OverflowToGeneral.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
