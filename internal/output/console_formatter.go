package output

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/nisago/portfolio-projection/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders a human-readable summary: headline totals, the
// year-by-year table and the projected composition.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "Portfolio Projection (%d years @ %s%%)\n", result.ProjectionYears, result.AnnualReturnRate.String())
	fmt.Fprintf(buf, "%s\n\n", divider(60))
	fmt.Fprintf(buf, "Starting balance:     %14s JPY\n", result.StartingBalance.StringFixed(0))
	fmt.Fprintf(buf, "Total contributions:  %14s JPY\n", result.TotalContributions.StringFixed(0))
	fmt.Fprintf(buf, "Total interest gains: %14s JPY\n", result.TotalInterestGains.StringFixed(0))
	fmt.Fprintf(buf, "Projected value:      %14s JPY\n\n", result.ProjectedValue.StringFixed(0))

	fmt.Fprintf(buf, "%-5s %14s %14s %14s %12s %14s\n",
		"Year", "Start", "Contrib", "End", "Interest", "NISA Overflow")
	for _, yr := range result.YearBreakdown {
		fmt.Fprintf(buf, "%-5d %14s %14s %14s %12s %14s\n",
			yr.Year,
			yr.StartingBalance.StringFixed(0),
			yr.Contributions.StringFixed(0),
			yr.EndingBalance.StringFixed(0),
			yr.InterestEarned.StringFixed(0),
			yr.QuotaUsage.OverflowToGeneral.StringFixed(0))
	}

	final := result.FinalYear()
	fmt.Fprintf(buf, "\nLifetime NISA usage after year %d:\n", final.Year)
	fmt.Fprintf(buf, "  Tsumitate: %s used\n", final.QuotaUsage.LifetimeTsumitate.Used.StringFixed(0))
	fmt.Fprintf(buf, "  Growth:    %s used of %s\n",
		final.QuotaUsage.LifetimeGrowth.Used.StringFixed(0),
		final.QuotaUsage.LifetimeGrowth.Limit.StringFixed(0))
	fmt.Fprintf(buf, "  Total:     %s used of %s (%s remaining)\n",
		final.QuotaUsage.LifetimeTotal.Used.StringFixed(0),
		final.QuotaUsage.LifetimeTotal.Limit.StringFixed(0),
		final.QuotaUsage.LifetimeTotal.Remaining.StringFixed(0))

	if len(result.CompositionByRegion) > 0 {
		fmt.Fprintf(buf, "\nProjected composition by region:\n")
		writeComposition(buf, regionComposition(result.CompositionByRegion))
	}
	if len(result.CompositionByAssetClass) > 0 {
		fmt.Fprintf(buf, "\nProjected composition by asset class:\n")
		writeComposition(buf, classComposition(result.CompositionByAssetClass))
	}

	return buf.Bytes(), nil
}

type compositionRow struct {
	label      string
	amount     decimal.Decimal
	percentage decimal.Decimal
}

func regionComposition(m map[domain.AssetRegion]domain.CompositionEntry) []compositionRow {
	rows := make([]compositionRow, 0, len(m))
	for region, entry := range m {
		rows = append(rows, compositionRow{string(region), entry.Amount, entry.Percentage})
	}
	return rows
}

func classComposition(m map[domain.AssetClass]domain.CompositionEntry) []compositionRow {
	rows := make([]compositionRow, 0, len(m))
	for class, entry := range m {
		rows = append(rows, compositionRow{string(class), entry.Amount, entry.Percentage})
	}
	return rows
}

func writeComposition(buf *bytes.Buffer, rows []compositionRow) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].label < rows[j].label })
	for _, row := range rows {
		fmt.Fprintf(buf, "  %-22s %14s JPY  (%s%%)\n", row.label, row.amount.StringFixed(0), row.percentage.StringFixed(1))
	}
}

func divider(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '='
	}
	return string(b)
}

func intToString(i int) string {
	return strconv.Itoa(i)
}
