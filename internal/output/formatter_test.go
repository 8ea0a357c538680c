package output

import (
	"os"
	"strings"
	"testing"

	"github.com/nisago/portfolio-projection/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *domain.ProjectionResult {
	return &domain.ProjectionResult{
		StartingBalance:    decimal.NewFromInt(1000000),
		ProjectionYears:    2,
		AnnualReturnRate:   decimal.NewFromInt(5),
		TotalContributions: decimal.NewFromInt(2400000),
		TotalInterestGains: decimal.NewFromInt(233000),
		ProjectedValue:     decimal.NewFromInt(3633000),
		CompositionByRegion: map[domain.AssetRegion]domain.CompositionEntry{
			domain.RegionDomesticStocks: {
				Amount:     decimal.NewFromInt(3633000),
				Percentage: decimal.NewFromInt(100),
			},
		},
		YearBreakdown: []domain.YearRecord{
			{
				Year:                1,
				StartingBalance:     decimal.NewFromInt(1000000),
				Contributions:       decimal.NewFromInt(1200000),
				BalanceBeforeGrowth: decimal.NewFromInt(2200000),
				GrowthRate:          decimal.NewFromFloat(0.05),
				EndingBalance:       decimal.NewFromInt(2310000),
				InterestEarned:      decimal.NewFromInt(110000),
			},
			{
				Year:                2,
				StartingBalance:     decimal.NewFromInt(2310000),
				Contributions:       decimal.NewFromInt(1200000),
				BalanceBeforeGrowth: decimal.NewFromInt(3510000),
				GrowthRate:          decimal.NewFromFloat(0.05),
				EndingBalance:       decimal.NewFromInt(3685500),
				InterestEarned:      decimal.NewFromInt(175500),
			},
		},
	}
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"json", "json"},
		{"JSON", "json"},
		{"json-pretty", "json"},
		{"csv", "csv"},
		{"csv-yearly", "csv"},
		{"console", "console"},
		{"text", "console"},
		{"table", "console"},
	}
	for _, tt := range tests {
		f := GetFormatterByName(tt.query)
		require.NotNil(t, f, "formatter %q", tt.query)
		assert.Equal(t, tt.want, f.Name())
	}
	assert.Nil(t, GetFormatterByName("xml"))
}

func TestJSONFormatter_RoundTripsFieldSet(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleResult())
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, "\"projected_total_value\"")
	assert.Contains(t, s, "\"year_by_year_breakdown\"")
	assert.Contains(t, s, "\"projected_composition_by_region\"")
	assert.Contains(t, s, "\"nisa_usage\"")
}

func TestJSONFormatter_Deterministic(t *testing.T) {
	result := sampleResult()
	first, err := JSONFormatter{}.Format(result)
	require.NoError(t, err)
	second, err := JSONFormatter{}.Format(result)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCSVFormatter_OneRowPerYear(t *testing.T) {
	data, err := CSVFormatter{}.Format(sampleResult())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3, "header plus two year rows")
	assert.True(t, strings.HasPrefix(lines[0], "Year,StartingBalance"))
	assert.True(t, strings.HasPrefix(lines[1], "1,1000000.00,1200000.00"))
	assert.True(t, strings.HasPrefix(lines[2], "2,2310000.00"))
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFormatted(JSONFormatter{}, sampleResult(), dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"projected_total_value\"")
}

func TestConsoleFormatter_ShowsTotalsAndComposition(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleResult())
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, "Projected value:")
	assert.Contains(t, s, "3633000")
	assert.Contains(t, s, "DOMESTIC_STOCKS")
	assert.Contains(t, s, "Lifetime NISA usage")
}
