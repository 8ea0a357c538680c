package calculation

import (
	"github.com/nisago/portfolio-projection/internal/domain"
	"github.com/shopspring/decimal"
)

// Composition projection assumes uniform growth across all slices, so the
// input percentages carry over unchanged and each slice's projected amount
// is its share of the final value. This is a stated simplification; the
// engine does not model per-asset return rates.

func projectCompositionByRegion(composition map[domain.AssetRegion]decimal.Decimal, finalValue decimal.Decimal) map[domain.AssetRegion]domain.CompositionEntry {
	if len(composition) == 0 {
		return nil
	}
	out := make(map[domain.AssetRegion]domain.CompositionEntry, len(composition))
	for region, pct := range composition {
		out[region] = compositionEntry(pct, finalValue)
	}
	return out
}

func projectCompositionByAssetClass(composition map[domain.AssetClass]decimal.Decimal, finalValue decimal.Decimal) map[domain.AssetClass]domain.CompositionEntry {
	if len(composition) == 0 {
		return nil
	}
	out := make(map[domain.AssetClass]domain.CompositionEntry, len(composition))
	for class, pct := range composition {
		out[class] = compositionEntry(pct, finalValue)
	}
	return out
}

func compositionEntry(pct, finalValue decimal.Decimal) domain.CompositionEntry {
	return domain.CompositionEntry{
		Amount:     finalValue.Mul(pct).Div(decimal.NewFromInt(100)),
		Percentage: pct,
	}
}
