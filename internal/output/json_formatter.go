package output

import (
	"encoding/json"

	"github.com/nisago/portfolio-projection/internal/domain"
)

// JSONFormatter serializes the projection result as pretty-printed JSON.
// Decimal values render as fixed strings, so output is byte-stable across
// runs with identical inputs.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
