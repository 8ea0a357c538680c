package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(y, m, day int) time.Time {
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, time.UTC)
}

func TestProjectionYearWindow_FirstYearStartsAtAsOf(t *testing.T) {
	asOf := d(2026, 6, 15)

	start, end := ProjectionYearWindow(asOf, 1)

	assert.Equal(t, asOf, start)
	assert.Equal(t, d(2026, 12, 31), end)
}

func TestProjectionYearWindow_LaterYearsCoverFullCalendarYears(t *testing.T) {
	asOf := d(2026, 6, 15)

	start, end := ProjectionYearWindow(asOf, 2)
	assert.Equal(t, d(2027, 1, 1), start)
	assert.Equal(t, d(2027, 12, 31), end)

	start, end = ProjectionYearWindow(asOf, 10)
	assert.Equal(t, d(2035, 1, 1), start)
	assert.Equal(t, d(2035, 12, 31), end)
}

func TestOverlap(t *testing.T) {
	start, end, ok := Overlap(d(2026, 1, 1), d(2026, 12, 31), d(2026, 6, 1), d(2027, 6, 1))
	assert.True(t, ok)
	assert.Equal(t, d(2026, 6, 1), start)
	assert.Equal(t, d(2026, 12, 31), end)

	_, _, ok = Overlap(d(2026, 1, 1), d(2026, 12, 31), d(2027, 1, 1), d(2027, 12, 31))
	assert.False(t, ok)
}
