package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestControlWindow(t *testing.T) {
	loc := time.FixedZone("UTC+13", 13*60*60)

	// shortly after local midnight; UTC truncation would land on the
	// previous local day
	now := time.Date(2026, 9, 10, 0, 30, 0, 0, loc)
	today, horizon := controlWindow(now)

	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, loc), today)
	assert.Equal(t, loc, today.Location())
	assert.Equal(t, time.Date(2026, 10, 10, 0, 0, 0, 0, loc), horizon)

	// late in the local day the window still starts at local midnight
	now = time.Date(2026, 9, 10, 23, 45, 0, 0, loc)
	today, _ = controlWindow(now)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, loc), today)
}
