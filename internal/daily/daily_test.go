package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 2026-10-17 08:00 at +10 is still 2026-10-16 in UTC.
	assert.Equal(t, "2026-10-16", DateKey(time.Date(2026, 10, 17, 8, 0, 0, 0, loc)))
}

func TestSeed(t *testing.T) {
	day := time.Date(2026, 10, 16, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-16", Seed(day, ""))
	assert.Equal(t, "prod:2026-10-16", Seed(day, "prod"))
	assert.Equal(t, Seed(day, "prod"), Seed(day.Add(-23*time.Hour), "prod"))
	assert.NotEqual(t, Seed(day, "prod"), Seed(day.Add(time.Minute), "prod"))
}
