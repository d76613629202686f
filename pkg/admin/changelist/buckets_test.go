package changelist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketRange(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, time.March, 15, 13, 45, 0, 0, loc)
	midnight := time.Date(2026, time.March, 15, 0, 0, 0, 0, loc)

	tests := []struct {
		bucket string
		since  time.Time
		until  time.Time
	}{
		{BucketToday, midnight, midnight.AddDate(0, 0, 1)},
		{BucketPast7Days, time.Date(2026, time.March, 8, 0, 0, 0, 0, loc), midnight.AddDate(0, 0, 1)},
		{BucketThisMonth, time.Date(2026, time.March, 1, 0, 0, 0, 0, loc), time.Date(2026, time.April, 1, 0, 0, 0, 0, loc)},
		{BucketThisYear, time.Date(2026, time.January, 1, 0, 0, 0, 0, loc), time.Date(2027, time.January, 1, 0, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.bucket, func(t *testing.T) {
			r, ok := BucketRange(tt.bucket, now, loc)
			require.True(t, ok)
			assert.Equal(t, tt.since, r.Since)
			assert.Equal(t, tt.until, r.Until)
		})
	}

	_, ok := BucketRange("yesterday", now, loc)
	assert.False(t, ok)
	_, ok = BucketRange(BucketAny, now, loc)
	assert.False(t, ok)
}

func TestBucketRangeUsesLocationCalendar(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	// 20:00 UTC on the 15th is already the 16th in Jakarta.
	now := time.Date(2026, time.March, 15, 20, 0, 0, 0, time.UTC)

	r, ok := BucketRange(BucketToday, now, jakarta)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.March, 16, 0, 0, 0, 0, jakarta), r.Since)

	assert.True(t, r.Contains(now))
	assert.False(t, r.Contains(now.Add(-21*time.Hour)))
}

func TestDateRangeIsHalfOpen(t *testing.T) {
	since := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := DateRange{Since: since, Until: since.AddDate(0, 0, 1)}

	assert.True(t, r.Contains(since))
	assert.False(t, r.Contains(r.Until))
	assert.False(t, r.Contains(since.Add(-time.Nanosecond)))
}
