package changelist

import "time"

// Date filter choices, the same set the admin date widget offers.
const (
	BucketAny       = ""
	BucketToday     = "today"
	BucketPast7Days = "past_7_days"
	BucketThisMonth = "this_month"
	BucketThisYear  = "this_year"
)

var bucketLabels = []struct {
	value string
	label string
}{
	{BucketAny, "Any date"},
	{BucketToday, "Today"},
	{BucketPast7Days, "Past 7 days"},
	{BucketThisMonth, "This month"},
	{BucketThisYear, "This year"},
}

// DateRange is a half open interval [Since, Until).
type DateRange struct {
	Since time.Time
	Until time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Since) && t.Before(r.Until)
}

// BucketRange returns the interval selected by bucket, computed from the
// calendar in loc. ok is false for an unknown bucket and for BucketAny.
func BucketRange(bucket string, now time.Time, loc *time.Location) (DateRange, bool) {
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	tomorrow := today.AddDate(0, 0, 1)

	switch bucket {
	case BucketToday:
		return DateRange{Since: today, Until: tomorrow}, true
	case BucketPast7Days:
		return DateRange{Since: today.AddDate(0, 0, -7), Until: tomorrow}, true
	case BucketThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return DateRange{Since: first, Until: first.AddDate(0, 1, 0)}, true
	case BucketThisYear:
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return DateRange{Since: first, Until: first.AddDate(1, 0, 0)}, true
	}
	return DateRange{}, false
}
