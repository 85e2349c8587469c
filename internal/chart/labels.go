package chart

import (
	"time"
)

const (
	dateLayout     = "Jan 2"
	dateTimeLayout = "Jan 2 15:04"
)

// TimeFrameLabeler spreads total points evenly across the last Days days
// ending at Now, and formats each point's timestamp.
type TimeFrameLabeler struct {
	Days     int
	Now      time.Time
	Location *time.Location
}

// Timestamp returns the instant of point i: Now - (total-i) * (Days / total).
func (l TimeFrameLabeler) Timestamp(i, total int) time.Time {
	if total <= 0 {
		return l.Now
	}
	window := time.Duration(l.Days) * 24 * time.Hour
	increment := window / time.Duration(total)
	return l.Now.Add(-time.Duration(total-i) * increment)
}

// Label formats point i; the hour and minute are omitted for windows longer than a day.
func (l TimeFrameLabeler) Label(i, total int) string {
	ts := l.Timestamp(i, total)
	if l.Location != nil {
		ts = ts.In(l.Location)
	}
	if l.Days > 1 {
		return ts.Format(dateLayout)
	}
	return ts.Format(dateTimeLayout)
}
