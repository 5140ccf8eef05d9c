package utils

import "time"

// AlignToInterval snaps t down to the booking grid: the largest multiple of
// intervalMinutes within the hour that is <= t's minute, with seconds and
// sub-second precision discarded. The grid is anchored at minute 0 of each
// hour and the location of t is preserved.
func AlignToInterval(t time.Time, intervalMinutes int) time.Time {
	if intervalMinutes <= 0 {
		intervalMinutes = 1
	}
	minute := t.Minute() - t.Minute()%intervalMinutes
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}
