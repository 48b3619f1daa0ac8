// Package biztime anchors quota period boundaries to the business timezone.
// All storage and transport use UTC; the business timezone is only used to
// decide which calendar day and month a request falls into, so the daily
// bucket rolls over at the user's midnight rather than UTC midnight.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "Asia/Seoul"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
// If tz is empty, defaults to Asia/Seoul.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone location, auto-initializing with
// the default timezone if Init was never called.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// CivilDate returns the (year, month, day) the given instant falls into in
// the business timezone. Quota records are keyed by these values.
func CivilDate(t time.Time) (year int, month time.Month, day int) {
	bizTime := t.In(Location())
	return bizTime.Year(), bizTime.Month(), bizTime.Day()
}

// StartOfNextDayUTC returns the next business-day midnight, converted to UTC.
// Used for daily-limit reset hints.
func StartOfNextDayUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	next := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day()+1, 0, 0, 0, 0, Location())
	return next.UTC()
}

// StartOfNextMonthUTC returns the first business-day midnight of the next
// month, converted to UTC. Used for monthly-limit reset hints.
func StartOfNextMonthUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	next := time.Date(bizTime.Year(), bizTime.Month()+1, 1, 0, 0, 0, 0, Location())
	return next.UTC()
}

// FormatInBizTimezone formats a UTC time as a string in business timezone.
func FormatInBizTimezone(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
