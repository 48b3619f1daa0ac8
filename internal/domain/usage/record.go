// Package usage holds the quota-ledger domain: per-scope usage records,
// increment deltas, membership tiers, and the limit decision logic.
package usage

import (
	"fmt"
	"time"

	"inkwell/internal/domain/identity"
)

// Record is the usage ledger entry for one scope and calendar month.
// One live record exists per scope per month; the daily bucket inside it is
// only trustworthy when the stored day matches the current day.
type Record struct {
	scope        identity.Scope
	year         int
	month        time.Month
	day          int
	dailyUsage   int64
	monthlyUsage int64
	requestCount int64
	inputTokens  int64
	outputTokens int64
	updatedAt    time.Time
}

// ReconstructRecord rebuilds a record from persistence.
func ReconstructRecord(
	scope identity.Scope,
	year int,
	month time.Month,
	day int,
	dailyUsage, monthlyUsage, requestCount, inputTokens, outputTokens int64,
	updatedAt time.Time,
) (*Record, error) {
	if scope.ID == "" {
		return nil, fmt.Errorf("usage record scope id is required")
	}
	if year <= 0 {
		return nil, fmt.Errorf("invalid usage record year: %d", year)
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid usage record month: %d", month)
	}
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("invalid usage record day: %d", day)
	}

	return &Record{
		scope:        scope,
		year:         year,
		month:        month,
		day:          day,
		dailyUsage:   dailyUsage,
		monthlyUsage: monthlyUsage,
		requestCount: requestCount,
		inputTokens:  inputTokens,
		outputTokens: outputTokens,
		updatedAt:    updatedAt,
	}, nil
}

func (r *Record) Scope() identity.Scope { return r.scope }
func (r *Record) Year() int             { return r.year }
func (r *Record) Month() time.Month     { return r.month }

// Day returns the day-of-month the daily bucket was last written on.
func (r *Record) Day() int { return r.day }

func (r *Record) DailyUsage() int64   { return r.dailyUsage }
func (r *Record) MonthlyUsage() int64 { return r.monthlyUsage }
func (r *Record) RequestCount() int64 { return r.requestCount }
func (r *Record) InputTokens() int64  { return r.inputTokens }
func (r *Record) OutputTokens() int64 { return r.outputTokens }
func (r *Record) UpdatedAt() time.Time {
	return r.updatedAt
}

// EffectiveDailyUsage applies the lazy rollover: a daily bucket written on
// a different day counts as zero.
func (r *Record) EffectiveDailyUsage(today int) int64 {
	return Rollover(r.day, today, r.dailyUsage)
}

// Rollover treats a stored counter as implicitly reset once its recorded
// day no longer matches today. There is no scheduled reset job; this value
// comparison is the only rollover mechanism.
func Rollover(storedDay, today int, storedValue int64) int64 {
	if storedDay == today {
		return storedValue
	}
	return 0
}
