package models

import (
	"time"

	"github.com/google/uuid"
)

// LimitWindow identifies one rolling consumption window of a limit tracker.
type LimitWindow string

const (
	LimitWindowDaily   LimitWindow = "DAILY"
	LimitWindowMonthly LimitWindow = "MONTHLY"
	LimitWindowAnnual  LimitWindow = "ANNUAL"
	LimitWindowNightly LimitWindow = "NIGHTLY"
)

// Tag returns the analysis tag that marks an operation as still charged
// against this window.
func (w LimitWindow) Tag() AnalysisTag {
	switch w {
	case LimitWindowDaily:
		return TagDailyIntervalLimitIncluded
	case LimitWindowMonthly:
		return TagMonthlyIntervalLimitIncluded
	case LimitWindowAnnual:
		return TagAnnualIntervalLimitIncluded
	case LimitWindowNightly:
		return TagNightlyIntervalLimitIncluded
	}
	return ""
}

type PeriodStartPolicy string

const (
	PeriodStartCalendar PeriodStartPolicy = "CALENDAR"
	PeriodStartRolling  PeriodStartPolicy = "ROLLING"
)

// UserLimitTracker is the per-user rolling consumption counter that
// operations are charged against at creation time and released from by the
// interval reconciler once their window elapses.
type UserLimitTracker struct {
	ID               uuid.UUID         `json:"id"`
	UserID           uuid.UUID         `json:"userId"`
	UsedDailyLimit   int64             `json:"usedDailyLimit"`
	UsedMonthlyLimit int64             `json:"usedMonthlyLimit"`
	UsedAnnualLimit  int64             `json:"usedAnnualLimit"`
	UsedNightlyLimit int64             `json:"usedNightlyLimit"`
	PeriodStart      PeriodStartPolicy `json:"periodStart"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
	Version          int               `json:"version"`
}

// Used returns the consumed amount for one window.
func (t *UserLimitTracker) Used(w LimitWindow) int64 {
	switch w {
	case LimitWindowDaily:
		return t.UsedDailyLimit
	case LimitWindowMonthly:
		return t.UsedMonthlyLimit
	case LimitWindowAnnual:
		return t.UsedAnnualLimit
	case LimitWindowNightly:
		return t.UsedNightlyLimit
	}
	return 0
}

// Charge adds value to the window's consumption counter.
func (t *UserLimitTracker) Charge(w LimitWindow, value int64) {
	t.setUsed(w, t.Used(w)+value)
}

// Release subtracts value from the window's consumption counter, clamped at
// a floor of zero. Concurrent activity may already have reduced the counter
// below the subtrahend; the counter must never go negative.
func (t *UserLimitTracker) Release(w LimitWindow, value int64) {
	used := t.Used(w) - value
	if used < 0 {
		used = 0
	}
	t.setUsed(w, used)
}

func (t *UserLimitTracker) setUsed(w LimitWindow, value int64) {
	switch w {
	case LimitWindowDaily:
		t.UsedDailyLimit = value
	case LimitWindowMonthly:
		t.UsedMonthlyLimit = value
	case LimitWindowAnnual:
		t.UsedAnnualLimit = value
	case LimitWindowNightly:
		t.UsedNightlyLimit = value
	}
	t.UpdatedAt = time.Now().UTC()
}
