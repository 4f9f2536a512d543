// Package capacity holds the planning arithmetic: working-day counting,
// quarter and sprint capacity formulas, over-capacity reconciliation, the
// federal holiday generator and the status-history time distributor. All of
// it is pure; persistence and the Linear API stay in the service layer.
package capacity

import "time"

// Day truncates t to its civil calendar day in UTC. Callers are responsible
// for normalizing inputs to a single calendar before counting.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// HolidaySet indexes holiday dates by civil day for O(1) lookup.
type HolidaySet map[time.Time]struct{}

// NewHolidaySet builds a set from holiday dates, ignoring time-of-day.
func NewHolidaySet(dates []time.Time) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[Day(d)] = struct{}{}
	}
	return set
}

// Contains reports whether t's calendar day is a holiday.
func (s HolidaySet) Contains(t time.Time) bool {
	_, ok := s[Day(t)]
	return ok
}

// WorkingDays counts business days between start and end inclusive,
// excluding weekends and any day in holidays. An empty range (start after
// end) yields 0.
func WorkingDays(start, end time.Time, holidays HolidaySet) int {
	return len(BusinessDays(start, end, holidays))
}

// BusinessDays lists every business day between start and end inclusive,
// in order, excluding weekends and holidays.
func BusinessDays(start, end time.Time, holidays HolidaySet) []time.Time {
	from, to := Day(start), Day(end)

	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		}
		if holidays.Contains(d) {
			continue
		}
		days = append(days, d)
	}
	return days
}
