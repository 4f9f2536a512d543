package capacity

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkingDays_FullWeek(t *testing.T) {
	// Mon 2025-01-06 through Fri 2025-01-10.
	got := WorkingDays(date(2025, 1, 6), date(2025, 1, 10), nil)
	if got != 5 {
		t.Errorf("expected 5 working days, got %d", got)
	}
}

func TestWorkingDays_SpanningWeekend(t *testing.T) {
	// Mon 2025-01-06 through the following Mon 2025-01-13 (8 calendar days).
	got := WorkingDays(date(2025, 1, 6), date(2025, 1, 13), nil)
	if got != 6 {
		t.Errorf("expected 6 working days, got %d", got)
	}
}

func TestWorkingDays_EmptyRange(t *testing.T) {
	got := WorkingDays(date(2025, 1, 10), date(2025, 1, 6), nil)
	if got != 0 {
		t.Errorf("start after end should yield 0, got %d", got)
	}
}

func TestWorkingDays_SingleDay(t *testing.T) {
	if got := WorkingDays(date(2025, 1, 6), date(2025, 1, 6), nil); got != 1 {
		t.Errorf("single weekday should count as 1, got %d", got)
	}
	if got := WorkingDays(date(2025, 1, 4), date(2025, 1, 4), nil); got != 0 {
		t.Errorf("single Saturday should count as 0, got %d", got)
	}
}

func TestWorkingDays_HolidayExclusion(t *testing.T) {
	base := WorkingDays(date(2025, 1, 6), date(2025, 1, 10), nil)

	// A weekday holiday inside the range reduces the count by exactly 1,
	// holidays outside the range change nothing.
	holidays := NewHolidaySet([]time.Time{
		date(2025, 1, 8),
		date(2025, 2, 17),
		date(2025, 5, 26),
	})
	got := WorkingDays(date(2025, 1, 6), date(2025, 1, 10), holidays)
	if got != base-1 {
		t.Errorf("expected %d working days with one in-range holiday, got %d", base-1, got)
	}
}

func TestWorkingDays_WeekendHolidayIgnored(t *testing.T) {
	holidays := NewHolidaySet([]time.Time{date(2025, 1, 11)}) // Saturday
	got := WorkingDays(date(2025, 1, 6), date(2025, 1, 12), holidays)
	if got != 5 {
		t.Errorf("weekend holiday should not change the count, got %d", got)
	}
}

func TestWorkingDays_TimeOfDayIgnored(t *testing.T) {
	// Counting is over civil days; the clock component must not matter.
	start := time.Date(2025, 1, 6, 23, 30, 0, 0, time.UTC)
	end := time.Date(2025, 1, 10, 0, 15, 0, 0, time.UTC)
	if got := WorkingDays(start, end, nil); got != 5 {
		t.Errorf("expected 5 working days regardless of clock time, got %d", got)
	}
}

func TestBusinessDays_Ordering(t *testing.T) {
	days := BusinessDays(date(2025, 1, 3), date(2025, 1, 7), nil)
	want := []time.Time{date(2025, 1, 3), date(2025, 1, 6), date(2025, 1, 7)}
	if len(days) != len(want) {
		t.Fatalf("expected %d business days, got %d", len(want), len(days))
	}
	for i := range want {
		if !days[i].Equal(want[i]) {
			t.Errorf("day %d: expected %v, got %v", i, want[i], days[i])
		}
	}
}
