package capacity

import "time"

// FederalHoliday is one generated company holiday.
type FederalHoliday struct {
	Date time.Time
	Name string
}

// nthWeekdayOfMonth returns the nth occurrence of weekday in the month,
// e.g. the third Monday of January.
func nthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+(n-1)*7)
}

// lastWeekdayOfMonth returns the final occurrence of weekday in the month,
// e.g. the last Monday of May.
func lastWeekdayOfMonth(year int, month time.Month, weekday time.Weekday) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	back := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDate(0, 0, -back)
}

// FederalHolidays generates the US holidays observed by the company for a
// year. Pure function of the year: two calls always agree. The list is the
// full observance set including Juneteenth, MLK Day, Presidents' Day and
// Veterans Day.
func FederalHolidays(year int) []FederalHoliday {
	thanksgiving := nthWeekdayOfMonth(year, time.November, time.Thursday, 4)

	return []FederalHoliday{
		{Date: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), Name: "New Year's Day"},
		{Date: nthWeekdayOfMonth(year, time.January, time.Monday, 3), Name: "Martin Luther King Jr. Day"},
		{Date: nthWeekdayOfMonth(year, time.February, time.Monday, 3), Name: "Presidents' Day"},
		{Date: lastWeekdayOfMonth(year, time.May, time.Monday), Name: "Memorial Day"},
		{Date: time.Date(year, time.June, 19, 0, 0, 0, 0, time.UTC), Name: "Juneteenth"},
		{Date: time.Date(year, time.July, 4, 0, 0, 0, 0, time.UTC), Name: "Independence Day"},
		{Date: nthWeekdayOfMonth(year, time.September, time.Monday, 1), Name: "Labor Day"},
		{Date: time.Date(year, time.November, 11, 0, 0, 0, 0, time.UTC), Name: "Veterans Day"},
		{Date: thanksgiving, Name: "Thanksgiving Day"},
		{Date: thanksgiving.AddDate(0, 0, 1), Name: "Day after Thanksgiving"},
		{Date: time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC), Name: "Christmas Day"},
	}
}

// HolidaysInRange unions generated holidays for every calendar year the
// range touches, then filters to dates within [start, end] inclusive.
func HolidaysInRange(start, end time.Time) []FederalHoliday {
	from, to := Day(start), Day(end)

	var out []FederalHoliday
	for year := from.Year(); year <= to.Year(); year++ {
		for _, h := range FederalHolidays(year) {
			if !h.Date.Before(from) && !h.Date.After(to) {
				out = append(out, h)
			}
		}
	}
	return out
}
