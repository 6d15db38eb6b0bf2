package util

import "time"

// AddMonths advances a date by n calendar months, clamping the day to the
// last day of the target month (e.g., Jan 31 + 1 month = Feb 28/29).
func AddMonths(d time.Time, n int) time.Time {
	year, month, day := d.Date()
	target := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(target.Year(), target.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, time.UTC)
}

// CalculateActualDueDate returns the actual due date for a given due day and
// target month. For months with fewer days than the due day (e.g., due day 31
// in February), returns the last day of that month. Invalid due days (<= 0)
// are clamped to 1.
func CalculateActualDueDate(dueDay int, year int, month time.Month) time.Time {
	actualDay := dueDay
	if actualDay < 1 {
		actualDay = 1
	}

	// Get last day of month by going to day 0 of next month
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if actualDay > lastDay {
		actualDay = lastDay
	}

	return time.Date(year, month, actualDay, 0, 0, 0, 0, time.UTC)
}

// SameMonth reports whether a date falls inside the given calendar month.
func SameMonth(d time.Time, year int, month time.Month) bool {
	return d.Year() == year && d.Month() == month
}
