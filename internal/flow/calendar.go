package flow

import "time"

// DayCell is one selectable day in the month grid.
type DayCell struct {
	Day      int
	Date     string // YYYY-MM-DD
	Disabled bool   // strictly before today
	Selected bool
}

// MonthGrid describes one rendered month: the number of blank cells
// before day 1 (the weekday of the 1st, 0=Sunday) and every day of the
// month in order.
type MonthGrid struct {
	Year          int
	Month         time.Month
	LeadingBlanks int
	Days          []DayCell
}

// BuildMonthGrid computes the grid for a month. Days strictly before
// today (time-of-day zeroed) come back disabled.
func BuildMonthGrid(year int, month time.Month, today time.Time, selected string) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()
	todayZero := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	grid := MonthGrid{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]DayCell, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, today.Location())
		dateStr := date.Format("2006-01-02")
		grid.Days = append(grid.Days, DayCell{
			Day:      day,
			Date:     dateStr,
			Disabled: date.Before(todayZero),
			Selected: dateStr == selected,
		})
	}
	return grid
}

// Label renders the month header, e.g. "September 2026".
func (g MonthGrid) Label() string {
	return time.Date(g.Year, g.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}
