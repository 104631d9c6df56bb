package climate

import (
	"fmt"
	"maps"
	"slices"
)

// MonthsInYear is the month count of a fully observed year.
const MonthsInYear = 12

// Period is one (year, month) unit of observation. Month starts from 1.
type Period struct {
	Year  int
	Month int
}

// ColumnName returns a variable-agnostic name of the period's column.
func (p Period) ColumnName() string {
	return fmt.Sprintf("%d_month_%d", p.Year, p.Month)
}

// Coverage describes which years are available and how many months each
// of them observes.
type Coverage struct {
	// First and Last are the inclusive bounds of the year range.
	First int
	Last  int
	// Partial maps a year to its month count when the year has fewer than
	// twelve observed months.
	Partial map[int]int
}

// MonthCount returns the number of observed months for a year.
func (c Coverage) MonthCount(year int) int {
	if n, ok := c.Partial[year]; ok {
		return n
	}
	return MonthsInYear
}

// Years returns all years of the range in ascending order.
func (c Coverage) Years() []int {
	if c.Last < c.First {
		return nil
	}
	res := make([]int, 0, c.Last-c.First+1)
	for y := c.First; y <= c.Last; y++ {
		res = append(res, y)
	}
	return res
}

// Periods returns all periods of the range in ascending order.
func (c Coverage) Periods() []Period {
	var res []Period
	for _, y := range c.Years() {
		for m := 1; m <= c.MonthCount(y); m++ {
			res = append(res, Period{Year: y, Month: m})
		}
	}
	return res
}

// Validate checks that partial month counts are within 1..12.
func (c Coverage) Validate() error {
	for _, y := range slices.Sorted(maps.Keys(c.Partial)) {
		n := c.Partial[y]
		if n < 1 || n > MonthsInYear {
			return fmt.Errorf("year %d: month count %d is out of 1-%d range",
				y, n, MonthsInYear)
		}
	}
	return nil
}
