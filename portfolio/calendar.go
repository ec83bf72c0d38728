package portfolio

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// DefaultCalendar returns a business calendar observing US market holidays.
func DefaultCalendar() *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(us.Holidays...)
	return c
}

// TradingDays counts the workdays of a calendar year. A nil calendar falls
// back to DefaultCalendar.
func TradingDays(year int, c *cal.BusinessCalendar) int {
	if c == nil {
		c = DefaultCalendar()
	}

	count := 0
	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for day.Year() == year {
		if c.IsWorkday(day) {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}

// AnnualizationFactor returns the trading day count of a year as a float,
// the conventional scaling for annualizing daily return statistics.
func AnnualizationFactor(year int) float64 {
	return float64(TradingDays(year, nil))
}
