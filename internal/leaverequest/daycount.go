package leaverequest

import (
	"time"

	"go-payroll/internal/attendance"

	"github.com/shopspring/decimal"
)

var (
	halfDay = decimal.NewFromFloat(0.5)
	fullDay = decimal.NewFromInt(1)
)

// calculateRequestedDays converts a date range with half-day boundary
// markers into a day count with 0.5-day granularity.
//
// Same start and end date: equal halves cover half a day, opposite
// halves cover the whole day. Different dates: the start day counts
// 1.0 when taken from the Morning and 0.5 from the Afternoon, every
// day strictly between counts 1.0, and the end day counts 0.5 when
// released at Morning and 1.0 at Afternoon.
func calculateRequestedDays(start, end time.Time, startHalf, endHalf string) decimal.Decimal {
	if start.Equal(end) {
		if startHalf == endHalf {
			return halfDay
		}
		return fullDay
	}

	total := fullDay
	if startHalf == attendance.HalfAfternoon {
		total = halfDay
	}

	between := int64(end.Sub(start).Hours()/24) - 1
	if between > 0 {
		total = total.Add(decimal.NewFromInt(between))
	}

	if endHalf == attendance.HalfMorning {
		total = total.Add(halfDay)
	} else {
		total = total.Add(fullDay)
	}
	return total
}
