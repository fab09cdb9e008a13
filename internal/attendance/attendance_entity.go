package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance statuses. A day is either worked, missed, or covered by an
// approved leave request (fully or for one half).
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusLeave   = "Leave"
	StatusHalfDay = "Half Day"
)

// Half-day markers on leave request boundaries.
const (
	HalfMorning   = "Morning"
	HalfAfternoon = "Afternoon"
)

// Hours a full working day nominally counts for.
var nominalHours = decimal.NewFromInt(8)

type AttendanceRecord struct {
	ID         string    `gorm:"column:attendance_id;primaryKey;size:50"`
	EmployeeID string    `gorm:"size:50;not null;index:idx_attendance_employee_date"`
	Date       time.Time `gorm:"type:date;not null;index:idx_attendance_employee_date"`
	Status     string    `gorm:"size:20;not null"`

	TotalHours    decimal.Decimal `gorm:"type:numeric(4,1)"`
	OvertimeHours decimal.Decimal `gorm:"type:numeric(4,1)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AttendanceRecord) TableName() string { return "attendance_records" }

// LeavePlan is the slice of an approved leave request the synchronizer
// needs to project into attendance rows.
type LeavePlan struct {
	EmployeeID string
	StartDate  time.Time
	StartHalf  string
	EndDate    time.Time
	EndHalf    string
}
