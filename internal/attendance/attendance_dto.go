package attendance

import "github.com/shopspring/decimal"

type MarkAttendanceRequest struct {
	Date       string           `json:"date" binding:"required,datetime=2006-01-02"`
	TotalHours *decimal.Decimal `json:"total_hours"`
}

type AttendanceResponse struct {
	ID            string          `json:"attendance_id"`
	EmployeeID    string          `json:"employee_id"`
	Date          string          `json:"date"`
	Status        string          `json:"status"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}

// MonthSummaryResponse is the per-status roll-up for one employee and
// one calendar month.
type MonthSummaryResponse struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	Leave      int    `json:"leave"`
	HalfDay    int    `json:"half_day"`
}
