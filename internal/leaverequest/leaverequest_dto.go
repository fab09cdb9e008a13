package leaverequest

import "github.com/shopspring/decimal"

type SubmitLeaveRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
	StartHalf   string `json:"start_half" binding:"required,oneof=Morning Afternoon"`
	EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
	EndHalf     string `json:"end_half" binding:"required,oneof=Morning Afternoon"`
	Reason      string `json:"reason" binding:"required,max=255"`
	Description string `json:"description" binding:"max=255"`
}

type DecideLeaveRequest struct {
	Status      string `json:"status" binding:"required,oneof=Approved Rejected"`
	Description string `json:"description" binding:"max=255"`
}

type LeaveRequestResponse struct {
	ID           string          `json:"leave_request_id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	LeaveTypeID  string          `json:"leave_type_id"`
	TypeName     string          `json:"type_name,omitempty"`
	StartDate    string          `json:"start_date"`
	StartHalf    string          `json:"start_half"`
	EndDate      string          `json:"end_date"`
	EndHalf      string          `json:"end_half"`
	NoOfDays     decimal.Decimal `json:"no_of_days"`
	Status       string          `json:"status"`
	Reason       string          `json:"reason"`
	Description  string          `json:"description"`
}
