package leaverequest

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request lifecycle. Pending may move to any of the other three;
// Approved may still be cancelled; Cancelled and Rejected are terminal.
const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusCancelled = "Cancelled"
)

type LeaveRequest struct {
	ID          string `gorm:"column:leave_request_id;primaryKey;size:50"`
	EmployeeID  string `gorm:"size:50;not null;index"`
	LeaveTypeID string `gorm:"size:50;not null"`

	StartDate time.Time `gorm:"type:date;not null"`
	StartHalf string    `gorm:"size:10;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	EndHalf   string    `gorm:"size:10;not null"`

	NoOfDays    decimal.Decimal `gorm:"type:numeric(4,1);not null"`
	Status      string          `gorm:"size:20;not null;index"`
	Reason      string          `gorm:"size:255"`
	Description string          `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequestWithType carries the joined leave type name for listings.
type RequestWithType struct {
	LeaveRequest
	TypeName string
}

// RequestWithEmployee additionally names the requester, for the
// manager's pending queue.
type RequestWithEmployee struct {
	LeaveRequest
	TypeName     string
	EmployeeName string
}
