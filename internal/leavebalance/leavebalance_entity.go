package leavebalance

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveBalance is one ledger row: the accrual record for one employee
// and one leave type. Rows for leave types without a configured
// entitlement carry null total/used/remaining.
type LeaveBalance struct {
	ID          string `gorm:"column:leave_balance_id;primaryKey;size:50"`
	EmployeeID  string `gorm:"size:50;not null;uniqueIndex:idx_leave_balances_employee_type"`
	LeaveTypeID string `gorm:"size:50;not null;uniqueIndex:idx_leave_balances_employee_type"`

	TotalLeaves     *int                `gorm:"type:int"`
	UsedLeaves      decimal.NullDecimal `gorm:"type:numeric(6,1)"`
	RemainingLeaves decimal.NullDecimal `gorm:"type:numeric(6,1)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeaveBalanceWithType carries the joined leave type name for listings.
type LeaveBalanceWithType struct {
	LeaveBalance
	TypeName string
}
