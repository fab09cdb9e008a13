package leavebalance

import "github.com/shopspring/decimal"

type LeaveBalanceResponse struct {
	ID              string              `json:"leave_balance_id"`
	LeaveTypeID     string              `json:"leave_type_id"`
	TypeName        string              `json:"type_name"`
	TotalLeaves     *int                `json:"total_leaves"`
	UsedLeaves      decimal.NullDecimal `json:"used_leaves"`
	RemainingLeaves decimal.NullDecimal `json:"remaining_leaves"`
}
