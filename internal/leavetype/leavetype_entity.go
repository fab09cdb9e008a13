package leavetype

import "time"

// LeaveType is the catalogue entry for one kind of leave. NumberOfLeaves
// is the annual entitlement and may be left unset by HR.
type LeaveType struct {
	ID             string `gorm:"column:leave_type_id;primaryKey;size:50"`
	TypeName       string `gorm:"type:varchar(50);not null;uniqueIndex:idx_leave_types_name"`
	NumberOfLeaves *int   `gorm:"type:int"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
