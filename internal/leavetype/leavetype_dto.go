package leavetype

type CreateLeaveTypeRequest struct {
	TypeName       string `json:"type_name" binding:"required"`
	NumberOfLeaves *int   `json:"number_of_leaves"`
}

type UpdateLeaveTypeRequest struct {
	TypeName       string `json:"type_name" binding:"required"`
	NumberOfLeaves *int   `json:"number_of_leaves"`
}

type LeaveTypeResponse struct {
	ID             string `json:"id"`
	TypeName       string `json:"type_name"`
	NumberOfLeaves *int   `json:"number_of_leaves,omitempty"`
}
