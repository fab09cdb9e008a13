package employee

type OnboardEmployeeRequest struct {
	FullName     string  `json:"full_name" binding:"required,min=2,max=150"`
	Designation  string  `json:"designation" binding:"max=100"`
	MobileNumber string  `json:"mobile_number" binding:"required,min=7,max=20"`
	DateOfBirth  string  `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	JoiningDate  string  `json:"joining_date" binding:"required,datetime=2006-01-02"`
	ManagerID    *string `json:"manager_id"`
	UserID       string  `json:"user_id"`
}

type EmployeeResponse struct {
	ID           string  `json:"employee_id"`
	FullName     string  `json:"full_name"`
	Designation  string  `json:"designation"`
	MobileNumber string  `json:"mobile_number"`
	DateOfBirth  string  `json:"date_of_birth"`
	JoiningDate  string  `json:"joining_date"`
	ManagerID    *string `json:"manager_id"`
	Rating       *int    `json:"rating"`
	IsActive     bool    `json:"is_active"`
}
