package payroll

import "github.com/shopspring/decimal"

type SetCostToCompanyRequest struct {
	CostToCompany decimal.Decimal `json:"cost_to_company" binding:"required"`
}

type SalaryRecordResponse struct {
	ID             string          `json:"salary_record_id"`
	EmployeeID     string          `json:"employee_id"`
	PayPeriodStart string          `json:"pay_period_start"`
	PayPeriodEnd   string          `json:"pay_period_end"`
	GrossSalary    decimal.Decimal `json:"gross_salary"`
	Bonus          decimal.Decimal `json:"bonus"`
	Tax            decimal.Decimal `json:"tax"`
	PF             decimal.Decimal `json:"pf"`
	Penalty        decimal.Decimal `json:"penalty"`
	NetSalary      decimal.Decimal `json:"net_salary"`
}

// QuarterReportResponse is the field-wise sum of every salary record
// whose pay period starts inside the quarter window.
type QuarterReportResponse struct {
	Quarter     string          `json:"quarter"`
	Year        int             `json:"year"`
	EmployeeID  string          `json:"employee_id,omitempty"`
	Records     int             `json:"records"`
	GrossSalary decimal.Decimal `json:"gross_salary"`
	Bonus       decimal.Decimal `json:"bonus"`
	Tax         decimal.Decimal `json:"tax"`
	PF          decimal.Decimal `json:"pf"`
	Penalty     decimal.Decimal `json:"penalty"`
	NetSalary   decimal.Decimal `json:"net_salary"`
}

type QuarterTaxResponse struct {
	Quarter    string          `json:"quarter"`
	Year       int             `json:"year"`
	EmployeeID string          `json:"employee_id"`
	Tax        decimal.Decimal `json:"tax"`
}
