package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salary holds the contracted annual cost-to-company per employee; the
// base figure every monthly computation derives from.
type Salary struct {
	ID            string          `gorm:"column:salary_id;primaryKey;size:50"`
	EmployeeID    string          `gorm:"size:50;not null;uniqueIndex"`
	CostToCompany decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Salary) TableName() string { return "salaries" }

// SalaryRecord is one computed pay slip for one calendar month.
// Nothing prevents computing the same period twice; each call appends
// a new record.
type SalaryRecord struct {
	ID         string `gorm:"column:salary_record_id;primaryKey;size:50"`
	EmployeeID string `gorm:"size:50;not null;index"`

	PayPeriodStart time.Time `gorm:"type:date;not null;index"`
	PayPeriodEnd   time.Time `gorm:"type:date;not null"`

	GrossSalary decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Bonus       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PF          decimal.Decimal `gorm:"column:pf;type:numeric(12,2);not null"`
	Penalty     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	NetSalary   decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	CreatedAt time.Time
}

func (SalaryRecord) TableName() string { return "salary_records" }
