package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/leaverequest"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	SaveCostToCompany(ctx context.Context, salaryID, employeeID string, ctc decimal.Decimal) error
	// CreateDefaultSalary inserts a zero CTC row unless the employee
	// already has one; safe under event redelivery.
	CreateDefaultSalary(ctx context.Context, salaryID, employeeID string) error
	FindCostToCompany(ctx context.Context, employeeID string) (decimal.Decimal, error)
	CountAbsences(ctx context.Context, employeeID string, year int, month time.Month) (int, error)
	HasApprovedMarriageLeave(ctx context.Context, employeeID string, year int, month time.Month) (bool, error)
	CreateRecord(ctx context.Context, rec *SalaryRecord) error
	FindRecordByID(ctx context.Context, id string) (*SalaryRecord, error)
	FindRecordsByEmployee(ctx context.Context, employeeID string) ([]SalaryRecord, error)
	// FindRecordsInWindow selects records whose pay period starts in
	// [start, end]; employeeID narrows to one employee when non-empty.
	FindRecordsInWindow(ctx context.Context, employeeID string, start, end time.Time) ([]SalaryRecord, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) SaveCostToCompany(ctx context.Context, salaryID, employeeID string, ctc decimal.Decimal) error {
	query := `
		INSERT INTO salaries (salary_id, employee_id, cost_to_company, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (employee_id)
		DO UPDATE SET cost_to_company = EXCLUDED.cost_to_company, updated_at = NOW()
	`

	_, err := r.execer().ExecContext(ctx, query, salaryID, employeeID, ctc)
	return err
}

func (r *repository) CreateDefaultSalary(ctx context.Context, salaryID, employeeID string) error {
	query := `
		INSERT INTO salaries (salary_id, employee_id, cost_to_company, created_at, updated_at)
		VALUES ($1, $2, 0, NOW(), NOW())
		ON CONFLICT (employee_id) DO NOTHING
	`

	_, err := r.execer().ExecContext(ctx, query, salaryID, employeeID)
	return err
}

func (r *repository) FindCostToCompany(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	var s Salary
	err := r.db.WithContext(ctx).First(&s, "employee_id = ?", employeeID).Error
	if err != nil {
		return decimal.Zero, err
	}
	return s.CostToCompany, nil
}

func (r *repository) CountAbsences(ctx context.Context, employeeID string, year int, month time.Month) (int, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&attendance.AttendanceRecord{}).
		Where("employee_id = ?", employeeID).
		Where("status = ?", attendance.StatusAbsent).
		Where("date >= ? AND date <= ?", start, end).
		Count(&count).Error
	return int(count), err
}

func (r *repository) HasApprovedMarriageLeave(ctx context.Context, employeeID string, year int, month time.Month) (bool, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var count int64
	err := r.db.WithContext(ctx).
		Table("leave_requests").
		Joins("JOIN leave_types ON leave_types.leave_type_id = leave_requests.leave_type_id").
		Where("leave_requests.employee_id = ?", employeeID).
		Where("leave_requests.status = ?", leaverequest.StatusApproved).
		Where("leave_types.type_name = ?", "Marriage Leave").
		Where("leave_requests.start_date >= ? AND leave_requests.start_date < ?", start, end).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateRecord(ctx context.Context, rec *SalaryRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindRecordByID(ctx context.Context, id string) (*SalaryRecord, error) {
	var rec SalaryRecord
	err := r.db.WithContext(ctx).First(&rec, "salary_record_id = ?", id).Error
	return &rec, err
}

func (r *repository) FindRecordsByEmployee(ctx context.Context, employeeID string) ([]SalaryRecord, error) {
	var records []SalaryRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("pay_period_start DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindRecordsInWindow(ctx context.Context, employeeID string, start, end time.Time) ([]SalaryRecord, error) {
	q := r.db.WithContext(ctx).
		Where("pay_period_start >= ? AND pay_period_start <= ?", start, end)
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}

	var records []SalaryRecord
	err := q.Order("pay_period_start ASC").Find(&records).Error
	return records, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	db, err := r.db.DB()
	if err != nil {
		panic(err)
	}
	return db
}
