package leavebalance

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavebalance_repo.go -destination=mock/leavebalance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lb *LeaveBalance) error
	FindByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string) (*LeaveBalance, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveBalanceWithType, error)
	// Debit atomically moves days from remaining to used, guarded by
	// remaining >= days. Reports whether a row matched the guard.
	Debit(ctx context.Context, employeeID, leaveTypeID string, days decimal.Decimal) (bool, error)
	// Credit is the unguarded inverse; callers must not credit more
	// than was ever debited.
	Credit(ctx context.Context, employeeID, leaveTypeID string, days decimal.Decimal) error
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

func (r *repository) Create(ctx context.Context, lb *LeaveBalance) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO leave_balances (
				leave_balance_id, employee_id, leave_type_id,
				total_leaves, used_leaves, remaining_leaves,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		`, lb.ID, lb.EmployeeID, lb.LeaveTypeID, lb.TotalLeaves, lb.UsedLeaves, lb.RemainingLeaves)
		return err
	}
	return r.db.WithContext(ctx).Create(lb).Error
}

func (r *repository) FindByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string) (*LeaveBalance, error) {
	var lb LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		First(&lb).Error
	return &lb, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveBalanceWithType, error) {
	var rows []LeaveBalanceWithType
	err := r.db.WithContext(ctx).
		Table("leave_balances").
		Select("leave_balances.*, leave_types.type_name AS type_name").
		Joins("JOIN leave_types ON leave_types.leave_type_id = leave_balances.leave_type_id").
		Where("leave_balances.employee_id = ?", employeeID).
		Order("leave_types.type_name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Debit(ctx context.Context, employeeID, leaveTypeID string, days decimal.Decimal) (bool, error) {
	query := `
		UPDATE leave_balances
		SET used_leaves = used_leaves + $3,
		    remaining_leaves = remaining_leaves - $3,
		    updated_at = NOW()
		WHERE employee_id = $1
		  AND leave_type_id = $2
		  AND remaining_leaves >= $3
	`

	res, err := r.execer().ExecContext(ctx, query, employeeID, leaveTypeID, days)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) Credit(ctx context.Context, employeeID, leaveTypeID string, days decimal.Decimal) error {
	query := `
		UPDATE leave_balances
		SET used_leaves = used_leaves - $3,
		    remaining_leaves = remaining_leaves + $3,
		    updated_at = NOW()
		WHERE employee_id = $1
		  AND leave_type_id = $2
	`

	_, err := r.execer().ExecContext(ctx, query, employeeID, leaveTypeID, days)
	return err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	db, err := r.db.DB()
	if err != nil {
		// gorm was opened without a usable pool; nothing sensible to do.
		panic(err)
	}
	return db
}
