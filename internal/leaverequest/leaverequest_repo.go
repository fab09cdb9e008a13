package leaverequest

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	UpdateStatus(ctx context.Context, id, status, description string) error
	FindAllByEmployee(ctx context.Context, employeeID string) ([]RequestWithType, error)
	FindPendingByManager(ctx context.Context, managerID string) ([]RequestWithEmployee, error)
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

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).First(&lr, "leave_request_id = ?", id).Error
	return &lr, err
}

func (r *repository) UpdateStatus(ctx context.Context, id, status, description string) error {
	query := `
		UPDATE leave_requests
		SET status = $2,
		    description = $3,
		    updated_at = NOW()
		WHERE leave_request_id = $1
	`

	_, err := r.execer().ExecContext(ctx, query, id, status, description)
	return err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]RequestWithType, error) {
	var rows []RequestWithType
	err := r.db.WithContext(ctx).
		Table("leave_requests").
		Select("leave_requests.*, leave_types.type_name AS type_name").
		Joins("JOIN leave_types ON leave_types.leave_type_id = leave_requests.leave_type_id").
		Where("leave_requests.employee_id = ?", employeeID).
		Order("leave_requests.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindPendingByManager(ctx context.Context, managerID string) ([]RequestWithEmployee, error) {
	var rows []RequestWithEmployee
	err := r.db.WithContext(ctx).
		Table("leave_requests").
		Select("leave_requests.*, leave_types.type_name AS type_name, employees.full_name AS employee_name").
		Joins("JOIN leave_types ON leave_types.leave_type_id = leave_requests.leave_type_id").
		Joins("JOIN employees ON employees.employee_id = leave_requests.employee_id").
		Where("employees.manager_id = ?", managerID).
		Where("leave_requests.status = ?", StatusPending).
		Order("leave_requests.created_at ASC").
		Scan(&rows).Error
	return rows, err
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
