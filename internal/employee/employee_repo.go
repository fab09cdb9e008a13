package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindAll(ctx context.Context, limit, offset int) ([]Employee, int64, error)
	Exists(ctx context.Context, id string) (bool, error)
	FindDirectReports(ctx context.Context, managerID string) ([]Employee, error)
	Deactivate(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO employees (
				employee_id, full_name, designation, mobile_number,
				date_of_birth, joining_date, manager_id, rating,
				is_active, user_id, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		`, e.ID, e.FullName, e.Designation, e.MobileNumber,
			e.DateOfBirth, e.JoiningDate, e.ManagerID, e.Rating,
			e.IsActive, e.UserID)
		return err
	}
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "employee_id = ?", id).Error
	return &e, err
}

func (r *repository) FindAll(ctx context.Context, limit, offset int) ([]Employee, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Employee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []Employee
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Limit(limit).
		Offset(offset).
		Find(&employees).Error
	return employees, total, err
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("employee_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindDirectReports(ctx context.Context, managerID string) ([]Employee, error) {
	var reports []Employee
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Where("is_active = ?", true).
		Order("full_name ASC").
		Find(&reports).Error
	return reports, err
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("employee_id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
