package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *AttendanceRecord) error
	// DeleteByEmployeeAndDateRange removes every record in [start, end],
	// regardless of how it was created.
	DeleteByEmployeeAndDateRange(ctx context.Context, employeeID string, start, end time.Time) error
	FindByEmployeeAndMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]AttendanceRecord, error)
	ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	CountByStatus(ctx context.Context, employeeID string, start, end time.Time) (map[string]int, error)
	// MarkAbsentees invokes the database routine that backfills Absent
	// rows for employees with no attendance; the routine is opaque here.
	MarkAbsentees(ctx context.Context) error
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

func (r *repository) Create(ctx context.Context, rec *AttendanceRecord) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO attendance_records (
				attendance_id, employee_id, date, status,
				total_hours, overtime_hours, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		`, rec.ID, rec.EmployeeID, rec.Date, rec.Status, rec.TotalHours, rec.OvertimeHours)
		return err
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) DeleteByEmployeeAndDateRange(ctx context.Context, employeeID string, start, end time.Time) error {
	query := `
		DELETE FROM attendance_records
		WHERE employee_id = $1
		  AND date >= $2
		  AND date <= $3
	`

	_, err := r.execer().ExecContext(ctx, query, employeeID, start, end)
	return err
}

func (r *repository) FindByEmployeeAndMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]AttendanceRecord, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	var records []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AttendanceRecord{}).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountByStatus(ctx context.Context, employeeID string, start, end time.Time) (map[string]int, error) {
	var rows []struct {
		Status string
		Total  int
	}
	err := r.db.WithContext(ctx).
		Model(&AttendanceRecord{}).
		Select("status, COUNT(*) AS total").
		Where("employee_id = ?", employeeID).
		Where("date >= ? AND date <= ?", start, end).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *repository) MarkAbsentees(ctx context.Context) error {
	_, err := r.execer().ExecContext(ctx, `DO $$ BEGIN PERFORM insert_absent_attendance(); END $$;`)
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
		panic(err)
	}
	return db
}
