package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/shared/idgen"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Synchronizer projects approved leave into daily attendance rows and
// tears that projection down on cancellation. Both operations run on
// the caller's transaction so attendance never drifts from the request
// state that produced it.
//
//go:generate mockgen -source=synchronizer.go -destination=mock/synchronizer_mock.go -package=mock
type Synchronizer interface {
	Materialize(ctx context.Context, tx *sql.Tx, plan LeavePlan) error
	Demolish(ctx context.Context, tx *sql.Tx, employeeID string, start, end time.Time) error
}

type synchronizer struct {
	repo   Repository
	logger *zap.Logger
}

func NewSynchronizer(repo Repository, logger ...*zap.Logger) Synchronizer {
	l := zap.L().Named("attendance.synchronizer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.synchronizer")
	}
	return &synchronizer{repo: repo, logger: l}
}

func (s *synchronizer) withTx(tx *sql.Tx) Repository {
	if tx == nil {
		return s.repo
	}
	return s.repo.WithTx(tx)
}

func (s *synchronizer) Materialize(ctx context.Context, tx *sql.Tx, plan LeavePlan) error {
	qtx := s.withTx(tx)

	days := 0
	for d := plan.StartDate; !d.After(plan.EndDate); d = d.AddDate(0, 0, 1) {
		rec := &AttendanceRecord{
			ID:            idgen.New(idgen.PrefixAttendance),
			EmployeeID:    plan.EmployeeID,
			Date:          d,
			Status:        statusFor(d, plan),
			TotalHours:    nominalHours,
			OvertimeHours: decimal.Zero,
		}
		if err := qtx.Create(ctx, rec); err != nil {
			return err
		}
		days++
	}

	s.logger.Info("leave materialized into attendance",
		zap.String("employee_id", plan.EmployeeID),
		zap.Int("days", days),
	)
	return nil
}

// statusFor decides the row status for one covered date. When start and
// end fall on the same day with mixed halves, the start-half branch
// wins.
func statusFor(d time.Time, plan LeavePlan) string {
	switch {
	case d.Equal(plan.StartDate) && plan.StartHalf == HalfAfternoon:
		return StatusHalfDay
	case d.Equal(plan.EndDate) && plan.EndHalf == HalfMorning:
		return StatusHalfDay
	default:
		return StatusLeave
	}
}

func (s *synchronizer) Demolish(ctx context.Context, tx *sql.Tx, employeeID string, start, end time.Time) error {
	if err := s.withTx(tx).DeleteByEmployeeAndDateRange(ctx, employeeID, start, end); err != nil {
		return err
	}
	s.logger.Info("attendance range demolished",
		zap.String("employee_id", employeeID),
		zap.Time("start", start),
		zap.Time("end", end),
	)
	return nil
}
