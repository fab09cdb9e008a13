package attendance

import (
	"context"
	"database/sql"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/idgen"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, employeeID string, req MarkAttendanceRequest) (AttendanceResponse, error)
	ListForEmployee(ctx context.Context, employeeID string, year int, month time.Month) ([]AttendanceResponse, error)
	MonthSummary(ctx context.Context, employeeID string, year int, month time.Month) (MonthSummaryResponse, error)
	Regularize(ctx context.Context) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

var maxDailyHours = decimal.NewFromInt(24)

func (s *service) Mark(ctx context.Context, employeeID string, req MarkAttendanceRequest) (AttendanceResponse, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return AttendanceResponse{}, apperror.InvalidField("date")
	}

	hours := nominalHours
	if req.TotalHours != nil {
		hours = *req.TotalHours
	}
	if hours.IsNegative() || hours.GreaterThan(maxDailyHours) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidHours
	}

	exists, err := s.repo.ExistsForDate(ctx, employeeID, date)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if exists {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyMarked
	}

	overtime := decimal.Zero
	if hours.GreaterThan(nominalHours) {
		overtime = hours.Sub(nominalHours)
	}

	rec := &AttendanceRecord{
		ID:            idgen.New(idgen.PrefixAttendance),
		EmployeeID:    employeeID,
		Date:          date,
		Status:        StatusPresent,
		TotalHours:    hours,
		OvertimeHours: overtime,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Error("mark attendance persist failed",
			zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("attendance marked",
		zap.String("employee_id", employeeID),
		zap.String("date", req.Date),
	)
	return mapToResponse(*rec), nil
}

func (s *service) ListForEmployee(ctx context.Context, employeeID string, year int, month time.Month) ([]AttendanceResponse, error) {
	records, err := s.repo.FindByEmployeeAndMonth(ctx, employeeID, year, month)
	if err != nil {
		return nil, err
	}

	resp := make([]AttendanceResponse, len(records))
	for i, rec := range records {
		resp[i] = mapToResponse(rec)
	}
	return resp, nil
}

func (s *service) MonthSummary(ctx context.Context, employeeID string, year int, month time.Month) (MonthSummaryResponse, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	counts, err := s.repo.CountByStatus(ctx, employeeID, start, end)
	if err != nil {
		return MonthSummaryResponse{}, err
	}

	return MonthSummaryResponse{
		EmployeeID: employeeID,
		Year:       year,
		Month:      int(month),
		Present:    counts[StatusPresent],
		Absent:     counts[StatusAbsent],
		Leave:      counts[StatusLeave],
		HalfDay:    counts[StatusHalfDay],
	}, nil
}

func (s *service) Regularize(ctx context.Context) error {
	if err := s.repo.MarkAbsentees(ctx); err != nil {
		s.logger.Error("regularize failed", zap.Error(err))
		return err
	}
	s.logger.Info("absent attendance regularized")
	return nil
}

func mapToResponse(rec AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:            rec.ID,
		EmployeeID:    rec.EmployeeID,
		Date:          rec.Date.Format(time.DateOnly),
		Status:        rec.Status,
		TotalHours:    rec.TotalHours,
		OvertimeHours: rec.OvertimeHours,
	}
}
