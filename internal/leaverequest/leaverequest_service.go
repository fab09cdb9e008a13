package leaverequest

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/leavebalance"
	leavebalanceerrors "go-payroll/internal/leavebalance/errors"
	leaverequesterrors "go-payroll/internal/leaverequest/errors"
	"go-payroll/internal/leavetype"
	leavetypeerrors "go-payroll/internal/leavetype/errors"
	"go-payroll/internal/shared/idgen"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	// Decide moves a pending request to Approved or Rejected. Approval
	// debits the ledger and materializes attendance in the same
	// transaction; a failed debit leaves everything untouched.
	Decide(ctx context.Context, requestID string, req DecideLeaveRequest) (LeaveRequestResponse, error)
	// Cancel closes a request from any non-terminal state, reversing
	// the ledger and attendance effects when it had been approved.
	Cancel(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	ListPending(ctx context.Context, managerID string) ([]LeaveRequestResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	types     leavetype.Repository
	balances  leavebalance.Service
	sync      attendance.Synchronizer
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	types leavetype.Repository,
	balances leavebalance.Service,
	sync attendance.Synchronizer,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		types:     types,
		balances:  balances,
		sync:      sync,
		logger:    l,
	}
}

const cancelledDescription = "Cancelled."

func (s *service) Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("submit leave request",
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
	)

	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidDateRange
	}
	end, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidDateRange
	}
	if start.After(end) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidDateRange
	}

	exists, err := s.employees.Exists(ctx, employeeID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if !exists {
		return LeaveRequestResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	lt, err := s.types.FindByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveRequestResponse{}, err
	}

	days := calculateRequestedDays(start, end, req.StartHalf, req.EndHalf)

	remaining, err := s.balances.Remaining(ctx, employeeID, req.LeaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if days.GreaterThan(remaining) {
		return LeaveRequestResponse{}, leavebalanceerrors.LeavesExhausted(lt.TypeName)
	}

	lr := &LeaveRequest{
		ID:          idgen.New(idgen.PrefixLeaveRequest),
		EmployeeID:  employeeID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   start,
		StartHalf:   req.StartHalf,
		EndDate:     end,
		EndHalf:     req.EndHalf,
		NoOfDays:    days,
		Status:      StatusPending,
		Reason:      req.Reason,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, lr); err != nil {
		s.logger.Error("submit persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request submitted",
		zap.String("leave_request_id", lr.ID),
		zap.String("employee_id", employeeID),
		zap.String("days", days.String()),
	)
	return mapToResponse(*lr, lt.TypeName, ""), nil
}

func (s *service) Decide(ctx context.Context, requestID string, req DecideLeaveRequest) (LeaveRequestResponse, error) {
	lr, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if lr.Status != StatusPending {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNotPending
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	if req.Status == StatusApproved {
		if err := s.balances.Debit(ctx, tx, lr.EmployeeID, lr.LeaveTypeID, lr.NoOfDays); err != nil {
			s.logger.Warn("decide aborted, debit refused",
				zap.String("leave_request_id", requestID), zap.Error(err))
			return LeaveRequestResponse{}, err
		}

		plan := attendance.LeavePlan{
			EmployeeID: lr.EmployeeID,
			StartDate:  lr.StartDate,
			StartHalf:  lr.StartHalf,
			EndDate:    lr.EndDate,
			EndHalf:    lr.EndHalf,
		}
		if err := s.sync.Materialize(ctx, tx, plan); err != nil {
			return LeaveRequestResponse{}, err
		}
	}

	if err := s.repo.WithTx(tx).UpdateStatus(ctx, requestID, req.Status, req.Description); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	lr.Status = req.Status
	lr.Description = req.Description
	s.logger.Info("leave request decided",
		zap.String("leave_request_id", requestID),
		zap.String("status", req.Status),
	)
	return mapToResponse(*lr, "", ""), nil
}

func (s *service) Cancel(ctx context.Context, requestID string) (LeaveRequestResponse, error) {
	lr, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if lr.Status == StatusCancelled || lr.Status == StatusRejected {
		return LeaveRequestResponse{}, leaverequesterrors.ErrAlreadyClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	// A pending request was never debited or materialized; only an
	// approved one has effects to reverse.
	if lr.Status == StatusApproved {
		if err := s.balances.Credit(ctx, tx, lr.EmployeeID, lr.LeaveTypeID, lr.NoOfDays); err != nil {
			return LeaveRequestResponse{}, err
		}
		if err := s.sync.Demolish(ctx, tx, lr.EmployeeID, lr.StartDate, lr.EndDate); err != nil {
			return LeaveRequestResponse{}, err
		}
	}

	if err := s.repo.WithTx(tx).UpdateStatus(ctx, requestID, StatusCancelled, cancelledDescription); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	lr.Status = StatusCancelled
	lr.Description = cancelledDescription
	s.logger.Info("leave request cancelled", zap.String("leave_request_id", requestID))
	return mapToResponse(*lr, "", ""), nil
}

func (s *service) ListForEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error) {
	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveRequestResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row.LeaveRequest, row.TypeName, "")
	}
	return resp, nil
}

func (s *service) ListPending(ctx context.Context, managerID string) ([]LeaveRequestResponse, error) {
	rows, err := s.repo.FindPendingByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveRequestResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row.LeaveRequest, row.TypeName, row.EmployeeName)
	}
	return resp, nil
}

func mapToResponse(lr LeaveRequest, typeName, employeeName string) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           lr.ID,
		EmployeeID:   lr.EmployeeID,
		EmployeeName: employeeName,
		LeaveTypeID:  lr.LeaveTypeID,
		TypeName:     typeName,
		StartDate:    lr.StartDate.Format(time.DateOnly),
		StartHalf:    lr.StartHalf,
		EndDate:      lr.EndDate.Format(time.DateOnly),
		EndHalf:      lr.EndHalf,
		NoOfDays:     lr.NoOfDays,
		Status:       lr.Status,
		Reason:       lr.Reason,
		Description:  lr.Description,
	}
}
