package leavebalance

import (
	"context"
	"database/sql"
	"errors"

	leavebalanceerrors "go-payroll/internal/leavebalance/errors"
	"go-payroll/internal/leavetype"
	"go-payroll/internal/shared/idgen"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service is the only writer of the leave balance ledger. Debit and
// Credit take the caller's transaction so a workflow decision and its
// ledger movement commit or roll back together.
//
//go:generate mockgen -source=leavebalance_service.go -destination=mock/leavebalance_service_mock.go -package=mock
type Service interface {
	// Initialize seeds one ledger row per configured leave type for a
	// newly onboarded employee, inside the onboarding transaction.
	Initialize(ctx context.Context, tx *sql.Tx, employeeID string) error
	Debit(ctx context.Context, tx *sql.Tx, employeeID, leaveTypeID string, days decimal.Decimal) error
	Credit(ctx context.Context, tx *sql.Tx, employeeID, leaveTypeID string, days decimal.Decimal) error
	Remaining(ctx context.Context, employeeID, leaveTypeID string) (decimal.Decimal, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]LeaveBalanceResponse, error)
}

type service struct {
	repo     Repository
	typeRepo leavetype.Repository
	logger   *zap.Logger
}

func NewService(repo Repository, typeRepo leavetype.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{repo: repo, typeRepo: typeRepo, logger: l}
}

func (s *service) withTx(tx *sql.Tx) Repository {
	if tx == nil {
		return s.repo
	}
	return s.repo.WithTx(tx)
}

func (s *service) Initialize(ctx context.Context, tx *sql.Tx, employeeID string) error {
	types, err := s.typeRepo.FindAll(ctx)
	if err != nil {
		return err
	}

	qtx := s.withTx(tx)
	for _, lt := range types {
		lb := &LeaveBalance{
			ID:          idgen.New(idgen.PrefixLeaveBalance),
			EmployeeID:  employeeID,
			LeaveTypeID: lt.ID,
		}
		// Types without an entitlement get a row anyway so the ledger
		// enumerates every type; such rows can never be debited.
		if lt.NumberOfLeaves != nil {
			total := *lt.NumberOfLeaves
			lb.TotalLeaves = &total
			lb.UsedLeaves = decimal.NewNullDecimal(decimal.Zero)
			lb.RemainingLeaves = decimal.NewNullDecimal(decimal.NewFromInt(int64(total)))
		}
		if err := qtx.Create(ctx, lb); err != nil {
			return err
		}
	}

	s.logger.Info("leave balances initialized",
		zap.String("employee_id", employeeID),
		zap.Int("leave_types", len(types)),
	)
	return nil
}

func (s *service) Debit(ctx context.Context, tx *sql.Tx, employeeID, leaveTypeID string, days decimal.Decimal) error {
	ok, err := s.withTx(tx).Debit(ctx, employeeID, leaveTypeID, days)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	// The guarded update matched nothing. Distinguish a missing or
	// never-entitled row from an exhausted one for the caller.
	lb, err := s.repo.FindByEmployeeAndType(ctx, employeeID, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leavebalanceerrors.ErrBalanceNotFound
		}
		return err
	}
	if !lb.RemainingLeaves.Valid {
		return leavebalanceerrors.ErrBalanceNotFound
	}

	typeName := ""
	if lt, err := s.typeRepo.FindByID(ctx, leaveTypeID); err == nil {
		typeName = lt.TypeName
	}
	s.logger.Warn("leave debit refused, balance exhausted",
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", leaveTypeID),
		zap.String("requested_days", days.String()),
		zap.String("remaining", lb.RemainingLeaves.Decimal.String()),
	)
	return leavebalanceerrors.LeavesExhausted(typeName)
}

func (s *service) Credit(ctx context.Context, tx *sql.Tx, employeeID, leaveTypeID string, days decimal.Decimal) error {
	return s.withTx(tx).Credit(ctx, employeeID, leaveTypeID, days)
}

func (s *service) Remaining(ctx context.Context, employeeID, leaveTypeID string) (decimal.Decimal, error) {
	lb, err := s.repo.FindByEmployeeAndType(ctx, employeeID, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, leavebalanceerrors.ErrBalanceNotFound
		}
		return decimal.Zero, err
	}
	if !lb.RemainingLeaves.Valid {
		return decimal.Zero, leavebalanceerrors.ErrBalanceNotFound
	}
	return lb.RemainingLeaves.Decimal, nil
}

func (s *service) ListForEmployee(ctx context.Context, employeeID string) ([]LeaveBalanceResponse, error) {
	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveBalanceResponse, len(rows))
	for i, row := range rows {
		resp[i] = LeaveBalanceResponse{
			ID:              row.ID,
			LeaveTypeID:     row.LeaveTypeID,
			TypeName:        row.TypeName,
			TotalLeaves:     row.TotalLeaves,
			UsedLeaves:      row.UsedLeaves,
			RemainingLeaves: row.RemainingLeaves,
		}
	}
	return resp, nil
}
