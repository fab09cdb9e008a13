package employee

import (
	"context"
	"database/sql"
	"errors"
	"time"

	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/leavebalance"
	"go-payroll/internal/shared/idgen"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	// Onboard creates the employee, seeds their leave balance ledger and
	// stages an employee.created event, all in one transaction.
	Onboard(ctx context.Context, req OnboardEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, limit, offset int) ([]EmployeeResponse, int64, error)
	DirectReports(ctx context.Context, managerID string) ([]EmployeeResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	balances  leavebalance.Service
	publisher events.Publisher
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balances leavebalance.Service,
	publisher events.Publisher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, balances: balances, publisher: publisher, logger: l}
}

func (s *service) Onboard(ctx context.Context, req OnboardEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("onboard employee requested", zap.String("full_name", req.FullName))

	dob, err := time.Parse(time.DateOnly, req.DateOfBirth)
	if err != nil {
		return EmployeeResponse{}, err
	}
	joining, err := time.Parse(time.DateOnly, req.JoiningDate)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if req.ManagerID != nil {
		exists, err := s.repo.Exists(ctx, *req.ManagerID)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if !exists {
			return EmployeeResponse{}, employeeerrors.ErrManagerNotFound
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("onboard begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	e := &Employee{
		ID:           idgen.New(idgen.PrefixEmployee),
		FullName:     req.FullName,
		Designation:  req.Designation,
		MobileNumber: req.MobileNumber,
		DateOfBirth:  dob,
		JoiningDate:  joining,
		ManagerID:    req.ManagerID,
		IsActive:     true,
		UserID:       req.UserID,
	}

	if err := s.repo.WithTx(tx).Create(ctx, e); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return EmployeeResponse{}, employeeerrors.ErrMobileNumberExists
		}
		s.logger.Error("onboard persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := s.balances.Initialize(ctx, tx, e.ID); err != nil {
		s.logger.Error("onboard balance init failed",
			zap.String("employee_id", e.ID), zap.Error(err))
		return EmployeeResponse{}, err
	}

	event := events.EmployeeCreated{
		EmployeeID:  e.ID,
		FullName:    e.FullName,
		JoiningDate: e.JoiningDate.Format(time.DateOnly),
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, tx, events.TopicEmployeeLifecycle, e.ID, events.EventTypeEmployeeCreated, event); err != nil {
		s.logger.Error("onboard event stage failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("onboard commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("employee onboarded", zap.String("employee_id", e.ID))

	return mapToResponse(*e), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]EmployeeResponse, int64, error) {
	employees, total, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp, total, nil
}

func (s *service) DirectReports(ctx context.Context, managerID string) ([]EmployeeResponse, error) {
	reports, err := s.repo.FindDirectReports(ctx, managerID)
	if err != nil {
		return nil, err
	}

	resp := make([]EmployeeResponse, len(reports))
	for i, e := range reports {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}
	s.logger.Info("employee deactivated", zap.String("employee_id", id))
	return nil
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		FullName:     e.FullName,
		Designation:  e.Designation,
		MobileNumber: e.MobileNumber,
		DateOfBirth:  e.DateOfBirth.Format(time.DateOnly),
		JoiningDate:  e.JoiningDate.Format(time.DateOnly),
		ManagerID:    e.ManagerID,
		Rating:       e.Rating,
		IsActive:     e.IsActive,
	}
}
