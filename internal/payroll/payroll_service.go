package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/idgen"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const quarterReportKeyPrefix = "payroll:quarter:"

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	// ComputeMonthly produces one salary record for the current
	// calendar month.
	ComputeMonthly(ctx context.Context, employeeID string) (SalaryRecordResponse, error)
	// ComputeForPeriod is ComputeMonthly for an explicit year and month.
	ComputeForPeriod(ctx context.Context, employeeID string, year int, month time.Month) (SalaryRecordResponse, error)
	SetCostToCompany(ctx context.Context, employeeID string, req SetCostToCompanyRequest) error
	// EnsureDefaultSalary seeds a zero CTC row for a new employee if
	// none exists yet; driven by the employee lifecycle consumer.
	EnsureDefaultSalary(ctx context.Context, employeeID string) error
	ListRecords(ctx context.Context, employeeID string) ([]SalaryRecordResponse, error)
	QuarterReport(ctx context.Context, quarterLabel, employeeID string) (QuarterReportResponse, error)
	TaxByQuarter(ctx context.Context, employeeID, quarterLabel string) (QuarterTaxResponse, error)
	Payslip(ctx context.Context, recordID string) ([]byte, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(repo Repository, employees employee.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		repo:      repo,
		employees: employees,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

var (
	twelve        = decimal.NewFromInt(12)
	pfRate        = decimal.NewFromFloat(0.05)
	bonusBirthday = decimal.NewFromInt(1000)
	bonusNovember = decimal.NewFromInt(2000)
	bonusMarriage = decimal.NewFromInt(10000)
)

func (s *service) ComputeMonthly(ctx context.Context, employeeID string) (SalaryRecordResponse, error) {
	now := time.Now()
	return s.ComputeForPeriod(ctx, employeeID, now.Year(), now.Month())
}

func (s *service) ComputeForPeriod(ctx context.Context, employeeID string, year int, month time.Month) (SalaryRecordResponse, error) {
	s.logger.Debug("compute salary requested",
		zap.String("employee_id", employeeID),
		zap.Int("year", year),
		zap.Int("month", int(month)),
	)

	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryRecordResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return SalaryRecordResponse{}, err
	}

	ctc, err := s.repo.FindCostToCompany(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryRecordResponse{}, payrollerrors.ErrSalaryNotConfigured
		}
		return SalaryRecordResponse{}, err
	}

	periodStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)
	daysInMonth := periodEnd.Day()

	monthly := ctc.DivRound(twelve, 2)

	// The per-day divisor is daysInMonth-1, kept as the payroll team
	// has always run it; downstream reconciliation depends on it.
	perDay := monthly.Div(decimal.NewFromInt(int64(daysInMonth - 1))).RoundCeil(2)

	absent, err := s.repo.CountAbsences(ctx, employeeID, year, month)
	if err != nil {
		return SalaryRecordResponse{}, err
	}
	// Days before a mid-month joining date count as absence so the
	// first salary is prorated.
	if emp.JoiningDate.Year() == year && emp.JoiningDate.Month() == month {
		absent += emp.JoiningDate.Day() - 1
	}

	penalty := perDay.Mul(decimal.NewFromInt(int64(absent)))
	pf := monthly.Mul(pfRate).Round(2)
	tax := monthlyTax(monthly.Mul(twelve))

	bonus := decimal.Zero
	if emp.DateOfBirth.Month() == month {
		bonus = bonus.Add(bonusBirthday)
	}
	if month == time.November {
		bonus = bonus.Add(bonusNovember)
	}
	married, err := s.repo.HasApprovedMarriageLeave(ctx, employeeID, year, month)
	if err != nil {
		return SalaryRecordResponse{}, err
	}
	if married {
		bonus = bonus.Add(bonusMarriage)
	}

	net := monthly.Sub(penalty).Sub(pf).Sub(tax).Add(bonus).Round(2)

	rec := &SalaryRecord{
		ID:             idgen.New(idgen.PrefixSalaryRecord),
		EmployeeID:     employeeID,
		PayPeriodStart: periodStart,
		PayPeriodEnd:   periodEnd,
		GrossSalary:    monthly,
		Bonus:          bonus,
		Tax:            tax,
		PF:             pf,
		Penalty:        penalty,
		NetSalary:      net,
	}
	if err := s.repo.CreateRecord(ctx, rec); err != nil {
		s.logger.Error("compute salary persist failed",
			zap.String("employee_id", employeeID), zap.Error(err))
		return SalaryRecordResponse{}, err
	}

	s.logger.Info("salary computed",
		zap.String("salary_record_id", rec.ID),
		zap.String("employee_id", employeeID),
		zap.String("net_salary", net.String()),
	)
	return mapRecordToResponse(*rec), nil
}

func (s *service) SetCostToCompany(ctx context.Context, employeeID string, req SetCostToCompanyRequest) error {
	if req.CostToCompany.IsNegative() {
		return apperror.InvalidField("cost_to_company")
	}

	exists, err := s.employees.Exists(ctx, employeeID)
	if err != nil {
		return err
	}
	if !exists {
		return employeeerrors.ErrEmployeeNotFound
	}

	if err := s.repo.SaveCostToCompany(ctx, idgen.New(idgen.PrefixSalary), employeeID, req.CostToCompany); err != nil {
		return err
	}
	s.logger.Info("cost to company set",
		zap.String("employee_id", employeeID),
		zap.String("ctc", req.CostToCompany.String()),
	)
	return nil
}

func (s *service) EnsureDefaultSalary(ctx context.Context, employeeID string) error {
	if err := s.repo.CreateDefaultSalary(ctx, idgen.New(idgen.PrefixSalary), employeeID); err != nil {
		return err
	}
	s.logger.Info("default salary ensured", zap.String("employee_id", employeeID))
	return nil
}

func (s *service) ListRecords(ctx context.Context, employeeID string) ([]SalaryRecordResponse, error) {
	records, err := s.repo.FindRecordsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]SalaryRecordResponse, len(records))
	for i, rec := range records {
		resp[i] = mapRecordToResponse(rec)
	}
	return resp, nil
}

// quarterWindow maps a case-insensitive quarter label to its fixed
// three-month window in the given year.
func quarterWindow(label string, year int) (time.Time, time.Time, error) {
	var startMonth time.Month
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "quarter 1":
		startMonth = time.January
	case "quarter 2":
		startMonth = time.April
	case "quarter 3":
		startMonth = time.July
	case "quarter 4":
		startMonth = time.October
	default:
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidQuarter
	}

	start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, -1)
	return start, end, nil
}

func (s *service) QuarterReport(ctx context.Context, quarterLabel, employeeID string) (QuarterReportResponse, error) {
	year := time.Now().Year()

	start, end, err := quarterWindow(quarterLabel, year)
	if err != nil {
		return QuarterReportResponse{}, err
	}

	cacheKey := fmt.Sprintf("%s%d:%s:%s",
		quarterReportKeyPrefix, year, strings.ToLower(strings.TrimSpace(quarterLabel)), employeeID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp QuarterReportResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		records, err := s.repo.FindRecordsInWindow(ctx, employeeID, start, end)
		if err != nil {
			return nil, err
		}

		resp := QuarterReportResponse{
			Quarter:     quarterLabel,
			Year:        year,
			EmployeeID:  employeeID,
			Records:     len(records),
			GrossSalary: decimal.Zero,
			Bonus:       decimal.Zero,
			Tax:         decimal.Zero,
			PF:          decimal.Zero,
			Penalty:     decimal.Zero,
			NetSalary:   decimal.Zero,
		}
		for _, rec := range records {
			resp.GrossSalary = resp.GrossSalary.Add(rec.GrossSalary)
			resp.Bonus = resp.Bonus.Add(rec.Bonus)
			resp.Tax = resp.Tax.Add(rec.Tax)
			resp.PF = resp.PF.Add(rec.PF)
			resp.Penalty = resp.Penalty.Add(rec.Penalty)
			resp.NetSalary = resp.NetSalary.Add(rec.NetSalary)
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, payload, 10*time.Minute)
			}
		}
		return resp, nil
	})
	if err != nil {
		return QuarterReportResponse{}, err
	}

	return v.(QuarterReportResponse), nil
}

func (s *service) TaxByQuarter(ctx context.Context, employeeID, quarterLabel string) (QuarterTaxResponse, error) {
	exists, err := s.employees.Exists(ctx, employeeID)
	if err != nil {
		return QuarterTaxResponse{}, err
	}
	if !exists {
		return QuarterTaxResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	report, err := s.QuarterReport(ctx, quarterLabel, employeeID)
	if err != nil {
		return QuarterTaxResponse{}, err
	}

	return QuarterTaxResponse{
		Quarter:    report.Quarter,
		Year:       report.Year,
		EmployeeID: employeeID,
		Tax:        report.Tax,
	}, nil
}

func (s *service) Payslip(ctx context.Context, recordID string) ([]byte, error) {
	rec, err := s.repo.FindRecordByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrRecordNotFound
		}
		return nil, err
	}

	name := rec.EmployeeID
	if emp, err := s.employees.FindByID(ctx, rec.EmployeeID); err == nil {
		name = emp.FullName
	}

	lines := []string{
		"Payslip",
		fmt.Sprintf("Employee: %s (%s)", name, rec.EmployeeID),
		fmt.Sprintf("Period: %s to %s",
			rec.PayPeriodStart.Format(time.DateOnly),
			rec.PayPeriodEnd.Format(time.DateOnly)),
		fmt.Sprintf("Gross salary: %s", rec.GrossSalary.StringFixed(2)),
		fmt.Sprintf("Bonus: %s", rec.Bonus.StringFixed(2)),
		fmt.Sprintf("Tax: %s", rec.Tax.StringFixed(2)),
		fmt.Sprintf("Provident fund: %s", rec.PF.StringFixed(2)),
		fmt.Sprintf("Penalty: %s", rec.Penalty.StringFixed(2)),
		fmt.Sprintf("Net salary: %s", rec.NetSalary.StringFixed(2)),
	}
	return buildPayslipPDF(lines)
}

func mapRecordToResponse(rec SalaryRecord) SalaryRecordResponse {
	return SalaryRecordResponse{
		ID:             rec.ID,
		EmployeeID:     rec.EmployeeID,
		PayPeriodStart: rec.PayPeriodStart.Format(time.DateOnly),
		PayPeriodEnd:   rec.PayPeriodEnd.Format(time.DateOnly),
		GrossSalary:    rec.GrossSalary,
		Bonus:          rec.Bonus,
		Tax:            rec.Tax,
		PF:             rec.PF,
		Penalty:        rec.Penalty,
		NetSalary:      rec.NetSalary,
	}
}
