package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePayrollRepo struct {
	ctc       map[string]decimal.Decimal
	absences  map[string]int
	marriages map[string]bool
	records   []SalaryRecord
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		ctc:       make(map[string]decimal.Decimal),
		absences:  make(map[string]int),
		marriages: make(map[string]bool),
	}
}

func (f *fakePayrollRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakePayrollRepo) SaveCostToCompany(ctx context.Context, salaryID, employeeID string, ctc decimal.Decimal) error {
	f.ctc[employeeID] = ctc
	return nil
}

func (f *fakePayrollRepo) CreateDefaultSalary(ctx context.Context, salaryID, employeeID string) error {
	if _, ok := f.ctc[employeeID]; !ok {
		f.ctc[employeeID] = decimal.Zero
	}
	return nil
}

func (f *fakePayrollRepo) FindCostToCompany(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	ctc, ok := f.ctc[employeeID]
	if !ok {
		return decimal.Zero, gorm.ErrRecordNotFound
	}
	return ctc, nil
}

func (f *fakePayrollRepo) CountAbsences(ctx context.Context, employeeID string, year int, month time.Month) (int, error) {
	return f.absences[employeeID], nil
}

func (f *fakePayrollRepo) HasApprovedMarriageLeave(ctx context.Context, employeeID string, year int, month time.Month) (bool, error) {
	return f.marriages[employeeID], nil
}

func (f *fakePayrollRepo) CreateRecord(ctx context.Context, rec *SalaryRecord) error {
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakePayrollRepo) FindRecordByID(ctx context.Context, id string) (*SalaryRecord, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return &SalaryRecord{}, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepo) FindRecordsByEmployee(ctx context.Context, employeeID string) ([]SalaryRecord, error) {
	var out []SalaryRecord
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) FindRecordsInWindow(ctx context.Context, employeeID string, start, end time.Time) ([]SalaryRecord, error) {
	var out []SalaryRecord
	for _, rec := range f.records {
		if employeeID != "" && rec.EmployeeID != employeeID {
			continue
		}
		if rec.PayPeriodStart.Before(start) || rec.PayPeriodStart.After(end) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	emps map[string]*employee.Employee
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository           { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	e, ok := f.emps[id]
	if !ok {
		return &employee.Employee{}, gorm.ErrRecordNotFound
	}
	return e, nil
}
func (f *fakeEmployeeRepo) FindAll(ctx context.Context, limit, offset int) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}
func (f *fakeEmployeeRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := f.emps[id]
	return ok, nil
}
func (f *fakeEmployeeRepo) FindDirectReports(ctx context.Context, managerID string) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) Deactivate(ctx context.Context, id string) error { return nil }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func payrollFixture() (*fakePayrollRepo, *fakeEmployeeRepo, Service) {
	repo := newFakePayrollRepo()
	employees := &fakeEmployeeRepo{emps: map[string]*employee.Employee{
		"EMP1000001": {
			ID:          "EMP1000001",
			FullName:    "Asha Pillai",
			DateOfBirth: date(1992, time.March, 14),
			JoiningDate: date(2020, time.June, 1),
			IsActive:    true,
		},
	}}
	svc := NewService(repo, employees, nil)
	return repo, employees, svc
}

func TestMonthlyTaxAtSlabBoundaries(t *testing.T) {
	cases := []struct {
		annual int64
		want   string
	}{
		{300000, "0.00"},
		{600000, "1250.00"},
		{900000, "3750.00"},
		{1200000, "7500.00"},
		{1500000, "12500.00"},
	}

	for _, tc := range cases {
		got := monthlyTax(decimal.NewFromInt(tc.annual))
		assert.Equal(t, tc.want, got.StringFixed(2), "annual %d", tc.annual)
	}
}

func TestMonthlyTaxAboveTopSlab(t *testing.T) {
	// 1,800,000 annual: 150,000 + 20% of 300,000 = 210,000 a year.
	got := monthlyTax(decimal.NewFromInt(1800000))
	assert.Equal(t, "17500.00", got.StringFixed(2))
}

func TestComputeForPeriodBaseline(t *testing.T) {
	repo, _, svc := payrollFixture()
	repo.ctc["EMP1000001"] = decimal.NewFromInt(600000)

	// October: not a birthday month, not November, no marriage leave.
	rec, err := svc.ComputeForPeriod(context.Background(), "EMP1000001", 2024, time.October)
	require.NoError(t, err)

	assert.Equal(t, "50000.00", rec.GrossSalary.StringFixed(2))
	assert.Equal(t, "0.00", rec.Penalty.StringFixed(2))
	assert.Equal(t, "2500.00", rec.PF.StringFixed(2))
	assert.Equal(t, "1250.00", rec.Tax.StringFixed(2))
	assert.Equal(t, "0.00", rec.Bonus.StringFixed(2))
	assert.Equal(t, "46250.00", rec.NetSalary.StringFixed(2))
	assert.Equal(t, "2024-10-01", rec.PayPeriodStart)
	assert.Equal(t, "2024-10-31", rec.PayPeriodEnd)
	require.Len(t, repo.records, 1)
}

func TestComputeForPeriodAbsencePenalty(t *testing.T) {
	repo, _, svc := payrollFixture()
	repo.ctc["EMP1000001"] = decimal.NewFromInt(600000)
	repo.absences["EMP1000001"] = 3

	rec, err := svc.ComputeForPeriod(context.Background(), "EMP1000001", 2024, time.October)
	require.NoError(t, err)

	// Per-day pay divides by daysInMonth-1: 50000 / 30 = 1666.67
	// after the ceiling to two decimals.
	assert.Equal(t, "5000.01", rec.Penalty.StringFixed(2))
	assert.Equal(t, "41249.99", rec.NetSalary.StringFixed(2))
}

func TestComputeForPeriodProratesJoiningMonth(t *testing.T) {
	repo, employees, svc := payrollFixture()
	repo.ctc["EMP1000001"] = decimal.NewFromInt(600000)
	employees.emps["EMP1000001"].JoiningDate = date(2024, time.October, 10)

	rec, err := svc.ComputeForPeriod(context.Background(), "EMP1000001", 2024, time.October)
	require.NoError(t, err)

	// Nine days before joining count as absence: 9 x 1666.67.
	assert.Equal(t, "15000.03", rec.Penalty.StringFixed(2))
}

func TestComputeForPeriodBonuses(t *testing.T) {
	repo, employees, svc := payrollFixture()
	repo.ctc["EMP1000001"] = decimal.NewFromInt(600000)
	repo.marriages["EMP1000001"] = true
	employees.emps["EMP1000001"].DateOfBirth = date(1992, time.November, 3)

	rec, err := svc.ComputeForPeriod(context.Background(), "EMP1000001", 2024, time.November)
	require.NoError(t, err)

	// Birthday 1000 + November 2000 + marriage 10000.
	assert.Equal(t, "13000.00", rec.Bonus.StringFixed(2))
	assert.Equal(t, "59250.00", rec.NetSalary.StringFixed(2))
}

func TestComputeFailsWithoutEmployeeOrSalary(t *testing.T) {
	repo, _, svc := payrollFixture()
	ctx := context.Background()

	_, err := svc.ComputeForPeriod(ctx, "EMP9999999", 2024, time.October)
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)

	_, err = svc.ComputeForPeriod(ctx, "EMP1000001", 2024, time.October)
	assert.ErrorIs(t, err, payrollerrors.ErrSalaryNotConfigured)
	assert.Empty(t, repo.records)
}

func TestQuarterWindowLabels(t *testing.T) {
	start, end, err := quarterWindow("Quarter 1", 2024)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.January, 1), start)
	assert.Equal(t, date(2024, time.March, 31), end)

	start, end, err = quarterWindow("qUaRtEr 4", 2024)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.October, 1), start)
	assert.Equal(t, date(2024, time.December, 31), end)

	_, _, err = quarterWindow("Quarter 5", 2024)
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidQuarter)
	_, _, err = quarterWindow("H1", 2024)
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidQuarter)
}

func TestQuarterReportSumsRecords(t *testing.T) {
	repo, _, svc := payrollFixture()
	year := time.Now().Year()

	mk := func(id string, m time.Month, gross, net float64) SalaryRecord {
		return SalaryRecord{
			ID:             id,
			EmployeeID:     "EMP1000001",
			PayPeriodStart: date(year, m, 1),
			PayPeriodEnd:   date(year, m, 28),
			GrossSalary:    decimal.NewFromFloat(gross),
			Tax:            decimal.NewFromInt(1250),
			PF:             decimal.NewFromInt(2500),
			NetSalary:      decimal.NewFromFloat(net),
		}
	}
	repo.records = []SalaryRecord{
		mk("RCD1000001", time.January, 50000, 46250),
		mk("RCD1000002", time.February, 50000, 46250),
		mk("RCD1000003", time.March, 50000, 46250),
		// April belongs to the next quarter.
		mk("RCD1000004", time.April, 50000, 46250),
	}

	report, err := svc.QuarterReport(context.Background(), "Quarter 1", "EMP1000001")
	require.NoError(t, err)

	assert.Equal(t, 3, report.Records)
	assert.Equal(t, "150000.00", report.GrossSalary.StringFixed(2))
	assert.Equal(t, "3750.00", report.Tax.StringFixed(2))
	assert.Equal(t, "7500.00", report.PF.StringFixed(2))
	assert.Equal(t, "138750.00", report.NetSalary.StringFixed(2))
}

func TestQuarterReportEmptyIsZero(t *testing.T) {
	_, _, svc := payrollFixture()

	report, err := svc.QuarterReport(context.Background(), "Quarter 2", "")
	require.NoError(t, err)

	assert.Equal(t, 0, report.Records)
	assert.True(t, report.GrossSalary.IsZero())
	assert.True(t, report.NetSalary.IsZero())
}

func TestTaxByQuarter(t *testing.T) {
	repo, _, svc := payrollFixture()
	year := time.Now().Year()
	repo.records = []SalaryRecord{
		{
			ID:             "RCD1000001",
			EmployeeID:     "EMP1000001",
			PayPeriodStart: date(year, time.July, 1),
			Tax:            decimal.NewFromInt(1250),
		},
		{
			ID:             "RCD1000002",
			EmployeeID:     "EMP1000001",
			PayPeriodStart: date(year, time.August, 1),
			Tax:            decimal.NewFromInt(1250),
		},
	}

	resp, err := svc.TaxByQuarter(context.Background(), "EMP1000001", "Quarter 3")
	require.NoError(t, err)
	assert.Equal(t, "2500.00", resp.Tax.StringFixed(2))
}

func TestTaxByQuarterUnknownEmployeeFails(t *testing.T) {
	_, _, svc := payrollFixture()

	_, err := svc.TaxByQuarter(context.Background(), "EMP9999999", "Quarter 3")
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestPayslipRendersPDF(t *testing.T) {
	repo, _, svc := payrollFixture()
	repo.records = []SalaryRecord{{
		ID:             "RCD1000001",
		EmployeeID:     "EMP1000001",
		PayPeriodStart: date(2024, time.October, 1),
		PayPeriodEnd:   date(2024, time.October, 31),
		GrossSalary:    decimal.NewFromInt(50000),
		NetSalary:      decimal.NewFromFloat(46250),
	}}

	pdf, err := svc.Payslip(context.Background(), "RCD1000001")
	require.NoError(t, err)

	body := string(pdf)
	assert.True(t, strings.HasPrefix(body, "%PDF-1.4"))
	assert.Contains(t, body, "Asha Pillai")
	assert.Contains(t, body, "Net salary: 46250.00")

	_, err = svc.Payslip(context.Background(), "RCD9999999")
	assert.ErrorIs(t, err, payrollerrors.ErrRecordNotFound)
}

func TestQuarterReportServedFromCache(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	repo := newFakePayrollRepo()
	svc := NewService(repo, &fakeEmployeeRepo{}, rdb)

	year := time.Now().Year()
	cached := QuarterReportResponse{
		Quarter:     "Quarter 1",
		Year:        year,
		EmployeeID:  "EMP1000001",
		Records:     3,
		GrossSalary: decimal.NewFromInt(150000),
		Bonus:       decimal.Zero,
		Tax:         decimal.NewFromInt(3750),
		PF:          decimal.NewFromInt(7500),
		Penalty:     decimal.Zero,
		NetSalary:   decimal.NewFromInt(138750),
	}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	key := fmt.Sprintf("payroll:quarter:%d:quarter 1:EMP1000001", year)
	rmock.ExpectGet(key).SetVal(string(payload))

	// Repo has no records; a hit must come from the cache alone.
	report, err := svc.QuarterReport(context.Background(), "Quarter 1", "EMP1000001")
	require.NoError(t, err)

	assert.Equal(t, 3, report.Records)
	assert.Equal(t, "150000.00", report.GrossSalary.StringFixed(2))
	require.NoError(t, rmock.ExpectationsWereMet())
}

func TestQuarterReportCacheMissFallsThrough(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	repo := newFakePayrollRepo()
	svc := NewService(repo, &fakeEmployeeRepo{}, rdb)

	year := time.Now().Year()
	repo.records = []SalaryRecord{{
		ID:             "RCD1000001",
		EmployeeID:     "EMP1000001",
		PayPeriodStart: date(year, time.February, 1),
		PayPeriodEnd:   date(year, time.February, 28),
		GrossSalary:    decimal.NewFromInt(50000),
		NetSalary:      decimal.NewFromFloat(46250),
	}}

	key := fmt.Sprintf("payroll:quarter:%d:quarter 1:EMP1000001", year)
	rmock.ExpectGet(key).RedisNil()
	rmock.Regexp().ExpectSet(key, `.*`, 10*time.Minute).SetVal("OK")

	report, err := svc.QuarterReport(context.Background(), "Quarter 1", "EMP1000001")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Records)
	assert.Equal(t, "50000.00", report.GrossSalary.StringFixed(2))
	require.NoError(t, rmock.ExpectationsWereMet())
}
