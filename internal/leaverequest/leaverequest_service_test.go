package leaverequest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/leavebalance"
	leavebalanceerrors "go-payroll/internal/leavebalance/errors"
	leaverequesterrors "go-payroll/internal/leaverequest/errors"
	"go-payroll/internal/leavetype"
	leavetypeerrors "go-payroll/internal/leavetype/errors"
	"go-payroll/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRequestRepo struct {
	requests map[string]*LeaveRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*LeaveRequest)}
}

func (f *fakeRequestRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRequestRepo) Create(ctx context.Context, lr *LeaveRequest) error {
	f.requests[lr.ID] = lr
	return nil
}

func (f *fakeRequestRepo) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	lr, ok := f.requests[id]
	if !ok {
		return &LeaveRequest{}, gorm.ErrRecordNotFound
	}
	cp := *lr
	return &cp, nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, id, status, description string) error {
	lr := f.requests[id]
	lr.Status = status
	lr.Description = description
	return nil
}

func (f *fakeRequestRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]RequestWithType, error) {
	var out []RequestWithType
	for _, lr := range f.requests {
		if lr.EmployeeID == employeeID {
			out = append(out, RequestWithType{LeaveRequest: *lr})
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) FindPendingByManager(ctx context.Context, managerID string) ([]RequestWithEmployee, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	ids map[string]bool
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository           { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if !f.ids[id] {
		return &employee.Employee{}, gorm.ErrRecordNotFound
	}
	return &employee.Employee{ID: id}, nil
}
func (f *fakeEmployeeRepo) FindAll(ctx context.Context, limit, offset int) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}
func (f *fakeEmployeeRepo) Exists(ctx context.Context, id string) (bool, error) {
	return f.ids[id], nil
}
func (f *fakeEmployeeRepo) FindDirectReports(ctx context.Context, managerID string) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) Deactivate(ctx context.Context, id string) error { return nil }

type fakeTypeRepo struct {
	types map[string]string // id -> name
}

func (f *fakeTypeRepo) WithTx(tx *sql.Tx) leavetype.Repository                  { return f }
func (f *fakeTypeRepo) Create(ctx context.Context, lt *leavetype.LeaveType) error { return nil }
func (f *fakeTypeRepo) FindAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	return nil, nil
}
func (f *fakeTypeRepo) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	name, ok := f.types[id]
	if !ok {
		return &leavetype.LeaveType{}, gorm.ErrRecordNotFound
	}
	return &leavetype.LeaveType{ID: id, TypeName: name}, nil
}
func (f *fakeTypeRepo) FindByName(ctx context.Context, name string) (*leavetype.LeaveType, error) {
	return &leavetype.LeaveType{}, gorm.ErrRecordNotFound
}
func (f *fakeTypeRepo) Update(ctx context.Context, lt *leavetype.LeaveType) error { return nil }

// fakeBalances is an in-memory stand-in for the ledger service with the
// same guard semantics.
type balanceRow struct {
	total, used, remaining decimal.Decimal
}

type fakeBalances struct {
	rows map[string]*balanceRow // employeeID+"/"+leaveTypeID
}

func (f *fakeBalances) key(employeeID, leaveTypeID string) string {
	return employeeID + "/" + leaveTypeID
}

func (f *fakeBalances) Initialize(ctx context.Context, tx *sql.Tx, employeeID string) error {
	return nil
}

func (f *fakeBalances) Debit(ctx context.Context, tx *sql.Tx, employeeID, leaveTypeID string, days decimal.Decimal) error {
	row, ok := f.rows[f.key(employeeID, leaveTypeID)]
	if !ok {
		return leavebalanceerrors.ErrBalanceNotFound
	}
	if row.remaining.LessThan(days) {
		return leavebalanceerrors.ErrLeavesExhausted
	}
	row.used = row.used.Add(days)
	row.remaining = row.remaining.Sub(days)
	return nil
}

func (f *fakeBalances) Credit(ctx context.Context, tx *sql.Tx, employeeID, leaveTypeID string, days decimal.Decimal) error {
	row := f.rows[f.key(employeeID, leaveTypeID)]
	row.used = row.used.Sub(days)
	row.remaining = row.remaining.Add(days)
	return nil
}

func (f *fakeBalances) Remaining(ctx context.Context, employeeID, leaveTypeID string) (decimal.Decimal, error) {
	row, ok := f.rows[f.key(employeeID, leaveTypeID)]
	if !ok {
		return decimal.Zero, leavebalanceerrors.ErrBalanceNotFound
	}
	return row.remaining, nil
}

func (f *fakeBalances) ListForEmployee(ctx context.Context, employeeID string) ([]leavebalance.LeaveBalanceResponse, error) {
	return nil, nil
}

type fakeSynchronizer struct {
	materialized []attendance.LeavePlan
}

func (f *fakeSynchronizer) Materialize(ctx context.Context, tx *sql.Tx, plan attendance.LeavePlan) error {
	f.materialized = append(f.materialized, plan)
	return nil
}

func (f *fakeSynchronizer) Demolish(ctx context.Context, tx *sql.Tx, employeeID string, start, end time.Time) error {
	kept := f.materialized[:0]
	for _, plan := range f.materialized {
		covered := plan.EmployeeID == employeeID &&
			!plan.StartDate.Before(start) && !plan.EndDate.After(end)
		if !covered {
			kept = append(kept, plan)
		}
	}
	f.materialized = kept
	return nil
}

type workflowFixture struct {
	svc      Service
	repo     *fakeRequestRepo
	balances *fakeBalances
	sync     *fakeSynchronizer
	mock     sqlmock.Sqlmock
}

func newWorkflowFixture(t *testing.T, remaining float64) *workflowFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := newFakeRequestRepo()
	balances := &fakeBalances{rows: map[string]*balanceRow{
		"EMP1000001/TYP1000001": {
			total:     decimal.NewFromInt(12),
			used:      decimal.NewFromInt(12).Sub(decimal.NewFromFloat(remaining)),
			remaining: decimal.NewFromFloat(remaining),
		},
	}}
	sync := &fakeSynchronizer{}

	svc := NewService(
		db,
		repo,
		&fakeEmployeeRepo{ids: map[string]bool{"EMP1000001": true}},
		&fakeTypeRepo{types: map[string]string{"TYP1000001": "Casual Leave"}},
		balances,
		sync,
	)
	return &workflowFixture{svc: svc, repo: repo, balances: balances, sync: sync, mock: mock}
}

func submitReq(start, end, startHalf, endHalf string) SubmitLeaveRequest {
	return SubmitLeaveRequest{
		LeaveTypeID: "TYP1000001",
		StartDate:   start,
		StartHalf:   startHalf,
		EndDate:     end,
		EndHalf:     endHalf,
		Reason:      "personal",
	}
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	f := newWorkflowFixture(t, 12)

	resp, err := f.svc.Submit(context.Background(), "EMP1000001",
		submitReq("2024-10-01", "2024-10-05", attendance.HalfMorning, attendance.HalfAfternoon))
	require.NoError(t, err)

	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, "5", resp.NoOfDays.String())
	assert.Equal(t, "Casual Leave", resp.TypeName)

	// Submission never touches the ledger.
	remaining, _ := f.balances.Remaining(context.Background(), "EMP1000001", "TYP1000001")
	assert.True(t, remaining.Equal(decimal.NewFromInt(12)))
}

func TestSubmitFailsWhenExhausted(t *testing.T) {
	f := newWorkflowFixture(t, 0.5)

	_, err := f.svc.Submit(context.Background(), "EMP1000001",
		submitReq("2024-10-01", "2024-10-01", attendance.HalfMorning, attendance.HalfAfternoon))
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeLeavesExhausted, appErr.Code)
	assert.Empty(t, f.repo.requests)
}

func TestSubmitUnknownEmployee(t *testing.T) {
	f := newWorkflowFixture(t, 12)

	_, err := f.svc.Submit(context.Background(), "EMP9999999",
		submitReq("2024-10-01", "2024-10-01", attendance.HalfMorning, attendance.HalfMorning))
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestSubmitUnknownLeaveType(t *testing.T) {
	f := newWorkflowFixture(t, 12)

	req := submitReq("2024-10-01", "2024-10-01", attendance.HalfMorning, attendance.HalfMorning)
	req.LeaveTypeID = "TYP9999999"

	_, err := f.svc.Submit(context.Background(), "EMP1000001", req)
	assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
}

func TestSubmitRejectsReversedRange(t *testing.T) {
	f := newWorkflowFixture(t, 12)

	_, err := f.svc.Submit(context.Background(), "EMP1000001",
		submitReq("2024-10-05", "2024-10-01", attendance.HalfMorning, attendance.HalfAfternoon))
	assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidDateRange)
}

func TestDecideApproveDebitsAndMaterializes(t *testing.T) {
	f := newWorkflowFixture(t, 12)
	ctx := context.Background()

	resp, err := f.svc.Submit(ctx, "EMP1000001",
		submitReq("2024-10-01", "2024-10-02", attendance.HalfMorning, attendance.HalfAfternoon))
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	decided, err := f.svc.Decide(ctx, resp.ID, DecideLeaveRequest{Status: StatusApproved, Description: "enjoy"})
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, decided.Status)

	remaining, _ := f.balances.Remaining(ctx, "EMP1000001", "TYP1000001")
	assert.True(t, remaining.Equal(decimal.NewFromInt(10)))
	require.Len(t, f.sync.materialized, 1)
	assert.Equal(t, "EMP1000001", f.sync.materialized[0].EmployeeID)
	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestDecideRejectLeavesLedgerAlone(t *testing.T) {
	f := newWorkflowFixture(t, 12)
	ctx := context.Background()

	resp, err := f.svc.Submit(ctx, "EMP1000001",
		submitReq("2024-10-01", "2024-10-02", attendance.HalfMorning, attendance.HalfAfternoon))
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	decided, err := f.svc.Decide(ctx, resp.ID, DecideLeaveRequest{Status: StatusRejected, Description: "staffing"})
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, decided.Status)

	remaining, _ := f.balances.Remaining(ctx, "EMP1000001", "TYP1000001")
	assert.True(t, remaining.Equal(decimal.NewFromInt(12)))
	assert.Empty(t, f.sync.materialized)
}

func TestDecideFailedDebitChangesNothing(t *testing.T) {
	f := newWorkflowFixture(t, 12)
	ctx := context.Background()

	resp, err := f.svc.Submit(ctx, "EMP1000001",
		submitReq("2024-10-01", "2024-10-05", attendance.HalfMorning, attendance.HalfAfternoon))
	require.NoError(t, err)

	// Drain the balance behind the request's back so approval's debit
	// is refused.
	f.balances.rows["EMP1000001/TYP1000001"].remaining = decimal.NewFromInt(1)

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err = f.svc.Decide(ctx, resp.ID, DecideLeaveRequest{Status: StatusApproved})
	require.Error(t, err)

	stored := f.repo.requests[resp.ID]
	assert.Equal(t, StatusPending, stored.Status)
	assert.Empty(t, f.sync.materialized)
	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestDecideRequiresPendingState(t *testing.T) {
	f := newWorkflowFixture(t, 12)
	ctx := context.Background()

	resp, err := f.svc.Submit(ctx, "EMP1000001",
		submitReq("2024-10-01", "2024-10-01", attendance.HalfMorning, attendance.HalfMorning))
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	_, err = f.svc.Decide(ctx, resp.ID, DecideLeaveRequest{Status: StatusApproved})
	require.NoError(t, err)

	_, err = f.svc.Decide(ctx, resp.ID, DecideLeaveRequest{Status: StatusRejected})
	assert.ErrorIs(t, err, leaverequesterrors.ErrNotPending)
}

func TestApproveCancelRoundTrip(t *testing.T) {
	f := newWorkflowFixture(t, 12)
	ctx := context.Background()

	resp, err := f.svc.Submit(ctx, "EMP1000001",
		submitReq("2024-10-01", "2024-10-02", attendance.HalfMorning, attendance.HalfAfternoon))
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	_, err = f.svc.Decide(ctx, resp.ID, DecideLeaveRequest{Status: StatusApproved})
	require.NoError(t, err)

	row := f.balances.rows["EMP1000001/TYP1000001"]
	assert.True(t, row.remaining.Equal(decimal.NewFromInt(10)))
	assert.True(t, row.used.Equal(decimal.NewFromInt(2)))

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	cancelled, err := f.svc.Cancel(ctx, resp.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, "Cancelled.", cancelled.Description)
	assert.True(t, row.remaining.Equal(decimal.NewFromInt(12)))
	assert.True(t, row.used.IsZero())
	assert.Empty(t, f.sync.materialized)
	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCancelPendingSkipsLedger(t *testing.T) {
	f := newWorkflowFixture(t, 12)
	ctx := context.Background()

	resp, err := f.svc.Submit(ctx, "EMP1000001",
		submitReq("2024-10-01", "2024-10-01", attendance.HalfMorning, attendance.HalfMorning))
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	cancelled, err := f.svc.Cancel(ctx, resp.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, cancelled.Status)
	remaining, _ := f.balances.Remaining(ctx, "EMP1000001", "TYP1000001")
	assert.True(t, remaining.Equal(decimal.NewFromInt(12)))
}

func TestCancelClosedRequestFails(t *testing.T) {
	f := newWorkflowFixture(t, 12)
	ctx := context.Background()

	resp, err := f.svc.Submit(ctx, "EMP1000001",
		submitReq("2024-10-01", "2024-10-01", attendance.HalfMorning, attendance.HalfMorning))
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	_, err = f.svc.Cancel(ctx, resp.ID)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, resp.ID)
	assert.ErrorIs(t, err, leaverequesterrors.ErrAlreadyClosed)

	_, err = f.svc.Cancel(ctx, "REQ9999999")
	assert.ErrorIs(t, err, leaverequesterrors.ErrRequestNotFound)
}
