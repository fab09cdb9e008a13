package leavebalance

import (
	"context"
	"database/sql"
	"testing"

	leavebalanceerrors "go-payroll/internal/leavebalance/errors"
	"go-payroll/internal/leavetype"
	"go-payroll/internal/shared/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeBalanceRepo struct {
	rows map[string]*LeaveBalance // keyed by employeeID+"/"+leaveTypeID
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{rows: make(map[string]*LeaveBalance)}
}

func (f *fakeBalanceRepo) key(employeeID, leaveTypeID string) string {
	return employeeID + "/" + leaveTypeID
}

func (f *fakeBalanceRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeBalanceRepo) Create(ctx context.Context, lb *LeaveBalance) error {
	f.rows[f.key(lb.EmployeeID, lb.LeaveTypeID)] = lb
	return nil
}

func (f *fakeBalanceRepo) FindByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string) (*LeaveBalance, error) {
	lb, ok := f.rows[f.key(employeeID, leaveTypeID)]
	if !ok {
		return &LeaveBalance{}, gorm.ErrRecordNotFound
	}
	return lb, nil
}

func (f *fakeBalanceRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveBalanceWithType, error) {
	var out []LeaveBalanceWithType
	for _, lb := range f.rows {
		if lb.EmployeeID == employeeID {
			out = append(out, LeaveBalanceWithType{LeaveBalance: *lb})
		}
	}
	return out, nil
}

func (f *fakeBalanceRepo) Debit(ctx context.Context, employeeID, leaveTypeID string, days decimal.Decimal) (bool, error) {
	lb, ok := f.rows[f.key(employeeID, leaveTypeID)]
	if !ok || !lb.RemainingLeaves.Valid || lb.RemainingLeaves.Decimal.LessThan(days) {
		return false, nil
	}
	lb.UsedLeaves.Decimal = lb.UsedLeaves.Decimal.Add(days)
	lb.RemainingLeaves.Decimal = lb.RemainingLeaves.Decimal.Sub(days)
	return true, nil
}

func (f *fakeBalanceRepo) Credit(ctx context.Context, employeeID, leaveTypeID string, days decimal.Decimal) error {
	lb, ok := f.rows[f.key(employeeID, leaveTypeID)]
	if !ok {
		return nil
	}
	lb.UsedLeaves.Decimal = lb.UsedLeaves.Decimal.Sub(days)
	lb.RemainingLeaves.Decimal = lb.RemainingLeaves.Decimal.Add(days)
	return nil
}

type fakeTypeRepo struct {
	types []leavetype.LeaveType
}

func (f *fakeTypeRepo) WithTx(tx *sql.Tx) leavetype.Repository { return f }

func (f *fakeTypeRepo) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	f.types = append(f.types, *lt)
	return nil
}

func (f *fakeTypeRepo) FindAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	return f.types, nil
}

func (f *fakeTypeRepo) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	for i := range f.types {
		if f.types[i].ID == id {
			return &f.types[i], nil
		}
	}
	return &leavetype.LeaveType{}, gorm.ErrRecordNotFound
}

func (f *fakeTypeRepo) FindByName(ctx context.Context, name string) (*leavetype.LeaveType, error) {
	for i := range f.types {
		if f.types[i].TypeName == name {
			return &f.types[i], nil
		}
	}
	return &leavetype.LeaveType{}, gorm.ErrRecordNotFound
}

func (f *fakeTypeRepo) Update(ctx context.Context, lt *leavetype.LeaveType) error { return nil }

func intPtr(n int) *int { return &n }

func seededService(t *testing.T) (Service, *fakeBalanceRepo) {
	t.Helper()

	repo := newFakeBalanceRepo()
	typeRepo := &fakeTypeRepo{types: []leavetype.LeaveType{
		{ID: "TYP1000001", TypeName: "Casual Leave", NumberOfLeaves: intPtr(12)},
		{ID: "TYP1000002", TypeName: "Marriage Leave", NumberOfLeaves: intPtr(5)},
		{ID: "TYP1000003", TypeName: "Loss Of Pay", NumberOfLeaves: nil},
	}}

	svc := NewService(repo, typeRepo)
	require.NoError(t, svc.Initialize(context.Background(), nil, "EMP1000001"))
	return svc, repo
}

func TestInitializeSeedsRowPerType(t *testing.T) {
	_, repo := seededService(t)

	assert.Len(t, repo.rows, 3)

	entitled := repo.rows["EMP1000001/TYP1000001"]
	require.NotNil(t, entitled)
	assert.Equal(t, 12, *entitled.TotalLeaves)
	assert.True(t, entitled.UsedLeaves.Decimal.IsZero())
	assert.True(t, entitled.RemainingLeaves.Decimal.Equal(decimal.NewFromInt(12)))

	unentitled := repo.rows["EMP1000001/TYP1000003"]
	require.NotNil(t, unentitled)
	assert.Nil(t, unentitled.TotalLeaves)
	assert.False(t, unentitled.RemainingLeaves.Valid)
}

func TestDebitCreditConservesTotal(t *testing.T) {
	svc, repo := seededService(t)
	ctx := context.Background()

	half := decimal.NewFromFloat(0.5)
	twoAndHalf := decimal.NewFromFloat(2.5)

	require.NoError(t, svc.Debit(ctx, nil, "EMP1000001", "TYP1000001", half))
	require.NoError(t, svc.Debit(ctx, nil, "EMP1000001", "TYP1000001", twoAndHalf))
	require.NoError(t, svc.Credit(ctx, nil, "EMP1000001", "TYP1000001", half))

	lb := repo.rows["EMP1000001/TYP1000001"]
	sum := lb.UsedLeaves.Decimal.Add(lb.RemainingLeaves.Decimal)
	assert.True(t, sum.Equal(decimal.NewFromInt(12)), "used + remaining must equal total, got %s", sum)
	assert.True(t, lb.UsedLeaves.Decimal.Equal(twoAndHalf))

	remaining, err := svc.Remaining(ctx, "EMP1000001", "TYP1000001")
	require.NoError(t, err)
	assert.True(t, remaining.Equal(decimal.NewFromFloat(9.5)))
}

func TestDebitRefusedWhenExhausted(t *testing.T) {
	svc, repo := seededService(t)
	ctx := context.Background()

	err := svc.Debit(ctx, nil, "EMP1000001", "TYP1000002", decimal.NewFromFloat(5.5))
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeLeavesExhausted, appErr.Code)
	assert.Equal(t, "Marriage Leave count is exhausted.", appErr.Message)

	// A refused debit must leave the row untouched.
	lb := repo.rows["EMP1000001/TYP1000002"]
	assert.True(t, lb.UsedLeaves.Decimal.IsZero())
	assert.True(t, lb.RemainingLeaves.Decimal.Equal(decimal.NewFromInt(5)))
}

func TestDebitUnentitledTypeIsNotFound(t *testing.T) {
	svc, _ := seededService(t)

	err := svc.Debit(context.Background(), nil, "EMP1000001", "TYP1000003", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, leavebalanceerrors.ErrBalanceNotFound)
}

func TestDebitUnknownEmployeeIsNotFound(t *testing.T) {
	svc, _ := seededService(t)

	err := svc.Debit(context.Background(), nil, "EMP9999999", "TYP1000001", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, leavebalanceerrors.ErrBalanceNotFound)
}
