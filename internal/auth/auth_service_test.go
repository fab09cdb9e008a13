package auth

import (
	"context"
	"database/sql"
	"testing"

	autherrors "go-payroll/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAuthRepo struct {
	users map[string]*User // by username
	logs  []LoginLog
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: make(map[string]*User)}
}

func (f *fakeAuthRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeAuthRepo) CreateUser(ctx context.Context, u *User) error {
	f.users[u.Username] = u
	return nil
}

func (f *fakeAuthRepo) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	u, ok := f.users[username]
	if !ok {
		return &User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeAuthRepo) FindUserByID(ctx context.Context, id string) (*User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return &User{}, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
		}
	}
	return nil
}

func (f *fakeAuthRepo) CreateLoginLog(ctx context.Context, log *LoginLog) error {
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeAuthRepo) FindLoginLogs(ctx context.Context, username string, limit int) ([]LoginLog, error) {
	var out []LoginLog
	for _, log := range f.logs {
		if log.Username == username {
			out = append(out, log)
		}
	}
	return out, nil
}

func registeredService(t *testing.T) (Service, *fakeAuthRepo) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeAuthRepo()
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username:   "asha.pillai",
		Password:   "correct-horse",
		Role:       RoleEmployee,
		EmployeeID: "EMP1000001",
	})
	require.NoError(t, err)
	return svc, repo
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc, repo := registeredService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "asha.pillai",
		Password: "whatever-else",
		Role:     RoleHR,
	})
	assert.ErrorIs(t, err, autherrors.ErrUserExists)
	assert.Len(t, repo.users, 1)

	// The stored hash must never be the raw password.
	assert.NotEqual(t, "correct-horse", repo.users["asha.pillai"].PasswordHash)
}

func TestLoginIssuesTokenWithClaims(t *testing.T) {
	svc, repo := registeredService(t)

	resp, err := svc.Login(context.Background(),
		LoginRequest{Username: "asha.pillai", Password: "correct-horse"},
		"10.0.0.7", "go-test")
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "EMP1000001", resp.EmployeeID)

	token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.UserID, claims["user_id"])
	assert.Equal(t, "EMP1000001", claims["employee_id"])
	assert.Equal(t, RoleEmployee, claims["role"])

	require.Len(t, repo.logs, 1)
	assert.True(t, repo.logs[0].Success)
	assert.Equal(t, "10.0.0.7", repo.logs[0].IPAddress)
}

func TestLoginRefusesBadPasswordAndLogsIt(t *testing.T) {
	svc, repo := registeredService(t)

	_, err := svc.Login(context.Background(),
		LoginRequest{Username: "asha.pillai", Password: "wrong"},
		"10.0.0.7", "go-test")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(),
		LoginRequest{Username: "nobody", Password: "wrong"},
		"10.0.0.7", "go-test")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	require.Len(t, repo.logs, 2)
	assert.False(t, repo.logs[0].Success)
	assert.False(t, repo.logs[1].Success)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	svc, repo := registeredService(t)
	ctx := context.Background()
	userID := repo.users["asha.pillai"].ID

	err := svc.ChangePassword(ctx, userID, ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-password-1",
	})
	assert.ErrorIs(t, err, autherrors.ErrPasswordMismatch)

	err = svc.ChangePassword(ctx, userID, ChangePasswordRequest{
		CurrentPassword: "correct-horse",
		NewPassword:     "new-password-1",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx,
		LoginRequest{Username: "asha.pillai", Password: "new-password-1"},
		"10.0.0.7", "go-test")
	assert.NoError(t, err)
}
