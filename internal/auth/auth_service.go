package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "go-payroll/internal/auth/errors"
	"go-payroll/internal/shared/idgen"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 8 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)
	// Login verifies credentials, writes a login log either way, and
	// issues a signed access token on success.
	Login(ctx context.Context, req LoginRequest, ip, userAgent string) (LoginResponse, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
	LoginLogs(ctx context.Context, username string, limit int) ([]LoginLogResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (UserResponse, error) {
	if _, err := s.repo.FindUserByUsername(ctx, req.Username); err == nil {
		return UserResponse{}, autherrors.ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	u := &User{
		ID:           idgen.New(idgen.PrefixUser),
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
		EmployeeID:   req.EmployeeID,
		IsActive:     true,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		s.logger.Error("register persist failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID),
		zap.String("role", u.Role),
	)
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Role:       u.Role,
		EmployeeID: u.EmployeeID,
		IsActive:   u.IsActive,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest, ip, userAgent string) (LoginResponse, error) {
	u, err := s.repo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordLogin(ctx, req.Username, "", false, ip, userAgent)
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}

	if !u.IsActive ||
		bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		s.recordLogin(ctx, req.Username, u.ID, false, ip, userAgent)
		s.logger.Warn("login refused", zap.String("username", req.Username))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id":     u.ID,
		"employee_id": u.EmployeeID,
		"role":        u.Role,
		"iat":         time.Now().Unix(),
		"exp":         time.Now().Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return LoginResponse{}, err
	}

	s.recordLogin(ctx, req.Username, u.ID, true, ip, userAgent)
	s.logger.Info("login success", zap.String("user_id", u.ID))

	return LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(tokenTTL.Seconds()),
		UserID:      u.ID,
		EmployeeID:  u.EmployeeID,
		Role:        u.Role,
	}, nil
}

// recordLogin writes the audit row best-effort; a logging failure must
// not block authentication.
func (s *service) recordLogin(ctx context.Context, username, userID string, success bool, ip, userAgent string) {
	log := &LoginLog{
		ID:        idgen.New(idgen.PrefixLoginLog),
		Username:  username,
		UserID:    userID,
		Success:   success,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.repo.CreateLoginLog(ctx, log); err != nil {
		s.logger.Error("login log write failed", zap.Error(err))
	}
}

func (s *service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	u, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return autherrors.ErrUserNotFound
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return autherrors.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("user_id", userID))
	return nil
}

func (s *service) LoginLogs(ctx context.Context, username string, limit int) ([]LoginLogResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	logs, err := s.repo.FindLoginLogs(ctx, username, limit)
	if err != nil {
		return nil, err
	}

	resp := make([]LoginLogResponse, len(logs))
	for i, log := range logs {
		resp[i] = LoginLogResponse{
			ID:        log.ID,
			Username:  log.Username,
			Success:   log.Success,
			IPAddress: log.IPAddress,
			CreatedAt: log.CreatedAt,
		}
	}
	return resp, nil
}
