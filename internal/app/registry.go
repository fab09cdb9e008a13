package app

import (
	"database/sql"
	"path/filepath"

	"go-payroll/internal/attendance"
	"go-payroll/internal/auth"
	"go-payroll/internal/employee"
	"go-payroll/internal/leavebalance"
	"go-payroll/internal/leaverequest"
	"go-payroll/internal/leavetype"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveBalanceRepo := leavebalance.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer(
		filepath.Join("internal", "rbac", "model.conf"),
		filepath.Join("internal", "rbac", "policy.csv"),
	)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo)
	leaveTypeService := leavetype.NewService(db, leaveTypeRepo)
	balanceService := leavebalance.NewService(leaveBalanceRepo, leaveTypeRepo)
	synchronizer := attendance.NewSynchronizer(attendanceRepo)
	attendanceService := attendance.NewService(db, attendanceRepo)
	employeeService := employee.NewService(db, employeeRepo, balanceService, kafka.NewOutboxPublisher(outboxRepo))
	leaveRequestService := leaverequest.NewService(db, leaveRequestRepo, employeeRepo, leaveTypeRepo, balanceService, synchronizer)
	payrollService := payroll.NewService(payrollRepo, employeeRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	balanceHandler := leavebalance.NewHandler(balanceService)
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	employeeHandler := employee.NewHandler(employeeService)
	payrollHandler := payroll.NewHandler(payrollService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		leavebalance.RegisterRoutes(api, balanceHandler, rbacService)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rbacService, rdb)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
	}

	return nil
}
