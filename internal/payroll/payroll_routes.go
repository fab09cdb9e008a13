package payroll

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	redisClient *redis.Client,
) {
	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware())
	{
		payroll.POST("/compute/:employeeId",
			rbac.Authorize(rbacService, "payroll", "compute"),
			middleware.Idempotency(redisClient),
			handler.Compute,
		)
		payroll.PUT("/ctc/:employeeId", rbac.Authorize(rbacService, "payroll", "manage"), handler.SetCostToCompany)
		payroll.GET("/records", rbac.Authorize(rbacService, "payroll", "read"), handler.GetMyRecords)
		payroll.GET("/records/employee/:employeeId", rbac.Authorize(rbacService, "payroll", "manage"), handler.GetRecordsByEmployee)
		payroll.GET("/records/:id/payslip", rbac.Authorize(rbacService, "payroll", "read"), handler.DownloadPayslip)
		payroll.GET("/quarter", rbac.Authorize(rbacService, "payroll", "manage"), handler.QuarterReport)
		payroll.GET("/tax", rbac.Authorize(rbacService, "payroll", "read"), handler.TaxByQuarter)
	}
}
