package leavebalance

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("", rbac.Authorize(rbacService, "leavebalance", "read"), handler.GetMine)
		balances.GET("/employee/:employeeId", rbac.Authorize(rbacService, "employee", "read"), handler.GetByEmployee)
	}
}
