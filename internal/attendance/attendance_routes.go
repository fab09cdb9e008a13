package attendance

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
	att := r.Group("/attendance")
	att.Use(middleware.AuthMiddleware())
	{
		att.POST("", rbac.Authorize(rbacService, "attendance", "create"), handler.Mark)
		att.GET("", rbac.Authorize(rbacService, "attendance", "read"), handler.GetMine)
		att.GET("/summary/:employeeId", rbac.Authorize(rbacService, "attendance", "summary"), handler.MonthSummary)
		att.POST("/regularize", rbac.Authorize(rbacService, "attendance", "regularize"), handler.Regularize)
	}
}
