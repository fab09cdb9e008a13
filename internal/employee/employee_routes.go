package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.POST("", rbac.Authorize(rbacService, "employee", "create"), handler.Onboard)
		employees.GET("", rbac.Authorize(rbacService, "employee", "read"), handler.List)
		employees.GET("/reports", rbac.Authorize(rbacService, "leaverequest", "decide"), handler.DirectReports)
		employees.GET("/:id", rbac.Authorize(rbacService, "employee", "read"), handler.GetByID)
		employees.DELETE("/:id", rbac.Authorize(rbacService, "employee", "create"), handler.Deactivate)
	}
}
