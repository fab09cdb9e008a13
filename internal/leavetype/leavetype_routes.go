package leavetype

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
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", rbac.Authorize(rbacService, "leavetype", "read"), handler.GetAll)
		types.POST("", rbac.Authorize(rbacService, "leavetype", "manage"), handler.Create)
		types.PUT("/:id", rbac.Authorize(rbacService, "leavetype", "manage"), handler.Update)
	}
}
