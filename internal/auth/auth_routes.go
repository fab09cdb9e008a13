package auth

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(rate.Limit(1), 5), handler.Login)
		auth.POST("/logout", handler.Logout)
	}

	protected := r.Group("/auth")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/register", rbac.Authorize(rbacService, "employee", "create"), handler.Register)
		protected.PUT("/password", handler.ChangePassword)
		protected.GET("/login-logs", rbac.Authorize(rbacService, "employee", "read"), handler.LoginLogs)
	}
}
