package leaverequest

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
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("",
			rbac.Authorize(rbacService, "leaverequest", "create"),
			middleware.Idempotency(redisClient),
			handler.Submit,
		)
		requests.GET("", rbac.Authorize(rbacService, "leaverequest", "read"), handler.ListMine)
		requests.GET("/pending", rbac.Authorize(rbacService, "leaverequest", "decide"), handler.ListPending)
		requests.PUT("/:id/decision", rbac.Authorize(rbacService, "leaverequest", "decide"), handler.Decide)
		requests.PUT("/:id/cancel", rbac.Authorize(rbacService, "leaverequest", "cancel"), handler.Cancel)
	}
}
