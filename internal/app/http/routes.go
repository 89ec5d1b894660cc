package routes

import (
	"classroom-app/config"
	adminapi "classroom-app/internal/api/admin"
	authapi "classroom-app/internal/api/auth"
	"classroom-app/internal/api/contents"
	entitiesapi "classroom-app/internal/api/entities"
	paymentsapi "classroom-app/internal/api/payments"
	"classroom-app/internal/api/permissions"
	usersapi "classroom-app/internal/api/users"
	"classroom-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/me", usersapi.GetCurrentUser)

	auth.GET("/entities/:type", entitiesapi.ListEntities)
	auth.GET("/entities/:type/:id", entitiesapi.GetEntity)
	auth.POST("/classes/:id/enroll", entitiesapi.EnrollInClass)
	auth.DELETE("/classes/:id/enroll", entitiesapi.UnenrollFromClass)

	auth.GET("/contents", contents.ListContents)
	auth.GET("/contents/:id", contents.GetContent)
	auth.GET("/contents/:id/access", contents.GetContentAccess)

	auth.POST("/payments", paymentsapi.SubmitPayment)
	auth.GET("/payments/mine", paymentsapi.GetMyPayments)

	// Admin routes
	admin := r.Group("/")
	admin.Use(middleware.AuthMiddleware(),
		middleware.RequirePrivilege(config.ADMIN_PRIVILEGE_LEVEL),
		middleware.SanitizeAndCleanInputMiddleware())

	admin.POST("/entities/:type", entitiesapi.CreateEntity)
	admin.PUT("/entities/:type/:id", entitiesapi.UpdateEntity)
	admin.DELETE("/entities/:type/:id", entitiesapi.DeleteEntity)

	admin.POST("/contents", contents.CreateContent)
	admin.PUT("/contents/:id", contents.UpdateContent)
	admin.DELETE("/contents/:id", contents.DeleteContent)

	admin.GET("/permissions", permissions.GetPermissions)
	admin.POST("/permissions", permissions.GrantPermissions)
	admin.DELETE("/permissions", permissions.RevokePermissions)

	admin.GET("/payments", paymentsapi.ListPayments)
	admin.POST("/payments/process", paymentsapi.ProcessPayment)

	admin.GET("/admin/dashboard", adminapi.AdminDashboard)
	admin.GET("/admin/users", adminapi.ListAllUsers)
	admin.GET("/admin/stats", adminapi.GetAdminStats)
}
