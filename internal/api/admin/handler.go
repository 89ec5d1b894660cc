package admin

import (
	"net/http"
	"time"

	"classroom-app/config"
	"classroom-app/database"
	"classroom-app/internal/domain/payments"
	"classroom-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Lastname       string    `json:"lastname"`
	Email          string    `json:"email"`
	PrivilegeLevel int       `json:"privilege_level"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
}

type AdminStats struct {
	TotalUsers      int     `json:"total_users"`
	PendingRequests int     `json:"pending_requests"`
	TotalRevenue    float64 `json:"total_revenue"`
	RecentRevenue   float64 `json:"recent_revenue"`
}

func AdminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the admin dashboard",
	})
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Order("created_at DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]AdminUser, 0, len(all))
	for _, u := range all {
		out = append(out, AdminUser{
			ID:             u.ID,
			Name:           u.Name,
			Lastname:       u.Lastname,
			Email:          u.Email,
			PrivilegeLevel: u.PrivilegeLevel,
			IsAdmin:        u.IsAdmin(config.ADMIN_PRIVILEGE_LEVEL),
			CreatedAt:      u.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, out)
}

func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	var totalUsers int64
	var pendingRequests int64
	var totalRevenue float64
	var recentRevenue float64

	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&payments.Request{}).
		Where("status = ?", payments.StatusPending).
		Count(&pendingRequests)
	database.DB.Model(&payments.Request{}).
		Where("status = ?", payments.StatusApproved).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&payments.Request{}).
		Where("status = ? AND processed_at >= ?", payments.StatusApproved, thirtyDaysAgo).
		Select("COALESCE(SUM(amount), 0)").Scan(&recentRevenue)

	stats.TotalUsers = int(totalUsers)
	stats.PendingRequests = int(pendingRequests)
	stats.TotalRevenue = totalRevenue
	stats.RecentRevenue = recentRevenue

	c.JSON(http.StatusOK, stats)
}
