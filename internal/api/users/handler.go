package users

import (
	"net/http"

	"classroom-app/config"
	"classroom-app/database"
	"classroom-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type MeResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Lastname       string `json:"lastname"`
	Email          string `json:"email"`
	PrivilegeLevel int    `json:"privilege_level"`
	IsAdmin        bool   `json:"is_admin"`
}

func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		ID:             user.ID,
		Name:           user.Name,
		Lastname:       user.Lastname,
		Email:          user.Email,
		PrivilegeLevel: user.PrivilegeLevel,
		IsAdmin:        user.IsAdmin(config.ADMIN_PRIVILEGE_LEVEL),
	})
}
