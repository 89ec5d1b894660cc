package permissions

import (
	"net/http"
	"strconv"

	"classroom-app/config"
	"classroom-app/database"
	"classroom-app/internal/apperr"
	"classroom-app/internal/domain/content"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
}

type PermissionsResponse struct {
	CurrentPermissions []uint        `json:"currentPermissions"`
	AvailableUsers     []UserSummary `json:"availableUsers"`
}

type GrantRequest struct {
	ContentID uint   `json:"content_id" binding:"required"`
	UserIDs   []uint `json:"user_ids" binding:"required"`
}

// ------------------------------
// GET /permissions?contentId= (admin)
// ------------------------------
func GetPermissions(c *gin.Context) {
	contentID, err := strconv.ParseUint(c.Query("contentId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contentId is required"})
		return
	}

	item, err := content.GetItem(database.DB, uint(contentID))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	granted, err := content.ListGrants(database.DB, item.ID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	eligible, err := content.ListEligibleUsers(database.DB, item.EntityType, item.EntityID, config.ADMIN_PRIVILEGE_LEVEL)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	available := make([]UserSummary, 0, len(eligible))
	for _, u := range eligible {
		available = append(available, UserSummary{
			ID:       u.ID,
			Name:     u.Name,
			Lastname: u.Lastname,
			Email:    u.Email,
		})
	}

	c.JSON(http.StatusOK, PermissionsResponse{
		CurrentPermissions: granted,
		AvailableUsers:     available,
	})
}

// ------------------------------
// POST /permissions (admin)
// ------------------------------
func GrantPermissions(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := content.GetItem(database.DB, req.ContentID); err != nil {
		apperr.Respond(c, err)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return content.Grant(tx, req.ContentID, req.UserIDs)
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	granted, err := content.ListGrants(database.DB, req.ContentID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"currentPermissions": granted})
}

// ------------------------------
// DELETE /permissions (admin)
// ------------------------------
func RevokePermissions(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := content.GetItem(database.DB, req.ContentID); err != nil {
		apperr.Respond(c, err)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return content.Revoke(tx, req.ContentID, req.UserIDs)
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	granted, err := content.ListGrants(database.DB, req.ContentID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"currentPermissions": granted})
}
