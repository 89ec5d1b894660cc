package contents

import (
	"net/http"
	"strconv"

	"classroom-app/database"
	"classroom-app/internal/apperr"
	"classroom-app/internal/domain/content"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func mustViewer(c *gin.Context) (content.Viewer, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return content.Viewer{}, false
	}
	return content.Viewer{ID: userID, PrivilegeLevel: c.GetInt("privilege_level")}, true
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// ------------------------------
// GET /contents?entityType=&entityId=
// ------------------------------
func ListContents(c *gin.Context) {
	viewer, ok := mustViewer(c)
	if !ok {
		return
	}

	entityType := c.Query("entityType")
	entityID, err := strconv.ParseUint(c.Query("entityId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entityId is required"})
		return
	}
	if err := entityExists(database.DB, entityType, uint(entityID)); err != nil {
		apperr.Respond(c, err)
		return
	}

	var items []content.Item
	err = database.DB.
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		apperr.Respond(c, apperr.Wrap(err, "list content"))
		return
	}

	out := make([]ContentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toContentDTO(item, decisionFor(database.DB, item, viewer)))
	}
	c.JSON(http.StatusOK, gin.H{"contents": out})
}

// ------------------------------
// GET /contents/:id
// ------------------------------
func GetContent(c *gin.Context) {
	viewer, ok := mustViewer(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	item, err := content.GetItem(database.DB, id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	decision := decisionFor(database.DB, *item, viewer)
	if !decision.Allowed {
		// Content-access denial, not an authorization failure: the body
		// carries the affordance the UI should offer.
		c.JSON(http.StatusForbidden, gin.H{
			"error":  "You do not have access to this content",
			"reason": decision.Reason,
			"price":  item.Price,
		})
		return
	}

	c.JSON(http.StatusOK, toContentDTO(*item, decision))
}

// ------------------------------
// GET /contents/:id/access
// ------------------------------
func GetContentAccess(c *gin.Context) {
	viewer, ok := mustViewer(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	item, err := content.GetItem(database.DB, id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, decisionFor(database.DB, *item, viewer))
}

// ------------------------------
// POST /contents (admin)
// ------------------------------
func CreateContent(c *gin.Context) {
	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := req.form()
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if err := entityExists(database.DB, req.EntityType, req.EntityID); err != nil {
		apperr.Respond(c, err)
		return
	}

	item, grantIDs := form.Item(req.EntityType, req.EntityID)
	if err := item.Data.CheckVariant(item.ContentType); err != nil {
		apperr.Respond(c, err)
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return apperr.Wrap(err, "create content")
		}
		return content.Grant(tx, item.ID, grantIDs)
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": item.ID})
}

// ------------------------------
// PUT /contents/:id (admin)
// ------------------------------
func UpdateContent(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := req.form()
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	existing, err := content.GetItem(database.DB, id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	updated, grantIDs := form.Item(existing.EntityType, existing.EntityID)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := updated.Data.CheckVariant(updated.ContentType); err != nil {
		apperr.Respond(c, err)
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&updated).Error; err != nil {
			return apperr.Wrap(err, "update content")
		}
		// The permission set follows the form: restricted mode replaces
		// it wholesale, every other mode clears it.
		if err := content.RevokeAll(tx, updated.ID); err != nil {
			return err
		}
		return content.Grant(tx, updated.ID, grantIDs)
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": updated.ID})
}

// ------------------------------
// DELETE /contents/:id (admin)
// ------------------------------
func DeleteContent(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if _, err := content.GetItem(database.DB, id); err != nil {
		apperr.Respond(c, err)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return deleteOwned(tx, id)
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content deleted"})
}
