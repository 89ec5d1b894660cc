package entitiesapi

import (
	"net/http"
	"strconv"

	"classroom-app/database"
	"classroom-app/internal/apperr"
	"classroom-app/internal/domain/content"
	"classroom-app/internal/domain/entities"
	"classroom-app/internal/domain/payments"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EntityRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Body        string `json:"body"`
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// modelFor maps the :type route segment onto a fresh model and list slice.
func modelFor(entityType string) (any, any, bool) {
	switch entityType {
	case entities.TypeClasses:
		return &entities.Class{}, &[]entities.Class{}, true
	case entities.TypeNotices:
		return &entities.Notice{}, &[]entities.Notice{}, true
	case entities.TypeQuizzes:
		return &entities.Quiz{}, &[]entities.Quiz{}, true
	case entities.TypeGames:
		return &entities.Game{}, &[]entities.Game{}, true
	}
	return nil, nil, false
}

func fill(entityType string, req EntityRequest) any {
	switch entityType {
	case entities.TypeClasses:
		return &entities.Class{Title: req.Title, Description: req.Description}
	case entities.TypeNotices:
		return &entities.Notice{Title: req.Title, Body: req.Body}
	case entities.TypeQuizzes:
		return &entities.Quiz{Title: req.Title, Description: req.Description}
	case entities.TypeGames:
		return &entities.Game{Title: req.Title, Description: req.Description}
	}
	return nil
}

// apply copies the editable fields onto a loaded model.
func apply(model any, req EntityRequest) {
	switch m := model.(type) {
	case *entities.Class:
		m.Title, m.Description = req.Title, req.Description
	case *entities.Notice:
		m.Title, m.Body = req.Title, req.Body
	case *entities.Quiz:
		m.Title, m.Description = req.Title, req.Description
	case *entities.Game:
		m.Title, m.Description = req.Title, req.Description
	}
}

func idOf(model any) uint {
	switch m := model.(type) {
	case *entities.Class:
		return m.ID
	case *entities.Notice:
		return m.ID
	case *entities.Quiz:
		return m.ID
	case *entities.Game:
		return m.ID
	}
	return 0
}

// ------------------------------
// GET /entities/:type
// ------------------------------
func ListEntities(c *gin.Context) {
	_, list, ok := modelFor(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown entity type"})
		return
	}

	if err := database.DB.Order("created_at DESC").Find(list).Error; err != nil {
		apperr.Respond(c, apperr.Wrap(err, "list entities"))
		return
	}
	c.JSON(http.StatusOK, list)
}

// ------------------------------
// GET /entities/:type/:id
// ------------------------------
func GetEntity(c *gin.Context) {
	model, _, ok := modelFor(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown entity type"})
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := database.DB.First(model, id).Error; err != nil {
		apperr.Respond(c, apperr.NotFound("entity"))
		return
	}
	c.JSON(http.StatusOK, model)
}

// ------------------------------
// POST /entities/:type (admin)
// ------------------------------
func CreateEntity(c *gin.Context) {
	entityType := c.Param("type")
	if _, _, ok := modelFor(entityType); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown entity type"})
		return
	}

	var req EntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := fill(entityType, req)
	if err := database.DB.Create(model).Error; err != nil {
		apperr.Respond(c, apperr.Wrap(err, "create entity"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": idOf(model)})
}

// ------------------------------
// PUT /entities/:type/:id (admin)
// ------------------------------
func UpdateEntity(c *gin.Context) {
	entityType := c.Param("type")
	model, _, ok := modelFor(entityType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown entity type"})
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req EntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.First(model, id).Error; err != nil {
		apperr.Respond(c, apperr.NotFound("entity"))
		return
	}
	apply(model, req)
	if err := database.DB.Save(model).Error; err != nil {
		apperr.Respond(c, apperr.Wrap(err, "update entity"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ------------------------------
// DELETE /entities/:type/:id (admin)
//
// Content items are owned by their entity: deleting the entity tears down
// its content, grants and payment history in one transaction.
// ------------------------------
func DeleteEntity(c *gin.Context) {
	entityType := c.Param("type")
	model, _, ok := modelFor(entityType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown entity type"})
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := database.DB.First(model, id).Error; err != nil {
		apperr.Respond(c, apperr.NotFound("entity"))
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var contentIDs []uint
		err := tx.Model(&content.Item{}).
			Where("entity_type = ? AND entity_id = ?", entityType, id).
			Pluck("id", &contentIDs).Error
		if err != nil {
			return apperr.Wrap(err, "list owned content")
		}

		if len(contentIDs) > 0 {
			if err := tx.Where("content_id IN ?", contentIDs).Delete(&payments.Request{}).Error; err != nil {
				return apperr.Wrap(err, "delete payment requests")
			}
			if err := tx.Where("content_id IN ?", contentIDs).Delete(&content.AccessGrant{}).Error; err != nil {
				return apperr.Wrap(err, "delete content permissions")
			}
			if err := tx.Delete(&content.Item{}, contentIDs).Error; err != nil {
				return apperr.Wrap(err, "delete owned content")
			}
		}

		if entityType == entities.TypeClasses {
			if err := tx.Where("class_id = ?", id).Delete(&entities.ClassEnrollment{}).Error; err != nil {
				return apperr.Wrap(err, "delete enrollments")
			}
		}

		if err := tx.Delete(model, id).Error; err != nil {
			return apperr.Wrap(err, "delete entity")
		}
		return nil
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entity deleted"})
}

// ------------------------------
// POST /classes/:id/enroll
// ------------------------------
func EnrollInClass(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	var n int64
	if err := database.DB.Model(&entities.Class{}).Where("id = ?", id).Count(&n).Error; err != nil || n == 0 {
		apperr.Respond(c, apperr.NotFound("class"))
		return
	}

	row := entities.ClassEnrollment{ClassID: id, UserID: userID}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "class_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		apperr.Respond(c, apperr.Wrap(err, "enroll in class"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Enrolled"})
}

// ------------------------------
// DELETE /classes/:id/enroll
// ------------------------------
func UnenrollFromClass(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	err := database.DB.
		Where("class_id = ? AND user_id = ?", id, userID).
		Delete(&entities.ClassEnrollment{}).Error
	if err != nil {
		apperr.Respond(c, apperr.Wrap(err, "unenroll from class"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unenrolled"})
}
