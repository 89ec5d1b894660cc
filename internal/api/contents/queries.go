package contents

import (
	"classroom-app/config"
	"classroom-app/internal/apperr"
	"classroom-app/internal/domain/content"
	"classroom-app/internal/domain/entities"
	"classroom-app/internal/domain/payments"

	"gorm.io/gorm"
)

// entityExists checks the owning entity before content is attached to it.
func entityExists(db *gorm.DB, entityType string, entityID uint) error {
	if err := entities.MustValidType(entityType); err != nil {
		return err
	}

	var model any
	switch entityType {
	case entities.TypeClasses:
		model = &entities.Class{}
	case entities.TypeNotices:
		model = &entities.Notice{}
	case entities.TypeQuizzes:
		model = &entities.Quiz{}
	case entities.TypeGames:
		model = &entities.Game{}
	}

	var n int64
	if err := db.Model(model).Where("id = ?", entityID).Count(&n).Error; err != nil {
		return apperr.Wrap(err, "check owning entity")
	}
	if n == 0 {
		return apperr.NotFound("owning entity")
	}
	return nil
}

// decisionFor evaluates the access policy with store-backed lookups.
func decisionFor(db *gorm.DB, item content.Item, viewer content.Viewer) content.Decision {
	return content.CanView(item, viewer, config.ADMIN_PRIVILEGE_LEVEL,
		content.HasGrant(db), payments.HasApproved(db))
}

// deleteOwned removes an item with its grants and payment history in one
// transaction.
func deleteOwned(tx *gorm.DB, contentID uint) error {
	if err := tx.Where("content_id = ?", contentID).Delete(&payments.Request{}).Error; err != nil {
		return apperr.Wrap(err, "delete payment requests")
	}
	if err := content.RevokeAll(tx, contentID); err != nil {
		return err
	}
	if err := tx.Delete(&content.Item{}, contentID).Error; err != nil {
		return apperr.Wrap(err, "delete content")
	}
	return nil
}
