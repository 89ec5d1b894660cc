package content

import (
	"classroom-app/internal/apperr"
	"classroom-app/internal/domain/entities"
	"classroom-app/internal/domain/users"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Grant adds userIDs to the content's permission set. Already-granted users
// are skipped, and the whole batch applies atomically.
func Grant(db *gorm.DB, contentID uint, userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]AccessGrant, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, AccessGrant{ContentID: contentID, UserID: id})
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&rows).Error
	if err != nil {
		return apperr.Wrap(err, "grant content permissions")
	}
	return nil
}

// Revoke removes userIDs from the content's permission set. Non-members are
// ignored.
func Revoke(db *gorm.DB, contentID uint, userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	err := db.Where("content_id = ? AND user_id IN ?", contentID, userIDs).
		Delete(&AccessGrant{}).Error
	if err != nil {
		return apperr.Wrap(err, "revoke content permissions")
	}
	return nil
}

// RevokeAll clears the content's permission set, used when switching an item
// away from restricted mode or deleting it.
func RevokeAll(db *gorm.DB, contentID uint) error {
	err := db.Where("content_id = ?", contentID).Delete(&AccessGrant{}).Error
	if err != nil {
		return apperr.Wrap(err, "clear content permissions")
	}
	return nil
}

func ListGrants(db *gorm.DB, contentID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&AccessGrant{}).
		Where("content_id = ?", contentID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, apperr.Wrap(err, "list content permissions")
	}
	return ids, nil
}

// ListEligibleUsers returns the users an admin may pick when restricting
// content owned by the given entity. Administrative accounts are always
// excluded; class-owned content is further scoped to enrolled students.
func ListEligibleUsers(db *gorm.DB, entityType string, entityID uint, adminLevel int) ([]users.User, error) {
	if err := entities.MustValidType(entityType); err != nil {
		return nil, err
	}

	q := db.Model(&users.User{}).Where("privilege_level < ?", adminLevel)
	if entityType == entities.TypeClasses {
		q = q.Where("id IN (?)", db.Model(&entities.ClassEnrollment{}).
			Select("user_id").
			Where("class_id = ?", entityID))
	}

	var out []users.User
	if err := q.Order("lastname ASC, name ASC").Find(&out).Error; err != nil {
		return nil, apperr.Wrap(err, "list eligible users")
	}
	return out, nil
}

// HasGrant builds the grant-membership lookup CanView consumes. Store
// failures are logged and fail closed.
func HasGrant(db *gorm.DB) Lookup {
	return func(contentID, userID uint) bool {
		var n int64
		err := db.Model(&AccessGrant{}).
			Where("content_id = ? AND user_id = ?", contentID, userID).
			Count(&n).Error
		if err != nil {
			zap.L().Error("grant lookup failed",
				zap.Uint("content_id", contentID),
				zap.Uint("user_id", userID),
				zap.Error(err),
			)
			return false
		}
		return n > 0
	}
}

// GetItem loads a content item or reports it missing.
func GetItem(db *gorm.DB, id uint) (*Item, error) {
	var item Item
	if err := db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("content")
		}
		return nil, apperr.Wrap(err, "load content")
	}
	return &item, nil
}
