package payments

import (
	"errors"
	"mime/multipart"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"classroom-app/internal/apperr"
	"classroom-app/internal/domain/content"
	"classroom-app/internal/infra/storage"
)

func errDuplicatePending() error {
	return apperr.InvalidState("a payment request for this content is already pending")
}

// lockForUpdate takes a row lock where the dialect has one. sqlite's
// single-writer model already serializes the tests that run on it.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Submit creates a pending payment request for a paid content item. The
// screenshot is validated and stored first and rolled back if the request is
// refused. The locked scan gives duplicates a clean error; the partial
// unique index on pending pairs is what actually stops two racing submits.
func Submit(db *gorm.DB, contentID, userID uint, amount float64, screenshot *multipart.FileHeader) (*Request, error) {
	if err := CheckScreenshot(screenshot); err != nil {
		return nil, err
	}

	item, err := content.GetItem(db, contentID)
	if err != nil {
		return nil, err
	}
	if !item.IsPaid() {
		return nil, apperr.Validation("content is not paid")
	}
	if amount != item.Price {
		return nil, apperr.AmountMismatch(amount, item.Price)
	}

	path, err := storage.SaveScreenshot(screenshot)
	if err != nil {
		return nil, err
	}

	req := Request{
		ContentID:      contentID,
		UserID:         userID,
		Amount:         amount,
		ScreenshotPath: path,
		Status:         StatusPending,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var pending []Request
		err := lockForUpdate(tx).
			Where("content_id = ? AND user_id = ? AND status = ?", contentID, userID, StatusPending).
			Limit(1).Find(&pending).Error
		if err != nil {
			return apperr.Wrap(err, "check pending payment requests")
		}
		if len(pending) > 0 {
			return errDuplicatePending()
		}
		if err := tx.Create(&req).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicatePending()
			}
			return apperr.Wrap(err, "create payment request")
		}
		return nil
	})
	if err != nil {
		storage.Remove(path)
		return nil, err
	}

	zap.L().Info("payment request submitted",
		zap.Uint("payment_request_id", req.ID),
		zap.Uint("content_id", contentID),
		zap.Uint("user_id", userID),
		zap.Float64("amount", amount),
	)
	return &req, nil
}

// List returns requests newest-first. filter is pending, approved, rejected
// or all.
func List(db *gorm.DB, filter string, limit int) ([]Request, error) {
	q := db.Preload("User").Order("created_at DESC")
	switch filter {
	case "", "all":
	case string(StatusPending), string(StatusApproved), string(StatusRejected):
		q = q.Where("status = ?", filter)
	default:
		return nil, apperr.Validationf("unknown status filter %q", filter)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []Request
	if err := q.Find(&out).Error; err != nil {
		return nil, apperr.Wrap(err, "list payment requests")
	}
	return out, nil
}

// ListForUser is the submitting user's own history, newest-first.
func ListForUser(db *gorm.DB, userID uint) ([]Request, error) {
	var out []Request
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, apperr.Wrap(err, "list payment requests")
	}
	return out, nil
}

// Process applies the admin decision. The row is locked for the duration of
// the transaction, so of two racing decisions exactly one wins and the loser
// observes the terminal state.
func Process(db *gorm.DB, requestID uint, action Action, notes string, adminID uint) (*Request, error) {
	var req Request
	err := db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			Preload("User").
			First(&req, requestID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFound("payment request")
			}
			return apperr.Wrap(err, "load payment request")
		}
		if err := req.Apply(action, notes, adminID, time.Now()); err != nil {
			return err
		}
		if err := tx.Save(&req).Error; err != nil {
			return apperr.Wrap(err, "save payment request")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("payment request processed",
		zap.Uint("payment_request_id", req.ID),
		zap.String("action", string(action)),
		zap.Uint("admin_id", adminID),
	)
	return &req, nil
}

// HasApproved builds the payment-membership lookup for the access policy.
// Access to purchased content is derived from the approved request itself;
// no grant row is ever materialized for it. Store failures are logged and
// fail closed.
func HasApproved(db *gorm.DB) content.Lookup {
	return func(contentID, userID uint) bool {
		var n int64
		err := db.Model(&Request{}).
			Where("content_id = ? AND user_id = ? AND status = ?", contentID, userID, StatusApproved).
			Count(&n).Error
		if err != nil {
			zap.L().Error("approved payment lookup failed",
				zap.Uint("content_id", contentID),
				zap.Uint("user_id", userID),
				zap.Error(err),
			)
			return false
		}
		return n > 0
	}
}
