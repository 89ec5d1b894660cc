package payments

import (
	"time"

	"classroom-app/internal/apperr"
	"classroom-app/internal/domain/users"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Request is a purchase request for a paid content item, backed by a
// proof-of-payment screenshot. It is created pending and transitions exactly
// once to approved or rejected; a rejected purchase is retried by submitting
// a new request, never by mutating the old one.
//
// The partial unique index allows any number of terminal requests per pair
// but at most one pending, which is what serializes racing submits.
type Request struct {
	ID             uint    `gorm:"primaryKey"`
	ContentID      uint    `gorm:"not null;index:idx_payment_requests_pair;uniqueIndex:idx_payment_requests_one_pending,where:status = 'pending'"`
	UserID         uint    `gorm:"not null;index:idx_payment_requests_pair;uniqueIndex:idx_payment_requests_one_pending,where:status = 'pending'"`
	Amount         float64 `gorm:"not null"`
	ScreenshotPath string  `gorm:"not null"`
	Status         Status  `gorm:"type:varchar(10);not null;default:'pending';index"`

	AdminNotes  *string
	ProcessedAt *time.Time
	ProcessedBy *uint

	CreatedAt time.Time

	User users.User `gorm:"foreignKey:UserID"`
}

func (Request) TableName() string { return "payment_requests" }

// Apply performs the single allowed transition. Terminal requests refuse any
// further processing, whatever the action.
func (r *Request) Apply(action Action, notes string, adminID uint, now time.Time) error {
	if r.Status != StatusPending {
		return apperr.InvalidState("payment request already processed")
	}
	switch action {
	case ActionApprove:
		r.Status = StatusApproved
	case ActionReject:
		r.Status = StatusRejected
	default:
		return apperr.Validationf("unknown action %q", action)
	}
	r.ProcessedAt = &now
	r.ProcessedBy = &adminID
	if notes != "" {
		r.AdminNotes = &notes
	}
	return nil
}
