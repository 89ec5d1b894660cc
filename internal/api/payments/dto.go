package paymentsapi

import (
	"time"

	"classroom-app/internal/domain/payments"
)

type PaymentRequestDTO struct {
	ID             uint       `json:"id"`
	ContentID      uint       `json:"content_id"`
	UserID         uint       `json:"user_id"`
	UserEmail      string     `json:"user_email,omitempty"`
	Amount         float64    `json:"amount"`
	ScreenshotPath string     `json:"screenshot_path"`
	Status         string     `json:"status"`
	AdminNotes     *string    `json:"admin_notes,omitempty"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty"`
	ProcessedBy    *uint      `json:"processed_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toDTO(r payments.Request) PaymentRequestDTO {
	return PaymentRequestDTO{
		ID:             r.ID,
		ContentID:      r.ContentID,
		UserID:         r.UserID,
		UserEmail:      r.User.Email,
		Amount:         r.Amount,
		ScreenshotPath: r.ScreenshotPath,
		Status:         string(r.Status),
		AdminNotes:     r.AdminNotes,
		ProcessedAt:    r.ProcessedAt,
		ProcessedBy:    r.ProcessedBy,
		CreatedAt:      r.CreatedAt,
	}
}

type ProcessRequest struct {
	PaymentRequestID uint   `json:"payment_request_id" binding:"required"`
	Action           string `json:"action" binding:"required,oneof=approve reject"`
	AdminNotes       string `json:"admin_notes"`
}
