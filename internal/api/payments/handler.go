package paymentsapi

import (
	"net/http"
	"strconv"

	"classroom-app/database"
	"classroom-app/internal/apperr"
	"classroom-app/internal/domain/payments"

	"github.com/gin-gonic/gin"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// ------------------------------
// POST /payments (multipart: screenshot, content_id, amount)
// ------------------------------
func SubmitPayment(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	contentID, err := strconv.ParseUint(c.PostForm("content_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_id is required"})
		return
	}
	amount, err := strconv.ParseFloat(c.PostForm("amount"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
		return
	}

	// Missing file is a validation error, same as an oversized one.
	screenshot, err := c.FormFile("screenshot")
	if err != nil {
		screenshot = nil
	}

	req, err := payments.Submit(database.DB, uint(contentID), userID, amount, screenshot)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, toDTO(*req))
}

// ------------------------------
// GET /payments/mine
// ------------------------------
func GetMyPayments(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	reqs, err := payments.ListForUser(database.DB, userID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	out := make([]PaymentRequestDTO, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toDTO(r))
	}
	c.JSON(http.StatusOK, gin.H{"payments": out})
}

// ------------------------------
// GET /payments?status=&limit= (admin)
// ------------------------------
func ListPayments(c *gin.Context) {
	status := c.DefaultQuery("status", "pending")
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	reqs, err := payments.List(database.DB, status, limit)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	out := make([]PaymentRequestDTO, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toDTO(r))
	}
	c.JSON(http.StatusOK, gin.H{"payments": out})
}

// ------------------------------
// POST /payments/process (admin)
// ------------------------------
func ProcessPayment(c *gin.Context) {
	adminID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	processed, err := payments.Process(database.DB, req.PaymentRequestID,
		payments.Action(req.Action), req.AdminNotes, adminID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, toDTO(*processed))
}
