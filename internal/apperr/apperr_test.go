package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: Validation("screenshot is required"), want: http.StatusBadRequest},
		{name: "amount mismatch", err: AmountMismatch(50, 100), want: http.StatusBadRequest},
		{name: "not found", err: NotFound("payment request"), want: http.StatusNotFound},
		{name: "invalid state", err: InvalidState("already processed"), want: http.StatusConflict},
		{name: "authorization", err: Authorization("admin only"), want: http.StatusForbidden},
		{name: "wrapped unexpected", err: Wrap(errors.New("pq: down"), "load content"), want: http.StatusInternalServerError},
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestMessageMasksUnexpected(t *testing.T) {
	assert.Equal(t, "Internal server error", Message(errors.New("pq: connection refused")))
	assert.Equal(t, "Internal server error", Message(Wrap(errors.New("pq: down"), "load content")))
	assert.Equal(t, "payment request not found", Message(NotFound("payment request")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := InvalidState("already processed")
	outer := fmt.Errorf("process payment 42: %w", inner)

	assert.True(t, IsKind(outer, KindInvalidState))
	assert.Equal(t, http.StatusConflict, StatusCode(outer))
	assert.Equal(t, "already processed", Message(outer))
}

func TestAmountMismatchMessage(t *testing.T) {
	err := AmountMismatch(50, 100)
	assert.True(t, IsKind(err, KindAmountMismatch))
	assert.Contains(t, err.Error(), "50.00")
	assert.Contains(t, err.Error(), "100.00")
}
