package apperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Respond translates err into the structured error body every handler
// returns. Taxonomy errors pass their message through verbatim; anything else
// is logged and masked as a 500.
func Respond(c *gin.Context, err error) {
	status := StatusCode(err)
	if status == http.StatusInternalServerError {
		zap.L().Error("unexpected error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"error": Message(err)})
}
