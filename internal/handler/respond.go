package handler

import (
	"net/http"

	"socialtrackr/internal/model"

	"github.com/gin-gonic/gin"
)

// fail writes the unified error body, mapping the taxonomy category to an
// HTTP status. Errors outside the taxonomy become opaque 500s.
func fail(c *gin.Context, err error) {
	apiErr, ok := model.AsAPIError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	status := http.StatusInternalServerError
	switch apiErr.Category {
	case "validation":
		status = http.StatusBadRequest
	case "auth":
		status = http.StatusUnauthorized
	case "conflict":
		status = http.StatusConflict
	case "upstream":
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": apiErr.Message, "code": apiErr.Code})
}
