package handler

import (
	"log"
	"net/http"

	"tailorpos/pkg/apperr"
	"tailorpos/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its HTTP status and writes the standard
// error envelope. Untyped errors are logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	status := apperr.StatusCode(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, response.Error(status, "Internal server error"))
		return
	}
	c.JSON(status, response.Error(status, err.Error()))
}

// currentUser pulls the authenticated user id and role injected by RequireRole.
func currentUser(c *gin.Context) (id string, role string, ok bool) {
	rawID, exists := c.Get("userID")
	if !exists {
		return "", "", false
	}
	id, ok = rawID.(string)
	if !ok || id == "" {
		return "", "", false
	}
	return id, c.GetString("userRole"), true
}

// pagedData is the standard paginated response payload
type pagedData struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int64       `json:"total_pages"`
}
