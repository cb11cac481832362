package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Sized reports how many records a corpus holds
type Sized interface {
	Len() int
}

// Health handles GET /health
func Health(legal, lawyers Sized) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if legal != nil {
			body["legal_chunks"] = legal.Len()
		}
		if lawyers != nil {
			body["lawyers"] = lawyers.Len()
		}
		c.JSON(http.StatusOK, body)
	}
}
