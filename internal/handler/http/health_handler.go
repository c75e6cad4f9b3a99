package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports basic liveness of the process itself, distinct from the
// Proof-of-Life domain concept this service implements.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
