package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// RespondWithError writes a structured error response and logs it.
func RespondWithError(c *gin.Context, status int, message, code string, logger *zap.Logger) {
	logger.Warn("api error response",
		zap.Int("status", status),
		zap.String("code", code),
		zap.String("path", c.Request.URL.Path),
	)
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// RespondWithData writes a 200 response carrying data as the JSON body.
func RespondWithData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}
