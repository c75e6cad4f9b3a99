package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aaryan658/proof-of-life/internal/domain"
	"github.com/Aaryan658/proof-of-life/internal/handler/http/middleware"
)

// ProtectedHandler handles GET /api/protected, demonstrating a resource
// gated behind a bearer token issued by a passing verification.
type ProtectedHandler struct{}

func NewProtectedHandler() *ProtectedHandler {
	return &ProtectedHandler{}
}

type protectedResponse struct {
	Message        string    `json:"message"`
	User           string    `json:"user"`
	TokenIssuedAt  time.Time `json:"token_issued_at"`
	TokenExpiresAt time.Time `json:"token_expires_at"`
	AccessLevel    string    `json:"access_level"`
}

func (h *ProtectedHandler) Get(c *gin.Context) {
	v, _ := c.Get(middleware.GinContextTokenRecordKey)
	rec, _ := v.(domain.TokenRecord)

	c.JSON(http.StatusOK, protectedResponse{
		Message:        "liveness verified",
		User:           rec.Subject,
		TokenIssuedAt:  rec.IssuedAt,
		TokenExpiresAt: rec.ExpiresAt,
		AccessLevel:    "verified",
	})
}
