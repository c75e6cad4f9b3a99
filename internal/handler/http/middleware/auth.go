package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aaryan658/proof-of-life/internal/apperrors"
	"github.com/Aaryan658/proof-of-life/internal/domain"
)

const (
	authHeaderKey  = "Authorization"
	authTypeBearer = "bearer"

	GinContextTokenRecordKey = "token_record"
)

// TokenValidator is the slice of token.Service the Auth middleware needs.
type TokenValidator interface {
	Inspect(ctx context.Context, tokenString string) (domain.TokenRecord, error)
}

// Auth requires a valid "Bearer <token>" Authorization header, issued by a
// passing /api/verify call, and stores the resolved token record in the
// gin context for downstream handlers.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required", "code": "unauthorized"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], authTypeBearer) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "expected 'Bearer <token>'", "code": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		rec, err := validator.Inspect(ctx, parts[1])
		if err != nil {
			appErr, ok := apperrors.As(err)
			code, status := "unauthorized", http.StatusUnauthorized
			if ok {
				code, status = appErr.Code, appErr.StatusCode
			}
			c.AbortWithStatusJSON(status, gin.H{"error": "invalid or expired token", "code": code})
			return
		}

		c.Set(GinContextTokenRecordKey, rec)
		c.Next()
	}
}
