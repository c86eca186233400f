package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"muroom/internal/services"
)

const ctxUserIDKey = "user_id"

// RequireLogin verifies the bearer token on protected routes and drops the
// decoded user id into the gin context. Clients send the raw signed token in
// the Authorization header; an optional "Bearer " prefix is tolerated.
func RequireLogin(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if len(raw) > 7 && strings.EqualFold(raw[:7], "Bearer ") {
			raw = strings.TrimSpace(raw[7:])
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "유효하지 않은 token입니다."})
			return
		}

		claims, err := tokens.VerifySession(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "유효하지 않은 token입니다."})
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Next()
	}
}

// UserIDFromCtx returns the authenticated user id set by RequireLogin.
func UserIDFromCtx(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
