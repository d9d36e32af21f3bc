package middleware

import (
	"strings"

	"github.com/bizbooks/bizbooks-api/internal/presentation/http/dto/response"
	"github.com/bizbooks/bizbooks-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthCookieName is the cookie carrying the signed session token.
const AuthCookieName = "auth-token"

// AuthMiddleware gates routes behind the auth-token cookie. A Bearer header
// is accepted as a fallback for non-browser clients. Missing or invalid
// tokens get a 401 JSON body.
func AuthMiddleware(tokenManager *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			reject(c)
			return
		}

		claims, err := tokenManager.Validate(token)
		if err != nil {
			reject(c)
			return
		}

		c.Set("user_id", claims.UserID)

		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

func reject(c *gin.Context) {
	response.Unauthorized(c, "Authentication required")
	c.Abort()
}

// UserIDFromContext returns the authenticated user id set by AuthMiddleware.
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := userIDVal.(uuid.UUID)
	return userID, ok
}
