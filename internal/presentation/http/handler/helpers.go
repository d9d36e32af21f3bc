package handler

import (
	"github.com/bizbooks/bizbooks-api/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the authenticated user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return nil
	}
	return &userID
}
