package handler

import (
	"github.com/bizbooks/bizbooks-api/internal/application/service"
	"github.com/bizbooks/bizbooks-api/internal/presentation/http/dto/request"
	"github.com/bizbooks/bizbooks-api/internal/presentation/http/dto/response"
	"github.com/bizbooks/bizbooks-api/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService  *service.AuthService
	cookieMaxAge int
	secureCookie bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, cookieMaxAge int, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieMaxAge: cookieMaxAge,
		secureCookie: secureCookie,
	}
}

// Login authenticates a user and sets the auth-token cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(middleware.AuthCookieName, output.Token, h.cookieMaxAge, "/", "", h.secureCookie, true)

	response.OK(c, gin.H{
		"user": gin.H{
			"id":    output.User.ID,
			"email": output.User.Email,
			"name":  output.User.Name,
		},
		"message": "Login successful",
	})
}

// Logout clears the auth-token cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", h.secureCookie, true)
	response.Message(c, "Logged out successfully")
}

// Me returns the authenticated user behind the session token.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
}

// ChangePassword updates the user's password after verifying the current one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "User ID, current password, and new password are required")
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), &service.ChangePasswordInput{
		UserID:          req.UserID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "Password updated successfully")
}
