package response

import (
	"log"
	"net/http"

	"github.com/bizbooks/bizbooks-api/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// Response bodies follow the frontend wire contract: success payloads are
// returned as-is and every failure is {"error": "<message>"}.

// OK sends a 200 response with the given payload
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response with the given payload
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message sends a 200 response with a message body
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Error maps an error to its HTTP status. Unknown errors are logged and
// surface as a generic 500 without internal detail.
func Error(c *gin.Context, err error) {
	if !apperror.IsAppError(err) {
		log.Printf("internal error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	appErr := apperror.GetAppError(err)
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}

// ErrorWithCode sends an error response with a specific status code
func ErrorWithCode(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusNotFound, message)
}

// InternalServerError sends a 500 Internal Server Error response
func InternalServerError(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusInternalServerError, message)
}
