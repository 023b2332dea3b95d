// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	Errors     interface{} `json:"errors,omitempty"`
	Meta       interface{} `json:"meta,omitempty"`
}

// HandlerFunc is a gin handler that reports failure by returning an error.
type HandlerFunc func(c *gin.Context) error

// Handle adapts fn to gin, writing the failure envelope for any returned error.
func Handle(fn HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := fn(c); err != nil {
			ErrorResponse(c, err)
		}
	}
}

func SuccessResponse(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		StatusCode: http.StatusOK,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

func SuccessResponseWithMeta(c *gin.Context, data interface{}, message string, meta interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		StatusCode: http.StatusOK,
		Data:       data,
		Message:    message,
		Success:    true,
		Meta:       meta,
	})
}

func CreatedResponse(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		StatusCode: http.StatusCreated,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// ErrorResponse writes the failure envelope for err and aborts the chain.
func ErrorResponse(c *gin.Context, err error) {
	apiErr := AsAPIError(err)
	status := apiErr.Kind.Status()

	entry := logrus.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
		"status": status,
	})
	if apiErr.Err != nil {
		entry = entry.WithError(apiErr.Err)
	}
	if status >= http.StatusInternalServerError {
		entry.Error(apiErr.Message)
	} else {
		entry.Debug(apiErr.Message)
	}

	c.AbortWithStatusJSON(status, APIResponse{
		StatusCode: status,
		Data:       nil,
		Message:    apiErr.Message,
		Success:    false,
		Errors:     apiErr.Details,
	})
}

func PaginatedResponse(c *gin.Context, result PaginationResult, message string) {
	SetPaginationHeaders(c, result)
	SuccessResponseWithMeta(c, result.Data, message, gin.H{
		"pagination": gin.H{
			"page":        result.Page,
			"limit":       result.Limit,
			"total":       result.Total,
			"total_pages": result.TotalPages,
		},
	})
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if userIDStr, ok := userID.(string); ok {
			return userIDStr, true
		}
	}
	return "", false
}

func GetRoleFromContext(c *gin.Context) (string, bool) {
	if role, exists := c.Get("role"); exists {
		if roleStr, ok := role.(string); ok {
			return roleStr, true
		}
	}
	return "", false
}
