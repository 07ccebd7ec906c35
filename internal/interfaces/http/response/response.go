package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "fundstack.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Paginated sends a list response with pagination metadata
func Paginated(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"data":       data,
		"pagination": meta,
	})
}

// Error maps a domain error onto a transport status code. The mapping is
// deterministic per error kind: NotFound 404, Validation 400,
// InvalidHierarchy 400, InvalidTransition 409, AuthorizationDenied 403,
// StorageFailure 500.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		})
		return
	}

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "message": "resource not found"})
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"code": "ALREADY_EXISTS", "message": err.Error()})
	case errors.Is(err, domainerrors.ErrValidation), errors.Is(err, domainerrors.ErrInvalidRole),
		errors.Is(err, domainerrors.ErrInvalidHierarchy):
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "message": err.Error()})
	case errors.Is(err, domainerrors.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"code": "INVALID_TRANSITION", "message": err.Error()})
	case errors.Is(err, domainerrors.ErrAuthorizationDenied), errors.Is(err, domainerrors.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, gin.H{"code": "AUTHORIZATION_DENIED", "message": err.Error()})
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "message": "internal server error"})
	}
}

// BadRequest sends a 400 with a binding/validation message
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "message": message})
}
