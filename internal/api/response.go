package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"tossbash/internal/domain"
	"tossbash/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// bindJSON binds and validates a request body. On failure it writes the 400
// response (a structured error list for validation failures) and returns
// false.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Validation failed",
				"errors":  validationMessages(ve),
			})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return false
	}
	return true
}

// validationMessages turns validator errors into the per-field messages the
// API has always returned.
func validationMessages(ve validator.ValidationErrors) []string {
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			msgs = append(msgs, "Please provide a valid email")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "gt", "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be a positive number", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return msgs
}

// currentUserID pulls the authenticated account id set by the JWT middleware.
// Writes the 401 itself when the middleware did not run.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return 0, false
	}
	id, ok := v.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return 0, false
	}
	return id, true
}

// serverError logs an unexpected failure and hides the detail from the client.
func serverError(c *gin.Context, err error, message string) {
	logrus.WithField("error", err.Error()).Error(message)
	c.JSON(http.StatusInternalServerError, gin.H{"message": message})
}

// parsePage reads page/limit query params with the listing defaults.
func parsePage(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	return utils.ClampPage(page, limit, 10)
}

// userPayload is the account shape returned by the auth endpoints.
func userPayload(u *domain.User) gin.H {
	return gin.H{
		"id":            u.ID,
		"firstName":     u.FirstName,
		"lastName":      u.LastName,
		"username":      u.Username,
		"email":         u.Email,
		"walletBalance": u.WalletBalance,
	}
}
