package api

import (
	"errors"
	"net/http" // HTTP status codes
	"tossbash/internal/domain"
	"tossbash/internal/service"

	"github.com/gin-gonic/gin" // Gin web framework
)

// SignupRequest mirrors the signup payload of the public API.
type SignupRequest struct {
	FirstName string `json:"firstName" binding:"required,min=2,max=50"`
	LastName  string `json:"lastName" binding:"required,min=2,max=50"`
	Username  string `json:"username" binding:"required,min=3,max=30"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

// LoginRequest mirrors the login payload of the public API.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest allows partial username/email changes.
type UpdateProfileRequest struct {
	Username string `json:"username" binding:"omitempty,min=3,max=30"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// SignupHandler registers a new account and returns it with a token.
func SignupHandler(identity *service.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if !bindJSON(c, &req) {
			return
		}
		user, token, err := identity.Register(service.RegisterInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Username:  req.Username,
			Email:     req.Email,
			Password:  req.Password,
		})
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateIdentity) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "User with this email or username already exists"})
				return
			}
			serverError(c, err, "Server error during signup")
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"user":    userPayload(user),
			"token":   token,
		})
	}
}

// LoginHandler authenticates an account and returns it with a token.
func LoginHandler(identity *service.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if !bindJSON(c, &req) {
			return
		}
		user, token, err := identity.Authenticate(req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrAccountDisabled):
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Account is deactivated"})
			case errors.Is(err, domain.ErrInvalidCredentials):
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			default:
				serverError(c, err, "Server error during login")
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    userPayload(user),
			"token":   token,
		})
	}
}

// GetProfileHandler returns the authenticated account.
func GetProfileHandler(identity *service.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		user, err := identity.Profile(userID)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
				return
			}
			serverError(c, err, "Server error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// UpdateProfileHandler applies a partial username/email change.
func UpdateProfileHandler(identity *service.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req UpdateProfileRequest
		if !bindJSON(c, &req) {
			return
		}
		user, err := identity.UpdateProfile(userID, req.Username, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrDuplicateIdentity):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Username or email already exists"})
			case errors.Is(err, domain.ErrAccountNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
			default:
				serverError(c, err, "Server error")
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Profile updated successfully",
			"user":    user,
		})
	}
}
