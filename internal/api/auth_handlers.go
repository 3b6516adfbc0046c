package api

import (
	"errors"

	"github.com/VERT-sh/waitress/internal/apierr"
	"github.com/VERT-sh/waitress/internal/middleware"
	"github.com/VERT-sh/waitress/internal/models"
	"github.com/VERT-sh/waitress/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler exposes signup and login over the envelope contract.
type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// Signup creates an account.
// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apierr.BadRequest(err.Error()))
		return
	}

	user, err := h.authService.Signup(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrUsernameAlreadyExists) {
			c.Error(apierr.Conflict(err.Error()))
			return
		}
		if errors.Is(err, models.ErrSignupsDisabled) {
			c.Error(apierr.Forbidden(err.Error()))
			return
		}
		c.Error(apierr.Internal(err.Error()))
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		c.Error(apierr.Internal(err.Error()))
		return
	}

	c.JSON(200, apierr.Success(gin.H{"token": token, "user_id": user.ID}))
}

// Login authenticates and mints a bearer token.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apierr.BadRequest(err.Error()))
		return
	}

	token, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			c.Error(apierr.Unauthorized("invalid username or password"))
			return
		}
		c.Error(apierr.Internal(err.Error()))
		return
	}

	c.JSON(200, apierr.Success(gin.H{"token": token, "user_id": user.ID}))
}

// Me returns the authenticated user's identity.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		c.Error(apierr.Unauthorized("user no longer exists"))
		return
	}
	c.JSON(200, apierr.Success(gin.H{"id": user.ID, "username": user.Username}))
}
