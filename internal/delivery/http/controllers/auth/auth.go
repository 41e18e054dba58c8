package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/delivery/http/controllers/middleware"
	"CourseForge/internal/models"
	"CourseForge/pkg/logger"
)

type AuthService interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	LoginUser(ctx context.Context, username, password string) (accessToken, refreshToken string, err error)
	RefreshTokens(ctx context.Context, token string) (*models.TokenPair, error)
	User(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type AuthHandler struct {
	service AuthService
	log     logger.Log
}

func NewAuthHandler(l logger.Log, auth AuthService) *AuthHandler {
	return &AuthHandler{
		service: auth,
		log:     l,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=student teacher"`
}

// Register creates a student or teacher account. Admin accounts are
// provisioned out of band.
func (h *AuthHandler) Register(c *gin.Context) {
	var input registerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := models.User{
		Username: input.Username,
		Password: input.Password,
		Email:    input.Email,
		Roles:    []string{input.Role},
	}

	if _, err := h.service.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, app_errors.ErrUserExists) || errors.Is(err, app_errors.ErrIncorrectPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error handling register user", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registration success"})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, refreshToken, err := h.service.LoginUser(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) || errors.Is(err, app_errors.ErrIncorrectPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error handling login user", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

type tokenRefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var input tokenRefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokenPair, err := h.service.RefreshTokens(c.Request.Context(), input.RefreshToken)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) || errors.Is(err, app_errors.ErrTokenExpired) || errors.Is(err, app_errors.ErrTokenNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  tokenPair.AccessToken.Raw,
		RefreshToken: tokenPair.RefreshToken.Raw,
	})
}

type meResponse struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	user, err := h.service.User(c.Request.Context(), userID)
	if err != nil {
		h.log.ErrorErr("error retrieving user", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, meResponse{
		UserID:   user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.Roles,
	})
}
